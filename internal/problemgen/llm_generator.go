package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/curio/internal/llm"
)

// Generator produces playground questions.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}

// LLMGenerator asks an llm.Provider for a question and runs the validator
// chain over the reply. A rejection marked Retryable triggers another
// request whose prompt explains what was wrong.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *LLMGenerator {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &LLMGenerator{provider: provider, config: cfg}
}

// reply mirrors QuestionSchema. Topic and age group are not asked of the
// model; they are filled from the input. The model's own difficulty rating
// is not trusted: the question carries the level it was asked for, so the
// adaptation decided here is what the session sees.
type reply struct {
	Text          string      `json:"text"`
	Options       []string    `json:"options"`
	CorrectAnswer int         `json:"correct_answer"`
	Explanation   Explanation `json:"explanation"`
	Difficulty    int         `json:"difficulty"`
	Subtopic      string      `json:"subtopic"`
	QuestionType  string      `json:"question_type"`
}

func (r reply) question(input GenerateInput, level int) *Question {
	return &Question{
		Text:          r.Text,
		Options:       r.Options,
		CorrectAnswer: r.CorrectAnswer,
		Explanation:   r.Explanation,
		Difficulty:    level,
		Topic:         input.Topic,
		Subtopic:      r.Subtopic,
		QuestionType:  r.QuestionType,
		AgeGroup:      AgeGroup(input.UserContext.Age),
	}
}

func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestion)
	level := TargetDifficulty(input.Difficulty, input.Previous)

	feedback := ""
	for attempt := 1; ; attempt++ {
		q, err := g.attempt(ctx, input, level, feedback)
		var rejected *ValidationError
		if err == nil || !errors.As(err, &rejected) || !rejected.Retryable || attempt == g.config.MaxAttempts {
			return q, err
		}
		feedback = rejected.Message
	}
}

func (g *LLMGenerator) attempt(ctx context.Context, input GenerateInput, level int, feedback string) (*Question, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(input, level, feedback)),
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	var r reply
	if err := json.Unmarshal(resp.Content, &r); err != nil {
		return nil, fmt.Errorf("parse question: %w", err)
	}
	q := r.question(input, level)
	if err := g.config.Validators.Validate(q, input); err != nil {
		return nil, err
	}
	return q, nil
}
