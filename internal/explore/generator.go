package explore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/curio/internal/llm"
	"github.com/abhisek/curio/internal/problemgen"
)

// ErrEmptyQuery is returned for a blank query. No LLM call is made.
var ErrEmptyQuery = errors.New("query is empty")

// Explorer answers explore queries.
type Explorer interface {
	Explore(ctx context.Context, query string, uc problemgen.UserContext) (*Response, error)
}

// Config controls the LLM explorer.
type Config struct {
	MaxTokens   int
	Temperature float64

	// ChunkSize is the approximate number of bytes of new text per
	// streamed chunk.
	ChunkSize int
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
		ChunkSize:   48,
	}
}

// LLMExplorer implements Explorer with a single structured LLM call.
type LLMExplorer struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *LLMExplorer {
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	return &LLMExplorer{provider: provider, config: cfg}
}

type responseOutput struct {
	Content          string            `json:"content"`
	RelatedTopics    []Topic           `json:"related_topics"`
	RelatedQuestions []RelatedQuestion `json:"related_questions"`
}

func (e *LLMExplorer) Explore(ctx context.Context, query string, uc problemgen.UserContext) (*Response, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeExplore)

	resp, err := e.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(query, uc)),
		Schema:      ResponseSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM explore failed: %w", err)
	}

	var raw responseOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if strings.TrimSpace(raw.Content) == "" {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty content")}
	}

	out := &Response{
		Content:          raw.Content,
		RelatedTopics:    raw.RelatedTopics,
		RelatedQuestions: raw.RelatedQuestions,
	}
	if out.RelatedTopics == nil {
		out.RelatedTopics = []Topic{}
	}
	if out.RelatedQuestions == nil {
		out.RelatedQuestions = []RelatedQuestion{}
	}
	return out, nil
}

// Stream answers query and emits it as cumulative chunks. emit errors
// (usually a gone client) stop the stream.
func (e *LLMExplorer) Stream(ctx context.Context, query string, uc problemgen.UserContext, emit func(StreamChunk) error) error {
	resp, err := e.Explore(ctx, query, uc)
	if err != nil {
		return err
	}
	for _, c := range Chunks(resp, e.config.ChunkSize) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(c); err != nil {
			return err
		}
	}
	return nil
}
