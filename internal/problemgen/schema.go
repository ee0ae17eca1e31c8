package problemgen

import "github.com/abhisek/curio/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single multiple-choice practice question with explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the learner",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    OptionCount,
				"maxItems":    OptionCount,
				"description": "Exactly 4 answer choices, one of which is correct",
			},
			"correct_answer": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     OptionCount - 1,
				"description": "Zero-based index of the correct option",
			},
			"explanation": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"correct": map[string]any{
						"type":        "string",
						"description": "Why the correct option is right",
					},
					"key_point": map[string]any{
						"type":        "string",
						"description": "One short takeaway to remember",
					},
				},
				"required":             []any{"correct", "key_point"},
				"additionalProperties": false,
			},
			"difficulty": map[string]any{
				"type":        "integer",
				"minimum":     MinDifficulty,
				"maximum":     MaxDifficulty,
				"description": "Difficulty from 1 (easiest) to 10 (hardest)",
			},
			"subtopic": map[string]any{
				"type":        "string",
				"description": "The narrower area of the topic this question covers",
			},
			"question_type": map[string]any{
				"type":        "string",
				"enum":        []any{"conceptual", "applied", "recall", "analytical"},
				"description": "What kind of thinking the question tests",
			},
		},
		"required":             []any{"text", "options", "correct_answer", "explanation", "difficulty", "subtopic", "question_type"},
		"additionalProperties": false,
	},
}
