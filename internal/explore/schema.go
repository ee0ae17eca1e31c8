package explore

import "github.com/abhisek/curio/internal/llm"

const (
	maxRelatedTopics    = 5
	maxRelatedQuestions = 5
)

// ResponseSchema is the structured output requested for explore answers.
var ResponseSchema = &llm.Schema{
	Name:        "explore-response",
	Description: "An explanation of a topic with related topics and follow-up questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": "The explanation, in markdown",
			},
			"related_topics": map[string]any{
				"type":     "array",
				"maxItems": maxRelatedTopics,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic": map[string]any{"type": "string"},
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"prerequisite", "extension", "application", "parallel", "deeper"},
							"description": "How the topic relates to the query",
						},
						"reason": map[string]any{
							"type":        "string",
							"description": "One sentence on why it is worth exploring next",
						},
					},
					"required":             []any{"topic", "type", "reason"},
					"additionalProperties": false,
				},
			},
			"related_questions": map[string]any{
				"type":     "array",
				"maxItems": maxRelatedQuestions,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"type": map[string]any{
							"type": "string",
							"enum": []any{"curiosity", "mechanism", "causality", "innovation", "insight"},
						},
						"context": map[string]any{
							"type":        "string",
							"description": "Why the question is interesting",
						},
					},
					"required":             []any{"question", "type", "context"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"content", "related_topics", "related_questions"},
		"additionalProperties": false,
	},
}
