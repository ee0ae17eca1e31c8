// Package llm is a thin, vendor-neutral layer over the chat completion
// APIs curio can run against. Adapters live in one file each; cross-cutting
// behavior (deadlines, retries, request logging) is stacked on top as
// Provider decorators by NewProviderFromEnv.
package llm

import (
	"context"
	"encoding/json"
)

type Provider interface {
	// Generate runs one completion. With req.Schema set, Content is JSON
	// that has already been checked against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// UserMessage wraps content as a one-turn conversation.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema names a JSON Schema document the reply must satisfy. Name is
// kebab-case and keys the compiled-validator cache.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Request struct {
	System    string
	Messages  []Message
	Schema    *Schema // nil for free text
	MaxTokens int

	// Temperature in [0, 1]; zero keeps the vendor default.
	Temperature float64
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model as reported by the vendor, which may differ from ModelID.
	Model string
	// StopReason is "end" or "max_tokens" regardless of vendor.
	StopReason string
}
