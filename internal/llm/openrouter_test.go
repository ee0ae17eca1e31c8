package llm

import (
	"context"
	"net/http"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("model passes through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "anthropic/claude-3-haiku"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "anthropic/claude-3-haiku" {
			t.Errorf("ModelID = %q", p.ModelID())
		}
	})

	t.Run("missing key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "openai/gpt-4o-mini"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("missing model", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or"}); err == nil {
			t.Fatal("expected error for empty model")
		}
	})
}

func TestOpenRouterProvider_NonStrictSchema(t *testing.T) {
	var body map[string]any
	server := chatServer(t, http.StatusOK, "```json\n{\"name\":\"Linus\",\"age\":55}\n```", "stop", &body)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or",
		Model:   "meta-llama/llama-3-8b",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), Schema: testSchema()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"name":"Linus","age":55}` {
		t.Errorf("Content = %s", resp.Content)
	}
	format, _ := body["response_format"].(map[string]any)
	schema, _ := format["json_schema"].(map[string]any)
	if schema["strict"] != false {
		t.Errorf("strict = %v, want false", schema["strict"])
	}
	if body["model"] != "meta-llama/llama-3-8b" {
		t.Errorf("model = %v", body["model"])
	}
}
