package llm

import "errors"

const openRouterURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is the OpenAI adapter pointed at OpenRouter. Model IDs
// are "vendor/model" and pass through as given; strict schemas are off
// because not every routed model honours them.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	switch {
	case cfg.APIKey == "":
		return nil, errors.New("openrouter: API key is required")
	case cfg.Model == "":
		return nil, errors.New("openrouter: model is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = openRouterURL
	}
	return &OpenRouterProvider{newOpenAICompatible(cfg.APIKey, base, cfg.Model, false)}, nil
}
