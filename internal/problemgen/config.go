package problemgen

// Config tunes an LLMGenerator.
type Config struct {
	Validators  Chain
	MaxTokens   int
	Temperature float64

	// MaxAttempts counts the first request. Only retryable rejections
	// use up the extra attempts; provider errors are left to llm's own
	// retry layer.
	MaxAttempts int
}

// DefaultConfig validates structure and option uniqueness and allows one
// regeneration.
func DefaultConfig() Config {
	return Config{
		Validators:  Chain{&StructuralValidator{}, &DistinctOptionsValidator{}},
		MaxTokens:   1024,
		Temperature: 0.7,
		MaxAttempts: 2,
	}
}
