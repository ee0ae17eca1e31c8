package ratelimit

import (
	"context"
	"os"
)

// Config selects the limiter backend.
type Config struct {
	// RedisURL is a redis:// or rediss:// URL. Empty selects the
	// in-process backend.
	RedisURL string
}

// ConfigFromEnv reads CURIO_REDIS_URL.
func ConfigFromEnv() Config {
	return Config{RedisURL: os.Getenv("CURIO_REDIS_URL")}
}

// NewBackend returns a Redis backend when a URL is configured and the
// server answers a ping, otherwise a MemoryBackend.
func NewBackend(ctx context.Context, cfg Config) (Backend, error) {
	if cfg.RedisURL == "" {
		return NewMemoryBackend(), nil
	}
	return DialRedis(ctx, cfg.RedisURL)
}
