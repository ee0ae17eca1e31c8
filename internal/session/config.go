package session

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// TopicPolicy decides what re-submitting a topic does to a running session.
type TopicPolicy string

const (
	// ResumeSameTopic resets only when the submitted topic differs from the
	// active one. Re-submitting the same topic keeps stats and lives.
	ResumeSameTopic TopicPolicy = "resume"

	// AlwaysReset starts a fresh session on every submission.
	AlwaysReset TopicPolicy = "reset"
)

// Default session parameters.
const (
	DefaultSessionLimit      = 25
	DefaultLives             = 3
	DefaultTimeUnit          = time.Second
	DefaultFrameInterval     = 100 * time.Millisecond
	DefaultCountdownDuration = 5 * time.Second
	DefaultCountdownStep     = 100 * time.Millisecond
)

// Config holds the tunables of a playground session.
type Config struct {
	SessionLimit int
	Lives        int

	// TimeUnit is the granularity of the per-question timer.
	TimeUnit time.Duration

	// FrameInterval is how often the host delivers timer frames.
	FrameInterval time.Duration

	CountdownDuration time.Duration
	CountdownStep     time.Duration

	TopicPolicy TopicPolicy

	// StartDifficulty is sent with the first load of a fresh session.
	StartDifficulty int
}

// DefaultConfig returns the standard session configuration.
func DefaultConfig() Config {
	return Config{
		SessionLimit:      DefaultSessionLimit,
		Lives:             DefaultLives,
		TimeUnit:          DefaultTimeUnit,
		FrameInterval:     DefaultFrameInterval,
		CountdownDuration: DefaultCountdownDuration,
		CountdownStep:     DefaultCountdownStep,
		TopicPolicy:       ResumeSameTopic,
		StartDifficulty:   1,
	}
}

// ConfigFromEnv overlays CURIO_SESSION_LIMIT, CURIO_LIVES and
// CURIO_TOPIC_POLICY onto the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("CURIO_SESSION_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("CURIO_SESSION_LIMIT: %w", err)
		}
		cfg.SessionLimit = n
	}
	if v := os.Getenv("CURIO_LIVES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("CURIO_LIVES: %w", err)
		}
		cfg.Lives = n
	}
	if v := os.Getenv("CURIO_TOPIC_POLICY"); v != "" {
		cfg.TopicPolicy = TopicPolicy(strings.ToLower(v))
	}

	return cfg, cfg.Validate()
}

// Validate checks the config for consistency.
func (c Config) Validate() error {
	if c.SessionLimit < 1 {
		return fmt.Errorf("session limit must be at least 1, got %d", c.SessionLimit)
	}
	if c.Lives < 1 {
		return fmt.Errorf("lives must be at least 1, got %d", c.Lives)
	}
	if c.TimeUnit <= 0 || c.FrameInterval <= 0 {
		return fmt.Errorf("timer unit and frame interval must be positive")
	}
	if c.CountdownStep <= 0 || c.CountdownDuration < c.CountdownStep {
		return fmt.Errorf("countdown duration must be at least one step")
	}
	switch c.TopicPolicy {
	case ResumeSameTopic, AlwaysReset:
	default:
		return fmt.Errorf("unknown topic policy %q (valid: resume, reset)", c.TopicPolicy)
	}
	return nil
}
