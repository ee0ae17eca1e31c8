package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider re-issues failed requests while the failure looks
// transient. Waits grow geometrically up to MaxWait, with ±20% jitter, and
// an upstream Retry-After always wins.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err        error
		sawInvalid bool
	)
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}

		switch classify(err) {
		case failFinal:
			return nil, err
		case failInvalid:
			// A malformed answer is worth one more try, not more.
			if sawInvalid {
				return nil, err
			}
			sawInvalid = true
		}
		if attempt+1 == r.config.MaxAttempts {
			break
		}

		t := time.NewTimer(r.backoff(attempt, err))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, err
}

type failure int

const (
	failTransient failure = iota
	failInvalid
	failFinal
)

func classify(err error) failure {
	var (
		truncated *ErrMaxTokensExceeded
		invalid   *ErrInvalidResponse
		down      *ErrProviderUnavailable
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return failFinal
	case errors.As(err, &truncated):
		return failFinal
	case errors.As(err, &invalid):
		return failInvalid
	case errors.As(err, &down) && down.Status >= 400 && down.Status < 500:
		// Bad key or bad request.
		return failFinal
	}
	return failTransient
}

func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait)
	for range attempt {
		wait *= r.config.Multiplier
		if wait >= float64(r.config.MaxWait) {
			break
		}
	}
	wait = min(wait, float64(r.config.MaxWait))
	jitter := 0.8 + 0.4*rand.Float64()
	return time.Duration(wait * jitter)
}
