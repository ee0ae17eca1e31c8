package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Window is one sliding window: at most Limit requests in any Period.
type Window struct {
	Name   string
	Limit  int
	Period time.Duration
}

// DefaultWindows are applied to every /api request.
var DefaultWindows = []Window{
	{Name: "minute", Limit: 15, Period: time.Minute},
	{Name: "hour", Limit: 250, Period: time.Hour},
	{Name: "day", Limit: 500, Period: 24 * time.Hour},
}

// Result is the outcome of a single check.
type Result struct {
	Blocked bool

	// Remaining is how many more requests the tightest window admits,
	// never negative.
	Remaining int
}

// Backend records a hit against one window. Blocked hits must not count
// against later requests.
type Backend interface {
	Hit(ctx context.Context, key string, w Window, now time.Time) (Result, error)
}

// Limiter checks a key against several windows at once.
type Limiter struct {
	backend Backend
	windows []Window
	now     func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithWindows replaces DefaultWindows.
func WithWindows(windows ...Window) Option {
	return func(l *Limiter) { l.windows = windows }
}

// WithClock overrides time.Now. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New creates a Limiter backed by b.
func New(b Backend, opts ...Option) *Limiter {
	l := &Limiter{
		backend: b,
		windows: DefaultWindows,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limit records a request for key in every window. The request is blocked
// if any window blocks it; Remaining is the minimum across windows.
func (l *Limiter) Limit(ctx context.Context, key string) (Result, error) {
	now := l.now()
	out := Result{Remaining: -1}
	for _, w := range l.windows {
		r, err := l.backend.Hit(ctx, key, w, now)
		if err != nil {
			return Result{}, fmt.Errorf("rate limit %s window: %w", w.Name, err)
		}
		if r.Blocked {
			out.Blocked = true
		}
		if out.Remaining < 0 || r.Remaining < out.Remaining {
			out.Remaining = r.Remaining
		}
	}
	if out.Remaining < 0 {
		out.Remaining = 0
	}
	return out, nil
}

// windowKey namespaces a client key per window.
func windowKey(key string, w Window) string {
	return "curio:ratelimit:" + w.Name + ":" + key
}

func remaining(limit, count int) int {
	if n := limit - count; n > 0 {
		return n
	}
	return 0
}
