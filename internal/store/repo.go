package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	From    time.Time // timestamp >= From
	Purpose string    // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData with its position in
// the global sequence.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates request events for one purpose and model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// EventRepo provides append access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// EventReader queries recorded events.
type EventReader interface {
	// LLMRequests returns events newest first.
	LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// LLMUsage returns per purpose and model totals for events at or
	// after since. A zero since covers the whole log.
	LLMUsage(ctx context.Context, since time.Time) ([]LLMUsage, error)
}

// Profile is the learner context persisted between runs.
type Profile struct {
	Age       int
	UpdatedAt time.Time
}

// ProfileRepo stores the single learner profile.
type ProfileRepo interface {
	// Get returns the profile, or nil if none has been saved.
	Get(ctx context.Context) (*Profile, error)

	// Save creates or replaces the profile.
	Save(ctx context.Context, p Profile) error

	// Clear removes the profile.
	Clear(ctx context.Context) error
}
