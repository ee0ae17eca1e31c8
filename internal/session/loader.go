package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/curio/internal/problemgen"
)

// Loader fetches the next question from the question-generation service.
type Loader interface {
	Load(ctx context.Context, req LoadRequest) (*problemgen.Question, error)
}

// LoadRequest is everything the service needs to produce a question.
type LoadRequest struct {
	Topic       string
	Difficulty  int
	UserContext problemgen.UserContext

	// Previous is the result of the question just answered, nil for the
	// first question of a session.
	Previous *problemgen.Performance
}

// LoadErrorKind classifies a failed load.
type LoadErrorKind int

const (
	// NetworkFailure covers transport errors, non-2xx responses and
	// unusable bodies.
	NetworkFailure LoadErrorKind = iota

	// RateLimited means the service explicitly refused for quota reasons.
	RateLimited
)

func (k LoadErrorKind) String() string {
	if k == RateLimited {
		return "rate limited"
	}
	return "network failure"
}

var (
	// ErrNetworkFailure matches any LoadError of kind NetworkFailure.
	ErrNetworkFailure = errors.New("network failure")

	// ErrRateLimited matches any LoadError of kind RateLimited.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmptyTopic is reported when a blank topic is submitted. No load is
	// issued.
	ErrEmptyTopic = errors.New("topic is empty")
)

// LoadError is returned by Loader implementations.
type LoadError struct {
	Kind LoadErrorKind

	// Status is the HTTP status when the service answered, zero otherwise.
	Status int

	Err error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("load question: %s (status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("load question: %s: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is match the kind sentinels.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.Kind == RateLimited
	case ErrNetworkFailure:
		return e.Kind == NetworkFailure
	}
	return false
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, req LoadRequest) (*problemgen.Question, error)

func (f LoaderFunc) Load(ctx context.Context, req LoadRequest) (*problemgen.Question, error) {
	return f(ctx, req)
}
