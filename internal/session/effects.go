package session

import (
	"context"
	"time"
)

// Effect is an instruction from the engine to its host. Engine operations
// never block or spawn goroutines; they return effects and the host feeds
// the outcomes back through Frame, CountdownTick and Loaded.
type Effect interface {
	effect()
}

// ScheduleFrame asks for Engine.Frame(Gen) to be called after the delay.
type ScheduleFrame struct {
	Gen   uint64
	After time.Duration
}

// ScheduleCountdown asks for Engine.CountdownTick(Gen) after the delay.
type ScheduleCountdown struct {
	Gen   uint64
	After time.Duration
}

// StartLoad asks the host to run the loader and report the outcome with
// Engine.Loaded(ID, ...). Ctx is cancelled when the load is superseded.
type StartLoad struct {
	ID      uint64
	Ctx     context.Context
	Request LoadRequest
}

// Notify surfaces a user-visible message.
type Notify struct {
	Notification
}

func (ScheduleFrame) effect()     {}
func (ScheduleCountdown) effect() {}
func (StartLoad) effect()         {}
func (Notify) effect()            {}

// NotificationKind selects how a notification is presented.
type NotificationKind int

const (
	NotifyError NotificationKind = iota
	NotifyRateLimited
	NotifyEmptyTopic
	NotifyComplete   // success style
	NotifyOutOfLives // info style, not an error
)

// IsError reports whether the notification should be styled as an error.
func (k NotificationKind) IsError() bool {
	return k == NotifyError || k == NotifyRateLimited || k == NotifyEmptyTopic
}

// Notification is a message for the learner.
type Notification struct {
	Kind    NotificationKind
	Message string

	// Err is the underlying error for error kinds.
	Err error
}

const (
	msgComplete    = "Congratulations! You've completed your practice session!"
	msgOutOfLives  = "Out of hearts! Each mistake is a chance to learn."
	msgRateLimited = "Too many requests. Take a short break and try again."
	msgLoadFailed  = "An error occurred while loading the question."
	msgEmptyTopic  = "Please enter a topic to practice."
)
