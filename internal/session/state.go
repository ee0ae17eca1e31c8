package session

import (
	"time"

	"github.com/abhisek/curio/internal/problemgen"
)

// Phase is the externally visible state of the session.
type Phase int

const (
	PhaseNoQuestion Phase = iota // Waiting for a topic
	PhaseLoading                 // First question of a topic is loading
	PhaseActive                  // Question shown, unanswered
	PhaseReview                  // Answered, explanation shown
	PhaseComplete                // Terminal until a new session starts
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseReview:
		return "review"
	case PhaseComplete:
		return "complete"
	default:
		return "no-question"
	}
}

// Unanswered is the Selected value before an answer is given.
const Unanswered = -1

// AnswerState is cleared on every question load.
type AnswerState struct {
	// Selected is the chosen option index or Unanswered.
	Selected int

	// Correct is meaningful only once Selected is set.
	Correct bool

	// ShowExplanation is true once the question has been answered.
	ShowExplanation bool

	// TimeSpent is the timer value captured at the moment of answering.
	TimeSpent int
}

func freshAnswer() AnswerState {
	return AnswerState{Selected: Unanswered}
}

// Answered reports whether an option was selected.
func (a AnswerState) Answered() bool { return a.Selected != Unanswered }

// Snapshot is a read-only copy of the engine state for rendering.
type Snapshot struct {
	Phase Phase
	Topic string

	// Question is a copy, nil when no question is on screen.
	Question *problemgen.Question

	Answer   AnswerState
	Stats    SessionStats
	Progress SessionProgress

	Paused bool

	// LoadingNext is true while any load is in flight and a question is
	// still on screen.
	LoadingNext bool

	// Elapsed is the whole time units spent on the current question.
	Elapsed int

	// Counting is true while the review countdown runs.
	Counting  bool
	Countdown time.Duration
	// CountdownTotal is the full review window, for progress bars.
	CountdownTotal time.Duration
}
