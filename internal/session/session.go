package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abhisek/curio/internal/problemgen"
)

type loadKind int

const (
	loadFirst loadKind = iota // triggered by SubmitTopic
	loadNext                  // triggered by countdown expiry
)

// pendingLoad is the single load allowed in flight.
type pendingLoad struct {
	id     uint64
	kind   loadKind
	topic  string
	reset  bool
	cancel context.CancelFunc
}

// Engine is the playground session state machine. It is not safe for
// concurrent use; the host must call it from one goroutine (the bubbletea
// update loop in practice).
type Engine struct {
	cfg     Config
	userCtx problemgen.UserContext
	now     func() time.Time

	timer     *Timer
	countdown *Countdown

	topic    string
	question *problemgen.Question
	answer   AnswerState
	stats    SessionStats
	progress SessionProgress
	paused   bool

	pending *pendingLoad
	loadSeq uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine in the NoQuestion phase. The user context is
// passed in explicitly and sent with every load.
func NewEngine(cfg Config, userCtx problemgen.UserContext, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		userCtx:   userCtx,
		now:       time.Now,
		timer:     NewTimer(cfg.TimeUnit),
		countdown: NewCountdown(cfg.CountdownStep),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resetSession()
	return e
}

// SetUserContext updates the learner context used for subsequent loads.
func (e *Engine) SetUserContext(uc problemgen.UserContext) {
	e.userCtx = uc
}

// SubmitTopic starts or resumes practice on topic. A different topic (or
// any topic under AlwaysReset, or after completion) resets stats and
// progress once its first question arrives. The current question stays on
// screen until then.
func (e *Engine) SubmitTopic(topic string) []Effect {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return []Effect{Notify{Notification{Kind: NotifyEmptyTopic, Message: msgEmptyTopic, Err: ErrEmptyTopic}}}
	}

	reset := e.progress.Complete ||
		e.question == nil ||
		topic != e.topic ||
		e.cfg.TopicPolicy == AlwaysReset

	// Cancel pending callbacks before starting fresh ones.
	e.countdown.Cancel()
	e.timer.Pause(e.now())

	difficulty := e.stats.Difficulty
	if reset {
		difficulty = e.cfg.StartDifficulty
	}

	return []Effect{e.startLoad(loadFirst, topic, reset, LoadRequest{
		Topic:       topic,
		Difficulty:  floorDifficulty(difficulty),
		UserContext: e.userCtx,
	})}
}

// Answer records the learner's choice for the current question. It is a
// no-op when there is no question, the question is already answered, the
// session is complete or index is out of range.
func (e *Engine) Answer(index int) []Effect {
	q := e.question
	if q == nil || e.answer.Answered() || e.progress.Complete {
		return nil
	}
	if index < 0 || index >= len(q.Options) {
		return nil
	}

	e.timer.Pause(e.now())
	correct := q.IsCorrect(index)
	e.answer.Selected = index
	e.answer.Correct = correct
	e.answer.ShowExplanation = true
	e.answer.TimeSpent = e.timer.Elapsed()

	e.stats.Record(correct, e.answer.TimeSpent)
	if !correct {
		e.progress.LoseLife()
	}

	if e.progress.Lives == 0 {
		e.progress.finish(EndOutOfLives)
		e.countdown.Cancel()
		// A same-topic resubmission in flight belongs to the finished
		// session. A new-topic load starts a fresh one and may land.
		if e.pending != nil && !e.pending.reset {
			e.cancelPending()
		}
		return []Effect{Notify{Notification{Kind: NotifyOutOfLives, Message: msgOutOfLives}}}
	}

	// While paused the review window is skipped; resuming advances
	// immediately.
	if e.paused {
		return nil
	}
	return []Effect{e.beginCountdown()}
}

// TogglePause flips the pause flag shared by the timer and countdown.
func (e *Engine) TogglePause() []Effect {
	now := e.now()
	e.paused = !e.paused
	if e.paused {
		e.timer.Pause(now)
		return nil
	}

	if e.question == nil || e.progress.Complete {
		return nil
	}

	var effects []Effect
	if !e.answer.Answered() && e.pending == nil {
		if gen, ok := e.timer.Resume(now); ok {
			effects = append(effects, ScheduleFrame{Gen: gen, After: e.cfg.FrameInterval})
		}
	}
	if e.answer.Answered() && !e.countdown.Active() {
		effects = append(effects, e.expire()...)
	}
	return effects
}

// StartNewSession abandons everything and returns to NoQuestion.
func (e *Engine) StartNewSession() []Effect {
	e.cancelPending()
	e.resetSession()
	return nil
}

// Frame handles a timer frame scheduled by an earlier ScheduleFrame.
func (e *Engine) Frame(gen uint64) []Effect {
	if !e.timer.Frame(gen, e.now()) {
		return nil
	}
	return []Effect{ScheduleFrame{Gen: gen, After: e.cfg.FrameInterval}}
}

// CountdownTick handles a countdown tick scheduled by ScheduleCountdown.
func (e *Engine) CountdownTick(gen uint64) []Effect {
	reschedule, expired := e.countdown.Tick(gen, e.paused)
	if reschedule {
		return []Effect{ScheduleCountdown{Gen: gen, After: e.countdown.Step()}}
	}
	if expired {
		return e.expire()
	}
	return nil
}

// Loaded applies the outcome of the load started with the given id.
// Results for loads that were superseded or reset are discarded.
func (e *Engine) Loaded(id uint64, q *problemgen.Question, err error) []Effect {
	p := e.pending
	if p == nil || p.id != id {
		return nil
	}
	e.pending = nil
	p.cancel()

	// Only a reset load may follow completion.
	if e.progress.Complete && !p.reset {
		return nil
	}
	if err == nil && q == nil {
		err = &LoadError{Kind: NetworkFailure, Err: errors.New("empty response")}
	}
	if err == nil {
		if cerr := q.CheckAnswerIndex(); cerr != nil {
			err = &LoadError{Kind: NetworkFailure, Err: cerr}
		}
	}
	if err != nil {
		return e.loadFailed(p, err)
	}

	if p.reset {
		e.stats = NewStats(e.cfg.StartDifficulty)
		e.progress = NewProgress(e.cfg.SessionLimit, e.cfg.Lives)
		e.topic = p.topic
	}
	// A same-topic resubmission replaces the current question without
	// counting it again.
	if p.kind == loadNext || p.reset {
		e.progress.TotalQuestions++
	}

	qc := *q
	e.question = &qc
	e.stats.SetDifficulty(q.Difficulty)
	e.answer = freshAnswer()
	e.paused = false
	e.countdown.Cancel()

	gen := e.timer.Start(e.now())
	return []Effect{ScheduleFrame{Gen: gen, After: e.cfg.FrameInterval}}
}

// Snapshot returns a read-only copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:          e.phase(),
		Topic:          e.topic,
		Answer:         e.answer,
		Stats:          e.stats,
		Progress:       e.progress,
		Paused:         e.paused,
		Elapsed:        e.timer.Elapsed(),
		Counting:       e.countdown.Active(),
		Countdown:      e.countdown.Remaining(),
		CountdownTotal: e.cfg.CountdownDuration,
	}
	if e.question != nil {
		qc := *e.question
		qc.Options = append([]string(nil), e.question.Options...)
		s.Question = &qc
		s.LoadingNext = e.pending != nil
	}
	return s
}

// Loading reports whether a load is in flight.
func (e *Engine) Loading() bool { return e.pending != nil }

func (e *Engine) phase() Phase {
	switch {
	case e.progress.Complete:
		return PhaseComplete
	case e.question == nil && e.pending != nil:
		return PhaseLoading
	case e.question == nil:
		return PhaseNoQuestion
	case e.answer.Answered():
		return PhaseReview
	default:
		return PhaseActive
	}
}

// expire runs when the review window closes: finish at the limit or load
// the next question seeded with the answered question's result.
func (e *Engine) expire() []Effect {
	if e.question == nil || !e.answer.Answered() || e.progress.Complete {
		return nil
	}
	if e.pending != nil {
		return nil
	}
	if e.progress.LimitReached() {
		e.progress.finish(EndLimitReached)
		return []Effect{Notify{Notification{Kind: NotifyComplete, Message: msgComplete}}}
	}

	return []Effect{e.startLoad(loadNext, e.topic, false, LoadRequest{
		Topic:       e.topic,
		Difficulty:  e.stats.Difficulty,
		UserContext: e.userCtx,
		Previous: &problemgen.Performance{
			TimeSpent:  e.answer.TimeSpent,
			WasCorrect: e.answer.Correct,
		},
	})}
}

func (e *Engine) beginCountdown() Effect {
	gen := e.countdown.Begin(e.cfg.CountdownDuration)
	return ScheduleCountdown{Gen: gen, After: e.countdown.Step()}
}

// startLoad supersedes any load in flight and registers a new one.
func (e *Engine) startLoad(kind loadKind, topic string, reset bool, req LoadRequest) Effect {
	e.cancelPending()
	ctx, cancel := context.WithCancel(context.Background())
	e.loadSeq++
	e.pending = &pendingLoad{
		id:     e.loadSeq,
		kind:   kind,
		topic:  topic,
		reset:  reset,
		cancel: cancel,
	}
	return StartLoad{ID: e.loadSeq, Ctx: ctx, Request: req}
}

func (e *Engine) cancelPending() {
	if e.pending != nil {
		e.pending.cancel()
		e.pending = nil
	}
}

// loadFailed leaves the session in its last valid state and surfaces the
// error. A question interrupted by a topic submission gets its timer back.
func (e *Engine) loadFailed(p *pendingLoad, err error) []Effect {
	var effects []Effect
	if p.kind == loadFirst && e.question != nil && !e.answer.Answered() && !e.paused && !e.progress.Complete {
		if gen, ok := e.timer.Resume(e.now()); ok {
			effects = append(effects, ScheduleFrame{Gen: gen, After: e.cfg.FrameInterval})
		}
	}

	n := Notification{Kind: NotifyError, Message: msgLoadFailed, Err: err}
	if errors.Is(err, ErrRateLimited) {
		n.Kind = NotifyRateLimited
		n.Message = msgRateLimited
	}
	return append(effects, Notify{n})
}

func (e *Engine) resetSession() {
	e.countdown.Cancel()
	e.timer.Stop()
	e.topic = ""
	e.question = nil
	e.answer = freshAnswer()
	e.stats = NewStats(e.cfg.StartDifficulty)
	e.progress = NewProgress(e.cfg.SessionLimit, e.cfg.Lives)
	e.paused = false
}
