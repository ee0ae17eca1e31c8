package session

import "time"

type timerState int

const (
	timerIdle timerState = iota
	timerRunning
	timerPaused
)

// Timer counts whole time units spent on the current question.
//
// The host drives it with frame callbacks: every call that returns a
// generation expects Frame(gen, now) to be delivered after a short delay.
// Each frame adds the whole units elapsed since the last credited instant
// and carries the remainder forward, so throttled or coalesced frames never
// lose time. Pause and Stop bump the generation, which makes any frame
// already in flight stale; stale frames are dropped and not rescheduled.
type Timer struct {
	unit    time.Duration
	state   timerState
	elapsed int
	last    time.Time     // instant up to which whole units were credited
	carry   time.Duration // partial unit held across a pause
	gen     uint64
}

// NewTimer creates an idle timer counting in the given unit.
func NewTimer(unit time.Duration) *Timer {
	if unit <= 0 {
		unit = time.Second
	}
	return &Timer{unit: unit}
}

// Start resets the elapsed count to zero and begins accumulating from now.
// It returns the generation of the first frame to schedule.
func (t *Timer) Start(now time.Time) uint64 {
	t.elapsed = 0
	t.carry = 0
	t.last = now
	t.state = timerRunning
	t.gen++
	return t.gen
}

// Pause credits any whole units up to now, holds the partial unit and
// cancels the pending frame. It is a no-op unless the timer is running.
func (t *Timer) Pause(now time.Time) {
	if t.state != timerRunning {
		return
	}
	t.advance(now)
	t.carry = now.Sub(t.last)
	if t.carry < 0 {
		t.carry = 0
	}
	t.state = timerPaused
	t.gen++
}

// Resume continues accumulating from the held value. ok is false if the
// timer was not paused, in which case nothing needs scheduling.
func (t *Timer) Resume(now time.Time) (gen uint64, ok bool) {
	if t.state != timerPaused {
		return 0, false
	}
	t.last = now.Add(-t.carry)
	t.carry = 0
	t.state = timerRunning
	t.gen++
	return t.gen, true
}

// Stop cancels any pending frame and clears the elapsed value.
func (t *Timer) Stop() {
	t.state = timerIdle
	t.elapsed = 0
	t.carry = 0
	t.gen++
}

// Frame handles a scheduled callback. It reports whether the host should
// schedule another frame with the same generation.
func (t *Timer) Frame(gen uint64, now time.Time) bool {
	if t.state != timerRunning || gen != t.gen {
		return false
	}
	t.advance(now)
	return true
}

func (t *Timer) advance(now time.Time) {
	delta := now.Sub(t.last)
	if delta < t.unit {
		return
	}
	n := delta / t.unit
	t.elapsed += int(n)
	t.last = t.last.Add(n * t.unit)
}

// Elapsed returns the whole units accumulated since Start.
func (t *Timer) Elapsed() int { return t.elapsed }

// Running reports whether the timer is accumulating.
func (t *Timer) Running() bool { return t.state == timerRunning }

// Paused reports whether the timer holds a value and can be resumed.
func (t *Timer) Paused() bool { return t.state == timerPaused }
