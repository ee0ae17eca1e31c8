package session

import "time"

// Countdown is the post-answer review window. It decays in fixed steps and
// clears once the remaining value is at or below one step; the clearing
// tick is the expiry signal.
//
// Remaining time is stored as a whole number of steps so repeated
// decrements never accumulate floating point error.
type Countdown struct {
	step   time.Duration
	steps  int
	active bool
	gen    uint64
}

// NewCountdown creates an inactive countdown that ticks every step.
func NewCountdown(step time.Duration) *Countdown {
	if step <= 0 {
		step = 100 * time.Millisecond
	}
	return &Countdown{step: step}
}

// Begin starts counting down from d, cancelling any countdown already
// running. It returns the generation of the first tick to schedule.
func (c *Countdown) Begin(d time.Duration) uint64 {
	c.steps = int(d / c.step)
	c.active = true
	c.gen++
	return c.gen
}

// Cancel clears the countdown without signalling expiry.
func (c *Countdown) Cancel() {
	c.steps = 0
	c.active = false
	c.gen++
}

// Tick handles a scheduled interval callback. While paused the value holds
// but the interval keeps running. expired is true on the tick that clears
// the countdown; reschedule is true while the countdown is still live.
func (c *Countdown) Tick(gen uint64, paused bool) (reschedule, expired bool) {
	if !c.active || gen != c.gen {
		return false, false
	}
	if paused {
		return true, false
	}
	if c.steps <= 1 {
		c.steps = 0
		c.active = false
		c.gen++
		return false, true
	}
	c.steps--
	return true, false
}

// Active reports whether a countdown is running.
func (c *Countdown) Active() bool { return c.active }

// Remaining returns the time left, or zero when inactive.
func (c *Countdown) Remaining() time.Duration {
	return time.Duration(c.steps) * c.step
}

// Step returns the tick interval.
func (c *Countdown) Step() time.Duration { return c.step }
