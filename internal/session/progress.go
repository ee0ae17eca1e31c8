package session

// EndReason records why a session completed.
type EndReason int

const (
	EndNone EndReason = iota
	EndOutOfLives
	EndLimitReached
)

// SessionProgress bounds a session by a question limit and a lives budget.
type SessionProgress struct {
	// TotalQuestions is the number of questions served. The first question
	// of a session counts as one.
	TotalQuestions int

	// Limit is the number of questions after which the session completes.
	Limit int

	// Lives is decremented once per incorrect answer, never below zero.
	Lives int

	// Complete is sticky until a new session starts.
	Complete bool

	// Reason is EndNone until Complete is set.
	Reason EndReason
}

// NewProgress returns a fresh progress record.
func NewProgress(limit, lives int) SessionProgress {
	return SessionProgress{Limit: limit, Lives: lives}
}

// LoseLife removes one life, never going below zero.
func (p *SessionProgress) LoseLife() {
	if p.Lives > 0 {
		p.Lives--
	}
}

// LimitReached reports whether the question budget is spent.
func (p *SessionProgress) LimitReached() bool {
	return p.TotalQuestions >= p.Limit
}

// finish marks the session complete. The first reason wins.
func (p *SessionProgress) finish(reason EndReason) {
	if p.Complete {
		return
	}
	p.Complete = true
	p.Reason = reason
}

// OutOfLives reports whether the session ended because lives ran out.
func (p SessionProgress) OutOfLives() bool {
	return p.Complete && p.Reason == EndOutOfLives
}
