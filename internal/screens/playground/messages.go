package playground

import "github.com/abhisek/curio/internal/problemgen"

// frameMsg delivers a timer frame scheduled by the engine.
type frameMsg struct {
	gen uint64
}

// countdownMsg delivers a review countdown tick.
type countdownMsg struct {
	gen uint64
}

// loadedMsg carries the outcome of a question load back to the engine.
type loadedMsg struct {
	id       uint64
	question *problemgen.Question
	err      error
}

// noticeExpiredMsg hides the notice with the matching sequence number.
type noticeExpiredMsg struct {
	seq int
}

// RestartMsg asks the playground to start a new session on its last topic.
// The summary screen sends it when the learner chooses to go again.
type RestartMsg struct{}
