package session

import (
	"fmt"
	"math"
)

// Tier is the categorical outcome of a finished session.
type Tier int

const (
	TierKeepPracticing Tier = iota // below 70%
	TierWellDone                   // 70% and above
	TierOutstanding                // 90% and above
	TierOutOfLives                 // ended by running out of lives
)

// Panel is the live counter view shown while a question is on screen.
type Panel struct {
	Answered   int
	Accuracy   int // rounded percent
	Streak     int
	BestStreak int
	AvgTime    int // rounded seconds
	Difficulty int
	Lives      int
	MaxLives   int
	Served     int
	Limit      int
	Elapsed    int
	Countdown  string // "4.9" while counting down, empty otherwise
}

// BuildPanel projects the live counters from a snapshot.
func BuildPanel(s Snapshot, maxLives int) Panel {
	p := Panel{
		Answered:   s.Stats.Answered,
		Accuracy:   roundInt(s.Stats.Accuracy),
		Streak:     s.Stats.Streak,
		BestStreak: s.Stats.BestStreak,
		AvgTime:    roundInt(s.Stats.AvgTime),
		Difficulty: s.Stats.Difficulty,
		Lives:      s.Progress.Lives,
		MaxLives:   maxLives,
		Served:     s.Progress.TotalQuestions,
		Limit:      s.Progress.Limit,
		Elapsed:    s.Elapsed,
	}
	if s.Counting {
		p.Countdown = fmt.Sprintf("%.1f", s.Countdown.Seconds())
	}
	return p
}

// SessionSummary is the end-of-session view.
type SessionSummary struct {
	Tier     Tier
	Title    string
	Subtitle string

	// Message is a one-line recap, set only for the out-of-lives variant.
	Message string

	Questions  int
	Accuracy   int // rounded percent
	BestStreak int
	AvgTime    int // rounded seconds

	// Action labels the button that starts over.
	Action string
}

// BuildSummary projects the terminal summary from a snapshot. The tier is
// chosen from the rounded accuracy; a lives-triggered end always uses the
// out-of-lives variant.
func BuildSummary(s Snapshot) SessionSummary {
	acc := roundInt(s.Stats.Accuracy)
	sum := SessionSummary{
		Questions:  s.Stats.Answered,
		Accuracy:   acc,
		BestStreak: s.Stats.BestStreak,
		AvgTime:    roundInt(s.Stats.AvgTime),
		Action:     "Start New Session",
	}

	switch {
	case s.Progress.OutOfLives():
		sum.Tier = TierOutOfLives
		sum.Title = "Out of Hearts!"
		sum.Subtitle = "Don't give up! Each mistake is a chance to learn."
		sum.Message = fmt.Sprintf("You answered %d questions with %d%% accuracy. Ready to try again?", sum.Questions, acc)
		sum.Action = "Try Again"
	case acc >= 90:
		sum.Tier = TierOutstanding
		sum.Title = "Outstanding!"
		sum.Subtitle = "You're absolutely crushing it!"
	case acc >= 70:
		sum.Tier = TierWellDone
		sum.Title = "Well Done!"
		sum.Subtitle = "That's some solid progress!"
	default:
		sum.Tier = TierKeepPracticing
		sum.Title = "Session Complete!"
		sum.Subtitle = "Practice makes perfect!"
	}
	return sum
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
