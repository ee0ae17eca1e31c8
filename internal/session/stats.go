package session

import "github.com/abhisek/curio/internal/problemgen"

// SessionStats holds running statistics over answered questions. Means are
// updated incrementally from the previous mean and count.
type SessionStats struct {
	// Answered is the number of questions answered this session.
	Answered int

	// Accuracy is the mean of per-question correctness scored 0 or 100.
	Accuracy float64

	Streak     int
	BestStreak int

	// AvgTime is the mean whole seconds spent per answered question.
	AvgTime float64

	// Difficulty is the level reported by the most recent load, never
	// below problemgen.MinDifficulty.
	Difficulty int
}

// NewStats returns empty stats seeded with the starting difficulty.
func NewStats(difficulty int) SessionStats {
	return SessionStats{Difficulty: floorDifficulty(difficulty)}
}

// Record folds one answered question into the running statistics.
func (s *SessionStats) Record(correct bool, seconds int) {
	score := 0.0
	if correct {
		score = 100
	}
	n := float64(s.Answered)
	s.Accuracy = incrementalMean(s.Accuracy, n, score)
	s.AvgTime = incrementalMean(s.AvgTime, n, float64(seconds))
	s.Answered++

	if correct {
		s.Streak++
		if s.Streak > s.BestStreak {
			s.BestStreak = s.Streak
		}
	} else {
		s.Streak = 0
	}
}

// SetDifficulty stores the level returned by the service.
func (s *SessionStats) SetDifficulty(d int) {
	s.Difficulty = floorDifficulty(d)
}

func incrementalMean(mean, count, value float64) float64 {
	return (mean*count + value) / (count + 1)
}

func floorDifficulty(d int) int {
	if d < problemgen.MinDifficulty {
		return problemgen.MinDifficulty
	}
	return d
}
