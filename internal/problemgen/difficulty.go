package problemgen

const (
	MinDifficulty = 1
	MaxDifficulty = 10

	// FastAnswerSeconds is the threshold under which a correct answer
	// counts as fluent and earns a step up.
	FastAnswerSeconds = 20
)

// ClampDifficulty keeps d within [MinDifficulty, MaxDifficulty].
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// TargetDifficulty picks the level for the next question from the current
// level and the learner's last result.
//
//   - no previous result: stay at the current level
//   - correct and fast: one step up
//   - correct but slow: stay
//   - incorrect: one step down
func TargetDifficulty(current int, prev *Performance) int {
	current = ClampDifficulty(current)
	if prev == nil {
		return current
	}
	switch {
	case !prev.WasCorrect:
		return ClampDifficulty(current - 1)
	case prev.TimeSpent < FastAnswerSeconds:
		return ClampDifficulty(current + 1)
	default:
		return current
	}
}
