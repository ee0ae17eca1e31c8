package problemgen

import (
	"fmt"
	"strings"
)

// OptionCount is the number of choices every question carries.
const OptionCount = 4

// StructuralValidator checks that required fields are present, within
// length limits, and that the correct answer indexes the options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("text is empty")
	}
	if len(q.Text) > 500 {
		return fail("text exceeds 500 characters")
	}
	if len(q.Options) != OptionCount {
		return fail(fmt.Sprintf("expected %d options, got %d", OptionCount, len(q.Options)))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fail(fmt.Sprintf("option %d is empty", i))
		}
		if len(opt) > 200 {
			return fail(fmt.Sprintf("option %d exceeds 200 characters", i))
		}
	}
	if err := q.CheckAnswerIndex(); err != nil {
		return fail(err.Error())
	}
	if strings.TrimSpace(q.Explanation.Correct) == "" {
		return fail("explanation.correct is empty")
	}
	if strings.TrimSpace(q.Explanation.KeyPoint) == "" {
		return fail("explanation.key_point is empty")
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return fail(fmt.Sprintf("difficulty must be between %d and %d", MinDifficulty, MaxDifficulty))
	}
	return nil
}

// DistinctOptionsValidator rejects questions with duplicate choices, which
// would make more than one option look correct.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	seen := make(map[string]int, len(q.Options))
	for i, opt := range q.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if j, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("options %d and %d are identical", j, i),
				Retryable: true,
			}
		}
		seen[key] = i
	}
	return nil
}
