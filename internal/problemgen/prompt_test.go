package problemgen

import (
	"strings"
	"testing"
)

func TestTargetDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		current int
		prev    *Performance
		want    int
	}{
		{"first question", 3, nil, 3},
		{"first question below floor", 0, nil, 1},
		{"fast correct", 3, &Performance{TimeSpent: 5, WasCorrect: true}, 4},
		{"slow correct", 3, &Performance{TimeSpent: 45, WasCorrect: true}, 3},
		{"incorrect", 3, &Performance{TimeSpent: 5, WasCorrect: false}, 2},
		{"incorrect at floor", 1, &Performance{WasCorrect: false}, 1},
		{"correct at ceiling", 10, &Performance{TimeSpent: 1, WasCorrect: true}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetDifficulty(tt.current, tt.prev); got != tt.want {
				t.Errorf("TargetDifficulty(%d) = %d, want %d", tt.current, got, tt.want)
			}
		})
	}
}

func TestAgeGroup(t *testing.T) {
	tests := map[int]string{
		0:  "general",
		7:  "early learner",
		10: "middle grade",
		15: "teen",
		30: "adult",
	}
	for age, want := range tests {
		if got := AgeGroup(age); got != want {
			t.Errorf("AgeGroup(%d) = %q, want %q", age, got, want)
		}
	}
}

func TestBuildUserMessage_FirstQuestion(t *testing.T) {
	msg := buildUserMessage(GenerateInput{
		Topic:       "Quantum Physics",
		Difficulty:  1,
		UserContext: UserContext{Age: 16},
	}, 1, "")

	for _, want := range []string{"Topic: Quantum Physics", "Difficulty: 1", "Learner age: 16 (teen)", "first question"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "rejected") {
		t.Error("unexpected feedback section")
	}
}

func TestBuildUserMessage_WithPrevious(t *testing.T) {
	msg := buildUserMessage(GenerateInput{
		Topic:      "Quantum Physics",
		Difficulty: 4,
		Previous:   &Performance{TimeSpent: 12, WasCorrect: false},
	}, 3, "options 0 and 1 are identical")

	if !strings.Contains(msg, "Answered incorrect in 12 seconds at difficulty 4") {
		t.Errorf("missing previous performance:\n%s", msg)
	}
	if !strings.Contains(msg, "options 0 and 1 are identical") {
		t.Errorf("missing feedback:\n%s", msg)
	}
}
