package problemgen

import (
	"strings"
	"testing"
)

func validQuestion() *Question {
	return &Question{
		Text:          "Which planet is known as the Red Planet?",
		Options:       []string{"Earth", "Venus", "Mars", "Jupiter"},
		CorrectAnswer: 2,
		Explanation: Explanation{
			Correct:  "Iron oxide on the surface of Mars gives it a red colour.",
			KeyPoint: "Mars is red because of rust.",
		},
		Difficulty: 2,
		Topic:      "Astronomy",
	}
}

func TestStructural_ValidQuestion(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuestion(), GenerateInput{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *Question)
		want   string
	}{
		{"empty text", func(q *Question) { q.Text = "  " }, "text is empty"},
		{"long text", func(q *Question) { q.Text = strings.Repeat("a", 501) }, "exceeds 500"},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, "expected 4 options"},
		{"blank option", func(q *Question) { q.Options[1] = "" }, "option 1 is empty"},
		{"answer out of range", func(q *Question) { q.CorrectAnswer = 4 }, "out of range"},
		{"negative answer", func(q *Question) { q.CorrectAnswer = -1 }, "out of range"},
		{"missing rationale", func(q *Question) { q.Explanation.Correct = "" }, "explanation.correct"},
		{"missing key point", func(q *Question) { q.Explanation.KeyPoint = "" }, "key_point"},
		{"difficulty zero", func(q *Question) { q.Difficulty = 0 }, "difficulty"},
		{"difficulty eleven", func(q *Question) { q.Difficulty = 11 }, "difficulty"},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(q)
			err := v.Validate(q, GenerateInput{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Message, tt.want) {
				t.Errorf("Message = %q, want substring %q", err.Message, tt.want)
			}
			if !err.Retryable {
				t.Error("expected retryable")
			}
		})
	}
}

func TestDistinctOptions(t *testing.T) {
	v := &DistinctOptionsValidator{}
	q := validQuestion()
	if err := v.Validate(q, GenerateInput{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	q.Options[3] = " mars "
	err := v.Validate(q, GenerateInput{})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if err.Validator != "distinct-options" {
		t.Errorf("Validator = %q, want distinct-options", err.Validator)
	}
}

func TestChain_StopsAtFirstRejection(t *testing.T) {
	q := validQuestion()
	q.Options = []string{"Mars", "Mars", "Venus"}

	verr := DefaultConfig().Validators.Validate(q, GenerateInput{})
	if verr == nil {
		t.Fatal("expected rejection")
	}
	if verr.Validator != "structural" {
		t.Errorf("Validator = %q, want structural", verr.Validator)
	}

	if verr := (Chain{}).Validate(q, GenerateInput{}); verr != nil {
		t.Errorf("empty chain rejected: %v", verr)
	}
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := validQuestion()
	if !q.IsCorrect(2) {
		t.Error("expected index 2 to be correct")
	}
	if q.IsCorrect(0) {
		t.Error("expected index 0 to be incorrect")
	}
}
