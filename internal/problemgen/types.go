package problemgen

import "fmt"

// Question is a single multiple-choice practice question. It is the wire
// shape shared by the backend and the playground client.
type Question struct {
	// Text is the question prompt displayed to the learner.
	Text string `json:"text"`

	// Options holds the answer choices in display order.
	Options []string `json:"options"`

	// CorrectAnswer is the index into Options of the correct choice.
	CorrectAnswer int `json:"correctAnswer"`

	// Explanation is shown once the learner has answered.
	Explanation Explanation `json:"explanation"`

	// Difficulty is an opaque level (1-10) chosen by the backend. The client
	// stores it and sends it back with the next request.
	Difficulty int `json:"difficulty"`

	Topic        string `json:"topic"`
	Subtopic     string `json:"subtopic"`
	QuestionType string `json:"questionType"`
	AgeGroup     string `json:"ageGroup"`
}

// Explanation is the post-answer feedback for a question.
type Explanation struct {
	Correct  string `json:"correct"`
	KeyPoint string `json:"key_point"`
}

// IsCorrect reports whether index selects the correct option.
func (q *Question) IsCorrect(index int) bool {
	return index == q.CorrectAnswer
}

// CheckAnswerIndex returns an error when CorrectAnswer does not index Options.
func (q *Question) CheckAnswerIndex() error {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("correctAnswer %d out of range for %d options", q.CorrectAnswer, len(q.Options))
	}
	return nil
}

// UserContext describes the learner. It is hydrated from the local profile
// and sent with every request.
type UserContext struct {
	Age int `json:"age"`
}

// Performance is the learner's result on the question just completed.
type Performance struct {
	// TimeSpent is whole seconds spent before answering.
	TimeSpent  int  `json:"timeSpent"`
	WasCorrect bool `json:"wasCorrect"`
}

// GenerateInput holds all context needed to generate a question.
type GenerateInput struct {
	Topic string

	// Difficulty is the level the learner was last served.
	Difficulty int

	UserContext UserContext

	// Previous is nil for the first question of a session.
	Previous *Performance
}
