package problemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a tutor creating adaptive multiple-choice practice questions.

Rules:
- Generate a single question on the given topic at exactly the requested difficulty (1 = easiest, 10 = hardest).
- Pitch vocabulary and examples at the learner's age group.
- Provide exactly 4 options. Exactly one is correct. Distractors should reflect common misconceptions, not random values.
- Vary the position of the correct option.
- The explanation has two parts: "correct" says why the right option is right, "key_point" is one short takeaway.
- Keep the question self-contained. Do not refer to earlier questions.
- Use plain text. No markdown, no LaTeX.`

// AgeGroup maps an age in years to the label used in prompts and returned
// with each question.
func AgeGroup(age int) string {
	switch {
	case age <= 0:
		return "general"
	case age < 9:
		return "early learner"
	case age < 13:
		return "middle grade"
	case age < 18:
		return "teen"
	default:
		return "adult"
	}
}

// buildUserMessage constructs the user message from GenerateInput and the
// difficulty chosen for this request.
func buildUserMessage(input GenerateInput, target int, feedback string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Difficulty: %d\n", target)
	fmt.Fprintf(&b, "Learner age: %d (%s)\n", input.UserContext.Age, AgeGroup(input.UserContext.Age))

	b.WriteString("\nPrevious question:\n")
	if input.Previous == nil {
		b.WriteString("None, this is the first question of the session.")
	} else {
		result := "incorrect"
		if input.Previous.WasCorrect {
			result = "correct"
		}
		fmt.Fprintf(&b, "Answered %s in %d seconds at difficulty %d.", result, input.Previous.TimeSpent, input.Difficulty)
	}

	if feedback != "" {
		b.WriteString("\n\nYour previous attempt was rejected: ")
		b.WriteString(feedback)
		b.WriteString("\nFix this in the new question.")
	}

	return b.String()
}
