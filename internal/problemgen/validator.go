package problemgen

import "fmt"

// Validator inspects a generated question before it is served.
type Validator interface {
	Name() string
	Validate(q *Question, input GenerateInput) *ValidationError
}

// ValidationError is returned when a generated question is rejected.
// Retryable failures are sent back to the model as feedback.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Chain runs validators in order and stops at the first rejection.
type Chain []Validator

func (c Chain) Validate(q *Question, input GenerateInput) *ValidationError {
	for _, v := range c {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}
