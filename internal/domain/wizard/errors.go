package wizard

import (
	"errors"
	"fmt"

	"onboard/internal/validation"
)

// ErrSubmitting rejects navigation and mutation while a submission is in
// flight. Recoverable: callers retry once the pending call settles.
var ErrSubmitting = errors.New("submission in progress")

// ValidationError carries the ordered violations for one section. It blocks
// the attempted transition but never changes controller state.
type ValidationError struct {
	Section    string
	Violations []validation.Violation
}

func (e *ValidationError) Error() string {
	first := e.First()
	if first.Message == "" {
		return fmt.Sprintf("%s: validation failed", e.Section)
	}
	return fmt.Sprintf("%s: %s", first.FieldPath, first.Message)
}

// First returns the violation surfaced to the user: the earliest one in
// field declaration order.
func (e *ValidationError) First() validation.Violation {
	if len(e.Violations) == 0 {
		return validation.Violation{}
	}
	return e.Violations[0]
}

// TransitionError reports an attempted navigation that correct UI wiring
// would never issue, such as Next on the review step. Caller bug, not user
// error.
type TransitionError struct {
	Op     string
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// SubmissionError wraps a transport failure. The controller stays on the
// review step so the user can retry.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func fieldError(fieldPath, message string) *ValidationError {
	return &ValidationError{
		Violations: []validation.Violation{{FieldPath: fieldPath, Message: message}},
	}
}
