package entities

import (
	"errors"
	"fmt"
)

// Quiz session state errors.
var (
	ErrSessionNotStarted   = errors.New("quiz session not started")
	ErrSessionComplete     = errors.New("quiz session is complete")
	ErrSessionNotComplete  = errors.New("quiz session is not complete yet")
	ErrAnswerNotExpected   = errors.New("current question is already answered")
	ErrQuestionNotAnswered = errors.New("current question is not answered yet")
	ErrRetryRequired       = errors.New("question must be answered correctly before advancing")
	ErrRetryNotAllowed     = errors.New("retry is not allowed for this question")
)

// ValidationError reports input that does not have the expected shape:
// a malformed snapshot, an empty catalog subset, an out-of-range option.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
