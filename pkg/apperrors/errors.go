package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrReferential       = errors.New("referenced entity does not exist")
	ErrInvalidTransition = errors.New("invalid pipeline transition")
	ErrDuplicate         = errors.New("already exists")
	ErrConcurrency       = errors.New("transaction could not serialize")
	ErrStore             = errors.New("store failure")
)

// ValidationError identifies the field that failed validation. It unwraps to
// ErrValidation so callers can keep using errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validationf builds a ValidationError for the given field.
func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// TransitionError reports a pipeline status change that violates the forward
// ordering rules. It unwraps to ErrInvalidTransition.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s without force", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
