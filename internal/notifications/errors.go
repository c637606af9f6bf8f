package notifications

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied marks operations refused because the user or platform
// withheld notification permission. Non-fatal; capability degrades.
var ErrPermissionDenied = errors.New("notification permission denied")

// ValidationError marks a malformed settings record. It blocks the specific
// operation and never corrupts persisted state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError returns a new validation error for the given field.
func NewValidationError(field, formatString string, a ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(formatString, a...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
