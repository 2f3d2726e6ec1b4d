package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no post exists for a requested ID.
	ErrNotFound = errors.New("post not found")

	// ErrStoreUnavailable is returned when the persisted document is missing
	// or unreadable. Callers treat this as "empty collection, not yet
	// initialized" rather than a fatal condition.
	ErrStoreUnavailable = errors.New("post store unavailable")

	// ErrStoreWrite is returned when the persisted document cannot be
	// written. The caller's in-memory state is not rolled back here.
	ErrStoreWrite = errors.New("post store write failed")
)

// ValidationError reports bad or missing input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
