// ABOUTME: Error categories returned by the tracker.
// ABOUTME: Callers match them with errors.Is; storage messages are kept verbatim inside.
package tracker

import (
	"errors"
	"fmt"

	"github.com/harperreed/fitdiary/internal/storage"
)

var (
	// ErrValidation marks bad input rejected before any storage call.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a missing profile, day record or entry.
	ErrNotFound = storage.ErrNotFound
	// ErrPersistence marks a storage failure.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// persistence wraps a storage failure. Not-found errors pass through
// unchanged so callers can still match ErrNotFound.
func persistence(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
