// Package errors provides typed errors shared across the application.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	// ErrDuplicateSymbol is returned by a store when the unique-symbol
	// policy is active and a create or update would reuse a symbol.
	ErrDuplicateSymbol = errors.New("symbol already exists")

	// ErrNotFound is returned when an update or delete targets an id
	// that is not in the store.
	ErrNotFound = errors.New("plan not found")

	// ErrStorageUnavailable is returned when the backing medium cannot
	// be opened, read, or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError represents a validation error on a single field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Storage wraps err into the ErrStorageUnavailable chain with context.
// Returns nil if err is nil.
func Storage(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", context, ErrStorageUnavailable, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
