// Package fleet holds the error kinds and value types shared by every record
// package: month and date parameters, money checks and validation failures.
package fleet

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record (or a required related record) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidParameter is returned for missing or malformed filter parameters.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnauthorized is returned when the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports a write that violates a field constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// MissingParameter wraps ErrInvalidParameter for a required parameter that was not given.
func MissingParameter(name string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidParameter, name)
}

// NotFound wraps ErrNotFound with the kind of record that was looked up.
func NotFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}
