// Package errors provides sentinel errors for the pomver CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrConfiguration indicates an invalid release plan or a caller contract
	// violation, such as a module missing from its own coordinate map.
	ErrConfiguration = errors.New("configuration error")

	// ErrSnapshotNotAllowed indicates a snapshot version was found while
	// snapshots are disallowed.
	ErrSnapshotNotAllowed = errors.New("snapshot version not allowed")

	// ErrMalformedDescriptor indicates a descriptor that is not well-formed
	// or lacks required elements.
	ErrMalformedDescriptor = errors.New("malformed descriptor")

	// ErrValidation indicates a CUE schema validation failure.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a descriptor, module, or file was not found.
	ErrNotFound = errors.New("not found")
)

// DetailError captures structured error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path and line number (optional).
	Location string

	// Field is the field name for schema errors (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewMalformedError creates a malformed descriptor error with details.
// cause is wrapped alongside ErrMalformedDescriptor.
func NewMalformedError(message, location string, cause error) error {
	wrapped := ErrMalformedDescriptor
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrMalformedDescriptor, cause)
	}
	return &DetailError{
		Type:     "malformed descriptor",
		Message:  message,
		Location: location,
		Cause:    wrapped,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewConfigurationError creates a configuration error with details.
func NewConfigurationError(message string, context map[string]string, hint string) error {
	return &DetailError{
		Type:    "configuration error",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   ErrConfiguration,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
