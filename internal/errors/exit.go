package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the pomver binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates a snapshot reference was rejected or a
	// plan or config file failed schema validation.
	ExitValidationError = 2

	// ExitConfigurationError indicates an invalid release plan or settings.
	ExitConfigurationError = 3

	// ExitMalformedDescriptor indicates a descriptor could not be read.
	ExitMalformedDescriptor = 4

	// ExitNotFound indicates a descriptor, module, or file was not found.
	ExitNotFound = 5
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed is true when the command already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError determines the exit code for err.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrSnapshotNotAllowed), errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrConfiguration):
		return ExitConfigurationError
	case errors.Is(err, ErrMalformedDescriptor):
		return ExitMalformedDescriptor
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}
