package cmd

import (
	"errors"

	oerrors "github.com/opmodel/pomver/internal/errors"
)

// Exit codes, shared with internal/errors.
const (
	ExitSuccess             = oerrors.ExitSuccess
	ExitGeneralError        = oerrors.ExitGeneralError
	ExitValidationError     = oerrors.ExitValidationError
	ExitConfigurationError  = oerrors.ExitConfigurationError
	ExitMalformedDescriptor = oerrors.ExitMalformedDescriptor
	ExitNotFound            = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

var errNotInitialized = errors.New("settings not initialized")

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	return oerrors.ExitCodeFromError(err)
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitConfigurationError:
		return "Configuration Error"
	case ExitMalformedDescriptor:
		return "Malformed Descriptor"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
