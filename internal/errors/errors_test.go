//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors are distinct
	all := []error{ErrConfiguration, ErrSnapshotNotAllowed, ErrMalformedDescriptor, ErrValidation, ErrNotFound}
	for i := range all {
		for j := range all {
			if i != j {
				assert.NotEqual(t, all[i], all[j])
			}
		}
	}
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "invalid value",
		Location: "/path/to/plan.cue:42",
		Field:    "modules[0].release",
		Context:  map[string]string{"Module": "org.example:core"},
		Hint:     "Remove the -SNAPSHOT suffix",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: /path/to/plan.cue:42")
	assert.Contains(t, output, "Field: modules[0].release")
	assert.Contains(t, output, "Module: org.example:core")
	assert.Contains(t, output, "invalid value")
	assert.Contains(t, output, "Hint: Remove the -SNAPSHOT suffix")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(
		"invalid value",
		"/path/to/plan.cue:42",
		"modules[0].release",
		"Use a release version",
	)

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "invalid value", detail.Message)
	assert.Equal(t, "/path/to/plan.cue:42", detail.Location)
	assert.Equal(t, "modules[0].release", detail.Field)
	assert.Equal(t, "Use a release version", detail.Hint)
}

func TestNewMalformedError(t *testing.T) {
	err := NewMalformedError("unexpected EOF", "pom.xml:3", io.ErrUnexpectedEOF)

	assert.True(t, errors.Is(err, ErrMalformedDescriptor))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "Location: pom.xml:3")

	bare := NewMalformedError("missing artifactId", "pom.xml", nil)
	assert.True(t, errors.Is(bare, ErrMalformedDescriptor))
}

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("module missing from plan",
		map[string]string{"Module": "org.example:core"}, "Add the module to the plan")

	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "Module: org.example:core")
	assert.Contains(t, err.Error(), "Hint: Add the module to the plan")
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("pom.xml not found", "/tmp/x", "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "schema check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "schema check failed")
}
