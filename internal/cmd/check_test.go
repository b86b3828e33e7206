package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/pomver/internal/testutil"
)

func TestCheck_SnapshotReactor(t *testing.T) {
	isolate(t)
	dir := testutil.SampleReactor(t)

	out, err := execute(t, "check", dir)
	assert.Equal(t, ExitValidationError, exitCode(t, err))
	assert.Contains(t, out, "org.example:core")
	assert.Contains(t, out, "snapshot")
	assert.Contains(t, out, "1.0-SNAPSHOT")
}

func TestCheck_ReleasedReactor(t *testing.T) {
	isolate(t)
	dir := testutil.SampleReactor(t)

	_, err := execute(t, "release", dir)
	require.NoError(t, err)

	out, err := execute(t, "check", dir, "-o", "json")
	require.NoError(t, err)

	var entries []checkEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "valid", e.Status, e.Module)
		assert.Empty(t, e.Offender)
	}
	assert.Equal(t, "api/pom.xml", entries[1].Path)
}

func TestCheck_InvalidFormat(t *testing.T) {
	isolate(t)
	_, err := execute(t, "check", testutil.SampleReactor(t), "-o", "toml")
	assert.Equal(t, ExitConfigurationError, exitCode(t, err))
}
