package cmdutil

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/reactor"
	"github.com/opmodel/pomver/internal/release"
)

func sampleOutcome(t *testing.T) (*reactor.Reactor, *reactor.Outcome) {
	t.Helper()
	r := sampleReactor(t)
	p, versions := releaseVersions(t, r, PlanFlags{}, "https://git.example.org/sample/tree/v{version}")
	o, err := RunReactor(context.Background(), r, reactor.Options{Versions: versions, SCMTagURL: p.TagURL}, true)
	require.NoError(t, err)
	return r, o
}

func TestNewReport(t *testing.T) {
	r, o := sampleOutcome(t)

	rep := NewReport(r, o, true)
	assert.True(t, rep.DryRun)
	assert.Equal(t, 3, rep.Modified)
	assert.Equal(t, 0, rep.Unchanged)
	require.Len(t, rep.Modules, 3)

	assert.Equal(t, "org.example:parent", rep.Modules[0].Module)
	assert.Equal(t, "pom.xml", rep.Modules[0].Path)
	assert.Equal(t, output.StatusModified, rep.Modules[0].Status)
	assert.Len(t, rep.Modules[0].Changes, 2, "own version and scm tag")

	assert.Equal(t, "core/pom.xml", rep.Modules[2].Path)
	require.Len(t, rep.Modules[2].Changes, 2)
	assert.Equal(t, release.RoleParent, rep.Modules[2].Changes[0].Role)
	assert.Equal(t, release.RoleDependency, rep.Modules[2].Changes[1].Role)
}

func TestWriteReport(t *testing.T) {
	r, o := sampleOutcome(t)
	rep := NewReport(r, o, false)

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, output.FormatTable, rep))
		out := buf.String()
		assert.Contains(t, out, "MODULE")
		assert.Contains(t, out, "org.example:core")
		assert.Contains(t, out, "1.0-SNAPSHOT")
		assert.Contains(t, out, "https://git.example.org/sample/tree/v1.0")
		assert.Contains(t, out, "3 modified")
		assert.NotContains(t, out, "dry run")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, output.FormatYAML, rep))

		var decoded Report
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, 3, decoded.Modified)
		assert.Equal(t, "api/pom.xml", decoded.Modules[1].Path)
		assert.Equal(t, "1.0", decoded.Modules[1].Changes[0].To)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, output.FormatJSON, rep))
		assert.Contains(t, buf.String(), `"module": "org.example:api"`)
		assert.Contains(t, buf.String(), `"role": "dependency"`)
	})

	t.Run("nothing changed", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, output.FormatTable, &Report{Unchanged: 2, DryRun: true}))
		assert.Equal(t, "2 unchanged (dry run)\n", buf.String())
	})
}

func TestTargetVersion(t *testing.T) {
	_, o := sampleOutcome(t)
	for _, res := range o.Results {
		assert.Equal(t, "1.0", targetVersion(res), res.Module.Coordinate.String())
	}
}
