package cmdutil

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/pomver/internal/coordinate"
	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/plan"
	"github.com/opmodel/pomver/internal/reactor"
	"github.com/opmodel/pomver/internal/testutil"
)

func sampleReactor(t *testing.T) *reactor.Reactor {
	t.Helper()
	r, err := Discover(testutil.SampleReactor(t))
	require.NoError(t, err)
	return r
}

func releaseVersions(t *testing.T, r *reactor.Reactor, flags PlanFlags, template string) (*plan.Plan, *coordinate.Map) {
	t.Helper()
	p, err := ResolvePlan(r, flags, template)
	require.NoError(t, err)
	versions, err := p.ReleaseVersions()
	require.NoError(t, err)
	return p, versions
}

func TestDiscover_Errors(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, oerrors.ExitNotFound, exitErr.Code)
	assert.True(t, exitErr.Printed)
}

func TestResolvePlan(t *testing.T) {
	r := sampleReactor(t)

	t.Run("derived", func(t *testing.T) {
		p, versions := releaseVersions(t, r, PlanFlags{}, "https://git.example.org/sample/tree/v{version}")
		assert.Equal(t, "https://git.example.org/sample/tree/v1.0", p.TagURL)
		v, _ := versions.Get(coordinate.New("org.example", "core"))
		assert.Equal(t, "1.0", v)
	})

	t.Run("plan file", func(t *testing.T) {
		path := testutil.WriteFile(t, t.TempDir(), "plan.yaml", `modules:
  - {groupId: org.example, artifactId: parent, release: "2.0"}
  - {groupId: org.example, artifactId: api, release: "2.0"}
  - {groupId: org.example, artifactId: core, release: "2.0"}
`)
		p, versions := releaseVersions(t, r, PlanFlags{PlanFile: path}, "https://git.example.org/sample/tree/v{version}")
		assert.Equal(t, "https://git.example.org/sample/tree/v2.0", p.TagURL)
		assert.Equal(t, 3, versions.Len())
	})

	t.Run("plan file tag wins", func(t *testing.T) {
		path := testutil.WriteFile(t, t.TempDir(), "plan.yaml", `tagURL: https://git.example.org/tags/fixed
modules:
  - {groupId: org.example, artifactId: parent, release: "2.0"}
`)
		p, err := ResolvePlan(r, PlanFlags{PlanFile: path}, "https://git.example.org/sample/tree/v{version}")
		require.NoError(t, err)
		assert.Equal(t, "https://git.example.org/tags/fixed", p.TagURL)
	})

	t.Run("conflicting flags", func(t *testing.T) {
		_, err := ResolvePlan(r, PlanFlags{PlanFile: "plan.yaml", ReleaseVersion: "1"}, "")
		assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
	})
}

func TestRunReactor(t *testing.T) {
	t.Run("dry run leaves descriptors untouched", func(t *testing.T) {
		r := sampleReactor(t)
		_, versions := releaseVersions(t, r, PlanFlags{}, "")

		o, err := RunReactor(context.Background(), r, reactor.Options{Versions: versions, Verify: true}, true)
		require.NoError(t, err)
		assert.Len(t, o.Modified(), 3)
		assert.Equal(t, testutil.SampleCorePOM, testutil.ReadFile(t, filepath.Join(filepath.Dir(r.Root), "core", "pom.xml")))
	})

	t.Run("writes descriptors", func(t *testing.T) {
		r := sampleReactor(t)
		_, versions := releaseVersions(t, r, PlanFlags{}, "")

		_, err := RunReactor(context.Background(), r, reactor.Options{Versions: versions}, false)
		require.NoError(t, err)
		core := testutil.ReadFile(t, filepath.Join(filepath.Dir(r.Root), "core", "pom.xml"))
		assert.NotContains(t, core, "SNAPSHOT")
	})

	t.Run("strict failure is printed and nothing written", func(t *testing.T) {
		r := sampleReactor(t)
		_, versions := releaseVersions(t, r, PlanFlags{}, "")

		_, err := RunReactor(context.Background(), r, reactor.Options{Versions: versions, Strict: true}, false)
		require.Error(t, err)
		var exitErr *oerrors.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, oerrors.ExitValidationError, exitErr.Code)
		assert.True(t, exitErr.Printed)
		assert.True(t, errors.Is(err, oerrors.ErrSnapshotNotAllowed))
		assert.Equal(t, testutil.SampleParentPOM, testutil.ReadFile(t, r.Root))
	})
}

func TestExit(t *testing.T) {
	err := Exit(oerrors.NewConfigurationError("bad plan", nil, ""))
	assert.Equal(t, oerrors.ExitConfigurationError, err.Code)
	assert.True(t, err.Printed)
}

func TestResolvePlan_InvalidOverride(t *testing.T) {
	r := sampleReactor(t)
	_, err := ResolvePlan(r, PlanFlags{ReleaseVersion: "2.0-SNAPSHOT"}, "")
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}
