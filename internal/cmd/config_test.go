package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/pomver/internal/config"
	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/testutil"
)

func TestConfigInit(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at "+path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loader, err := config.NewLoader()
	require.NoError(t, err)
	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultWorkers, cfg.WithDefaults().Workers)

	t.Run("existing file", func(t *testing.T) {
		_, err := execute(t, "config", "init", "--config", path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
	})

	t.Run("force", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0o600))
		_, err := execute(t, "config", "init", "--config", path, "--force")
		require.NoError(t, err)
		assert.NotContains(t, testutil.ReadFile(t, path), "workers: 2\n")
	})
}

func TestConfigInit_DefaultPath(t *testing.T) {
	isolate(t)

	_, err := execute(t, "config", "init")
	require.NoError(t, err)

	paths, err := config.DefaultPaths()
	require.NoError(t, err)
	exists, err := config.ConfigFileExists(paths.ConfigFile)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestConfigVet(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "valid.yaml",
			"workers: 3\nscm:\n  tagURLTemplate: https://git.example.org/tags/v{version}\n")
		out, err := execute(t, "config", "vet", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Config file found")
		assert.Contains(t, out, "Schema valid")
		assert.Contains(t, out, "3")
		assert.Contains(t, out, "https://git.example.org/tags/v{version}")
	})

	t.Run("missing", func(t *testing.T) {
		_, err := execute(t, "config", "vet", "--config", filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrNotFound))
		assert.Equal(t, ExitNotFound, exitCode(t, err))
	})

	t.Run("invalid", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "invalid.yaml", "workers: 0\n")
		_, err := execute(t, "config", "vet", "--config", path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
	})
}
