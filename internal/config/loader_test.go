package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/pomver/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		path := writeConfig(t, `
strict: true
verify: true
workers: 8
scm:
  tagURLTemplate: https://git.example.org/tags/v{version}
log:
  timestamps: false
`)
		loader, err := NewLoader()
		require.NoError(t, err)
		cfg, err := loader.Load(path)
		require.NoError(t, err)

		assert.True(t, cfg.Strict)
		require.NotNil(t, cfg.Verify)
		assert.True(t, *cfg.Verify)
		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, "https://git.example.org/tags/v{version}", cfg.SCM.TagURLTemplate)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
		assert.True(t, loader.IsSet("workers"))
		assert.True(t, loader.IsSet("scm.tagURLTemplate"))
	})

	t.Run("returns defaults for missing file", func(t *testing.T) {
		loader, err := NewLoader()
		require.NoError(t, err)
		cfg, err := loader.Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
		require.NoError(t, err)

		assert.False(t, cfg.Strict)
		require.NotNil(t, cfg.Verify)
		assert.False(t, *cfg.Verify)
		assert.Equal(t, DefaultWorkers, cfg.Workers)
		assert.False(t, loader.IsSet("workers"))
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			field   string
		}{
			{"unknown key", "namespace: default\n", "namespace"},
			{"workers out of range", "workers: 0\n", "workers"},
			{"wrong type", "strict: sometimes\n", "strict"},
			{"empty template", "scm:\n  tagURLTemplate: \"\"\n", "scm.tagURLTemplate"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				loader, err := NewLoader()
				require.NoError(t, err)
				_, err = loader.Load(writeConfig(t, tt.content))
				require.Error(t, err)
				assert.True(t, errors.Is(err, oerrors.ErrValidation))

				var verrs ValidationErrors
				require.True(t, errors.As(err, &verrs))
				var fields []string
				for _, e := range verrs {
					fields = append(fields, e.Field)
				}
				assert.Contains(t, fields, tt.field)
			})
		}
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		loader, err := NewLoader()
		require.NoError(t, err)
		_, err = loader.Load(writeConfig(t, "strict: [\n"))
		assert.True(t, errors.Is(err, oerrors.ErrValidation))
	})
}

func TestValidator_FieldNames(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.ValidateData([]byte("workers: 0\nscm:\n  tagURLTemplate: \"\"\n"))
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	for _, e := range verrs {
		assert.NotContains(t, e.Field, "#Config")
	}
	assert.Equal(t, "workers", fieldPath([]string{"#Config", "workers"}))
	assert.Equal(t, "scm.tagURLTemplate", fieldPath([]string{"#Config", "scm", "tagURLTemplate"}))
	assert.Equal(t, "strict", fieldPath([]string{"strict"}))
}

func TestValidator_Validate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(DefaultConfig()))
	assert.Error(t, v.Validate(&Config{Workers: 100}))
	assert.NoError(t, v.ValidateData(nil))
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())
	errs := ValidationErrors{{Field: "workers", Message: "out of range"}, {Message: "bad"}}
	assert.Equal(t, "config validation failed:\n  workers: out of range\n  bad\n", errs.Error())
}
