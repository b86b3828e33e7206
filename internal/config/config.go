// Package config provides configuration loading and management.
package config

// Default values.
const (
	DefaultWorkers = 4
	DefaultVerify  = false
)

// SCMConfig contains source control settings.
type SCMConfig struct {
	// TagURLTemplate is the SCM tag written into released descriptors.
	// "{version}" is replaced by the release version.
	// Env: POMVER_TAG_URL_TEMPLATE
	TagURLTemplate string `mapstructure:"tagURLTemplate" json:"tagURLTemplate,omitempty" yaml:"tagURLTemplate,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
}

// Config represents the pomver configuration.
// Loaded from ~/.pomver/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// Strict rejects snapshot references before rewriting.
	// Env: POMVER_STRICT, Default: false
	Strict bool `mapstructure:"strict" json:"strict" yaml:"strict"`

	// Verify rejects snapshot references left after rewriting.
	// Env: POMVER_VERIFY, Default: true
	Verify *bool `mapstructure:"verify" json:"verify,omitempty" yaml:"verify,omitempty"`

	// Workers bounds how many descriptors are processed in parallel.
	// Env: POMVER_WORKERS, Default: 4
	Workers int `mapstructure:"workers" json:"workers,omitempty" yaml:"workers,omitempty"`

	// SCM contains source control settings.
	SCM SCMConfig `mapstructure:"scm" json:"scm,omitempty" yaml:"scm,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" json:"log,omitempty" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `pomver config init` to generate the initial config file.
func DefaultConfig() *Config {
	verify := DefaultVerify
	return &Config{
		Verify:  &verify,
		Workers: DefaultWorkers,
	}
}

// WithDefaults returns a copy of c with unset values defaulted.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.Verify == nil {
		verify := DefaultVerify
		out.Verify = &verify
	}
	if out.Workers == 0 {
		out.Workers = DefaultWorkers
	}
	return &out
}
