package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Loader reads the configuration file.
type Loader struct {
	v         *viper.Viper
	validator *Validator
}

// NewLoader creates a new configuration loader.
func NewLoader() (*Loader, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("verify", DefaultVerify)

	return &Loader{v: v, validator: validator}, nil
}

// Load loads and validates the configuration file at configFile. A missing
// file yields the defaults. Environment variables are not consulted here;
// see Resolve for the full precedence chain.
func (l *Loader) Load(configFile string) (*Config, error) {
	path := ExpandTilde(configFile)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		data = nil
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if len(data) > 0 {
		if err := l.validator.ValidateData(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// IsSet reports whether key was set in the loaded file.
func (l *Loader) IsSet(key string) bool {
	return l.v.InConfig(key)
}
