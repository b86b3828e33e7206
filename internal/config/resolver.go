package config

import (
	"fmt"
	"os"
	"strconv"

	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Environment variables consulted by Resolve and ResolveConfigPath.
const (
	EnvConfig         = "POMVER_CONFIG"
	EnvStrict         = "POMVER_STRICT"
	EnvVerify         = "POMVER_VERIFY"
	EnvWorkers        = "POMVER_WORKERS"
	EnvTagURLTemplate = "POMVER_TAG_URL_TEMPLATE"
	EnvLogTimestamps  = "POMVER_LOG_TIMESTAMPS"
)

// ResolvedValue records the winning value of a key and the values it
// shadowed.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) POMVER_CONFIG env, (3) ~/.pomver/config.yaml.
func ResolveConfigPath(flagValue string) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvConfig)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case flagValue != "":
		result.ConfigPath = flagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// Flags carries command-line values; nil means the flag was not given.
type Flags struct {
	Strict         *bool
	Verify         *bool
	Workers        *int
	TagURLTemplate *string
	Timestamps     *bool
}

// Settings is the effective configuration after applying precedence.
type Settings struct {
	Strict         bool
	Verify         bool
	Workers        int
	TagURLTemplate string
	// Timestamps is nil when no source set it.
	Timestamps *bool

	// Values records how every key was resolved.
	Values []ResolvedValue
}

// FileKeys reports which keys a config file set explicitly.
type FileKeys interface {
	IsSet(key string) bool
}

// Resolve applies flag > env > config > default to every setting. file
// tells which keys the config file set; when nil, non-zero values of cfg
// count as set.
func Resolve(cfg *Config, file FileKeys, flags Flags) (*Settings, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	inFile := func(key string, nonZero bool) bool {
		if file == nil {
			return nonZero
		}
		return file.IsSet(key)
	}

	s := &Settings{}
	var err error
	var rv ResolvedValue

	if s.Strict, rv, err = resolve("strict", EnvStrict, flags.Strict, strconv.ParseBool,
		cfg.Strict, inFile("strict", cfg.Strict), false); err != nil {
		return nil, err
	}
	s.Values = append(s.Values, rv)

	verify := DefaultVerify
	if cfg.Verify != nil {
		verify = *cfg.Verify
	}
	if s.Verify, rv, err = resolve("verify", EnvVerify, flags.Verify, strconv.ParseBool,
		verify, inFile("verify", cfg.Verify != nil), DefaultVerify); err != nil {
		return nil, err
	}
	s.Values = append(s.Values, rv)

	if s.Workers, rv, err = resolve("workers", EnvWorkers, flags.Workers, strconv.Atoi,
		cfg.Workers, inFile("workers", cfg.Workers != 0), DefaultWorkers); err != nil {
		return nil, err
	}
	if s.Workers < 1 {
		return nil, oerrors.NewConfigurationError(
			fmt.Sprintf("workers must be at least 1, got %d", s.Workers),
			map[string]string{"Source": string(rv.Source)}, "")
	}
	s.Values = append(s.Values, rv)

	if s.TagURLTemplate, rv, err = resolve("scm.tagURLTemplate", EnvTagURLTemplate, flags.TagURLTemplate,
		func(v string) (string, error) { return v, nil },
		cfg.SCM.TagURLTemplate, inFile("scm.tagURLTemplate", cfg.SCM.TagURLTemplate != ""), ""); err != nil {
		return nil, err
	}
	s.Values = append(s.Values, rv)

	var timestamps bool
	timestampsSet := flags.Timestamps != nil || os.Getenv(EnvLogTimestamps) != "" || cfg.Log.Timestamps != nil
	cfgTimestamps := true
	if cfg.Log.Timestamps != nil {
		cfgTimestamps = *cfg.Log.Timestamps
	}
	if timestamps, rv, err = resolve("log.timestamps", EnvLogTimestamps, flags.Timestamps, strconv.ParseBool,
		cfgTimestamps, inFile("log.timestamps", cfg.Log.Timestamps != nil), true); err != nil {
		return nil, err
	}
	if timestampsSet {
		s.Timestamps = &timestamps
	}
	s.Values = append(s.Values, rv)

	return s, nil
}

// resolve picks the value of one key by precedence and records the values
// it shadowed.
func resolve[T any](key, envVar string, flag *T, parse func(string) (T, error), cfgValue T, cfgSet bool, def T) (T, ResolvedValue, error) {
	type candidate struct {
		source ConfigSource
		value  T
	}
	var candidates []candidate

	if flag != nil {
		candidates = append(candidates, candidate{SourceFlag, *flag})
	}
	if raw := os.Getenv(envVar); raw != "" {
		v, err := parse(raw)
		if err != nil {
			var zero T
			return zero, ResolvedValue{}, oerrors.NewConfigurationError(
				fmt.Sprintf("invalid value %q for %s", raw, envVar),
				map[string]string{"Key": key}, err.Error())
		}
		candidates = append(candidates, candidate{SourceEnv, v})
	}
	if cfgSet {
		candidates = append(candidates, candidate{SourceConfig, cfgValue})
	}
	candidates = append(candidates, candidate{SourceDefault, def})

	rv := ResolvedValue{
		Key:      key,
		Value:    candidates[0].value,
		Source:   candidates[0].source,
		Shadowed: make(map[ConfigSource]any),
	}
	for _, c := range candidates[1:] {
		rv.Shadowed[c.source] = c.value
	}
	return candidates[0].value, rv, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
