// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/pomver/internal/cmdutil"
	"github.com/opmodel/pomver/internal/config"
	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/version"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved during PersistentPreRunE
	configPath string
	settings   *config.Settings
	configErr  error
)

// NewRootCmd creates the root command for the pomver CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pomver",
		Short: "Maven multi-module release version transformer",
		Long: `pomver moves the descriptors of a multi-module Maven build to their release
versions and on to the next development versions.

Every byte that is not a version stays as it was. Snapshot references can be
rejected before and after rewriting, and a reactor is written either
completely or not at all.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (env: POMVER_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output (env: POMVER_LOG_TIMESTAMPS)")

	rootCmd.AddCommand(NewReleaseCmd())
	rootCmd.AddCommand(NewNextCmd())
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewPlanCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads the configuration, resolves every setting against
// the command's flags and sets up logging.
func initializeGlobals(cmd *cobra.Command) error {
	settings, configErr = nil, nil

	pathResult, err := config.ResolveConfigPath(configFlag)
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	configPath = pathResult.ConfigPath

	// A broken config file must not stop commands that do not need it,
	// such as config init; loadedSettings reports the error later.
	var cfg *config.Config
	var file config.FileKeys
	loader, err := config.NewLoader()
	if err == nil {
		cfg, err = loader.Load(configPath)
		file = loader
	}
	if err != nil {
		output.Debug("config load error", "path", configPath, "error", err)
		configErr = err
		cfg, file = nil, nil
	}

	resolved, err := config.Resolve(cfg, file, config.Flags{
		Strict:         cmdutil.ChangedBool(cmd, "strict"),
		Verify:         cmdutil.ChangedBool(cmd, "verify"),
		Workers:        cmdutil.ChangedInt(cmd, "workers"),
		TagURLTemplate: cmdutil.ChangedString(cmd, "tag-url"),
		Timestamps:     cmdutil.ChangedBool(cmd, "timestamps"),
	})
	if err != nil {
		output.SetupLogging(output.LogConfig{Verbose: verboseFlag})
		cmdutil.PrintError("resolving settings failed", err)
		return cmdutil.Exit(err)
	}
	settings = resolved

	output.SetupLogging(output.LogConfig{
		Verbose:    verboseFlag,
		Timestamps: resolved.Timestamps,
	})

	info := version.GetInfo()
	output.Debug("pomver started",
		"version", info.Version,
		"config", configPath,
		"config_source", pathResult.Source,
	)
	config.LogResolvedValues(resolved.Values)

	return nil
}

// loadedSettings returns the resolved settings. It fails when the config
// file could not be loaded.
func loadedSettings() (*config.Settings, error) {
	if configErr != nil {
		cmdutil.PrintError("loading configuration failed", configErr)
		return nil, cmdutil.Exit(configErr)
	}
	if settings == nil {
		return nil, &ExitError{Code: ExitGeneralError, Err: errNotInitialized}
	}
	return settings, nil
}

// GetConfigPath returns the resolved config file path.
func GetConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return configFlag
}

// GetSettings returns the resolved settings, nil before initialization.
func GetSettings() *config.Settings {
	return settings
}
