package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opmodel/pomver/internal/config"
	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the pomver configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML
  3. Config matches the schema (known keys, value types and ranges)

The config path is resolved using precedence:
  --config flag > POMVER_CONFIG env > ~/.pomver/config.yaml

Examples:
  # Validate default configuration
  pomver config vet

  # Validate custom config path
  pomver config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: runConfigVet,
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, _ []string) error {
	path := config.ExpandTilde(GetConfigPath())

	output.Debug("validating config", "path", path)

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if !exists {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: path,
			Hint:     "Run 'pomver config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}

	loader, err := config.NewLoader()
	if err != nil {
		return err
	}
	cfg, err := loader.Load(path)
	if err != nil {
		return err
	}
	cfg = cfg.WithDefaults()

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, output.FormatVetCheck("Config file found", path))
	fmt.Fprintln(w, output.FormatVetCheck("Schema valid", ""))
	fmt.Fprintln(w, output.FormatVetCheck("Workers", strconv.Itoa(cfg.Workers)))
	if cfg.SCM.TagURLTemplate != "" {
		fmt.Fprintln(w, output.FormatVetCheck("Tag URL template", cfg.SCM.TagURLTemplate))
	}
	return nil
}
