package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/pomver/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show pomver version information.

Displays:
  - pomver version, commit, and build date
  - Go version used to build
  - CUE SDK version used for schema validation`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), version.GetInfo().String())
	return nil
}
