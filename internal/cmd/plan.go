package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/pomver/internal/cmdutil"
	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/plan"
)

// Plan command flags.
var (
	planPlanFlags  cmdutil.PlanFlags
	planTagFlags   cmdutil.TagFlags
	planOutputFlag string
	planWriteFlag  string
)

// NewPlanCmd creates the plan command.
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [path]",
		Short: "Print or write the release plan of a reactor",
		Long: `Print the release plan of a reactor: for every module its current,
release and next development version, plus the SCM tag URL.

The plan is derived from the versions found in the descriptors unless --plan
names an existing plan file, which is then validated and printed. A written
plan can be edited and passed to release and next with --plan.

Arguments:
  path    Reactor root directory or pom.xml (default: current directory)

Examples:
  # Print the derived plan
  pomver plan

  # Write a plan file to edit before releasing
  pomver plan --release-version 2.0 --write release.yaml

  # Convert a plan file to TOML
  pomver plan --plan release.yaml -o toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlan,
	}

	planPlanFlags.AddTo(cmd)
	planTagFlags.AddTo(cmd)
	cmd.Flags().StringVarP(&planOutputFlag, "output", "o", string(output.FormatYAML),
		"Output format: yaml, json, toml")
	cmd.Flags().StringVarP(&planWriteFlag, "write", "w", "",
		"Write the plan to this file instead of printing it (format from extension)")

	return cmd
}

func runPlan(cmd *cobra.Command, args []string) error {
	s, err := loadedSettings()
	if err != nil {
		return err
	}
	format, ok := output.ParseOutputFormat(planOutputFlag)
	if !ok || format == output.FormatTable {
		err := oerrors.NewConfigurationError(
			fmt.Sprintf("invalid output format %q", planOutputFlag), nil,
			fmt.Sprintf("Valid formats: %v", output.ValidPlanFormats()))
		return &ExitError{Code: ExitCodeFromError(err), Err: err}
	}

	r, err := cmdutil.Discover(cmdutil.ResolveModulePath(args))
	if err != nil {
		return err
	}

	p, err := cmdutil.ResolvePlan(r, planPlanFlags, s.TagURLTemplate)
	if err != nil {
		cmdutil.PrintError("resolving release plan failed", err)
		return cmdutil.Exit(err)
	}

	if planWriteFlag != "" {
		if err := plan.Save(p, planWriteFlag); err != nil {
			cmdutil.PrintError("writing release plan failed", err)
			return cmdutil.Exit(err)
		}
		output.Info(output.FormatCheckmark("Release plan written to " + planWriteFlag))
		return nil
	}

	if err := output.Encode(cmd.OutOrStdout(), format, p); err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	return nil
}
