package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/pomver/internal/cmdutil"
	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/reactor"
)

// Next command flags.
var (
	nextPlanFlags  cmdutil.PlanFlags
	nextRunFlags   cmdutil.RunFlags
	nextWriteFlags cmdutil.WriteFlags
)

// NewNextCmd creates the next command.
func NewNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next [path]",
		Short: "Rewrite every module to its next development version",
		Long: `Rewrite the descriptors of a reactor to their next development versions.

This is the step after a release: own versions, reactor parents and
dependencies on reactor modules move to the next -SNAPSHOT version. The SCM
tag is left alone and no snapshot checks run.

Without --plan the next version bumps the last number of the release
version: 1.2 becomes 1.2.1-SNAPSHOT, 1.2.3 becomes 1.2.4-SNAPSHOT.

Arguments:
  path    Reactor root directory or pom.xml (default: current directory)

Examples:
  # Move the reactor in the current directory to the next snapshot
  pomver next

  # Choose the next version
  pomver next --next-version 2.1-SNAPSHOT`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNext,
	}

	nextPlanFlags.AddTo(cmd)
	nextRunFlags.AddTo(cmd)
	nextWriteFlags.AddTo(cmd)

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := loadedSettings()
	if err != nil {
		return err
	}
	format, err := nextWriteFlags.Format()
	if err != nil {
		return &ExitError{Code: ExitCodeFromError(err), Err: err}
	}

	r, err := cmdutil.Discover(cmdutil.ResolveModulePath(args))
	if err != nil {
		return err
	}

	p, err := cmdutil.ResolvePlan(r, nextPlanFlags, "")
	if err != nil {
		cmdutil.PrintError("resolving release plan failed", err)
		return cmdutil.Exit(err)
	}
	versions, err := p.NextVersions()
	if err != nil {
		cmdutil.PrintError("resolving release plan failed", err)
		return cmdutil.Exit(err)
	}

	outcome, err := cmdutil.RunReactor(cmd.Context(), r, reactor.Options{
		Versions: versions,
		Workers:  s.Workers,
	}, nextWriteFlags.DryRun)
	if err != nil {
		return err
	}

	cmdutil.LogModules(outcome)
	if err := cmdutil.WriteReport(cmd.OutOrStdout(), format, cmdutil.NewReport(r, outcome, nextWriteFlags.DryRun)); err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	if !nextWriteFlags.DryRun {
		output.Info(output.FormatCheckmark(fmt.Sprintf("Moved %d modules to the next development version", len(outcome.Modified()))))
	}
	return nil
}
