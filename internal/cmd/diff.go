package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/pomver/internal/cmdutil"
	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/reactor"
)

// Diff command flags.
var (
	diffPlanFlags  cmdutil.PlanFlags
	diffTagFlags   cmdutil.TagFlags
	diffGuardFlags cmdutil.GuardFlags
	diffRunFlags   cmdutil.RunFlags
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [path]",
		Short: "Show the version changes a release would make",
		Long: `Show the version changes a release would make, without writing anything.

The versions declared by every module (own, parent, SCM tag, dependencies and
managed dependencies) are compared before and after the release rewrite
using a semantic YAML diff (via dyff). Snapshot checks run as for release.

Arguments:
  path    Reactor root directory or pom.xml (default: current directory)

Examples:
  # Preview the release of the reactor in the current directory
  pomver diff

  # Preview a release from a plan file
  pomver diff ./app --plan release.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDiff,
	}

	diffPlanFlags.AddTo(cmd)
	diffTagFlags.AddTo(cmd)
	diffGuardFlags.AddTo(cmd)
	diffRunFlags.AddTo(cmd)

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	s, err := loadedSettings()
	if err != nil {
		return err
	}

	r, err := cmdutil.Discover(cmdutil.ResolveModulePath(args))
	if err != nil {
		return err
	}

	p, err := cmdutil.ResolvePlan(r, diffPlanFlags, s.TagURLTemplate)
	if err != nil {
		cmdutil.PrintError("resolving release plan failed", err)
		return cmdutil.Exit(err)
	}
	versions, err := p.ReleaseVersions()
	if err != nil {
		cmdutil.PrintError("resolving release plan failed", err)
		return cmdutil.Exit(err)
	}

	outcome, err := cmdutil.RunReactor(cmd.Context(), r, reactor.Options{
		Versions:  versions,
		SCMTagURL: p.TagURL,
		Strict:    s.Strict,
		Verify:    s.Verify,
		Workers:   s.Workers,
	}, true)
	if err != nil {
		return err
	}

	before, after, err := cmdutil.VersionSummaries(outcome)
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	diff, err := output.DiffYAML(before, after, output.IsTTY())
	if err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}

	w := cmd.OutOrStdout()
	if diff == "" {
		fmt.Fprintln(w, "No changes. Descriptors already match the release plan.")
		return nil
	}
	fmt.Fprintln(w, diff)
	fmt.Fprintln(w)
	fmt.Fprintln(w, output.DiffSummary(len(outcome.Modified()), len(outcome.Results)-len(outcome.Modified())))
	return nil
}
