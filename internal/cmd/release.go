package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/pomver/internal/cmdutil"
	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/reactor"
)

// Release command flags.
var (
	releasePlanFlags  cmdutil.PlanFlags
	releaseTagFlags   cmdutil.TagFlags
	releaseGuardFlags cmdutil.GuardFlags
	releaseRunFlags   cmdutil.RunFlags
	releaseWriteFlags cmdutil.WriteFlags
)

// NewReleaseCmd creates the release command.
func NewReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release [path]",
		Short: "Rewrite every module to its release version",
		Long: `Rewrite the descriptors of a reactor to their release versions.

The reactor is read from the aggregator descriptor at path and every module
listed under <modules>, recursively. Each module's own version, its parent
version when the parent belongs to the reactor, and every dependency on a
reactor module is set to the release version from the plan. The SCM tag is
set when a tag URL is configured.

Without --plan the release version of a module is its current version
without -SNAPSHOT.

Snapshot references are tolerated unless --strict rejects them in the
descriptors as found, or --verify rejects those left after the rewrite
(external dependencies the plan does not cover).

Descriptors are only written when every module was transformed
successfully.

Arguments:
  path    Reactor root directory or pom.xml (default: current directory)

Examples:
  # Release the reactor in the current directory
  pomver release

  # Release with explicit versions and a tag
  pomver release --release-version 2.0 --tag-url https://git.example.org/app/tree/v{version}

  # Release from a plan file, refusing snapshot dependencies up front
  pomver release ./app --plan release.yaml --strict

  # Show what would change without writing
  pomver release --dry-run -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRelease,
	}

	releasePlanFlags.AddTo(cmd)
	releaseTagFlags.AddTo(cmd)
	releaseGuardFlags.AddTo(cmd)
	releaseRunFlags.AddTo(cmd)
	releaseWriteFlags.AddTo(cmd)

	return cmd
}

func runRelease(cmd *cobra.Command, args []string) error {
	s, err := loadedSettings()
	if err != nil {
		return err
	}
	format, err := releaseWriteFlags.Format()
	if err != nil {
		return &ExitError{Code: ExitCodeFromError(err), Err: err}
	}

	r, err := cmdutil.Discover(cmdutil.ResolveModulePath(args))
	if err != nil {
		return err
	}

	p, err := cmdutil.ResolvePlan(r, releasePlanFlags, s.TagURLTemplate)
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
	}, releaseWriteFlags.DryRun)
	if err != nil {
		return err
	}

	cmdutil.LogModules(outcome)
	if err := cmdutil.WriteReport(cmd.OutOrStdout(), format, cmdutil.NewReport(r, outcome, releaseWriteFlags.DryRun)); err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}
	if !releaseWriteFlags.DryRun {
		output.Info(output.FormatCheckmark(fmt.Sprintf("Released %d modules", len(outcome.Modified()))))
	}
	return nil
}
