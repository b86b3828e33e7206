package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opmodel/pomver/internal/cmdutil"
	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/reactor"
	"github.com/opmodel/pomver/internal/release"
)

// Check command flags.
var (
	checkRunFlags   cmdutil.RunFlags
	checkOutputFlag string
)

// checkEntry is the report entry for one module.
type checkEntry struct {
	Module   string            `json:"module" yaml:"module"`
	Path     string            `json:"path" yaml:"path"`
	Status   string            `json:"status" yaml:"status"`
	Offender string            `json:"offender,omitempty" yaml:"offender,omitempty"`
	Role     release.Role      `json:"role,omitempty" yaml:"role,omitempty"`
	Line     int               `json:"line,omitempty" yaml:"line,omitempty"`
	Warnings []release.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check that no module references a snapshot version",
		Long: `Check every module of a reactor for snapshot versions.

For each module the own version, the parent version, dependencies and
managed dependencies on modules outside the reactor are checked in that
order; the first snapshot found is reported. Dependencies on reactor modules
are skipped since a release rewrites them. Nothing is written.

The command exits with a non-zero code when any module references a
snapshot, which makes it suitable for CI gates after a release.

Arguments:
  path    Reactor root directory or pom.xml (default: current directory)

Examples:
  # Check the reactor in the current directory
  pomver check

  # Machine-readable findings
  pomver check ./app -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}

	checkRunFlags.AddTo(cmd)
	cmd.Flags().StringVarP(&checkOutputFlag, "output", "o", string(output.FormatTable),
		"Report format: table, yaml, json")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadedSettings()
	if err != nil {
		return err
	}
	format, ok := output.ParseOutputFormat(checkOutputFlag)
	if !ok || format == output.FormatTOML {
		err := oerrors.NewConfigurationError(
			fmt.Sprintf("invalid output format %q", checkOutputFlag), nil,
			fmt.Sprintf("Valid formats: %v", output.ValidReportFormats()))
		return &ExitError{Code: ExitCodeFromError(err), Err: err}
	}

	r, err := cmdutil.Discover(cmdutil.ResolveModulePath(args))
	if err != nil {
		return err
	}
	versions, err := r.CurrentVersions()
	if err != nil {
		cmdutil.PrintError("reading reactor versions failed", err)
		return cmdutil.Exit(err)
	}

	var findings []reactor.Finding
	err = output.RunWithSpinner(cmd.Context(), fmt.Sprintf("Checking %d modules", len(r.Modules)), func(ctx context.Context) error {
		var err error
		findings, err = reactor.Check(ctx, r, versions, nil, s.Workers)
		return err
	})
	if err != nil {
		cmdutil.PrintError("check failed", err)
		return cmdutil.Exit(err)
	}

	entries := checkEntries(r, findings)
	for _, e := range entries {
		log := output.ModuleLogger(e.Module)
		for _, w := range e.Warnings {
			log.Warn(w.Message, "role", w.Role, "reference", w.Coordinate, "line", w.Line)
		}
		if e.Offender != "" {
			log.Error("snapshot version not allowed", "offender", e.Offender, "role", e.Role, "line", e.Line)
		}
	}

	if err := writeCheckReport(cmd, format, entries); err != nil {
		return &ExitError{Code: ExitGeneralError, Err: err}
	}

	violations := reactor.Violations(findings)
	if len(violations) > 0 {
		err := fmt.Errorf("%w: %d of %d modules reference snapshot versions",
			oerrors.ErrSnapshotNotAllowed, len(violations), len(findings))
		output.Error(err.Error())
		return &ExitError{Code: ExitValidationError, Err: err, Printed: true}
	}
	output.Info(output.FormatCheckmark(fmt.Sprintf("No snapshot versions in %d modules", len(findings))))
	return nil
}

func checkEntries(r *reactor.Reactor, findings []reactor.Finding) []checkEntry {
	entries := make([]checkEntry, 0, len(findings))
	for _, f := range findings {
		path := f.Module.Path
		if rel, err := filepath.Rel(filepath.Dir(r.Root), path); err == nil {
			path = rel
		}
		e := checkEntry{
			Module:   f.Module.Coordinate.String(),
			Path:     path,
			Status:   output.StatusValid,
			Warnings: f.Warnings,
		}
		if v := f.Violation; v != nil {
			e.Status = output.StatusSnapshot
			e.Offender = v.Offender()
			e.Role = v.Role
			e.Line = v.Line
		}
		entries = append(entries, e)
	}
	return entries
}

func writeCheckReport(cmd *cobra.Command, format output.OutputFormat, entries []checkEntry) error {
	w := cmd.OutOrStdout()
	if format != output.FormatTable {
		return output.Encode(w, format, entries)
	}

	tbl := output.NewTable("MODULE", "STATUS", "OFFENDER", "ROLE", "LINE")
	for _, e := range entries {
		line := ""
		if e.Line > 0 {
			line = strconv.Itoa(e.Line)
		}
		tbl.Row(e.Module, e.Status, e.Offender, string(e.Role), line)
	}
	_, err := fmt.Fprintln(w, tbl.String())
	return err
}
