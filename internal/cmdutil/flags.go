// Package cmdutil provides shared command utilities for pomver subcommands.
// It centralizes flag group management, plan resolution, reactor
// orchestration, and report output.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/pomver/internal/config"
	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/output"
)

// PlanFlags holds flags selecting the release plan
// (release, next, plan, diff).
type PlanFlags struct {
	PlanFile       string
	ReleaseVersion string
	NextVersion    string
}

// AddTo registers the plan flags on the given cobra command.
func (f *PlanFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.PlanFile, "plan", "",
		"Release plan file (.yaml, .json, .toml or .cue)")
	cmd.Flags().StringVar(&f.ReleaseVersion, "release-version", "",
		"Release version for every module (default: current version without -SNAPSHOT)")
	cmd.Flags().StringVar(&f.NextVersion, "next-version", "",
		"Next development version for every module (default: patch bump)")
}

// Validate checks that a plan file is not combined with version overrides.
func (f *PlanFlags) Validate() error {
	if f.PlanFile != "" && (f.ReleaseVersion != "" || f.NextVersion != "") {
		return oerrors.NewConfigurationError(
			"--plan cannot be combined with --release-version or --next-version",
			nil,
			"Put the versions into the plan file instead")
	}
	return nil
}

// TagFlags holds the SCM tag flag (release, plan, diff).
type TagFlags struct {
	TagURL string
}

// AddTo registers the tag flag on the given cobra command.
func (f *TagFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.TagURL, "tag-url", "",
		"SCM tag URL; {version} is replaced by the release version (env: POMVER_TAG_URL_TEMPLATE)")
}

// GuardFlags holds the snapshot guard flags (release, diff).
type GuardFlags struct {
	Strict bool
	Verify bool
}

// AddTo registers the guard flags on the given cobra command.
func (f *GuardFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.Strict, "strict", false,
		"Reject snapshot references before rewriting (env: POMVER_STRICT)")
	cmd.Flags().BoolVar(&f.Verify, "verify", config.DefaultVerify,
		"Reject snapshot references left after rewriting (env: POMVER_VERIFY)")
}

// RunFlags holds flags common to commands that walk the reactor
// (release, next, check, diff).
type RunFlags struct {
	Workers int
}

// AddTo registers the run flags on the given cobra command.
func (f *RunFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.Workers, "workers", config.DefaultWorkers,
		"Descriptors processed in parallel (env: POMVER_WORKERS)")
}

// WriteFlags holds flags for commands that rewrite descriptors
// (release, next).
type WriteFlags struct {
	DryRun bool
	Output string
}

// AddTo registers the write flags on the given cobra command.
func (f *WriteFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.DryRun, "dry-run", false,
		"Show the changes without writing descriptors")
	cmd.Flags().StringVarP(&f.Output, "output", "o", string(output.FormatTable),
		"Report format: table, yaml, json")
}

// Format parses the report format.
func (f *WriteFlags) Format() (output.OutputFormat, error) {
	format, ok := output.ParseOutputFormat(f.Output)
	if !ok || format == output.FormatTOML {
		return "", oerrors.NewConfigurationError(
			fmt.Sprintf("invalid output format %q", f.Output),
			nil,
			fmt.Sprintf("Valid formats: %v", output.ValidReportFormats()))
	}
	return format, nil
}

// ChangedBool returns the value of a bool flag the user set explicitly, nil
// otherwise or when cmd has no such flag.
func ChangedBool(cmd *cobra.Command, name string) *bool {
	if !changed(cmd, name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}

// ChangedInt is ChangedBool for int flags.
func ChangedInt(cmd *cobra.Command, name string) *int {
	if !changed(cmd, name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil
	}
	return &v
}

// ChangedString is ChangedBool for string flags.
func ChangedString(cmd *cobra.Command, name string) *string {
	if !changed(cmd, name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// ResolveModulePath returns the reactor root from command args,
// defaulting to the current directory.
func ResolveModulePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
