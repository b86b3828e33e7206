package cmdutil

import (
	"context"
	"fmt"

	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/plan"
	"github.com/opmodel/pomver/internal/reactor"
)

// Discover reads the reactor rooted at root. On failure it returns an
// *ExitError with the error already printed.
func Discover(root string) (*reactor.Reactor, error) {
	r, err := reactor.Discover(root)
	if err != nil {
		PrintError("reading reactor failed", err)
		return nil, Exit(err)
	}
	return r, nil
}

// ResolvePlan loads the plan file named by flags or derives a plan from the
// versions found in r. tagURLTemplate fills the plan's tag URL when the plan
// file carries none.
func ResolvePlan(r *reactor.Reactor, flags PlanFlags, tagURLTemplate string) (*plan.Plan, error) {
	if err := flags.Validate(); err != nil {
		return nil, err
	}

	if flags.PlanFile == "" {
		p, err := plan.Derive(r, plan.DeriveOptions{
			ReleaseVersion: flags.ReleaseVersion,
			NextVersion:    flags.NextVersion,
			TagURLTemplate: tagURLTemplate,
		})
		if err != nil {
			return nil, err
		}
		if err := plan.Validate(p); err != nil {
			return nil, err
		}
		return p, nil
	}

	p, err := plan.Load(flags.PlanFile)
	if err != nil {
		return nil, err
	}
	if p.TagURL == "" && tagURLTemplate != "" && len(r.Modules) > 0 {
		if m, ok := p.Module(r.Modules[0].Coordinate); ok {
			p.TagURL = plan.ExpandTagURL(tagURLTemplate, m.Release)
		}
	}
	return p, nil
}

// RunReactor transforms every module of r and, unless dryRun is set, writes
// the modified descriptors. Nothing is written when any module fails. On
// failure it returns an *ExitError with the error already printed.
func RunReactor(ctx context.Context, r *reactor.Reactor, opts reactor.Options, dryRun bool) (*reactor.Outcome, error) {
	output.Debug("transforming reactor",
		"modules", len(r.Modules),
		"strict", opts.Strict,
		"verify", opts.Verify,
		"workers", opts.Workers,
		"tag", opts.SCMTagURL,
	)

	var outcome *reactor.Outcome
	title := fmt.Sprintf("Transforming %d modules", len(r.Modules))
	err := output.RunWithSpinner(ctx, title, func(ctx context.Context) error {
		var err error
		outcome, err = reactor.Transform(ctx, r, opts)
		return err
	})
	if err != nil {
		PrintError("transform failed", err)
		return nil, Exit(err)
	}

	if dryRun {
		output.Debug("dry run, descriptors left untouched")
		return outcome, nil
	}
	if err := reactor.Write(ctx, outcome); err != nil {
		PrintError("writing descriptors failed", err)
		return nil, Exit(err)
	}
	return outcome, nil
}

// Exit wraps err in an *ExitError marked as printed, with the exit code
// derived from err.
func Exit(err error) *oerrors.ExitError {
	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
}
