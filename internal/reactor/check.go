package reactor

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/opmodel/pomver/internal/coordinate"
	"github.com/opmodel/pomver/internal/pom"
	"github.com/opmodel/pomver/internal/release"
)

// Finding is the validation outcome for one module.
type Finding struct {
	Module *Module
	// Violation is the first snapshot reference found, nil when clean.
	Violation *release.SnapshotNotAllowedError
	Warnings  []release.Warning
}

// Check runs snapshot validation on every module against versions without
// rewriting anything. Unlike Transform it does not stop at the first
// offending module; it returns one finding per module in reactor order.
// Only errors other than snapshot violations are returned as error.
func Check(ctx context.Context, r *Reactor, versions *coordinate.Map, properties map[string]string, workers int) ([]Finding, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	findings := make([]Finding, len(r.Modules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, m := range r.Modules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := pom.Parse(m.data)
			if err != nil {
				return fmt.Errorf("%s: %w", m.Path, err)
			}

			warnings, err := release.Validate(p, m.Coordinate, versions, pom.NewPropertyResolver(p, properties))
			f := Finding{Module: m, Warnings: warnings}
			var snapErr *release.SnapshotNotAllowedError
			switch {
			case errors.As(err, &snapErr):
				f.Violation = snapErr
			case err != nil:
				return fmt.Errorf("%s: %w", m.Path, err)
			}
			findings[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return findings, nil
}

// Violations returns the findings that carry a snapshot violation.
func Violations(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Violation != nil {
			out = append(out, f)
		}
	}
	return out
}
