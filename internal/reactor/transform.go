package reactor

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/opmodel/pomver/internal/coordinate"
	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/pom"
	"github.com/opmodel/pomver/internal/release"
)

// DefaultWorkers bounds parallel transforms when Options.Workers is unset.
const DefaultWorkers = 4

// Options configures a reactor transform.
type Options struct {
	// Versions maps every module to its target version.
	Versions *coordinate.Map

	// SCMTagURL replaces <scm><tag> in every module when non-empty.
	SCMTagURL string

	// Strict rejects snapshot references in the descriptors as found.
	Strict bool

	// Verify rejects snapshot references left in the rewritten descriptors.
	Verify bool

	// Properties supplements descriptor properties for ${...} expansion.
	Properties map[string]string

	// Workers bounds how many modules are transformed at once.
	Workers int
}

// ModuleResult is the in-memory outcome for one module.
type ModuleResult struct {
	Module *Module
	*release.Result
}

// Status summarizes the result for display.
func (r ModuleResult) Status() string {
	if r.Modified() {
		return output.StatusModified
	}
	return output.StatusUnchanged
}

// Outcome holds the results for every module in reactor order. Nothing has
// been written to disk yet.
type Outcome struct {
	Results []ModuleResult
}

// Modified returns the results whose descriptor changed.
func (o *Outcome) Modified() []ModuleResult {
	var out []ModuleResult
	for _, r := range o.Results {
		if r.Modified() {
			out = append(out, r)
		}
	}
	return out
}

// Changes returns the number of version substitutions across all modules.
func (o *Outcome) Changes() int {
	n := 0
	for _, r := range o.Results {
		n += len(r.Changes)
	}
	return n
}

// Transform validates and rewrites every module in memory. It fails as a
// whole on the first module error; the outcome is only returned when every
// module succeeded.
func Transform(ctx context.Context, r *Reactor, opts Options) (*Outcome, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	// Validate the plan for every module before starting any work.
	transformers := make([]*release.Transformer, len(r.Modules))
	for i, m := range r.Modules {
		t, err := release.New(release.Options{
			Module:         m.Coordinate,
			Versions:       opts.Versions,
			SCMTagURL:      opts.SCMTagURL,
			FailOnSnapshot: opts.Strict,
			Properties:     opts.Properties,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Path, err)
		}
		transformers[i] = t
	}

	results := make([]ModuleResult, len(r.Modules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, m := range r.Modules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log := output.ModuleLogger(m.Coordinate.String())

			result, err := transformers[i].Transform(m.data)
			if err != nil {
				return fmt.Errorf("%s: %w", m.Path, err)
			}
			if opts.Verify {
				if err := verify(m, result, opts); err != nil {
					return fmt.Errorf("%s: %w", m.Path, err)
				}
			}

			for _, w := range result.Warnings {
				log.Warn(w.Message, "role", w.Role, "reference", w.Coordinate, "line", w.Line)
			}
			for _, c := range result.Changes {
				log.Debug("version changed", "role", c.Role, "reference", c.Coordinate, "from", c.From, "to", c.To)
			}

			results[i] = ModuleResult{Module: m, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Outcome{Results: results}, nil
}

// verify re-reads the rewritten descriptor and checks that no snapshot
// reference survived the rewrite.
func verify(m *Module, result *release.Result, opts Options) error {
	p, err := pom.Parse(result.Output)
	if err != nil {
		return fmt.Errorf("re-reading rewritten descriptor: %w", err)
	}
	warnings, err := release.Validate(p, m.Coordinate, opts.Versions, pom.NewPropertyResolver(p, opts.Properties))
	if err != nil {
		return fmt.Errorf("verifying rewritten descriptor: %w", err)
	}
	result.Warnings = appendNew(result.Warnings, warnings)
	return nil
}

// appendNew appends the warnings from extra that dst does not already hold.
func appendNew(dst, extra []release.Warning) []release.Warning {
	for _, w := range extra {
		dup := false
		for _, d := range dst {
			if d == w {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, w)
		}
	}
	return dst
}
