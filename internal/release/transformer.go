package release

import (
	"fmt"

	"github.com/opmodel/pomver/internal/coordinate"
	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/pom"
)

// Options configures a Transformer for one module.
type Options struct {
	// Module is the coordinate of the descriptor being transformed.
	Module coordinate.Coordinate

	// Versions maps every reactor module to its target version.
	Versions *coordinate.Map

	// SCMTagURL replaces the <scm><tag> value when non-empty.
	SCMTagURL string

	// FailOnSnapshot enables strict snapshot validation before rewriting.
	FailOnSnapshot bool

	// Properties supplements the descriptor's own properties when
	// expanding ${...} references.
	Properties map[string]string
}

// Transformer validates and rewrites a single descriptor. It holds no state
// between calls and may be shared across goroutines.
type Transformer struct {
	opts Options
}

// New returns a Transformer. The module must be present in its own versions
// map; anything else is a configuration error.
func New(opts Options) (*Transformer, error) {
	if opts.Module.IsZero() {
		return nil, oerrors.NewConfigurationError("transformer needs a module coordinate", nil, "")
	}
	if opts.Versions == nil {
		return nil, oerrors.NewConfigurationError("transformer needs a version map", nil, "")
	}
	if !opts.Versions.Contains(opts.Module) {
		return nil, oerrors.NewConfigurationError(
			fmt.Sprintf("module %s is not part of its own release plan", opts.Module),
			map[string]string{"Module": opts.Module.String()},
			"Every module being rewritten must have a target version")
	}
	return &Transformer{opts: opts}, nil
}

// Transform parses input, validates it when FailOnSnapshot is set, rewrites
// it, and returns the new descriptor text.
func (t *Transformer) Transform(input []byte) (*Result, error) {
	p, err := pom.Parse(input)
	if err != nil {
		return nil, err
	}
	return t.TransformProject(p)
}

// TransformProject is Transform for an already parsed descriptor. p is
// modified in place; on error it must be discarded.
func (t *Transformer) TransformProject(p *pom.Project) (*Result, error) {
	result := &Result{}

	if t.opts.FailOnSnapshot {
		resolver := pom.NewPropertyResolver(p, t.opts.Properties)
		warnings, err := Validate(p, t.opts.Module, t.opts.Versions, resolver)
		if err != nil {
			return nil, err
		}
		result.Warnings = append(result.Warnings, warnings...)
	}

	changes, warnings, err := Rewrite(p, t.opts.Module, t.opts.Versions, t.opts.SCMTagURL)
	if err != nil {
		return nil, err
	}
	result.Changes = changes
	result.Warnings = append(result.Warnings, warnings...)
	result.Output = p.Bytes()
	return result, nil
}
