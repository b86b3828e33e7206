package release

import (
	"fmt"

	"github.com/opmodel/pomver/internal/coordinate"
	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/pom"
	"github.com/opmodel/pomver/internal/xmltree"
)

// Rewrite substitutes release versions into p in place: the own version, the
// parent version when the parent is part of the reactor, the SCM tag when
// tagURL is non-empty, and every dependency and managed dependency that
// points at a reactor module. References outside versions are untouched.
//
// A module missing from its own versions map is a caller error and returns
// ErrConfiguration before anything is modified. On any other error p may be
// partially rewritten and must be discarded.
func Rewrite(p *pom.Project, module coordinate.Coordinate, versions *coordinate.Map, tagURL string) ([]Change, []Warning, error) {
	ownTarget, ok := versions.Get(module)
	if !ok {
		return nil, nil, oerrors.NewConfigurationError(
			fmt.Sprintf("module %s is not part of its own release plan", module),
			map[string]string{"Module": module.String()},
			"Every module being rewritten must have a target version")
	}

	rw := &rewriter{module: module}

	if el := p.VersionElement(); el != nil {
		if pom.IsReference(p.Version()) {
			rw.warn(RoleOwnVersion, module, el.Line(), "property reference %q replaced by %s", p.Version(), ownTarget)
		}
		if err := rw.set(RoleOwnVersion, module, el, ownTarget); err != nil {
			return nil, nil, err
		}
	}

	parentVersion := ""
	if parent := p.Parent(); parent != nil {
		parentVersion = parent.Version()
		if target, ok := versions.Get(parent.Coordinate()); ok {
			parentVersion = target
			if el := parent.VersionElement(); el != nil {
				if err := rw.set(RoleParent, parent.Coordinate(), el, target); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	if tagURL != "" {
		if el := p.SCMTag(); el != nil {
			if err := rw.set(RoleSCMTag, module, el, tagURL); err != nil {
				return nil, nil, err
			}
		}
	}

	// Self references resolve against the versions just written.
	tracked := pom.MapResolver{
		"project.version":        effective(p.Version(), ownTarget, parentVersion),
		"pom.version":            effective(p.Version(), ownTarget, parentVersion),
		"version":                effective(p.Version(), ownTarget, parentVersion),
		"project.parent.version": parentVersion,
		"parent.version":         parentVersion,
	}

	if err := rw.dependencies(RoleDependency, p.Dependencies(), versions, tracked); err != nil {
		return nil, nil, err
	}
	if err := rw.dependencies(RoleDependencyManagement, p.ManagedDependencies(), versions, tracked); err != nil {
		return nil, nil, err
	}
	return rw.changes, rw.warnings, nil
}

// effective is the project version after rewriting: the own target when the
// project declares a version, otherwise the inherited parent version.
func effective(declared, ownTarget, parentVersion string) string {
	if declared != "" {
		return ownTarget
	}
	return parentVersion
}

type rewriter struct {
	module   coordinate.Coordinate
	changes  []Change
	warnings []Warning
}

func (rw *rewriter) dependencies(role Role, deps []pom.Dependency, versions *coordinate.Map, tracked pom.PropertyResolver) error {
	for _, dep := range deps {
		target, ok := versions.Get(dep.Coordinate())
		if !ok {
			continue
		}
		el := dep.VersionElement()
		if el == nil {
			// Version comes from dependency management.
			continue
		}
		declared := dep.Version()
		if pom.IsSelfReference(declared) {
			if resolved, _ := pom.Interpolate(declared, tracked); resolved == target {
				continue
			}
		}
		if pom.IsReference(declared) {
			rw.warn(role, dep.Coordinate(), dep.Line(), "property reference %q replaced by %s", declared, target)
		}
		if err := rw.set(role, dep.Coordinate(), el, target); err != nil {
			return err
		}
	}
	return nil
}

func (rw *rewriter) set(role Role, c coordinate.Coordinate, el *xmltree.Node, value string) error {
	from := el.TrimmedText()
	changed, err := el.SetText(value)
	if err != nil {
		return fmt.Errorf("setting %s of %s: %w", role, c, err)
	}
	if changed {
		rw.changes = append(rw.changes, Change{
			Role:       role,
			Coordinate: c,
			From:       from,
			To:         value,
			Line:       el.Line(),
		})
	}
	return nil
}

func (rw *rewriter) warn(role Role, c coordinate.Coordinate, line int, format string, args ...any) {
	rw.warnings = append(rw.warnings, Warning{
		Role:       role,
		Coordinate: c,
		Message:    fmt.Sprintf(format, args...),
		Line:       line,
	})
}
