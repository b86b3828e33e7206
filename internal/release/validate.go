package release

import (
	"fmt"
	"strings"

	"github.com/opmodel/pomver/internal/coordinate"
	"github.com/opmodel/pomver/internal/pom"
)

// Validate scans p for snapshot versions in the fixed order own version,
// parent, dependencies, dependency management, and returns a
// *SnapshotNotAllowedError for the first one found.
//
// The own and parent versions are checked as written. Dependencies whose
// coordinate is in versions are skipped since they are rewritten to a
// release version anyway. Property references are expanded with resolver;
// references it cannot expand produce warnings and are not checked.
func Validate(p *pom.Project, module coordinate.Coordinate, versions *coordinate.Map, resolver pom.PropertyResolver) ([]Warning, error) {
	v := &validator{module: module, resolver: resolver}

	if el := p.VersionElement(); el != nil {
		if err := v.check(RoleOwnVersion, module, p.Version(), el.Line()); err != nil {
			return v.warnings, err
		}
	}

	if parent := p.Parent(); parent != nil {
		if err := v.check(RoleParent, parent.Coordinate(), parent.Version(), parent.VersionElement().Line()); err != nil {
			return v.warnings, err
		}
	}

	if err := v.checkDependencies(RoleDependency, p.Dependencies(), versions); err != nil {
		return v.warnings, err
	}
	if err := v.checkDependencies(RoleDependencyManagement, p.ManagedDependencies(), versions); err != nil {
		return v.warnings, err
	}
	return v.warnings, nil
}

type validator struct {
	module   coordinate.Coordinate
	resolver pom.PropertyResolver
	warnings []Warning
}

func (v *validator) checkDependencies(role Role, deps []pom.Dependency, versions *coordinate.Map) error {
	for _, dep := range deps {
		if versions.Contains(dep.Coordinate()) {
			continue
		}
		if err := v.check(role, dep.Coordinate(), dep.Version(), dep.Line()); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) check(role Role, c coordinate.Coordinate, declared string, line int) error {
	if declared == "" {
		return nil
	}
	version := declared
	if pom.IsReference(declared) && v.resolver != nil {
		resolved, unresolved := pom.Interpolate(declared, v.resolver)
		if len(unresolved) > 0 {
			v.warnings = append(v.warnings, Warning{
				Role:       role,
				Coordinate: c,
				Message:    fmt.Sprintf("cannot resolve %s in version %q", strings.Join(unresolved, ", "), declared),
				Line:       line,
			})
			return nil
		}
		version = resolved
	}
	if IsSnapshot(version) {
		return &SnapshotNotAllowedError{
			Module:     v.module,
			Coordinate: c,
			Version:    version,
			Role:       role,
			Line:       line,
		}
	}
	return nil
}
