// Package release rewrites Maven descriptors to the versions of a release
// plan and guards releases against snapshot versions.
package release

import (
	"fmt"
	"strings"

	"github.com/opmodel/pomver/internal/coordinate"
	oerrors "github.com/opmodel/pomver/internal/errors"
)

// SnapshotSuffix marks an unreleased version. Matching is case-sensitive.
const SnapshotSuffix = "-SNAPSHOT"

// IsSnapshot reports whether version denotes a snapshot.
func IsSnapshot(version string) bool {
	return strings.HasSuffix(version, SnapshotSuffix)
}

// Role is the place in a descriptor a version occupies.
type Role string

// Roles in the fixed order the validator scans them.
const (
	RoleOwnVersion           Role = "own version"
	RoleParent               Role = "parent"
	RoleDependency           Role = "dependency"
	RoleDependencyManagement Role = "dependency-management"
	RoleSCMTag               Role = "scm tag"
)

// SnapshotNotAllowedError reports the first disallowed snapshot reference
// found in a descriptor.
type SnapshotNotAllowedError struct {
	// Module is the descriptor's own coordinate.
	Module coordinate.Coordinate
	// Coordinate and Version identify the offending reference.
	Coordinate coordinate.Coordinate
	Version    string
	Role       Role
	// Line is where the reference starts, 0 if unknown.
	Line int
}

// Error implements the error interface.
func (e *SnapshotNotAllowedError) Error() string {
	where := string(e.Role)
	if e.Role != RoleOwnVersion {
		where = fmt.Sprintf("%s of %s", e.Role, e.Module)
	}
	return fmt.Sprintf("snapshot version %s is not allowed (%s)", e.Offender(), where)
}

// Offender returns the offending reference as "group:artifact:version".
func (e *SnapshotNotAllowedError) Offender() string {
	return e.Coordinate.WithVersion(e.Version)
}

// Unwrap returns ErrSnapshotNotAllowed so callers can match with errors.Is.
func (e *SnapshotNotAllowedError) Unwrap() error {
	return oerrors.ErrSnapshotNotAllowed
}

// Change is a single version substitution applied to a descriptor.
type Change struct {
	Role       Role                  `json:"role" yaml:"role"`
	Coordinate coordinate.Coordinate `json:"coordinate" yaml:"coordinate"`
	From       string                `json:"from" yaml:"from"`
	To         string                `json:"to" yaml:"to"`
	Line       int                   `json:"line,omitempty" yaml:"line,omitempty"`
}

// String renders the change for logs.
func (c Change) String() string {
	return fmt.Sprintf("%s %s: %s -> %s", c.Role, c.Coordinate, c.From, c.To)
}

// Warning is a non-fatal condition met while validating or rewriting.
type Warning struct {
	Role       Role                  `json:"role" yaml:"role"`
	Coordinate coordinate.Coordinate `json:"coordinate" yaml:"coordinate"`
	Message    string                `json:"message" yaml:"message"`
	Line       int                   `json:"line,omitempty" yaml:"line,omitempty"`
}

// String renders the warning for logs.
func (w Warning) String() string {
	return fmt.Sprintf("%s %s: %s", w.Role, w.Coordinate, w.Message)
}

// Result is the outcome of transforming one descriptor.
type Result struct {
	// Output is the rewritten descriptor.
	Output   []byte
	Changes  []Change
	Warnings []Warning
}

// Modified reports whether any version was changed.
func (r *Result) Modified() bool {
	return len(r.Changes) > 0
}
