// Package coordinate identifies modules within a reactor and maps them to
// their target release versions.
package coordinate

import (
	"fmt"
	"sort"
	"strings"

	oerrors "github.com/opmodel/pomver/internal/errors"
)

// Coordinate identifies a module independently of its version.
// Two coordinates denote the same module iff both fields are equal.
type Coordinate struct {
	GroupID    string `json:"groupId" yaml:"groupId"`
	ArtifactID string `json:"artifactId" yaml:"artifactId"`
}

// New returns the coordinate for groupID and artifactID.
func New(groupID, artifactID string) Coordinate {
	return Coordinate{GroupID: groupID, ArtifactID: artifactID}
}

// Parse parses a "group:artifact" string.
func Parse(s string) (Coordinate, error) {
	group, artifact, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || group == "" || artifact == "" || strings.Contains(artifact, ":") {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: expected group:artifact", s)
	}
	return New(group, artifact), nil
}

// String renders the coordinate as "group:artifact".
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID
}

// WithVersion renders the coordinate as "group:artifact:version".
func (c Coordinate) WithVersion(version string) string {
	return c.String() + ":" + version
}

// IsZero reports whether either part of the coordinate is empty.
func (c Coordinate) IsZero() bool {
	return c.GroupID == "" || c.ArtifactID == ""
}

// Entry pairs a coordinate with its target version.
type Entry struct {
	Coordinate Coordinate
	Version    string
}

// Map is an immutable mapping from module coordinate to target version.
// A coordinate absent from the map is external to the reactor.
// The zero value is an empty map. A Map is safe for concurrent reads.
type Map struct {
	versions map[Coordinate]string
}

// NewMap builds a Map from entries. Repeating a coordinate with the same
// version is accepted; repeating it with a different version is an
// ambiguous release plan and returns an ErrConfiguration error.
func NewMap(entries []Entry) (*Map, error) {
	versions := make(map[Coordinate]string, len(entries))
	for _, e := range entries {
		if e.Coordinate.IsZero() {
			return nil, oerrors.NewConfigurationError(
				fmt.Sprintf("incomplete module coordinate %q", e.Coordinate),
				nil, "Every module needs both a groupId and an artifactId")
		}
		if e.Version == "" {
			return nil, oerrors.NewConfigurationError(
				fmt.Sprintf("no target version for %s", e.Coordinate),
				nil, "")
		}
		if existing, ok := versions[e.Coordinate]; ok && existing != e.Version {
			return nil, oerrors.NewConfigurationError(
				fmt.Sprintf("ambiguous target version for %s: %q and %q", e.Coordinate, existing, e.Version),
				map[string]string{"Module": e.Coordinate.String()},
				"Each module may appear in the release plan with a single version")
		}
		versions[e.Coordinate] = e.Version
	}
	return &Map{versions: versions}, nil
}

// MustMap is NewMap for static entries; it panics on error.
func MustMap(entries ...Entry) *Map {
	m, err := NewMap(entries)
	if err != nil {
		panic(err)
	}
	return m
}

// Get returns the target version of c, if c is part of the reactor.
func (m *Map) Get(c Coordinate) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.versions[c]
	return v, ok
}

// Contains reports whether c is part of the reactor.
func (m *Map) Contains(c Coordinate) bool {
	_, ok := m.Get(c)
	return ok
}

// Len returns the number of modules in the map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.versions)
}

// Coordinates returns the mapped coordinates sorted by group then artifact.
// Only used for reporting; lookups never depend on ordering.
func (m *Map) Coordinates() []Coordinate {
	if m == nil {
		return nil
	}
	out := make([]Coordinate, 0, len(m.versions))
	for c := range m.versions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GroupID != out[j].GroupID {
			return out[i].GroupID < out[j].GroupID
		}
		return out[i].ArtifactID < out[j].ArtifactID
	})
	return out
}
