// Package plan builds release plans: the release and next development
// version of every reactor module.
package plan

import (
	"fmt"

	"github.com/opmodel/pomver/internal/coordinate"
	oerrors "github.com/opmodel/pomver/internal/errors"
)

// Module is the plan entry for one reactor module.
type Module struct {
	GroupID    string `json:"groupId" yaml:"groupId" toml:"groupId"`
	ArtifactID string `json:"artifactId" yaml:"artifactId" toml:"artifactId"`
	Current    string `json:"current,omitempty" yaml:"current,omitempty" toml:"current,omitempty"`
	Release    string `json:"release" yaml:"release" toml:"release"`
	Next       string `json:"next,omitempty" yaml:"next,omitempty" toml:"next,omitempty"`
}

// Coordinate returns the module coordinate.
func (m Module) Coordinate() coordinate.Coordinate {
	return coordinate.New(m.GroupID, m.ArtifactID)
}

// Plan is a release plan for a reactor.
type Plan struct {
	// TagURL is the SCM tag written into descriptors on release.
	TagURL  string   `json:"tagURL,omitempty" yaml:"tagURL,omitempty" toml:"tagURL,omitempty"`
	Modules []Module `json:"modules" yaml:"modules" toml:"modules"`
}

// ReleaseVersions returns the coordinate map of release versions.
func (p *Plan) ReleaseVersions() (*coordinate.Map, error) {
	entries := make([]coordinate.Entry, 0, len(p.Modules))
	for _, m := range p.Modules {
		entries = append(entries, coordinate.Entry{Coordinate: m.Coordinate(), Version: m.Release})
	}
	return coordinate.NewMap(entries)
}

// NextVersions returns the coordinate map of next development versions.
// Every module must have one.
func (p *Plan) NextVersions() (*coordinate.Map, error) {
	entries := make([]coordinate.Entry, 0, len(p.Modules))
	for _, m := range p.Modules {
		if m.Next == "" {
			return nil, oerrors.NewConfigurationError(
				fmt.Sprintf("module %s has no next development version", m.Coordinate()),
				map[string]string{"Module": m.Coordinate().String()},
				"Add a next version to the plan or derive the plan from the reactor")
		}
		entries = append(entries, coordinate.Entry{Coordinate: m.Coordinate(), Version: m.Next})
	}
	return coordinate.NewMap(entries)
}

// Module returns the entry for c.
func (p *Plan) Module(c coordinate.Coordinate) (Module, bool) {
	for _, m := range p.Modules {
		if m.Coordinate() == c {
			return m, true
		}
	}
	return Module{}, false
}
