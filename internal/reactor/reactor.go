// Package reactor discovers the modules of a multi-module build and applies
// release transforms to all of them as one unit.
package reactor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opmodel/pomver/internal/coordinate"
	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/pom"
)

// DescriptorName is the file name of a module descriptor.
const DescriptorName = "pom.xml"

// Module is one descriptor of the reactor.
type Module struct {
	// Path is the absolute path of the descriptor file.
	Path string

	// Coordinate identifies the module.
	Coordinate coordinate.Coordinate

	// Version is the effective version, inherited from the parent when the
	// descriptor declares none.
	Version string

	// Parent is the parent coordinate, zero when there is none.
	Parent coordinate.Coordinate

	// data is the descriptor as read from disk.
	data []byte
}

// Data returns the descriptor bytes as read from disk.
func (m *Module) Data() []byte {
	return m.data
}

// Reactor is the set of modules reachable from an aggregator descriptor
// through <modules>, in depth-first declaration order.
type Reactor struct {
	Root    string
	Modules []*Module
}

// Discover loads the descriptor at root (a pom.xml file or a directory
// containing one) and every module it aggregates, recursively.
func Discover(root string) (*Reactor, error) {
	path, err := descriptorPath(root)
	if err != nil {
		return nil, err
	}

	d := &discovery{
		seen:  make(map[string]bool),
		index: make(map[coordinate.Coordinate]string),
	}
	if err := d.visit(path); err != nil {
		return nil, err
	}
	output.Debug("discovered reactor", "root", path, "modules", len(d.modules))
	return &Reactor{Root: path, Modules: d.modules}, nil
}

type discovery struct {
	modules []*Module
	seen    map[string]bool
	index   map[coordinate.Coordinate]string
}

func (d *discovery) visit(path string) error {
	if d.seen[path] {
		return nil
	}
	d.seen[path] = true

	p, err := pom.ParseFile(path)
	if err != nil {
		return err
	}

	m := &Module{
		Path:       path,
		Coordinate: p.Coordinate(),
		Version:    p.EffectiveVersion(),
		data:       p.Bytes(),
	}
	if parent := p.Parent(); parent != nil {
		m.Parent = parent.Coordinate()
	}
	if other, dup := d.index[m.Coordinate]; dup {
		return oerrors.NewConfigurationError(
			fmt.Sprintf("module %s is declared twice", m.Coordinate),
			map[string]string{"First": other, "Second": path},
			"Every module in a reactor needs a unique groupId:artifactId")
	}
	d.index[m.Coordinate] = path
	d.modules = append(d.modules, m)

	dir := filepath.Dir(path)
	for _, entry := range p.Modules() {
		child, err := descriptorPath(filepath.Join(dir, filepath.FromSlash(entry)))
		if err != nil {
			return fmt.Errorf("module %q of %s: %w", entry, m.Coordinate, err)
		}
		if err := d.visit(child); err != nil {
			return err
		}
	}
	return nil
}

// descriptorPath resolves a module reference to an absolute descriptor path.
func descriptorPath(ref string) (string, error) {
	abs, err := filepath.Abs(ref)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", ref, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", oerrors.NewNotFoundError("module descriptor not found", abs, "Check the <modules> entries")
		}
		return "", fmt.Errorf("inspecting %s: %w", abs, err)
	}
	if info.IsDir() {
		return descriptorPath(filepath.Join(abs, DescriptorName))
	}
	return abs, nil
}

// Module returns the module with coordinate c.
func (r *Reactor) Module(c coordinate.Coordinate) (*Module, bool) {
	for _, m := range r.Modules {
		if m.Coordinate == c {
			return m, true
		}
	}
	return nil, false
}

// CurrentVersions maps every module to its effective version as found on
// disk.
func (r *Reactor) CurrentVersions() (*coordinate.Map, error) {
	entries := make([]coordinate.Entry, 0, len(r.Modules))
	for _, m := range r.Modules {
		if m.Version == "" {
			continue
		}
		entries = append(entries, coordinate.Entry{Coordinate: m.Coordinate, Version: m.Version})
	}
	return coordinate.NewMap(entries)
}
