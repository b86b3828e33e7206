// Package pom provides a Maven project view over a byte-faithful XML tree.
package pom

import (
	"fmt"
	"os"

	"github.com/opmodel/pomver/internal/coordinate"
	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/xmltree"
)

// Project is a parsed pom.xml.
type Project struct {
	doc  *xmltree.Document
	root *xmltree.Node
}

// Parse parses pom.xml content.
func Parse(data []byte) (*Project, error) {
	doc, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// ParseFile reads and parses the descriptor at path.
func ParseFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("descriptor not found", path, "")
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// FromDocument wraps doc, checking the elements every descriptor needs.
func FromDocument(doc *xmltree.Document) (*Project, error) {
	root := doc.Root()
	if root == nil || root.Name.Local != "project" {
		return nil, oerrors.NewMalformedError("root element must be <project>", "", nil)
	}
	p := &Project{doc: doc, root: root}
	if p.ArtifactID() == "" {
		return nil, oerrors.NewMalformedError("missing <artifactId>", fmt.Sprintf("line %d", root.Line()), nil)
	}
	if p.GroupID() == "" {
		return nil, oerrors.NewMalformedError("missing <groupId> and no parent to inherit it from",
			fmt.Sprintf("line %d", root.Line()), nil)
	}
	if parent := root.Child("parent"); parent != nil {
		if parent.Child("groupId").TrimmedText() == "" || parent.Child("artifactId").TrimmedText() == "" {
			return nil, oerrors.NewMalformedError("<parent> needs <groupId> and <artifactId>",
				fmt.Sprintf("line %d", parent.Line()), nil)
		}
	}
	return p, nil
}

// Document returns the underlying XML document.
func (p *Project) Document() *xmltree.Document {
	return p.doc
}

// Bytes serializes the descriptor.
func (p *Project) Bytes() []byte {
	return p.doc.Bytes()
}

// GroupID returns the project's groupId, inherited from the parent when the
// project does not declare one.
func (p *Project) GroupID() string {
	if g := p.root.Child("groupId").TrimmedText(); g != "" {
		return g
	}
	return p.root.Find("parent", "groupId").TrimmedText()
}

// ArtifactID returns the project's artifactId.
func (p *Project) ArtifactID() string {
	return p.root.Child("artifactId").TrimmedText()
}

// Coordinate returns the project's own coordinate.
func (p *Project) Coordinate() coordinate.Coordinate {
	return coordinate.New(p.GroupID(), p.ArtifactID())
}

// Version returns the version literal declared by the project itself, or ""
// when the version is inherited.
func (p *Project) Version() string {
	return p.root.Child("version").TrimmedText()
}

// VersionElement returns the project's own <version>, or nil.
func (p *Project) VersionElement() *xmltree.Node {
	return p.root.Child("version")
}

// EffectiveVersion returns the own version, falling back to the parent's.
func (p *Project) EffectiveVersion() string {
	if v := p.Version(); v != "" {
		return v
	}
	if parent := p.Parent(); parent != nil {
		return parent.Version()
	}
	return ""
}

// Packaging returns the declared packaging, defaulting to "jar".
func (p *Project) Packaging() string {
	if v := p.root.Child("packaging").TrimmedText(); v != "" {
		return v
	}
	return "jar"
}

// Parent is the <parent> reference of a project.
type Parent struct {
	GroupID    string
	ArtifactID string
	node       *xmltree.Node
}

// Parent returns the parent reference, or nil when there is none.
func (p *Project) Parent() *Parent {
	n := p.root.Child("parent")
	if n == nil {
		return nil
	}
	return &Parent{
		GroupID:    n.Child("groupId").TrimmedText(),
		ArtifactID: n.Child("artifactId").TrimmedText(),
		node:       n,
	}
}

// Coordinate returns the parent's coordinate.
func (p *Parent) Coordinate() coordinate.Coordinate {
	return coordinate.New(p.GroupID, p.ArtifactID)
}

// Version returns the parent version as written.
func (p *Parent) Version() string {
	return p.node.Child("version").TrimmedText()
}

// VersionElement returns the parent's <version>, or nil.
func (p *Parent) VersionElement() *xmltree.Node {
	return p.node.Child("version")
}

// RelativePath returns <relativePath>, defaulting to "../pom.xml".
func (p *Parent) RelativePath() string {
	n := p.node.Child("relativePath")
	if n == nil {
		return "../pom.xml"
	}
	return n.TrimmedText()
}

// SCMTag returns the <scm><tag> element, or nil.
func (p *Project) SCMTag() *xmltree.Node {
	return p.root.Find("scm", "tag")
}

// Dependency is one <dependency> entry.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Type       string
	Classifier string
	Scope      string
	node       *xmltree.Node
}

// Coordinate returns the dependency's coordinate.
func (d Dependency) Coordinate() coordinate.Coordinate {
	return coordinate.New(d.GroupID, d.ArtifactID)
}

// Version returns the declared version, "" when managed elsewhere.
func (d Dependency) Version() string {
	return d.node.Child("version").TrimmedText()
}

// VersionElement returns the dependency's <version>, or nil.
func (d Dependency) VersionElement() *xmltree.Node {
	return d.node.Child("version")
}

// Line returns the line the entry starts on.
func (d Dependency) Line() int {
	return d.node.Line()
}

// Dependencies returns the entries of <dependencies> in document order.
func (p *Project) Dependencies() []Dependency {
	return dependencies(p.root.Child("dependencies"))
}

// ManagedDependencies returns the entries of
// <dependencyManagement><dependencies> in document order.
func (p *Project) ManagedDependencies() []Dependency {
	return dependencies(p.root.Find("dependencyManagement", "dependencies"))
}

func dependencies(list *xmltree.Node) []Dependency {
	var out []Dependency
	for _, n := range list.ChildrenNamed("dependency") {
		out = append(out, Dependency{
			GroupID:    n.Child("groupId").TrimmedText(),
			ArtifactID: n.Child("artifactId").TrimmedText(),
			Type:       n.Child("type").TrimmedText(),
			Classifier: n.Child("classifier").TrimmedText(),
			Scope:      n.Child("scope").TrimmedText(),
			node:       n,
		})
	}
	return out
}

// Modules returns the <modules><module> entries.
func (p *Project) Modules() []string {
	var out []string
	for _, n := range p.root.Find("modules").ChildrenNamed("module") {
		if m := n.TrimmedText(); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// Properties returns the <properties> block as a map.
func (p *Project) Properties() map[string]string {
	props := make(map[string]string)
	for _, n := range p.root.Child("properties").Elements() {
		props[n.Name.Local] = n.TrimmedText()
	}
	return props
}
