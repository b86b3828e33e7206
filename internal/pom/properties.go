package pom

import (
	"strings"
)

// maxInterpolationDepth bounds nested ${...} expansion.
const maxInterpolationDepth = 16

// PropertyResolver looks up the value of a ${name} reference.
type PropertyResolver interface {
	Resolve(name string) (string, bool)
}

// PropertyResolverFunc adapts a function to PropertyResolver.
type PropertyResolverFunc func(name string) (string, bool)

// Resolve implements PropertyResolver.
func (f PropertyResolverFunc) Resolve(name string) (string, bool) {
	return f(name)
}

// MapResolver resolves from a fixed map.
type MapResolver map[string]string

// Resolve implements PropertyResolver.
func (m MapResolver) Resolve(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Chain tries each resolver in order.
func Chain(resolvers ...PropertyResolver) PropertyResolver {
	return PropertyResolverFunc(func(name string) (string, bool) {
		for _, r := range resolvers {
			if r == nil {
				continue
			}
			if v, ok := r.Resolve(name); ok {
				return v, true
			}
		}
		return "", false
	})
}

// NewPropertyResolver resolves references the way they are visible inside
// p: extra first, then the project model (project.version and friends), then
// the <properties> block.
func NewPropertyResolver(p *Project, extra map[string]string) PropertyResolver {
	model := MapResolver{
		"project.groupId":    p.GroupID(),
		"pom.groupId":        p.GroupID(),
		"project.artifactId": p.ArtifactID(),
		"pom.artifactId":     p.ArtifactID(),
		"project.version":    p.EffectiveVersion(),
		"pom.version":        p.EffectiveVersion(),
		"version":            p.EffectiveVersion(),
	}
	if parent := p.Parent(); parent != nil {
		model["project.parent.version"] = parent.Version()
		model["parent.version"] = parent.Version()
		model["project.parent.groupId"] = parent.GroupID
		model["project.parent.artifactId"] = parent.ArtifactID
	}
	return Chain(MapResolver(extra), model, MapResolver(p.Properties()))
}

// IsReference reports whether v contains a ${...} reference.
func IsReference(v string) bool {
	i := strings.Index(v, "${")
	return i >= 0 && strings.Contains(v[i:], "}")
}

// selfReferences follow the project's own or parent version, which are
// rewritten in the same pass.
var selfReferences = map[string]bool{
	"${project.version}":        true,
	"${pom.version}":            true,
	"${version}":                true,
	"${project.parent.version}": true,
	"${parent.version}":         true,
}

// IsSelfReference reports whether v is exactly a reference to the project's
// or its parent's version.
func IsSelfReference(v string) bool {
	return selfReferences[strings.TrimSpace(v)]
}

// Interpolate expands every ${name} in v, including references nested in
// resolved values. Names the resolver cannot answer, or that expand
// cyclically, are left in place and returned in unresolved.
func Interpolate(v string, r PropertyResolver) (string, []string) {
	missing := make(map[string]bool)
	var unresolved []string
	note := func(name string) {
		if !missing[name] {
			missing[name] = true
			unresolved = append(unresolved, name)
		}
	}

	out := v
	for depth := 0; ; depth++ {
		if depth == maxInterpolationDepth {
			for _, name := range referenceNames(out) {
				note(name)
			}
			break
		}
		next, progressed := expandOnce(out, r, note)
		out = next
		if !progressed {
			break
		}
	}
	return out, unresolved
}

func expandOnce(s string, r PropertyResolver, note func(string)) (string, bool) {
	var b strings.Builder
	progressed := false
	rest := s
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			break
		}
		end += start
		name := rest[start+2 : end]
		b.WriteString(rest[:start])
		if val, ok := r.Resolve(name); ok {
			b.WriteString(val)
			progressed = true
		} else {
			b.WriteString(rest[start : end+1])
			note(name)
		}
		rest = rest[end+1:]
	}
	b.WriteString(rest)
	return b.String(), progressed
}

func referenceNames(s string) []string {
	var names []string
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			return names
		}
		end := strings.Index(s[start:], "}")
		if end < 0 {
			return names
		}
		names = append(names, s[start+2:start+end])
		s = s[start+end+1:]
	}
}
