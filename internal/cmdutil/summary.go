package cmdutil

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/opmodel/pomver/internal/pom"
	"github.com/opmodel/pomver/internal/reactor"
)

// ModuleSummary lists the versions a descriptor declares.
type ModuleSummary struct {
	Version              string            `yaml:"version,omitempty"`
	Parent               string            `yaml:"parent,omitempty"`
	SCMTag               string            `yaml:"scmTag,omitempty"`
	Dependencies         map[string]string `yaml:"dependencies,omitempty"`
	DependencyManagement map[string]string `yaml:"dependencyManagement,omitempty"`
}

// Summarize extracts the declared versions of a descriptor.
func Summarize(data []byte) (ModuleSummary, error) {
	p, err := pom.Parse(data)
	if err != nil {
		return ModuleSummary{}, err
	}

	s := ModuleSummary{
		Version:              p.Version(),
		Dependencies:         dependencyVersions(p.Dependencies()),
		DependencyManagement: dependencyVersions(p.ManagedDependencies()),
	}
	if parent := p.Parent(); parent != nil {
		s.Parent = parent.Coordinate().WithVersion(parent.Version())
	}
	if tag := p.SCMTag(); tag != nil {
		s.SCMTag = tag.TrimmedText()
	}
	return s, nil
}

func dependencyVersions(deps []pom.Dependency) map[string]string {
	var out map[string]string
	for _, d := range deps {
		if d.Version() == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[d.Coordinate().String()] = d.Version()
	}
	return out
}

// VersionSummaries renders the declared versions of every module before and
// after the transform in o as YAML documents keyed by module coordinate.
func VersionSummaries(o *reactor.Outcome) (before, after []byte, err error) {
	from := make(map[string]ModuleSummary, len(o.Results))
	to := make(map[string]ModuleSummary, len(o.Results))

	for _, res := range o.Results {
		key := res.Module.Coordinate.String()
		if from[key], err = Summarize(res.Module.Data()); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", res.Module.Path, err)
		}
		if to[key], err = Summarize(res.Output); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", res.Module.Path, err)
		}
	}

	if before, err = encodeYAML(from); err != nil {
		return nil, nil, err
	}
	if after, err = encodeYAML(to); err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding version summary: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
