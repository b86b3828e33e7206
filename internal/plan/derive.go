package plan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/reactor"
	"github.com/opmodel/pomver/internal/release"
)

// VersionPlaceholder is replaced by the release version in tag URL templates.
const VersionPlaceholder = "{version}"

// DeriveOptions tunes Derive.
type DeriveOptions struct {
	// ReleaseVersion overrides the release version of every module.
	ReleaseVersion string

	// NextVersion overrides the next development version of every module.
	NextVersion string

	// TagURLTemplate is expanded with the root module's release version.
	TagURLTemplate string
}

// Derive computes a plan from the versions found in r. The release version
// of a module is its current version without the snapshot suffix; the next
// development version bumps the last numeric component and appends the
// suffix again.
func Derive(r *reactor.Reactor, opts DeriveOptions) (*Plan, error) {
	p := &Plan{Modules: make([]Module, 0, len(r.Modules))}

	for _, m := range r.Modules {
		if m.Version == "" {
			return nil, oerrors.NewConfigurationError(
				fmt.Sprintf("module %s has no version", m.Coordinate),
				map[string]string{"Path": m.Path},
				"Declare a <version> or inherit one from a <parent>")
		}

		rel := opts.ReleaseVersion
		if rel == "" {
			rel = ReleaseVersion(m.Version)
		}
		next := opts.NextVersion
		if next == "" {
			var err error
			next, err = NextDevelopmentVersion(rel)
			if err != nil {
				return nil, fmt.Errorf("module %s: %w", m.Coordinate, err)
			}
		}

		p.Modules = append(p.Modules, Module{
			GroupID:    m.Coordinate.GroupID,
			ArtifactID: m.Coordinate.ArtifactID,
			Current:    m.Version,
			Release:    rel,
			Next:       next,
		})
	}

	if opts.TagURLTemplate != "" && len(p.Modules) > 0 {
		p.TagURL = ExpandTagURL(opts.TagURLTemplate, p.Modules[0].Release)
	}
	return p, nil
}

// ReleaseVersion strips the snapshot suffix from version.
func ReleaseVersion(version string) string {
	return strings.TrimSuffix(version, release.SnapshotSuffix)
}

// ExpandTagURL substitutes version into a tag URL template.
func ExpandTagURL(template, version string) string {
	return strings.ReplaceAll(template, VersionPlaceholder, version)
}

var lastNumber = regexp.MustCompile(`(\d+)(\D*)$`)

// NextDevelopmentVersion returns the snapshot version following version.
// Semantic versions get their patch component bumped ("1.2" becomes
// "1.2.1-SNAPSHOT", "1.2.3" becomes "1.2.4-SNAPSHOT"). Other Maven versions
// have their last number bumped ("2.1.Final" becomes "2.2.Final-SNAPSHOT").
func NextDevelopmentVersion(version string) (string, error) {
	version = ReleaseVersion(version)

	if v, err := semver.NewVersion(version); err == nil && v.Prerelease() == "" && v.Metadata() == "" {
		return v.IncPatch().String() + release.SnapshotSuffix, nil
	}

	loc := lastNumber.FindStringSubmatchIndex(version)
	if loc == nil {
		return "", oerrors.NewConfigurationError(
			fmt.Sprintf("cannot compute the next development version of %q", version),
			nil,
			"Pass the next version explicitly or use a plan file")
	}
	n, err := strconv.Atoi(version[loc[2]:loc[3]])
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", version, err)
	}
	return version[:loc[2]] + strconv.Itoa(n+1) + version[loc[3]:] + release.SnapshotSuffix, nil
}
