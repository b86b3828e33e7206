package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	oerrors "github.com/opmodel/pomver/internal/errors"
	"github.com/opmodel/pomver/internal/output"
	"github.com/opmodel/pomver/internal/reactor"
	"github.com/opmodel/pomver/internal/release"
)

// PrintError prints err in a user-friendly format. Snapshot violations are
// logged with the offending reference; errors carrying details print them
// as plain text below a short summary line.
func PrintError(msg string, err error) {
	var snapErr *release.SnapshotNotAllowedError
	var detailErr *oerrors.DetailError

	switch {
	case errors.As(err, &snapErr):
		keyvals := []any{"offender", snapErr.Offender(), "role", string(snapErr.Role), "module", snapErr.Module.String()}
		if snapErr.Line > 0 {
			keyvals = append(keyvals, "line", snapErr.Line)
		}
		output.Error(fmt.Sprintf("%s: snapshot version not allowed", msg), keyvals...)
	case errors.As(err, &detailErr):
		output.Error(fmt.Sprintf("%s: %s", msg, detailErr.Type))
		output.Details(err.Error())
	default:
		output.Error(msg, "error", err)
	}
}

// ModuleReport is the report entry for one module.
type ModuleReport struct {
	Module   string            `json:"module" yaml:"module"`
	Path     string            `json:"path" yaml:"path"`
	Status   string            `json:"status" yaml:"status"`
	Changes  []release.Change  `json:"changes,omitempty" yaml:"changes,omitempty"`
	Warnings []release.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Report summarizes a reactor transform.
type Report struct {
	DryRun    bool           `json:"dryRun" yaml:"dryRun"`
	Modified  int            `json:"modified" yaml:"modified"`
	Unchanged int            `json:"unchanged" yaml:"unchanged"`
	Modules   []ModuleReport `json:"modules" yaml:"modules"`
}

// NewReport builds the report for o. Paths are made relative to the
// directory of the root descriptor when possible.
func NewReport(r *reactor.Reactor, o *reactor.Outcome, dryRun bool) *Report {
	rep := &Report{DryRun: dryRun, Modules: make([]ModuleReport, 0, len(o.Results))}
	for _, res := range o.Results {
		path := res.Module.Path
		if rel, err := filepath.Rel(filepath.Dir(r.Root), path); err == nil {
			path = rel
		}
		status := res.Status()
		if status == output.StatusModified {
			rep.Modified++
		} else {
			rep.Unchanged++
		}
		rep.Modules = append(rep.Modules, ModuleReport{
			Module:   res.Module.Coordinate.String(),
			Path:     path,
			Status:   status,
			Changes:  res.Changes,
			Warnings: res.Warnings,
		})
	}
	return rep
}

// WriteReport writes rep to w. The table format lists every change
// followed by a summary line.
func WriteReport(w io.Writer, format output.OutputFormat, rep *Report) error {
	if format != output.FormatTable {
		return output.Encode(w, format, rep)
	}

	tbl := output.NewChangeTable()
	for _, m := range rep.Modules {
		for _, c := range m.Changes {
			line := ""
			if c.Line > 0 {
				line = strconv.Itoa(c.Line)
			}
			tbl.Row(m.Module, string(c.Role), c.Coordinate.String(), c.From, c.To, line)
		}
	}
	if tbl.Len() > 0 {
		if _, err := fmt.Fprintln(w, tbl.String()); err != nil {
			return err
		}
	}

	summary := output.DiffSummary(rep.Modified, rep.Unchanged)
	if rep.DryRun {
		summary += " (dry run)"
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

// LogModules logs one status line per module.
func LogModules(o *reactor.Outcome) {
	for _, res := range o.Results {
		line := output.FormatModuleLine(res.Module.Coordinate.String(), res.Status())
		if res.Modified() {
			line += "  " + output.FormatVersionChange(res.Module.Version, targetVersion(res))
		}
		output.Info(line)
	}
}

// targetVersion returns the version the module's own descriptor moved to,
// or its current version when the own version is inherited.
func targetVersion(res reactor.ModuleResult) string {
	inherited := res.Module.Version
	for _, c := range res.Changes {
		switch {
		case c.Role == release.RoleOwnVersion:
			return c.To
		case c.Role == release.RoleParent && c.Coordinate == res.Module.Parent:
			inherited = c.To
		}
	}
	return inherited
}
