package reactor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opmodel/pomver/internal/output"
)

// Write stores every modified descriptor of o. All new contents are staged
// in temporary files next to their targets first; targets are replaced only
// once every file has been staged. Unmodified descriptors are not touched.
func Write(ctx context.Context, o *Outcome) error {
	modified := o.Modified()

	staged := make([]string, 0, len(modified))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, r := range modified {
		if err := ctx.Err(); err != nil {
			cleanup()
			return err
		}
		tmp, err := stage(r.Module.Path, r.Output)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}

	for i, r := range modified {
		if err := os.Rename(staged[i], r.Module.Path); err != nil {
			// Earlier renames already landed; remove the rest of the staging files.
			for _, tmp := range staged[i:] {
				_ = os.Remove(tmp)
			}
			return fmt.Errorf("replacing %s: %w", r.Module.Path, err)
		}
		output.ModuleLogger(r.Module.Coordinate.String()).Info("written", "path", r.Module.Path, "changes", len(r.Changes))
	}
	return nil
}

// stage writes data to a temporary file in the directory of target with the
// file mode of target and returns its path.
func stage(target string, data []byte) (string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", fmt.Errorf("inspecting %s: %w", target, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".pomver-*.xml")
	if err != nil {
		return "", fmt.Errorf("staging %s: %w", target, err)
	}
	name := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("staging %s: %w", target, err)
	}
	if err := os.Chmod(name, info.Mode().Perm()); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("setting permissions for %s: %w", target, err)
	}
	return name, nil
}
