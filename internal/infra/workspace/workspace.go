// Package workspace prepares per-case output directories under a common
// workspace root.
package workspace

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/acrovato/gmshcfd/internal/domain"
)

const defaultRoot = "workspace"

// Prepare creates (and optionally cleans) the output directory for one case
// and returns its path. An empty root selects "workspace" in the current
// directory.
func Prepare(root, caseName string, clean bool) (string, error) {
	if root == "" {
		root = defaultRoot
	}
	dir := filepath.Join(root, caseName)

	info, err := os.Stat(dir)
	switch {
	case err == nil && clean:
		if !info.IsDir() {
			return "", opErr(dir, fs.ErrInvalid)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", opErr(dir, err)
		}
		for _, e := range entries {
			if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
				return "", opErr(dir, err)
			}
		}
		return dir, nil
	case err == nil:
		if !info.IsDir() {
			return "", opErr(dir, fs.ErrInvalid)
		}
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", opErr(dir, err)
	}
	return dir, nil
}

func opErr(dir string, err error) error {
	return &domain.OpError{Op: "workspace.prepare", Kind: domain.KindExecution, Path: dir, Err: err}
}
