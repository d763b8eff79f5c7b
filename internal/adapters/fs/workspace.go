package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/lal/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Workspace = (*Workspace)(nil)

// Workspace resets build scratch directories.
//
// Only "empty at the start of a run" is guaranteed. A run that dies half way
// leaves its directories behind and the next EnsureFresh clears them.
type Workspace struct{}

// NewWorkspace creates a new Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// EnsureFresh removes root/name if present and recreates it empty.
func (w *Workspace) EnsureFresh(root, name string) (string, error) {
	base, err := filepath.Abs(root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve workspace root"), "root", root)
	}
	dir := filepath.Join(base, name)

	if _, err := os.Lstat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to clean directory"), "path", dir)
		}
	} else if !errors.Is(err, iofs.ErrNotExist) {
		return "", zerr.With(zerr.Wrap(err, "failed to stat directory"), "path", dir)
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dir)
	}
	return dir, nil
}
