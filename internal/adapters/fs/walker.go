// Package fs provides file system adapters for walking build trees,
// resetting scratch directories and verifying fetched dependencies.
package fs

import (
	iofs "io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// Walker provides file walking functionality.
type Walker struct {
	skipDirs []string
}

// NewWalker creates a new Walker that prunes directories with the given names.
func NewWalker(skipDirs ...string) *Walker {
	return &Walker{skipDirs: skipDirs}
}

// WalkFiles yields every non-directory entry below root at any depth, in lexical order.
// Paths include root. A walk error is yielded once and ends the iteration.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && slices.Contains(w.skipDirs, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}
