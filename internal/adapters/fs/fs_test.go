package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lal/internal/adapters/fs"
)

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   empty/
	//   sub/deeper/c.txt
	//   sub/b.txt
	//   a.txt
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".git"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".git", "config"), []byte("git config"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "empty"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "sub", "deeper"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "sub", "deeper", "c.txt"), []byte("c"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "sub", "b.txt"), []byte("b"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.txt"), []byte("a"), 0o600))

	collect := func(w *fs.Walker) []string {
		var files []string
		for path, err := range w.WalkFiles(tmpDir) {
			require.NoError(t, err)
			rel, err := filepath.Rel(tmpDir, path)
			require.NoError(t, err)
			files = append(files, filepath.ToSlash(rel))
		}
		return files
	}

	assert.Equal(t, []string{".git/config", "a.txt", "sub/b.txt", "sub/deeper/c.txt"}, collect(fs.NewWalker()))
	assert.Equal(t, []string{"a.txt", "sub/b.txt", "sub/deeper/c.txt"}, collect(fs.NewWalker(".git")))
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	w := fs.NewWalker()

	var gotErr error
	for _, err := range w.WalkFiles(filepath.Join(t.TempDir(), "missing")) {
		if err != nil {
			gotErr = err
		}
	}
	require.Error(t, gotErr)
	assert.True(t, errors.Is(gotErr, os.ErrNotExist))
}

func TestWalker_WalkFiles_EarlyStop(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), nil, 0o600))
	}

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
