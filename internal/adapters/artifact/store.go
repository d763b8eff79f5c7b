// Package artifact publishes release tarballs and lockfiles into the artifact directory.
package artifact

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/lal/internal/adapters/manifest"
	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore on the local file system.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Publish copies tarball to dir/<component>.tar.gz and removes the original.
func (s *Store) Publish(dir, tarball, component string) (string, error) {
	dest := filepath.Join(dir, component+domain.TarballExt)
	if err := copyFile(tarball, dest); err != nil {
		return "", err
	}
	if err := os.Remove(tarball); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to remove temporary tarball"), "path", tarball)
	}
	s.logger.Debug("Published " + dest)
	return dest, nil
}

// WriteLock writes lock as indented JSON to dir/lockfile.json.
func (s *Store) WriteLock(dir string, lock *domain.Lock) error {
	data, err := manifest.Encode(lock)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, domain.LockfileName)
	//nolint:gosec // Path is the artifact directory resolved by the workspace
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", path)
	}
	s.logger.Debug("Wrote lockfile " + path)
	return nil
}

func copyFile(src, dest string) (err error) {
	//nolint:gosec // src is a tarball produced by the packager
	in, err := os.Open(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open tarball"), "path", src)
	}
	defer func() { _ = in.Close() }()

	//nolint:gosec // dest is inside the artifact directory
	out, err := os.Create(dest)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create artifact"), "path", dest)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = zerr.With(zerr.Wrap(cerr, "failed to close artifact"), "path", dest)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to copy tarball"), "path", dest)
	}
	return nil
}
