// Package archive packages build output into gzip-compressed tarballs.
package archive

import (
	"archive/tar"
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"go.trai.ch/lal/internal/adapters/fs"
	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Packager = (*Packager)(nil)

// Packager implements ports.Packager with tar and gzip.
type Packager struct {
	walker *fs.Walker
}

// NewPackager creates a new Packager.
func NewPackager(walker *fs.Walker) *Packager {
	return &Packager{walker: walker}
}

// Package archives every regular file below srcDir into dest.
// Entries are named by their slash-separated path relative to srcDir.
// On any failure, including an empty srcDir, dest is removed.
func (p *Packager) Package(ctx context.Context, srcDir, dest string) (archive *domain.Archive, err error) {
	//nolint:gosec // dest is derived from the project root
	f, err := os.Create(dest)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create tarball"), "path", dest)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	h := xxhash.New()

	files, err := p.appendAll(ctx, tw, h, srcDir)
	if err != nil {
		_ = tw.Close()
		_ = gz.Close()
		_ = f.Close()
		return nil, err
	}

	// tar, then gzip, then the file.
	if err := tw.Close(); err != nil {
		_ = gz.Close()
		_ = f.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to finish tar stream"), "path", dest)
	}
	if err := gz.Close(); err != nil {
		_ = f.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to finish gzip stream"), "path", dest)
	}
	if err := f.Close(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to close tarball"), "path", dest)
	}

	if len(files) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingBuild, "nothing to package"), "dir", srcDir)
	}

	return &domain.Archive{
		Path:   dest,
		Files:  files,
		Digest: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

func (p *Packager) appendAll(ctx context.Context, tw *tar.Writer, h io.Writer, srcDir string) ([]string, error) {
	var files []string
	for path, err := range p.walker.WalkFiles(srcDir) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to walk build output"), "dir", srcDir)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		name := filepath.ToSlash(rel)

		appended, err := appendFile(tw, h, path, name)
		if err != nil {
			return nil, err
		}
		if appended {
			files = append(files, name)
		}
	}
	return files, nil
}

// appendFile writes a single file into tw. Symlinks are followed and stored
// as their target's content under the link name. Directories reached through
// a link, devices and other non-regular entries are skipped.
func appendFile(tw *tar.Writer, h io.Writer, path, name string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to build tar header"), "path", path)
	}
	hdr.Name = name
	hdr.Uname, hdr.Gname = "", ""

	if err := tw.WriteHeader(hdr); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to write tar header"), "path", path)
	}

	//nolint:gosec // path comes from walking the build output
	src, err := os.Open(path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer func() { _ = src.Close() }()

	_, _ = io.WriteString(h, name)
	_, _ = h.Write([]byte{0})
	if _, err := io.Copy(io.MultiWriter(tw, h), src); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to append file"), "path", path)
	}
	return true, nil
}
