package fs

import (
	"context"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"

	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier checks the fetched INPUT tree against the manifest's pinned versions.
type Verifier struct {
	logger ports.Logger
}

// NewVerifier creates a new Verifier.
func NewVerifier(logger ports.Logger) *Verifier {
	return &Verifier{logger: logger}
}

// dependencyLock is the part of a dependency's lockfile the verifier reads.
type dependencyLock struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Verify checks that every pinned dependency is present in INPUT at its pinned version.
// Entries in INPUT that the manifest does not mention are reported as warnings.
func (v *Verifier) Verify(ctx context.Context, root string, m *domain.Manifest) error {
	deps := m.AllDependencies()
	if len(deps) == 0 {
		return nil
	}
	input := filepath.Join(root, domain.InputDir)

	present, err := listDirs(input)
	if err != nil {
		return err
	}

	var missing []string
	for _, name := range slices.Sorted(maps.Keys(deps)) {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return zerr.With(zerr.Wrap(domain.ErrMissingDependencies, "run lal fetch first"), "missing", missing)
	}

	for _, name := range slices.Sorted(maps.Keys(present)) {
		if _, ok := deps[name]; !ok {
			v.logger.Warn("Extraneous dependency " + name + " found in INPUT")
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for name, pinned := range deps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return checkVersion(input, name, pinned)
		})
	}
	return g.Wait()
}

func listDirs(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return map[string]bool{}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to list INPUT"), "path", dir)
	}
	dirs := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs[e.Name()] = true
		}
	}
	return dirs, nil
}

func checkVersion(input, name string, pinned uint32) error {
	path := filepath.Join(input, name, domain.LockfileName)

	//nolint:gosec // Path is built from the INPUT directory and a manifest key
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read dependency lockfile"), "path", path)
	}

	var lock dependencyLock
	if err := json.Unmarshal(data, &lock); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to decode dependency lockfile"), "path", path)
	}

	want := strconv.FormatUint(uint64(pinned), 10)
	if lock.Version != want {
		err := zerr.With(zerr.Wrap(domain.ErrDependencyMismatch, "dependency version differs from manifest"), "dependency", name)
		err = zerr.With(err, "pinned", want)
		return zerr.With(err, "found", lock.Version)
	}
	return nil
}
