// Package manifest reads and writes project manifests in their supported locations.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore using JSON files on disk.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Identify finds the manifest under root.
//
// .lal/manifest.json is preferred. A root-level manifest.json is accepted on its own
// so older repositories keep working, and is ignored with a warning when both exist.
func (s *Store) Identify(root string) (domain.ManifestLocation, error) {
	lal, err := exists(domain.LocationLalSubfolder.Path(root))
	if err != nil {
		return 0, err
	}
	legacy, err := exists(domain.LocationRepoRoot.Path(root))
	if err != nil {
		return 0, err
	}

	switch {
	case lal:
		if legacy {
			s.logger.Warn("manifest.json found in both .lal/ and current directory")
			s.logger.Warn("Using the default: .lal/manifest.json")
		}
		return domain.LocationLalSubfolder, nil
	case legacy:
		return domain.LocationRepoRoot, nil
	default:
		return 0, zerr.With(zerr.Wrap(domain.ErrMissingManifest, "neither .lal/manifest.json nor manifest.json exists"), "root", root)
	}
}

// Read loads and validates the manifest under root.
// The resolved path is stored on the manifest for a later Write.
func (s *Store) Read(root string) (*domain.Manifest, error) {
	loc, err := s.Identify(root)
	if err != nil {
		return nil, err
	}
	path := loc.Path(root)
	s.logger.Debug("Using manifest in " + path)

	//nolint:gosec // Path is derived from the project root
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		err = errors.Join(domain.ErrManifestParse, err)
		return nil, zerr.With(zerr.Wrap(err, "failed to decode manifest"), "path", path)
	}
	if err := m.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	normalize(&m)
	m.Location = path
	return &m, nil
}

// Write serializes the manifest as indented JSON with a trailing newline to m.Location.
func (s *Store) Write(m *domain.Manifest) error {
	if m.Location == "" {
		return zerr.With(zerr.Wrap(domain.ErrMissingManifestLocation, "cannot write manifest"), "name", m.Name)
	}

	normalize(m)
	data, err := Encode(m)
	if err != nil {
		return err
	}

	//nolint:gosec // Location was resolved by Read or set by the caller
	if err := os.WriteFile(m.Location, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write manifest"), "path", m.Location)
	}

	s.logger.Info("Wrote manifest in " + m.Location)
	return nil
}

// Encode renders v as two-space indented JSON terminated by a single newline.
// Map keys are emitted in sorted order.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, zerr.Wrap(err, "failed to encode json")
	}
	return buf.Bytes(), nil
}

// normalize replaces absent dependency maps with empty ones so they encode as objects.
func normalize(m *domain.Manifest) {
	if m.Dependencies == nil {
		m.Dependencies = make(map[string]uint32)
	}
	if m.DevDependencies == nil {
		m.DevDependencies = make(map[string]uint32)
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "failed to stat manifest"), "path", path)
}
