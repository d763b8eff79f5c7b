package ports

import "go.trai.ch/lal/internal/core/domain"

// ManifestStore reads and writes project manifests.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Identify decides which manifest path under root is authoritative.
	Identify(root string) (domain.ManifestLocation, error)

	// Read loads the manifest under root and records where it was read from.
	Read(root string) (*domain.Manifest, error)

	// Write persists the manifest to the location it carries.
	Write(m *domain.Manifest) error
}
