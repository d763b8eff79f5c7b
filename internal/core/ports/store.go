package ports

import "go.trai.ch/lal/internal/core/domain"

// ArtifactStore places release products into the artifact directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Publish copies tarball into dir as <component>.tar.gz and removes the original.
	// It returns the published path.
	Publish(dir, tarball, component string) (string, error)

	// WriteLock writes the lockfile into dir.
	WriteLock(dir string, lock *domain.Lock) error
}
