package ports

import (
	"context"

	"go.trai.ch/lal/internal/core/domain"
)

// Verifier checks that the fetched dependency tree matches the manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// Verify returns an error describing the first inconsistency found under root.
	Verify(ctx context.Context, root string, m *domain.Manifest) error
}
