package ports

import (
	"context"

	"go.trai.ch/lal/internal/core/domain"
)

// Packager turns a directory into a compressed archive.
//
//go:generate go run go.uber.org/mock/mockgen -source=packager.go -destination=mocks/mock_packager.go -package=mocks
type Packager interface {
	// Package archives every regular file under srcDir into dest.
	// It fails with domain.ErrMissingBuild when srcDir holds no files.
	Package(ctx context.Context, srcDir, dest string) (*domain.Archive, error)
}
