// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/lal/internal/core/domain"
)

// Sandbox runs commands inside an isolated container environment.
//
// Implementations are responsible for:
//   - Selecting and starting the container image
//   - Binding the request root into the container as the working directory
//   - Waiting for the command to exit
//
//go:generate go run go.uber.org/mock/mockgen -source=sandbox.go -destination=mocks/mock_sandbox.go -package=mocks
type Sandbox interface {
	// Run executes the request synchronously.
	// A non-zero exit status is returned as an error.
	Run(ctx context.Context, req domain.SandboxRequest) error
}
