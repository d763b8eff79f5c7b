package ports

import "go.trai.ch/lal/internal/core/domain"

// ConfigLoader defines the interface for loading and saving the tool configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path. An empty path selects the default location.
	// A missing file yields the default configuration.
	Load(path string) (*domain.Config, error)

	// Save writes cfg to path and returns the resolved path.
	// An existing file is only replaced when force is set.
	Save(path string, cfg *domain.Config, force bool) (string, error)
}
