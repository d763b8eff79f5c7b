package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// DefaultRuntime is the container runtime binary used when none is configured.
const DefaultRuntime = "docker"

// Mount is an extra host path bound into every build container.
type Mount struct {
	Src      string `mapstructure:"src"      yaml:"src"`
	Dest     string `mapstructure:"dest"     yaml:"dest"`
	ReadOnly bool   `mapstructure:"readonly" yaml:"readonly"`
}

// Config is the user-level tool configuration.
type Config struct {
	// Runtime is the container runtime binary, e.g. docker or podman.
	Runtime string `mapstructure:"runtime" yaml:"runtime"`

	// DefaultEnvironment is used when neither the command line nor the manifest picks one.
	DefaultEnvironment string `mapstructure:"defaultEnvironment" yaml:"defaultEnvironment"`

	// Environments maps environment names to container images.
	Environments map[string]Container `mapstructure:"environments" yaml:"environments"`

	// Mounts are bound into every build container in addition to the project root.
	Mounts []Mount `mapstructure:"mounts" yaml:"mounts"`

	// Env holds KEY=VALUE pairs passed to every build container.
	Env []string `mapstructure:"env" yaml:"env"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Runtime:            DefaultRuntime,
		DefaultEnvironment: "default",
		Environments: map[string]Container{
			"default": {Name: "ubuntu", Tag: "24.04"},
		},
	}
}

// WithDefaults fills unset fields from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	def := DefaultConfig()
	if c.Runtime == "" {
		c.Runtime = def.Runtime
	}
	if len(c.Environments) == 0 {
		c.Environments = def.Environments
	}
	if c.DefaultEnvironment == "" {
		c.DefaultEnvironment = def.DefaultEnvironment
	}
	return c
}

// GetContainer returns the container for a named environment.
func (c *Config) GetContainer(env string) (Container, error) {
	container, ok := c.Environments[env]
	if !ok {
		err := zerr.With(zerr.Wrap(ErrUnknownEnvironment, "environment not defined in config"), "environment", env)
		return Container{}, zerr.With(err, "known", slices.Sorted(maps.Keys(c.Environments)))
	}
	return container, nil
}

// ResolveEnvironment picks the environment name for a build: an explicit request wins,
// then the manifest's environment, then the configured default.
func (c *Config) ResolveEnvironment(requested string, m *Manifest) string {
	switch {
	case requested != "":
		return requested
	case m != nil && m.Environment != "":
		return m.Environment
	default:
		return c.DefaultEnvironment
	}
}
