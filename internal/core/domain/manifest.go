// Package domain contains the core domain models for manifests, build selections and lockfiles.
package domain

import (
	"maps"
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
)

const (
	// DefaultConfiguration is the configuration every freshly initialised component builds with.
	DefaultConfiguration = "release"

	// ManifestFile is the file name of the manifest in both supported locations.
	ManifestFile = "manifest.json"

	// LalDir is the hidden project directory holding the canonical manifest.
	LalDir = ".lal"
)

// ComponentConfiguration describes the build configurations a component supports.
type ComponentConfiguration struct {
	// DefaultConfig is used when no configuration is requested explicitly.
	// It must be listed in Configurations.
	DefaultConfig string `json:"defaultConfig"`

	// Configurations is the set of allowed configuration names.
	Configurations []string `json:"configurations"`
}

// DefaultComponentConfiguration returns the settings given to a freshly initialised component.
func DefaultComponentConfiguration() ComponentConfiguration {
	return ComponentConfiguration{
		DefaultConfig:  DefaultConfiguration,
		Configurations: []string{DefaultConfiguration},
	}
}

// Supports reports whether the configuration name is declared for the component.
func (c ComponentConfiguration) Supports(name string) bool {
	return slices.Contains(c.Configurations, name)
}

// Manifest is the in-memory form of a project's manifest.json.
type Manifest struct {
	// Name is the primary component of the project.
	Name string `json:"name"`

	// Environment is the default container environment to build in.
	Environment string `json:"environment,omitempty"`

	// Components maps buildable component names to their configurations.
	Components map[string]ComponentConfiguration `json:"components"`

	// Dependencies are always needed to build.
	Dependencies map[string]uint32 `json:"dependencies"`

	// DevDependencies are only needed for development and testing.
	DevDependencies map[string]uint32 `json:"devDependencies"`

	// Location is the path the manifest was read from or will be written to.
	// It is never serialized.
	Location string `json:"-"`
}

// NewManifest creates a manifest with a single component named after the project.
func NewManifest(name, environment, location string) *Manifest {
	return &Manifest{
		Name:        name,
		Environment: environment,
		Components: map[string]ComponentConfiguration{
			name: DefaultComponentConfiguration(),
		},
		Dependencies:    make(map[string]uint32),
		DevDependencies: make(map[string]uint32),
		Location:        location,
	}
}

// AllDependencies merges dependencies and devDependencies into one view.
// Dev entries win on collision. The manifest itself is left untouched.
func (m *Manifest) AllDependencies() map[string]uint32 {
	deps := make(map[string]uint32, len(m.Dependencies)+len(m.DevDependencies))
	maps.Copy(deps, m.Dependencies)
	maps.Copy(deps, m.DevDependencies)
	return deps
}

// DependencyNames returns the sorted dependency names, optionally including dev dependencies.
func (m *Manifest) DependencyNames(core bool) []string {
	deps := m.Dependencies
	if !core {
		deps = m.AllDependencies()
	}
	return slices.Sorted(maps.Keys(deps))
}

// Validate checks the structural invariants of a loaded manifest.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return zerr.Wrap(ErrInvalidManifest, "manifest has no name")
	}
	for _, name := range slices.Sorted(maps.Keys(m.Components)) {
		c := m.Components[name]
		if !c.Supports(c.DefaultConfig) {
			err := zerr.Wrap(ErrInvalidManifest, "default configuration is not listed in configurations")
			err = zerr.With(err, "component", name)
			return zerr.With(err, "default_config", c.DefaultConfig)
		}
	}
	return nil
}

// ManifestLocation identifies which of the supported manifest paths is in use.
type ManifestLocation int

const (
	// LocationLalSubfolder is .lal/manifest.json, the canonical location.
	LocationLalSubfolder ManifestLocation = iota
	// LocationRepoRoot is manifest.json at the repository root, read for backward compatibility.
	LocationRepoRoot
)

// DefaultManifestLocation is where new manifests are written.
const DefaultManifestLocation = LocationLalSubfolder

// Path returns the manifest path for this location under root.
func (l ManifestLocation) Path(root string) string {
	if l == LocationRepoRoot {
		return filepath.Join(root, ManifestFile)
	}
	return filepath.Join(root, LalDir, ManifestFile)
}

// String returns the location's path relative to the project root.
func (l ManifestLocation) String() string {
	if l == LocationRepoRoot {
		return ManifestFile
	}
	return LalDir + "/" + ManifestFile
}
