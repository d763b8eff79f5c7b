package domain

// LockfileName is the file name of the lockfile written next to a release artifact.
const LockfileName = "lockfile.json"

// Lock is a snapshot of what was built and against which dependency versions.
// It is built once per build and not modified afterwards.
type Lock struct {
	// Name is the root component name of the manifest.
	Name string `json:"name"`

	// Version is the explicit version of a release build. Empty for local builds.
	Version string `json:"version,omitempty"`

	// Config is the resolved configuration name.
	Config string `json:"config"`

	// Environment is the container environment the build ran in.
	Environment string `json:"environment,omitempty"`

	// Tool is the version of lal that produced the build.
	Tool string `json:"tool,omitempty"`

	// Dependencies maps dependency names to the versions they were pinned at.
	Dependencies map[string]uint32 `json:"dependencies"`
}

// NewLock creates a lock for the given build identity with an empty dependency snapshot.
func NewLock(name, version, configuration string) *Lock {
	return &Lock{
		Name:         name,
		Version:      version,
		Config:       configuration,
		Dependencies: make(map[string]uint32),
	}
}

// PopulateFromInput snapshots the manifest's merged dependency view into the lock.
func (l *Lock) PopulateFromInput(m *Manifest) *Lock {
	l.Dependencies = m.AllDependencies()
	return l
}

// WithEnvironment records the container environment name.
func (l *Lock) WithEnvironment(env string) *Lock {
	l.Environment = env
	return l
}

// WithTool records the tool version.
func (l *Lock) WithTool(version string) *Lock {
	l.Tool = version
	return l
}
