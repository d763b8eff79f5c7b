package domain

const (
	// OutputDir is the scratch directory the build script writes its products to.
	OutputDir = "OUTPUT"

	// ArtifactDir is the scratch directory holding the packaged tarball and lockfile.
	ArtifactDir = "ARTIFACT"

	// InputDir holds the fetched dependencies the build consumes.
	InputDir = "INPUT"

	// BuildScript is the component-local executable invoked inside the container.
	BuildScript = "./BUILD"

	// TarballExt is the extension of packaged artifacts.
	TarballExt = ".tar.gz"
)

// Container identifies the image a build runs in.
type Container struct {
	Name string `mapstructure:"name" yaml:"name"`
	Tag  string `mapstructure:"tag"  yaml:"tag"`
}

// Image returns the image reference in name:tag form.
func (c Container) Image() string {
	if c.Tag == "" {
		return c.Name + ":latest"
	}
	return c.Name + ":" + c.Tag
}

// SandboxRequest describes a single synchronous invocation inside a container.
type SandboxRequest struct {
	// Runtime is the container runtime binary. Empty selects DefaultRuntime.
	Runtime string

	// Root is the host directory bound into the container as the working directory.
	Root string

	// Environment is the name of the environment the container was selected from.
	Environment string

	// Container is the image to run.
	Container Container

	// Mounts are extra bind mounts.
	Mounts []Mount

	// Env holds KEY=VALUE pairs set inside the container.
	Env []string

	// Command is the argv executed inside the container.
	Command []string

	// Interactive attaches a terminal to the container.
	Interactive bool
}

// BuildCommand returns the argv used to invoke the build script for a selection.
func BuildCommand(sel Selection) []string {
	return []string{BuildScript, sel.Component, sel.Configuration}
}

// Archive describes a packaged tarball.
type Archive struct {
	// Path is where the tarball was written.
	Path string

	// Files lists the archive entries in the order they were appended.
	Files []string

	// Digest is a hex content digest over entry names and contents.
	Digest string
}
