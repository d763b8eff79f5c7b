package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingManifest is returned when neither .lal/manifest.json nor manifest.json exists.
	ErrMissingManifest = zerr.New("no manifest found")

	// ErrManifestExists is returned by init when a manifest is already present and force is not set.
	ErrManifestExists = zerr.New("manifest already exists")

	// ErrManifestParse is returned when a manifest file cannot be decoded.
	ErrManifestParse = zerr.New("failed to parse manifest")

	// ErrInvalidManifest is returned when a decoded manifest violates its invariants.
	ErrInvalidManifest = zerr.New("invalid manifest")

	// ErrMissingManifestLocation is returned when writing a manifest that has no location.
	ErrMissingManifestLocation = zerr.New("manifest has no location")

	// ErrMissingComponent is returned when the requested component is not declared in the manifest.
	ErrMissingComponent = zerr.New("missing component")

	// ErrInvalidBuildConfiguration is returned when the requested configuration is not declared for the component.
	ErrInvalidBuildConfiguration = zerr.New("invalid build configuration")

	// ErrMissingBuild is returned when the build script produced no files in OUTPUT.
	ErrMissingBuild = zerr.New("no build output found in OUTPUT")

	// ErrBuildScriptFailed is returned when the sandboxed build script exits non-zero.
	ErrBuildScriptFailed = zerr.New("build script failed")

	// ErrMissingDependencies is returned when a pinned dependency is absent from INPUT.
	ErrMissingDependencies = zerr.New("dependencies missing from INPUT")

	// ErrDependencyMismatch is returned when a dependency in INPUT has a different version than pinned.
	ErrDependencyMismatch = zerr.New("dependency version mismatch in INPUT")

	// ErrUnknownEnvironment is returned when an environment is not defined in the configuration.
	ErrUnknownEnvironment = zerr.New("unknown environment")

	// ErrConfigExists is returned when writing a config file that already exists without force.
	ErrConfigExists = zerr.New("config file already exists")
)
