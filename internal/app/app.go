// Package app implements the application layer for lal.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/lal/internal/build"
	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports"
	"go.trai.ch/lal/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	manifests    ports.ManifestStore
	pipeline     *pipeline.Pipeline
	telemetry    ports.Telemetry
	logger       ports.Logger
	root         string
}

// New creates a new App instance rooted at the current directory.
func New(
	loader ports.ConfigLoader,
	manifests ports.ManifestStore,
	pipe *pipeline.Pipeline,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		manifests:    manifests,
		pipeline:     pipe,
		telemetry:    telemetry,
		logger:       logger,
		root:         ".",
	}
}

// WithRoot sets the project checkout the app operates on.
func (a *App) WithRoot(root string) *App {
	a.root = root
	return a
}

// BuildOptions configure the build command.
type BuildOptions struct {
	ConfigPath    string
	Component     string
	Configuration string
	Version       string
	Release       bool
	Environment   string
}

// Build loads the config and manifest, then runs the build pipeline.
func (a *App) Build(ctx context.Context, opts BuildOptions) (*pipeline.Result, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	m, err := a.manifests.Read(a.root)
	if err != nil {
		return nil, err
	}

	env := cfg.ResolveEnvironment(opts.Environment, m)
	container, err := cfg.GetContainer(env)
	if err != nil {
		return nil, err
	}

	return a.pipeline.Build(ctx, m, pipeline.BuildOptions{
		Root:          a.root,
		Component:     opts.Component,
		Configuration: opts.Configuration,
		Version:       opts.Version,
		Release:       opts.Release,
		Environment:   env,
		Container:     container,
		Runtime:       cfg.Runtime,
		Mounts:        cfg.Mounts,
		Env:           cfg.Env,
		Tool:          build.Version,
	})
}

// InitOptions configure the init command.
type InitOptions struct {
	ConfigPath  string
	Environment string
	Force       bool
}

// Init writes a fresh manifest into .lal/manifest.json, named after the root directory.
func (a *App) Init(opts InitOptions) (*domain.Manifest, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	env := cfg.ResolveEnvironment(opts.Environment, nil)
	if _, err := cfg.GetContainer(env); err != nil {
		return nil, err
	}

	loc, err := a.manifests.Identify(a.root)
	existing := err == nil
	switch {
	case err != nil && !errors.Is(err, domain.ErrMissingManifest):
		return nil, err
	case existing && !opts.Force:
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestExists, "use --force to overwrite"), "path", loc.Path(a.root))
	}

	root, err := filepath.Abs(a.root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve project root"), "root", a.root)
	}
	dir := filepath.Join(root, domain.LalDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create manifest directory"), "path", dir)
	}

	m := domain.NewManifest(filepath.Base(root), env, domain.DefaultManifestLocation.Path(root))
	if err := a.manifests.Write(m); err != nil {
		return nil, err
	}

	if existing && loc == domain.LocationRepoRoot {
		a.logger.Warn("Old manifest.json in the repository root is no longer read, remove it")
	}
	return m, nil
}

// ListDependencies returns the sorted dependency names of the manifest.
// With core set, devDependencies are left out.
func (a *App) ListDependencies(core bool) ([]string, error) {
	m, err := a.manifests.Read(a.root)
	if err != nil {
		return nil, err
	}
	return m.DependencyNames(core), nil
}

// Configure writes the default configuration to path.
func (a *App) Configure(path string, force bool) (string, error) {
	return a.configLoader.Save(path, domain.DefaultConfig(), force)
}

// Close flushes telemetry.
func (a *App) Close() error {
	return a.telemetry.Close()
}
