// Package pipeline implements the ordered build sequence for a single component.
package pipeline

import (
	"context"
	"path/filepath"

	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports"
	"go.trai.ch/zerr"
)

// BuildOptions holds the parameters of a single build.
type BuildOptions struct {
	// Root is the project checkout. Empty means the current directory.
	Root string

	// Component defaults to the manifest name.
	Component string

	// Configuration defaults to the component's default configuration.
	Configuration string

	// Version marks a strict build. When set, verification failures abort the build.
	Version string

	// Release packages OUTPUT and writes the lockfile into ARTIFACT.
	Release bool

	// Environment is the name of the container environment, recorded in the lockfile.
	Environment string

	// Container is the image the build script runs in.
	Container domain.Container

	// Runtime is the container runtime binary.
	Runtime string

	// Mounts and Env are passed through to the sandbox.
	Mounts []domain.Mount
	Env    []string

	// Tool is the lal version recorded in the lockfile.
	Tool string
}

// Result describes a finished build.
type Result struct {
	Selection domain.Selection
	Lock      *domain.Lock

	// Archive is nil unless the build was a release build.
	Archive *domain.Archive
}

// Pipeline runs builds: select, prepare OUTPUT, verify, build, then optionally package and publish.
type Pipeline struct {
	workspace ports.Workspace
	verifier  ports.Verifier
	sandbox   ports.Sandbox
	packager  ports.Packager
	store     ports.ArtifactStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Pipeline.
func New(
	workspace ports.Workspace,
	verifier ports.Verifier,
	sandbox ports.Sandbox,
	packager ports.Packager,
	store ports.ArtifactStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		workspace: workspace,
		verifier:  verifier,
		sandbox:   sandbox,
		packager:  packager,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Build runs every stage in order and stops at the first failure.
func (p *Pipeline) Build(ctx context.Context, m *domain.Manifest, opts BuildOptions) (*Result, error) {
	root, err := filepath.Abs(orDefault(opts.Root, "."))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve project root"), "root", opts.Root)
	}

	var sel domain.Selection
	err = p.stage(ctx, domain.StageSelect, func(context.Context, ports.Vertex) error {
		sel, err = m.SelectConfiguration(opts.Component, opts.Configuration)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, domain.StageOutput, func(context.Context, ports.Vertex) error {
		_, err := p.workspace.EnsureFresh(root, domain.OutputDir)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, domain.StageVerify, func(ctx context.Context, v ports.Vertex) error {
		err := p.verifier.Verify(ctx, root, m)
		if err == nil || opts.Version != "" {
			return err
		}
		p.logger.Warn("Dependency verification failed, continuing with a local build: " + err.Error())
		v.Log(domain.LogLevelWarn, err.Error())
		return nil
	})
	if err != nil {
		return nil, err
	}

	lock := domain.NewLock(m.Name, opts.Version, sel.Configuration).
		PopulateFromInput(m).
		WithEnvironment(opts.Environment).
		WithTool(opts.Tool)

	p.logger.Info("Building " + sel.Component + " (" + sel.Configuration + ") in " + opts.Container.Image())
	err = p.stage(ctx, domain.StageBuild, func(ctx context.Context, _ ports.Vertex) error {
		return p.sandbox.Run(ctx, domain.SandboxRequest{
			Runtime:     opts.Runtime,
			Root:        root,
			Environment: opts.Environment,
			Container:   opts.Container,
			Mounts:      opts.Mounts,
			Env:         opts.Env,
			Command:     domain.BuildCommand(sel),
		})
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Selection: sel, Lock: lock}
	if !opts.Release {
		return res, nil
	}

	res.Archive, err = p.release(ctx, root, sel, lock)
	if err != nil {
		return nil, err
	}
	p.logger.Info("Packaged " + res.Archive.Path)
	return res, nil
}

func (p *Pipeline) release(ctx context.Context, root string, sel domain.Selection, lock *domain.Lock) (*domain.Archive, error) {
	var artifactDir string
	err := p.stage(ctx, domain.StageArtifact, func(context.Context, ports.Vertex) error {
		var err error
		artifactDir, err = p.workspace.EnsureFresh(root, domain.ArtifactDir)
		return err
	})
	if err != nil {
		return nil, err
	}

	var archive *domain.Archive
	err = p.stage(ctx, domain.StagePackage, func(ctx context.Context, _ ports.Vertex) error {
		var err error
		tarball := filepath.Join(root, sel.Component+domain.TarballExt)
		archive, err = p.packager.Package(ctx, filepath.Join(root, domain.OutputDir), tarball)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, domain.StagePublish, func(context.Context, ports.Vertex) error {
		published, err := p.store.Publish(artifactDir, archive.Path, sel.Component)
		if err != nil {
			return err
		}
		archive.Path = published
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, domain.StageLockfile, func(context.Context, ports.Vertex) error {
		return p.store.WriteLock(artifactDir, lock)
	})
	if err != nil {
		return nil, err
	}
	return archive, nil
}

// stage records fn as a telemetry vertex and completes it with fn's result.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context, ports.Vertex) error) error {
	ctx, v := p.telemetry.Record(ctx, name)
	err := fn(ctx, v)
	v.Complete(err)
	return err
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
