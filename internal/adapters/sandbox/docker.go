// Package sandbox runs build commands inside containers through a docker-compatible CLI.
package sandbox

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports"
	"go.trai.ch/zerr"
)

// WorkDir is where the request root is mounted inside the container.
const WorkDir = "/home/lal/volume"

var _ ports.Sandbox = (*Docker)(nil)

// Docker implements ports.Sandbox by shelling out to a container runtime binary.
type Docker struct {
	logger ports.Logger
}

// NewDocker creates a new Docker sandbox.
func NewDocker(logger ports.Logger) *Docker {
	return &Docker{logger: logger}
}

// Run starts a throwaway container for req and waits for its command to exit.
// Output lines are forwarded to the logger and, when ctx carries a vertex, to the vertex.
func (d *Docker) Run(ctx context.Context, req domain.SandboxRequest) error {
	runtime := req.Runtime
	if runtime == "" {
		runtime = domain.DefaultRuntime
	}
	args := Args(req, "lal-"+uuid.NewString())
	d.logger.Debug(runtime + " " + strings.Join(args, " "))

	stdout := &logWriter{emit: d.logger.Info}
	stderr := &logWriter{emit: d.logger.Warn}
	defer stdout.Flush()
	defer stderr.Flush()

	//nolint:gosec // runtime and arguments come from the user's config and manifest
	cmd := exec.CommandContext(ctx, runtime, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if v, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = io.MultiWriter(stdout, v.Stdout())
		cmd.Stderr = io.MultiWriter(stderr, v.Stderr())
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			wrapped := zerr.With(zerr.Wrap(domain.ErrBuildScriptFailed, "container command exited non-zero"), "exit_code", exitErr.ExitCode())
			return zerr.With(wrapped, "image", req.Container.Image())
		}
		return zerr.With(zerr.Wrap(err, "failed to start container runtime"), "runtime", runtime)
	}
	return nil
}

// Args returns the runtime arguments for req using the given container name.
func Args(req domain.SandboxRequest, name string) []string {
	args := []string{
		"run", "--rm",
		"--name", name,
		"-v", req.Root + ":" + WorkDir,
		"-w", WorkDir,
	}
	for _, m := range req.Mounts {
		spec := m.Src + ":" + m.Dest
		if m.ReadOnly {
			spec += ":ro"
		}
		args = append(args, "-v", spec)
	}
	for _, kv := range req.Env {
		args = append(args, "-e", kv)
	}
	if req.Interactive {
		args = append(args, "-it")
	}
	args = append(args, req.Container.Image())
	return append(args, req.Command...)
}
