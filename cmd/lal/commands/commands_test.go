package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lal/cmd/lal/commands"
	"go.trai.ch/lal/internal/adapters/manifest"
	"go.trai.ch/lal/internal/adapters/telemetry"
	"go.trai.ch/lal/internal/app"
	"go.trai.ch/lal/internal/build"
	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports/mocks"
	"go.trai.ch/lal/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

type harness struct {
	loader    *mocks.MockConfigLoader
	workspace *mocks.MockWorkspace
	verifier  *mocks.MockVerifier
	sandbox   *mocks.MockSandbox
	root      string
	out       bytes.Buffer
	cli       *commands.CLI
}

func newHarness(t *testing.T, manifestJSON string) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		loader:    mocks.NewMockConfigLoader(ctrl),
		workspace: mocks.NewMockWorkspace(ctrl),
		verifier:  mocks.NewMockVerifier(ctrl),
		sandbox:   mocks.NewMockSandbox(ctrl),
		root:      t.TempDir(),
	}
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	if manifestJSON != "" {
		require.NoError(t, os.MkdirAll(filepath.Join(h.root, ".lal"), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(h.root, ".lal", "manifest.json"), []byte(manifestJSON), 0o600))
	}

	pipe := pipeline.New(
		h.workspace, h.verifier, h.sandbox,
		mocks.NewMockPackager(ctrl), mocks.NewMockArtifactStore(ctrl),
		telemetry.NoOp{}, log,
	)
	a := app.New(h.loader, manifest.NewStore(log), pipe, telemetry.NoOp{}, log).WithRoot(h.root)
	h.cli = commands.New(a)
	h.cli.SetOutput(&h.out)
	return h
}

const widgetManifest = `{
  "name": "widget",
  "components": {
    "widget": {"defaultConfig": "release", "configurations": ["release", "debug"]}
  },
  "dependencies": {"zlib": 3, "openssl": 12},
  "devDependencies": {"gtest": 1}
}`

func TestVersion(t *testing.T) {
	h := newHarness(t, "")
	h.cli.SetArgs([]string{"version"})

	require.NoError(t, h.cli.Execute(context.Background()))
	assert.Equal(t, build.Version+"\n", h.out.String())
}

func TestListDependencies(t *testing.T) {
	h := newHarness(t, widgetManifest)
	h.cli.SetArgs([]string{"list-dependencies"})

	require.NoError(t, h.cli.Execute(context.Background()))
	assert.Equal(t, "gtest\nopenssl\nzlib\n", h.out.String())
}

func TestListDependencies_Core(t *testing.T) {
	h := newHarness(t, widgetManifest)
	h.cli.SetArgs([]string{"list-dependencies", "--core"})

	require.NoError(t, h.cli.Execute(context.Background()))
	assert.Equal(t, "openssl\nzlib\n", h.out.String())
}

func TestListDependencies_NoManifest(t *testing.T) {
	h := newHarness(t, "")
	h.cli.SetArgs([]string{"list-dependencies"})

	require.ErrorIs(t, h.cli.Execute(context.Background()), domain.ErrMissingManifest)
}

func TestBuild_Flags(t *testing.T) {
	h := newHarness(t, widgetManifest)

	h.loader.EXPECT().Load("custom.yaml").Return(domain.DefaultConfig(), nil)
	h.workspace.EXPECT().EnsureFresh(h.root, domain.OutputDir).Return(filepath.Join(h.root, "OUTPUT"), nil)
	h.verifier.EXPECT().Verify(gomock.Any(), h.root, gomock.Any()).Return(nil)
	h.sandbox.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.SandboxRequest) error {
		assert.Equal(t, []string{"./BUILD", "widget", "debug"}, req.Command)
		assert.Equal(t, "default", req.Environment)
		return nil
	})

	h.cli.SetArgs([]string{"-c", "custom.yaml", "build", "widget", "-g", "debug", "--with-version", "3", "-e", "default"})
	require.NoError(t, h.cli.Execute(context.Background()))
	assert.Equal(t, "Built widget (debug)\n", h.out.String())
}

func TestBuild_InvalidConfiguration(t *testing.T) {
	h := newHarness(t, widgetManifest)

	h.loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)

	h.cli.SetArgs([]string{"build", "--config-name", "coverage"})
	require.ErrorIs(t, h.cli.Execute(context.Background()), domain.ErrInvalidBuildConfiguration)
}

func TestBuild_TooManyArgs(t *testing.T) {
	h := newHarness(t, widgetManifest)

	h.cli.SetArgs([]string{"build", "a", "b"})
	require.Error(t, h.cli.Execute(context.Background()))
}

func TestInit(t *testing.T) {
	h := newHarness(t, "")
	cfg := domain.DefaultConfig()
	cfg.Environments["xenial"] = domain.Container{Name: "xenial"}
	h.loader.EXPECT().Load("").Return(cfg, nil)

	h.cli.SetArgs([]string{"init", "xenial"})
	require.NoError(t, h.cli.Execute(context.Background()))

	data, err := os.ReadFile(filepath.Join(h.root, ".lal", "manifest.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"environment": "xenial"`)
}

func TestInit_ExistingWithoutForce(t *testing.T) {
	h := newHarness(t, widgetManifest)
	h.loader.EXPECT().Load("").Return(domain.DefaultConfig(), nil)

	h.cli.SetArgs([]string{"init"})
	require.ErrorIs(t, h.cli.Execute(context.Background()), domain.ErrManifestExists)
}

func TestConfigure(t *testing.T) {
	h := newHarness(t, "")
	h.loader.EXPECT().Save("out.yaml", domain.DefaultConfig(), true).Return("/tmp/out.yaml", nil)

	h.cli.SetArgs([]string{"--config", "out.yaml", "configure", "--force"})
	require.NoError(t, h.cli.Execute(context.Background()))
	assert.Equal(t, "Wrote config to /tmp/out.yaml\n", h.out.String())
}

func TestVerboseHook(t *testing.T) {
	h := newHarness(t, "")
	var got bool
	h.cli.SetVerboseHook(func(v bool) { got = v })

	h.cli.SetArgs([]string{"-v", "version"})
	require.NoError(t, h.cli.Execute(context.Background()))
	assert.True(t, got)
}

func TestHelp_AllCommands(t *testing.T) {
	for _, args := range [][]string{
		{"--help"},
		{"build", "--help"},
		{"init", "--help"},
		{"list-dependencies", "--help"},
		{"configure", "--help"},
		{"version", "--help"},
	} {
		t.Run(args[0], func(t *testing.T) {
			h := newHarness(t, "")
			h.cli.SetArgs(args)

			require.NotPanics(t, func() {
				require.NoError(t, h.cli.Execute(context.Background()))
			})
			assert.Contains(t, h.out.String(), "--verbose")
		})
	}
}

func TestVerboseHook_Subcommand(t *testing.T) {
	h := newHarness(t, widgetManifest)
	var got bool
	h.cli.SetVerboseHook(func(v bool) { got = v })

	h.cli.SetArgs([]string{"list-dependencies", "-v"})
	require.NoError(t, h.cli.Execute(context.Background()))
	assert.True(t, got)
	assert.Contains(t, h.out.String(), "zlib")
}
