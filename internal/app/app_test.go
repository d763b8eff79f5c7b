package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lal/internal/adapters/manifest"
	"go.trai.ch/lal/internal/adapters/telemetry"
	"go.trai.ch/lal/internal/app"
	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports/mocks"
	"go.trai.ch/lal/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader    *mocks.MockConfigLoader
	manifests *mocks.MockManifestStore
	workspace *mocks.MockWorkspace
	verifier  *mocks.MockVerifier
	sandbox   *mocks.MockSandbox
	logger    *mocks.MockLogger
	root      string
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		manifests: mocks.NewMockManifestStore(ctrl),
		workspace: mocks.NewMockWorkspace(ctrl),
		verifier:  mocks.NewMockVerifier(ctrl),
		sandbox:   mocks.NewMockSandbox(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		root:      t.TempDir(),
	}
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	pipe := pipeline.New(
		f.workspace, f.verifier, f.sandbox,
		mocks.NewMockPackager(ctrl), mocks.NewMockArtifactStore(ctrl),
		telemetry.NoOp{}, f.logger,
	)
	f.app = app.New(f.loader, f.manifests, pipe, telemetry.NoOp{}, f.logger).WithRoot(f.root)
	return f
}

func testConfig() *domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Runtime = "podman"
	cfg.Environments["xenial"] = domain.Container{Name: "builder/xenial", Tag: "7"}
	cfg.Env = []string{"CI=1"}
	return cfg
}

func TestApp_Build(t *testing.T) {
	f := newFixture(t)
	m := domain.NewManifest("app", "xenial", "")

	f.loader.EXPECT().Load("cfg.yaml").Return(testConfig(), nil)
	f.manifests.EXPECT().Read(f.root).Return(m, nil)
	f.workspace.EXPECT().EnsureFresh(f.root, domain.OutputDir).Return(filepath.Join(f.root, "OUTPUT"), nil)
	f.verifier.EXPECT().Verify(gomock.Any(), f.root, m).Return(nil)
	f.sandbox.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.SandboxRequest) error {
		assert.Equal(t, "podman", req.Runtime)
		assert.Equal(t, "xenial", req.Environment)
		assert.Equal(t, "builder/xenial:7", req.Container.Image())
		assert.Equal(t, []string{"CI=1"}, req.Env)
		return nil
	})

	res, err := f.app.Build(context.Background(), app.BuildOptions{ConfigPath: "cfg.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "xenial", res.Lock.Environment)
	assert.NotEmpty(t, res.Lock.Tool)
}

func TestApp_Build_EnvironmentFlagWins(t *testing.T) {
	f := newFixture(t)
	m := domain.NewManifest("app", "xenial", "")

	f.loader.EXPECT().Load("").Return(testConfig(), nil)
	f.manifests.EXPECT().Read(f.root).Return(m, nil)
	f.workspace.EXPECT().EnsureFresh(gomock.Any(), gomock.Any()).Return(filepath.Join(f.root, "OUTPUT"), nil)
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.sandbox.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req domain.SandboxRequest) error {
		assert.Equal(t, "ubuntu:24.04", req.Container.Image())
		return nil
	})

	_, err := f.app.Build(context.Background(), app.BuildOptions{Environment: "default"})
	require.NoError(t, err)
}

func TestApp_Build_UnknownEnvironment(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load("").Return(testConfig(), nil)
	f.manifests.EXPECT().Read(f.root).Return(domain.NewManifest("app", "", ""), nil)

	_, err := f.app.Build(context.Background(), app.BuildOptions{Environment: "centos"})
	require.ErrorIs(t, err, domain.ErrUnknownEnvironment)
}

func TestApp_Build_ConfigLoaderError(t *testing.T) {
	f := newFixture(t)
	loadErr := errors.New("config load error")

	f.loader.EXPECT().Load("").Return(nil, loadErr)

	_, err := f.app.Build(context.Background(), app.BuildOptions{})
	require.ErrorIs(t, err, loadErr)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Build_MissingManifest(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load("").Return(testConfig(), nil)
	f.manifests.EXPECT().Read(f.root).Return(nil, domain.ErrMissingManifest)

	_, err := f.app.Build(context.Background(), app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrMissingManifest)
}

func TestApp_ListDependencies(t *testing.T) {
	f := newFixture(t)
	m := domain.NewManifest("app", "", "")
	m.Dependencies = map[string]uint32{"zlib": 3, "openssl": 12}
	m.DevDependencies = map[string]uint32{"gtest": 1}

	f.manifests.EXPECT().Read(f.root).Return(m, nil).Times(2)

	all, err := f.app.ListDependencies(false)
	require.NoError(t, err)
	assert.Equal(t, []string{"gtest", "openssl", "zlib"}, all)

	core, err := f.app.ListDependencies(true)
	require.NoError(t, err)
	assert.Equal(t, []string{"openssl", "zlib"}, core)
}

func TestApp_Configure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Save("cfg.yaml", domain.DefaultConfig(), true).Return("/abs/cfg.yaml", nil)

	path, err := f.app.Configure("cfg.yaml", true)
	require.NoError(t, err)
	assert.Equal(t, "/abs/cfg.yaml", path)
}

func newInitApp(t *testing.T) (*app.App, *mocks.MockConfigLoader, *mocks.MockLogger, string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	root := filepath.Join(t.TempDir(), "widget")
	require.NoError(t, os.Mkdir(root, 0o750))

	a := app.New(loader, manifest.NewStore(log), nil, telemetry.NoOp{}, log).WithRoot(root)
	return a, loader, log, root
}

func TestApp_Init(t *testing.T) {
	a, loader, log, root := newInitApp(t)
	loader.EXPECT().Load("").Return(testConfig(), nil)

	m, err := a.Init(app.InitOptions{Environment: "xenial"})
	require.NoError(t, err)
	assert.Equal(t, "widget", m.Name)
	assert.Equal(t, "xenial", m.Environment)

	got, err := manifest.NewStore(log).Read(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".lal", "manifest.json"), got.Location)
	assert.Equal(t, map[string]domain.ComponentConfiguration{
		"widget": domain.DefaultComponentConfiguration(),
	}, got.Components)
}

func TestApp_Init_DefaultEnvironment(t *testing.T) {
	a, loader, _, _ := newInitApp(t)
	loader.EXPECT().Load("").Return(testConfig(), nil)

	m, err := a.Init(app.InitOptions{})
	require.NoError(t, err)
	assert.Equal(t, "default", m.Environment)
}

func TestApp_Init_UnknownEnvironment(t *testing.T) {
	a, loader, _, root := newInitApp(t)
	loader.EXPECT().Load("").Return(testConfig(), nil)

	_, err := a.Init(app.InitOptions{Environment: "centos"})
	require.ErrorIs(t, err, domain.ErrUnknownEnvironment)

	_, statErr := os.Stat(filepath.Join(root, ".lal"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApp_Init_RefusesOverwrite(t *testing.T) {
	a, loader, _, root := newInitApp(t)
	loader.EXPECT().Load("").Return(testConfig(), nil).Times(3)

	_, err := a.Init(app.InitOptions{})
	require.NoError(t, err)

	_, err = a.Init(app.InitOptions{Environment: "xenial"})
	require.ErrorIs(t, err, domain.ErrManifestExists)

	m, err := a.Init(app.InitOptions{Environment: "xenial", Force: true})
	require.NoError(t, err)
	assert.Equal(t, "xenial", m.Environment)
	assert.Equal(t, filepath.Join(root, ".lal", "manifest.json"), m.Location)
}

func TestApp_Init_WarnsAboutLegacyManifest(t *testing.T) {
	a, loader, log, root := newInitApp(t)
	loader.EXPECT().Load("").Return(testConfig(), nil)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	legacy := `{"name": "widget", "components": {"widget": {"defaultConfig": "release", "configurations": ["release"]}}}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "manifest.json"), []byte(legacy), 0o600))

	_, err := a.Init(app.InitOptions{Force: true})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, ".lal", "manifest.json"))
	require.NoError(t, err)
}

func TestApp_Init_WritesThroughStore(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("").Return(testConfig(), nil)
	f.manifests.EXPECT().Identify(f.root).Return(domain.LocationLalSubfolder, domain.ErrMissingManifest)
	f.manifests.EXPECT().Write(gomock.Any()).DoAndReturn(func(m *domain.Manifest) error {
		assert.Equal(t, filepath.Base(f.root), m.Name)
		assert.Equal(t, "xenial", m.Environment)
		assert.Equal(t, filepath.Join(f.root, ".lal", "manifest.json"), m.Location)
		return nil
	})

	m, err := f.app.Init(app.InitOptions{Environment: "xenial"})
	require.NoError(t, err)
	assert.NotNil(t, m.Dependencies)
}
