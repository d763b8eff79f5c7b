// Package config provides the tool configuration loader for lal.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/lal/internal/core/domain"
	"go.trai.ch/lal/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// envPrefix is the prefix of environment variables overriding config values.
	envPrefix = "LAL"

	// EnvConfigFile names the environment variable selecting the config file.
	EnvConfigFile = "LAL_CONFIG"

	// DefaultFilename is the config file name inside the user's .lal directory.
	DefaultFilename = "config.yaml"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader on top of viper.
// Environment variables take precedence over file values.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration at path, falling back to defaults when the file does not exist.
func (l *Loader) Load(path string) (*domain.Config, error) {
	path, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
		}
		l.logger.Debug("no config file at " + path + ", using defaults")
	}

	var cfg domain.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	return cfg.WithDefaults(), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("runtime", "LAL_RUNTIME")
	_ = v.BindEnv("defaultEnvironment", "LAL_ENVIRONMENT")
	return v
}

// ResolvePath returns path if set, then $LAL_CONFIG, then ~/.lal/config.yaml.
func ResolvePath(path string) (string, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		return DefaultPath()
	}
	return ExpandPath(path)
}

// DefaultPath returns ~/.lal/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate home directory")
	}
	return filepath.Join(home, domain.LalDir, DefaultFilename), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Save writes cfg to the resolved path. An existing file is kept unless force is set.
func (l *Loader) Save(path string, cfg *domain.Config, force bool) (string, error) {
	path, err := ResolvePath(path)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return path, zerr.With(zerr.Wrap(domain.ErrConfigExists, "refusing to overwrite config"), "path", path)
	}

	if err := Write(path, cfg); err != nil {
		return "", err
	}
	l.logger.Info("Wrote config to " + path)
	return path, nil
}

// Write serializes cfg as YAML to path, creating parent directories.
func Write(path string, cfg *domain.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create config directory"), "path", path)
	}

	//nolint:gosec // Path is provided by the user
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write config file"), "path", path)
	}
	return nil
}
