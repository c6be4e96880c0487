// Package config resolves settings with priority flags > env > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	KeyDataDir  = "data_dir"
	KeyBackend  = "backend"
	KeyLogLevel = "log_level"
	KeyLogFile  = "log_file"

	EnvPrefix = "CORKBOARD"
	fileName  = "config"
)

// Config holds the resolved application configuration.
type Config struct {
	DataDir  string
	Backend  string
	LogLevel string
	LogFile  string

	// File is the config file that was read, empty when none was found.
	File string
}

// Settings is the on-disk layout of config.yaml.
type Settings struct {
	DataDir  string `yaml:"data_dir"`
	Backend  string `yaml:"backend"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file,omitempty"`
}

type Options struct {
	// Dir is searched for config.yaml. Empty means DefaultDir.
	Dir string
	// Overrides come from command line flags. Empty values are skipped.
	Overrides map[string]string
}

// DefaultDir returns ~/.config/corkboard, or $CORKBOARD_CONFIG_PATH when set.
func DefaultDir() (string, error) {
	if override := os.Getenv(EnvPrefix + "_CONFIG_PATH"); override != "" {
		return homedir.Expand(override)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "corkboard"), nil
}

func Defaults() (Settings, error) {
	dir, err := DefaultDir()
	if err != nil {
		return Settings{}, err
	}
	return Settings{DataDir: dir, Backend: "sqlite", LogLevel: "info"}, nil
}

func Load(opts Options) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	def, err := Defaults()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(KeyDataDir, def.DataDir)
	v.SetDefault(KeyBackend, def.Backend)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetConfigName(fileName)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for k, val := range opts.Overrides {
		if val != "" {
			v.Set(k, val)
		}
	}

	cfg := &Config{
		Backend:  v.GetString(KeyBackend),
		LogLevel: v.GetString(KeyLogLevel),
		File:     v.ConfigFileUsed(),
	}
	if cfg.DataDir, err = homedir.Expand(v.GetString(KeyDataDir)); err != nil {
		return nil, fmt.Errorf("expand %s: %w", KeyDataDir, err)
	}
	if lf := v.GetString(KeyLogFile); lf != "" {
		if cfg.LogFile, err = homedir.Expand(lf); err != nil {
			return nil, fmt.Errorf("expand %s: %w", KeyLogFile, err)
		}
	}

	switch cfg.Backend {
	case "sqlite", "diskv":
	default:
		return nil, fmt.Errorf("unknown backend %q (want sqlite or diskv)", cfg.Backend)
	}
	return cfg, nil
}

// LogPath is where the interactive session writes its log.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "debug.log")
}

// EnsureFile writes config.yaml with the defaults into dir unless a file is
// already there. It reports the path and whether it was created.
func EnsureFile(dir string) (string, bool, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return "", false, err
		}
	}
	path := filepath.Join(dir, fileName+".yaml")
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("create config dir: %w", err)
	}
	def, err := Defaults()
	if err != nil {
		return "", false, err
	}
	data, err := yaml.Marshal(def)
	if err != nil {
		return "", false, fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", false, fmt.Errorf("write config: %w", err)
	}
	return path, true, nil
}

// Encode renders c in the config file layout.
func (c *Config) Encode() ([]byte, error) {
	return yaml.Marshal(Settings{
		DataDir:  c.DataDir,
		Backend:  c.Backend,
		LogLevel: c.LogLevel,
		LogFile:  c.LogFile,
	})
}
