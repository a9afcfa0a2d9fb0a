// Package config loads ~/.config/excusedex/config.yaml and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/excusedex/internal/constants"
)

// Environment variables read by Load.
const (
	EnvDatabase   = "EXCUSEDEX_DB"
	EnvConnection = "EXCUSEDEX_DB_CONNECTION"
	EnvDebug      = "EXCUSEDEX_DEBUG"
)

// Notifier modes.
const (
	NotifierModeTray   = "tray"
	NotifierModeStdout = "stdout"
)

type NotifierConfig struct {
	Mode string `yaml:"mode"`
}

type Config struct {
	// Database is a SQLite file path or a PostgreSQL URL without credentials.
	Database string         `yaml:"database"`
	Debug    bool           `yaml:"debug"`
	LogDir   string         `yaml:"log_dir,omitempty"`
	Notifier NotifierConfig `yaml:"notifier"`

	// ConnectionString comes only from the environment, never from the file.
	ConnectionString string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Database: constants.DefaultConfigPath,
		Notifier: NotifierConfig{Mode: NotifierModeTray},
	}
}

// DefaultPath returns the expanded location of the config file.
func DefaultPath() string {
	return ExpandHome(constants.DefaultConfigFile)
}

// Load reads the config file at path. A missing file yields the defaults.
// Environment overrides, including a .env file in the working directory,
// are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ExpandHome(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	_ = godotenv.Load()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvConnection); v != "" {
		c.ConnectionString = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

func (c *Config) Validate() error {
	switch c.Notifier.Mode {
	case "":
		c.Notifier.Mode = NotifierModeTray
	case NotifierModeTray, NotifierModeStdout:
	default:
		return fmt.Errorf("invalid notifier mode %q (expected %s or %s)", c.Notifier.Mode, NotifierModeTray, NotifierModeStdout)
	}
	if strings.TrimSpace(c.Database) == "" {
		c.Database = constants.DefaultConfigPath
	}
	return nil
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
