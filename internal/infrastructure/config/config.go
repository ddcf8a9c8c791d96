// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for tag configuration.
	DefaultConfigDir = ".tag"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultPacksFile is the default packs file name.
	DefaultPacksFile = "packs.yaml"
	// DefaultDatabaseFile is the file name of each pack database.
	DefaultDatabaseFile = "tags.db"
)

// Environment variables that override file settings.
const (
	EnvLogLevel = "TAG_LOG_LEVEL"
	EnvDataDir  = "TAG_DATA_DIR"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static configuration (read-only after init).
type Config struct {
	Log    LogConfig    `yaml:"log,omitempty"`
	SQLite SQLiteConfig `yaml:"sqlite,omitempty"`
	Sync   SyncConfig   `yaml:"sync,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
	// Development selects zap's human-readable development encoder.
	Development bool `yaml:"development,omitempty"`
}

// SQLiteConfig holds configuration for the per-pack SQLite databases.
type SQLiteConfig struct {
	// DataDir overrides where pack databases live.
	// Empty means <base>/.tag/packs.
	DataDir string `yaml:"data_dir,omitempty"`
}

// SyncConfig holds ore dictionary import settings.
type SyncConfig struct {
	// Format forces a parser; empty means detect from the file extension.
	Format string `yaml:"format,omitempty"`
	// CloseRegistration closes the builder after an import, matching the
	// behavior after game load.
	CloseRegistration bool `yaml:"close_registration"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Sync: SyncConfig{
			CloseRegistration: true,
		},
	}
}

// Load loads configuration from the .tag directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'tag init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		c.SQLite.DataDir = dir
	}
}

// ConfigDir returns the path to the .tag config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// PacksFilePath returns the path to the packs file.
func PacksFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultPacksFile)
}

// SanitizePackName converts a pack name to a safe directory name.
func SanitizePackName(name string) string {
	name = strings.ToLower(name)

	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	name = reNonAlphanumeric.ReplaceAllString(name, "")
	name = reMultipleUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// PackDir returns the directory holding a pack's database.
func (c *Config) PackDir(basePath, packName string) string {
	root := c.SQLite.DataDir
	if root == "" {
		root = filepath.Join(basePath, DefaultConfigDir, "packs")
	}
	return filepath.Join(root, SanitizePackName(packName))
}

// DatabasePath returns the SQLite database path for a pack.
func (c *Config) DatabasePath(basePath, packName string) string {
	return filepath.Join(c.PackDir(basePath, packName), DefaultDatabaseFile)
}
