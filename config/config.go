// Package config loads jump's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Log levels accepted in the config file.
const (
	LogDebug = "debug"
	LogInfo  = "info"
	LogWarn  = "warn"
	LogError = "error"
)

// DBFile is the database file name inside DataDir.
const DBFile = "jump.db"

// Config represents the application configuration.
type Config struct {
	DataDir        string `yaml:"data_dir"`
	LogLevel       string `yaml:"log_level"`
	ExcludeFile    string `yaml:"exclude_file"`
	RecordSearches bool   `yaml:"record_searches"`
	BrowseLimit    int    `yaml:"browse_limit"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.LogLevel, validation.Required, validation.In(LogDebug, LogInfo, LogWarn, LogError)),
		validation.Field(&c.BrowseLimit, validation.Required, validation.Min(1), validation.Max(10000)),
	)
}

// DBPath returns the location of the history database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, DBFile)
}

// Level maps LogLevel onto a slog level.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case LogDebug:
		return slog.LevelDebug
	case LogInfo:
		return slog.LevelInfo
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		DataDir:        filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), "jump"),
		LogLevel:       LogWarn,
		ExcludeFile:    filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "jump", "ignore"),
		RecordSearches: true,
		BrowseLimit:    200,
	}
}

// DefaultPath returns the config file location: $JUMP_CONFIG, else
// $XDG_CONFIG_HOME/jump/config.yaml, else ~/.config/jump/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("JUMP_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "jump", "config.yaml")
}

// Load reads the config file at path on top of the defaults. A missing
// file is not an error. JUMP_DATA_DIR, when set, overrides data_dir.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if dir := os.Getenv("JUMP_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.ExcludeFile = expandHome(cfg.ExcludeFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(append([]string{home}, fallback...)...)
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
