// Package config loads the server configuration from a single YAML file,
// with a couple of environment overrides so container deployments work
// without any file at all.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the whole server configuration.
type Config struct {
	// Listen is the address the HTTP server binds, e.g. ":8080".
	Listen string `yaml:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Storage selects and locates the template snapshot slot.
	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig selects the snapshot backend.
type StorageConfig struct {
	// Backend is one of file, sqlite, memory.
	Backend string `yaml:"backend"`

	// Path locates the snapshot: a JSON file for the file backend, a
	// database file for sqlite. Ignored by memory.
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   ":8080",
		LogLevel: "info",
		Storage: StorageConfig{
			Backend: "file",
			Path:    "/data/templates.json",
		},
	}
}

// Load reads the file at path over the defaults. An empty path skips the
// file and keeps the defaults. The PORT and TEMPLATE_FILE environment
// variables override afterwards in either case.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Listen = ":" + port
	}
	if file := os.Getenv("TEMPLATE_FILE"); file != "" {
		cfg.Storage.Path = file
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Listen == "" {
		return errors.New("listen address is empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.Storage.Backend {
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage backend %q needs a path", c.Storage.Backend)
		}
	case "memory":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
