// Package config loads the application configuration from a TOML file.
//
// Configuration is optional: every field has a working default, and a
// missing file is not an error. CLI flags override file values, so the
// precedence is defaults, then file, then flags.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pinboard/pkg/errors"
)

// Config is the full application configuration.
type Config struct {
	// Document is the default document name used when none is given.
	Document string `toml:"document"`

	// GridSnap enables snapping dragged cards to the grid.
	GridSnap bool `toml:"grid_snap"`

	// DarkMode selects the dark palette for new documents.
	DarkMode bool `toml:"dark_mode"`

	Autosave AutosaveConfig `toml:"autosave"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// AutosaveConfig selects and configures the autosave backend.
type AutosaveConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means a "pinboard"
	// directory under the user cache dir.
	Dir string `toml:"dir"`

	// Interval between autosaves while a UI is running.
	Interval duration `toml:"interval"`

	// TTL for autosave entries; zero keeps them forever.
	TTL duration `toml:"ttl"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis autosave backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// ServerConfig configures the read-only HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is "debug", "info", "warn", or "error".
	Level string `toml:"level"`
}

// duration lets TOML carry values like "30s" or "5m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Document: "default",
		GridSnap: false,
		DarkMode: false,
		Autosave: AutosaveConfig{
			Backend:  "file",
			Interval: duration{30 * time.Second},
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Server: ServerConfig{
			Addr: "localhost:8384",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path loads
// the default location (DefaultPath); a missing file yields the defaults. A
// file that exists but does not parse is an INVALID_CONFIG error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPath is the per-user config location, empty when the user config
// dir cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pinboard", "config.toml")
}

// CacheDir resolves the file backend's directory, falling back to the user
// cache dir when unset.
func (c AutosaveConfig) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve cache dir")
	}
	return filepath.Join(dir, "pinboard"), nil
}

func (c Config) validate() error {
	switch c.Autosave.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown autosave backend %q", c.Autosave.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown log level %q", c.Log.Level)
	}
	return nil
}
