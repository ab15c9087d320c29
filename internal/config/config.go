// Package config loads the application configuration from a YAML or JSON
// file and applies defaults for anything unset.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Anmol09876/abacus/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = ".abacus/config.yaml"

// Duration wraps time.Duration so "1h30m" strings work in both YAML and
// JSON.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// RedisConfig holds connection settings for the redis session backend.
type RedisConfig struct {
	Addr     string   `yaml:"addr" json:"addr"`
	Password string   `yaml:"password" json:"password"`
	DB       int      `yaml:"db" json:"db"`
	TTL      Duration `yaml:"ttl" json:"ttl"`
}

// StoreConfig selects and configures the session persistence backend.
type StoreConfig struct {
	// Backend is one of "memory", "file" or "redis".
	Backend string      `yaml:"backend" json:"backend"`
	Path    string      `yaml:"path" json:"path"`
	Redis   RedisConfig `yaml:"redis" json:"redis"`
}

// Config is the application configuration.
type Config struct {
	// Mode is the startup angle mode: DEG, RAD or GRAD.
	Mode string `yaml:"mode" json:"mode"`

	// Precision is the display precision in significant digits.
	Precision int `yaml:"precision" json:"precision"`

	// HistoryLimit caps the per-session history ledger.
	HistoryLimit int `yaml:"history_limit" json:"history_limit"`

	// StrictRecall makes recalling an empty memory slot an error.
	StrictRecall bool `yaml:"strict_recall" json:"strict_recall"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	Store StoreConfig `yaml:"store" json:"store"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Mode:         string(domain.ModeDeg),
		Precision:    domain.DefaultPrecision,
		HistoryLimit: domain.DefaultHistoryLimit,
		LogLevel:     "info",
		Store: StoreConfig{
			Backend: "memory",
		},
	}
}

// Load reads the configuration file (YAML or JSON, by extension). A missing
// file is not an error; defaults apply. An explicit path that does not exist
// is reported.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := domain.ParseTrigMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Store.Backend {
	case "", "memory", "file", "redis":
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	if c.Precision < 0 || c.HistoryLimit < 0 {
		return fmt.Errorf("config: precision and history_limit must be non-negative")
	}
	return nil
}

// TrigMode returns the parsed startup mode.
func (c *Config) TrigMode() domain.TrigMode {
	mode, err := domain.ParseTrigMode(c.Mode)
	if err != nil {
		return domain.ModeDeg
	}
	return mode
}
