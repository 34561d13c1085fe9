package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when --config is not given.
const DefaultFile = ".engcheck.yaml"

// Environment overrides, applied after the config file.
const (
	EnvRegistry = "ENGCHECK_REGISTRY"
	EnvLogLevel = "ENGCHECK_LOG_LEVEL"
)

// Config holds CLI settings. Flags given on the command line take
// precedence over every value here.
type Config struct {
	// Registry is the standards catalog path (default "standards/standards.json").
	Registry string `yaml:"registry"`

	// Format is the default output format: text, json or md (default "text").
	Format string `yaml:"format"`

	// Workers bounds parallel document extraction (default 4).
	Workers int `yaml:"workers"`

	// Evidence includes per-item assessments in check reports.
	Evidence bool `yaml:"evidence"`

	Log LogConfig `yaml:"log"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default "info")
	Format string `yaml:"format"` // text or json (default "text")
}

// Default returns a Config with every default applied.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Registry == "" {
		c.Registry = "standards/standards.json"
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Load reads the YAML config at path. When path is empty DefaultFile is
// used if it exists; a missing default file yields the defaults. Environment
// overrides are applied last. Values are not validated here: callers apply
// command-line overrides first and then call ValidateFormat and
// LogConfig.Validate.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
		// no config file; defaults only
	default:
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if v := os.Getenv(EnvRegistry); v != "" {
		cfg.Registry = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

// ValidateFormat checks an output format name.
func ValidateFormat(format string) error {
	switch format {
	case "text", "json", "md":
		return nil
	default:
		return fmt.Errorf("format must be text, json or md, got %q", format)
	}
}

// Validate checks the log handler settings.
func (l LogConfig) Validate() error {
	switch l.Format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("log.format must be text or json, got %q", l.Format)
	}
}
