// Package config provides configuration loading for the stitcher CLI.
// Supports YAML or TOML files, environment variables, and flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/spherical/pdf-stitcher/internal/domain"
)

// Config holds all configuration for the stitcher.
type Config struct {
	Stitch        domain.Config       `yaml:"stitch" toml:"stitch"`
	Output        OutputConfig        `yaml:"output" toml:"output"`
	Observability ObservabilityConfig `yaml:"observability" toml:"observability"`
	Locale        string              `yaml:"locale" toml:"locale"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	Dir         string `yaml:"dir" toml:"dir"`
	Archive     bool   `yaml:"archive" toml:"archive"`           // write <base>-stitched.zip
	WriteImages bool   `yaml:"write_images" toml:"write_images"` // write each image next to the archive
	Password    string `yaml:"password" toml:"password"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"`
}

// Load reads configuration from a YAML or TOML file and applies environment
// overrides. An empty path yields defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.ConfigError("read config file", err)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, domain.ConfigError("parse config file", err)
			}
		case ".yaml", ".yml", "":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, domain.ConfigError("parse config file", err)
			}
		default:
			return nil, domain.ConfigError(fmt.Sprintf("unsupported config format %q", filepath.Ext(path)), nil)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, domain.ConfigError("validate config", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Stitch: domain.DefaultConfig(),
		Output: OutputConfig{
			Dir:     ".",
			Archive: true,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "warn",
			LogFormat: "console",
		},
		Locale: "en",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Stitch.Validate(); err != nil {
		return err
	}

	if c.Observability.LogFormat != "json" && c.Observability.LogFormat != "console" {
		return fmt.Errorf("invalid log format: %s", c.Observability.LogFormat)
	}

	if !c.Output.Archive && !c.Output.WriteImages {
		return fmt.Errorf("nothing to write: enable archive or write_images")
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("STITCH_GROUPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.ConfigError(fmt.Sprintf("invalid STITCH_GROUPS %q", v), err)
		}
		cfg.Stitch.GroupCount = n
	}

	if v := os.Getenv("STITCH_DIRECTION"); v != "" {
		if err := cfg.Stitch.Direction.UnmarshalText([]byte(v)); err != nil {
			return domain.ConfigError("invalid STITCH_DIRECTION", err)
		}
	}

	if v := os.Getenv("STITCH_QUALITY"); v != "" {
		if err := cfg.Stitch.Quality.UnmarshalText([]byte(v)); err != nil {
			return domain.ConfigError("invalid STITCH_QUALITY", err)
		}
	}

	for name, dst := range map[string]*bool{
		"STITCH_GAP":    &cfg.Stitch.Gap,
		"STITCH_BORDER": &cfg.Stitch.Border,
	} {
		if v := os.Getenv(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return domain.ConfigError(fmt.Sprintf("invalid %s %q", name, v), err)
			}
			*dst = b
		}
	}

	if v := os.Getenv("STITCH_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}

	if v := os.Getenv("STITCH_LANG"); v != "" {
		cfg.Locale = v
	}

	if v := os.Getenv("PDF_PASSWORD"); v != "" {
		cfg.Output.Password = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}

	return nil
}
