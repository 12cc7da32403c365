// Package config loads seeker configuration from an optional
// .seeker/config.yaml file. File values are defaults; CLI flags override
// them.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/harrison/seeker/internal/logger"
)

// ConfigDirName is the per-project directory seeker keeps its
// configuration and logs in.
const ConfigDirName = ".seeker"

// ConfigFileName is the configuration file looked up inside ConfigDirName.
const ConfigFileName = "config.yaml"

// Config represents seeker configuration options.
type Config struct {
	// Workers is the number of search workers (0 = one per CPU core).
	Workers int `yaml:"workers"`

	// MaxDepth limits directory recursion below the root. Zero disables
	// recursion into subdirectories; the maximum value disables the
	// limit.
	MaxDepth uint32 `yaml:"max_depth"`

	// LogLevel sets diagnostic verbosity (trace, debug, info, warn,
	// error).
	LogLevel string `yaml:"log_level"`

	// LogDir is where per-run debug logs are written.
	LogDir string `yaml:"log_dir"`

	// NoColor disables colored output even on a terminal.
	NoColor bool `yaml:"no_color"`

	// LineNumbers prefixes matched lines with their line numbers.
	LineNumbers bool `yaml:"line_numbers"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Workers:     0, // One per core
		MaxDepth:    math.MaxUint32,
		LogLevel:    "info",
		LogDir:      filepath.Join(ConfigDirName, "logs"),
		NoColor:     false,
		LineNumbers: true,
	}
}

// LoadConfig reads configuration from the given path. A missing file
// silently yields defaults; a file that exists but cannot be read or parsed
// is a fatal startup error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigFromDirectory loads <dir>/.seeker/config.yaml, falling back to
// defaults when absent.
func LoadConfigFromDirectory(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ConfigDirName, ConfigFileName))
}

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.LogLevel != "" && !logger.ValidLogLevel(c.LogLevel) {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
