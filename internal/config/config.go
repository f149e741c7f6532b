package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color modes for console output
const (
	ColorAuto   = "auto"   // Color when writing to a terminal
	ColorAlways = "always" // Always emit ANSI colors
	ColorNever  = "never"  // Plain text only
)

// DefaultMaxLineBytes is the longest JSON Lines record the inspector accepts.
const DefaultMaxLineBytes = 4 * 1024 * 1024

// Config represents claudestream configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// StrictTypes rejects stream updates whose type is outside the known set
	StrictTypes bool `yaml:"strict_types"`

	// Color selects console coloring: auto, always, never
	Color string `yaml:"color"`

	// MaxLineBytes bounds the size of a single JSON Lines record
	MaxLineBytes int `yaml:"max_line_bytes"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		StrictTypes:  false,
		Color:        ColorAuto,
		MaxLineBytes: DefaultMaxLineBytes,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.Color != "" {
		cfg.Color = fileCfg.Color
	}
	if fileCfg.MaxLineBytes != 0 {
		cfg.MaxLineBytes = fileCfg.MaxLineBytes
	}
	// StrictTypes is explicitly set if present in YAML
	if fileCfg.StrictTypes {
		cfg.StrictTypes = true
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .claudestream/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".claudestream", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, strictTypes *bool, color *string) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if strictTypes != nil {
		c.StrictTypes = *strictTypes
	}
	if color != nil {
		c.Color = *color
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	if c.MaxLineBytes <= 0 {
		return fmt.Errorf("max_line_bytes must be > 0, got %d", c.MaxLineBytes)
	}

	return nil
}
