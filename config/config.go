package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/memfs/internal/util"
	"gopkg.in/yaml.v3"
)

// Config contains runtime configuration values for the in-memory filesystem.
type Config struct {
	MountOptions
	LogLvl          util.LogLevel // Internal log level (Default Info)
	DefaultEncoding string        // Text encoding used when a call names none (Default utf8)
	// NOTE: FUSE settings only apply when the store is mounted:
	AttrTimeout  float64 // Attribute cache timeout in seconds (Default 1.0)
	EntryTimeout float64 // Directory entry cache timeout in seconds (Default 1.0)
	DirectIO     bool    // Whether to bypass page cache for mounted files (Default true)
	// MetricsAddr is where the CLI serves Prometheus metrics at /metrics.
	// Empty disables the endpoint (Default "")
	MetricsAddr string
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	// LogLvl is a verbosity between ErrorVerbose (1) and TraceVerbose (5)
	LogLvl          *int     `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	FsName          *string  `yaml:"fs_name,omitempty" json:"fs_name,omitempty"`
	Name            *string  `yaml:"name,omitempty" json:"name,omitempty"`
	Debug           *bool    `yaml:"debug,omitempty" json:"debug,omitempty"`
	DefaultEncoding *string  `yaml:"default_encoding,omitempty" json:"default_encoding,omitempty"`
	AttrTimeout     *float64 `yaml:"attr_timeout,omitempty" json:"attr_timeout,omitempty"`
	EntryTimeout    *float64 `yaml:"entry_timeout,omitempty" json:"entry_timeout,omitempty"`
	DirectIO        *bool    `yaml:"direct_io,omitempty" json:"direct_io,omitempty"`
	MetricsAddr     *string  `yaml:"metrics_addr,omitempty" json:"metrics_addr,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MountOptions: MountOptions{
			FsName: DefaultFsName,
			Name:   DefaultName,
		},
		LogLvl:          DefaultLogLvl,
		DefaultEncoding: DefaultEncoding,
		AttrTimeout:     DefaultAttrTimeout,
		EntryTimeout:    DefaultEntryTimeout,
		DirectIO:        DefaultDirectIO,
	}
}

// NewConfig creates a Config from defaults with override applied.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = VerboseToLogLevel(*override.LogLvl)
	}
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.Name != nil {
		c.Name = *override.Name
	}
	if override.Debug != nil {
		c.Debug = *override.Debug
	}
	if override.DefaultEncoding != nil {
		c.DefaultEncoding = *override.DefaultEncoding
	}
	if override.AttrTimeout != nil {
		c.AttrTimeout = *override.AttrTimeout
	}
	if override.EntryTimeout != nil {
		c.EntryTimeout = *override.EntryTimeout
	}
	if override.DirectIO != nil {
		c.DirectIO = *override.DirectIO
	}
	if override.MetricsAddr != nil {
		c.MetricsAddr = *override.MetricsAddr
	}
}

// VerboseToLogLevel converts a 1 (error) .. 5 (trace) verbosity to the
// internal log level, clamping out of range values.
func VerboseToLogLevel(verbose int) util.LogLevel {
	verbose = max(ErrorVerbose, min(TraceVerbose, verbose))
	lvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return lvls[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var override ConfigOverride
	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}
	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
