// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-jobflow/internal/core/threshold"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile  = "~/.go-jobflow/config.yaml"
	DefaultLogFile     = "~/.go-jobflow/logs/app.log"
	DefaultSettingsDB  = "~/.go-jobflow/settings.db"
	DefaultExportDelay = 2 * time.Second
)

var validOutputs = []string{"table", "json", "csv"}

// Config holds every setting that can come from the config file. Command
// line flags override it.
type Config struct {
	DataDir     string        `yaml:"data_dir"`
	Timezone    string        `yaml:"timezone"`
	Output      string        `yaml:"output"`
	LogLevel    string        `yaml:"log_level"`
	LogFile     string        `yaml:"log_file"`
	LogFormat   string        `yaml:"log_format"`
	SettingsDB  string        `yaml:"settings_db"`
	ExportDelay time.Duration `yaml:"export_delay"`

	// Thresholds overrides the factory routing configuration key by key.
	Thresholds *Thresholds `yaml:"thresholds,omitempty"`
}

// Thresholds is the routing block of the config file. Keys it leaves out
// keep their factory values.
type Thresholds struct {
	threshold.Config `yaml:",inline"`
}

// UnmarshalYAML decodes the block over threshold.Defaults.
func (t *Thresholds) UnmarshalYAML(value *yaml.Node) error {
	t.Config = threshold.Defaults()
	return value.Decode(&t.Config)
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads path. A missing file at the default location yields the
// defaults; a missing file that was asked for explicitly is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	path = ExpandPath(path)

	cfg := &Config{}
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}

	overrideFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("JOBFLOW_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("JOBFLOW_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("JOBFLOW_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("JOBFLOW_SETTINGS_DB"); v != "" {
		cfg.SettingsDB = v
	}
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.Output == "" {
		c.Output = "table"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.SettingsDB == "" {
		c.SettingsDB = DefaultSettingsDB
	}
	if c.ExportDelay == 0 {
		c.ExportDelay = DefaultExportDelay
	}
}

// Validate fills defaults and rejects values no command can use.
func (c *Config) Validate() error {
	c.applyDefaults()

	if !contains(validOutputs, c.Output) {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.Output, strings.Join(validOutputs, ", "))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if c.ExportDelay < 0 {
		return fmt.Errorf("export delay must not be negative, got %s", c.ExportDelay)
	}
	if c.Timezone != "Local" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}
	return nil
}

// ThresholdConfig returns the configured routing thresholds or the factory
// defaults.
func (c *Config) ThresholdConfig() threshold.Config {
	if c.Thresholds == nil {
		return threshold.Defaults()
	}
	return c.Thresholds.Config
}

// ExpandPath resolves a leading "~/" and makes path absolute. Empty stays
// empty.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
