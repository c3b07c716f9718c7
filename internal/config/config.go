// Package config provides configuration management for clinspect.
// It supports loading configuration from YAML files and environment variables,
// with validation and defaults. The package follows the XDG Base Directory
// specification for locating the configuration file.
package config

import (
	"path/filepath"

	"github.com/tungetti/clinspect/internal/constants"
)

// Config represents the application configuration.
// Values come from defaults, the YAML file, CLINSPECT_* environment
// variables and command line flags, in increasing precedence.
type Config struct {
	// General settings
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Verbose  bool   `yaml:"verbose"`
	Quiet    bool   `yaml:"quiet"`
	NoColor  bool   `yaml:"no_color"`

	// Directories
	ConfigDir string `yaml:"config_dir"`

	// Output
	Output   string `yaml:"output"`
	Sections bool   `yaml:"sections"`

	// Inspection
	Strictness      string `yaml:"strictness"`
	StrictSize      bool   `yaml:"strict_size"`
	MaxPropertySize int    `yaml:"max_property_size"`

	Probe ProbeConfig `yaml:"probe"`
	Sysfs SysfsConfig `yaml:"sysfs"`

	// Fixture replaces the native API with a simulated one loaded from
	// a YAML document.
	Fixture string `yaml:"fixture"`

	// Selection
	Devices    []string `yaml:"devices"`
	Properties []string `yaml:"properties"`
}

// ProbeConfig configures the work-group size probe.
type ProbeConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Widths       []int  `yaml:"widths"`
	BuildOptions string `yaml:"build_options"`
}

// SysfsConfig configures sysfs enrichment of bus addresses.
type SysfsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ConfigPath returns the path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.ConfigDir, constants.ConfigFileName)
}

// IsVerbose returns true if verbose output is enabled and quiet is not.
func (c *Config) IsVerbose() bool {
	return c.Verbose && !c.Quiet
}

// IsSilent returns true if quiet mode is enabled.
func (c *Config) IsSilent() bool {
	return c.Quiet
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Probe.Widths = append([]int(nil), c.Probe.Widths...)
	clone.Devices = append([]string(nil), c.Devices...)
	clone.Properties = append([]string(nil), c.Properties...)
	return &clone
}
