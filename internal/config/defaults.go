package config

import (
	"os"
	"path/filepath"

	"github.com/tungetti/clinspect/internal/constants"
	"github.com/tungetti/clinspect/internal/pci"
	"github.com/tungetti/clinspect/internal/probe"
	"github.com/tungetti/clinspect/internal/property"
)

const (
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultOutput is the default output format.
	DefaultOutput = "human"

	// DefaultStrictness honours version and extension gates.
	DefaultStrictness = "check"
)

// DefaultConfig returns a Config with the defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		ConfigDir:       defaultConfigDir(),
		Output:          DefaultOutput,
		Strictness:      DefaultStrictness,
		MaxPropertySize: property.DefaultMaxSize,
		Probe: ProbeConfig{
			Enabled: true,
			Widths:  append([]int(nil), probe.DefaultWidths...),
		},
		Sysfs: SysfsConfig{
			Enabled: true,
			Path:    pci.DefaultSysfsPath,
		},
	}
}

// defaultConfigDir returns the XDG config directory for clinspect.
// Falls back to ~/.config/clinspect if XDG_CONFIG_HOME is not set.
func defaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, constants.AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", constants.AppName)
	}
	return filepath.Join(home, ".config", constants.AppName)
}

// GetConfigDir returns the configuration directory, respecting XDG.
func GetConfigDir() string {
	return defaultConfigDir()
}
