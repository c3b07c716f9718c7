package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tungetti/clinspect/internal/errors"
	"github.com/tungetti/clinspect/internal/inspect"
	"github.com/tungetti/clinspect/internal/property"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation: %s: %s", e.Field, e.Message)
}

// Validator validates configuration.
type Validator struct {
	validLogLevels map[string]bool
	validOutputs   map[string]bool
	validWidths    map[int]bool
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{
		validLogLevels: map[string]bool{
			"debug": true,
			"info":  true,
			"warn":  true,
			"error": true,
		},
		validOutputs: map[string]bool{
			"human": true,
			"json":  true,
			"list":  true,
		},
		validWidths: map[int]bool{1: true, 2: true, 3: true, 4: true, 8: true, 16: true},
	}
}

// Validate validates the configuration and returns all errors, so that
// every problem is reported at once.
func (v *Validator) Validate(cfg *Config) []error {
	var errs []error
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !v.validLogLevels[strings.ToLower(cfg.LogLevel)] {
		add("log_level", "invalid log level %q: must be one of: debug, info, warn, error", cfg.LogLevel)
	}
	if !v.validOutputs[cfg.Output] {
		add("output", "invalid output %q: must be one of: human, json, list", cfg.Output)
	}
	if _, ok := inspect.ParseStrictness(cfg.Strictness); !ok {
		add("strictness", "invalid strictness %q: must be one of: check, try, show", cfg.Strictness)
	}

	if cfg.Verbose && cfg.Quiet {
		add("verbose/quiet", "verbose and quiet cannot both be true")
	}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if dir != "" && dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				add("log_file", "directory does not exist: %s", dir)
			}
		}
	}

	if cfg.MaxPropertySize < property.StrictProbeSize {
		add("max_property_size", "must be at least %d bytes, got %d", property.StrictProbeSize, cfg.MaxPropertySize)
	}

	if cfg.Probe.Enabled {
		if len(cfg.Probe.Widths) == 0 {
			add("probe.widths", "at least one vector width is required")
		}
		for _, w := range cfg.Probe.Widths {
			if !v.validWidths[w] {
				add("probe.widths", "invalid vector width %d: must be one of 1, 2, 3, 4, 8, 16", w)
			}
		}
	}

	if cfg.Sysfs.Enabled && cfg.Sysfs.Path == "" {
		add("sysfs.path", "sysfs path cannot be empty when sysfs is enabled")
	}

	if cfg.Fixture != "" {
		if _, err := os.Stat(cfg.Fixture); err != nil {
			add("fixture", "cannot read fixture: %v", err)
		}
	}

	for _, d := range cfg.Devices {
		if _, err := inspect.ParseDevicePair(d); err != nil {
			add("devices", "%v", err)
		}
	}

	if cfg.ConfigDir == "" {
		add("config_dir", "config directory cannot be empty")
	}

	return errs
}

// ValidateOrError validates and returns a single wrapped error.
// If there are no validation errors, nil is returned.
func (v *Validator) ValidateOrError(cfg *Config) error {
	errs := v.Validate(cfg)
	if len(errs) == 0 {
		return nil
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}

	return errors.New(errors.Validation, strings.Join(msgs, "; ")).
		WithOp("config.Validate")
}

// IsValid returns true if the configuration is valid.
func (v *Validator) IsValid(cfg *Config) bool {
	return len(v.Validate(cfg)) == 0
}
