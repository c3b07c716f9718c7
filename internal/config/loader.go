package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tungetti/clinspect/internal/errors"
)

const (
	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "CLINSPECT_"
)

// Loader handles configuration loading from multiple sources.
// It loads configuration in order: defaults -> file -> environment variables,
// with later sources overriding earlier ones.
type Loader struct {
	configPath string
	envPrefix  string
	lookupEnv  func(string) (string, bool)
}

// NewLoader creates a new configuration loader.
// If configPath is empty, only defaults and environment variables are used.
func NewLoader(configPath string) *Loader {
	return NewLoaderWithPrefix(configPath, EnvPrefix)
}

// NewLoaderWithPrefix creates a new loader with a custom environment variable prefix.
func NewLoaderWithPrefix(configPath, envPrefix string) *Loader {
	return &Loader{
		configPath: configPath,
		envPrefix:  envPrefix,
		lookupEnv:  os.LookupEnv,
	}
}

// Load loads configuration from file and environment.
// Returns an error if the file exists but cannot be parsed.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, err
		}
	}

	if err := l.loadFromEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAndValidate loads configuration and validates it.
func (l *Loader) LoadAndValidate() (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	if err := NewValidator().ValidateOrError(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile loads config from YAML file. A missing file is not an error.
func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.Configuration, "failed to read config file", err).
			WithOp("config.loadFromFile")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(errors.Configuration, "failed to parse config file", err).
			WithOp("config.loadFromFile")
	}
	return nil
}

func (l *Loader) env(name string) (string, bool) {
	v, ok := l.lookupEnv(l.envPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// loadFromEnv loads config from environment variables.
func (l *Loader) loadFromEnv(cfg *Config) error {
	if v, ok := l.env("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := l.env("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := l.env("VERBOSE"); ok {
		cfg.Verbose = parseBool(v)
	}
	if v, ok := l.env("QUIET"); ok {
		cfg.Quiet = parseBool(v)
	}
	if v, ok := l.env("NO_COLOR"); ok {
		cfg.NoColor = parseBool(v)
	}
	if v, ok := l.env("CONFIG_DIR"); ok {
		cfg.ConfigDir = v
	}

	if v, ok := l.env("OUTPUT"); ok {
		cfg.Output = v
	}
	if v, ok := l.env("SECTIONS"); ok {
		cfg.Sections = parseBool(v)
	}
	if v, ok := l.env("STRICTNESS"); ok {
		cfg.Strictness = v
	}
	if v, ok := l.env("STRICT_SIZE"); ok {
		cfg.StrictSize = parseBool(v)
	}
	if v, ok := l.env("MAX_PROPERTY_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(errors.Configuration, err, "invalid %sMAX_PROPERTY_SIZE %q", l.envPrefix, v).
				WithOp("config.loadFromEnv")
		}
		cfg.MaxPropertySize = n
	}

	if v, ok := l.env("PROBE_ENABLED"); ok {
		cfg.Probe.Enabled = parseBool(v)
	}
	if v, ok := l.env("PROBE_WIDTHS"); ok {
		widths, err := parseInts(v)
		if err != nil {
			return errors.Wrapf(errors.Configuration, err, "invalid %sPROBE_WIDTHS %q", l.envPrefix, v).
				WithOp("config.loadFromEnv")
		}
		cfg.Probe.Widths = widths
	}
	if v, ok := l.env("PROBE_BUILD_OPTIONS"); ok {
		cfg.Probe.BuildOptions = v
	}

	if v, ok := l.env("SYSFS_ENABLED"); ok {
		cfg.Sysfs.Enabled = parseBool(v)
	}
	if v, ok := l.env("SYSFS_PATH"); ok {
		cfg.Sysfs.Path = v
	}

	if v, ok := l.env("FIXTURE"); ok {
		cfg.Fixture = v
	}
	if v, ok := l.env("DEVICES"); ok {
		cfg.Devices = splitList(v)
	}
	if v, ok := l.env("PROPERTIES"); ok {
		cfg.Properties = splitList(v)
	}
	return nil
}

// parseBool parses a string as a boolean value.
// Accepts: true, 1, yes, on (case-insensitive) as true.
// All other values are treated as false.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, item := range splitList(s) {
		n, err := strconv.Atoi(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// LoadDefaultConfig loads configuration from the default location.
// It looks for config.yaml in the XDG config directory.
func LoadDefaultConfig() (*Config, error) {
	return NewLoader(DefaultConfig().ConfigPath()).Load()
}
