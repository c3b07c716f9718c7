// Package cli provides command-line argument parsing for clinspect.
// It supports subcommands, global flags with short and long variants, and
// overlays explicitly set flags onto the loaded configuration.
package cli

import (
	"github.com/tungetti/clinspect/internal/config"
)

// GlobalFlags holds flags common to all commands.
type GlobalFlags struct {
	Verbose    bool
	Quiet      bool
	ConfigFile string
	LogFile    string
	LogLevel   string
	NoColor    bool
}

// InspectFlags holds the selection and output flags shared by the inspect
// and list commands.
type InspectFlags struct {
	// JSON selects the JSON document instead of the human report.
	JSON bool

	// Sections groups human output under section headings.
	Sections bool

	// Fixture replaces the native API with a YAML-described simulated one.
	Fixture string

	// Devices restricts output to "P:D" selectors.
	Devices []string

	// Properties restricts output to properties whose name contains one
	// of these substrings.
	Properties []string

	// Strictness is check, try or show.
	Strictness string

	// AllProps is shorthand for --strictness=try.
	AllProps bool

	// AlwaysAllProps is shorthand for --strictness=show.
	AlwaysAllProps bool

	StrictSize bool
	NoProbe    bool
	NoSysfs    bool
}

// Validate checks GlobalFlags for conflicting options.
func (f *GlobalFlags) Validate() error {
	if f.Verbose && f.Quiet {
		return &FlagError{
			Flag:    "verbose/quiet",
			Message: "cannot use --verbose and --quiet together",
		}
	}
	return nil
}

// Validate checks InspectFlags for conflicting options.
func (f *InspectFlags) Validate() error {
	n := 0
	for _, set := range []bool{f.Strictness != "", f.AllProps, f.AlwaysAllProps} {
		if set {
			n++
		}
	}
	if n > 1 {
		return &FlagError{
			Flag:    "strictness",
			Message: "use only one of --strictness, --all-props and --always-all-props",
		}
	}
	return nil
}

// ResolvedStrictness returns the strictness named by the flags, or "" when
// none was given.
func (f *InspectFlags) ResolvedStrictness() string {
	switch {
	case f.AlwaysAllProps:
		return "show"
	case f.AllProps:
		return "try"
	default:
		return f.Strictness
	}
}

// Apply overlays the flags the user actually set onto cfg. Flags left at
// their zero value never override file or environment settings.
func (r *ParseResult) Apply(cfg *config.Config) {
	g := r.GlobalFlags
	if r.changed["verbose"] {
		cfg.Verbose = g.Verbose
	}
	if r.changed["quiet"] {
		cfg.Quiet = g.Quiet
	}
	if r.changed["log-file"] {
		cfg.LogFile = g.LogFile
	}
	if r.changed["log-level"] {
		cfg.LogLevel = g.LogLevel
	}
	if r.changed["no-color"] {
		cfg.NoColor = g.NoColor
	}

	f := r.InspectFlags
	if r.changed["json"] && f.JSON {
		cfg.Output = "json"
	}
	if r.Command == CommandList {
		cfg.Output = "list"
	}
	if r.changed["sections"] {
		cfg.Sections = f.Sections
	}
	if r.changed["fixture"] {
		cfg.Fixture = f.Fixture
	}
	if r.changed["device"] {
		cfg.Devices = append([]string(nil), f.Devices...)
	}
	if r.changed["prop"] {
		cfg.Properties = append([]string(nil), f.Properties...)
	}
	if s := f.ResolvedStrictness(); s != "" {
		cfg.Strictness = s
	}
	if r.changed["strict-size"] {
		cfg.StrictSize = f.StrictSize
	}
	if r.changed["no-probe"] && f.NoProbe {
		cfg.Probe.Enabled = false
	}
	if r.changed["no-sysfs"] && f.NoSysfs {
		cfg.Sysfs.Enabled = false
	}
}

// FlagError represents an error with a command-line flag.
type FlagError struct {
	Flag    string
	Message string
}

// Error implements the error interface.
func (e *FlagError) Error() string {
	return "flag error: " + e.Flag + ": " + e.Message
}
