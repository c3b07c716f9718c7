package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tungetti/clinspect/internal/constants"
)

// ParseResult holds the result of parsing command line arguments.
type ParseResult struct {
	Command      Command
	GlobalFlags  GlobalFlags
	InspectFlags InspectFlags

	// Args contains any remaining positional arguments.
	Args []string

	// ShowHelp indicates that help should be displayed.
	ShowHelp bool

	// HelpCommand is the command to show help for (when using "help <command>").
	HelpCommand string

	// changed records the long names of flags given on the command line.
	changed map[string]bool
}

// Changed reports whether the named long flag was given explicitly.
func (r *ParseResult) Changed(name string) bool {
	return r.changed[name]
}

// Parser handles command line argument parsing.
type Parser struct {
	programName string
	version     string
	buildTime   string
	gitCommit   string
}

// NewParser creates a new CLI parser with build information.
func NewParser(programName, version, buildTime, gitCommit string) *Parser {
	return &Parser{
		programName: programName,
		version:     version,
		buildTime:   buildTime,
		gitCommit:   gitCommit,
	}
}

// Parse parses command line arguments and returns a ParseResult.
// The args parameter should not include the program name (typically os.Args[1:]).
// Flags may appear before or after the command; no command means inspect.
func (p *Parser) Parse(args []string) (*ParseResult, error) {
	result := &ParseResult{changed: map[string]bool{}}

	fs := p.flagSet(result)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	fs.Visit(func(f *pflag.Flag) {
		result.changed[f.Name] = true
	})

	remaining := fs.Args()
	if result.ShowHelp {
		if len(remaining) > 0 && ParseCommand(remaining[0]) != CommandHelp {
			result.HelpCommand = remaining[0]
		}
		return result, nil
	}

	result.Command = CommandInspect
	if len(remaining) > 0 {
		result.Command = ParseCommand(remaining[0])
		if result.Command == CommandNone {
			return nil, fmt.Errorf("unknown command: %s", remaining[0])
		}
		remaining = remaining[1:]
	}

	if result.Command == CommandHelp {
		result.ShowHelp = true
		if len(remaining) > 0 {
			result.HelpCommand = remaining[0]
		}
		return result, nil
	}

	if err := result.GlobalFlags.Validate(); err != nil {
		return nil, err
	}
	if err := result.InspectFlags.Validate(); err != nil {
		return nil, err
	}

	if len(remaining) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", remaining[0])
	}
	return result, nil
}

// flagSet defines every flag against result. Passing a throwaway result
// yields a flag set used only for rendering usage.
func (p *Parser) flagSet(result *ParseResult) *pflag.FlagSet {
	fs := pflag.NewFlagSet(p.programName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	g := &result.GlobalFlags
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "Show properties that do not apply and debug diagnostics")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "Only log errors")
	fs.StringVarP(&g.ConfigFile, "config", "c", "", "Path to config file")
	fs.StringVar(&g.LogFile, "log-file", "", "Also write debug diagnostics to this file")
	fs.StringVar(&g.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&g.NoColor, "no-color", false, "Disable colored output")

	f := &result.InspectFlags
	fs.BoolVar(&f.JSON, "json", false, "Write a JSON document instead of the text report")
	fs.BoolVar(&f.Sections, "sections", false, "Group properties under section headings")
	fs.StringVar(&f.Fixture, "fixture", "", "Inspect a simulated system described by a YAML file")
	fs.StringArrayVarP(&f.Devices, "device", "d", nil, "Only inspect device P:D (repeatable)")
	fs.StringArrayVarP(&f.Properties, "prop", "p", nil, "Only show properties whose name contains SUBSTR (repeatable)")
	fs.StringVar(&f.Strictness, "strictness", "", "Gated property handling: check, try or show")
	fs.BoolVarP(&f.AllProps, "all-props", "a", false, "Query gated properties, hide their failures (try)")
	fs.BoolVarP(&f.AlwaysAllProps, "always-all-props", "A", false, "Query gated properties and show their failures (show)")
	fs.BoolVar(&f.StrictSize, "strict-size", false, "Re-check ambiguous CL_INVALID_VALUE results with a fixed buffer")
	fs.BoolVar(&f.NoProbe, "no-probe", false, "Skip the work-group size probe")
	fs.BoolVar(&f.NoSysfs, "no-sysfs", false, "Skip sysfs lookups for PCI devices")

	fs.BoolVarP(&result.ShowHelp, "help", "h", false, "Show help")
	return fs
}

// Usage returns the main usage string.
func (p *Parser) Usage() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s - %s\n\n", p.programName, constants.AppDescription)
	b.WriteString("Usage:\n")
	fmt.Fprintf(&b, "  %s [command] [flags]\n\n", p.programName)

	b.WriteString("Commands:\n")
	for _, cmd := range Commands() {
		fmt.Fprintf(&b, "  %-12s %s\n", cmd.Name, cmd.Description)
	}

	b.WriteString("\nFlags:\n")
	b.WriteString(p.flagSet(&ParseResult{}).FlagUsages())

	fmt.Fprintf(&b, "\nUse \"%s help <command>\" for more information about a command.\n", p.programName)
	return b.String()
}

// CommandUsage returns the usage string for a specific command.
func (p *Parser) CommandUsage(cmd string) string {
	parsed := ParseCommand(cmd)
	if parsed == CommandNone {
		return fmt.Sprintf("Unknown command: %s\n\nRun '%s help' for usage.\n", cmd, p.programName)
	}

	info := GetCommandInfo(parsed)
	if info == nil {
		return fmt.Sprintf("No help available for: %s\n", cmd)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", info.Description)
	fmt.Fprintf(&b, "Usage:\n  %s\n\n", info.Usage)

	if info.LongDescription != "" {
		b.WriteString(info.LongDescription)
		b.WriteString("\n")
	}
	return b.String()
}

// VersionString returns formatted version information.
func (p *Parser) VersionString() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s version %s\n", p.programName, p.version)

	if p.buildTime != "" && p.buildTime != "unknown" {
		fmt.Fprintf(&b, "Build time: %s\n", p.buildTime)
	}

	if p.gitCommit != "" && p.gitCommit != "unknown" {
		commit := p.gitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		fmt.Fprintf(&b, "Git commit: %s\n", commit)
	}
	return b.String()
}
