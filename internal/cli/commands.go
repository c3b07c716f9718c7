package cli

// Command represents a CLI command type.
type Command int

const (
	// CommandNone represents no command or an unrecognized command.
	CommandNone Command = iota

	// CommandInspect dumps every property of the selected devices.
	CommandInspect

	// CommandList prints the platform and device tree only.
	CommandList

	// CommandVersion displays build information.
	CommandVersion

	// CommandHelp shows usage information.
	CommandHelp
)

// String returns the command name as a string.
func (c Command) String() string {
	switch c {
	case CommandInspect:
		return "inspect"
	case CommandList:
		return "list"
	case CommandVersion:
		return "version"
	case CommandHelp:
		return "help"
	default:
		return ""
	}
}

// IsValid returns true if the command is a recognized command.
func (c Command) IsValid() bool {
	return c > CommandNone && c <= CommandHelp
}

// CommandInfo holds metadata about a command.
type CommandInfo struct {
	Name            string
	Aliases         []string
	Description     string
	Usage           string
	LongDescription string
}

// Commands returns all available commands with their metadata.
func Commands() []CommandInfo {
	return []CommandInfo{
		{
			Name:        "inspect",
			Aliases:     []string{"i"},
			Description: "Show every platform and device property (default)",
			Usage:       "clinspect [inspect] [flags]",
			LongDescription: `Enumerate OpenCL platforms and devices and print their properties.

Properties that do not apply to a device (wrong version, missing extension)
are left out unless --all-props or --always-all-props is given. Values the
driver fails to report are shown inline as <error: CL_...>.

Examples:
  clinspect                         Inspect everything
  clinspect -d 0:1                  Only device 1 of platform 0
  clinspect -p extensions -p name   Only matching properties
  clinspect --json                  JSON document on stdout
  clinspect --fixture gpus.yaml     Inspect a simulated system`,
		},
		{
			Name:        "list",
			Aliases:     []string{"l", "ls"},
			Description: "List platforms and devices by name",
			Usage:       "clinspect list [flags]",
			LongDescription: `Print the platform and device tree without querying other properties.

Examples:
  clinspect list
  clinspect list -d 1:0`,
		},
		{
			Name:        "version",
			Aliases:     []string{"v"},
			Description: "Show version information",
			Usage:       "clinspect version",
			LongDescription: `Display version information about clinspect.

Shows the version number, build time, and git commit hash.`,
		},
		{
			Name:        "help",
			Aliases:     []string{"h"},
			Description: "Show help for a command",
			Usage:       "clinspect help [command]",
			LongDescription: `Display help information.

When called without arguments, shows general help and available commands.
When called with a command name, shows detailed help for that command.`,
		},
	}
}

// GetCommandInfo returns the CommandInfo for a given command.
// Returns nil if the command is not found.
func GetCommandInfo(cmd Command) *CommandInfo {
	if !cmd.IsValid() {
		return nil
	}

	cmds := Commands()
	for i := range cmds {
		if cmds[i].Name == cmd.String() {
			return &cmds[i]
		}
	}
	return nil
}

// ParseCommand parses a string into a Command.
// It recognizes both primary command names and aliases.
func ParseCommand(s string) Command {
	for _, info := range Commands() {
		if s == info.Name {
			return commandFromName(info.Name)
		}
		for _, alias := range info.Aliases {
			if s == alias {
				return commandFromName(info.Name)
			}
		}
	}
	return CommandNone
}

func commandFromName(name string) Command {
	switch name {
	case "inspect":
		return CommandInspect
	case "list":
		return CommandList
	case "version":
		return CommandVersion
	case "help":
		return CommandHelp
	default:
		return CommandNone
	}
}
