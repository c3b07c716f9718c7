package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tungetti/clinspect/internal/app"
	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/cli"
	"github.com/tungetti/clinspect/internal/config"
	"github.com/tungetti/clinspect/internal/constants"
)

// CLI encapsulates the command-line interface for clinspect.
type CLI struct {
	parser *cli.Parser
	stdout io.Writer
	stderr io.Writer

	// color reports whether stdout may carry styling.
	color     func(noColor bool) bool
	nativeAPI func() (cl.API, error)
}

// NewCLI creates a new CLI instance writing to stdout and stderr.
func NewCLI(stdout, stderr io.Writer) *CLI {
	c := &CLI{
		parser:    cli.NewParser(constants.AppName, Version, BuildTime, GitCommit),
		stdout:    stdout,
		stderr:    stderr,
		nativeAPI: cl.NewNative,
	}
	c.color = func(noColor bool) bool {
		f, ok := c.stdout.(*os.File)
		return ok && cli.UseColor(noColor, f)
	}
	return c
}

// Run parses arguments and executes the appropriate command.
// It returns an exit code suitable for os.Exit().
func (c *CLI) Run(args []string) int {
	result, err := c.parser.Parse(args)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		fmt.Fprintf(c.stderr, "Run '%s help' for usage.\n", constants.AppName)
		return constants.ExitValidation.Int()
	}

	if result.ShowHelp {
		return c.showHelp(result)
	}
	if result.Command == cli.CommandVersion {
		fmt.Fprint(c.stdout, c.parser.VersionString())
		return constants.ExitSuccess.Int()
	}

	cfg, err := c.loadConfig(result)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error loading config: %v\n", err)
		return app.ExitCode(err).Int()
	}

	mode := app.ModeInspect
	if result.Command == cli.CommandList {
		mode = app.ModeList
	}
	return c.execute(cfg, mode)
}

// loadConfig loads configuration from file and environment, then applies
// the flags given on the command line.
func (c *CLI) loadConfig(result *cli.ParseResult) (*config.Config, error) {
	path := result.GlobalFlags.ConfigFile
	if path == "" {
		path = config.DefaultConfig().ConfigPath()
	}

	cfg, err := config.NewLoader(path).Load()
	if err != nil {
		return nil, err
	}
	result.Apply(cfg)
	return cfg, nil
}

func (c *CLI) execute(cfg *config.Config, mode app.Mode) int {
	a := app.New(app.Options{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
		Stdout:    c.stdout,
		Stderr:    c.stderr,
		Color:     c.color(cfg.NoColor),
		NativeAPI: c.nativeAPI,
	})
	defer a.Shutdown()

	if err := a.Initialize(cfg); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return app.ExitCode(err).Int()
	}

	// Run logs its own failure.
	return app.ExitCode(a.Run(mode)).Int()
}

// showHelp displays help information and returns an exit code.
func (c *CLI) showHelp(result *cli.ParseResult) int {
	if result.HelpCommand != "" {
		fmt.Fprint(c.stdout, c.parser.CommandUsage(result.HelpCommand))
	} else {
		fmt.Fprint(c.stdout, c.parser.Usage())
	}
	return constants.ExitSuccess.Int()
}
