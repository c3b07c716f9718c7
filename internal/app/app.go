package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/cl/fake"
	"github.com/tungetti/clinspect/internal/config"
	"github.com/tungetti/clinspect/internal/constants"
	"github.com/tungetti/clinspect/internal/errors"
	"github.com/tungetti/clinspect/internal/inspect"
	"github.com/tungetti/clinspect/internal/logging"
	"github.com/tungetti/clinspect/internal/pci"
	"github.com/tungetti/clinspect/internal/probe"
	"github.com/tungetti/clinspect/internal/property"
	"github.com/tungetti/clinspect/internal/render"
)

// Mode selects what a run produces.
type Mode int

const (
	// ModeInspect retrieves every property.
	ModeInspect Mode = iota
	// ModeList only names platforms and devices.
	ModeList
)

// App represents the main application with its dependencies and lifecycle.
type App struct {
	container *Container
	lifecycle *Lifecycle
	opts      Options
}

// Options configures the application.
type Options struct {
	Version   string
	BuildTime string
	GitCommit string

	// Stdout receives the report, Stderr the diagnostics.
	Stdout io.Writer
	Stderr io.Writer

	// Color allows styled output; the caller decides from the terminal.
	Color bool

	ShutdownTimeout time.Duration

	// NativeAPI opens the system backend. Defaults to cl.NewNative.
	NativeAPI func() (cl.API, error)
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Version:         "unknown",
		BuildTime:       "unknown",
		GitCommit:       "unknown",
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		ShutdownTimeout: 5 * time.Second,
		NativeAPI:       cl.NewNative,
	}
}

// New creates a new application with the given options.
func New(opts Options) *App {
	def := DefaultOptions()
	if opts.Stdout == nil {
		opts.Stdout = def.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = def.Stderr
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = def.ShutdownTimeout
	}
	if opts.NativeAPI == nil {
		opts.NativeAPI = def.NativeAPI
	}
	return &App{
		container: NewContainer(),
		lifecycle: NewLifecycle(opts.ShutdownTimeout),
		opts:      opts,
	}
}

// Initialize sets up all application components in order:
// configuration, logger, capability API backend.
func (a *App) Initialize(cfg *config.Config) error {
	if err := config.NewValidator().ValidateOrError(cfg); err != nil {
		return err
	}
	a.container.SetConfig(cfg)

	logger, err := a.initLogger(cfg)
	if err != nil {
		return errors.Wrap(errors.Configuration, "failed to initialize logger", err).WithOp("app.Initialize")
	}
	a.container.SetLogger(logger)

	logger.Debug("starting",
		"version", a.opts.Version,
		"build_time", a.opts.BuildTime,
		"git_commit", a.opts.GitCommit,
	)

	api, err := a.openAPI(cfg, logger)
	if err != nil {
		return err
	}
	a.container.SetAPI(api)

	return a.container.Validate()
}

func (a *App) initLogger(cfg *config.Config) (logging.Logger, error) {
	opts := logging.ConsoleOptions()
	opts.Output = a.opts.Stderr
	opts.Level = logging.Effective(logging.ParseLevel(cfg.LogLevel), cfg.Verbose, cfg.Quiet)
	opts.NoColor = a.noColor()

	logger, closer, err := logging.Setup(opts, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	a.lifecycle.OnShutdown(func(context.Context) error {
		return closer.Close()
	})
	return logger, nil
}

func (a *App) openAPI(cfg *config.Config, logger logging.Logger) (cl.API, error) {
	if cfg.Fixture != "" {
		logger.Info("using simulated platforms", "fixture", cfg.Fixture)
		return fake.LoadFile(cfg.Fixture)
	}
	api, err := a.opts.NativeAPI()
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), "cannot open the OpenCL library (try --fixture)", err).
			WithOp("app.openAPI")
	}
	return api, nil
}

func (a *App) noColor() bool {
	cfg := a.container.GetConfig()
	return !a.opts.Color || (cfg != nil && cfg.NoColor)
}

// Inspector builds the device inspector described by the configuration.
func (a *App) Inspector() *inspect.Inspector {
	cfg := a.container.GetConfig()
	api := a.container.GetAPI()
	logger := a.container.GetLogger()

	strictness, _ := inspect.ParseStrictness(cfg.Strictness)
	opts := []inspect.Option{
		inspect.WithLogger(logger.WithPrefix("inspect")),
		inspect.WithStrictness(strictness),
		inspect.WithVerbose(cfg.IsVerbose()),
		inspect.WithRetrieverOptions(
			property.WithMaxSize(cfg.MaxPropertySize),
			property.WithStrictSize(cfg.StrictSize),
		),
	}
	if cfg.Probe.Enabled {
		opts = append(opts, inspect.WithProbe(probe.New(api,
			probe.WithLogger(logger.WithPrefix("probe")),
			probe.WithWidths(cfg.Probe.Widths),
			probe.WithBuildOptions(cfg.Probe.BuildOptions),
		)))
	}
	if cfg.Sysfs.Enabled {
		opts = append(opts, inspect.WithPCIScanner(pci.NewScanner(pci.WithSysfsPath(cfg.Sysfs.Path))))
	}
	return inspect.NewInspector(api, opts...)
}

// Enumerator builds the platform walker with the configured filter.
func (a *App) Enumerator() (*inspect.Enumerator, error) {
	cfg := a.container.GetConfig()
	filter, err := inspect.NewFilter(cfg.Devices, cfg.Properties)
	if err != nil {
		return nil, err
	}
	return inspect.NewEnumerator(a.container.GetAPI(), a.Inspector(),
		inspect.WithFilter(filter),
		inspect.WithEnumeratorLogger(a.container.GetLogger().WithPrefix("enumerate")),
	), nil
}

// Run produces the report for mode on Stdout, recovering from panics.
// A fatal error still renders whatever was inspected before it.
func (a *App) Run(mode Mode) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = a.handlePanic(r)
		}
	}()

	if err := a.container.Validate(); err != nil {
		return err
	}
	cfg := a.container.GetConfig()
	logger := a.container.GetLogger()

	format := cfg.Output
	if mode == ModeList {
		format = render.FormatList
	}
	r, err := render.New(a.opts.Stdout, render.Options{
		Format:   format,
		NoColor:  a.noColor(),
		Sections: cfg.Sections,
	})
	if err != nil {
		return err
	}

	e, err := a.Enumerator()
	if err != nil {
		return err
	}

	if mode == ModeList {
		err = e.RunList(r)
	} else {
		err = e.Run(r)
	}
	if err != nil {
		logger.Error("inspection failed", "err", err, "code", errors.GetCode(err))
	}
	return err
}

// Shutdown releases resources acquired during initialization.
func (a *App) Shutdown() error {
	return a.lifecycle.Shutdown()
}

// Container returns the dependency container.
func (a *App) Container() *Container {
	return a.container
}

// Lifecycle returns the lifecycle manager.
func (a *App) Lifecycle() *Lifecycle {
	return a.lifecycle
}

// handlePanic handles a recovered panic and returns an error.
func (a *App) handlePanic(r interface{}) error {
	stack := debug.Stack()

	if logger := a.container.GetLogger(); logger != nil {
		logger.Error("panic recovered",
			"panic", fmt.Sprintf("%v", r),
			"stack", string(stack),
		)
	} else {
		fmt.Fprintf(a.opts.Stderr, "PANIC: %v\n%s\n", r, stack)
	}

	return errors.Newf(errors.Unknown, "panic: %v", r)
}

// ExitCode maps a run outcome to the process exit code.
func ExitCode(err error) constants.ExitCode {
	if err == nil {
		return constants.ExitSuccess
	}
	switch errors.GetCode(err) {
	case errors.Enumeration:
		return constants.ExitEnumeration
	case errors.OutOfMemory:
		return constants.ExitOutOfMemory
	case errors.Validation, errors.Configuration:
		return constants.ExitValidation
	default:
		return constants.ExitError
	}
}
