package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Logger defines the interface for logging operations.
// This interface is designed for easy mocking in tests.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
	// WithPrefix returns a Logger whose messages carry the given prefix,
	// typically the component name ("retrieve", "probe", "inspect").
	WithPrefix(prefix string) Logger
	// WithFields returns a Logger that appends keyvals to every message.
	WithFields(keyvals ...interface{}) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// Options configures the logger.
type Options struct {
	Level           Level
	Output          io.Writer
	TimeFormat      string
	Prefix          string
	NoColor         bool
	ReportTimestamp bool
}

// ConsoleOptions returns options for diagnostics on stderr. Timestamps are
// off: a capability dump is short-lived and the lines are read in order.
func ConsoleOptions() Options {
	return Options{
		Level:  LevelInfo,
		Output: os.Stderr,
		Prefix: "clinspect",
	}
}

// FileOptions returns options for a log file: everything down to debug,
// no colour and full timestamps.
func FileOptions(w io.Writer) Options {
	return Options{
		Level:           LevelDebug,
		Output:          w,
		TimeFormat:      "2006-01-02 15:04:05",
		NoColor:         true,
		ReportTimestamp: true,
	}
}

type logger struct {
	mu     sync.RWMutex
	impl   *log.Logger
	level  Level
	fields []interface{}
}

// New creates a new logger with the given options.
func New(opts Options) Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	l := log.NewWithOptions(opts.Output, log.Options{
		TimeFormat:      opts.TimeFormat,
		Level:           toCharmLevel(opts.Level),
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.ReportTimestamp,
	})

	if opts.NoColor {
		l.SetColorProfile(termenv.Ascii)
	}

	return &logger{impl: l, level: opts.Level}
}

// NewNop returns a no-op logger that discards all output.
func NewNop() Logger {
	return nopLogger{}
}

// NewFileLogger creates a logger appending to the file at path.
// The returned closer releases the file.
func NewFileLogger(path string, level Level) (Logger, io.Closer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	opts := FileOptions(file)
	opts.Level = level
	return New(opts), file, nil
}

// NewMultiLogger creates a logger that fans out to every given logger.
// Each keeps its own level.
func NewMultiLogger(loggers ...Logger) Logger {
	return &multiLogger{loggers: loggers}
}

// Setup builds the process logger: console diagnostics at the effective
// level, plus a debug-level file logger when file is set.
func Setup(console Options, file string) (Logger, io.Closer, error) {
	out := New(console)
	if file == "" {
		return out, nopCloser{}, nil
	}
	fl, closer, err := NewFileLogger(file, LevelDebug)
	if err != nil {
		return nil, nil, err
	}
	if console.Prefix != "" {
		fl = fl.WithPrefix(console.Prefix)
	}
	return NewMultiLogger(out, fl), closer, nil
}

func (l *logger) log(level Level, msg string, keyvals []interface{}) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if level < l.level {
		return
	}
	kv := append(append([]interface{}(nil), l.fields...), keyvals...)
	switch level {
	case LevelDebug:
		l.impl.Debug(msg, kv...)
	case LevelInfo:
		l.impl.Info(msg, kv...)
	case LevelWarn:
		l.impl.Warn(msg, kv...)
	default:
		l.impl.Error(msg, kv...)
	}
}

func (l *logger) Debug(msg string, keyvals ...interface{}) { l.log(LevelDebug, msg, keyvals) }
func (l *logger) Info(msg string, keyvals ...interface{})  { l.log(LevelInfo, msg, keyvals) }
func (l *logger) Warn(msg string, keyvals ...interface{})  { l.log(LevelWarn, msg, keyvals) }
func (l *logger) Error(msg string, keyvals ...interface{}) { l.log(LevelError, msg, keyvals) }

func (l *logger) WithPrefix(prefix string) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &logger{
		impl:   l.impl.WithPrefix(prefix),
		level:  l.level,
		fields: l.fields,
	}
}

func (l *logger) WithFields(keyvals ...interface{}) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	fields := make([]interface{}, 0, len(l.fields)+len(keyvals))
	fields = append(fields, l.fields...)
	fields = append(fields, keyvals...)
	return &logger{impl: l.impl, level: l.level, fields: fields}
}

func (l *logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.impl.SetLevel(toCharmLevel(level))
}

func (l *logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func toCharmLevel(l Level) log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (n nopLogger) WithPrefix(string) Logger         { return n }
func (n nopLogger) WithFields(...interface{}) Logger { return n }
func (nopLogger) SetLevel(Level)                     {}
func (nopLogger) GetLevel() Level                    { return LevelInfo }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type multiLogger struct {
	loggers []Logger
}

func (m *multiLogger) Debug(msg string, keyvals ...interface{}) {
	for _, l := range m.loggers {
		l.Debug(msg, keyvals...)
	}
}

func (m *multiLogger) Info(msg string, keyvals ...interface{}) {
	for _, l := range m.loggers {
		l.Info(msg, keyvals...)
	}
}

func (m *multiLogger) Warn(msg string, keyvals ...interface{}) {
	for _, l := range m.loggers {
		l.Warn(msg, keyvals...)
	}
}

func (m *multiLogger) Error(msg string, keyvals ...interface{}) {
	for _, l := range m.loggers {
		l.Error(msg, keyvals...)
	}
}

func (m *multiLogger) WithPrefix(prefix string) Logger {
	out := make([]Logger, len(m.loggers))
	for i, l := range m.loggers {
		out[i] = l.WithPrefix(prefix)
	}
	return &multiLogger{loggers: out}
}

func (m *multiLogger) WithFields(keyvals ...interface{}) Logger {
	out := make([]Logger, len(m.loggers))
	for i, l := range m.loggers {
		out[i] = l.WithFields(keyvals...)
	}
	return &multiLogger{loggers: out}
}

// SetLevel applies to every child, including the file logger.
func (m *multiLogger) SetLevel(level Level) {
	for _, l := range m.loggers {
		l.SetLevel(level)
	}
}

// GetLevel reports the first child's level, which Setup makes the console.
func (m *multiLogger) GetLevel() Level {
	if len(m.loggers) > 0 {
		return m.loggers[0].GetLevel()
	}
	return LevelInfo
}
