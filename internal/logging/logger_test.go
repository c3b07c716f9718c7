package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(buf *bytes.Buffer, level Level) Logger {
	return New(Options{Level: level, Output: buf, NoColor: true})
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestLookupLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{" Info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"", LevelInfo, true},
		{"critical", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := LookupLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestEffective(t *testing.T) {
	tests := []struct {
		name       string
		configured Level
		verbose    bool
		quiet      bool
		expected   Level
	}{
		{"configured", LevelWarn, false, false, LevelWarn},
		{"verbose lowers to debug", LevelInfo, true, false, LevelDebug},
		{"quiet raises to error", LevelDebug, false, true, LevelError},
		{"quiet beats verbose", LevelInfo, true, true, LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Effective(tt.configured, tt.verbose, tt.quiet))
		})
	}
}

func TestConsoleOptions(t *testing.T) {
	opts := ConsoleOptions()

	assert.Equal(t, LevelInfo, opts.Level)
	assert.Equal(t, os.Stderr, opts.Output)
	assert.Equal(t, "clinspect", opts.Prefix)
	assert.False(t, opts.ReportTimestamp)
}

func TestFileOptions(t *testing.T) {
	var buf bytes.Buffer
	opts := FileOptions(&buf)

	assert.Equal(t, LevelDebug, opts.Level)
	assert.Equal(t, &buf, opts.Output)
	assert.True(t, opts.NoColor)
	assert.True(t, opts.ReportTimestamp)
}

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		want  []string
		skip  []string
	}{
		{"debug", LevelDebug, []string{"dbg-msg", "inf-msg", "wrn-msg", "err-msg"}, nil},
		{"info", LevelInfo, []string{"inf-msg", "wrn-msg", "err-msg"}, []string{"dbg-msg"}},
		{"warn", LevelWarn, []string{"wrn-msg", "err-msg"}, []string{"dbg-msg", "inf-msg"}},
		{"error", LevelError, []string{"err-msg"}, []string{"dbg-msg", "inf-msg", "wrn-msg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := plain(&buf, tt.level)

			l.Debug("dbg-msg")
			l.Info("inf-msg")
			l.Warn("wrn-msg")
			l.Error("err-msg")

			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.skip {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestLoggerKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l := plain(&buf, LevelDebug)

	l.Debug("query", "param", "CL_DEVICE_NAME", "size", 24)

	out := buf.String()
	assert.Contains(t, out, "query")
	assert.Contains(t, out, "param=CL_DEVICE_NAME")
	assert.Contains(t, out, "size=24")
}

func TestLoggerWithPrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	base := plain(&buf, LevelInfo)
	l := base.WithPrefix("inspect").WithFields("platform", 0).WithFields("device", 1)

	l.Info("device inspected", "entries", 42)

	out := buf.String()
	assert.Contains(t, out, "inspect")
	assert.Contains(t, out, "platform=0")
	assert.Contains(t, out, "device=1")
	assert.Contains(t, out, "entries=42")

	buf.Reset()
	base.Info("plain")
	assert.NotContains(t, buf.String(), "inspect")
	assert.NotContains(t, buf.String(), "platform=0")
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := plain(&buf, LevelInfo)

	l.Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	l.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, l.GetLevel())

	l.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerNoColor(t *testing.T) {
	var buf bytes.Buffer
	plain(&buf, LevelInfo).Warn("no escapes")

	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	require.NotNil(t, l)

	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
	l.SetLevel(LevelDebug)

	assert.NotNil(t, l.WithPrefix("x"))
	assert.NotNil(t, l.WithFields("k", "v"))
	assert.Equal(t, LevelInfo, l.GetLevel())
}

func TestMultiLogger(t *testing.T) {
	var console, file bytes.Buffer
	m := NewMultiLogger(plain(&console, LevelWarn), plain(&file, LevelDebug))

	m.WithPrefix("probe").Debug("kernel built", "width", 4)
	m.Warn("build log truncated")

	assert.NotContains(t, console.String(), "kernel built")
	assert.Contains(t, console.String(), "build log truncated")
	assert.Contains(t, file.String(), "kernel built")
	assert.Contains(t, file.String(), "probe")
	assert.Contains(t, file.String(), "build log truncated")

	assert.Equal(t, LevelWarn, m.GetLevel())
	m.SetLevel(LevelError)
	assert.Equal(t, LevelError, m.GetLevel())

	assert.Equal(t, LevelInfo, NewMultiLogger().GetLevel())
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinspect.log")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0644))

	l, closer, err := NewFileLogger(path, LevelDebug)
	require.NoError(t, err)
	l.Debug("retrieving", "param", "CL_DEVICE_VERSION")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "previous")
	assert.Contains(t, string(data), "CL_DEVICE_VERSION")
}

func TestFileLoggerError(t *testing.T) {
	_, _, err := NewFileLogger(filepath.Join(t.TempDir(), "missing", "x.log"), LevelInfo)
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		var buf bytes.Buffer
		opts := ConsoleOptions()
		opts.Output = &buf
		opts.NoColor = true

		l, closer, err := Setup(opts, "")
		require.NoError(t, err)
		defer closer.Close()

		l.Info("hello")
		assert.Contains(t, buf.String(), "hello")
		assert.Contains(t, buf.String(), "clinspect")
	})

	t.Run("with file", func(t *testing.T) {
		var buf bytes.Buffer
		opts := ConsoleOptions()
		opts.Output = &buf
		opts.NoColor = true
		path := filepath.Join(t.TempDir(), "run.log")

		l, closer, err := Setup(opts, path)
		require.NoError(t, err)

		l.Debug("only in file")
		require.NoError(t, closer.Close())

		assert.NotContains(t, buf.String(), "only in file")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "only in file")
	})

	t.Run("bad file", func(t *testing.T) {
		_, _, err := Setup(ConsoleOptions(), filepath.Join(t.TempDir(), "no", "dir.log"))
		assert.Error(t, err)
	})
}

func TestThreadSafety(t *testing.T) {
	var buf safeBuffer
	l := New(Options{Level: LevelDebug, Output: &buf, NoColor: true})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.WithFields("worker", n).Debug("tick", "j", j)
				if j%10 == 0 {
					l.SetLevel(LevelDebug)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.NotEmpty(t, buf.String())
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *safeBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *safeBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestLoggerInterface(t *testing.T) {
	var _ Logger = (*logger)(nil)
	var _ Logger = nopLogger{}
	var _ Logger = (*multiLogger)(nil)
}
