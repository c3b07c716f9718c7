package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/config"
	"github.com/tungetti/clinspect/internal/constants"
	"github.com/tungetti/clinspect/internal/errors"
	"github.com/tungetti/clinspect/internal/render"
	testutil "github.com/tungetti/clinspect/internal/testing"
)

func fixtureConfig(t *testing.T, doc string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Fixture = testutil.WriteFixture(t, doc)
	cfg.Sysfs.Enabled = false
	return cfg
}

func newTestApp(stdout, stderr *bytes.Buffer) *App {
	return New(Options{
		Version: "1.0.0",
		Stdout:  stdout,
		Stderr:  stderr,
		NativeAPI: func() (cl.API, error) {
			return nil, errors.ErrUnsupported
		},
	})
}

// ============================================================================
// Container Tests
// ============================================================================

func TestContainerValidate(t *testing.T) {
	c := NewContainer()
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")

	c.SetConfig(config.DefaultConfig())
	assert.Contains(t, c.Validate().Error(), "logger")

	c.SetLogger(testutil.NewMockLogger())
	assert.Contains(t, c.Validate().Error(), "capability API")

	api, _ := testutil.NewSingleDeviceAPI(testutil.CPUDevice())
	c.SetAPI(api)
	assert.NoError(t, c.Validate())
	assert.Same(t, api, c.GetAPI())
}

// ============================================================================
// Lifecycle Tests
// ============================================================================

func TestLifecycleShutdownOrder(t *testing.T) {
	l := NewLifecycle(time.Second)
	var order []int
	for i := 1; i <= 3; i++ {
		n := i
		l.OnShutdown(func(context.Context) error {
			order = append(order, n)
			return nil
		})
	}

	assert.False(t, l.IsShuttingDown())
	require.NoError(t, l.Shutdown())
	assert.True(t, l.IsShuttingDown())
	assert.Equal(t, []int{3, 2, 1}, order)

	require.NoError(t, l.Shutdown())
	assert.Len(t, order, 3, "second shutdown is a no-op")
}

func TestLifecycleShutdownError(t *testing.T) {
	l := NewLifecycle(time.Second)
	l.OnShutdown(func(context.Context) error { return errors.New(errors.Unknown, "first") })
	l.OnShutdown(func(context.Context) error { return nil })

	err := l.Shutdown()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
}

// ============================================================================
// Initialization Tests
// ============================================================================

func TestInitializeWithFixture(t *testing.T) {
	var out, diag bytes.Buffer
	a := newTestApp(&out, &diag)
	defer a.Shutdown()

	require.NoError(t, a.Initialize(fixtureConfig(t, testutil.SampleFixtureYAML)))
	assert.NotNil(t, a.Container().GetAPI())
	assert.NotNil(t, a.Container().GetLogger())
}

func TestInitializeInvalidConfig(t *testing.T) {
	var out, diag bytes.Buffer
	a := newTestApp(&out, &diag)

	cfg := config.DefaultConfig()
	cfg.Output = "xml"

	err := a.Initialize(cfg)
	require.Error(t, err)
	assert.Equal(t, constants.ExitValidation, ExitCode(err))
}

func TestInitializeWithoutNativeBackend(t *testing.T) {
	var out, diag bytes.Buffer
	a := newTestApp(&out, &diag)

	cfg := config.DefaultConfig()
	err := a.Initialize(cfg)
	testutil.AssertErrorCode(t, err, errors.Unsupported)
	testutil.AssertErrorContains(t, err, "--fixture")
	assert.Equal(t, constants.ExitError, ExitCode(err))
}

func TestInitializeBadFixture(t *testing.T) {
	var out, diag bytes.Buffer
	a := newTestApp(&out, &diag)

	cfg := fixtureConfig(t, "platforms: [")
	testutil.AssertErrorCode(t, a.Initialize(cfg), errors.Configuration)
}

func TestInitializeLogFile(t *testing.T) {
	var out, diag bytes.Buffer
	a := newTestApp(&out, &diag)

	cfg := fixtureConfig(t, testutil.SampleFixtureYAML)
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")

	require.NoError(t, a.Initialize(cfg))
	require.NoError(t, a.Run(ModeInspect))
	require.NoError(t, a.Shutdown())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "starting")
	assert.Contains(t, string(data), "enumerated platforms")
	assert.NotContains(t, diag.String(), "enumerated platforms", "console stays at info")
}

// ============================================================================
// Run Tests
// ============================================================================

func TestRunInspectHuman(t *testing.T) {
	var out, diag bytes.Buffer
	a := newTestApp(&out, &diag)
	defer a.Shutdown()

	require.NoError(t, a.Initialize(fixtureConfig(t, testutil.SampleFixtureYAML)))
	require.NoError(t, a.Run(ModeInspect))

	report := out.String()
	assert.Contains(t, report, "Platform #0: Sample Platform")
	assert.Contains(t, report, "Device #0: Sample CPU")
	assert.Contains(t, report, "Sample Vendor")
	assert.Contains(t, report, "8192x8192x8192")
	assert.NotContains(t, report, "\x1b[", "no colour without a terminal")
}

func TestRunInspectJSON(t *testing.T) {
	var out, diag bytes.Buffer
	a := newTestApp(&out, &diag)
	defer a.Shutdown()

	cfg := fixtureConfig(t, testutil.SampleFixtureYAML)
	cfg.Output = render.FormatJSON
	cfg.Properties = []string{"CL_DEVICE_NAME"}

	require.NoError(t, a.Initialize(cfg))
	require.NoError(t, a.Run(ModeInspect))

	var doc render.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	require.Len(t, doc.Platforms, 1)
	require.Len(t, doc.Platforms[0].Devices, 1)

	props := doc.Platforms[0].Devices[0].Properties
	require.Len(t, props, 1)
	assert.Equal(t, "CL_DEVICE_NAME", props[0].Key)
	assert.Equal(t, "Sample CPU", props[0].Display)
}

func TestRunList(t *testing.T) {
	var out, diag bytes.Buffer
	a := newTestApp(&out, &diag)
	defer a.Shutdown()

	require.NoError(t, a.Initialize(fixtureConfig(t, testutil.SampleFixtureYAML)))
	require.NoError(t, a.Run(ModeList))

	assert.Equal(t, "Platform #0: Sample Platform\n +-- Device #0: Sample CPU\n", out.String())
}

func TestRunEnumerationFailure(t *testing.T) {
	var out, diag bytes.Buffer
	a := newTestApp(&out, &diag)
	defer a.Shutdown()

	require.NoError(t, a.Initialize(fixtureConfig(t, "list_error: CL_OUT_OF_RESOURCES\nplatforms: []\n")))

	err := a.Run(ModeInspect)
	require.Error(t, err)
	assert.Equal(t, constants.ExitEnumeration, ExitCode(err))
	assert.Empty(t, out.String())
	assert.Contains(t, diag.String(), "inspection failed")
}

func TestRunWithoutInitialize(t *testing.T) {
	var out, diag bytes.Buffer
	err := newTestApp(&out, &diag).Run(ModeInspect)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.Configuration))
}

func TestHandlePanic(t *testing.T) {
	var out, diag bytes.Buffer
	a := newTestApp(&out, &diag)

	err := a.handlePanic("boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: boom")
	assert.Contains(t, diag.String(), "PANIC: boom")
}

// ============================================================================
// Exit Code Tests
// ============================================================================

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected constants.ExitCode
	}{
		{"success", nil, constants.ExitSuccess},
		{"enumeration", errors.New(errors.Enumeration, "x"), constants.ExitEnumeration},
		{"out of memory", errors.ErrOutOfMemory, constants.ExitOutOfMemory},
		{"validation", errors.New(errors.Validation, "x"), constants.ExitValidation},
		{"configuration", errors.New(errors.Configuration, "x"), constants.ExitValidation},
		{"wrapped", errors.Wrap(errors.Unknown, "outer", errors.ErrOutOfMemory), constants.ExitError},
		{"plain", os.ErrNotExist, constants.ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}
