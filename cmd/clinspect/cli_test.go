package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/constants"
	"github.com/tungetti/clinspect/internal/errors"
	testutil "github.com/tungetti/clinspect/internal/testing"
)

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out, diag bytes.Buffer
	c := NewCLI(&out, &diag)
	c.nativeAPI = func() (cl.API, error) { return nil, errors.ErrUnsupported }
	return c, &out, &diag
}

func TestRunHelp(t *testing.T) {
	c, out, _ := newTestCLI(t)

	assert.Equal(t, 0, c.Run([]string{"--help"}))
	assert.Contains(t, out.String(), "Commands:")

	out.Reset()
	assert.Equal(t, 0, c.Run([]string{"help", "list"}))
	assert.Contains(t, out.String(), "clinspect list [flags]")
}

func TestRunVersion(t *testing.T) {
	c, out, _ := newTestCLI(t)

	assert.Equal(t, 0, c.Run([]string{"version"}))
	assert.Contains(t, out.String(), "clinspect version "+Version)
}

func TestRunBadFlags(t *testing.T) {
	c, _, diag := newTestCLI(t)

	assert.Equal(t, constants.ExitValidation.Int(), c.Run([]string{"--nope"}))
	assert.Contains(t, diag.String(), "Run 'clinspect help' for usage.")
}

func TestRunInvalidDeviceSelector(t *testing.T) {
	c, _, diag := newTestCLI(t)
	fixture := testutil.WriteFixture(t, testutil.SampleFixtureYAML)

	code := c.Run([]string{"--fixture", fixture, "-d", "first"})
	assert.Equal(t, constants.ExitValidation.Int(), code)
	assert.Contains(t, diag.String(), "devices")
}

func TestRunNoNativeBackend(t *testing.T) {
	c, out, diag := newTestCLI(t)

	assert.Equal(t, constants.ExitError.Int(), c.Run(nil))
	assert.Empty(t, out.String())
	assert.Contains(t, diag.String(), "--fixture")
}

func TestRunFixtureInspect(t *testing.T) {
	c, out, _ := newTestCLI(t)
	fixture := testutil.WriteFixture(t, testutil.SampleFixtureYAML)

	require.Equal(t, 0, c.Run([]string{"--fixture", fixture, "--no-sysfs"}))
	assert.Contains(t, out.String(), "Platform #0: Sample Platform")
	assert.Contains(t, out.String(), "Device #0: Sample CPU")
}

func TestRunFixtureList(t *testing.T) {
	c, out, _ := newTestCLI(t)
	fixture := testutil.WriteFixture(t, testutil.SampleFixtureYAML)

	require.Equal(t, 0, c.Run([]string{"list", "--fixture", fixture}))
	assert.Equal(t, "Platform #0: Sample Platform\n +-- Device #0: Sample CPU\n", out.String())
}

func TestRunFixtureFromEnv(t *testing.T) {
	c, out, _ := newTestCLI(t)
	t.Setenv("CLINSPECT_FIXTURE", testutil.WriteFixture(t, testutil.SampleFixtureYAML))

	require.Equal(t, 0, c.Run([]string{"ls"}))
	assert.Contains(t, out.String(), "Sample CPU")
}

func TestRunEnumerationFailureExitCode(t *testing.T) {
	c, _, _ := newTestCLI(t)
	fixture := testutil.WriteFixture(t, "list_error: CL_OUT_OF_RESOURCES\nplatforms: []\n")

	assert.Equal(t, constants.ExitEnumeration.Int(), c.Run([]string{"--fixture", fixture}))
}
