package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/cl/fake"
	"github.com/tungetti/clinspect/internal/errors"
)

func setup(t *testing.T) (*fake.API, *fake.Platform, *fake.Device) {
	t.Helper()
	api := fake.New()
	p := api.AddPlatform()
	d := p.AddDevice()
	return api, p, d
}

func TestProbe_Uniform(t *testing.T) {
	api, p, d := setup(t)
	d.SetPreferredMultiple(32)

	res := New(api).Run(p.ID(), d.ID())
	require.True(t, res.OK())
	assert.NoError(t, res.Err())
	assert.Len(t, res.Multiples, len(DefaultWidths))
	assert.Equal(t, "32", res.Display())
	assert.Equal(t, uint64(32), res.Classified().Raw)
	assert.Equal(t, 0, api.Outstanding())
}

func TestProbe_MixedWidths(t *testing.T) {
	api, p, d := setup(t)
	d.SetPreferredMultiple(32)
	d.SetKernelMultiple("sum4", 64)

	res := New(api, WithWidths([]int{1, 4})).Run(p.ID(), d.ID())
	require.True(t, res.OK())
	assert.Equal(t, "32 (float), 64 (float4)", res.Display())
	assert.Equal(t, map[string]uint64{"float": 32, "float4": 64}, res.Classified().Raw)
	assert.Equal(t, 0, api.Outstanding())
}

func TestProbe_BuildOptions(t *testing.T) {
	api, p, d := setup(t)
	New(api, WithBuildOptions("-cl-mad-enable")).Run(p.ID(), d.ID())
	assert.Equal(t, []string{"-cl-mad-enable"}, api.BuildOptions())
}

func TestProbe_FailureReleasesEverything(t *testing.T) {
	tests := []struct {
		stage  fake.Stage
		want   Stage
		status cl.Status
	}{
		{fake.StageContext, StageContext, cl.OutOfResources},
		{fake.StageProgram, StageProgram, cl.OutOfResources},
		{fake.StageBuild, StageBuild, cl.BuildProgramFailure},
		{fake.StageKernel, StageKernel, cl.InvalidKernelName},
		{fake.StageQuery, StageQuery, cl.InvalidKernel},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			api, p, d := setup(t)
			d.FailStage(tt.stage, tt.status)
			d.SetBuildLog("<source>:1:1: error: unexpected token")
			before := api.Outstanding()

			res := New(api).Run(p.ID(), d.ID())
			assert.False(t, res.OK())
			assert.Equal(t, tt.want, res.Stage)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, "<detection failed>", res.Display())
			assert.Nil(t, res.Classified().Raw)
			assert.True(t, errors.IsCode(res.Err(), errors.Probe))
			assert.Equal(t, before, api.Outstanding(), "probe leaked handles")

			if tt.want == StageBuild {
				assert.Contains(t, res.BuildLog, "unexpected token")
			} else {
				assert.Empty(t, res.BuildLog)
			}
		})
	}
}

func TestProbe_UnknownDevice(t *testing.T) {
	api, p, _ := setup(t)
	res := New(api).Run(p.ID(), cl.DeviceID(7))
	assert.Equal(t, StageContext, res.Stage)
	assert.Equal(t, 0, api.Outstanding())
}

func TestSource(t *testing.T) {
	src := Source([]int{1, 8})
	assert.Contains(t, src, "kernel void sum(global float *a")
	assert.Contains(t, src, "kernel void sum8(global float8 *a")
	assert.Equal(t, "sum16", KernelName(16))
	assert.Equal(t, "float2", TypeName(2))
}

func TestResult_EmptyDisplay(t *testing.T) {
	assert.Equal(t, "<detection failed>", Result{}.Display())
}
