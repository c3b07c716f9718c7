package fake

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungetti/clinspect/internal/cl"
)

func TestAPI_PlatformListing(t *testing.T) {
	t.Run("no platforms reports platform not found", func(t *testing.T) {
		api := New()
		n, st := api.GetPlatformIDs(nil)
		assert.Equal(t, 0, n)
		assert.Equal(t, cl.PlatformNotFoundKHR, st)
	})

	t.Run("count then fill", func(t *testing.T) {
		api := New()
		p0 := api.AddPlatform()
		p1 := api.AddPlatform()

		n, st := api.GetPlatformIDs(nil)
		require.True(t, st.OK())
		require.Equal(t, 2, n)

		ids := make([]cl.PlatformID, n)
		_, st = api.GetPlatformIDs(ids)
		require.True(t, st.OK())
		assert.Equal(t, []cl.PlatformID{p0.ID(), p1.ID()}, ids)
	})

	t.Run("injected listing failure", func(t *testing.T) {
		api := New()
		api.AddPlatform()
		api.FailPlatformListing(cl.OutOfHostMemory)
		_, st := api.GetPlatformIDs(nil)
		assert.Equal(t, cl.OutOfHostMemory, st)
	})
}

func TestAPI_DeviceListing(t *testing.T) {
	api := New()
	p := api.AddPlatform()

	n, st := api.GetDeviceIDs(p.ID(), cl.DeviceTypeAll, nil)
	assert.Equal(t, 0, n)
	assert.Equal(t, cl.DeviceNotFound, st)

	gpu := p.AddDevice()
	gpu.SetUlong(cl.DeviceType, cl.DeviceTypeGPU)
	cpu := p.AddDevice()
	cpu.SetUlong(cl.DeviceType, cl.DeviceTypeCPU)

	n, st = api.GetDeviceIDs(p.ID(), cl.DeviceTypeAll, nil)
	require.True(t, st.OK())
	require.Equal(t, 2, n)
	ids := make([]cl.DeviceID, n)
	_, st = api.GetDeviceIDs(p.ID(), cl.DeviceTypeAll, ids)
	require.True(t, st.OK())
	assert.Equal(t, []cl.DeviceID{gpu.ID(), cpu.ID()}, ids)

	n, st = api.GetDeviceIDs(p.ID(), cl.DeviceTypeCPU, nil)
	require.True(t, st.OK())
	assert.Equal(t, 1, n)

	_, st = api.GetDeviceIDs(cl.PlatformID(1), cl.DeviceTypeAll, nil)
	assert.Equal(t, cl.InvalidPlatform, st)
}

func TestAPI_DeviceInfo(t *testing.T) {
	api := New()
	d := api.AddPlatform().AddDevice()
	d.SetString(cl.DeviceName, "Fake GPU")
	d.SetUint(cl.DeviceMaxComputeUnits, 28)
	d.SetError(cl.DeviceHalfFPConfig, cl.InvalidValue)
	d.SetUlong(cl.DeviceGlobalMemSize, 1<<30)
	d.SetValueError(cl.DeviceGlobalMemSize, cl.OutOfResources)

	t.Run("size then value", func(t *testing.T) {
		size, st := api.GetDeviceInfo(d.ID(), cl.DeviceName, nil)
		require.True(t, st.OK())
		require.Equal(t, len("Fake GPU")+1, size)

		buf := make([]byte, size)
		n, st := api.GetDeviceInfo(d.ID(), cl.DeviceName, buf)
		require.True(t, st.OK())
		assert.Equal(t, "Fake GPU", cl.GoString(buf[:n]))
	})

	t.Run("scalar", func(t *testing.T) {
		buf := make([]byte, 4)
		_, st := api.GetDeviceInfo(d.ID(), cl.DeviceMaxComputeUnits, buf)
		require.True(t, st.OK())
		assert.Equal(t, uint32(28), binary.NativeEndian.Uint32(buf))
	})

	t.Run("buffer too small", func(t *testing.T) {
		_, st := api.GetDeviceInfo(d.ID(), cl.DeviceName, make([]byte, 2))
		assert.Equal(t, cl.InvalidValue, st)
	})

	t.Run("missing property", func(t *testing.T) {
		_, st := api.GetDeviceInfo(d.ID(), cl.DeviceSPIRVersions, nil)
		assert.Equal(t, cl.InvalidValue, st)
	})

	t.Run("injected error", func(t *testing.T) {
		_, st := api.GetDeviceInfo(d.ID(), cl.DeviceHalfFPConfig, nil)
		assert.Equal(t, cl.InvalidValue, st)
	})

	t.Run("value phase error", func(t *testing.T) {
		size, st := api.GetDeviceInfo(d.ID(), cl.DeviceGlobalMemSize, nil)
		require.True(t, st.OK())
		assert.Equal(t, 8, size)
		_, st = api.GetDeviceInfo(d.ID(), cl.DeviceGlobalMemSize, make([]byte, size))
		assert.Equal(t, cl.OutOfResources, st)
	})

	t.Run("unknown device", func(t *testing.T) {
		_, st := api.GetDeviceInfo(cl.DeviceID(3), cl.DeviceName, nil)
		assert.Equal(t, cl.InvalidDevice, st)
	})

	t.Run("call counting", func(t *testing.T) {
		before := api.InfoCalls(cl.DeviceVendor)
		_, _ = api.GetDeviceInfo(d.ID(), cl.DeviceVendor, nil)
		_, _ = api.GetDeviceInfo(d.ID(), cl.DeviceVendor, nil)
		assert.Equal(t, before+2, api.InfoCalls(cl.DeviceVendor))
	})
}

func TestAPI_Sizes(t *testing.T) {
	api := New()
	d := api.AddPlatform().AddDevice()
	d.SetSizes(cl.DeviceMaxWorkItemSizes, 1024, 1024, 64)

	size, st := api.GetDeviceInfo(d.ID(), cl.DeviceMaxWorkItemSizes, nil)
	require.True(t, st.OK())
	assert.Equal(t, 3*cl.SizeTBytes, size)
}

func TestAPI_ProbeLifecycle(t *testing.T) {
	api := New()
	p := api.AddPlatform()
	d := p.AddDevice()
	d.SetPreferredMultiple(32)
	d.SetKernelMultiple("sum4", 64)

	ctx, st := api.CreateContext(p.ID(), d.ID())
	require.True(t, st.OK())
	prog, st := api.CreateProgramWithSource(ctx, "kernel void sum(global float *a) {}\nkernel void sum4(global float4 *a) {}")
	require.True(t, st.OK())

	_, st = api.CreateKernel(prog, "sum")
	assert.Equal(t, cl.InvalidProgramExecutable, st, "kernel before build")

	require.True(t, api.BuildProgram(prog, d.ID(), "-cl-std=CL1.1").OK())
	assert.Equal(t, []string{"-cl-std=CL1.1"}, api.BuildOptions())

	k1, st := api.CreateKernel(prog, "sum")
	require.True(t, st.OK())
	k4, st := api.CreateKernel(prog, "sum4")
	require.True(t, st.OK())
	_, st = api.CreateKernel(prog, "sum8")
	assert.Equal(t, cl.InvalidKernelName, st)

	assert.Equal(t, 4, api.Outstanding())

	buf := make([]byte, cl.SizeTBytes)
	_, st = api.GetKernelWorkGroupInfo(k1, d.ID(), cl.KernelPreferredWorkGroupSizeMultiple, buf)
	require.True(t, st.OK())
	assert.Equal(t, EncodeSizes(32), buf)
	_, st = api.GetKernelWorkGroupInfo(k4, d.ID(), cl.KernelPreferredWorkGroupSizeMultiple, buf)
	require.True(t, st.OK())
	assert.Equal(t, EncodeSizes(64), buf)

	assert.True(t, api.ReleaseKernel(k1).OK())
	assert.True(t, api.ReleaseKernel(k4).OK())
	assert.True(t, api.ReleaseProgram(prog).OK())
	assert.True(t, api.ReleaseContext(ctx).OK())
	assert.Equal(t, 0, api.Outstanding())

	assert.Equal(t, cl.InvalidKernel, api.ReleaseKernel(k1), "double release")
}

func TestAPI_StageFaults(t *testing.T) {
	tests := []struct {
		stage  Stage
		status cl.Status
	}{
		{StageContext, cl.OutOfResources},
		{StageProgram, cl.OutOfHostMemory},
		{StageBuild, cl.BuildProgramFailure},
		{StageKernel, cl.InvalidKernelName},
		{StageQuery, cl.InvalidValue},
	}
	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			api := New()
			p := api.AddPlatform()
			d := p.AddDevice()
			d.FailStage(tt.stage, tt.status)

			ctx, st := api.CreateContext(p.ID(), d.ID())
			if tt.stage == StageContext {
				assert.Equal(t, tt.status, st)
				return
			}
			prog, st := api.CreateProgramWithSource(ctx, "kernel void sum(global float *a) {}")
			if tt.stage == StageProgram {
				assert.Equal(t, tt.status, st)
				return
			}
			st = api.BuildProgram(prog, d.ID(), "")
			if tt.stage == StageBuild {
				assert.Equal(t, tt.status, st)
				return
			}
			k, st := api.CreateKernel(prog, "sum")
			if tt.stage == StageKernel {
				assert.Equal(t, tt.status, st)
				return
			}
			_, st = api.GetKernelWorkGroupInfo(k, d.ID(), cl.KernelPreferredWorkGroupSizeMultiple, make([]byte, 8))
			assert.Equal(t, tt.status, st)
		})
	}
}
