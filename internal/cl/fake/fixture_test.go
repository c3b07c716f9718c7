package fake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/errors"
)

const sampleFixture = `
platforms:
  - properties:
      CL_PLATFORM_NAME: {string: "Fake CL"}
      CL_PLATFORM_EXTENSIONS: {string: "cl_khr_icd"}
    devices:
      - properties:
          CL_DEVICE_NAME: {string: "Fake GPU"}
          CL_DEVICE_TYPE: {bitfield: 4}
          CL_DEVICE_MAX_COMPUTE_UNITS: {uint: 28}
          CL_DEVICE_GLOBAL_MEM_SIZE: {ulong: 8589934592}
          CL_DEVICE_MAX_WORK_GROUP_SIZE: {size: 1024}
          CL_DEVICE_MAX_WORK_ITEM_SIZES: {sizes: [1024, 1024, 64]}
          CL_DEVICE_PARTITION_PROPERTIES: {ulongs: [4230]}
          CL_DEVICE_AVAILABLE: {bool: true}
          CL_DEVICE_TOPOLOGY_AMD: {bytes: "01000000 00000000"}
          CL_DEVICE_HALF_FP_CONFIG: {error: CL_INVALID_VALUE}
          CL_DEVICE_PROFILE: {string: "FULL_PROFILE", value_error: CL_OUT_OF_RESOURCES}
        probe:
          preferred_multiple: 32
          kernels: {sum4: 64}
          fail: {build: CL_BUILD_PROGRAM_FAILURE}
          build_log: "error: oops"
`

func TestLoad(t *testing.T) {
	api, err := Load([]byte(sampleFixture))
	require.NoError(t, err)

	n, st := api.GetPlatformIDs(nil)
	require.True(t, st.OK())
	require.Equal(t, 1, n)
	p := api.platforms[0]
	require.Len(t, p.devices, 1)
	d := p.devices[0]

	size, st := api.GetPlatformInfo(p.ID(), cl.PlatformName, nil)
	require.True(t, st.OK())
	assert.Equal(t, len("Fake CL")+1, size)

	assert.Equal(t, cl.DeviceTypeGPU, d.deviceType())
	assert.Equal(t, uint64(32), d.multiple)
	assert.Equal(t, uint64(64), d.multiples["sum4"])
	assert.Equal(t, cl.BuildProgramFailure, d.faults[StageBuild])
	assert.Equal(t, "error: oops", d.buildLog)

	_, st = api.GetDeviceInfo(d.ID(), cl.DeviceHalfFPConfig, nil)
	assert.Equal(t, cl.InvalidValue, st)

	size, st = api.GetDeviceInfo(d.ID(), cl.DeviceProfile, nil)
	require.True(t, st.OK())
	_, st = api.GetDeviceInfo(d.ID(), cl.DeviceProfile, make([]byte, size))
	assert.Equal(t, cl.OutOfResources, st)

	size, st = api.GetDeviceInfo(d.ID(), cl.DeviceTopologyAMD, nil)
	require.True(t, st.OK())
	assert.Equal(t, 8, size)

	size, st = api.GetDeviceInfo(d.ID(), cl.DevicePartitionProperties, nil)
	require.True(t, st.OK())
	assert.Equal(t, 8, size)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "platforms: [\n"},
		{"unknown property", "platforms:\n  - properties:\n      CL_NOPE: {uint: 1}\n"},
		{"unknown status", "platforms:\n  - properties:\n      CL_PLATFORM_NAME: {error: CL_WHATEVER}\n"},
		{"empty value", "platforms:\n  - properties:\n      CL_PLATFORM_NAME: {}\n"},
		{"bad hex", "platforms:\n  - devices:\n      - properties:\n          CL_DEVICE_TOPOLOGY_AMD: {bytes: \"zz\"}\n"},
		{"unknown stage", "platforms:\n  - devices:\n      - probe:\n          fail: {link: CL_INVALID_VALUE}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_ListErrors(t *testing.T) {
	api, err := Load([]byte("list_error: CL_OUT_OF_HOST_MEMORY\nplatforms: []\n"))
	require.NoError(t, err)
	_, st := api.GetPlatformIDs(nil)
	assert.Equal(t, cl.OutOfHostMemory, st)

	api, err = Load([]byte("platforms:\n  - list_error: CL_INVALID_PLATFORM\n"))
	require.NoError(t, err)
	_, st = api.GetDeviceIDs(api.platforms[0].ID(), cl.DeviceTypeAll, nil)
	assert.Equal(t, cl.InvalidPlatform, st)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFixture), 0o644))

	api, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, api.platforms, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.Configuration))
}
