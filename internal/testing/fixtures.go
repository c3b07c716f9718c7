package testing

import (
	"strings"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/cl/fake"
	"github.com/tungetti/clinspect/internal/topology"
)

// ============================================================================
// Extension strings - as reported by real drivers
// ============================================================================

// NVIDIAExtensions is a device extension string of an NVIDIA GPU.
const NVIDIAExtensions = "cl_khr_global_int32_base_atomics cl_khr_global_int32_extended_atomics " +
	"cl_khr_local_int32_base_atomics cl_khr_local_int32_extended_atomics cl_khr_fp64 " +
	"cl_khr_icd cl_khr_byte_addressable_store cl_nv_compiler_options " +
	"cl_nv_device_attribute_query cl_nv_pragma_unroll cl_khr_gl_sharing"

// AMDExtensions is a device extension string of an AMD GPU.
const AMDExtensions = "cl_khr_fp64 cl_amd_fp64 cl_khr_global_int32_base_atomics " +
	"cl_khr_fp16 cl_ext_atomic_counters_32 cl_amd_device_attribute_query " +
	"cl_khr_image2d_from_buffer cl_khr_spir cl_khr_icd"

// CPUExtensions is a device extension string of a CPU device without
// double precision.
const CPUExtensions = "cl_khr_global_int32_base_atomics cl_khr_byte_addressable_store " +
	"cl_ext_device_fission cl_khr_icd"

// ============================================================================
// Device fixtures
// ============================================================================

// DeviceFixture describes a simulated device.
type DeviceFixture struct {
	Name       string
	Vendor     string
	VendorID   uint32
	Version    string
	Driver     string
	Extensions string
	Type       uint64
	Address    topology.Address
}

// NVIDIAGPU returns a fixture of an NVIDIA discrete GPU.
func NVIDIAGPU() DeviceFixture {
	return DeviceFixture{
		Name:       "NVIDIA GeForce RTX 4090",
		Vendor:     "NVIDIA Corporation",
		VendorID:   0x10de,
		Version:    "OpenCL 3.0 CUDA",
		Driver:     "550.54.14",
		Extensions: NVIDIAExtensions,
		Type:       cl.DeviceTypeGPU,
		Address:    topology.Address{Bus: 1},
	}
}

// AMDGPU returns a fixture of an AMD discrete GPU.
func AMDGPU() DeviceFixture {
	return DeviceFixture{
		Name:       "gfx1030",
		Vendor:     "Advanced Micro Devices, Inc.",
		VendorID:   0x1002,
		Version:    "OpenCL 2.0 AMD-APP (3513.0)",
		Driver:     "3513.0 (HSA1.1,LC)",
		Extensions: AMDExtensions,
		Type:       cl.DeviceTypeGPU,
		Address:    topology.Address{Bus: 3},
	}
}

// CPUDevice returns a fixture of a 1.2 CPU device.
func CPUDevice() DeviceFixture {
	return DeviceFixture{
		Name:       "Intel(R) Core(TM) i7-8700 CPU @ 3.20GHz",
		Vendor:     "Intel(R) Corporation",
		VendorID:   0x8086,
		Version:    "OpenCL 1.2 (Build 37)",
		Driver:     "18.1.0.0920",
		Extensions: CPUExtensions,
		Type:       cl.DeviceTypeCPU,
	}
}

// PopulatePlatform sets the platform properties.
func PopulatePlatform(p *fake.Platform, name, vendor string) {
	p.SetString(cl.PlatformName, name)
	p.SetString(cl.PlatformVendor, vendor)
	p.SetString(cl.PlatformVersion, "OpenCL 3.0")
	p.SetString(cl.PlatformProfile, "FULL_PROFILE")
	p.SetString(cl.PlatformExtensions, "cl_khr_icd cl_khr_fp64")
	p.SetString(cl.PlatformICDSuffix, "FAKE")
}

// PopulateDevice sets every property the device may legally be asked for:
// the core properties plus the vendor blocks its extension string enables.
// Values are those of a mid-range GPU.
func PopulateDevice(d *fake.Device, f DeviceFixture) {
	d.SetString(cl.DeviceName, f.Name)
	d.SetString(cl.DeviceVendor, f.Vendor)
	d.SetUint(cl.DeviceVendorID, f.VendorID)
	d.SetString(cl.DeviceVersion, f.Version)
	d.SetString(cl.DriverVersion, f.Driver)
	d.SetString(cl.DeviceOpenCLCVersion, "OpenCL C 1.2")
	d.SetString(cl.DeviceProfile, "FULL_PROFILE")
	d.SetString(cl.DeviceExtensions, f.Extensions)
	d.SetUlong(cl.DeviceType, f.Type)

	d.SetUint(cl.DeviceMaxComputeUnits, 64)
	d.SetUint(cl.DeviceMaxClockFrequency, 2520)

	d.SetUint(cl.DevicePartitionMaxSubDevices, 0)
	d.SetUlongs(cl.DevicePartitionProperties, 0)
	d.SetUlong(cl.DevicePartitionAffinityDomain, 0)

	d.SetUint(cl.DeviceMaxWorkItemDimensions, 3)
	d.SetSizes(cl.DeviceMaxWorkItemSizes, 1024, 1024, 64)
	d.SetSize(cl.DeviceMaxWorkGroupSize, 1024)

	for _, p := range []cl.Param{
		cl.DevicePreferredVectorWidthChar, cl.DevicePreferredVectorWidthShort,
		cl.DevicePreferredVectorWidthInt, cl.DevicePreferredVectorWidthLong,
		cl.DevicePreferredVectorWidthFloat, cl.DevicePreferredVectorWidthDbl,
		cl.DevicePreferredVectorWidthHalf,
		cl.DeviceNativeVectorWidthChar, cl.DeviceNativeVectorWidthShort,
		cl.DeviceNativeVectorWidthInt, cl.DeviceNativeVectorWidthLong,
		cl.DeviceNativeVectorWidthFloat, cl.DeviceNativeVectorWidthDouble,
		cl.DeviceNativeVectorWidthHalf,
	} {
		d.SetUint(p, 1)
	}

	d.SetUlong(cl.DeviceSingleFPConfig, cl.FPDenorm|cl.FPInfNaN|cl.FPRoundToNearest|cl.FPFMA)

	d.SetUint(cl.DeviceAddressBits, 64)
	d.SetBool(cl.DeviceEndianLittle, true)
	d.SetUlong(cl.DeviceGlobalMemSize, 24<<30)
	d.SetBool(cl.DeviceErrorCorrectionSupport, false)
	d.SetUlong(cl.DeviceMaxMemAllocSize, 6<<30)
	d.SetBool(cl.DeviceHostUnifiedMemory, false)
	d.SetUint(cl.DeviceMinDataTypeAlignSize, 128)
	d.SetUint(cl.DeviceMemBaseAddrAlign, 4096)
	d.SetUint(cl.DeviceGlobalMemCacheType, cl.ReadWriteCache)
	d.SetUlong(cl.DeviceGlobalMemCacheSize, 1<<20)
	d.SetUint(cl.DeviceGlobalMemCachelineSize, 128)
	d.SetUlong(cl.DeviceMaxConstantBufferSize, 64<<10)
	d.SetUint(cl.DeviceMaxConstantArgs, 9)
	d.SetUint(cl.DeviceLocalMemType, cl.LocalMemLocal)
	d.SetUlong(cl.DeviceLocalMemSize, 48<<10)
	d.SetSize(cl.DeviceMaxParameterSize, 4352)
	d.SetSize(cl.DevicePrintfBufferSize, 1<<20)

	d.SetBool(cl.DeviceImageSupport, true)
	d.SetUint(cl.DeviceMaxSamplers, 32)
	d.SetSize(cl.DeviceImageMaxBufferSize, 1<<27)
	d.SetSize(cl.DeviceImageMaxArraySize, 2048)
	d.SetSize(cl.DeviceImage2DMaxWidth, 32768)
	d.SetSize(cl.DeviceImage2DMaxHeight, 32768)
	d.SetSize(cl.DeviceImage3DMaxWidth, 16384)
	d.SetSize(cl.DeviceImage3DMaxHeight, 16384)
	d.SetSize(cl.DeviceImage3DMaxDepth, 16384)
	d.SetUint(cl.DeviceMaxReadImageArgs, 256)
	d.SetUint(cl.DeviceMaxWriteImageArgs, 32)

	d.SetUlong(cl.DeviceQueueProperties, cl.QueueOutOfOrderExecModeEnable|cl.QueueProfilingEnable)
	d.SetSize(cl.DeviceProfilingTimerResolution, 1000)
	d.SetUlong(cl.DeviceExecutionCapabilities, cl.ExecKernel)
	d.SetBool(cl.DevicePreferredInteropUserSync, false)
	d.SetString(cl.DeviceBuiltInKernels, "")

	d.SetBool(cl.DeviceAvailable, true)
	d.SetBool(cl.DeviceCompilerAvailable, true)
	d.SetBool(cl.DeviceLinkerAvailable, true)

	if strings.Contains(f.Extensions, "cl_khr_fp64") {
		d.SetUlong(cl.DeviceDoubleFPConfig, cl.FPDenorm|cl.FPInfNaN|cl.FPRoundToNearest|cl.FPFMA)
	}
	if strings.Contains(f.Extensions, "cl_khr_fp16") {
		d.SetUlong(cl.DeviceHalfFPConfig, cl.FPInfNaN|cl.FPRoundToNearest)
	}
	if strings.Contains(f.Extensions, "cl_nv_device_attribute_query") {
		d.SetUint(cl.DeviceComputeCapabilityMajorNV, 8)
		d.SetUint(cl.DeviceComputeCapabilityMinorNV, 9)
		d.SetUint(cl.DeviceRegistersPerBlockNV, 65536)
		d.SetUint(cl.DeviceWarpSizeNV, 32)
		d.SetBool(cl.DeviceGPUOverlapNV, true)
		d.SetBool(cl.DeviceKernelExecTimeoutNV, false)
		d.SetBool(cl.DeviceIntegratedMemoryNV, false)
		d.SetUint(cl.DevicePCIBusIDNV, uint32(f.Address.Bus))
		d.SetUint(cl.DevicePCISlotIDNV, uint32(f.Address.Device)<<3|uint32(f.Address.Function))
		d.SetUint(cl.DevicePCIDomainIDNV, f.Address.Domain)
	}
	if strings.Contains(f.Extensions, "cl_amd_device_attribute_query") {
		d.SetString(cl.DeviceBoardNameAMD, "AMD Radeon RX 6800 XT")
		d.SetBytes(cl.DeviceTopologyAMD, topology.EncodeAMD(f.Address))
		d.SetUint(cl.DeviceSIMDPerComputeUnitAMD, 4)
		d.SetUint(cl.DeviceSIMDWidthAMD, 8)
		d.SetUint(cl.DeviceSIMDInstructionWidthAMD, 1)
		d.SetUint(cl.DeviceWavefrontWidthAMD, 32)
		d.SetSizes(cl.DeviceGlobalFreeMemoryAMD, 16<<20, 16<<20)
		d.SetUint(cl.DeviceGlobalMemChannelsAMD, 8)
		d.SetUint(cl.DeviceGlobalMemChannelBanksAMD, 4)
		d.SetUint(cl.DeviceGlobalMemChannelBankWidthAMD, 256)
		d.SetUlong(cl.DeviceLocalMemSizePerCUAMD, 64<<10)
		d.SetUint(cl.DeviceLocalMemBanksAMD, 32)
		d.SetUlong(cl.DeviceProfilingTimerOffsetAMD, 1700000000000000000)
	}
	if strings.Contains(f.Extensions, "cl_ext_atomic_counters") {
		d.SetUint(cl.DeviceMaxAtomicCountersEXT, 8)
	}
	if strings.Contains(f.Extensions, "cl_khr_image2d_from_buffer") {
		d.SetUint(cl.DeviceImageBaseAddressAlignment, 256)
		d.SetUint(cl.DeviceImagePitchAlignment, 256)
	}
	if strings.Contains(f.Extensions, "cl_khr_spir") {
		d.SetString(cl.DeviceSPIRVersions, "1.2")
	}
	if strings.Contains(f.Extensions, "cl_ext_device_fission") {
		d.SetUlongs(cl.DevicePartitionTypesEXT, cl.PartitionEquallyEXT, cl.PartitionByCountsEXT, 0)
		d.SetUlongs(cl.DeviceAffinityDomainsEXT, cl.AffinityDomainNUMAEXT, 0)
	}
}

// NewSingleDeviceAPI returns a simulated API with one platform holding one
// populated device.
func NewSingleDeviceAPI(f DeviceFixture) (*fake.API, *fake.Device) {
	api := fake.New()
	p := api.AddPlatform()
	PopulatePlatform(p, "Fake Platform", "Fake Vendor")
	d := p.AddDevice()
	PopulateDevice(d, f)
	return api, d
}

// ============================================================================
// Fixture documents
// ============================================================================

// SampleFixtureYAML is a fixture document with one platform and a CPU
// device, as accepted by fake.Load.
const SampleFixtureYAML = `platforms:
  - properties:
      CL_PLATFORM_NAME: {string: "Sample Platform"}
      CL_PLATFORM_VENDOR: {string: "Sample Vendor"}
      CL_PLATFORM_VERSION: {string: "OpenCL 1.2"}
      CL_PLATFORM_PROFILE: {string: "FULL_PROFILE"}
      CL_PLATFORM_EXTENSIONS: {string: "cl_khr_icd"}
      CL_PLATFORM_ICD_SUFFIX_KHR: {string: "SMP"}
    devices:
      - properties:
          CL_DEVICE_NAME: {string: "Sample CPU"}
          CL_DEVICE_VENDOR: {string: "Sample Vendor"}
          CL_DEVICE_VERSION: {string: "OpenCL 1.2"}
          CL_DEVICE_EXTENSIONS: {string: "cl_khr_icd"}
          CL_DEVICE_TYPE: {bitfield: 2}
          CL_DEVICE_MAX_COMPUTE_UNITS: {uint: 8}
          CL_DEVICE_GLOBAL_MEM_SIZE: {ulong: 17179869184}
          CL_DEVICE_MAX_WORK_ITEM_SIZES: {sizes: [8192, 8192, 8192]}
        probe:
          preferred_multiple: 128
`
