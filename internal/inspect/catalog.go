package inspect

import (
	"fmt"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/extension"
	"github.com/tungetti/clinspect/internal/format"
)

// Synthetic ids of properties that are not a single API query.
const (
	IDPreferredWorkGroupMultiple = "CL_KERNEL_PREFERRED_WORK_GROUP_SIZE_MULTIPLE"
	IDTopologyNV                 = "CL_DEVICE_PCI_BUS_ID_NV"
	IDComputeCapabilityNV        = "CL_DEVICE_COMPUTE_CAPABILITY_NV"
	IDSysfsDevice                = "SYSFS_PCI_DEVICE"
	IDImage2DMaxSize             = "CL_DEVICE_IMAGE2D_MAX_SIZE"
	IDImage3DMaxSize             = "CL_DEVICE_IMAGE3D_MAX_SIZE"
	IDDeviceCount                = "PLATFORM_DEVICE_COUNT"
	IDDetectedExtensions         = "DETECTED_EXTENSIONS"
)

// PlatformCatalog lists platform properties in display order.
var PlatformCatalog = []Descriptor{
	prop(cl.PlatformName, "Platform Name", KindString, fmtString),
	prop(cl.PlatformVendor, "Platform Vendor", KindString, fmtString),
	prop(cl.PlatformVersion, "Platform Version", KindString, fmtString),
	prop(cl.PlatformProfile, "Platform Profile", KindString, fmtString),
	prop(cl.PlatformExtensions, "Platform Extensions", KindString, fmtString),
	prop(cl.PlatformICDSuffix, "Platform Extensions function suffix", KindString, fmtString).ext(extension.ICD),
}

// DeviceCatalog lists device properties in inspection order.
var DeviceCatalog = buildDeviceCatalog()

func vectorPair(name string, pref, native cl.Param, c extension.Capability) Descriptor {
	d := composite(pref.String(), "Preferred / native vector sizes "+name, computeVectorPair(pref, native))
	d.Param = pref
	if c != "" {
		d = d.ext(c).absent(format.NotAvailable)
	}
	return d
}

func buildDeviceCatalog() []Descriptor {
	var all []Descriptor
	add := func(ds []Descriptor) { all = append(all, ds...) }

	add(section(SectionIdentity,
		prop(cl.DeviceName, "Device Name", KindString, fmtString),
		prop(cl.DeviceVendor, "Device Vendor", KindString, fmtString),
		prop(cl.DeviceVendorID, "Device Vendor ID", KindUint, fmtVendorID),
		prop(cl.DeviceVersion, "Device Version", KindString, fmtString),
		prop(cl.DriverVersion, "Driver Version", KindString, fmtString),
		prop(cl.DeviceOpenCLCVersion, "Device OpenCL C Version", KindString, fmtString).since(Version11),
		prop(cl.DeviceBoardNameAMD, "Device Board Name (AMD)", KindString, fmtString).ext(extension.AMDAttributes),
		prop(cl.DeviceProfile, "Device Profile", KindString, fmtString),
	))

	add(section(SectionExtensionDetection,
		composite(IDDetectedExtensions, "Detected extensions", computeDetectedExtensions),
	))

	add(section(SectionTopology,
		prop(cl.DeviceType, "Device Type", KindBitfield, fmtFirstBit(format.DeviceTypeLabels)),
		composite(cl.DeviceTopologyAMD.String(), "Device Topology (AMD)", computeTopologyAMD).ext(extension.AMDAttributes),
		composite(IDTopologyNV, "Device Topology (NV)", computeTopologyNV).ext(extension.NVAttributes),
		composite(IDSysfsDevice, "Device PCI ID (sysfs)", computeSysfs).optional(),
	))

	add(section(SectionCompute,
		prop(cl.DeviceMaxComputeUnits, "Max compute units", KindUint, fmtNumber),
		prop(cl.DeviceSIMDPerComputeUnitAMD, "SIMD per compute unit (AMD)", KindUint, fmtNumber).ext(extension.AMDAttributes),
		prop(cl.DeviceSIMDWidthAMD, "SIMD width (AMD)", KindUint, fmtNumber).ext(extension.AMDAttributes),
		prop(cl.DeviceSIMDInstructionWidthAMD, "SIMD instruction width (AMD)", KindUint, fmtNumber).ext(extension.AMDAttributes),
		prop(cl.DeviceMaxClockFrequency, "Max clock frequency", KindUint, fmtUnit("MHz")),
		composite(IDComputeCapabilityNV, "Compute Capability (NV)", computeComputeCapability).ext(extension.NVAttributes),
	))

	add(section(SectionPartitioning,
		prop(cl.DevicePartitionMaxSubDevices, "Device Partition max sub-devices", KindUint, fmtNumber).since(Version12),
		prop(cl.DevicePartitionProperties, "Supported partition types", KindList, fmtList(format.PartitionLabels, "None")).since(Version12),
		prop(cl.DevicePartitionAffinityDomain, "Supported affinity domains", KindBitfield, fmtFlags(format.AffinityDomainFlags, "None")).since(Version12),
		prop(cl.DevicePartitionTypesEXT, "Supported partition types (ext)", KindList, fmtList(format.PartitionEXTLabels, "None")).ext(extension.Fission),
		prop(cl.DeviceAffinityDomainsEXT, "Supported affinity domains (ext)", KindList, fmtList(format.AffinityDomainEXTLabels, "None")).ext(extension.Fission),
	))

	add(section(SectionWorkGroup,
		prop(cl.DeviceMaxWorkItemDimensions, "Max work item dimensions", KindUint, fmtNumber),
		prop(cl.DeviceMaxWorkItemSizes, "Max work item sizes", KindSizes, fmtSizes),
		prop(cl.DeviceMaxWorkGroupSize, "Max work group size", KindSize, fmtNumber),
		composite(IDPreferredWorkGroupMultiple, "Preferred work group size multiple", computeProbe).since(Version11),
		prop(cl.DeviceWarpSizeNV, "Warp size (NV)", KindUint, fmtNumber).ext(extension.NVAttributes),
		prop(cl.DeviceWavefrontWidthAMD, "Wavefront width (AMD)", KindUint, fmtNumber).ext(extension.AMDAttributes),
		prop(cl.DeviceRegistersPerBlockNV, "Registers per block (NV)", KindUint, fmtNumber).ext(extension.NVAttributes),
	))

	add(section(SectionVectorWidths,
		vectorPair("char", cl.DevicePreferredVectorWidthChar, cl.DeviceNativeVectorWidthChar, ""),
		vectorPair("short", cl.DevicePreferredVectorWidthShort, cl.DeviceNativeVectorWidthShort, ""),
		vectorPair("int", cl.DevicePreferredVectorWidthInt, cl.DeviceNativeVectorWidthInt, ""),
		vectorPair("long", cl.DevicePreferredVectorWidthLong, cl.DeviceNativeVectorWidthLong, ""),
		vectorPair("half", cl.DevicePreferredVectorWidthHalf, cl.DeviceNativeVectorWidthHalf, extension.FP16).since(Version11),
		vectorPair("float", cl.DevicePreferredVectorWidthFloat, cl.DeviceNativeVectorWidthFloat, ""),
		vectorPair("double", cl.DevicePreferredVectorWidthDbl, cl.DeviceNativeVectorWidthDouble, extension.FP64),
	))

	add(section(SectionFloatingPoint,
		prop(cl.DeviceHalfFPConfig, "Half-precision Floating-point support", KindBitfield, fmtFlags(format.FPConfigFlags, format.None)).ext(extension.FP16),
		prop(cl.DeviceSingleFPConfig, "Single-precision Floating-point support", KindBitfield, fmtFlags(format.FPConfigFlags, format.None)),
		prop(cl.DeviceDoubleFPConfig, "Double-precision Floating-point support", KindBitfield, fmtFlags(format.FPConfigFlags, format.None)).ext(extension.FP64),
	))

	add(section(SectionMemory,
		prop(cl.DeviceAddressBits, "Address bits", KindUint, fmtNumber),
		prop(cl.DeviceEndianLittle, "Little-Endian", KindBool, fmtBool),
		prop(cl.DeviceGlobalMemSize, "Global memory size", KindUlong, fmtBytes),
		prop(cl.DeviceGlobalFreeMemoryAMD, "Global free memory (AMD)", KindSizes, fmtFreeMemory).ext(extension.AMDAttributes),
		prop(cl.DeviceGlobalMemChannelsAMD, "Global memory channels (AMD)", KindUint, fmtNumber).ext(extension.AMDAttributes),
		prop(cl.DeviceGlobalMemChannelBanksAMD, "Global memory banks per channel (AMD)", KindUint, fmtNumber).ext(extension.AMDAttributes),
		prop(cl.DeviceGlobalMemChannelBankWidthAMD, "Global memory bank width (AMD)", KindUint, fmtUnit(" bytes")).ext(extension.AMDAttributes),
		prop(cl.DeviceErrorCorrectionSupport, "Error Correction support", KindBool, fmtBool),
		prop(cl.DeviceMaxMemAllocSize, "Max memory allocation", KindUlong, fmtBytes),
		prop(cl.DeviceHostUnifiedMemory, "Unified memory for Host and Device", KindBool, fmtBool).since(Version11),
		prop(cl.DeviceIntegratedMemoryNV, "Integrated memory (NV)", KindBool, fmtBool).ext(extension.NVAttributes),
		prop(cl.DeviceMinDataTypeAlignSize, "Minimum alignment for any data type", KindUint, fmtUnit(" bytes")),
		prop(cl.DeviceMemBaseAddrAlign, "Alignment of base address", KindUint, fmtUnit(" bits")),
		prop(cl.DeviceGlobalMemCacheType, "Global Memory cache type", KindUint, fmtEnum(format.CacheTypeLabels)),
		prop(cl.DeviceGlobalMemCacheSize, "Global Memory cache size", KindUlong, fmtBytes),
		prop(cl.DeviceGlobalMemCachelineSize, "Global Memory cache line", KindUint, fmtUnit(" bytes")),
		prop(cl.DeviceMaxConstantBufferSize, "Max constant buffer size", KindUlong, fmtBytes),
		prop(cl.DeviceMaxConstantArgs, "Max number of constant args", KindUint, fmtNumber),
		prop(cl.DeviceLocalMemType, "Local memory type", KindUint, fmtEnum(format.LocalMemTypeLabels)),
		prop(cl.DeviceLocalMemSize, "Local memory size", KindUlong, fmtBytes),
		prop(cl.DeviceLocalMemSizePerCUAMD, "Local memory size per CU (AMD)", KindUlong, fmtBytes).ext(extension.AMDAttributes),
		prop(cl.DeviceLocalMemBanksAMD, "Local memory banks (AMD)", KindUint, fmtNumber).ext(extension.AMDAttributes),
		prop(cl.DeviceMaxParameterSize, "Max size of kernel argument", KindSize, fmtBytes),
		prop(cl.DeviceMaxAtomicCountersEXT, "Max number of atomic counters", KindUint, fmtNumber).ext(extension.AtomicCounters),
		prop(cl.DevicePrintfBufferSize, "printf() buffer size", KindSize, fmtBytes).since(Version12),
	))

	add(section(SectionImage,
		prop(cl.DeviceImageSupport, "Image support", KindBool, fmtBool),
		prop(cl.DeviceMaxSamplers, "Max number of samplers per kernel", KindUint, fmtNumber),
		prop(cl.DeviceImageMaxBufferSize, "Max size for 1D images from buffer", KindSize, fmtUnit(" pixels")).since(Version12),
		prop(cl.DeviceImageMaxArraySize, "Max 1D or 2D image array size", KindSize, fmtUnit(" images")).since(Version12),
		prop(cl.DeviceImageBaseAddressAlignment, "Base address alignment for 2D image buffers", KindUint, fmtUnit(" bytes")).ext(extension.Image2DFromBuffer),
		prop(cl.DeviceImagePitchAlignment, "Pitch alignment for 2D image buffers", KindUint, fmtUnit(" bytes")).ext(extension.Image2DFromBuffer),
		composite(IDImage2DMaxSize, "Max 2D image size", computeImageSize(cl.DeviceImage2DMaxWidth, cl.DeviceImage2DMaxHeight)),
		composite(IDImage3DMaxSize, "Max 3D image size", computeImageSize(cl.DeviceImage3DMaxWidth, cl.DeviceImage3DMaxHeight, cl.DeviceImage3DMaxDepth)),
		prop(cl.DeviceMaxReadImageArgs, "Max number of read image args", KindUint, fmtNumber),
		prop(cl.DeviceMaxWriteImageArgs, "Max number of write image args", KindUint, fmtNumber),
	))

	add(section(SectionQueue,
		prop(cl.DeviceQueueProperties, "Queue properties", KindBitfield, fmtFlags(format.QueueFlags, format.None)),
		prop(cl.DeviceProfilingTimerResolution, "Profiling timer resolution", KindSize, fmtUnit("ns")),
		prop(cl.DeviceProfilingTimerOffsetAMD, "Profiling timer offset since Epoch (AMD)", KindUlong, fmtUnit("ns")).ext(extension.AMDAttributes),
		prop(cl.DeviceExecutionCapabilities, "Execution capabilities", KindBitfield, fmtFlags(format.ExecFlags, format.None)),
		prop(cl.DeviceKernelExecTimeoutNV, "Kernel execution timeout (NV)", KindBool, fmtBool).ext(extension.NVAttributes),
		prop(cl.DeviceGPUOverlapNV, "Concurrent copy and kernel execution (NV)", KindBool, fmtBool).ext(extension.NVAttributes),
		prop(cl.DevicePreferredInteropUserSync, "Prefer user sync for interop", KindBool, fmtBool).since(Version12),
		prop(cl.DeviceBuiltInKernels, "Built-in kernels", KindString, fmtString).since(Version12),
		prop(cl.DeviceSPIRVersions, "SPIR versions", KindString, fmtString).ext(extension.SPIR),
	))

	add(section(SectionAvailability,
		prop(cl.DeviceAvailable, "Device Available", KindBool, fmtBool),
		prop(cl.DeviceCompilerAvailable, "Compiler Available", KindBool, fmtBool),
		prop(cl.DeviceLinkerAvailable, "Linker Available", KindBool, fmtBool).since(Version12),
	))

	add(section(SectionExtensions,
		prop(cl.DeviceExtensions, "Device Extensions", KindString, fmtString),
	))

	return all
}

// Lookup returns the device descriptor with the given id.
func Lookup(id string) (Descriptor, bool) {
	for _, d := range DeviceCatalog {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.ID)
}
