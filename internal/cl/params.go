package cl

import "fmt"

// Param identifies a platform, device or kernel property.
type Param uint32

// Platform properties.
const (
	PlatformProfile    Param = 0x0900
	PlatformVersion    Param = 0x0901
	PlatformName       Param = 0x0902
	PlatformVendor     Param = 0x0903
	PlatformExtensions Param = 0x0904
	PlatformICDSuffix  Param = 0x0920
)

// Core device properties.
const (
	DeviceType                      Param = 0x1000
	DeviceVendorID                  Param = 0x1001
	DeviceMaxComputeUnits           Param = 0x1002
	DeviceMaxWorkItemDimensions     Param = 0x1003
	DeviceMaxWorkGroupSize          Param = 0x1004
	DeviceMaxWorkItemSizes          Param = 0x1005
	DevicePreferredVectorWidthChar  Param = 0x1006
	DevicePreferredVectorWidthShort Param = 0x1007
	DevicePreferredVectorWidthInt   Param = 0x1008
	DevicePreferredVectorWidthLong  Param = 0x1009
	DevicePreferredVectorWidthFloat Param = 0x100A
	DevicePreferredVectorWidthDbl   Param = 0x100B
	DeviceMaxClockFrequency         Param = 0x100C
	DeviceAddressBits               Param = 0x100D
	DeviceMaxReadImageArgs          Param = 0x100E
	DeviceMaxWriteImageArgs         Param = 0x100F
	DeviceMaxMemAllocSize           Param = 0x1010
	DeviceImage2DMaxWidth           Param = 0x1011
	DeviceImage2DMaxHeight          Param = 0x1012
	DeviceImage3DMaxWidth           Param = 0x1013
	DeviceImage3DMaxHeight          Param = 0x1014
	DeviceImage3DMaxDepth           Param = 0x1015
	DeviceImageSupport              Param = 0x1016
	DeviceMaxParameterSize          Param = 0x1017
	DeviceMaxSamplers               Param = 0x1018
	DeviceMemBaseAddrAlign          Param = 0x1019
	DeviceMinDataTypeAlignSize      Param = 0x101A
	DeviceSingleFPConfig            Param = 0x101B
	DeviceGlobalMemCacheType        Param = 0x101C
	DeviceGlobalMemCachelineSize    Param = 0x101D
	DeviceGlobalMemCacheSize        Param = 0x101E
	DeviceGlobalMemSize             Param = 0x101F
	DeviceMaxConstantBufferSize     Param = 0x1020
	DeviceMaxConstantArgs           Param = 0x1021
	DeviceLocalMemType              Param = 0x1022
	DeviceLocalMemSize              Param = 0x1023
	DeviceErrorCorrectionSupport    Param = 0x1024
	DeviceProfilingTimerResolution  Param = 0x1025
	DeviceEndianLittle              Param = 0x1026
	DeviceAvailable                 Param = 0x1027
	DeviceCompilerAvailable         Param = 0x1028
	DeviceExecutionCapabilities     Param = 0x1029
	DeviceQueueProperties           Param = 0x102A
	DeviceName                      Param = 0x102B
	DeviceVendor                    Param = 0x102C
	DriverVersion                   Param = 0x102D
	DeviceProfile                   Param = 0x102E
	DeviceVersion                   Param = 0x102F
	DeviceExtensions                Param = 0x1030
	DevicePlatform                  Param = 0x1031
	DeviceDoubleFPConfig            Param = 0x1032
	DeviceHalfFPConfig              Param = 0x1033
	DevicePreferredVectorWidthHalf  Param = 0x1034
	DeviceHostUnifiedMemory         Param = 0x1035
	DeviceNativeVectorWidthChar     Param = 0x1036
	DeviceNativeVectorWidthShort    Param = 0x1037
	DeviceNativeVectorWidthInt      Param = 0x1038
	DeviceNativeVectorWidthLong     Param = 0x1039
	DeviceNativeVectorWidthFloat    Param = 0x103A
	DeviceNativeVectorWidthDouble   Param = 0x103B
	DeviceNativeVectorWidthHalf     Param = 0x103C
	DeviceOpenCLCVersion            Param = 0x103D
	DeviceLinkerAvailable           Param = 0x103E
	DeviceBuiltInKernels            Param = 0x103F
	DeviceImageMaxBufferSize        Param = 0x1040
	DeviceImageMaxArraySize         Param = 0x1041
	DeviceParentDevice              Param = 0x1042
	DevicePartitionMaxSubDevices    Param = 0x1043
	DevicePartitionProperties       Param = 0x1044
	DevicePartitionAffinityDomain   Param = 0x1045
	DevicePartitionType             Param = 0x1046
	DeviceReferenceCount            Param = 0x1047
	DevicePreferredInteropUserSync  Param = 0x1048
	DevicePrintfBufferSize          Param = 0x1049
	DeviceImagePitchAlignment       Param = 0x104A
	DeviceImageBaseAddressAlignment Param = 0x104B
)

// Vendor and extension device properties.
const (
	DeviceComputeCapabilityMajorNV Param = 0x4000
	DeviceComputeCapabilityMinorNV Param = 0x4001
	DeviceRegistersPerBlockNV      Param = 0x4002
	DeviceWarpSizeNV               Param = 0x4003
	DeviceGPUOverlapNV             Param = 0x4004
	DeviceKernelExecTimeoutNV      Param = 0x4005
	DeviceIntegratedMemoryNV       Param = 0x4006
	DevicePCIBusIDNV               Param = 0x4008
	DevicePCISlotIDNV              Param = 0x4009
	DevicePCIDomainIDNV            Param = 0x400A

	DeviceMaxAtomicCountersEXT Param = 0x4032

	DeviceProfilingTimerOffsetAMD      Param = 0x4036
	DeviceTopologyAMD                  Param = 0x4037
	DeviceBoardNameAMD                 Param = 0x4038
	DeviceGlobalFreeMemoryAMD          Param = 0x4039
	DeviceSIMDPerComputeUnitAMD        Param = 0x4040
	DeviceSIMDWidthAMD                 Param = 0x4041
	DeviceSIMDInstructionWidthAMD      Param = 0x4042
	DeviceWavefrontWidthAMD            Param = 0x4043
	DeviceGlobalMemChannelsAMD         Param = 0x4044
	DeviceGlobalMemChannelBanksAMD     Param = 0x4045
	DeviceGlobalMemChannelBankWidthAMD Param = 0x4046
	DeviceLocalMemSizePerCUAMD         Param = 0x4047
	DeviceLocalMemBanksAMD             Param = 0x4048

	DevicePartitionTypesEXT  Param = 0x4055
	DeviceAffinityDomainsEXT Param = 0x4056
	DeviceReferenceCountEXT  Param = 0x4057
	DevicePartitionStyleEXT  Param = 0x4058
	DeviceSPIRVersions       Param = 0x40E0
)

// Kernel work-group properties.
const (
	KernelWorkGroupSize                  Param = 0x11B0
	KernelCompileWorkGroupSize           Param = 0x11B1
	KernelLocalMemSize                   Param = 0x11B2
	KernelPreferredWorkGroupSizeMultiple Param = 0x11B3
)

// Device type bits.
const (
	DeviceTypeDefault     uint64 = 1 << 0
	DeviceTypeCPU         uint64 = 1 << 1
	DeviceTypeGPU         uint64 = 1 << 2
	DeviceTypeAccelerator uint64 = 1 << 3
	DeviceTypeCustom      uint64 = 1 << 4
	DeviceTypeAll         uint64 = 0xFFFFFFFF
)

// Floating-point configuration bits.
const (
	FPDenorm                     uint64 = 1 << 0
	FPInfNaN                     uint64 = 1 << 1
	FPRoundToNearest             uint64 = 1 << 2
	FPRoundToZero                uint64 = 1 << 3
	FPRoundToInf                 uint64 = 1 << 4
	FPFMA                        uint64 = 1 << 5
	FPSoftFloat                  uint64 = 1 << 6
	FPCorrectlyRoundedDivideSqrt uint64 = 1 << 7
)

// Command queue property bits.
const (
	QueueOutOfOrderExecModeEnable uint64 = 1 << 0
	QueueProfilingEnable          uint64 = 1 << 1
)

// Execution capability bits.
const (
	ExecKernel       uint64 = 1 << 0
	ExecNativeKernel uint64 = 1 << 1
)

// Global memory cache types.
const (
	NoneCache      uint32 = 0
	ReadOnlyCache  uint32 = 1
	ReadWriteCache uint32 = 2
)

// Local memory types.
const (
	LocalMemLocal  uint32 = 1
	LocalMemGlobal uint32 = 2
)

// Partition property values (core 1.2).
const (
	PartitionEqually          uint64 = 0x1086
	PartitionByCounts         uint64 = 0x1087
	PartitionByAffinityDomain uint64 = 0x1088
)

// Affinity domain bits (core 1.2).
const (
	AffinityDomainNUMA              uint64 = 1 << 0
	AffinityDomainL4Cache           uint64 = 1 << 1
	AffinityDomainL3Cache           uint64 = 1 << 2
	AffinityDomainL2Cache           uint64 = 1 << 3
	AffinityDomainL1Cache           uint64 = 1 << 4
	AffinityDomainNextPartitionable uint64 = 1 << 5
)

// Partition property values (cl_ext_device_fission).
const (
	PartitionEquallyEXT          uint64 = 0x4050
	PartitionByCountsEXT         uint64 = 0x4051
	PartitionByNamesEXT          uint64 = 0x4052
	PartitionByAffinityDomainEXT uint64 = 0x4053
)

// Affinity domain values (cl_ext_device_fission).
const (
	AffinityDomainL1CacheEXT         uint64 = 0x1
	AffinityDomainL2CacheEXT         uint64 = 0x2
	AffinityDomainL3CacheEXT         uint64 = 0x3
	AffinityDomainL4CacheEXT         uint64 = 0x4
	AffinityDomainNUMAEXT            uint64 = 0x10
	AffinityDomainNextFissionableEXT uint64 = 0x100
)

// TopologyTypePCIeAMD is the discriminant of the PCI-E case of the AMD topology union.
const TopologyTypePCIeAMD uint32 = 1

var paramNames = map[Param]string{
	PlatformProfile:    "CL_PLATFORM_PROFILE",
	PlatformVersion:    "CL_PLATFORM_VERSION",
	PlatformName:       "CL_PLATFORM_NAME",
	PlatformVendor:     "CL_PLATFORM_VENDOR",
	PlatformExtensions: "CL_PLATFORM_EXTENSIONS",
	PlatformICDSuffix:  "CL_PLATFORM_ICD_SUFFIX_KHR",

	DeviceType:                      "CL_DEVICE_TYPE",
	DeviceVendorID:                  "CL_DEVICE_VENDOR_ID",
	DeviceMaxComputeUnits:           "CL_DEVICE_MAX_COMPUTE_UNITS",
	DeviceMaxWorkItemDimensions:     "CL_DEVICE_MAX_WORK_ITEM_DIMENSIONS",
	DeviceMaxWorkGroupSize:          "CL_DEVICE_MAX_WORK_GROUP_SIZE",
	DeviceMaxWorkItemSizes:          "CL_DEVICE_MAX_WORK_ITEM_SIZES",
	DevicePreferredVectorWidthChar:  "CL_DEVICE_PREFERRED_VECTOR_WIDTH_CHAR",
	DevicePreferredVectorWidthShort: "CL_DEVICE_PREFERRED_VECTOR_WIDTH_SHORT",
	DevicePreferredVectorWidthInt:   "CL_DEVICE_PREFERRED_VECTOR_WIDTH_INT",
	DevicePreferredVectorWidthLong:  "CL_DEVICE_PREFERRED_VECTOR_WIDTH_LONG",
	DevicePreferredVectorWidthFloat: "CL_DEVICE_PREFERRED_VECTOR_WIDTH_FLOAT",
	DevicePreferredVectorWidthDbl:   "CL_DEVICE_PREFERRED_VECTOR_WIDTH_DOUBLE",
	DeviceMaxClockFrequency:         "CL_DEVICE_MAX_CLOCK_FREQUENCY",
	DeviceAddressBits:               "CL_DEVICE_ADDRESS_BITS",
	DeviceMaxReadImageArgs:          "CL_DEVICE_MAX_READ_IMAGE_ARGS",
	DeviceMaxWriteImageArgs:         "CL_DEVICE_MAX_WRITE_IMAGE_ARGS",
	DeviceMaxMemAllocSize:           "CL_DEVICE_MAX_MEM_ALLOC_SIZE",
	DeviceImage2DMaxWidth:           "CL_DEVICE_IMAGE2D_MAX_WIDTH",
	DeviceImage2DMaxHeight:          "CL_DEVICE_IMAGE2D_MAX_HEIGHT",
	DeviceImage3DMaxWidth:           "CL_DEVICE_IMAGE3D_MAX_WIDTH",
	DeviceImage3DMaxHeight:          "CL_DEVICE_IMAGE3D_MAX_HEIGHT",
	DeviceImage3DMaxDepth:           "CL_DEVICE_IMAGE3D_MAX_DEPTH",
	DeviceImageSupport:              "CL_DEVICE_IMAGE_SUPPORT",
	DeviceMaxParameterSize:          "CL_DEVICE_MAX_PARAMETER_SIZE",
	DeviceMaxSamplers:               "CL_DEVICE_MAX_SAMPLERS",
	DeviceMemBaseAddrAlign:          "CL_DEVICE_MEM_BASE_ADDR_ALIGN",
	DeviceMinDataTypeAlignSize:      "CL_DEVICE_MIN_DATA_TYPE_ALIGN_SIZE",
	DeviceSingleFPConfig:            "CL_DEVICE_SINGLE_FP_CONFIG",
	DeviceGlobalMemCacheType:        "CL_DEVICE_GLOBAL_MEM_CACHE_TYPE",
	DeviceGlobalMemCachelineSize:    "CL_DEVICE_GLOBAL_MEM_CACHELINE_SIZE",
	DeviceGlobalMemCacheSize:        "CL_DEVICE_GLOBAL_MEM_CACHE_SIZE",
	DeviceGlobalMemSize:             "CL_DEVICE_GLOBAL_MEM_SIZE",
	DeviceMaxConstantBufferSize:     "CL_DEVICE_MAX_CONSTANT_BUFFER_SIZE",
	DeviceMaxConstantArgs:           "CL_DEVICE_MAX_CONSTANT_ARGS",
	DeviceLocalMemType:              "CL_DEVICE_LOCAL_MEM_TYPE",
	DeviceLocalMemSize:              "CL_DEVICE_LOCAL_MEM_SIZE",
	DeviceErrorCorrectionSupport:    "CL_DEVICE_ERROR_CORRECTION_SUPPORT",
	DeviceProfilingTimerResolution:  "CL_DEVICE_PROFILING_TIMER_RESOLUTION",
	DeviceEndianLittle:              "CL_DEVICE_ENDIAN_LITTLE",
	DeviceAvailable:                 "CL_DEVICE_AVAILABLE",
	DeviceCompilerAvailable:         "CL_DEVICE_COMPILER_AVAILABLE",
	DeviceExecutionCapabilities:     "CL_DEVICE_EXECUTION_CAPABILITIES",
	DeviceQueueProperties:           "CL_DEVICE_QUEUE_PROPERTIES",
	DeviceName:                      "CL_DEVICE_NAME",
	DeviceVendor:                    "CL_DEVICE_VENDOR",
	DriverVersion:                   "CL_DRIVER_VERSION",
	DeviceProfile:                   "CL_DEVICE_PROFILE",
	DeviceVersion:                   "CL_DEVICE_VERSION",
	DeviceExtensions:                "CL_DEVICE_EXTENSIONS",
	DevicePlatform:                  "CL_DEVICE_PLATFORM",
	DeviceDoubleFPConfig:            "CL_DEVICE_DOUBLE_FP_CONFIG",
	DeviceHalfFPConfig:              "CL_DEVICE_HALF_FP_CONFIG",
	DevicePreferredVectorWidthHalf:  "CL_DEVICE_PREFERRED_VECTOR_WIDTH_HALF",
	DeviceHostUnifiedMemory:         "CL_DEVICE_HOST_UNIFIED_MEMORY",
	DeviceNativeVectorWidthChar:     "CL_DEVICE_NATIVE_VECTOR_WIDTH_CHAR",
	DeviceNativeVectorWidthShort:    "CL_DEVICE_NATIVE_VECTOR_WIDTH_SHORT",
	DeviceNativeVectorWidthInt:      "CL_DEVICE_NATIVE_VECTOR_WIDTH_INT",
	DeviceNativeVectorWidthLong:     "CL_DEVICE_NATIVE_VECTOR_WIDTH_LONG",
	DeviceNativeVectorWidthFloat:    "CL_DEVICE_NATIVE_VECTOR_WIDTH_FLOAT",
	DeviceNativeVectorWidthDouble:   "CL_DEVICE_NATIVE_VECTOR_WIDTH_DOUBLE",
	DeviceNativeVectorWidthHalf:     "CL_DEVICE_NATIVE_VECTOR_WIDTH_HALF",
	DeviceOpenCLCVersion:            "CL_DEVICE_OPENCL_C_VERSION",
	DeviceLinkerAvailable:           "CL_DEVICE_LINKER_AVAILABLE",
	DeviceBuiltInKernels:            "CL_DEVICE_BUILT_IN_KERNELS",
	DeviceImageMaxBufferSize:        "CL_DEVICE_IMAGE_MAX_BUFFER_SIZE",
	DeviceImageMaxArraySize:         "CL_DEVICE_IMAGE_MAX_ARRAY_SIZE",
	DeviceParentDevice:              "CL_DEVICE_PARENT_DEVICE",
	DevicePartitionMaxSubDevices:    "CL_DEVICE_PARTITION_MAX_SUB_DEVICES",
	DevicePartitionProperties:       "CL_DEVICE_PARTITION_PROPERTIES",
	DevicePartitionAffinityDomain:   "CL_DEVICE_PARTITION_AFFINITY_DOMAIN",
	DevicePartitionType:             "CL_DEVICE_PARTITION_TYPE",
	DeviceReferenceCount:            "CL_DEVICE_REFERENCE_COUNT",
	DevicePreferredInteropUserSync:  "CL_DEVICE_PREFERRED_INTEROP_USER_SYNC",
	DevicePrintfBufferSize:          "CL_DEVICE_PRINTF_BUFFER_SIZE",
	DeviceImagePitchAlignment:       "CL_DEVICE_IMAGE_PITCH_ALIGNMENT",
	DeviceImageBaseAddressAlignment: "CL_DEVICE_IMAGE_BASE_ADDRESS_ALIGNMENT",

	DeviceComputeCapabilityMajorNV: "CL_DEVICE_COMPUTE_CAPABILITY_MAJOR_NV",
	DeviceComputeCapabilityMinorNV: "CL_DEVICE_COMPUTE_CAPABILITY_MINOR_NV",
	DeviceRegistersPerBlockNV:      "CL_DEVICE_REGISTERS_PER_BLOCK_NV",
	DeviceWarpSizeNV:               "CL_DEVICE_WARP_SIZE_NV",
	DeviceGPUOverlapNV:             "CL_DEVICE_GPU_OVERLAP_NV",
	DeviceKernelExecTimeoutNV:      "CL_DEVICE_KERNEL_EXEC_TIMEOUT_NV",
	DeviceIntegratedMemoryNV:       "CL_DEVICE_INTEGRATED_MEMORY_NV",
	DevicePCIBusIDNV:               "CL_DEVICE_PCI_BUS_ID_NV",
	DevicePCISlotIDNV:              "CL_DEVICE_PCI_SLOT_ID_NV",
	DevicePCIDomainIDNV:            "CL_DEVICE_PCI_DOMAIN_ID_NV",

	DeviceMaxAtomicCountersEXT: "CL_DEVICE_MAX_ATOMIC_COUNTERS_EXT",

	DeviceProfilingTimerOffsetAMD:      "CL_DEVICE_PROFILING_TIMER_OFFSET_AMD",
	DeviceTopologyAMD:                  "CL_DEVICE_TOPOLOGY_AMD",
	DeviceBoardNameAMD:                 "CL_DEVICE_BOARD_NAME_AMD",
	DeviceGlobalFreeMemoryAMD:          "CL_DEVICE_GLOBAL_FREE_MEMORY_AMD",
	DeviceSIMDPerComputeUnitAMD:        "CL_DEVICE_SIMD_PER_COMPUTE_UNIT_AMD",
	DeviceSIMDWidthAMD:                 "CL_DEVICE_SIMD_WIDTH_AMD",
	DeviceSIMDInstructionWidthAMD:      "CL_DEVICE_SIMD_INSTRUCTION_WIDTH_AMD",
	DeviceWavefrontWidthAMD:            "CL_DEVICE_WAVEFRONT_WIDTH_AMD",
	DeviceGlobalMemChannelsAMD:         "CL_DEVICE_GLOBAL_MEM_CHANNELS_AMD",
	DeviceGlobalMemChannelBanksAMD:     "CL_DEVICE_GLOBAL_MEM_CHANNEL_BANKS_AMD",
	DeviceGlobalMemChannelBankWidthAMD: "CL_DEVICE_GLOBAL_MEM_CHANNEL_BANK_WIDTH_AMD",
	DeviceLocalMemSizePerCUAMD:         "CL_DEVICE_LOCAL_MEM_SIZE_PER_COMPUTE_UNIT_AMD",
	DeviceLocalMemBanksAMD:             "CL_DEVICE_LOCAL_MEM_BANKS_AMD",

	DevicePartitionTypesEXT:  "CL_DEVICE_PARTITION_TYPES_EXT",
	DeviceAffinityDomainsEXT: "CL_DEVICE_AFFINITY_DOMAINS_EXT",
	DeviceReferenceCountEXT:  "CL_DEVICE_REFERENCE_COUNT_EXT",
	DevicePartitionStyleEXT:  "CL_DEVICE_PARTITION_STYLE_EXT",
	DeviceSPIRVersions:       "CL_DEVICE_SPIR_VERSIONS",

	KernelWorkGroupSize:                  "CL_KERNEL_WORK_GROUP_SIZE",
	KernelCompileWorkGroupSize:           "CL_KERNEL_COMPILE_WORK_GROUP_SIZE",
	KernelLocalMemSize:                   "CL_KERNEL_LOCAL_MEM_SIZE",
	KernelPreferredWorkGroupSizeMultiple: "CL_KERNEL_PREFERRED_WORK_GROUP_SIZE_MULTIPLE",
}

var paramsByName = func() map[string]Param {
	m := make(map[string]Param, len(paramNames))
	for p, n := range paramNames {
		m[n] = p
	}
	return m
}()

// String returns the symbolic name of the parameter, or its hex id.
func (p Param) String() string {
	if name, ok := paramNames[p]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", uint32(p))
}

// ParamByName resolves a symbolic name such as "CL_DEVICE_NAME".
func ParamByName(name string) (Param, bool) {
	p, ok := paramsByName[name]
	return p, ok
}
