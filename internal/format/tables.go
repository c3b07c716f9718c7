package format

import "github.com/tungetti/clinspect/internal/cl"

// DeviceTypeLabels are indexed by device type bit position.
var DeviceTypeLabels = []string{"Default", "CPU", "GPU", "Accelerator", "Custom"}

// FPConfigFlags label floating-point capability bits.
var FPConfigFlags = []Flag{
	{cl.FPDenorm, "Denormals"},
	{cl.FPInfNaN, "Infinity and NANs"},
	{cl.FPRoundToNearest, "Round to nearest"},
	{cl.FPRoundToZero, "Round to zero"},
	{cl.FPRoundToInf, "Round to infinity"},
	{cl.FPFMA, "IEEE754-2008 fused multiply-add"},
	{cl.FPSoftFloat, "Support is emulated in software"},
	{cl.FPCorrectlyRoundedDivideSqrt, "Correctly-rounded divide and sqrt operations"},
}

// QueueFlags label command queue property bits.
var QueueFlags = []Flag{
	{cl.QueueOutOfOrderExecModeEnable, "Out-of-order execution"},
	{cl.QueueProfilingEnable, "Profiling"},
}

// ExecFlags label execution capability bits.
var ExecFlags = []Flag{
	{cl.ExecKernel, "Run OpenCL kernels"},
	{cl.ExecNativeKernel, "Run native kernels"},
}

// AffinityDomainFlags label core affinity domain bits.
var AffinityDomainFlags = []Flag{
	{cl.AffinityDomainNUMA, "NUMA"},
	{cl.AffinityDomainL4Cache, "L4 cache"},
	{cl.AffinityDomainL3Cache, "L3 cache"},
	{cl.AffinityDomainL2Cache, "L2 cache"},
	{cl.AffinityDomainL1Cache, "L1 cache"},
	{cl.AffinityDomainNextPartitionable, "next partitionable"},
}

// CacheTypeLabels are indexed by global memory cache type.
var CacheTypeLabels = []string{"None", "Read-Only", "Read/Write"}

// LocalMemTypeLabels are indexed by local memory type.
var LocalMemTypeLabels = []string{"None", "Local", "Global"}

// PartitionLabels name core partition property values.
var PartitionLabels = []Named{
	{cl.PartitionEqually, "equally"},
	{cl.PartitionByCounts, "by counts"},
	{cl.PartitionByAffinityDomain, "by affinity domain"},
}

// PartitionEXTLabels name device fission partition values.
var PartitionEXTLabels = []Named{
	{cl.PartitionEquallyEXT, "equally"},
	{cl.PartitionByCountsEXT, "by counts"},
	{cl.PartitionByNamesEXT, "by names"},
	{cl.PartitionByAffinityDomainEXT, "by affinity domain"},
}

// AffinityDomainEXTLabels name device fission affinity domain values.
var AffinityDomainEXTLabels = []Named{
	{cl.AffinityDomainL1CacheEXT, "L1 cache"},
	{cl.AffinityDomainL2CacheEXT, "L2 cache"},
	{cl.AffinityDomainL3CacheEXT, "L3 cache"},
	{cl.AffinityDomainL4CacheEXT, "L4 cache"},
	{cl.AffinityDomainNUMAEXT, "NUMA"},
	{cl.AffinityDomainNextFissionableEXT, "next fissionable"},
}
