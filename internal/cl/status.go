package cl

import "fmt"

// Status is a return code of the capability API.
type Status int32

// Return codes used by the engine.
const (
	Success                   Status = 0
	DeviceNotFound            Status = -1
	DeviceNotAvailable        Status = -2
	CompilerNotAvailable      Status = -3
	MemObjectAllocationFailed Status = -4
	OutOfResources            Status = -5
	OutOfHostMemory           Status = -6
	ProfilingInfoNotAvailable Status = -7
	BuildProgramFailure       Status = -11
	InvalidValue              Status = -30
	InvalidDeviceType         Status = -31
	InvalidPlatform           Status = -32
	InvalidDevice             Status = -33
	InvalidContext            Status = -34
	InvalidBinary             Status = -42
	InvalidBuildOptions       Status = -43
	InvalidProgram            Status = -44
	InvalidProgramExecutable  Status = -45
	InvalidKernelName         Status = -46
	InvalidKernelDefinition   Status = -47
	InvalidKernel             Status = -48
	InvalidOperation          Status = -59
	PlatformNotFoundKHR       Status = -1001
)

var statusNames = map[Status]string{
	Success:                   "CL_SUCCESS",
	DeviceNotFound:            "CL_DEVICE_NOT_FOUND",
	DeviceNotAvailable:        "CL_DEVICE_NOT_AVAILABLE",
	CompilerNotAvailable:      "CL_COMPILER_NOT_AVAILABLE",
	MemObjectAllocationFailed: "CL_MEM_OBJECT_ALLOCATION_FAILURE",
	OutOfResources:            "CL_OUT_OF_RESOURCES",
	OutOfHostMemory:           "CL_OUT_OF_HOST_MEMORY",
	ProfilingInfoNotAvailable: "CL_PROFILING_INFO_NOT_AVAILABLE",
	BuildProgramFailure:       "CL_BUILD_PROGRAM_FAILURE",
	InvalidValue:              "CL_INVALID_VALUE",
	InvalidDeviceType:         "CL_INVALID_DEVICE_TYPE",
	InvalidPlatform:           "CL_INVALID_PLATFORM",
	InvalidDevice:             "CL_INVALID_DEVICE",
	InvalidContext:            "CL_INVALID_CONTEXT",
	InvalidBinary:             "CL_INVALID_BINARY",
	InvalidBuildOptions:       "CL_INVALID_BUILD_OPTIONS",
	InvalidProgram:            "CL_INVALID_PROGRAM",
	InvalidProgramExecutable:  "CL_INVALID_PROGRAM_EXECUTABLE",
	InvalidKernelName:         "CL_INVALID_KERNEL_NAME",
	InvalidKernelDefinition:   "CL_INVALID_KERNEL_DEFINITION",
	InvalidKernel:             "CL_INVALID_KERNEL",
	InvalidOperation:          "CL_INVALID_OPERATION",
	PlatformNotFoundKHR:       "CL_PLATFORM_NOT_FOUND_KHR",
}

// String returns the symbolic name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("<unknown error %d>", int32(s))
}

// OK reports whether the status is Success.
func (s Status) OK() bool {
	return s == Success
}

// Error implements error so a failing Status can be used as a cause.
func (s Status) Error() string {
	return s.String()
}

// StatusByName resolves a symbolic name such as "CL_INVALID_VALUE".
func StatusByName(name string) (Status, bool) {
	for s, n := range statusNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}
