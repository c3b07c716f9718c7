// Package cl describes the boundary to the compute-capability query API.
// The engine never talks to a driver directly: it consumes the API
// interface, which is implemented by the native libOpenCL binding (built
// with the "opencl" tag) and by the in-memory fake used for fixtures and
// tests.
package cl

import "strconv"

// PlatformID is an opaque platform handle.
type PlatformID uintptr

// DeviceID is an opaque device handle.
type DeviceID uintptr

// Context is an opaque execution context handle.
type Context uintptr

// Program is an opaque program handle.
type Program uintptr

// Kernel is an opaque kernel handle.
type Kernel uintptr

// SizeTBytes is the width of a size_t value as returned by the API.
const SizeTBytes = strconv.IntSize / 8

// API is the capability query surface the engine depends on.
//
// The enumeration calls follow the count-then-fill convention: passing a nil
// slice returns the number of handles available; passing a slice fills up to
// len(out) handles. The info calls follow the same convention: an empty buf
// returns the required size without copying any data.
type API interface {
	GetPlatformIDs(out []PlatformID) (int, Status)
	GetDeviceIDs(platform PlatformID, deviceType uint64, out []DeviceID) (int, Status)

	GetPlatformInfo(platform PlatformID, param Param, buf []byte) (int, Status)
	GetDeviceInfo(device DeviceID, param Param, buf []byte) (int, Status)

	CreateContext(platform PlatformID, device DeviceID) (Context, Status)
	CreateProgramWithSource(ctx Context, source string) (Program, Status)
	BuildProgram(program Program, device DeviceID, options string) Status
	GetProgramBuildLog(program Program, device DeviceID) (string, Status)
	CreateKernel(program Program, name string) (Kernel, Status)
	GetKernelWorkGroupInfo(kernel Kernel, device DeviceID, param Param, buf []byte) (int, Status)

	ReleaseKernel(kernel Kernel) Status
	ReleaseProgram(program Program) Status
	ReleaseContext(ctx Context) Status
}
