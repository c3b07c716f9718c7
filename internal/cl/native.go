//go:build opencl && cgo

package cl

/*
#cgo linux LDFLAGS: -lOpenCL
#cgo windows LDFLAGS: -lOpenCL
#cgo darwin LDFLAGS: -framework OpenCL
#cgo CFLAGS: -DCL_TARGET_OPENCL_VERSION=120 -DCL_USE_DEPRECATED_OPENCL_1_2_APIS
#ifdef __APPLE__
#include <OpenCL/opencl.h>
#else
#include <CL/cl.h>
#endif
#include <stdlib.h>

static cl_context clinspect_create_context(cl_platform_id platform, cl_device_id device, cl_int *err) {
	cl_context_properties props[3];
	props[0] = CL_CONTEXT_PLATFORM;
	props[1] = (cl_context_properties)platform;
	props[2] = 0;
	return clCreateContext(props, 1, &device, NULL, NULL, err);
}

static cl_program clinspect_create_program(cl_context ctx, const char *src, cl_int *err) {
	return clCreateProgramWithSource(ctx, 1, &src, NULL, err);
}
*/
import "C"

import "unsafe"

// native binds the system libOpenCL (normally the ICD loader).
type native struct{}

// NewNative returns the API backed by the system OpenCL library.
func NewNative() (API, error) {
	return native{}, nil
}

func platformHandle(p PlatformID) C.cl_platform_id { return C.cl_platform_id(unsafe.Pointer(uintptr(p))) }
func deviceHandle(d DeviceID) C.cl_device_id       { return C.cl_device_id(unsafe.Pointer(uintptr(d))) }
func contextHandle(c Context) C.cl_context         { return C.cl_context(unsafe.Pointer(uintptr(c))) }
func programHandle(p Program) C.cl_program         { return C.cl_program(unsafe.Pointer(uintptr(p))) }
func kernelHandle(k Kernel) C.cl_kernel            { return C.cl_kernel(unsafe.Pointer(uintptr(k))) }

func bufPointer(buf []byte) unsafe.Pointer {
	if len(buf) == 0 {
		return nil
	}
	return unsafe.Pointer(&buf[0])
}

func (native) GetPlatformIDs(out []PlatformID) (int, Status) {
	var num C.cl_uint
	if len(out) == 0 {
		st := C.clGetPlatformIDs(0, nil, &num)
		return int(num), Status(st)
	}
	ids := make([]C.cl_platform_id, len(out))
	st := C.clGetPlatformIDs(C.cl_uint(len(ids)), &ids[0], &num)
	for i := range ids {
		out[i] = PlatformID(uintptr(unsafe.Pointer(ids[i])))
	}
	return int(num), Status(st)
}

func (native) GetDeviceIDs(platform PlatformID, deviceType uint64, out []DeviceID) (int, Status) {
	var num C.cl_uint
	if len(out) == 0 {
		st := C.clGetDeviceIDs(platformHandle(platform), C.cl_device_type(deviceType), 0, nil, &num)
		return int(num), Status(st)
	}
	ids := make([]C.cl_device_id, len(out))
	st := C.clGetDeviceIDs(platformHandle(platform), C.cl_device_type(deviceType), C.cl_uint(len(ids)), &ids[0], &num)
	for i := range ids {
		out[i] = DeviceID(uintptr(unsafe.Pointer(ids[i])))
	}
	return int(num), Status(st)
}

func (native) GetPlatformInfo(platform PlatformID, param Param, buf []byte) (int, Status) {
	var size C.size_t
	st := C.clGetPlatformInfo(platformHandle(platform), C.cl_platform_info(param),
		C.size_t(len(buf)), bufPointer(buf), &size)
	return int(size), Status(st)
}

func (native) GetDeviceInfo(device DeviceID, param Param, buf []byte) (int, Status) {
	var size C.size_t
	st := C.clGetDeviceInfo(deviceHandle(device), C.cl_device_info(param),
		C.size_t(len(buf)), bufPointer(buf), &size)
	return int(size), Status(st)
}

func (native) CreateContext(platform PlatformID, device DeviceID) (Context, Status) {
	var st C.cl_int
	ctx := C.clinspect_create_context(platformHandle(platform), deviceHandle(device), &st)
	return Context(uintptr(unsafe.Pointer(ctx))), Status(st)
}

func (native) CreateProgramWithSource(ctx Context, source string) (Program, Status) {
	csrc := C.CString(source)
	defer C.free(unsafe.Pointer(csrc))
	var st C.cl_int
	prog := C.clinspect_create_program(contextHandle(ctx), csrc, &st)
	return Program(uintptr(unsafe.Pointer(prog))), Status(st)
}

func (native) BuildProgram(program Program, device DeviceID, options string) Status {
	copts := C.CString(options)
	defer C.free(unsafe.Pointer(copts))
	dev := deviceHandle(device)
	return Status(C.clBuildProgram(programHandle(program), 1, &dev, copts, nil, nil))
}

func (native) GetProgramBuildLog(program Program, device DeviceID) (string, Status) {
	var size C.size_t
	st := C.clGetProgramBuildInfo(programHandle(program), deviceHandle(device), C.CL_PROGRAM_BUILD_LOG, 0, nil, &size)
	if st != C.CL_SUCCESS || size == 0 {
		return "", Status(st)
	}
	buf := make([]byte, int(size))
	st = C.clGetProgramBuildInfo(programHandle(program), deviceHandle(device), C.CL_PROGRAM_BUILD_LOG,
		size, unsafe.Pointer(&buf[0]), nil)
	return trimNUL(buf), Status(st)
}

func (native) CreateKernel(program Program, name string) (Kernel, Status) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var st C.cl_int
	k := C.clCreateKernel(programHandle(program), cname, &st)
	return Kernel(uintptr(unsafe.Pointer(k))), Status(st)
}

func (native) GetKernelWorkGroupInfo(kernel Kernel, device DeviceID, param Param, buf []byte) (int, Status) {
	var size C.size_t
	st := C.clGetKernelWorkGroupInfo(kernelHandle(kernel), deviceHandle(device), C.cl_kernel_work_group_info(param),
		C.size_t(len(buf)), bufPointer(buf), &size)
	return int(size), Status(st)
}

func (native) ReleaseKernel(kernel Kernel) Status {
	return Status(C.clReleaseKernel(kernelHandle(kernel)))
}

func (native) ReleaseProgram(program Program) Status {
	return Status(C.clReleaseProgram(programHandle(program)))
}

func (native) ReleaseContext(ctx Context) Status {
	return Status(C.clReleaseContext(contextHandle(ctx)))
}
