// Package fake provides an in-memory implementation of the capability API.
// It backs the --fixture mode of the CLI and is the mock API for tests:
// properties are set per platform and device, failures can be injected per
// property and per probe stage, and outstanding probe handles are counted so
// callers can check that nothing leaks.
package fake

import (
	"encoding/binary"
	"strings"
	"sync"

	"github.com/tungetti/clinspect/internal/cl"
)

// Stage names a step of the compile probe that can be made to fail.
type Stage string

// Probe stages.
const (
	StageContext Stage = "context"
	StageProgram Stage = "program"
	StageBuild   Stage = "build"
	StageKernel  Stage = "kernel"
	StageQuery   Stage = "query"
)

// DefaultPreferredMultiple is reported for kernels without a configured multiple.
const DefaultPreferredMultiple = 1

type value struct {
	data        []byte
	status      cl.Status
	sizeStatus  cl.Status
	valueStatus cl.Status
}

// Properties holds the typed property values of a platform or device.
type Properties struct {
	values map[cl.Param]value
}

func newProperties() Properties {
	return Properties{values: make(map[cl.Param]value)}
}

// SetBytes stores raw property bytes.
func (p *Properties) SetBytes(param cl.Param, data []byte) {
	p.values[param] = value{data: append([]byte(nil), data...)}
}

// SetString stores a NUL-terminated string property.
func (p *Properties) SetString(param cl.Param, s string) {
	p.SetBytes(param, cl.CString(s))
}

// SetUint stores a cl_uint property.
func (p *Properties) SetUint(param cl.Param, v uint32) {
	b := make([]byte, 4)
	binary.NativeEndian.PutUint32(b, v)
	p.SetBytes(param, b)
}

// SetUlong stores a cl_ulong (or cl_bitfield) property.
func (p *Properties) SetUlong(param cl.Param, v uint64) {
	b := make([]byte, 8)
	binary.NativeEndian.PutUint64(b, v)
	p.SetBytes(param, b)
}

// SetBool stores a cl_bool property.
func (p *Properties) SetBool(param cl.Param, v bool) {
	var u uint32
	if v {
		u = 1
	}
	p.SetUint(param, u)
}

// SetSize stores a size_t property.
func (p *Properties) SetSize(param cl.Param, v uint64) {
	p.SetSizes(param, v)
}

// SetSizes stores a size_t array property.
func (p *Properties) SetSizes(param cl.Param, vs ...uint64) {
	p.SetBytes(param, EncodeSizes(vs...))
}

// SetUlongs stores a cl_ulong array property (partition property lists).
func (p *Properties) SetUlongs(param cl.Param, vs ...uint64) {
	b := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.NativeEndian.PutUint64(b[i*8:], v)
	}
	p.SetBytes(param, b)
}

// SetError makes both the size and the value query of param fail with status.
func (p *Properties) SetError(param cl.Param, status cl.Status) {
	p.values[param] = value{status: status}
}

// SetValueError keeps the size query of param working and makes the value
// query fail with status.
func (p *Properties) SetValueError(param cl.Param, status cl.Status) {
	v := p.values[param]
	v.valueStatus = status
	p.values[param] = v
}

// SetSizeError makes only the size query of param fail with status, as
// drivers do that reject an empty buffer for some properties.
func (p *Properties) SetSizeError(param cl.Param, status cl.Status) {
	v := p.values[param]
	v.sizeStatus = status
	p.values[param] = v
}

// Delete removes param so that querying it reports CL_INVALID_VALUE.
func (p *Properties) Delete(param cl.Param) {
	delete(p.values, param)
}

func (p *Properties) query(param cl.Param, buf []byte) (int, cl.Status) {
	v, ok := p.values[param]
	if !ok {
		return 0, cl.InvalidValue
	}
	if !v.status.OK() {
		return 0, v.status
	}
	if len(buf) == 0 {
		if !v.sizeStatus.OK() {
			return 0, v.sizeStatus
		}
		return len(v.data), cl.Success
	}
	if !v.valueStatus.OK() {
		return 0, v.valueStatus
	}
	if len(buf) < len(v.data) {
		return 0, cl.InvalidValue
	}
	copy(buf, v.data)
	return len(v.data), cl.Success
}

// EncodeSizes encodes size_t values in host byte order.
func EncodeSizes(vs ...uint64) []byte {
	b := make([]byte, cl.SizeTBytes*len(vs))
	for i, v := range vs {
		if cl.SizeTBytes == 8 {
			binary.NativeEndian.PutUint64(b[i*8:], v)
		} else {
			binary.NativeEndian.PutUint32(b[i*4:], uint32(v))
		}
	}
	return b
}

// Platform is a simulated platform.
type Platform struct {
	Properties
	id         cl.PlatformID
	api        *API
	devices    []*Device
	listStatus cl.Status
}

// Device is a simulated device.
type Device struct {
	Properties
	id        cl.DeviceID
	platform  *Platform
	multiples map[string]uint64
	multiple  uint64
	faults    map[Stage]cl.Status
	buildLog  string
}

// API is the in-memory capability API. It is safe for concurrent use.
type API struct {
	mu         sync.Mutex
	platforms  []*Platform
	listStatus cl.Status
	next       uintptr

	contexts map[cl.Context]*Device
	programs map[cl.Program]*program
	kernels  map[cl.Kernel]*kernel

	infoCalls    map[cl.Param]int
	buildOptions []string
}

type program struct {
	device *Device
	source string
	built  bool
}

type kernel struct {
	device *Device
	name   string
}

// New creates an empty simulated API.
func New() *API {
	return &API{
		next:      0x1000,
		contexts:  make(map[cl.Context]*Device),
		programs:  make(map[cl.Program]*program),
		kernels:   make(map[cl.Kernel]*kernel),
		infoCalls: make(map[cl.Param]int),
	}
}

func (a *API) handle() uintptr {
	a.next += 0x10
	return a.next
}

// AddPlatform adds a platform and returns it for population.
func (a *API) AddPlatform() *Platform {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := &Platform{Properties: newProperties(), id: cl.PlatformID(a.handle()), api: a}
	a.platforms = append(a.platforms, p)
	return p
}

// FailPlatformListing makes platform enumeration fail with status.
func (a *API) FailPlatformListing(status cl.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listStatus = status
}

// ID returns the platform handle.
func (p *Platform) ID() cl.PlatformID { return p.id }

// AddDevice adds a device to the platform and returns it for population.
func (p *Platform) AddDevice() *Device {
	p.api.mu.Lock()
	defer p.api.mu.Unlock()
	d := &Device{
		Properties: newProperties(),
		id:         cl.DeviceID(p.api.handle()),
		platform:   p,
		multiples:  make(map[string]uint64),
		multiple:   DefaultPreferredMultiple,
		faults:     make(map[Stage]cl.Status),
	}
	p.devices = append(p.devices, d)
	return d
}

// FailDeviceListing makes device enumeration on this platform fail with status.
func (p *Platform) FailDeviceListing(status cl.Status) {
	p.listStatus = status
}

// ID returns the device handle.
func (d *Device) ID() cl.DeviceID { return d.id }

// SetPreferredMultiple sets the multiple reported for every probe kernel.
func (d *Device) SetPreferredMultiple(v uint64) {
	d.multiple = v
}

// SetKernelMultiple sets the multiple reported for one probe kernel.
func (d *Device) SetKernelMultiple(kernelName string, v uint64) {
	d.multiples[kernelName] = v
}

// FailStage makes the given probe stage fail with status.
func (d *Device) FailStage(stage Stage, status cl.Status) {
	d.faults[stage] = status
}

// SetBuildLog sets the compiler log returned for programs built on the device.
func (d *Device) SetBuildLog(log string) {
	d.buildLog = log
}

// Outstanding returns the number of contexts, programs and kernels that were
// created and not yet released.
func (a *API) Outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.contexts) + len(a.programs) + len(a.kernels)
}

// InfoCalls returns how many info queries (size and value) were made for param.
func (a *API) InfoCalls(param cl.Param) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.infoCalls[param]
}

// BuildOptions returns the option strings passed to BuildProgram, in order.
func (a *API) BuildOptions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.buildOptions...)
}

func (a *API) findPlatform(id cl.PlatformID) *Platform {
	for _, p := range a.platforms {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (a *API) findDevice(id cl.DeviceID) *Device {
	for _, p := range a.platforms {
		for _, d := range p.devices {
			if d.id == id {
				return d
			}
		}
	}
	return nil
}

// GetPlatformIDs implements cl.API.
func (a *API) GetPlatformIDs(out []cl.PlatformID) (int, cl.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.listStatus.OK() {
		return 0, a.listStatus
	}
	if len(a.platforms) == 0 {
		return 0, cl.PlatformNotFoundKHR
	}
	for i := 0; i < len(out) && i < len(a.platforms); i++ {
		out[i] = a.platforms[i].id
	}
	return len(a.platforms), cl.Success
}

// GetDeviceIDs implements cl.API.
func (a *API) GetDeviceIDs(platform cl.PlatformID, deviceType uint64, out []cl.DeviceID) (int, cl.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.findPlatform(platform)
	if p == nil {
		return 0, cl.InvalidPlatform
	}
	if !p.listStatus.OK() {
		return 0, p.listStatus
	}
	var matched []cl.DeviceID
	for _, d := range p.devices {
		if deviceType == cl.DeviceTypeAll || d.deviceType()&deviceType != 0 {
			matched = append(matched, d.id)
		}
	}
	if len(matched) == 0 {
		return 0, cl.DeviceNotFound
	}
	copy(out, matched)
	return len(matched), cl.Success
}

func (d *Device) deviceType() uint64 {
	v, ok := d.values[cl.DeviceType]
	if !ok || len(v.data) < 8 {
		return cl.DeviceTypeDefault
	}
	return binary.NativeEndian.Uint64(v.data)
}

// GetPlatformInfo implements cl.API.
func (a *API) GetPlatformInfo(platform cl.PlatformID, param cl.Param, buf []byte) (int, cl.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.infoCalls[param]++
	p := a.findPlatform(platform)
	if p == nil {
		return 0, cl.InvalidPlatform
	}
	return p.query(param, buf)
}

// GetDeviceInfo implements cl.API.
func (a *API) GetDeviceInfo(device cl.DeviceID, param cl.Param, buf []byte) (int, cl.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.infoCalls[param]++
	d := a.findDevice(device)
	if d == nil {
		return 0, cl.InvalidDevice
	}
	return d.query(param, buf)
}

// CreateContext implements cl.API.
func (a *API) CreateContext(platform cl.PlatformID, device cl.DeviceID) (cl.Context, cl.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d := a.findDevice(device)
	if d == nil {
		return 0, cl.InvalidDevice
	}
	if d.platform.id != platform {
		return 0, cl.InvalidPlatform
	}
	if st, ok := d.faults[StageContext]; ok {
		return 0, st
	}
	ctx := cl.Context(a.handle())
	a.contexts[ctx] = d
	return ctx, cl.Success
}

// CreateProgramWithSource implements cl.API.
func (a *API) CreateProgramWithSource(ctx cl.Context, source string) (cl.Program, cl.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.contexts[ctx]
	if !ok {
		return 0, cl.InvalidContext
	}
	if st, ok := d.faults[StageProgram]; ok {
		return 0, st
	}
	if source == "" {
		return 0, cl.InvalidValue
	}
	prog := cl.Program(a.handle())
	a.programs[prog] = &program{device: d, source: source}
	return prog, cl.Success
}

// BuildProgram implements cl.API.
func (a *API) BuildProgram(prog cl.Program, device cl.DeviceID, options string) cl.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.programs[prog]
	if !ok {
		return cl.InvalidProgram
	}
	if p.device.id != device {
		return cl.InvalidDevice
	}
	a.buildOptions = append(a.buildOptions, options)
	if st, ok := p.device.faults[StageBuild]; ok {
		return st
	}
	p.built = true
	return cl.Success
}

// GetProgramBuildLog implements cl.API.
func (a *API) GetProgramBuildLog(prog cl.Program, device cl.DeviceID) (string, cl.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.programs[prog]
	if !ok {
		return "", cl.InvalidProgram
	}
	return p.device.buildLog, cl.Success
}

// CreateKernel implements cl.API.
func (a *API) CreateKernel(prog cl.Program, name string) (cl.Kernel, cl.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.programs[prog]
	if !ok {
		return 0, cl.InvalidProgram
	}
	if !p.built {
		return 0, cl.InvalidProgramExecutable
	}
	if st, ok := p.device.faults[StageKernel]; ok {
		return 0, st
	}
	if !strings.Contains(p.source, "kernel void "+name+"(") {
		return 0, cl.InvalidKernelName
	}
	k := cl.Kernel(a.handle())
	a.kernels[k] = &kernel{device: p.device, name: name}
	return k, cl.Success
}

// GetKernelWorkGroupInfo implements cl.API.
func (a *API) GetKernelWorkGroupInfo(k cl.Kernel, device cl.DeviceID, param cl.Param, buf []byte) (int, cl.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	kn, ok := a.kernels[k]
	if !ok {
		return 0, cl.InvalidKernel
	}
	if kn.device.id != device {
		return 0, cl.InvalidDevice
	}
	if st, ok := kn.device.faults[StageQuery]; ok {
		return 0, st
	}
	var v uint64
	switch param {
	case cl.KernelPreferredWorkGroupSizeMultiple:
		v = kn.device.multiple
		if m, ok := kn.device.multiples[kn.name]; ok {
			v = m
		}
	case cl.KernelWorkGroupSize:
		v = 256
	default:
		return 0, cl.InvalidValue
	}
	data := EncodeSizes(v)
	if len(buf) == 0 {
		return len(data), cl.Success
	}
	if len(buf) < len(data) {
		return 0, cl.InvalidValue
	}
	copy(buf, data)
	return len(data), cl.Success
}

// ReleaseKernel implements cl.API.
func (a *API) ReleaseKernel(k cl.Kernel) cl.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.kernels[k]; !ok {
		return cl.InvalidKernel
	}
	delete(a.kernels, k)
	return cl.Success
}

// ReleaseProgram implements cl.API.
func (a *API) ReleaseProgram(prog cl.Program) cl.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.programs[prog]; !ok {
		return cl.InvalidProgram
	}
	delete(a.programs, prog)
	return cl.Success
}

// ReleaseContext implements cl.API.
func (a *API) ReleaseContext(ctx cl.Context) cl.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.contexts[ctx]; !ok {
		return cl.InvalidContext
	}
	delete(a.contexts, ctx)
	return cl.Success
}

var _ cl.API = (*API)(nil)
