// Package probe recovers the preferred work-group size multiple of a device
// by compiling a throwaway program and introspecting its kernels.
package probe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/errors"
	"github.com/tungetti/clinspect/internal/format"
	"github.com/tungetti/clinspect/internal/logging"
	"github.com/tungetti/clinspect/internal/property"
)

// Stage names the step of the probe that failed.
type Stage string

// Probe stages, in execution order.
const (
	StageContext Stage = "context"
	StageProgram Stage = "program"
	StageBuild   Stage = "build"
	StageKernel  Stage = "kernel"
	StageQuery   Stage = "query"
)

// DefaultWidths are the vector widths probed when none are configured.
var DefaultWidths = []int{1, 2, 4, 8, 16}

// Multiple is the preferred multiple reported for one kernel.
type Multiple struct {
	Width int
	Type  string
	Value uint64
}

// Result is the outcome of one probe run.
type Result struct {
	Multiples []Multiple
	Stage     Stage
	Status    cl.Status
	BuildLog  string
}

// OK reports whether every kernel was queried.
func (r Result) OK() bool { return r.Stage == "" }

// Err describes the failure, or returns nil.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return errors.Wrapf(errors.Probe, r.Status, "%s stage failed", r.Stage)
}

// Display renders the result. A single value is shown when all kernels agree.
func (r Result) Display() string {
	if !r.OK() || len(r.Multiples) == 0 {
		return format.DetectFailure
	}
	if r.uniform() {
		return strconv.FormatUint(r.Multiples[0].Value, 10)
	}
	parts := make([]string, len(r.Multiples))
	for i, m := range r.Multiples {
		parts[i] = fmt.Sprintf("%d (%s)", m.Value, m.Type)
	}
	return strings.Join(parts, ", ")
}

// Classified returns the formatted result with its raw value.
func (r Result) Classified() format.Classified {
	if !r.OK() || len(r.Multiples) == 0 {
		return format.Placeholder(format.DetectFailure)
	}
	if r.uniform() {
		return format.Value(r.Display(), r.Multiples[0].Value)
	}
	raw := make(map[string]uint64, len(r.Multiples))
	for _, m := range r.Multiples {
		raw[m.Type] = m.Value
	}
	return format.Value(r.Display(), raw)
}

func (r Result) uniform() bool {
	for _, m := range r.Multiples[1:] {
		if m.Value != r.Multiples[0].Value {
			return false
		}
	}
	return true
}

// Probe compiles the sum kernels against a device.
type Probe struct {
	api     cl.API
	logger  logging.Logger
	widths  []int
	options string
}

// Option configures a Probe.
type Option func(*Probe)

// WithLogger sets the logger for stage and build log output.
func WithLogger(l logging.Logger) Option {
	return func(p *Probe) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithWidths sets the vector widths to compile kernels for.
func WithWidths(widths []int) Option {
	return func(p *Probe) {
		if len(widths) > 0 {
			p.widths = append([]int(nil), widths...)
		}
	}
}

// WithBuildOptions sets the compiler options.
func WithBuildOptions(options string) Option {
	return func(p *Probe) {
		p.options = options
	}
}

// New creates a Probe.
func New(api cl.API, opts ...Option) *Probe {
	p := &Probe{
		api:    api,
		logger: logging.NewNop(),
		widths: DefaultWidths,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// KernelName returns the kernel name used for a vector width.
func KernelName(width int) string {
	if width <= 1 {
		return "sum"
	}
	return "sum" + strconv.Itoa(width)
}

// TypeName returns the OpenCL C element type for a vector width.
func TypeName(width int) string {
	if width <= 1 {
		return "float"
	}
	return "float" + strconv.Itoa(width)
}

// Source returns the program source for the given widths.
func Source(widths []int) string {
	var b strings.Builder
	for _, w := range widths {
		typ := TypeName(w)
		fmt.Fprintf(&b, "kernel void %s(global %s *a, global const %s *b, global const %s *c) {\n", KernelName(w), typ, typ, typ)
		b.WriteString("\tsize_t g = get_global_id(0);\n\ta[g] = b[g] + c[g];\n}\n")
	}
	return b.String()
}

// Run executes the probe for one platform and device. Every object it
// creates is released before Run returns, whatever the outcome.
func (p *Probe) Run(platform cl.PlatformID, device cl.DeviceID) (res Result) {
	var releases []func()
	defer func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}()

	log := p.logger.WithFields("device", fmt.Sprintf("%#x", uintptr(device)))
	fail := func(stage Stage, st cl.Status) Result {
		log.Debug("work-group probe failed", "stage", stage, "status", st)
		res.Stage = stage
		res.Status = st
		return res
	}

	ctx, st := p.api.CreateContext(platform, device)
	if !st.OK() {
		return fail(StageContext, st)
	}
	releases = append(releases, func() { p.release("context", p.api.ReleaseContext(ctx)) })

	prog, st := p.api.CreateProgramWithSource(ctx, Source(p.widths))
	if !st.OK() {
		return fail(StageProgram, st)
	}
	releases = append(releases, func() { p.release("program", p.api.ReleaseProgram(prog)) })

	if st := p.api.BuildProgram(prog, device, p.options); !st.OK() {
		if buildLog, lst := p.api.GetProgramBuildLog(prog, device); lst.OK() {
			res.BuildLog = buildLog
			log.Debug("probe build log", "log", buildLog)
		}
		return fail(StageBuild, st)
	}

	buf := make([]byte, cl.SizeTBytes)
	for _, w := range p.widths {
		kernel, st := p.api.CreateKernel(prog, KernelName(w))
		if !st.OK() {
			return fail(StageKernel, st)
		}
		releases = append(releases, func() { p.release("kernel", p.api.ReleaseKernel(kernel)) })

		n, st := p.api.GetKernelWorkGroupInfo(kernel, device, cl.KernelPreferredWorkGroupSizeMultiple, buf)
		if !st.OK() {
			return fail(StageQuery, st)
		}
		value := property.Result{Data: buf[:n]}.Size()
		log.Debug("probe kernel queried", "kernel", KernelName(w), "multiple", value)
		res.Multiples = append(res.Multiples, Multiple{Width: w, Type: TypeName(w), Value: value})
	}
	return res
}

func (p *Probe) release(what string, st cl.Status) {
	if !st.OK() {
		p.logger.Warn("failed to release probe object", "object", what, "status", st)
	}
}
