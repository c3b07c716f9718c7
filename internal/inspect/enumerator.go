package inspect

import (
	"strconv"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/errors"
	"github.com/tungetti/clinspect/internal/format"
	"github.com/tungetti/clinspect/internal/logging"
	"github.com/tungetti/clinspect/internal/property"
)

// Enumerator lists platforms and devices and drives the Inspector over the
// selected ones.
type Enumerator struct {
	api       cl.API
	inspector *Inspector
	filter    Filter
	logger    logging.Logger
}

// EnumeratorOption configures an Enumerator.
type EnumeratorOption func(*Enumerator)

// WithFilter restricts the devices and properties reported.
func WithFilter(f Filter) EnumeratorOption {
	return func(e *Enumerator) {
		e.filter = f
	}
}

// WithEnumeratorLogger sets the logger.
func WithEnumeratorLogger(l logging.Logger) EnumeratorOption {
	return func(e *Enumerator) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEnumerator creates an Enumerator. A nil inspector gets the defaults.
func NewEnumerator(api cl.API, inspector *Inspector, opts ...EnumeratorOption) *Enumerator {
	if inspector == nil {
		inspector = NewInspector(api)
	}
	e := &Enumerator{
		api:       api,
		inspector: inspector,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Platforms lists the platforms. An ICD loader without platforms reports
// CL_PLATFORM_NOT_FOUND_KHR, which is an empty list.
func (e *Enumerator) Platforms() ([]cl.PlatformID, error) {
	n, st := e.api.GetPlatformIDs(nil)
	if st == cl.PlatformNotFoundKHR {
		return nil, nil
	}
	if !st.OK() {
		return nil, errors.Wrap(errors.Enumeration, "counting platforms", st).WithOp("inspect.Platforms")
	}
	if n == 0 {
		return nil, nil
	}
	ids := make([]cl.PlatformID, n)
	n, st = e.api.GetPlatformIDs(ids)
	if !st.OK() {
		return nil, errors.Wrap(errors.Enumeration, "listing platforms", st).WithOp("inspect.Platforms")
	}
	// A platform appearing between the two calls is left for the next run.
	return ids[:min(n, len(ids))], nil
}

// Devices lists every device of a platform. CL_DEVICE_NOT_FOUND is an
// empty list.
func (e *Enumerator) Devices(platform cl.PlatformID) ([]cl.DeviceID, error) {
	n, st := e.api.GetDeviceIDs(platform, cl.DeviceTypeAll, nil)
	if st == cl.DeviceNotFound {
		return nil, nil
	}
	if !st.OK() {
		return nil, errors.Wrap(errors.Enumeration, "counting devices", st).WithOp("inspect.Devices")
	}
	if n == 0 {
		return nil, nil
	}
	ids := make([]cl.DeviceID, n)
	n, st = e.api.GetDeviceIDs(platform, cl.DeviceTypeAll, ids)
	if st == cl.DeviceNotFound {
		return nil, nil
	}
	if !st.OK() {
		return nil, errors.Wrap(errors.Enumeration, "listing devices", st).WithOp("inspect.Devices")
	}
	return ids[:min(n, len(ids))], nil
}

// Inspect builds the full report. On a fatal error the report holds what
// was inspected before it.
func (e *Enumerator) Inspect() (*Report, error) {
	return e.walk(true)
}

// List builds a report holding only platform and device names.
func (e *Enumerator) List() (*Report, error) {
	return e.walk(false)
}

// Run inspects and renders. The partial report is rendered before a fatal
// inspection error is returned.
func (e *Enumerator) Run(r Renderer) error {
	return renderWalk(r, e.Inspect)
}

// RunList renders the name-only report.
func (e *Enumerator) RunList(r Renderer) error {
	return renderWalk(r, e.List)
}

func renderWalk(r Renderer, walk func() (*Report, error)) error {
	report, err := walk()
	if report != nil && len(report.Platforms) > 0 {
		if rerr := r.Render(report); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}

func (e *Enumerator) walk(full bool) (*Report, error) {
	platforms, err := e.Platforms()
	if err != nil {
		return nil, err
	}
	e.logger.Debug("enumerated platforms", "count", len(platforms))

	report := &Report{}
	for pi, p := range platforms {
		if !e.filter.AdmitsPlatform(pi) {
			continue
		}
		devices, err := e.Devices(p)
		if err != nil {
			return report, err
		}
		e.logger.Debug("enumerated devices", "platform", pi, "count", len(devices))

		pr := PlatformReport{Index: pi, DeviceCount: len(devices)}
		if full {
			pr.Entries, err = e.inspector.InspectPlatform(p, e.filter)
			if err != nil {
				return report, err
			}
			if e.filter.AdmitsProperty(IDDeviceCount, "Number of devices") {
				pr.Entries = append(pr.Entries, Entry{
					ID: IDDeviceCount, Name: "Number of devices",
					Value:   format.Value(strconv.Itoa(len(devices)), len(devices)),
					Outcome: property.Success,
				})
			}
		}
		if pr.Name, err = e.platformName(p); err != nil {
			return report, err
		}

		for di, d := range devices {
			if !e.filter.AdmitsDevice(pi, di) {
				continue
			}
			var dr DeviceReport
			if full {
				dr, err = e.inspector.InspectDevice(p, d, e.filter)
			} else {
				dr.Name, err = e.deviceName(d)
			}
			dr.Index = di
			if err != nil {
				report.Platforms = append(report.Platforms, pr)
				return report, err
			}
			pr.Devices = append(pr.Devices, dr)
		}
		report.Platforms = append(report.Platforms, pr)
	}
	return report, nil
}

func (e *Enumerator) platformName(p cl.PlatformID) (string, error) {
	r := property.NewRetriever(e.api, e.inspector.retrieval...)
	res, err := r.Platform(p, property.Query{Param: cl.PlatformName, Text: true})
	if err != nil || !res.OK() {
		return "", err
	}
	return res.String(), nil
}

func (e *Enumerator) deviceName(d cl.DeviceID) (string, error) {
	r := property.NewRetriever(e.api, e.inspector.retrieval...)
	res, err := r.Device(d, property.Query{Param: cl.DeviceName, Text: true})
	if err != nil || !res.OK() {
		return "", err
	}
	return res.String(), nil
}
