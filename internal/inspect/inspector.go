package inspect

import (
	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/extension"
	"github.com/tungetti/clinspect/internal/format"
	"github.com/tungetti/clinspect/internal/logging"
	"github.com/tungetti/clinspect/internal/pci"
	"github.com/tungetti/clinspect/internal/probe"
	"github.com/tungetti/clinspect/internal/property"
	"github.com/tungetti/clinspect/internal/topology"
)

// Inspector retrieves and classifies the properties of platforms and devices.
type Inspector struct {
	api        cl.API
	logger     logging.Logger
	strictness Strictness
	verbose    bool
	probe      *probe.Probe
	scanner    *pci.Scanner
	retrieval  []property.Option
	catalog    []Descriptor
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(i *Inspector) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithStrictness sets how gated properties are handled.
func WithStrictness(s Strictness) Option {
	return func(i *Inspector) {
		if s != "" {
			i.strictness = s
		}
	}
}

// WithVerbose renders not applicable properties as "n/a" instead of
// omitting them.
func WithVerbose(v bool) Option {
	return func(i *Inspector) {
		i.verbose = v
	}
}

// WithProbe sets the work-group probe. A nil probe disables it.
func WithProbe(p *probe.Probe) Option {
	return func(i *Inspector) {
		i.probe = p
	}
}

// WithPCIScanner enables sysfs enrichment of decoded bus addresses.
func WithPCIScanner(s *pci.Scanner) Option {
	return func(i *Inspector) {
		i.scanner = s
	}
}

// WithRetrieverOptions passes options to the per-device Retriever.
func WithRetrieverOptions(opts ...property.Option) Option {
	return func(i *Inspector) {
		i.retrieval = append(i.retrieval, opts...)
	}
}

// WithCatalog replaces the device catalog.
func WithCatalog(c []Descriptor) Option {
	return func(i *Inspector) {
		i.catalog = c
	}
}

// NewInspector creates an Inspector over api.
func NewInspector(api cl.API, opts ...Option) *Inspector {
	i := &Inspector{
		api:        api,
		logger:     logging.NewNop(),
		strictness: StrictnessCheck,
		catalog:    DeviceCatalog,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// deviceContext is the state of one device inspection pass. It owns the
// pass's Retriever and is never shared.
type deviceContext struct {
	platform  cl.PlatformID
	device    cl.DeviceID
	retriever *property.Retriever
	support   extension.Support
	version   Version
	address   *topology.Address
	probe     *probe.Probe
	scanner   *pci.Scanner
	logger    logging.Logger
}

func (dc *deviceContext) query(param cl.Param, optional bool) (property.Result, error) {
	return dc.retriever.Device(dc.device, property.Query{Param: param, Optional: optional})
}

// InspectPlatform classifies the platform properties.
func (i *Inspector) InspectPlatform(platform cl.PlatformID, filter Filter) ([]Entry, error) {
	r := property.NewRetriever(i.api, append([]property.Option{property.WithLogger(i.logger)}, i.retrieval...)...)

	var support extension.Support
	if res, err := r.Platform(platform, property.Query{Param: cl.PlatformExtensions, Text: true}); err != nil {
		return nil, err
	} else if res.OK() {
		support = extension.Detect(res.String(), extension.PlatformCatalog)
	}

	var entries []Entry
	for _, d := range PlatformCatalog {
		gated := d.Extension != "" && !support.Has(d.Extension)
		if gated && i.strictness == StrictnessCheck {
			continue
		}
		if !filter.AdmitsProperty(d.ID, d.Name) {
			continue
		}
		res, err := r.Platform(platform, property.Query{Param: d.Param, Optional: d.Optional, Text: d.Kind == KindString})
		if err != nil {
			return nil, err
		}
		var value format.Classified
		if res.OK() {
			value = d.Format(res, d.Kind)
		}
		if e, ok := i.entry(d, res, value, gated); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// InspectDevice classifies every admitted property of a device, in catalog
// order. Property failures are recorded in the entries; the error is only
// set for fatal conditions.
func (i *Inspector) InspectDevice(platform cl.PlatformID, device cl.DeviceID, filter Filter) (DeviceReport, error) {
	log := i.logger.WithPrefix("inspect")
	dc := &deviceContext{
		platform:  platform,
		device:    device,
		retriever: property.NewRetriever(i.api, append([]property.Option{property.WithLogger(log)}, i.retrieval...)...),
		version:   Version10,
		probe:     i.probe,
		scanner:   i.scanner,
		logger:    log,
	}

	var report DeviceReport
	name, err := dc.retriever.Device(device, property.Query{Param: cl.DeviceName, Text: true})
	if err != nil {
		return report, err
	}
	if name.OK() {
		report.Name = name.String()
	}

	ver, err := dc.query(cl.DeviceVersion, false)
	if err != nil {
		return report, err
	}
	if ver.OK() {
		if v, perr := ParseVersion(ver.String()); perr == nil {
			dc.version = v
		} else {
			log.Debug("assuming version 1.0", "error", perr)
		}
	}

	ext, err := dc.query(cl.DeviceExtensions, false)
	if err != nil {
		return report, err
	}
	if ext.OK() {
		dc.support = extension.Detect(ext.String(), extension.DeviceCatalog)
	}
	log.Debug("device capabilities", "name", report.Name, "version", dc.version, "extensions", dc.support.Detected())

	for _, d := range i.catalog {
		gated := !dc.version.AtLeast(d.MinVersion) || (d.Extension != "" && !dc.support.Has(d.Extension))
		if gated && i.strictness == StrictnessCheck {
			// Gated properties are never queried; verbose mode still lists them.
			if (d.Absent != "" || i.verbose) && filter.AdmitsProperty(d.ID, d.Name) {
				absent := d.Absent
				if absent == "" {
					absent = format.NotAvailable
				}
				report.Entries = append(report.Entries, Entry{
					ID: d.ID, Name: d.Name, Section: d.Section,
					Value:   format.Placeholder(absent),
					Outcome: property.NotApplicable,
				})
			}
			continue
		}
		if !filter.AdmitsProperty(d.ID, d.Name) {
			continue
		}

		res, value, err := i.evaluate(dc, d)
		if err != nil {
			return report, err
		}
		if e, ok := i.entry(d, res, value, gated); ok {
			report.Entries = append(report.Entries, e)
		}
	}
	return report, nil
}

func (i *Inspector) evaluate(dc *deviceContext, d Descriptor) (property.Result, format.Classified, error) {
	if d.Compute != nil {
		return d.Compute(dc, d)
	}
	res, err := dc.retriever.Device(dc.device, property.Query{Param: d.Param, Optional: d.Optional, Text: d.Kind == KindString})
	if err != nil || !res.OK() {
		return res, format.Classified{}, err
	}
	return res, d.Format(res, d.Kind), nil
}

// entry applies the strictness and verbosity rules to a result. gated marks
// properties whose version or extension gate failed and that were queried
// only because the gates are ignored.
func (i *Inspector) entry(d Descriptor, res property.Result, value format.Classified, gated bool) (Entry, bool) {
	e := Entry{ID: d.ID, Name: d.Name, Section: d.Section, Outcome: res.Outcome, Status: res.Status}

	switch res.Outcome {
	case property.Success:
		e.Value = value
		return e, true

	case property.NotApplicable:
		if gated && i.strictness == StrictnessTry {
			return e, false
		}
		if !i.verbose && i.strictness != StrictnessShow {
			return e, false
		}
		e.Value = format.Placeholder(format.NotAvailable)
		return e, true

	default:
		if gated && i.strictness == StrictnessTry {
			return e, false
		}
		e.Error = errorText(res)
		if value.Display != "" {
			e.Value = value
		} else {
			e.Value = format.Placeholder("<error: " + res.Status.String() + ">")
		}
		return e, true
	}
}

func errorText(res property.Result) string {
	if err := res.Err(); err != nil {
		return err.Error()
	}
	return ""
}
