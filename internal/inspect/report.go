package inspect

import (
	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/format"
	"github.com/tungetti/clinspect/internal/property"
)

// Section groups device properties in display order.
type Section int

// Device property sections, in inspection order.
const (
	SectionIdentity Section = iota
	SectionExtensionDetection
	SectionTopology
	SectionCompute
	SectionPartitioning
	SectionWorkGroup
	SectionVectorWidths
	SectionFloatingPoint
	SectionMemory
	SectionImage
	SectionQueue
	SectionAvailability
	SectionExtensions
)

var sectionNames = [...]string{
	"identity", "extension detection", "type and topology", "compute units",
	"partitioning", "work-item and work-group sizing", "vector widths",
	"floating-point configuration", "memory", "image support",
	"queue and execution", "availability", "extensions",
}

// String returns the section title.
func (s Section) String() string {
	if int(s) < len(sectionNames) {
		return sectionNames[s]
	}
	return "unknown"
}

// Entry is one classified property ready for rendering.
type Entry struct {
	// ID is the stable catalog id, the API name of the property.
	ID      string
	Name    string
	Section Section
	Value   format.Classified
	Outcome property.Outcome
	Status  cl.Status
	// Error holds the failure text for entries that failed.
	Error string
}

// DeviceReport holds the entries of one device.
type DeviceReport struct {
	Index   int
	Name    string
	Entries []Entry
}

// PlatformReport holds a platform's entries and its selected devices.
type PlatformReport struct {
	Index       int
	Name        string
	Entries     []Entry
	DeviceCount int
	Devices     []DeviceReport
}

// Report is the result of one enumeration run.
type Report struct {
	Platforms []PlatformReport
}

// Renderer consumes a Report.
type Renderer interface {
	Render(report *Report) error
}

// Lookup returns the entry with the given id.
func (d DeviceReport) Lookup(id string) (Entry, bool) {
	return lookup(d.Entries, id)
}

// Lookup returns the entry with the given id.
func (p PlatformReport) Lookup(id string) (Entry, bool) {
	return lookup(p.Entries, id)
}

func lookup(entries []Entry, id string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Strictness controls how gated properties are treated.
type Strictness string

// Strictness modes.
const (
	// StrictnessCheck honours version and extension gates.
	StrictnessCheck Strictness = "check"
	// StrictnessTry queries gated properties anyway and drops their failures.
	StrictnessTry Strictness = "try"
	// StrictnessShow queries gated properties anyway and shows their failures.
	StrictnessShow Strictness = "show"
)

// ParseStrictness parses a strictness mode name.
func ParseStrictness(s string) (Strictness, bool) {
	switch Strictness(s) {
	case StrictnessCheck, StrictnessTry, StrictnessShow:
		return Strictness(s), true
	default:
		return "", false
	}
}
