package render

import (
	"encoding/json"
	"io"

	"github.com/tungetti/clinspect/internal/inspect"
)

// Document is the JSON layout of a report.
type Document struct {
	Platforms []PlatformDocument `json:"platforms"`
}

// PlatformDocument is one platform of a Document.
type PlatformDocument struct {
	Index       int                `json:"index"`
	Name        string             `json:"name"`
	DeviceCount int                `json:"device_count"`
	Properties  []PropertyDocument `json:"properties"`
	Devices     []DeviceDocument   `json:"devices"`
}

// DeviceDocument is one device of a Document.
type DeviceDocument struct {
	Index      int                `json:"index"`
	Name       string             `json:"name"`
	Properties []PropertyDocument `json:"properties"`
}

// PropertyDocument is one classified property.
type PropertyDocument struct {
	Key     string      `json:"key"`
	Name    string      `json:"name"`
	Section string      `json:"section,omitempty"`
	Display string      `json:"display"`
	Raw     interface{} `json:"raw,omitempty"`
	Status  string      `json:"status"`
	Error   string      `json:"error,omitempty"`
}

// JSON renders a report as an indented JSON document.
type JSON struct {
	w      io.Writer
	indent string
}

// NewJSON creates a JSON renderer writing to w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w, indent: "  "}
}

// Render implements inspect.Renderer.
func (j *JSON) Render(report *inspect.Report) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", j.indent)
	enc.SetEscapeHTML(false)
	return enc.Encode(NewDocument(report))
}

// NewDocument converts a report to its JSON layout.
func NewDocument(report *inspect.Report) Document {
	doc := Document{Platforms: make([]PlatformDocument, 0, len(report.Platforms))}
	for _, p := range report.Platforms {
		pd := PlatformDocument{
			Index:       p.Index,
			Name:        p.Name,
			DeviceCount: p.DeviceCount,
			Properties:  properties(p.Entries, false),
			Devices:     make([]DeviceDocument, 0, len(p.Devices)),
		}
		for _, d := range p.Devices {
			pd.Devices = append(pd.Devices, DeviceDocument{
				Index:      d.Index,
				Name:       d.Name,
				Properties: properties(d.Entries, true),
			})
		}
		doc.Platforms = append(doc.Platforms, pd)
	}
	return doc
}

func properties(entries []inspect.Entry, sections bool) []PropertyDocument {
	out := make([]PropertyDocument, 0, len(entries))
	for _, e := range entries {
		pd := PropertyDocument{
			Key:     e.ID,
			Name:    e.Name,
			Display: e.Value.Display,
			Raw:     e.Value.Raw,
			Status:  e.Outcome.String(),
			Error:   e.Error,
		}
		if sections {
			pd.Section = e.Section.String()
		}
		out = append(out, pd)
	}
	return out
}
