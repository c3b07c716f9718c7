package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/tungetti/clinspect/internal/inspect"
	"github.com/tungetti/clinspect/internal/property"
)

// Human renders aligned "label  value" columns.
type Human struct {
	w        io.Writer
	styles   Styles
	sections bool
}

// HumanOption configures a Human renderer.
type HumanOption func(*Human)

// WithSections prints a title line before each device section.
func WithSections(on bool) HumanOption {
	return func(h *Human) {
		h.sections = on
	}
}

// WithNoColor disables styling.
func WithNoColor(noColor bool) HumanOption {
	return func(h *Human) {
		h.styles = NewStyles(h.w, noColor)
	}
}

// NewHuman creates a human renderer writing to w.
func NewHuman(w io.Writer, opts ...HumanOption) *Human {
	h := &Human{w: w}
	h.styles = NewStyles(w, false)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Render implements inspect.Renderer.
func (h *Human) Render(report *inspect.Report) error {
	var b strings.Builder
	width := labelWidth(report)

	for _, p := range report.Platforms {
		b.WriteString(h.styles.Platform.Render(fmt.Sprintf("Platform #%d: %s", p.Index, p.Name)))
		b.WriteByte('\n')
		h.entries(&b, p.Entries, "  ", width, false)

		for _, d := range p.Devices {
			b.WriteByte('\n')
			b.WriteString("  ")
			b.WriteString(h.styles.Device.Render(fmt.Sprintf("Device #%d: %s", d.Index, d.Name)))
			b.WriteByte('\n')
			h.entries(&b, d.Entries, "    ", width-2, h.sections)
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *Human) entries(b *strings.Builder, entries []inspect.Entry, indent string, width int, sections bool) {
	current := inspect.Section(-1)
	for _, e := range entries {
		if sections && e.Section != current {
			current = e.Section
			b.WriteString(indent)
			b.WriteString(h.styles.Section.Render("-- " + current.String() + " --"))
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteString(h.styles.Label.Render(pad(e.Name, width)))
		b.WriteString("  ")
		b.WriteString(h.value(e))
		b.WriteByte('\n')
	}
}

func (h *Human) value(e inspect.Entry) string {
	display := e.Value.Display
	if e.Value.NeedsEscape {
		display = Visible(display)
	}
	switch e.Outcome {
	case property.Failed:
		return h.styles.Error.Render(display)
	case property.NotApplicable:
		return h.styles.Placeholder.Render(display)
	default:
		return h.styles.Value.Render(display)
	}
}

// Visible escapes control characters so they show up in a terminal.
func Visible(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func labelWidth(report *inspect.Report) int {
	width := 0
	for _, p := range report.Platforms {
		for _, e := range p.Entries {
			width = max(width, len(e.Name))
		}
		for _, d := range p.Devices {
			for _, e := range d.Entries {
				width = max(width, len(e.Name)+2)
			}
		}
	}
	return width
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
