package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/tungetti/clinspect/internal/inspect"
)

// List renders the platform/device tree only.
type List struct {
	w      io.Writer
	styles Styles
}

// NewList creates a list renderer writing to w.
func NewList(w io.Writer, noColor bool) *List {
	return &List{w: w, styles: NewStyles(w, noColor)}
}

// Render implements inspect.Renderer.
func (l *List) Render(report *inspect.Report) error {
	var b strings.Builder
	for _, p := range report.Platforms {
		b.WriteString(l.styles.Platform.Render(fmt.Sprintf("Platform #%d: %s", p.Index, p.Name)))
		b.WriteByte('\n')
		for _, d := range p.Devices {
			fmt.Fprintf(&b, " +-- Device #%d: %s\n", d.Index, d.Name)
		}
	}
	_, err := io.WriteString(l.w, b.String())
	return err
}
