// Package render turns inspection reports into human-readable columns, a
// JSON document or a platform/device tree.
package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette colours.
var (
	// ColorPrimary highlights platform and device headings.
	ColorPrimary = lipgloss.Color("#76B900")

	// ColorMuted is used for property labels and placeholders.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	// ColorError marks inline error values.
	ColorError = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

	// ColorSection is used for section titles.
	ColorSection = lipgloss.AdaptiveColor{Light: "#0EA5E9", Dark: "#38BDF8"}
)

// Styles are the lipgloss styles of the human renderer.
type Styles struct {
	Platform    lipgloss.Style
	Device      lipgloss.Style
	Section     lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Placeholder lipgloss.Style
	Error       lipgloss.Style
}

// NewStyles builds the styles for output written to w. With noColor the
// renderer is pinned to the ASCII profile and every style renders plain text.
func NewStyles(w io.Writer, noColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Platform:    r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Device:      r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Section:     r.NewStyle().Italic(true).Foreground(ColorSection),
		Label:       r.NewStyle().Foreground(ColorMuted),
		Value:       r.NewStyle(),
		Placeholder: r.NewStyle().Foreground(ColorMuted),
		Error:       r.NewStyle().Foreground(ColorError),
	}
}
