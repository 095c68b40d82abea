package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette
var (
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorAccent  = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
)

// Styles holds the styles bound to one output stream
type Styles struct {
	color bool

	Position lipgloss.Style
	Severity lipgloss.Style
	Caret    lipgloss.Style
	Excerpt  lipgloss.Style
	Success  lipgloss.Style
	Kind     lipgloss.Style
}

// NewStyles builds styles for w. Without colour every style renders plain text.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		color:    color,
		Position: r.NewStyle().Bold(true),
		Severity: r.NewStyle().Foreground(ColorError).Bold(true),
		Caret:    r.NewStyle().Foreground(ColorError),
		Excerpt:  r.NewStyle().Foreground(ColorMuted),
		Success:  r.NewStyle().Foreground(ColorSuccess).Bold(true),
		Kind:     r.NewStyle().Foreground(ColorAccent),
	}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}
