package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/Dhanuzh/dbexplorer/internal/theme"
)

// Styles is the picker's look, derived from the palette being previewed.
type Styles struct {
	Title    lipgloss.Style
	Dim      lipgloss.Style
	Text     lipgloss.Style
	Selected lipgloss.Style
	Filter   lipgloss.Style
	Border   lipgloss.Style
}

// NewStyles builds styles for p in mode.
func NewStyles(p theme.Palette, mode theme.Mode) Styles {
	surface, text := p.Surface, p.Text
	if mode == theme.ModeDark {
		surface, text = p.SurfaceDark, p.TextDark
	}

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary)).Padding(0, 1),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.PrimaryDark)),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ContrastText(p.Primary))).Background(lipgloss.Color(p.Primary)),
		Filter:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.PrimaryLight)).
			BorderBackground(lipgloss.Color(surface)).
			Padding(0, 1),
	}
}

// ContrastText picks near-black or near-white text for a hex background.
func ContrastText(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#FFFFFF"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#1A1A1A"
	}
	return "#FAFAFA"
}

// Swatch renders label on a block of the given color.
func Swatch(hex, label string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(ContrastText(hex))).
		Padding(0, 1).
		Render(label)
}

// PaletteStrip renders the six brand colors of p side by side.
func PaletteStrip(p theme.Palette) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		Swatch(p.Primary, "  "),
		Swatch(p.PrimaryLight, "  "),
		Swatch(p.PrimaryDark, "  "),
		Swatch(p.Secondary, "  "),
		Swatch(p.Accent, "  "),
		Swatch(p.Dark, "  "),
	)
}
