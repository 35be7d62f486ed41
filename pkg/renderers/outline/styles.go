package outline

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorMuted   = lipgloss.Color("#6C7086")
	ColorSubtle  = lipgloss.Color("#45475A")
	ColorText    = lipgloss.Color("#CDD6F4")
	ColorError   = lipgloss.Color("#FF5F87")
)

// Styles groups the lipgloss styles the outline uses.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Box      lipgloss.Style
	Field    lipgloss.Style
	Selected lipgloss.Style
	Kind     lipgloss.Style
	Required lipgloss.Style
	Muted    lipgloss.Style
}

// DefaultStyles is the colored terminal palette.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1).
			Bold(true),
		Section: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1),
		Field: lipgloss.NewStyle().
			Foreground(ColorText),
		Selected: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		Kind: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),
		Required: lipgloss.NewStyle().
			Foreground(ColorError),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// PlainStyles renders without color or borders.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain,
		Section:  plain,
		Box:      plain,
		Field:    plain,
		Selected: plain,
		Kind:     plain,
		Required: plain,
		Muted:    plain,
	}
}

const (
	IconSelected = "▸"
	IconField    = "•"
	IconRequired = "*"
)
