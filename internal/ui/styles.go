package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds all settings-screen styles.
type Styles struct {
	ColorPrimary lipgloss.Color
	ColorAccent  lipgloss.Color
	ColorMuted   lipgloss.Color
	ColorDanger  lipgloss.Color

	TitleStyle    lipgloss.Style
	SectionStyle  lipgloss.Style
	SelectedStyle lipgloss.Style
	RowStyle      lipgloss.Style
	MutedStyle    lipgloss.Style
	BannerStyle   lipgloss.Style
	ErrorStyle    lipgloss.Style
	StatusStyle   lipgloss.Style
	HelpStyle     lipgloss.Style

	ToggleOnIcon  string
	ToggleOffIcon string
}

// DefaultStyles returns the default theme.
func DefaultStyles() *Styles {
	s := &Styles{
		ColorPrimary: lipgloss.Color("#7C3AED"), // Violet
		ColorAccent:  lipgloss.Color("#10B981"), // Emerald
		ColorMuted:   lipgloss.Color("#6B7280"), // Gray
		ColorDanger:  lipgloss.Color("#EF4444"), // Red
	}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.ColorPrimary)
	s.SectionStyle = lipgloss.NewStyle().Bold(true).Foreground(s.ColorAccent).MarginTop(1)
	s.SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(s.ColorPrimary)
	s.RowStyle = lipgloss.NewStyle()
	s.MutedStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)
	s.BannerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorAccent).
		Padding(0, 1)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(s.ColorDanger)
	s.StatusStyle = lipgloss.NewStyle().Foreground(s.ColorAccent)
	s.HelpStyle = lipgloss.NewStyle().Foreground(s.ColorMuted)

	s.ToggleOnIcon = "●"
	s.ToggleOffIcon = "○"

	return s
}
