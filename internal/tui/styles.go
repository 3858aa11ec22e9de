package tui

import "github.com/charmbracelet/lipgloss"

// Styles collects every lipgloss style the browser paints with.
type Styles struct {
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Header    lipgloss.Style
	Seed      lipgloss.Style
	Value     lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	Pane      lipgloss.Style
}

// DefaultStyles returns the adaptive scheme used on both light and dark
// terminals.
func DefaultStyles() Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#6b6b6b", Dark: "#8a8a8a"}
	accent := lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#5fd7ff"}
	good := lipgloss.AdaptiveColor{Light: "#005f00", Dark: "#87d787"}
	bad := lipgloss.AdaptiveColor{Light: "#af0000", Dark: "#ff5f5f"}

	return Styles{
		Tab:       lipgloss.NewStyle().Padding(0, 2).Foreground(subtle),
		ActiveTab: lipgloss.NewStyle().Padding(0, 2).Bold(true).Underline(true).Foreground(accent),
		Header:    lipgloss.NewStyle().MarginBottom(1),
		Seed:      lipgloss.NewStyle().Foreground(accent),
		Value:     lipgloss.NewStyle().Foreground(good),
		Muted:     lipgloss.NewStyle().Foreground(subtle),
		Error:     lipgloss.NewStyle().Foreground(bad),
		Help:      lipgloss.NewStyle().Foreground(subtle).MarginTop(1),
		Pane:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}
