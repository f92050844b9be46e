package tui

import "github.com/charmbracelet/lipgloss"

// Styles 终端界面样式
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Tile      lipgloss.Style
	TileLit   lipgloss.Style
	TileFocus lipgloss.Style
	Footer    lipgloss.Style
	Frame     lipgloss.Style
}

// DefaultStyles 默认配色，与桌面端保持一致
func DefaultStyles() Styles {
	accent := lipgloss.Color("#F2B705")
	muted := lipgloss.Color("#96A0B4")
	text := lipgloss.Color("#ECE6D6")

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			MarginBottom(1),
		Body: lipgloss.NewStyle().
			Foreground(text).
			Width(60),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Accent: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60C878")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E65A50")),
		Tile: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2C4264")),
		TileLit: lipgloss.NewStyle().
			Foreground(accent),
		TileFocus: lipgloss.NewStyle().
			Foreground(text).
			Underline(true),
		Footer: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(1, 2),
	}
}
