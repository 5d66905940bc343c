package app

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#2563EB")
	colorSuccess = lipgloss.Color("#16A34A")
	colorError   = lipgloss.Color("#DC2626")
	colorMuted   = lipgloss.Color("#6B7280")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	textStyle = lipgloss.NewStyle()

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(1, 2)
)
