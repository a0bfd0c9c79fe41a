package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorError   = lipgloss.Color("196") // bright red
	colorWarning = lipgloss.Color("214") // orange
	colorSuccess = lipgloss.Color("76")  // green
	colorInfo    = lipgloss.Color("39")  // blue
	colorMuted   = lipgloss.Color("242") // gray
)

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	stderrStyle = lipgloss.NewStyle().
			Foreground(colorError)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
