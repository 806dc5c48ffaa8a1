package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/backend"
)

var (
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// StatusIcon returns the glyph shown next to an environment.
func StatusIcon(s backend.Status) string {
	switch s {
	case backend.StatusRunning:
		return "●"
	case backend.StatusStopped:
		return "○"
	default:
		return "?"
	}
}

// StatusStyle returns the colour used for a status.
func StatusStyle(s backend.Status) lipgloss.Style {
	switch s {
	case backend.StatusRunning:
		return runningStyle
	case backend.StatusStopped:
		return stoppedStyle
	default:
		return unknownStyle
	}
}

// RenderStatus renders icon and status name in the status colour.
func RenderStatus(s backend.Status) string {
	return StatusStyle(s).Render(StatusIcon(s) + " " + string(s))
}
