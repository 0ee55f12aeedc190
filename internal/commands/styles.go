package commands

import "github.com/charmbracelet/lipgloss"

// Color constants for taskwell CLI output
const (
	colorHeader  = "#A78BFA" // Table headers
	colorMuted   = "#6D7383" // Completed tasks
	colorOverdue = "#EF4444" // Past-due dates
	colorHigh    = "#F59E0B" // High priority
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHeader))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorOverdue))
	highStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorHigh))
)
