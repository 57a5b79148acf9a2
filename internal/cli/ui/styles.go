// Package ui renders admin CLI output.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	BoldStyle    = lipgloss.NewStyle().Bold(true)
)
