package ui

import "github.com/charmbracelet/lipgloss"

// Lip Gloss styles shared with the interactive list.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true)
	AccentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	MutedStyle   = lipgloss.NewStyle().Faint(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	SelectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	HelpStyle     = lipgloss.NewStyle().Faint(true)

	FrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)
