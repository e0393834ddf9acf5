package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tommyzliu/tilewm/internal/tui/views"
)

// Styles holds all lipgloss styles for the TUI
type Styles struct {
	Dashboard views.DashboardStyles
	Help      views.HelpStyles
	ErrorText lipgloss.Style
}

// DefaultStyles returns the default style configuration
func DefaultStyles() Styles {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Padding(0, 1)

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Padding(0, 1)

	return Styles{
		Dashboard: views.DashboardStyles{
			Header: header,
			Footer: footer,

			// Active workspace
			Active: lipgloss.NewStyle().
				Foreground(lipgloss.Color("46")). // green
				Bold(true),

			// Selected row
			Selected: lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(true),

			Idle: lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")),

			Empty: lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")), // gray

			Panel: lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1),

			Focused: lipgloss.NewStyle().
				Foreground(lipgloss.Color("226")). // yellow
				Bold(true),
		},
		Help: views.HelpStyles{
			Title:     header,
			Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
			Footer:    footer,
		},
		ErrorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
	}
}
