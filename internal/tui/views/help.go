package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Help represents the help view
type Help struct {
	width    int
	height   int
	styles   HelpStyles
	bindings []key.Binding
}

// HelpStyles holds styles for the help view
type HelpStyles struct {
	Title     lipgloss.Style
	Highlight lipgloss.Style
	Footer    lipgloss.Style
}

// NewHelp creates a new help view listing bindings
func NewHelp(styles HelpStyles, bindings []key.Binding) *Help {
	return &Help{
		width:    80,
		height:   24,
		styles:   styles,
		bindings: bindings,
	}
}

// SetSize sets the size of the help view
func (h *Help) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help view
func (h *Help) View() string {
	rows := [][]string{{"Key", "Action"}}
	for _, b := range h.bindings {
		help := b.Help()
		rows = append(rows, []string{help.Key, help.Desc})
	}

	output := h.styles.Title.Render("tilewm status help") + "\n"
	output += strings.Repeat("─", h.width) + "\n\n"
	output += h.buildTable(rows)
	output += "\n" + h.styles.Footer.Render("The dashboard refreshes every second. Press ? to close help")
	return output
}

// buildTable builds a formatted table
func (h *Help) buildTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	// Calculate column widths
	colWidths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if n := lipgloss.Width(cell); n > colWidths[i] {
				colWidths[i] = n
			}
		}
	}

	var sb strings.Builder

	// Header row
	for i, cell := range rows[0] {
		sb.WriteString("  ")
		sb.WriteString(h.styles.Highlight.Render(padRight(cell, colWidths[i])))
	}
	sb.WriteString("\n")

	// Data rows
	for _, row := range rows[1:] {
		for i, cell := range row {
			sb.WriteString("  ")
			sb.WriteString(padRight(cell, colWidths[i]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// padRight pads a string to the right
func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
