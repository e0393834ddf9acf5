package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tommyzliu/tilewm/internal/state"
)

// DashboardStyles holds styles for the dashboard view
type DashboardStyles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Active   lipgloss.Style
	Selected lipgloss.Style
	Idle     lipgloss.Style
	Empty    lipgloss.Style
	Panel    lipgloss.Style
	Focused  lipgloss.Style
}

// Dashboard lists workspaces and the windows of the selected one
type Dashboard struct {
	styles   DashboardStyles
	snap     *state.Snapshot
	selected int
	width    int
	height   int
}

// NewDashboard creates a new Dashboard view
func NewDashboard(styles DashboardStyles) *Dashboard {
	return &Dashboard{
		styles: styles,
		width:  80,
		height: 24,
	}
}

// SetSize sets the size of the dashboard
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// SetSnapshot replaces the rendered snapshot. The first snapshot selects the
// active workspace.
func (d *Dashboard) SetSnapshot(snap *state.Snapshot) {
	first := d.snap == nil
	d.snap = snap
	if snap == nil {
		return
	}
	if first {
		d.selected = snap.Active
	}
	d.clamp()
}

// Selected returns the index of the highlighted workspace
func (d *Dashboard) Selected() int {
	return d.selected
}

// MoveUp selects the previous workspace
func (d *Dashboard) MoveUp() {
	d.selected--
	d.clamp()
}

// MoveDown selects the next workspace
func (d *Dashboard) MoveDown() {
	d.selected++
	d.clamp()
}

func (d *Dashboard) clamp() {
	n := 0
	if d.snap != nil {
		n = len(d.snap.Workspaces)
	}
	if d.selected >= n {
		d.selected = n - 1
	}
	if d.selected < 0 {
		d.selected = 0
	}
}

// View renders the dashboard
func (d *Dashboard) View() string {
	header := d.styles.Header.Render("tilewm - workspaces")

	if d.snap == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			d.styles.Empty.Render("  No status yet. Is tilewm running?"),
			"",
			d.styles.Footer.Render("Press q to quit"),
		)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		d.renderWorkspaces(),
		"  ",
		d.renderWindows(),
	)

	footer := d.styles.Footer.Render(fmt.Sprintf(
		"Windows: %d/%d | Background: #%06x | Updated %s | Press ? for help | Press q to quit",
		d.snap.WindowCount(), d.snap.Capacity, d.snap.Background,
		d.snap.UpdatedAt.Format("15:04:05"),
	))

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}

func (d *Dashboard) renderWorkspaces() string {
	var sb strings.Builder
	for i, ws := range d.snap.Workspaces {
		marker := " "
		if ws.Index == d.snap.Active {
			marker = "*"
		}
		row := fmt.Sprintf("%s %2d  %d windows", marker, ws.Index+1, len(ws.Windows))

		switch {
		case i == d.selected:
			row = d.styles.Selected.Render(row)
		case ws.Index == d.snap.Active:
			row = d.styles.Active.Render(row)
		case len(ws.Windows) == 0:
			row = d.styles.Empty.Render(row)
		default:
			row = d.styles.Idle.Render(row)
		}
		sb.WriteString(row + "\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (d *Dashboard) renderWindows() string {
	if len(d.snap.Workspaces) == 0 {
		return ""
	}
	ws := d.snap.Workspaces[d.selected]

	title := fmt.Sprintf("Workspace %d", ws.Index+1)
	if len(ws.Windows) == 0 {
		return d.styles.Panel.Render(title + "\n" + d.styles.Empty.Render("no windows"))
	}

	lines := []string{title}
	for _, w := range ws.Windows {
		g := w.Geometry
		line := fmt.Sprintf("0x%08x  %-7s  %dx%d+%d+%d  border %d #%06x",
			w.ID, w.Class, g.Width, g.Height, g.X, g.Y, w.BorderWidth, w.BorderColor)
		if w.ID == d.snap.Focused {
			line = d.styles.Focused.Render(line + "  focused")
		}
		lines = append(lines, line)
	}
	return d.styles.Panel.Render(strings.Join(lines, "\n"))
}
