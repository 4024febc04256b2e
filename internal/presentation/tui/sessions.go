package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#818cf8"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	targetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387"))
)

// SessionTable renders one row per snapshot: ID, drag state, indicator
// target and last update. Colors degrade to plain text off a terminal.
func SessionTable(snaps []*domain.Snapshot) string {
	rows := [][]string{{
		headerStyle.Render("SESSION"),
		headerStyle.Render("DRAG"),
		headerStyle.Render("INDICATOR"),
		headerStyle.Render("UPDATED"),
	}}
	for _, s := range snaps {
		rows = append(rows, []string{s.SessionID, dragCell(s.Session), indicatorCell(s.Indicator), updatedCell(s)})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func dragCell(s domain.DragSession) string {
	if !s.Active() {
		return idleStyle.Render("idle")
	}
	origin := "canvas"
	if s.FromPalette {
		origin = "palette"
	}
	return activeStyle.Render(fmt.Sprintf("%s %s (%s)", s.ActiveItem.Kind, s.ActiveItem.ID, origin))
}

func indicatorCell(d domain.DropIndicator) string {
	id, index, ok := d.Target()
	if !ok {
		return idleStyle.Render("hidden")
	}
	at := "end"
	if index != domain.NoIndex {
		at = fmt.Sprintf("%d", index)
	}
	return targetStyle.Render(fmt.Sprintf("%s @ %s %s", id, at, d.Orientation))
}

func updatedCell(s *domain.Snapshot) string {
	if s.UpdatedAt.IsZero() {
		return "-"
	}
	return s.UpdatedAt.UTC().Format("2006-01-02 15:04:05")
}
