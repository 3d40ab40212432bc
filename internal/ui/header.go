package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the title bar: app name, endpoint and last update.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("Open Trivia DB", styles.Logo)}
	if m.endpoint != "" {
		parts = append(parts, bg.Render(m.endpoint, styles.MutedText))
	}
	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts,
			bg.Render("updated", styles.FaintText)+bg.Space()+
				bg.Render(m.snapshot.LastUpdated.Format("15:04:05"), styles.MutedText))
	}
	if n := m.snapshot.ConsecutiveFailures; n > 1 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d failures in a row", n), styles.WarningText))
	}
	parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(parts, "  "))
}
