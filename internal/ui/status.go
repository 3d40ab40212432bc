package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/opentrivia/internal/state"
)

// statusKey maps a status kind to its theme color key.
func statusKey(kind state.StatusKind) string {
	switch kind {
	case state.StatusLoading:
		return "loading"
	case state.StatusFiltering:
		return "filtering"
	case state.StatusError:
		return "error"
	default:
		return "idle"
	}
}

// statusText is the status line text without styling.
func (m Model) statusText() string {
	return "Status: " + m.snapshot.Status.String()
}

// renderStatusLine renders "Status: <text>" with a badge in the status
// color, the danger color when a fetch error is flagged, and a spinner while
// busy.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	badge := styles.StatusStyle(statusKey(m.snapshot.Status.Kind)).Render(" ")
	textStyle := styles.Text
	if m.snapshot.FetchError {
		textStyle = styles.DangerText
	}

	line := badge + bg.Space() + bg.Render(m.statusText(), textStyle)
	if m.snapshot.Busy() {
		line += bg.Space() + bg.Render(m.spinner.View(), styles.AccentText)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(0, 1).
		Width(m.width).
		MaxWidth(m.width).
		Render(line)
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(m.help.View(m.keys))
}
