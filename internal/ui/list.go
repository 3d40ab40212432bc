package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bodyHeight is the height left for the panes after the header, the
// status line and the footer.
func (m Model) bodyHeight() int {
	return maxInt(m.height-3, 6)
}

func (m Model) compact() bool {
	return m.width < LayoutCompactWidth
}

// controlsPaneHeight is fixed: five control rows plus borders.
const controlsPaneHeight = 7

func (m Model) listPaneWidth() int {
	width := m.width
	if width <= 0 {
		width = LayoutCompactWidth
	}
	if m.compact() {
		return width
	}
	return width - ControlsPaneWidth
}

func (m Model) listPaneHeight() int {
	if m.compact() {
		return maxInt(m.bodyHeight()-controlsPaneHeight, 5)
	}
	return m.bodyHeight()
}

// listRows is the number of result rows that fit in the list pane: the
// pane minus borders, the filter line, a spacer and the result count.
func (m Model) listRows() int {
	return maxInt(m.listPaneHeight()-5, 1)
}

// renderBody lays out the controls and list panes side by side, or stacked
// on narrow terminals.
func (m Model) renderBody() string {
	listPane := m.renderListPane(m.listPaneWidth(), m.listPaneHeight())
	if m.compact() {
		controls := m.renderControlsPane(m.listPaneWidth(), controlsPaneHeight)
		return lipgloss.JoinVertical(lipgloss.Left, controls, listPane)
	}
	controls := m.renderControlsPane(ControlsPaneWidth, m.bodyHeight())
	return lipgloss.JoinHorizontal(lipgloss.Top, controls, listPane)
}

func (m Model) renderListPane(width, height int) string {
	focused := m.focus == focusFilter || m.focus == focusList
	bgColor := m.paneBg(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)
	inner := width - 2

	var lines []string

	label := bg.Render("Filter:", ternaryStyle(m.focus == focusFilter, styles.AccentText, styles.MutedText))
	lines = append(lines, label+bg.Space()+m.filterInput.View())
	lines = append(lines, "")

	rows := m.listRows()
	items := m.snapshot.Filtered
	for i := m.offset; i < len(items) && i < m.offset+rows; i++ {
		text := padRight(truncate(items[i].DecodedCategory(), inner-2), inner-2)
		if i == m.selected && m.focus == focusList {
			lines = append(lines, bg.Space()+styles.Selected.Render(text))
		} else if i == m.selected {
			lines = append(lines, bg.Space()+bg.Render(text, styles.AccentText))
		} else {
			lines = append(lines, bg.Space()+bg.Render(text, styles.Text))
		}
	}
	for len(lines) < rows+2 {
		lines = append(lines, "")
	}

	count := len(items)
	lines = append(lines, bg.Render(fmt.Sprintf("%d Result(s)", count), styles.MutedText))

	return m.renderTitledBox("Questions", strings.Join(lines, "\n"), width, height, focused)
}

func (m Model) paneBg(focused bool) string {
	if focused {
		return m.theme.FocusBg
	}
	return m.theme.SurfaceAlt
}

func ternaryStyle(cond bool, a, b lipgloss.Style) lipgloss.Style {
	if cond {
		return a
	}
	return b
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐. Focused boxes use the focus border and
// background colors.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr := m.theme.Border
	if focused {
		borderColorStr = m.theme.BorderFocus
	}
	bgColorStr := m.paneBg(focused)
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := maxInt(width-2, len(title)+4)
	leftPad := (innerWidth - len(title) - 2) / 2
	rightPad := innerWidth - len(title) - 2 - leftPad

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().
		Width(innerWidth).
		MaxWidth(innerWidth).
		Background(lipgloss.Color(bgColorStr))

	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	padded := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		padded = append(padded,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(padded, "\n") + "\n" + bottomBorder
}
