package ui

import (
	"strings"
)

// renderControlsPane renders the settings controls and the Refresh button.
func (m Model) renderControlsPane(width, height int) string {
	focused := m.focus <= focusRefresh
	bgColor := m.paneBg(focused)
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles().WithBackground(bgColor)

	label := func(text string, target focusTarget) string {
		style := styles.MutedText
		if m.focus == target {
			style = styles.AccentText.Bold(true)
		}
		return bg.Render(padRight(text, 10), style)
	}

	checkbox := func(checked bool, text string, target focusTarget) string {
		box := ternary(checked, "[x]", "[ ]")
		style := styles.Text
		if m.focus == target {
			style = styles.AccentText.Bold(true)
		}
		return bg.Render(box, style) + bg.Space() + bg.Render(text, style)
	}

	button := bg.Render("[ Refresh ]", styles.MutedText)
	if m.focus == focusRefresh {
		button = styles.Selected.Bold(true).Render("[ Refresh ]")
	}

	lines := []string{
		label("Quantity", focusQuantity) + m.quantityInput.View(),
		checkbox(m.settings.DelayEnabled, "Delay", focusDelay) + bg.Spaces(2) +
			m.delayInput.View() + bg.Render("ms", ternaryStyle(m.focus == focusDelayTime, styles.AccentText, styles.FaintText)),
		checkbox(m.settings.CauseError, "Cause Error on Refresh", focusCauseError),
		"",
		button,
	}

	return m.renderTitledBox("Settings", strings.Join(lines, "\n"), width, height, focused)
}
