package ui

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/opentrivia/internal/opentdb"
)

// detailModal shows one trivia item. It holds a decoded copy taken when it
// opened, so later fetches and filters never change what it displays.
type detailModal struct {
	category   string
	question   string
	answer     string
	difficulty string
	kind       string

	copy   func(string) error
	notice string
	failed bool
}

func newDetailModal(item opentdb.TriviaItem, copyFn func(string) error) *detailModal {
	return &detailModal{
		category:   item.DecodedCategory(),
		question:   item.DecodedQuestion(),
		answer:     item.DecodedAnswer(),
		difficulty: item.Difficulty,
		kind:       item.Type,
		copy:       copyFn,
	}
}

// clipboardText is what `y` puts on the clipboard.
func (d *detailModal) clipboardText() string {
	return d.question + " / " + d.answer
}

// copiedMsg reports the outcome of a clipboard write.
type copiedMsg struct {
	err error
}

func (d *detailModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case copiedMsg:
		if msg.err != nil {
			log.Printf("clipboard: %v", msg.err)
			d.notice = "Copy failed"
			d.failed = true
		} else {
			d.notice = "Copied"
			d.failed = false
		}
		return d, nil, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Close), key.Matches(msg, keys.Confirm):
			return d, nil, true
		case key.Matches(msg, keys.Copy):
			text := d.clipboardText()
			copyFn := d.copy
			return d, func() tea.Msg {
				if copyFn == nil {
					return copiedMsg{}
				}
				return copiedMsg{err: copyFn(text)}
			}, false
		}
	}
	// Every other key is swallowed while the modal is open.
	return d, nil, false
}

func (d *detailModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	modalWidth := modalWidthFor(DetailModalWidth, width)
	textWidth := modalWidth - 4

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(truncate(d.category, textWidth)))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", textWidth)))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentText.Bold(true).Render("Question"))
	b.WriteString("\n")
	for _, line := range wrap(d.question, textWidth) {
		b.WriteString(styles.Text.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.AccentText.Bold(true).Render("Answer"))
	b.WriteString("\n")
	for _, line := range wrap(d.answer, textWidth) {
		b.WriteString(styles.SuccessText.Render(line))
		b.WriteString("\n")
	}

	var meta []string
	if d.difficulty != "" {
		meta = append(meta, "difficulty "+d.difficulty)
	}
	if d.kind != "" {
		meta = append(meta, "type "+d.kind)
	}
	if len(meta) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(strings.Join(meta, "  •  ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Selected.Bold(true).Render(" Close "))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("Enter/Esc: Close  •  y: Copy"))
	if d.notice != "" {
		b.WriteString("  ")
		if d.failed {
			b.WriteString(styles.DangerText.Render(d.notice))
		} else {
			b.WriteString(styles.SuccessText.Render(d.notice))
		}
	}

	return placeModal(theme, b.String(), modalWidth, width, height)
}
