package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/opentrivia/internal/logtail"
)

// logLoadedMsg carries the tail of the application log.
type logLoadedMsg struct {
	path  string
	lines []string
	err   error
}

func loadLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logLoadedMsg{}
		}
		lines, err := logtail.Read(path, LogTailLines)
		return logLoadedMsg{path: path, lines: lines, err: err}
	}
}

// logModal shows the end of the application log in a scrollable viewport.
type logModal struct {
	path     string
	entries  []logtail.Entry
	err      error
	viewport viewport.Model
	width    int
	height   int
	styled   string // theme the content was last rendered with
}

func newLogModal(path string, lines []string, err error, width, height int) *logModal {
	m := &logModal{
		path:    path,
		entries: logtail.ParseAll(lines),
		err:     err,
	}
	m.resize(width, height)
	return m
}

func (l *logModal) resize(width, height int) {
	l.width = width
	l.height = height
	vpWidth := modalWidthFor(LogModalWidth, width) - 4
	vpHeight := height - 10
	if vpHeight < 3 {
		vpHeight = 3
	}
	if l.viewport.Width == 0 {
		l.viewport = viewport.New(vpWidth, vpHeight)
	} else {
		l.viewport.Width = vpWidth
		l.viewport.Height = vpHeight
	}
	l.styled = ""
}

func (l *logModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.resize(msg.Width, msg.Height)
		return l, nil, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Close), key.Matches(msg, keys.Confirm):
			return l, nil, true
		case key.Matches(msg, keys.Top):
			l.viewport.GotoTop()
			return l, nil, false
		case key.Matches(msg, keys.Bottom):
			l.viewport.GotoBottom()
			return l, nil, false
		}
		var cmd tea.Cmd
		l.viewport, cmd = l.viewport.Update(msg)
		return l, cmd, false
	}
	return l, nil, false
}

func (l *logModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	if l.styled != theme.Name {
		l.viewport.SetContent(l.renderContent(theme))
		l.viewport.GotoBottom()
		l.styled = theme.Name
	}
	modalWidth := modalWidthFor(LogModalWidth, width)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Application Log"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(truncate(ternary(l.path == "", "logging to stderr", l.path), modalWidth-4)))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n")
	b.WriteString(l.viewport.View())
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d %s  •  j/k: Scroll  •  g/G: Top/Bottom  •  Esc: Close",
		len(l.entries), pluralize(len(l.entries), "line", "lines"))))

	return placeModal(theme, b.String(), modalWidth, width, height)
}

func (l *logModal) renderContent(theme Theme) string {
	styles := theme.Styles()
	if l.err != nil {
		return styles.DangerText.Render(fmt.Sprintf("Failed to read log: %v", l.err))
	}
	if len(l.entries) == 0 {
		return styles.MutedText.Render("No log output yet")
	}

	width := l.viewport.Width
	lines := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		var b strings.Builder
		if !e.Time.IsZero() {
			b.WriteString(styles.FaintText.Render(e.Time.Format("15:04:05")))
			b.WriteString(" ")
		}
		b.WriteString(levelStyle(e.Level, styles).Render(truncate(e.Message, width-9)))
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(b.String()))
	}
	return strings.Join(lines, "\n")
}

// levelStyle returns the style for a log level.
func levelStyle(level logtail.Level, styles Styles) lipgloss.Style {
	switch level {
	case logtail.LevelWarn:
		return styles.WarningText
	case logtail.LevelError:
		return styles.DangerText
	default:
		return styles.Text
	}
}
