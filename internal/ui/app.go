package ui

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/opentrivia/internal/coalesce"
	"github.com/five82/opentrivia/internal/opentdb"
	"github.com/five82/opentrivia/internal/prefs"
	"github.com/five82/opentrivia/internal/state"
)

// focusTarget is the control that receives keyboard input.
type focusTarget int

const (
	focusQuantity focusTarget = iota
	focusDelay
	focusDelayTime
	focusCauseError
	focusRefresh
	focusFilter
	focusList
	focusCount
)

// Fetch triggers, used in log lines.
const (
	triggerManual = "manual"
	triggerAuto   = "auto"
)

// Options configures the UI.
type Options struct {
	Context         context.Context
	Fetcher         opentdb.Fetcher
	Store           *state.Store
	Prefs           prefs.Store
	Settings        prefs.Settings
	Endpoint        string // host shown in the header
	LogFile         string
	FilterDebounce  time.Duration
	RefreshThrottle time.Duration
	AutoRefresh     time.Duration // zero disables
	Clipboard       func(string) error
	Now             func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	fetcher     opentdb.Fetcher
	store       *state.Store
	prefs       prefs.Store
	endpoint    string
	logFile     string
	autoRefresh time.Duration
	clipboard   func(string) error

	// Coalescing
	filterDebounce *coalesce.Debouncer
	pendingFetch   *coalesce.Debouncer // a newer accepted trigger supersedes a delayed fetch
	throttle       *coalesce.Throttler
	filterPending  bool
	initialFetch   coalesce.Ticket

	// Settings
	settings prefs.Settings

	// UI state
	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool
	focus  focusTarget

	// Controls
	quantityInput textinput.Model
	delayInput    textinput.Model
	filterInput   textinput.Model

	// Data state
	snapshot state.Snapshot
	selected int
	offset   int

	// Chrome
	spinner  spinner.Model
	help     help.Model
	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model. The initial fetch is scheduled here and
// fired from Init; it does not count against the refresh throttle.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := opts.Store
	if store == nil {
		store = state.NewStore()
	}

	debounce := opts.FilterDebounce
	if debounce <= 0 {
		debounce = DefaultFilterDebounce
	}
	throttleWindow := opts.RefreshThrottle
	if throttleWindow <= 0 {
		throttleWindow = DefaultRefreshThrottle
	}
	throttle := coalesce.NewThrottler(throttleWindow)
	if opts.Now != nil {
		throttle.Now = opts.Now
	}

	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	settings := opts.Settings
	if settings == (prefs.Settings{}) {
		settings = prefs.Defaults()
	}

	m := Model{
		ctx:            ctx,
		fetcher:        opts.Fetcher,
		store:          store,
		prefs:          opts.Prefs,
		endpoint:       opts.Endpoint,
		logFile:        opts.LogFile,
		autoRefresh:    opts.AutoRefresh,
		clipboard:      copyFn,
		filterDebounce: coalesce.NewDebouncer(debounce),
		pendingFetch:   coalesce.NewDebouncer(0),
		throttle:       throttle,
		settings:       settings,
		keys:           DefaultKeyMap(),
		theme:          GetTheme(settings.Theme),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:           help.New(),
	}
	m.initInputs()

	store.BeginLoading()
	m.initialFetch = m.pendingFetch.Trigger()
	m.syncSnapshot()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.scheduleFetch(m.initialFetch),
	}
	if m.autoRefresh > 0 {
		cmds = append(cmds, autoRefreshCmd(m.autoRefresh))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.resizeInputs()
		m.clampSelection()
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchFireMsg:
		return m.handleFetchFire(msg)

	case fetchDoneMsg:
		m.syncSnapshot()
		return m, nil

	case filterSettledMsg:
		return m.handleFilterSettled(msg)

	case autoRefreshMsg:
		cmd := m.refresh(triggerAuto)
		return m, tea.Batch(cmd, autoRefreshCmd(m.autoRefresh))

	case logLoadedMsg:
		if m.modal == nil {
			m.modal = newLogModal(msg.path, msg.lines, msg.err, m.width, m.height)
		}
		return m, nil

	case copiedMsg:
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey routes keyboard input. An open modal captures every key except
// ctrl+c.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh(triggerManual)
	case key.Matches(msg, m.keys.ShowLog):
		return m, loadLogCmd(m.logFile)
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	if !m.editingText() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		}
	}

	switch m.focus {
	case focusQuantity:
		return m.handleNumericKey(msg, prefs.KeyQuantity)
	case focusDelayTime:
		return m.handleNumericKey(msg, prefs.KeyDelayTime)
	case focusDelay:
		if key.Matches(msg, m.keys.Toggle) {
			m.settings.DelayEnabled = !m.settings.DelayEnabled
			m.persist(prefs.KeyDelay)
		}
	case focusCauseError:
		if key.Matches(msg, m.keys.Toggle) {
			m.settings.CauseError = !m.settings.CauseError
			m.persist(prefs.KeyCauseError)
		}
	case focusRefresh:
		if key.Matches(msg, m.keys.Toggle) {
			return m, m.refresh(triggerManual)
		}
	case focusFilter:
		return m.handleFilterKey(msg)
	case focusList:
		return m.handleListKey(msg)
	}
	return m, nil
}

// editingText reports whether the focused control consumes printable keys.
func (m Model) editingText() bool {
	switch m.focus {
	case focusQuantity, focusDelayTime, focusFilter:
		return true
	}
	return false
}

// --- Fetch controller ---

// refresh asks the throttle for a fetch. A manual refresh first clears the
// filter: the input is emptied, the pending debounce is cancelled and the
// list shows every fetched item again, whether or not the throttle lets the
// fetch through.
func (m *Model) refresh(trigger string) tea.Cmd {
	if trigger == triggerManual {
		m.filterInput.SetValue("")
		m.filterDebounce.Cancel()
		m.store.ResetFilter()
		if m.filterPending {
			m.filterPending = false
			m.store.ApplyFilter("")
		}
	}

	if !m.throttle.Allow() {
		log.Printf("refresh (%s) dropped by throttle, next in %s", trigger, m.throttle.Remaining().Round(time.Millisecond))
		m.syncSnapshot()
		return nil
	}

	m.store.BeginLoading()
	m.syncSnapshot()
	return m.scheduleFetch(m.pendingFetch.Trigger())
}

// fetchDelay returns the artificial delay before a fetch fires.
func (m Model) fetchDelay() time.Duration {
	if !m.settings.DelayEnabled || m.settings.DelayMs <= 0 {
		return 0
	}
	return time.Duration(m.settings.DelayMs) * time.Millisecond
}

func (m Model) scheduleFetch(ticket coalesce.Ticket) tea.Cmd {
	delay := m.fetchDelay()
	if delay == 0 {
		return func() tea.Msg { return fetchFireMsg{ticket: ticket} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return fetchFireMsg{ticket: ticket}
	})
}

func (m Model) handleFetchFire(msg fetchFireMsg) (tea.Model, tea.Cmd) {
	if !m.pendingFetch.Settled(msg.ticket) {
		log.Printf("delayed fetch superseded by a newer refresh")
		return m, nil
	}
	if m.fetcher == nil {
		return m, nil
	}
	query := opentdb.Query{
		Amount:     m.settings.Quantity,
		CauseError: m.settings.CauseError,
		RequestID:  m.store.StartFetch(),
	}
	m.syncSnapshot()
	return m, fetchCmd(m.ctx, m.fetcher, m.store, query)
}

// fetchCmd runs the request off the update loop and records the outcome in
// the store. Results for superseded request IDs are discarded by the store.
func fetchCmd(ctx context.Context, fetcher opentdb.Fetcher, store *state.Store, query opentdb.Query) tea.Cmd {
	return func() tea.Msg {
		id := query.RequestID
		log.Printf("fetch %s start amount=%d cause_error=%t", id, query.Amount, query.CauseError)

		resp, err := fetcher.FetchQuestions(ctx, query)
		if err != nil {
			applied := store.FailFetch(id, opentdb.Reason(err))
			if applied {
				log.Printf("fetch %s failed: %v", id, err)
			} else {
				log.Printf("fetch %s stale failure ignored: %v", id, err)
			}
			return fetchDoneMsg{id: id, applied: applied, err: err}
		}

		if resp.ResponseCode != 0 {
			log.Printf("fetch %s response_code=%d (%s)", id, resp.ResponseCode, opentdb.ResponseCodeText(resp.ResponseCode))
		}
		applied := store.CompleteFetch(id, resp.Results)
		if applied {
			log.Printf("fetch %s ok items=%d", id, len(resp.Results))
		} else {
			log.Printf("fetch %s stale result ignored", id)
		}
		return fetchDoneMsg{id: id, applied: applied}
	}
}

// --- Filter controller ---

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() == before {
		return m, cmd
	}

	m.store.BeginFilter()
	m.filterPending = true
	m.syncSnapshot()

	ticket := m.filterDebounce.Trigger()
	settle := tea.Tick(m.filterDebounce.Wait, func(time.Time) tea.Msg {
		return filterSettledMsg{ticket: ticket}
	})
	return m, tea.Batch(cmd, settle)
}

func (m Model) handleFilterSettled(msg filterSettledMsg) (tea.Model, tea.Cmd) {
	if !m.filterDebounce.Settled(msg.ticket) {
		return m, nil
	}
	m.filterPending = false
	m.store.ApplyFilter(m.filterInput.Value())
	m.selected = 0
	m.offset = 0
	m.syncSnapshot()
	return m, nil
}

// --- Settings ---

// handleNumericKey applies a keystroke to a numeric field. Edits that would
// leave anything but digits in the field are ignored. An empty field is
// shown but not stored.
func (m Model) handleNumericKey(msg tea.KeyMsg, settingKey string) (tea.Model, tea.Cmd) {
	input := &m.quantityInput
	if settingKey == prefs.KeyDelayTime {
		input = &m.delayInput
	}

	updated, cmd := input.Update(msg)
	text := updated.Value()
	if !prefs.AcceptableNumericEdit(text) {
		return m, nil
	}
	*input = updated

	n, ok := prefs.ParseNumericInput(text)
	if !ok {
		return m, cmd
	}
	switch settingKey {
	case prefs.KeyQuantity:
		if n == m.settings.Quantity {
			return m, cmd
		}
		m.settings.Quantity = n
	case prefs.KeyDelayTime:
		if n == m.settings.DelayMs {
			return m, cmd
		}
		m.settings.DelayMs = n
	}
	m.persist(settingKey)
	return m, cmd
}

// persist writes one setting. Failures are logged only.
func (m *Model) persist(settingKey string) {
	if m.prefs == nil {
		return
	}
	if err := m.settings.Save(m.prefs, settingKey); err != nil {
		log.Printf("settings: %v", err)
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.settings.Theme = m.theme.Name
	m.persist(prefs.KeyTheme)
}

// --- Focus and inputs ---

func (m *Model) initInputs() {
	m.quantityInput = newNumericInput(m.settings.Quantity)
	m.delayInput = newNumericInput(m.settings.DelayMs)

	m.filterInput = textinput.New()
	m.filterInput.Prompt = ""
	m.filterInput.Placeholder = "category"
	m.filterInput.CharLimit = FilterCharLimit

	m.focus = focusQuantity
	m.quantityInput.Focus()
}

func newNumericInput(value int) textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = NumericCharLimit
	input.Width = NumericCharLimit
	input.SetValue(strconv.Itoa(value))
	input.CursorEnd()
	return input
}

func (m *Model) resizeInputs() {
	width := m.listPaneWidth() - 14
	if width < 8 {
		width = 8
	}
	m.filterInput.Width = width
}

// setFocus moves keyboard focus and updates which text input shows a cursor.
func (m *Model) setFocus(target focusTarget) tea.Cmd {
	m.focus = target
	m.quantityInput.Blur()
	m.delayInput.Blur()
	m.filterInput.Blur()
	switch target {
	case focusQuantity:
		return m.quantityInput.Focus()
	case focusDelayTime:
		return m.delayInput.Focus()
	case focusFilter:
		return m.filterInput.Focus()
	}
	return nil
}

// --- List ---

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Filtered)
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.Confirm):
		m.modal = newDetailModal(m.snapshot.Filtered[m.selected], m.clipboard)
		return m, nil
	}
	m.scrollToSelection()
	return m, nil
}

// syncSnapshot copies the store's current state into the model.
func (m *Model) syncSnapshot() {
	m.snapshot = m.store.Snapshot()
	m.clampSelection()
}

func (m *Model) clampSelection() {
	count := len(m.snapshot.Filtered)
	if m.selected >= count {
		m.selected = maxInt(count-1, 0)
	}
	m.scrollToSelection()
}

func (m *Model) scrollToSelection() {
	rows := m.listRows()
	if rows <= 0 {
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// renderMain renders the full screen.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// Messages

type fetchFireMsg struct {
	ticket coalesce.Ticket
}

type fetchDoneMsg struct {
	id      string
	applied bool
	err     error
}

type filterSettledMsg struct {
	ticket coalesce.Ticket
}

type autoRefreshMsg time.Time

// Commands

func autoRefreshCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return autoRefreshMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
