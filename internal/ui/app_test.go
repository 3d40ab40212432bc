package ui

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/opentrivia/internal/coalesce"
	"github.com/five82/opentrivia/internal/opentdb"
	"github.com/five82/opentrivia/internal/prefs"
	"github.com/five82/opentrivia/internal/state"
)

type fakeFetcher struct {
	mu      sync.Mutex
	queries []opentdb.Query
	items   []opentdb.TriviaItem
	err     error
}

func (f *fakeFetcher) FetchQuestions(_ context.Context, q opentdb.Query) (opentdb.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if q.CauseError {
		return opentdb.Response{}, &net.DNSError{Err: "no such host", Name: "garbageopentdb.com.invalid", IsNotFound: true}
	}
	if f.err != nil {
		return opentdb.Response{}, f.err
	}
	return opentdb.Response{Results: opentdb.CloneItems(f.items)}, nil
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeFetcher) setItems(items []opentdb.TriviaItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sampleItems() []opentdb.TriviaItem {
	return []opentdb.TriviaItem{
		{Category: "Science: Computers", Question: "Q &quot;1&quot;", CorrectAnswer: "A &#039;1&#039;", Difficulty: "easy", Type: "multiple"},
		{Category: "History", Question: "Q2", CorrectAnswer: "A2"},
		{Category: "Science &amp; Nature", Question: "Q3", CorrectAnswer: "A3"},
		{Category: "Sports", Question: "Q4", CorrectAnswer: "A4"},
	}
}

type harness struct {
	fetcher *fakeFetcher
	clock   *fakeClock
	prefs   *prefs.MemoryStore
	copied  []string
}

func newHarness() *harness {
	return &harness{
		fetcher: &fakeFetcher{items: sampleItems()},
		clock:   &fakeClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)},
		prefs:   prefs.NewMemoryStore(),
	}
}

func (h *harness) options() Options {
	return Options{
		Fetcher:         h.fetcher,
		Store:           state.NewStore(),
		Prefs:           h.prefs,
		Settings:        prefs.Defaults(),
		Endpoint:        "opentdb.com",
		FilterDebounce:  2 * time.Second,
		RefreshThrottle: 2 * time.Second,
		Now:             h.clock.Now,
		Clipboard: func(text string) error {
			h.copied = append(h.copied, text)
			return nil
		},
	}
}

// start builds a model, completes the initial fetch and sizes the window.
func (h *harness) start(t *testing.T, opts Options) Model {
	t.Helper()
	m := New(opts)
	m = fire(t, m, fetchFireMsg{ticket: m.initialFetch})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// fire delivers a fetchFireMsg and runs the request it starts.
func fire(t *testing.T, m Model, msg fetchFireMsg) Model {
	t.Helper()
	m, cmd := step(t, m, msg)
	if cmd == nil {
		t.Fatalf("fetchFireMsg %v did not start a request", msg.ticket)
	}
	done := cmd()
	if _, ok := done.(fetchDoneMsg); !ok {
		t.Fatalf("fetch command returned %T, want fetchDoneMsg", done)
	}
	m, _ = step(t, m, done)
	return m
}

// refreshNow presses ctrl+r and, if accepted, runs the undelayed fetch.
func refreshNow(t *testing.T, m Model) (Model, bool) {
	t.Helper()
	m, cmd := step(t, m, ctrlKey(tea.KeyCtrlR))
	if cmd == nil {
		return m, false
	}
	msg, ok := cmd().(fetchFireMsg)
	if !ok {
		t.Fatalf("refresh command did not produce fetchFireMsg")
	}
	return fire(t, m, msg), true
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ctrlKey(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = step(t, m, runes(string(r)))
	}
	return m
}

func focus(m Model, target focusTarget) Model {
	m.setFocus(target)
	return m
}

func TestInitialFetchPopulatesList(t *testing.T) {
	h := newHarness()
	m := h.start(t, h.options())

	if h.fetcher.calls() != 1 {
		t.Fatalf("fetch calls = %d, want 1", h.fetcher.calls())
	}
	if q := h.fetcher.queries[0]; q.Amount != 10 || q.CauseError || q.RequestID == "" {
		t.Fatalf("initial query = %#v", q)
	}
	if got := m.statusText(); got != "Status: Idle" {
		t.Fatalf("status = %q, want Status: Idle", got)
	}
	if len(m.snapshot.Fetched) != 4 || len(m.snapshot.Filtered) != 4 {
		t.Fatalf("fetched=%d filtered=%d, want 4/4", len(m.snapshot.Fetched), len(m.snapshot.Filtered))
	}

	view := m.View()
	for _, want := range []string{"Open Trivia DB", "Status: Idle", "4 Result(s)", "Science & Nature"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStartShowsLoadingUntilFirstResult(t *testing.T) {
	h := newHarness()
	m := New(h.options())
	if got := m.statusText(); got != "Status: Loading..." {
		t.Fatalf("status = %q, want Status: Loading...", got)
	}
	if !m.snapshot.Busy() {
		t.Fatalf("Busy() = false while loading")
	}
	if m.View() != "Loading..." {
		t.Fatalf("View before WindowSizeMsg = %q", m.View())
	}
}

func TestFilterDebounceAppliesOnlyLatestValue(t *testing.T) {
	h := newHarness()
	m := focus(h.start(t, h.options()), focusFilter)

	m = typeText(t, m, "sci")
	if got := m.filterInput.Value(); got != "sci" {
		t.Fatalf("filter input = %q, want sci", got)
	}
	if got := m.statusText(); got != "Status: Filtering..." {
		t.Fatalf("status = %q, want Status: Filtering...", got)
	}

	// One ticket per keystroke; only the third settles.
	for _, stale := range []coalesce.Ticket{1, 2} {
		m, _ = step(t, m, filterSettledMsg{ticket: stale})
		if len(m.snapshot.Filtered) != 4 || m.snapshot.Status.Kind != state.StatusFiltering {
			t.Fatalf("stale settle %d applied the filter", stale)
		}
	}

	m, _ = step(t, m, filterSettledMsg{ticket: 3})
	if got := m.statusText(); got != "Status: Idle" {
		t.Fatalf("status = %q, want Status: Idle", got)
	}
	if len(m.snapshot.Filtered) != 2 {
		t.Fatalf("filtered = %d, want 2 science items", len(m.snapshot.Filtered))
	}
	for _, item := range m.snapshot.Filtered {
		if !strings.Contains(strings.ToLower(item.DecodedCategory()), "sci") {
			t.Fatalf("unexpected item %q in filtered list", item.Category)
		}
	}
}

func TestFilterEditClearsErrorFlag(t *testing.T) {
	h := newHarness()
	h.fetcher.err = errors.New("boom")
	m := focus(h.start(t, h.options()), focusFilter)
	if !m.snapshot.FetchError {
		t.Fatalf("FetchError = false after failed fetch")
	}
	m = typeText(t, m, "x")
	if m.snapshot.FetchError {
		t.Fatalf("FetchError still set after filter edit")
	}
}

func TestRefreshThrottleAllowsOneFetchPerWindow(t *testing.T) {
	h := newHarness()
	m := h.start(t, h.options())

	m, accepted := refreshNow(t, m)
	if !accepted {
		t.Fatalf("first refresh was dropped")
	}
	for i := 0; i < 3; i++ {
		h.clock.Advance(500 * time.Millisecond)
		var ok bool
		m, ok = refreshNow(t, m)
		if ok {
			t.Fatalf("refresh %d inside the window was accepted", i+2)
		}
		if got := m.statusText(); got != "Status: Idle" {
			t.Fatalf("dropped refresh changed status to %q", got)
		}
	}
	if h.fetcher.calls() != 2 {
		t.Fatalf("fetch calls = %d, want initial + 1", h.fetcher.calls())
	}

	h.clock.Advance(500 * time.Millisecond)
	if _, ok := refreshNow(t, m); !ok {
		t.Fatalf("refresh after the window was dropped")
	}
	if h.fetcher.calls() != 3 {
		t.Fatalf("fetch calls = %d, want 3", h.fetcher.calls())
	}
}

func TestCauseErrorShowsErrorStatus(t *testing.T) {
	h := newHarness()
	m := focus(h.start(t, h.options()), focusCauseError)

	m, _ = step(t, m, ctrlKey(tea.KeySpace))
	if !m.settings.CauseError {
		t.Fatalf("space did not toggle Cause Error")
	}
	if v, _, _ := h.prefs.Get(prefs.KeyCauseError); v != "true" {
		t.Fatalf("stored causeError = %q, want true", v)
	}

	m, ok := refreshNow(t, m)
	if !ok {
		t.Fatalf("refresh was dropped")
	}
	q := h.fetcher.queries[len(h.fetcher.queries)-1]
	if !q.CauseError {
		t.Fatalf("query did not request error injection")
	}

	status := m.snapshot.Status.String()
	if !strings.HasPrefix(status, "ERROR - ") {
		t.Fatalf("status = %q, want ERROR - prefix", status)
	}
	if !strings.Contains(status, "no such host") {
		t.Fatalf("status = %q, want resolution failure reason", status)
	}
	if !m.snapshot.FetchError || m.snapshot.Busy() {
		t.Fatalf("FetchError=%v Busy=%v, want error flagged and not busy", m.snapshot.FetchError, m.snapshot.Busy())
	}
	if len(m.snapshot.Filtered) != 4 {
		t.Fatalf("previous results should stay visible, got %d", len(m.snapshot.Filtered))
	}
}

func TestDetailModalShowsDecodedCopy(t *testing.T) {
	h := newHarness()
	m := focus(h.start(t, h.options()), focusList)

	m, _ = step(t, m, ctrlKey(tea.KeyEnter))
	detail, ok := m.modal.(*detailModal)
	if !ok {
		t.Fatalf("modal = %T, want *detailModal", m.modal)
	}
	if detail.question != `Q "1"` {
		t.Fatalf("question = %q, want %q", detail.question, `Q "1"`)
	}
	if detail.answer != `A '1'` {
		t.Fatalf("answer = %q, want %q", detail.answer, `A '1'`)
	}
	if detail.category != "Science: Computers" || detail.difficulty != "easy" {
		t.Fatalf("detail = %#v", detail)
	}
	if view := m.View(); !strings.Contains(view, `Q "1"`) || !strings.Contains(view, `A '1'`) {
		t.Fatalf("modal view missing decoded text:\n%s", view)
	}

	// A fetch completing underneath changes the list, not the modal.
	h.fetcher.setItems([]opentdb.TriviaItem{{Category: "Art", Question: "Other", CorrectAnswer: "Else"}})
	h.clock.Advance(3 * time.Second)
	m = fire(t, m, fetchFireMsg{ticket: m.pendingFetch.Trigger()})
	if len(m.snapshot.Filtered) != 1 {
		t.Fatalf("list not updated underneath the modal")
	}
	if m.modal.(*detailModal).question != `Q "1"` {
		t.Fatalf("modal content changed after background fetch")
	}
}

func TestDetailModalCapturesKeys(t *testing.T) {
	h := newHarness()
	m := focus(h.start(t, h.options()), focusList)
	m, _ = step(t, m, ctrlKey(tea.KeyEnter))

	calls := h.fetcher.calls()
	for _, msg := range []tea.KeyMsg{runes("j"), runes("q"), ctrlKey(tea.KeyTab), ctrlKey(tea.KeyCtrlR), ctrlKey(tea.KeyCtrlT)} {
		var cmd tea.Cmd
		m, cmd = step(t, m, msg)
		if m.modal == nil {
			t.Fatalf("%q closed the modal", msg.String())
		}
		if cmd != nil {
			t.Fatalf("%q produced a command while the modal is open", msg.String())
		}
	}
	if m.focus != focusList || m.selected != 0 || m.theme.Name != "Nightfox" {
		t.Fatalf("keys leaked past the modal: focus=%v selected=%d theme=%s", m.focus, m.selected, m.theme.Name)
	}
	if h.fetcher.calls() != calls {
		t.Fatalf("refresh fired while the modal was open")
	}

	_, cmd := step(t, m, ctrlKey(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatalf("ctrl+c produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c did not quit while the modal was open")
	}

	m, _ = step(t, m, ctrlKey(tea.KeyEsc))
	if m.modal != nil {
		t.Fatalf("esc did not close the modal")
	}
}

func TestDetailModalCopiesToClipboard(t *testing.T) {
	h := newHarness()
	m := focus(h.start(t, h.options()), focusList)
	m, _ = step(t, m, ctrlKey(tea.KeyEnter))

	m, cmd := step(t, m, runes("y"))
	if cmd == nil {
		t.Fatalf("y produced no command")
	}
	m, _ = step(t, m, cmd())
	if len(h.copied) != 1 || h.copied[0] != `Q "1" / A '1'` {
		t.Fatalf("clipboard = %q", h.copied)
	}
	if got := m.modal.(*detailModal).notice; got != "Copied" {
		t.Fatalf("notice = %q, want Copied", got)
	}
}

func TestQuantityPersistsDigitsAndIgnoresOtherInput(t *testing.T) {
	h := newHarness()
	m := focus(h.start(t, h.options()), focusQuantity)

	m, _ = step(t, m, ctrlKey(tea.KeyBackspace))
	m, _ = step(t, m, ctrlKey(tea.KeyBackspace))
	if m.quantityInput.Value() != "" {
		t.Fatalf("quantity input = %q, want empty", m.quantityInput.Value())
	}
	if h.prefs.Writes() != 1 {
		// "10" -> "1" is a valid edit and is stored; "" is not.
		t.Fatalf("writes after clearing = %d, want 1", h.prefs.Writes())
	}
	if m.settings.Quantity != 1 {
		t.Fatalf("quantity = %d, want previous valid value 1", m.settings.Quantity)
	}

	m = typeText(t, m, "25")
	if m.settings.Quantity != 25 {
		t.Fatalf("quantity = %d, want 25", m.settings.Quantity)
	}
	if v, _, _ := h.prefs.Get(prefs.KeyQuantity); v != "25" {
		t.Fatalf("stored quantity = %q, want 25", v)
	}
	writes := h.prefs.Writes()

	m = typeText(t, m, "abc")
	if m.quantityInput.Value() != "25" {
		t.Fatalf("quantity input = %q, want 25 after rejected keys", m.quantityInput.Value())
	}
	if h.prefs.Writes() != writes {
		t.Fatalf("rejected input wrote to the store")
	}
	if prefs.Load(h.prefs).Quantity != 25 {
		t.Fatalf("reloaded quantity = %d, want 25", prefs.Load(h.prefs).Quantity)
	}

	h.clock.Advance(3 * time.Second)
	if _, ok := refreshNow(t, m); !ok {
		t.Fatalf("refresh was dropped")
	}
	if q := h.fetcher.queries[len(h.fetcher.queries)-1]; q.Amount != 25 {
		t.Fatalf("query amount = %d, want 25", q.Amount)
	}
}

func TestDelaySettingsPersist(t *testing.T) {
	h := newHarness()
	m := focus(h.start(t, h.options()), focusDelay)

	m, _ = step(t, m, ctrlKey(tea.KeyEnter))
	if !m.settings.DelayEnabled {
		t.Fatalf("enter did not toggle Delay")
	}
	m = focus(m, focusDelayTime)
	m, _ = step(t, m, ctrlKey(tea.KeyBackspace))
	m = typeText(t, m, "5")
	if m.settings.DelayMs != 2005 {
		t.Fatalf("DelayMs = %d, want 2005", m.settings.DelayMs)
	}

	got := prefs.Load(h.prefs)
	if !got.DelayEnabled || got.DelayMs != m.settings.DelayMs {
		t.Fatalf("stored delay = %#v, want enabled with %d", got, m.settings.DelayMs)
	}
	if m.fetchDelay() != time.Duration(m.settings.DelayMs)*time.Millisecond {
		t.Fatalf("fetchDelay = %v", m.fetchDelay())
	}
}

func TestDelayedFetchSupersededByNewerRefresh(t *testing.T) {
	h := newHarness()
	opts := h.options()
	opts.Settings.DelayEnabled = true
	opts.Settings.DelayMs = 50
	m := h.start(t, opts)

	m, cmd := step(t, m, ctrlKey(tea.KeyCtrlR))
	if cmd == nil {
		t.Fatalf("first refresh dropped")
	}
	if got := m.statusText(); got != "Status: Loading..." {
		t.Fatalf("status = %q, want Status: Loading...", got)
	}
	h.clock.Advance(3 * time.Second)
	m, cmd = step(t, m, ctrlKey(tea.KeyCtrlR))
	if cmd == nil {
		t.Fatalf("second refresh dropped")
	}

	// Tickets: 1 initial, 2 first refresh, 3 second refresh.
	m, cmd = step(t, m, fetchFireMsg{ticket: 2})
	if cmd != nil {
		t.Fatalf("superseded delayed fetch still fired")
	}
	calls := h.fetcher.calls()
	m = fire(t, m, fetchFireMsg{ticket: 3})
	if h.fetcher.calls() != calls+1 {
		t.Fatalf("latest delayed fetch did not fire")
	}
	if got := m.statusText(); got != "Status: Idle" {
		t.Fatalf("status = %q, want Status: Idle", got)
	}
}

func TestRefreshResetsFilter(t *testing.T) {
	h := newHarness()
	m := focus(h.start(t, h.options()), focusFilter)

	m = typeText(t, m, "his")
	m, _ = step(t, m, filterSettledMsg{ticket: 3})
	if len(m.snapshot.Filtered) != 1 {
		t.Fatalf("filtered = %d, want 1", len(m.snapshot.Filtered))
	}

	h.clock.Advance(3 * time.Second)
	m, ok := refreshNow(t, m)
	if !ok {
		t.Fatalf("refresh was dropped")
	}
	if m.filterInput.Value() != "" {
		t.Fatalf("filter input = %q, want empty", m.filterInput.Value())
	}
	if len(m.snapshot.Filtered) != 4 || len(m.snapshot.Fetched) != 4 {
		t.Fatalf("filtered=%d fetched=%d, want all items", len(m.snapshot.Filtered), len(m.snapshot.Fetched))
	}

	// A pending filter is settled to empty even when the refresh is dropped.
	m = typeText(t, m, "x")
	m, ok = refreshNow(t, m)
	if ok {
		t.Fatalf("refresh inside the window was accepted")
	}
	if got := m.statusText(); got != "Status: Idle" {
		t.Fatalf("status = %q, want Status: Idle", got)
	}
	if len(m.snapshot.Filtered) != 4 {
		t.Fatalf("filtered = %d, want 4", len(m.snapshot.Filtered))
	}
	m, _ = step(t, m, filterSettledMsg{ticket: 4})
	if len(m.snapshot.Filtered) != 4 {
		t.Fatalf("cancelled settle applied a filter")
	}
}

func TestDroppedRefreshShowsEveryItem(t *testing.T) {
	h := newHarness()
	m := h.start(t, h.options())

	m, ok := refreshNow(t, m)
	if !ok {
		t.Fatalf("first refresh was dropped")
	}
	m = focus(m, focusFilter)
	m = typeText(t, m, "his")
	m, _ = step(t, m, filterSettledMsg{ticket: 3})
	if len(m.snapshot.Filtered) != 1 {
		t.Fatalf("filtered = %d, want 1", len(m.snapshot.Filtered))
	}
	if !strings.Contains(m.View(), "1 Result(s)") {
		t.Fatalf("view does not show the filtered count")
	}

	calls := h.fetcher.calls()
	h.clock.Advance(500 * time.Millisecond)
	m, ok = refreshNow(t, m)
	if ok {
		t.Fatalf("refresh inside the window was accepted")
	}
	if h.fetcher.calls() != calls {
		t.Fatalf("dropped refresh reached the network")
	}
	if m.filterInput.Value() != "" || m.snapshot.Filter != "" {
		t.Fatalf("input=%q applied=%q, want both empty", m.filterInput.Value(), m.snapshot.Filter)
	}
	if len(m.snapshot.Filtered) != len(m.snapshot.Fetched) {
		t.Fatalf("filtered = %d of %d, want the full list for an empty filter", len(m.snapshot.Filtered), len(m.snapshot.Fetched))
	}
	if got := m.statusText(); got != "Status: Idle" {
		t.Fatalf("status = %q, want Status: Idle", got)
	}
	if !strings.Contains(m.View(), "4 Result(s)") {
		t.Fatalf("view does not show the full count")
	}
}

func TestAutoRefreshKeepsFilter(t *testing.T) {
	h := newHarness()
	opts := h.options()
	opts.AutoRefresh = time.Minute
	m := focus(h.start(t, opts), focusFilter)

	m = typeText(t, m, "sci")
	m, _ = step(t, m, filterSettledMsg{ticket: 3})

	h.clock.Advance(time.Minute)
	m, cmd := step(t, m, autoRefreshMsg(h.clock.Now()))
	if cmd == nil {
		t.Fatalf("auto refresh produced no command")
	}
	if got := m.statusText(); got != "Status: Loading..." {
		t.Fatalf("status = %q, want Status: Loading...", got)
	}
	if m.filterInput.Value() != "sci" {
		t.Fatalf("auto refresh cleared the filter")
	}

	m = fire(t, m, fetchFireMsg{ticket: 2})
	if len(m.snapshot.Filtered) != 2 {
		t.Fatalf("filtered = %d, want filter re-applied to new results", len(m.snapshot.Filtered))
	}
}

func TestCycleThemePersists(t *testing.T) {
	h := newHarness()
	m := h.start(t, h.options())

	m, _ = step(t, m, ctrlKey(tea.KeyCtrlT))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if v, _, _ := h.prefs.Get(prefs.KeyTheme); v != "Kanagawa" {
		t.Fatalf("stored theme = %q, want Kanagawa", v)
	}
}

func TestSettingsWriteFailureIsNotFatal(t *testing.T) {
	h := newHarness()
	opts := h.options()
	opts.Prefs = brokenPrefs{prefs.NewMemoryStore()}
	m := focus(h.start(t, opts), focusCauseError)

	m, _ = step(t, m, ctrlKey(tea.KeySpace))
	if !m.settings.CauseError {
		t.Fatalf("toggle should apply in memory even if the write fails")
	}
	if got := m.statusText(); got != "Status: Idle" {
		t.Fatalf("status = %q, want write errors kept out of the UI", got)
	}
}

type brokenPrefs struct{ *prefs.MemoryStore }

func (brokenPrefs) Set(string, string) error { return errors.New("read-only") }

func TestLogModalShowsTail(t *testing.T) {
	h := newHarness()
	path := filepath.Join(t.TempDir(), "opentrivia.log")
	content := "opentrivia 2026/10/17 12:00:00 fetch a start amount=10 cause_error=false\n" +
		"opentrivia 2026/10/17 12:00:01 fetch a failed: boom\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	opts := h.options()
	opts.LogFile = path
	m := h.start(t, opts)

	m, cmd := step(t, m, ctrlKey(tea.KeyCtrlL))
	if cmd == nil {
		t.Fatalf("ctrl+l produced no command")
	}
	m, _ = step(t, m, cmd())
	logs, ok := m.modal.(*logModal)
	if !ok {
		t.Fatalf("modal = %T, want *logModal", m.modal)
	}
	if len(logs.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(logs.entries))
	}
	view := m.View()
	if !strings.Contains(view, "Application Log") || !strings.Contains(view, "fetch a failed: boom") {
		t.Fatalf("log modal view:\n%s", view)
	}

	m, _ = step(t, m, ctrlKey(tea.KeyEsc))
	if m.modal != nil {
		t.Fatalf("esc did not close the log modal")
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	h := newHarness()
	m := focus(h.start(t, h.options()), focusList)

	m, _ = step(t, m, runes("?"))
	if !m.showHelp {
		t.Fatalf("? did not open help")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help view missing title")
	}
	m, _ = step(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("any key should close help")
	}

	// In a text field ? is input, not a command.
	m = focus(m, focusFilter)
	m, _ = step(t, m, runes("?"))
	if m.showHelp || m.filterInput.Value() != "?" {
		t.Fatalf("? in filter: showHelp=%v value=%q", m.showHelp, m.filterInput.Value())
	}
}

func TestFocusCycles(t *testing.T) {
	h := newHarness()
	m := h.start(t, h.options())

	for i := 0; i < int(focusCount); i++ {
		m, _ = step(t, m, ctrlKey(tea.KeyTab))
	}
	if m.focus != focusQuantity {
		t.Fatalf("focus after full cycle = %v, want quantity", m.focus)
	}
	m, _ = step(t, m, ctrlKey(tea.KeyShiftTab))
	if m.focus != focusList {
		t.Fatalf("shift+tab from first control = %v, want list", m.focus)
	}
}

func TestListNavigationClamps(t *testing.T) {
	h := newHarness()
	m := focus(h.start(t, h.options()), focusList)

	m, _ = step(t, m, runes("G"))
	if m.selected != 3 {
		t.Fatalf("selected = %d, want 3", m.selected)
	}
	m, _ = step(t, m, runes("j"))
	if m.selected != 3 {
		t.Fatalf("selected moved past the end")
	}
	m, _ = step(t, m, runes("g"))
	m, _ = step(t, m, runes("k"))
	if m.selected != 0 {
		t.Fatalf("selected = %d, want 0", m.selected)
	}
}
