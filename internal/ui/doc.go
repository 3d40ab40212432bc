// Package ui provides the Bubble Tea terminal interface for OpenTrivia.
//
// # Layout
//
//	┌ header: Open Trivia DB · endpoint · last update · theme ┐
//	┌─ Settings ─┐┌──────────── Questions ────────────┐
//	│ Quantity   ││ Filter: ...                        │
//	│ [ ] Delay  ││ Science: Computers                 │
//	│ [ ] Cause  ││ History                            │
//	│ [ Refresh ]││ N Result(s)                        │
//	└────────────┘└────────────────────────────────────┘
//	status line: Status: Idle | Loading... | Filtering... | ERROR - <reason>
//	footer: short key help
//
// Narrow terminals stack the Settings pane above the list.
//
// # Fetching
//
// The initial fetch fires on start without consulting the throttle. Manual
// refreshes (ctrl+r or the Refresh button) and the optional auto-refresh tick
// go through a coalesce.Throttler: the first call in a window is accepted,
// later calls in the same window are dropped and logged. An accepted refresh
// shows Loading... and fires after the artificial delay when it is enabled; a
// newer accepted refresh supersedes a delayed one that has not fired yet.
//
// The request runs in a tea.Cmd. The command records its outcome in the
// state.Store, which discards results for any request ID but the latest, and
// the update loop then re-reads the snapshot.
//
// # Filtering
//
// Each edit of the filter input shows Filtering... at once and schedules a
// settle message after the debounce window. Only the latest settle applies
// the filter. A manual refresh clears the input and cancels a pending settle.
//
// # Settings
//
// Quantity and delay fields accept digits only; other keystrokes are
// ignored. Every accepted change is written to the prefs.Store immediately.
// An emptied field is shown but not stored.
//
// # Modals
//
// The detail modal (enter on a row) shows a decoded copy of the item taken
// when it opened. The log modal (ctrl+l) shows the tail of the application
// log. While a modal is open it captures every key except ctrl+c.
package ui
