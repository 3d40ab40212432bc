// Package app is the composition root for OpenTrivia.
//
// Setup resolves everything a command needs:
//
//	┌──────────────┐
//	│   Setup()    │
//	└──────┬───────┘
//	       ├─────> config.Load()         config.toml, flag overrides
//	       ├─────> prefs.Open()          toml, sqlite or memory store
//	       ├─────> prefs.Load()          stored settings over defaults
//	       └─────> opentdb.NewClient()   HTTP client with timeout
//
// Run adds logging and the TUI on top: the standard logger is redirected to
// the log file with tea.LogToFile, then ui.Run blocks until the user quits or
// the context is cancelled. A cancelled context is a clean exit.
//
// Poll is the headless counterpart used by `opentrivia watch`. It fetches on
// a fixed cadence and doubles the wait after each consecutive failure, up to
// five minutes.
//
// Startup failures (invalid config, unopenable settings store, log file) are
// returned wrapped. Fetch failures never are; they become status text.
package app
