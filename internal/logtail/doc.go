// Package logtail reads the end of the application log for the log modal.
//
// # Reading
//
// Read returns the last N lines of a file. It reads backwards from the end
// in fixed-size chunks until it has seen more than N newlines, so memory use
// is bounded by the tail rather than the file size. A missing file reads as
// no lines.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// # Parsing
//
// Parse splits a line written by the standard logger
// ("opentrivia 2026/10/17 12:30:05 fetch req=... ok items=10") into its
// timestamp and message, and infers a Level from the message so the UI can
// color failures and dropped or stale fetches. Lines without a timestamp
// (panics, third-party output) are kept whole.
package logtail
