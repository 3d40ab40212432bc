// Package state holds the trivia datasets and the status state machine.
//
// # Overview
//
// The Store is shared by the Bubble Tea update loop and the fetch commands
// that run on their own goroutines. It owns:
//
//   - Fetched: the results of the latest successful fetch
//   - Filtered: the subset of Fetched whose category matches the filter
//   - Status: Idle, Loading..., Filtering... or ERROR - <reason>
//   - FetchError: styling flag for the status line
//
// # State Machine
//
//	Idle ──BeginLoading/StartFetch──> Loading... ──CompleteFetch──> Idle
//	                                            └──FailFetch──────> ERROR - <reason>
//	Idle ──BeginFilter──> Filtering... ──ApplyFilter──> Idle
//
// Whichever transition happens last owns the status text.
//
// # Stale Responses
//
// StartFetch issues a uuid request ID and remembers it as the in-flight
// request. CompleteFetch and FailFetch ignore any other ID, so a slow
// response can never overwrite the result of a newer request.
//
// # Filtering
//
// FilterByCategory keeps items whose decoded category contains the filter
// text, case-insensitively. The empty filter keeps everything. The filtered
// dataset is always rebuilt from Fetched, so it is always a subset of it.
//
// # Thread Safety
//
// Every method takes the store's RWMutex. Snapshot returns deep copies so
// callers can read them without holding the lock.
package state
