package state

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/opentrivia/internal/opentdb"
)

// StatusKind enumerates the phases shown in the status line.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusFiltering
	StatusError
)

// Status is the text-bearing state shown in the status line.
type Status struct {
	Kind    StatusKind
	Message string // error reason for StatusError
}

// String renders the status the way the status line shows it.
func (s Status) String() string {
	switch s.Kind {
	case StatusLoading:
		return "Loading..."
	case StatusFiltering:
		return "Filtering..."
	case StatusError:
		return "ERROR - " + s.Message
	default:
		return "Idle"
	}
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Fetched             []opentdb.TriviaItem
	Filtered            []opentdb.TriviaItem
	Filter              string // filter text last applied to Filtered
	Status              Status
	FetchError          bool // drives error styling and suppresses the busy indicator
	LastUpdated         time.Time
	LastRequestID       string
	ConsecutiveFailures int
}

// Busy reports whether a busy indicator should be shown.
func (s Snapshot) Busy() bool {
	return s.Status.Kind != StatusIdle && !s.FetchError
}

// Store coordinates updates to the snapshot. Fetch commands finish on their
// own goroutines, so every method takes the lock.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	inflight string
	newID    func() string
}

// NewStore returns an empty store in the Idle state.
func NewStore() *Store {
	return &Store{}
}

// BeginLoading marks a fetch as accepted: status Loading... and any error
// flag cleared.
func (s *Store) BeginLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.FetchError = false
	s.snapshot.Status = Status{Kind: StatusLoading}
}

// StartFetch issues the request ID for a fetch that is about to fire. Only
// the most recently issued ID can complete; older ones are stale.
func (s *Store) StartFetch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.inflight = id
	s.snapshot.LastRequestID = id
	if s.snapshot.Status.Kind != StatusLoading {
		s.snapshot.FetchError = false
		s.snapshot.Status = Status{Kind: StatusLoading}
	}
	return id
}

func (s *Store) nextID() string {
	if s.newID != nil {
		return s.newID()
	}
	return uuid.NewString()
}

// CompleteFetch replaces the fetched dataset with items and rebuilds the
// filtered one from the applied filter text. It returns false, and changes
// nothing, when id is not the latest issued request.
func (s *Store) CompleteFetch(id string, items []opentdb.TriviaItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" || id != s.inflight {
		return false
	}
	s.inflight = ""
	s.snapshot.Fetched = opentdb.CloneItems(items)
	s.snapshot.Filtered = FilterByCategory(items, s.snapshot.Filter)
	s.snapshot.Status = Status{Kind: StatusIdle}
	s.snapshot.FetchError = false
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// FailFetch records a failed fetch. Previous data is kept. It returns false
// for stale request IDs.
func (s *Store) FailFetch(id string, reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" || id != s.inflight {
		return false
	}
	s.inflight = ""
	s.snapshot.Status = Status{Kind: StatusError, Message: reason}
	s.snapshot.FetchError = true
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	return true
}

// BeginFilter marks that filter input is pending.
func (s *Store) BeginFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.FetchError = false
	s.snapshot.Status = Status{Kind: StatusFiltering}
}

// ResetFilter clears the applied filter text and shows every fetched item
// again. The status is left alone so an in-flight fetch keeps Loading...
func (s *Store) ResetFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Filter = ""
	s.snapshot.Filtered = opentdb.CloneItems(s.snapshot.Fetched)
}

// ApplyFilter rebuilds the filtered dataset from the fetched one and
// returns to Idle.
func (s *Store) ApplyFilter(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Filter = text
	s.snapshot.Filtered = FilterByCategory(s.snapshot.Fetched, text)
	s.snapshot.Status = Status{Kind: StatusIdle}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Fetched = opentdb.CloneItems(s.snapshot.Fetched)
	snap.Filtered = opentdb.CloneItems(s.snapshot.Filtered)
	return snap
}

// FilterByCategory returns the items whose category contains text,
// ignoring case. Categories are compared in their decoded form, the way they
// are displayed. Empty text matches everything.
func FilterByCategory(items []opentdb.TriviaItem, text string) []opentdb.TriviaItem {
	needle := strings.ToLower(text)
	out := make([]opentdb.TriviaItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.DecodedCategory()), needle) {
			out = append(out, item)
		}
	}
	return opentdb.CloneItems(out)
}
