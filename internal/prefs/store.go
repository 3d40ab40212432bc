package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store is a durable string key-value store.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

const (
	defaultTOMLPath   = "~/.config/opentrivia/settings.toml"
	defaultSQLitePath = "~/.local/share/opentrivia/settings.db"
)

// DefaultPath returns the default location for backend.
func DefaultPath(backend string) string {
	switch normalizeBackend(backend) {
	case BackendSQLite:
		return defaultSQLitePath
	case BackendMemory:
		return ""
	default:
		return defaultTOMLPath
	}
}

// Open returns the store for backend at path. An empty path uses the
// backend's default location.
func Open(backend, path string) (Store, error) {
	backend = normalizeBackend(backend)
	if backend == BackendMemory {
		return NewMemoryStore(), nil
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultPath(backend)
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}
	switch backend {
	case BackendTOML:
		return NewFileStore(resolved), nil
	case BackendSQLite:
		return OpenSQLiteStore(resolved)
	default:
		return nil, fmt.Errorf("unknown settings backend %q", backend)
	}
}

func normalizeBackend(backend string) string {
	b := strings.ToLower(strings.TrimSpace(backend))
	if b == "" {
		return BackendTOML
	}
	return b
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Store.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Keys implements Store.
func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.values), nil
}

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }

// Writes returns how many Set calls the store has seen.
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
