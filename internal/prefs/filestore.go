package prefs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// FileStore persists settings as a flat TOML table of strings.
//
//	quantity = "25"
//	delay = "true"
//
// Hand-edited integer or boolean values are accepted and converted to their
// string form on read. A missing or corrupt file reads as empty.
type FileStore struct {
	path string

	mu     sync.Mutex
	loaded bool
	values map[string]string
}

// NewFileStore returns a store backed by the TOML file at path. The file is
// read lazily on first access.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Get implements Store.
func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureLoaded()
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements Store.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureLoaded()
	f.values[key] = value
	return f.flush()
}

// Delete implements Store.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureLoaded()
	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flush()
}

// Keys implements Store.
func (f *FileStore) Keys() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureLoaded()
	return sortedKeys(f.values), nil
}

// Close implements Store.
func (f *FileStore) Close() error { return nil }

func (f *FileStore) ensureLoaded() {
	if f.loaded {
		return
	}
	f.loaded = true
	f.values = make(map[string]string)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("settings: read %s: %v", f.path, err)
		}
		return
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		log.Printf("settings: parse %s: %v (using defaults)", f.path, err)
		return
	}
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			f.values[k] = val
		case bool:
			f.values[k] = strconv.FormatBool(val)
		case int64:
			f.values[k] = strconv.FormatInt(val, 10)
		case float64:
			f.values[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			// Tables and arrays have no meaning here.
		}
	}
}

func (f *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	data, err := toml.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}
