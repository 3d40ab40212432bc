// Package prefs handles OpenTrivia user settings persistence.
//
// Settings are mirrored field by field into a durable key-value Store as
// string-encoded primitives and read back once at startup.
package prefs

import (
	"fmt"
	"strconv"
	"strings"
)

// Keys used in the durable store.
const (
	KeyQuantity   = "quantity"
	KeyDelay      = "delay"
	KeyDelayTime  = "delayTime"
	KeyCauseError = "causeError"
	KeyTheme      = "theme"
)

// Default setting values.
const (
	DefaultQuantity = 10
	DefaultDelayMs  = 2000
	DefaultTheme    = "Nightfox"
)

// Settings holds the user-tunable knobs shown in the controls pane.
type Settings struct {
	Quantity     int
	DelayEnabled bool
	DelayMs      int
	CauseError   bool
	Theme        string
}

// Defaults returns the in-memory defaults used when nothing is stored.
func Defaults() Settings {
	return Settings{
		Quantity: DefaultQuantity,
		DelayMs:  DefaultDelayMs,
		Theme:    DefaultTheme,
	}
}

// Keys returns the settings keys in display order.
func Keys() []string {
	return []string{KeyQuantity, KeyDelay, KeyDelayTime, KeyCauseError, KeyTheme}
}

// Load reads every key from store, falling back to the default for any key
// that is absent, unreadable or unparsable.
func Load(store Store) Settings {
	s := Defaults()
	if store == nil {
		return s
	}
	if v, ok := get(store, KeyQuantity); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			s.Quantity = n
		}
	}
	if v, ok := get(store, KeyDelay); ok {
		s.DelayEnabled = v == "true"
	}
	if v, ok := get(store, KeyDelayTime); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			s.DelayMs = n
		}
	}
	if v, ok := get(store, KeyCauseError); ok {
		s.CauseError = v == "true"
	}
	if v, ok := get(store, KeyTheme); ok && strings.TrimSpace(v) != "" {
		s.Theme = strings.TrimSpace(v)
	}
	return s
}

func get(store Store, key string) (string, bool) {
	v, ok, err := store.Get(key)
	if err != nil || !ok {
		return "", false
	}
	return v, true
}

// Encode returns the stored string form of the setting named key.
func (s Settings) Encode(key string) (string, error) {
	switch key {
	case KeyQuantity:
		return strconv.Itoa(s.Quantity), nil
	case KeyDelay:
		return strconv.FormatBool(s.DelayEnabled), nil
	case KeyDelayTime:
		return strconv.Itoa(s.DelayMs), nil
	case KeyCauseError:
		return strconv.FormatBool(s.CauseError), nil
	case KeyTheme:
		return s.Theme, nil
	default:
		return "", fmt.Errorf("unknown setting %q", key)
	}
}

// Save writes a single setting to store.
func (s Settings) Save(store Store, key string) error {
	value, err := s.Encode(key)
	if err != nil {
		return err
	}
	if err := store.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SaveAll writes every setting to store.
func (s Settings) SaveAll(store Store) error {
	for _, key := range Keys() {
		if err := s.Save(store, key); err != nil {
			return err
		}
	}
	return nil
}

// ParseNumericInput validates text typed into a numeric field. Only ASCII
// digit strings are accepted. ok is false for anything else, including the
// empty string, which callers treat as an edit in progress.
func ParseNumericInput(text string) (value int, ok bool) {
	if text == "" {
		return 0, false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AcceptableNumericEdit reports whether text may be shown in a numeric
// field: digits only, or empty while the user is retyping.
func AcceptableNumericEdit(text string) bool {
	if text == "" {
		return true
	}
	_, ok := ParseNumericInput(text)
	return ok
}

// Apply validates value for key and returns the updated settings. It is used
// by the CLI so that `settings set` follows the same rules as the TUI.
func (s Settings) Apply(key, value string) (Settings, error) {
	switch key {
	case KeyQuantity:
		n, ok := ParseNumericInput(value)
		if !ok {
			return s, fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		s.Quantity = n
	case KeyDelayTime:
		n, ok := ParseNumericInput(value)
		if !ok {
			return s, fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		s.DelayMs = n
	case KeyDelay, KeyCauseError:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		if key == KeyDelay {
			s.DelayEnabled = b
		} else {
			s.CauseError = b
		}
	case KeyTheme:
		if strings.TrimSpace(value) == "" {
			return s, fmt.Errorf("%s must not be empty", key)
		}
		s.Theme = strings.TrimSpace(value)
	default:
		return s, fmt.Errorf("unknown setting %q", key)
	}
	return s, nil
}
