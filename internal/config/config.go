package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the application settings that are not user preferences.
type Config struct {
	BaseURL         string
	RequestTimeout  time.Duration
	FilterDebounce  time.Duration
	RefreshThrottle time.Duration
	AutoRefresh     time.Duration // zero disables auto-refresh
	SettingsBackend string
	SettingsPath    string // empty means the backend default
	LogFile         string
}

const (
	defaultConfigPath      = "~/.config/opentrivia/config.toml"
	defaultLogFile         = "~/.local/state/opentrivia/opentrivia.log"
	defaultBaseURL         = "https://opentdb.com"
	defaultSettingsBackend = "toml"

	defaultRequestTimeout  = 10 * time.Second
	defaultFilterDebounce  = 2000 * time.Millisecond
	defaultRefreshThrottle = 2000 * time.Millisecond
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:         defaultBaseURL,
		RequestTimeout:  defaultRequestTimeout,
		FilterDebounce:  defaultFilterDebounce,
		RefreshThrottle: defaultRefreshThrottle,
		SettingsBackend: defaultSettingsBackend,
		LogFile:         mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL            string `toml:"base_url"`
		RequestTimeoutMs   int    `toml:"request_timeout_ms"`
		FilterDebounceMs   int    `toml:"filter_debounce_ms"`
		RefreshThrottleMs  int    `toml:"refresh_throttle_ms"`
		AutoRefreshSeconds int    `toml:"auto_refresh_seconds"`
		SettingsBackend    string `toml:"settings_backend"`
		SettingsPath       string `toml:"settings_path"`
		LogFile            string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	cfg.RequestTimeout = millisOr(raw.RequestTimeoutMs, defaultRequestTimeout)
	cfg.FilterDebounce = millisOr(raw.FilterDebounceMs, defaultFilterDebounce)
	cfg.RefreshThrottle = millisOr(raw.RefreshThrottleMs, defaultRefreshThrottle)
	if raw.AutoRefreshSeconds > 0 {
		cfg.AutoRefresh = time.Duration(raw.AutoRefreshSeconds) * time.Second
	}
	if v := strings.ToLower(strings.TrimSpace(raw.SettingsBackend)); v != "" {
		cfg.SettingsBackend = v
	}
	if v := strings.TrimSpace(raw.SettingsPath); v != "" {
		cfg.SettingsPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
}

// LogDir returns the directory holding the log file.
func (c Config) LogDir() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return filepath.Dir(mustExpand(defaultLogFile))
	}
	return filepath.Dir(c.LogFile)
}

func millisOr(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
