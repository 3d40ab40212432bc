// Package config loads the OpenTrivia configuration file.
//
// # Overview
//
// The config file holds the settings that are not user preferences: the
// trivia endpoint, the timing windows for the filter debounce and the refresh
// throttle, optional auto-refresh, where user preferences are stored and
// where the application log goes. User preferences (quantity, delay, error
// injection, theme) live in the prefs package instead.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/opentrivia/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Missing, empty, zero or negative fields use defaults
//
// Invalid TOML is an error.
//
// # TOML Format
//
//	base_url = "https://opentdb.com"
//	request_timeout_ms = 10000
//	filter_debounce_ms = 2000
//	refresh_throttle_ms = 2000
//	auto_refresh_seconds = 0
//	settings_backend = "toml"   # or "sqlite"
//	settings_path = ""
//	log_file = "~/.local/state/opentrivia/opentrivia.log"
//
// Tilde expansion is performed for the config path, settings_path and
// log_file.
package config
