// Package config loads the keyline configuration.
//
// Settings come from three layers, later ones overriding earlier ones:
//
//	1. built-in defaults
//	2. the TOML file (~/.config/keyline/config.toml unless WithPath is given)
//	3. KEYLINE_* environment variables
//
// Environment variables name a section and a key: KEYLINE_HISTORY_SIZE sets
// history.size and KEYLINE_EDITOR_EXTENDED_KEYS sets editor.extended_keys.
//
// # Basic Usage
//
//	cfg := config.New(config.WithPath(path))
//	if err := cfg.Load(); err != nil {
//		return err
//	}
//	size := cfg.History().Size
//
// # Sub-packages
//
//   - loader: TOML and environment loading, map merging
//   - watcher: fsnotify-based file watching for live reload
package config
