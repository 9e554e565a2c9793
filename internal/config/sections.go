package config

import (
	"fmt"
	"strings"

	"github.com/dshills/keyline/internal/input/key"
)

// Limits enforced by Validate.
const (
	MaxHistorySize = 32767
	MinBufferSize  = 16
	MaxBufferSize  = 32767
)

// Settings is the decoded configuration. Section accessors return copies.
type Settings struct {
	History HistoryConfig `toml:"history"`
	Editor  EditorConfig  `toml:"editor"`
	Alias   AliasConfig   `toml:"alias"`
	Script  ScriptConfig  `toml:"script"`
	Log     LogConfig     `toml:"log"`
	Shell   ShellConfig   `toml:"shell"`
}

// HistoryConfig controls the command history pool.
type HistoryConfig struct {
	// Size is the number of commands each history keeps.
	Size int `toml:"size"`

	// Buffers is the maximum number of histories in the pool.
	Buffers int `toml:"buffers"`

	// NoDuplicates moves a repeated command to the newest position.
	NoDuplicates bool `toml:"no_duplicates"`

	// File persists the histories between runs. Empty disables it.
	File string `toml:"file"`
}

// EditorConfig controls line editing.
type EditorConfig struct {
	// InsertMode is the initial insert (true) or overwrite mode.
	InsertMode bool `toml:"insert_mode"`

	// ExtendedKeys enables refined word motion and the Ctrl/Alt letters.
	ExtendedKeys bool `toml:"extended_keys"`

	// WordDelimiters are extra word delimiters. A space always is one.
	WordDelimiters string `toml:"word_delimiters"`

	// BufferSize is the edit buffer capacity in characters.
	BufferSize int `toml:"buffer_size"`

	// Bindings maps key names to editor action names.
	Bindings map[string]string `toml:"bindings"`
}

// AliasConfig controls the alias macro file.
type AliasConfig struct {
	File  string `toml:"file"`
	Watch bool   `toml:"watch"`
}

// ScriptConfig names the startup script.
type ScriptConfig struct {
	File string `toml:"file"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ShellConfig describes the interactive shell.
type ShellConfig struct {
	// Owner is the owner name of the shell's own history and aliases.
	Owner string `toml:"owner"`
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"history": map[string]any{
			"size":          int64(50),
			"buffers":       int64(4),
			"no_duplicates": false,
			"file":          "",
		},
		"editor": map[string]any{
			"insert_mode":     true,
			"extended_keys":   false,
			"word_delimiters": "",
			"buffer_size":     int64(512),
			"bindings":        map[string]any{},
		},
		"alias": map[string]any{
			"file":  "",
			"watch": true,
		},
		"script": map[string]any{
			"file": "",
		},
		"log": map[string]any{
			"level": "info",
			"file":  "",
		},
		"shell": map[string]any{
			"owner": "keyline",
		},
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks every setting and returns the problems found.
func (s Settings) Validate() []error {
	var errs []error
	invalid := func(path string, value any, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf(format, args...), Value: value})
	}

	if s.History.Size < 0 || s.History.Size > MaxHistorySize {
		invalid("history.size", s.History.Size, "must be between 0 and %d", MaxHistorySize)
	}
	if s.History.Buffers < 1 {
		invalid("history.buffers", s.History.Buffers, "must be at least 1")
	}
	if s.Editor.BufferSize < MinBufferSize || s.Editor.BufferSize > MaxBufferSize {
		invalid("editor.buffer_size", s.Editor.BufferSize, "must be between %d and %d", MinBufferSize, MaxBufferSize)
	}
	for name := range s.Editor.Bindings {
		if _, err := key.Parse(name); err != nil {
			invalid("editor.bindings", name, "%v", err)
		}
	}
	if !logLevels[strings.ToLower(s.Log.Level)] {
		invalid("log.level", s.Log.Level, "must be debug, info, warn or error")
	}
	if strings.TrimSpace(s.Shell.Owner) == "" {
		invalid("shell.owner", s.Shell.Owner, "must not be empty")
	}
	return errs
}
