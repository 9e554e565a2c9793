package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keyline/internal/config/loader"
)

// DefaultEnvPrefix is the prefix of configuration environment variables.
const DefaultEnvPrefix = "KEYLINE_"

// Config loads and holds the keyline settings.
type Config struct {
	mu sync.RWMutex

	path      string
	envPrefix string
	fs        loader.FileSystem
	environ   func() []string

	data     map[string]any
	settings Settings
	loaded   bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath sets the configuration file. An empty path skips the file.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithFS sets the file system the configuration file is read from.
func WithFS(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnviron replaces os.Environ as the environment source.
func WithEnviron(environ func() []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// New creates a Config holding the defaults. Call Load to read the file
// and the environment.
func New(opts ...Option) *Config {
	c := &Config{
		path:      DefaultPath(),
		envPrefix: DefaultEnvPrefix,
		fs:        loader.DefaultFS(),
		environ:   os.Environ,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.data = defaultConfig()
	settings, err := decode("defaults", c.data)
	if err != nil {
		panic(err)
	}
	c.settings = settings
	return c
}

// DefaultPath returns the user configuration file path.
func DefaultPath() string {
	return filepath.Join(defaultUserConfigDir(), "config.toml")
}

func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "keyline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".keyline"
	}
	return filepath.Join(home, ".config", "keyline")
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	return c.path
}

// Load reads defaults, the configuration file and the environment, in
// that order, and validates the result. On error the previous settings
// are kept.
func (c *Config) Load() error {
	data := defaultConfig()

	fileData, err := loader.NewTOMLLoaderWithFS(c.fs, c.path).Load()
	if err != nil {
		return err
	}
	data = loader.DeepMerge(data, fileData)

	env := loader.NewEnvLoader(c.envPrefix).WithTemplate(defaultConfig()).WithEnviron(c.environ)
	envData, err := env.Load()
	if err != nil {
		return err
	}
	data = loader.DeepMerge(data, envData)

	settings, err := decode(c.path, data)
	if err != nil {
		return err
	}
	if errs := settings.Validate(); len(errs) > 0 {
		return errors.Join(errs...)
	}
	settings.expandPaths()

	c.mu.Lock()
	c.data = data
	c.settings = settings
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Reload re-reads every source. It fails with ErrNotLoaded if Load never
// succeeded.
func (c *Config) Reload() error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if !loaded {
		return ErrNotLoaded
	}
	return c.Load()
}

// decode converts a merged map into typed settings.
func decode(source string, data map[string]any) (Settings, error) {
	var s Settings
	raw, err := toml.Marshal(data)
	if err != nil {
		return s, &DecodeError{Source: source, Err: err}
	}
	if err := toml.Unmarshal(raw, &s); err != nil {
		return s, &DecodeError{Source: source, Err: err}
	}
	return s, nil
}

func (s *Settings) expandPaths() {
	s.History.File = loader.ExpandPath(s.History.File)
	s.Alias.File = loader.ExpandPath(s.Alias.File)
	s.Script.File = loader.ExpandPath(s.Script.File)
	s.Log.File = loader.ExpandPath(s.Log.File)
}

// Settings returns a copy of the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.settings
	s.Editor.Bindings = make(map[string]string, len(c.settings.Editor.Bindings))
	for k, v := range c.settings.Editor.Bindings {
		s.Editor.Bindings[k] = v
	}
	return s
}

// Data returns a deep copy of the merged configuration tree.
func (c *Config) Data() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.data)
}

// History returns the history section.
func (c *Config) History() HistoryConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.History
}

// Editor returns the editor section.
func (c *Config) Editor() EditorConfig {
	return c.Settings().Editor
}

// Alias returns the alias section.
func (c *Config) Alias() AliasConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Alias
}

// Script returns the script section.
func (c *Config) Script() ScriptConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Script
}

// Log returns the log section.
func (c *Config) Log() LogConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Log
}

// Shell returns the shell section.
func (c *Config) Shell() ShellConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Shell
}
