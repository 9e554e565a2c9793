package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/dshills/keyline/internal/alias"
	"github.com/dshills/keyline/internal/editor"
	"github.com/dshills/keyline/internal/history"
)

// Logger is the logging interface used by sessions.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Settings control how sessions edit.
type Settings struct {
	// BufferSize is the edit buffer capacity in characters. Alias
	// expansions must fit it too.
	BufferSize int

	// InsertMode is the initial insert mode of a new session.
	InsertMode bool

	// ExtendedKeys selects refined word motion and the Ctrl/Alt letter
	// bindings.
	ExtendedKeys bool

	// Delimiters are extra word delimiters.
	Delimiters string

	// NoDuplicates moves a repeated command to the newest position
	// instead of storing it twice.
	NoDuplicates bool

	// Keymap replaces the default key bindings.
	Keymap *editor.Keymap
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		BufferSize: editor.DefaultCapacity,
		InsertMode: true,
	}
}

// Option configures a ShellState.
type Option func(*ShellState)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(s *ShellState) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOwners sets the owner registry.
func WithOwners(r OwnerRegistry) Option {
	return func(s *ShellState) {
		s.owners = r
	}
}

// WithStore sets the history pool.
func WithStore(st *history.Store) Option {
	return func(s *ShellState) {
		if st != nil {
			s.store = st
		}
	}
}

// WithAliases sets the alias registry.
func WithAliases(r *alias.Registry) Option {
	return func(s *ShellState) {
		if r != nil {
			s.aliases = r
		}
	}
}

// WithSettings sets the edit settings.
func WithSettings(st Settings) Option {
	return func(s *ShellState) {
		s.settings = st
	}
}

// ShellState is the state shared by every session of a shell process.
// Every method locks it.
type ShellState struct {
	mu sync.Mutex

	store    *history.Store
	aliases  *alias.Registry
	owners   OwnerRegistry
	settings Settings
	logger   Logger

	sessions map[uuid.UUID]*Session
}

// New creates the shell state.
func New(opts ...Option) *ShellState {
	s := &ShellState{
		store:    history.NewStore(),
		aliases:  alias.NewRegistry(),
		settings: DefaultSettings(),
		logger:   nopLogger{},
		sessions: make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Do runs fn under the shell lock. fn may use the store and registry
// directly but must not call other ShellState or Session methods.
func (s *ShellState) Do(fn func(store *history.Store, aliases *alias.Registry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.store, s.aliases)
}

// Settings returns the edit settings.
func (s *ShellState) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetSettings replaces the edit settings. Reads already started keep
// the old ones.
func (s *ShellState) SetSettings(st Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = st
}

// Sessions returns the number of attached sessions.
func (s *ShellState) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// DefineAlias adds, replaces or, with an empty target, removes an alias.
func (s *ShellState) DefineAlias(owner, source, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.aliases.Define(owner, source, target); err != nil {
		return err
	}
	if target == "" {
		s.logger.Debug("alias %s removed for %s", source, owner)
	} else {
		s.logger.Debug("alias %s defined for %s", source, owner)
	}
	return nil
}

// ExportAliases writes the aliases of owner as source=target records.
// A nil dst returns the size needed.
func (s *ShellState) ExportAliases(owner string, dst []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aliases.ExportAliases(owner, dst)
}

// ExportAliasOwners writes the names of owners with aliases. A nil dst
// returns the size needed.
func (s *ShellState) ExportAliasOwners(dst []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aliases.ExportOwners(dst)
}

// ExpandAlias expands line with the aliases of owner without editing,
// as a read with echo does on completion. Lines whose first word is not
// an alias fail with alias.ErrNoAlias.
func (s *ShellState) ExpandAlias(owner, line string) (alias.Expansion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity := s.settings.BufferSize
	if capacity <= 0 {
		capacity = editor.DefaultCapacity
	}
	return s.aliases.Expand(owner, line, capacity)
}

// HistoryCapacity returns the capacity of the history of owner.
func (s *ShellState) HistoryCapacity(owner string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.findHistory(owner)
	if err != nil {
		return 0, err
	}
	return h.Capacity(), nil
}

// SetHistoryCapacity resizes the history of owner, keeping its most
// recent commands.
func (s *ShellState) SetHistoryCapacity(owner string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 0 {
		return fmt.Errorf("history capacity %d: %w", n, history.ErrZeroCapacity)
	}
	if n > history.MaxCapacity {
		return fmt.Errorf("history capacity %d: %w", n, history.ErrCapacityTooLarge)
	}
	h, err := s.findHistory(owner)
	if err != nil {
		return err
	}
	if h.ResizeCapacity(n) {
		s.logger.Debug("history of %s resized to %d", owner, n)
	}
	return nil
}

// SetHistoryDefaults sets the capacity of every history and, when buffers
// is positive, the number of histories the pool may hold.
func (s *ShellState) SetHistoryDefaults(capacity, buffers int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SetCapacity(capacity); err != nil {
		return err
	}
	s.store.SetMaxHistories(buffers)
	s.logger.Debug("history pool set to %d commands, %d buffers", capacity, s.store.MaxHistories())
	return nil
}

// ClearHistory discards every command of owner.
func (s *ShellState) ClearHistory(owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.findHistory(owner)
	if err != nil {
		return err
	}
	h.ClearAll()
	return nil
}

// ExportHistory writes the commands of owner, oldest first, as
// NUL-terminated strings. A nil dst returns the size needed.
func (s *ShellState) ExportHistory(owner string, dst []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.findHistory(owner)
	if err != nil {
		return 0, err
	}
	return h.Export(dst)
}

// findHistory returns the history of owner, preferring an allocated one.
func (s *ShellState) findHistory(owner string) (*history.History, error) {
	if h, ok := s.store.Find(owner); ok {
		return h, nil
	}
	fold := cases.Fold()
	key := fold.String(owner)
	for _, h := range s.store.Histories() {
		if fold.String(h.Owner()) == key {
			return h, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", history.ErrNotFound, owner)
}

// Attach creates a session for the client process pid and binds a
// command history to it. When every history is in use the session runs
// without one.
func (s *ShellState) Attach(pid history.ProcessID, opts ...AttachOption) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner := ""
	if s.owners != nil {
		name, ok := s.owners.Owner(pid)
		if !ok {
			return nil, fmt.Errorf("%w: pid %d", ErrUnknownProcess, pid)
		}
		owner = name
	}

	sess := &Session{
		ID:     uuid.New(),
		shell:  s,
		pid:    pid,
		owner:  owner,
		insert: s.settings.InsertMode,
	}
	for _, opt := range opts {
		opt(sess)
	}

	h, err := s.store.Allocate(owner, pid)
	switch {
	case err == nil:
		sess.hist = h
	case errors.Is(err, history.ErrNoFreeHistory):
		s.logger.Warn("session %s: %v; running without history", sess.ID, err)
	default:
		return nil, err
	}

	sess.attachPopups()
	s.sessions[sess.ID] = sess
	s.logger.Info("session %s attached: pid=%d owner=%s", sess.ID, pid, owner)
	return sess, nil
}

// Detach ends sess. An active read is aborted and the history goes back
// to the free pool with its commands.
func (s *ShellState) Detach(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess == nil || sess.detached {
		return
	}
	sess.abortLocked()
	sess.pending = nil
	s.store.Release(sess.hist)
	sess.hist = nil
	sess.detached = true
	delete(s.sessions, sess.ID)
	s.logger.Info("session %s detached", sess.ID)
}
