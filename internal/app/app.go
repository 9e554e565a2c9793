package app

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/config/watcher"
	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/renderer"
	"github.com/dshills/keyline/internal/renderer/backend"
	"github.com/dshills/keyline/internal/script"
	"github.com/dshills/keyline/internal/session"
)

// Application owns the configuration, the shared shell state and the
// terminal, and runs the read loop of the interactive shell.
type Application struct {
	mu sync.RWMutex

	opts   Options
	config *config.Config
	logger *Logger
	stats  *Stats

	shell   *session.ShellState
	owner   string
	script  *script.Runner
	watcher *watcher.Watcher

	logCloser io.Closer

	// configErr holds a non-fatal load error until the logger exists.
	configErr error

	backend backend.Backend
	surface *renderer.Surface
	session *session.Session

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses the default path,
	// where a missing or broken file only produces a warning.
	ConfigPath string

	// Owner overrides shell.owner.
	Owner string

	// Debug forces debug logging.
	Debug bool

	// LogLevel overrides log.level.
	LogLevel string

	// Interactive is set when the terminal UI owns the screen. Logs then
	// never go to stderr.
	Interactive bool

	// LogOutput overrides log.file.
	LogOutput io.Writer

	// OnLine is called with every command a read delivers.
	OnLine func(cmd string)
}

// New creates an Application and starts its components. On error every
// component already started is stopped again.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:  opts,
		stats: NewStats(),
		done:  make(chan struct{}),
	}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetBackend sets the terminal backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run attaches the shell session to the terminal and reads lines until
// the user quits, ctx is cancelled or Shutdown is called.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	surface := renderer.NewSurface(b)
	sess, err := app.shell.Attach(history.ProcessID(os.Getpid()), session.WithRenderer(surface))
	if err != nil {
		return &InitError{Component: "session", Err: err}
	}
	defer app.shell.Detach(sess)

	app.mu.Lock()
	app.surface = surface
	app.session = sess
	app.mu.Unlock()

	app.logger.Info("session %s attached for %s", sess.ID, app.owner)
	return app.eventLoop(ctx, b, surface, sess)
}

// Shutdown makes Run return. It is safe to call more than once and from
// any goroutine.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() {
		close(app.done)
		app.mu.RLock()
		b := app.backend
		app.mu.RUnlock()
		if b != nil && app.running.Load() {
			b.PostEvent(backend.Event{Type: backend.EventInterrupt})
		}
	})
}

// Close saves the history file and releases resources. Call it after
// Run returns.
func (app *Application) Close() error {
	app.Shutdown()
	err := app.saveFiles()

	snap := app.stats.Snapshot()
	app.logger.Debug("shell stats: %d keys, %d lines, %d expanded, %d rejected, %d truncated, %d reloads, avg key %s",
		snap.Keys, snap.Lines, snap.Expanded, snap.Rejected, snap.Truncated, snap.Reloads, snap.AvgKey)

	b := &bootstrapper{app: app, initOrder: []string{"log", "script", "watcher"}}
	b.cleanup()
	return err
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Shell returns the shared shell state.
func (app *Application) Shell() *session.ShellState {
	return app.shell
}

// Owner returns the owner name of the interactive shell.
func (app *Application) Owner() string {
	return app.owner
}

// Stats returns the loop counters.
func (app *Application) Stats() *Stats {
	return app.stats
}
