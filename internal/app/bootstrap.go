package app

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/dshills/keyline/internal/alias"
	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/config/watcher"
	"github.com/dshills/keyline/internal/editor"
	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/script"
	"github.com/dshills/keyline/internal/session"
)

// bootstrapper starts components in dependency order and stops the
// started ones again when a later step fails.
type bootstrapper struct {
	app       *Application
	initOrder []string
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{app: app, initOrder: make([]string, 0, 4)}
}

func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initShell,
		b.initFiles,
		b.initScript,
		b.initWatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

func (b *bootstrapper) initConfig() error {
	opts := b.app.opts
	var cfgOpts []config.Option
	if opts.ConfigPath != "" {
		cfgOpts = append(cfgOpts, config.WithPath(opts.ConfigPath))
	}
	b.app.config = config.New(cfgOpts...)

	if err := b.app.config.Load(); err != nil {
		if opts.ConfigPath != "" {
			return &InitError{Component: "config", Err: err}
		}
		b.app.configErr = err
	}
	return nil
}

func (b *bootstrapper) initLogger() error {
	app := b.app
	logCfg := app.config.Log()

	level := ParseLogLevel(logCfg.Level)
	if app.opts.LogLevel != "" {
		level = ParseLogLevel(app.opts.LogLevel)
	}
	if app.opts.Debug {
		level = LogLevelDebug
	}

	out := app.opts.LogOutput
	if out == nil {
		w, closer, err := openLogOutput(logCfg.File, app.opts.Interactive)
		if err != nil {
			return &InitError{Component: "logger", Err: err}
		}
		out = w
		app.logCloser = closer
		b.initOrder = append(b.initOrder, "log")
	}

	app.logger = NewLogger(LoggerConfig{Level: level, Output: out, Prefix: "keyline"})
	SetLogger(app.logger)

	if app.configErr != nil {
		app.logger.Warn("using default configuration: %v", app.configErr)
	} else {
		app.logger.Debug("configuration loaded from %s", app.config.Path())
	}
	return nil
}

func (b *bootstrapper) initShell() error {
	app := b.app
	cfg := app.config.Settings()

	app.owner = cfg.Shell.Owner
	if app.opts.Owner != "" {
		app.owner = app.opts.Owner
	}

	keymap := editor.DefaultKeymap(cfg.Editor.ExtendedKeys)
	if err := keymap.Apply(cfg.Editor.Bindings); err != nil {
		return &InitError{Component: "keymap", Err: err}
	}

	store := history.NewStore(
		history.WithCapacity(cfg.History.Size),
		history.WithMaxHistories(cfg.History.Buffers),
	)
	aliases := alias.NewRegistry(alias.WithShellOwner(app.owner))

	app.shell = session.New(
		session.WithLogger(app.logger.WithComponent("session")),
		session.WithOwners(session.SingleOwner(app.owner)),
		session.WithStore(store),
		session.WithAliases(aliases),
		session.WithSettings(session.Settings{
			BufferSize:   cfg.Editor.BufferSize,
			InsertMode:   cfg.Editor.InsertMode,
			ExtendedKeys: cfg.Editor.ExtendedKeys,
			Delimiters:   cfg.Editor.WordDelimiters,
			NoDuplicates: cfg.History.NoDuplicates,
			Keymap:       keymap,
		}),
	)
	return nil
}

func (b *bootstrapper) initScript() error {
	app := b.app
	path := app.config.Script().File
	if path == "" {
		return nil
	}

	app.script = script.New(app.shell, script.WithLogger(app.logger.WithComponent("script")))
	b.initOrder = append(b.initOrder, "script")
	if err := app.script.RunFile(context.Background(), path); err != nil {
		return &InitError{Component: "script", Err: err}
	}
	app.logger.Info("startup script %s done", path)
	return nil
}

// initFiles loads the alias and history files. Missing files are fine;
// unreadable ones are logged and skipped.
func (b *bootstrapper) initFiles() error {
	app := b.app
	if path := app.config.History().File; path != "" {
		var err error
		app.shell.Do(func(store *history.Store, _ *alias.Registry) {
			err = store.LoadFile(path)
		})
		if err != nil {
			app.logger.Warn("history file %s: %v", path, err)
		}
	}
	if path := app.config.Alias().File; path != "" {
		if _, err := app.loadAliases(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			app.logger.Warn("alias file %s: %v", path, err)
		}
	}
	return nil
}

func (b *bootstrapper) initWatcher() error {
	app := b.app
	aliasCfg := app.config.Alias()
	if aliasCfg.File == "" || !aliasCfg.Watch {
		return nil
	}

	w, err := watcher.New()
	if err != nil {
		app.logger.Warn("alias file watching disabled: %v", err)
		return nil
	}
	if err := w.Watch(aliasCfg.File); err != nil {
		_ = w.Stop()
		app.logger.Warn("alias file watching disabled: %v", err)
		return nil
	}
	w.OnChange(app.handleAliasChange)
	w.OnError(func(err error) {
		app.logger.WithComponent("watcher").Warn("%v", err)
	})
	w.Start()

	app.watcher = w
	b.initOrder = append(b.initOrder, "watcher")
	return nil
}

// cleanup stops components in reverse start order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
}

func (b *bootstrapper) cleanupComponent(component string) {
	app := b.app
	switch component {
	case "watcher":
		if app.watcher != nil {
			_ = app.watcher.Stop()
			app.watcher = nil
		}
	case "script":
		if app.script != nil {
			app.script.Close()
			app.script = nil
		}
	case "log":
		if app.logCloser != nil {
			_ = app.logCloser.Close()
			app.logCloser = nil
		}
	}
}

// loadAliases replaces the aliases of every owner named in the file with
// the file's definitions. Owners the file does not mention keep theirs.
func (app *Application) loadAliases(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	parsed := alias.NewRegistry()
	if _, err := parsed.Load(raw); err != nil {
		return 0, &OperationError{Op: "load", Target: path, Err: err}
	}

	var n int
	app.shell.Do(func(_ *history.Store, aliases *alias.Registry) {
		for _, owner := range parsed.ListOwners() {
			aliases.Clear(owner)
		}
		n, err = aliases.Load(raw)
	})
	if err != nil {
		return n, &OperationError{Op: "load", Target: path, Err: err}
	}
	app.logger.Info("loaded %d aliases from %s", n, path)
	return n, nil
}

func (app *Application) handleAliasChange(ev watcher.Event) {
	switch ev.Op {
	case watcher.OpRemove, watcher.OpRename:
		app.logger.Debug("alias file %s %s; keeping current aliases", ev.Path, ev.Op)
		return
	}
	if _, err := app.loadAliases(ev.Path); err != nil {
		app.logger.Warn("reloading aliases: %v", err)
		return
	}
	app.stats.RecordReload()
}

// saveFiles writes the history file. Aliases are never written back.
func (app *Application) saveFiles() error {
	var errs []error
	if path := app.config.History().File; path != "" {
		var err error
		app.shell.Do(func(store *history.Store, _ *alias.Registry) {
			err = store.SaveFile(path)
		})
		if err != nil {
			errs = append(errs, &OperationError{Op: "save", Target: path, Err: err})
		}
	}
	return errors.Join(errs...)
}
