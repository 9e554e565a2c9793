package script

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a script run.
const DefaultTimeout = 5 * time.Second

// Host is the shell state a script configures.
type Host interface {
	DefineAlias(owner, source, target string) error
	SetHistoryDefaults(capacity, buffers int) error
}

// Logger receives log() calls.
type Logger interface {
	Info(msg string, args ...any)
}

// Runner executes scripts against a Host. gopher-lua states are not
// goroutine-safe; the mutex serializes runs.
type Runner struct {
	mu      sync.Mutex
	L       *lua.LState
	host    Host
	logger  Logger
	timeout time.Duration
	closed  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the destination of log().
func WithLogger(l Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithTimeout sets the time limit of a run. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// New creates a sandboxed runner bound to host.
func New(host Host, opts ...Option) *Runner {
	r := &Runner{
		host:    host,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	sandbox(L)
	r.L = L
	r.register()
	return r
}

// openSafeLibraries opens only the libraries that cannot reach the
// file system or the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes the base functions that load code from files or
// strings.
func sandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func(L *lua.LState) error { return L.DoFile(path) })
}

// RunString executes source, reporting errors under name.
func (r *Runner) RunString(ctx context.Context, name, source string) error {
	return r.run(ctx, name, func(L *lua.LState) error { return L.DoString(source) })
}

func (r *Runner) run(ctx context.Context, path string, fn func(*lua.LState) error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return &Error{Path: path, Err: ErrStateClosed}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if p := recover(); p != nil {
			err = &Error{Path: path, Err: fmt.Errorf("lua panic: %v", p)}
		}
	}()

	if err := fn(r.L); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &Error{Path: path, Err: ErrTimeout}
		}
		if ctx.Err() != nil {
			return &Error{Path: path, Err: ctx.Err()}
		}
		return &Error{Path: path, Err: cleanError(err)}
	}
	return nil
}

// cleanError drops the Lua stack traceback, keeping the message.
func cleanError(err error) error {
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) && apiErr.Object != nil {
		return errors.New(apiErr.Object.String())
	}
	return err
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		r.L.Close()
	}
}
