package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dshills/keyline/internal/editor"
	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/input"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/popup"
	"github.com/dshills/keyline/internal/renderer"
	"github.com/dshills/keyline/internal/renderer/core"
)

// AttachOption configures a Session.
type AttachOption func(*Session)

// WithRenderer sets the screen the session echoes to. Without one reads
// are not echoed and popups are unavailable.
func WithRenderer(r renderer.Renderer) AttachOption {
	return func(s *Session) {
		s.r = r
	}
}

// ReadOptions describe one read.
type ReadOptions struct {
	// Origin is the screen position after the prompt.
	Origin core.ScreenPos

	// Echo draws the line and enables history and alias processing.
	Echo bool

	// MaxLength caps the returned text in characters. Zero means no
	// limit.
	MaxLength int

	// Interrupt is consulted with every key before the editor sees it.
	// Returning true aborts the read with ErrInterrupted.
	Interrupt func(ev key.Event, line string) bool
}

// Session is one client process reading lines. Its methods lock the
// owning ShellState.
type Session struct {
	// ID identifies the session in logs.
	ID uuid.UUID

	shell *ShellState
	pid   history.ProcessID
	owner string
	hist  *history.History
	r     renderer.Renderer

	popups *popup.Stack
	ed     *editor.Editor
	read   ReadOptions

	// insert carries the insert mode from one read to the next.
	insert bool

	// pending holds lines to return before reading more keys.
	pending []string

	detached bool
}

func (s *Session) attachPopups() {
	if s.r == nil {
		return
	}
	s.popups = popup.NewStack(s.r, s.hist)
}

// Owner returns the owner name the session was attached with.
func (s *Session) Owner() string {
	return s.owner
}

// Process returns the client process id.
func (s *Session) Process() history.ProcessID {
	return s.pid
}

// History returns the command history, or nil when the session has none.
func (s *Session) History() *history.History {
	return s.hist
}

// Reading reports whether a read is in progress.
func (s *Session) Reading() bool {
	s.shell.mu.Lock()
	defer s.shell.mu.Unlock()
	return s.ed != nil
}

// Pending returns the number of lines waiting to be read.
func (s *Session) Pending() int {
	s.shell.mu.Lock()
	defer s.shell.mu.Unlock()
	return len(s.pending)
}

// InsertMode reports the insert mode the next read starts in.
func (s *Session) InsertMode() bool {
	s.shell.mu.Lock()
	defer s.shell.mu.Unlock()
	if s.ed != nil {
		return s.ed.InsertMode()
	}
	return s.insert
}

// Begin starts a read. When lines are pending the first one completes
// the read at once and is returned; otherwise the result is
// StatusAwaitingInput.
func (s *Session) Begin(opts ReadOptions) (Result, error) {
	s.shell.mu.Lock()
	defer s.shell.mu.Unlock()

	if s.detached {
		return Result{}, ErrDetached
	}
	if s.ed != nil {
		return Result{}, ErrReadInProgress
	}
	s.read = opts

	if len(s.pending) > 0 {
		text := s.pending[0]
		s.pending = s.pending[1:]
		return s.deliver(text, 1), nil
	}

	st := s.shell.settings
	keymap := st.Keymap
	if keymap == nil {
		keymap = editor.DefaultKeymap(st.ExtendedKeys)
	}
	s.ed = editor.New(editor.Options{
		Renderer:     s.r,
		History:      s.hist,
		Aliases:      s.shell.aliases,
		Owner:        s.owner,
		Popups:       s.popups,
		Keymap:       keymap,
		Delimiters:   editor.Delimiters(st.Delimiters),
		ExtendedKeys: st.ExtendedKeys,
		NoDuplicates: st.NoDuplicates,
		Insert:       s.insert,
		Echo:         opts.Echo,
		Capacity:     st.BufferSize,
		Origin:       opts.Origin,
	})
	return Result{Status: StatusAwaitingInput}, nil
}

// SubmitKey feeds one key event to the active read.
func (s *Session) SubmitKey(ev key.Event) Result {
	s.shell.mu.Lock()
	defer s.shell.mu.Unlock()
	return s.submitLocked(ev)
}

// Pump feeds events from src until the read finishes or src has none
// left. A closed source aborts the read. A key that did not fit the
// buffer stops the drain with ErrLineFull; later events stay in src.
func (s *Session) Pump(src input.Source) Result {
	s.shell.mu.Lock()
	defer s.shell.mu.Unlock()

	if s.ed == nil {
		return s.noRead()
	}
	for {
		ev, err := src.Next(false)
		switch {
		case errors.Is(err, input.ErrWouldBlock):
			return Result{Status: StatusAwaitingInput}
		case errors.Is(err, input.ErrClosed):
			s.abortLocked()
			return Result{Status: StatusAborted, Err: ErrAborted}
		case err != nil:
			return Result{Status: StatusAwaitingInput, Err: err}
		}

		if res := s.submitLocked(ev); res.Status != StatusAwaitingInput || res.Err != nil {
			return res
		}
	}
}

// Abort ends the active read without recording anything. Open popups are
// closed and their screen contents restored.
func (s *Session) Abort() {
	s.shell.mu.Lock()
	defer s.shell.mu.Unlock()
	s.abortLocked()
	s.pending = nil
}

func (s *Session) abortLocked() {
	if s.ed == nil {
		return
	}
	s.insert = s.ed.InsertMode()
	s.ed.Abort()
	s.ed = nil
	s.shell.logger.Debug("session %s: read aborted", s.ID)
}

func (s *Session) noRead() Result {
	if s.detached {
		return Result{Status: StatusAborted, Err: ErrDetached}
	}
	return Result{Status: StatusAborted, Err: ErrNoRead}
}

func (s *Session) submitLocked(ev key.Event) Result {
	if s.ed == nil {
		return s.noRead()
	}
	if s.read.Interrupt != nil && s.read.Interrupt(ev, string(s.ed.Text())) {
		s.abortLocked()
		return Result{Status: StatusAborted, Err: ErrInterrupted}
	}

	switch s.ed.HandleKey(ev) {
	case editor.Complete:
		c := s.ed.Completion()
		s.insert = s.ed.InsertMode()
		s.ed = nil
		if c.Expanded {
			s.shell.logger.Debug("session %s: %q expanded to %d lines", s.ID, c.Typed, len(c.Commands))
		}
		s.pending = append(s.pending, c.Commands[1:]...)
		return s.deliver(c.Commands[0], len(c.Commands))
	case editor.Rejected:
		err := s.ed.Err()
		s.shell.logger.Warn("session %s: line rejected: %v", s.ID, err)
		return Result{Status: StatusRejected, Err: err}
	case editor.Truncated:
		return Result{Status: StatusAwaitingInput, Err: ErrLineFull}
	}
	return Result{Status: StatusAwaitingInput}
}

// deliver finishes the read with text, cutting it to MaxLength. The cut
// off rest becomes the next pending line.
func (s *Session) deliver(text string, lines int) Result {
	limit := s.read.MaxLength
	if runes := []rune(text); limit > 0 && len(runes) > limit {
		s.pending = append([]string{string(runes[limit:])}, s.pending...)
		return Result{Status: StatusTruncated, Text: string(runes[:limit]), Lines: lines}
	}
	return Result{Status: StatusLineComplete, Text: text, Lines: lines}
}
