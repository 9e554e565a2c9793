package editor

import (
	"errors"

	"github.com/dshills/keyline/internal/alias"
	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/popup"
	"github.com/dshills/keyline/internal/renderer"
	"github.com/dshills/keyline/internal/renderer/backend"
	"github.com/dshills/keyline/internal/renderer/core"
)

// eofChar is inserted by F6.
const eofChar = 0x1A

// Outcome reports the effect of one key.
type Outcome int

const (
	// Continue means the key was applied and editing goes on.
	Continue Outcome = iota

	// Complete means the line was accepted. Completion returns it.
	Complete

	// Truncated means a write did not fit the buffer. What fit was kept
	// and editing goes on.
	Truncated

	// Rejected means Enter was refused because the alias expansion did
	// not fit. The buffer is kept and nothing was recorded.
	Rejected
)

var outcomeNames = [...]string{
	Continue:  "continue",
	Complete:  "complete",
	Truncated: "truncated",
	Rejected:  "rejected",
}

// String returns the name of the outcome.
func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Completion is an accepted line.
type Completion struct {
	// Typed is the line as it was edited.
	Typed string

	// Commands holds the commands to run: the typed line, or the lines of
	// its alias expansion.
	Commands []string

	// Expanded reports whether an alias was expanded.
	Expanded bool
}

// Options configures an Editor.
type Options struct {
	// Renderer draws the line. Without one nothing is echoed and popups
	// are unavailable.
	Renderer renderer.Renderer

	// History is the command history of the owner; nil disables recall.
	History *history.History

	// Aliases expands completed lines; nil disables expansion.
	Aliases *alias.Registry

	// Owner names the program the aliases are looked up for.
	Owner string

	// Popups is the popup stack. One is created when nil.
	Popups *popup.Stack

	// Keymap overrides the default key bindings.
	Keymap *Keymap

	// Delimiters are the extra word delimiters.
	Delimiters Delimiters

	// ExtendedKeys selects the refined word motion. The extended key
	// bindings come from the keymap.
	ExtendedKeys bool

	// NoDuplicates records with duplicate removal.
	NoDuplicates bool

	// Insert is the initial insert mode.
	Insert bool

	// Echo draws the line and enables history and alias processing.
	Echo bool

	// Capacity is the buffer size in characters.
	Capacity int

	// Origin is where the line starts on screen.
	Origin core.ScreenPos
}

// Editor edits one line.
type Editor struct {
	state State

	r        renderer.Renderer
	hist     *history.History
	aliases  *alias.Registry
	owner    string
	popups   *popup.Stack
	keymap   *Keymap
	delims   Delimiters
	extended bool
	noDup    bool

	completion Completion
	done       bool
	err        error

	// cut is set when a popup wrote more than the buffer holds.
	cut bool
}

// New creates an editor for one read.
func New(opts Options) *Editor {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	keymap := opts.Keymap
	if keymap == nil {
		keymap = DefaultKeymap(opts.ExtendedKeys)
	}
	popups := opts.Popups
	if popups == nil && opts.Renderer != nil {
		popups = popup.NewStack(opts.Renderer, opts.History)
	}

	e := &Editor{
		state: State{
			Capacity: capacity,
			Echo:     opts.Echo,
			Insert:   opts.Insert,
			Origin:   opts.Origin,
		},
		r:        opts.Renderer,
		hist:     opts.History,
		aliases:  opts.Aliases,
		owner:    opts.Owner,
		popups:   popups,
		keymap:   keymap,
		delims:   opts.Delimiters,
		extended: opts.ExtendedKeys,
		noDup:    opts.NoDuplicates,
	}
	e.updateCursorStyle()
	e.RestoreCursor()
	return e
}

// State returns a copy of the edit state.
func (e *Editor) State() State {
	s := e.state
	s.Buffer = append([]rune(nil), e.state.Buffer...)
	return s
}

// InsertMode reports whether typing inserts.
func (e *Editor) InsertMode() bool {
	return e.state.Insert
}

// Done reports whether the line was completed.
func (e *Editor) Done() bool {
	return e.done
}

// Completion returns the accepted line once HandleKey returned Complete.
func (e *Editor) Completion() Completion {
	return e.completion
}

// Err returns the error that caused the last Rejected outcome.
func (e *Editor) Err() error {
	return e.err
}

// Popups returns the popup stack.
func (e *Editor) Popups() *popup.Stack {
	return e.popups
}

// PopupActive reports whether a popup receives the keys.
func (e *Editor) PopupActive() bool {
	return e.popups != nil && e.popups.Active()
}

// Abort closes every popup without touching the history.
func (e *Editor) Abort() {
	if e.popups != nil {
		e.popups.CloseAll()
	}
	e.done = true
}

// HandleKey applies one key.
func (e *Editor) HandleKey(ev key.Event) Outcome {
	if e.done {
		return Complete
	}
	ev = normalize(ev)

	if e.PopupActive() {
		e.cut = false
		out := e.popups.HandleEvent(ev, e)
		switch {
		case e.cut:
			// A cut line is never submitted unseen.
			return Truncated
		case out == popup.Submit:
			return e.complete()
		}
		return Continue
	}

	if action, ok := e.keymap.Lookup(ev); ok {
		return e.run(action)
	}

	switch {
	case ev.Key == key.KeyTab:
		return e.insert('\t')
	case ev.Key != key.KeyRune || ev.Rune == 0 || ev.Modifiers.HasAlt():
		return Continue
	case ev.Modifiers.HasCtrl():
		if c := controlChar(ev.Rune); c != 0 {
			return e.insert(c)
		}
		return Continue
	}
	return e.insert(ev.Rune)
}

// normalize turns raw control runes into the keys they stand for.
func normalize(ev key.Event) key.Event {
	if ev.Key != key.KeyRune || ev.Modifiers != key.ModNone {
		return ev
	}
	switch ev.Rune {
	case '\r', '\n':
		return key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	case '\b', 0x7F:
		return key.NewSpecialEvent(key.KeyBackspace, key.ModNone)
	case '\t':
		return key.NewSpecialEvent(key.KeyTab, key.ModNone)
	case 0x1B:
		return key.NewSpecialEvent(key.KeyEscape, key.ModNone)
	}
	return ev
}

// controlChar returns the control character of Ctrl+r, or 0.
func controlChar(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return r - 'a' + 1
	case r >= '@' && r <= '_':
		return r - '@'
	}
	return 0
}

func (e *Editor) run(action Action) Outcome {
	switch action {
	case ActionComplete:
		return e.complete()
	case ActionBackspace:
		e.backspace()
	case ActionDeleteChar:
		e.deleteChar(false)
	case ActionDeleteWordClass:
		e.deleteChar(true)
	case ActionDeleteToEnd:
		e.deleteToEnd()
	case ActionDeleteToStart:
		e.deleteToStart()
	case ActionDeleteLine:
		e.setLine(nil)
	case ActionErasePrevWord:
		e.erasePrevWord()
	case ActionToggleInsert:
		e.state.Insert = !e.state.Insert
		e.updateCursorStyle()
	case ActionInsertEOF:
		return e.insert(eofChar)

	case ActionMoveLeft:
		e.moveTo(e.state.Cursor - 1)
	case ActionMoveRight:
		return e.moveRight()
	case ActionLineStart:
		e.moveTo(0)
	case ActionLineEnd:
		e.moveTo(e.state.Len())
	case ActionWordLeft:
		e.wordLeft()
	case ActionWordRight:
		e.wordRight()

	case ActionHistoryPrevious:
		return e.recall(history.Older)
	case ActionHistoryNext:
		return e.recall(history.Newer)
	case ActionHistoryOldest:
		return e.recallOrdinal(0)
	case ActionHistoryNewest:
		if e.hist != nil {
			return e.recallOrdinal(e.hist.Count() - 1)
		}
	case ActionHistorySearch:
		return e.search()
	case ActionHistoryClear:
		if e.hist != nil {
			e.hist.ClearAll()
		}
	case ActionCopyRest:
		return e.copyRest()

	case ActionBrowse:
		e.openPopup(popup.KindBrowseList)
	case ActionCopyToChar:
		if e.hist != nil {
			e.openPopup(popup.KindCopyToChar)
		}
	case ActionCopyFromChar:
		if e.hist != nil {
			e.openPopup(popup.KindCopyFromChar)
		}
	case ActionGotoNumber:
		e.openGotoNumber()
	case ActionClearAliases:
		if e.aliases != nil {
			e.aliases.ClearShell()
		}
	}
	return Continue
}

func (e *Editor) openPopup(kind popup.Kind) {
	if e.popups == nil {
		return
	}
	// Failing to open leaves the line as it is.
	_, _ = e.popups.Push(kind, popup.DefaultSize(kind))
}

func (e *Editor) openGotoNumber() {
	if e.r == nil {
		return
	}
	if w, _ := e.r.Size(); w < popup.NumberDigits+2 {
		return
	}
	e.openPopup(popup.KindGotoNumber)
}

// complete accepts the line.
func (e *Editor) complete() Outcome {
	typed := string(e.state.Buffer)
	c := Completion{Typed: typed, Commands: []string{typed}}

	if e.state.Echo && e.aliases != nil {
		exp, err := e.aliases.Expand(e.owner, typed, e.state.Capacity)
		switch {
		case err == nil:
			c.Commands = exp.Commands()
			c.Expanded = true
		case errors.Is(err, alias.ErrNoAlias):
		default:
			e.err = err
			e.beep()
			return Rejected
		}
	}

	if e.state.Echo && e.hist != nil && typed != "" {
		// A history of zero capacity records nothing.
		_ = e.hist.Record(typed, e.noDup)
	}

	e.completion = c
	e.done = true
	e.err = nil
	e.finishLine()
	return Complete
}

func (e *Editor) updateCursorStyle() {
	if e.r == nil || !e.state.Echo {
		return
	}
	if e.state.Insert {
		e.r.SetCursorStyle(backend.CursorUnderline)
	} else {
		e.r.SetCursorStyle(backend.CursorBlock)
	}
}

func (e *Editor) beep() {
	if e.r != nil {
		e.r.Beep()
	}
}

// Ensure Editor implements popup.Line.
var _ popup.Line = (*Editor)(nil)
