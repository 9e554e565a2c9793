package popup

import (
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/renderer/core"
)

// Kind identifies the kind of a popup.
type Kind int

const (
	// KindBrowseList shows the command history as a scrollable list.
	KindBrowseList Kind = iota

	// KindCopyToChar asks for a character and copies the previous
	// command up to it.
	KindCopyToChar

	// KindCopyFromChar asks for a character and deletes the edit line up
	// to it.
	KindCopyFromChar

	// KindGotoNumber asks for a command number and recalls it.
	KindGotoNumber
)

var kindNames = [...]string{
	KindBrowseList:   "browse",
	KindCopyToChar:   "copy-to-char",
	KindCopyFromChar: "copy-from-char",
	KindGotoNumber:   "goto-number",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Prompts shown by the single-line popups.
const (
	CopyToCharPrompt   = "Enter char to copy up to: "
	CopyFromCharPrompt = "Enter char to delete up to: "
	GotoNumberPrompt   = "Enter command number: "
)

// NumberDigits is the number of digits the goto prompt accepts.
const NumberDigits = 5

// Size is the content size of a popup, without its frame.
type Size struct {
	Width  int
	Height int
}

// DefaultSize returns the content size used for kind.
func DefaultSize(kind Kind) Size {
	switch kind {
	case KindBrowseList:
		return Size{Width: 40, Height: 10}
	case KindCopyToChar:
		return Size{Width: len(CopyToCharPrompt) + 2, Height: 1}
	case KindCopyFromChar:
		return Size{Width: len(CopyFromCharPrompt) + 2, Height: 1}
	case KindGotoNumber:
		return Size{Width: len(GotoNumberPrompt) + NumberDigits, Height: 1}
	}
	return Size{}
}

// Outcome reports what handling an event did.
type Outcome int

const (
	// Pending means the popup is still open and waits for more input.
	Pending Outcome = iota

	// Closed means the popup closed. Editing continues.
	Closed

	// Submit means the popup closed and the edit line must be completed
	// as if Enter had been pressed.
	Submit
)

// Line is the edit line a popup acts on.
type Line interface {
	// Text returns the contents of the edit buffer.
	Text() []rune

	// Cursor returns the cursor offset in the buffer.
	Cursor() int

	// SetCommand replaces the buffer with the history command at
	// ordinal and puts the cursor at its end.
	SetCommand(ordinal int)

	// CopyFromLast copies the previous command from the cursor up to,
	// not including, offset end over the buffer.
	CopyFromLast(end int)

	// DeleteTo deletes the buffer from the cursor up to, not including,
	// offset end.
	DeleteTo(end int)

	// RestoreCursor puts the screen cursor back on the edit line.
	RestoreCursor()
}

// Popup is one open overlay.
type Popup struct {
	kind Kind

	// region is the frame, content is the area inside it.
	region  core.ScreenRect
	content core.ScreenRect

	// saved holds the full-width rows under region.
	savedRect core.ScreenRect
	saved     [][]core.Cell

	// savedCursor is the cursor position when the popup opened.
	savedCursor core.ScreenPos

	// Browse list state, in ordinals.
	current int
	bottom  int

	// Goto number state.
	digits []rune
}

// Kind returns the kind of the popup.
func (p *Popup) Kind() Kind {
	return p.kind
}

// Region returns the screen area of the popup, frame included.
func (p *Popup) Region() core.ScreenRect {
	return p.region
}

// Current returns the highlighted ordinal of a browse list.
func (p *Popup) Current() int {
	return p.current
}

// Digits returns the digits typed into a goto prompt.
func (p *Popup) Digits() string {
	return string(p.digits)
}

// HandleEvent processes one key for the popup on top of s.
func (p *Popup) HandleEvent(s *Stack, ev key.Event, line Line) Outcome {
	switch p.kind {
	case KindBrowseList:
		return p.handleBrowse(s, ev, line)
	case KindCopyToChar:
		return p.handleCopyToChar(s, ev, line)
	case KindCopyFromChar:
		return p.handleCopyFromChar(s, ev, line)
	case KindGotoNumber:
		return p.handleGotoNumber(s, ev, line)
	}
	s.Pop()
	return Closed
}
