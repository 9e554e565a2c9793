package popup

import (
	"fmt"

	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/renderer"
	"github.com/dshills/keyline/internal/renderer/core"
)

// Frame characters.
const (
	frameHorizontal  = '─'
	frameVertical    = '│'
	frameTopLeft     = '┌'
	frameTopRight    = '┐'
	frameBottomLeft  = '└'
	frameBottomRight = '┘'
)

// Stack holds the open popups of one edit session, newest last.
type Stack struct {
	r      renderer.Renderer
	hist   *history.History
	style  core.Style
	popups []*Popup
}

// NewStack creates an empty stack drawing to r. hist may be nil, in
// which case the history popups cannot be opened.
func NewStack(r renderer.Renderer, hist *history.History) *Stack {
	return &Stack{
		r:     r,
		hist:  hist,
		style: core.PopupStyle(),
	}
}

// History returns the history the popups browse.
func (s *Stack) History() *history.History {
	return s.hist
}

// Len returns the number of open popups.
func (s *Stack) Len() int {
	return len(s.popups)
}

// Active reports whether any popup is open.
func (s *Stack) Active() bool {
	return len(s.popups) > 0
}

// Top returns the newest popup, or nil.
func (s *Stack) Top() *Popup {
	if len(s.popups) == 0 {
		return nil
	}
	return s.popups[len(s.popups)-1]
}

// Push opens a popup of kind with the given content size. The popup is
// centred on the screen and shrunk to fit it.
func (s *Stack) Push(kind Kind, size Size) (*Popup, error) {
	if kind == KindBrowseList || kind == KindGotoNumber {
		if s.hist == nil || s.hist.Count() == 0 {
			return nil, fmt.Errorf("%s popup: %w", kind, ErrNoHistory)
		}
	}

	screenW, screenH := s.r.Size()
	w := min(size.Width+2, screenW)
	h := min(size.Height+2, screenH)
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("%s popup in %dx%d: %w", kind, screenW, screenH, ErrTooSmall)
	}

	region := core.RectFromSize((screenH-h)/2, (screenW-w)/2, h, w)
	p := &Popup{
		kind:        kind,
		region:      region,
		content:     region.Inset(1),
		savedRect:   core.ScreenRect{Top: region.Top, Left: 0, Bottom: region.Bottom, Right: screenW},
		savedCursor: s.r.Cursor(),
	}
	p.saved = s.r.ReadRegion(p.savedRect)
	s.popups = append(s.popups, p)

	s.drawFrame(p)
	switch kind {
	case KindBrowseList:
		p.initBrowse(s)
	case KindCopyToChar:
		s.drawPrompt(p, CopyToCharPrompt)
	case KindCopyFromChar:
		s.drawPrompt(p, CopyFromCharPrompt)
	case KindGotoNumber:
		p.initGotoNumber(s)
	}
	s.r.Flush()
	return p, nil
}

// Pop closes the newest popup and restores the screen under it.
func (s *Stack) Pop() {
	p := s.Top()
	if p == nil {
		return
	}
	s.popups = s.popups[:len(s.popups)-1]
	s.r.WriteRegion(p.savedRect, p.saved)
	s.r.SetCursor(p.savedCursor)
	s.r.Flush()
}

// CloseAll pops every popup.
func (s *Stack) CloseAll() {
	for s.Active() {
		s.Pop()
	}
}

// HandleEvent sends ev to the newest popup. When the last popup closes
// the cursor is handed back to line.
func (s *Stack) HandleEvent(ev key.Event, line Line) Outcome {
	p := s.Top()
	if p == nil {
		return Closed
	}
	out := p.HandleEvent(s, ev, line)
	if out != Pending && !s.Active() {
		line.RestoreCursor()
	}
	return out
}

func (s *Stack) drawFrame(p *Popup) {
	r := p.region
	inner := r.Width() - 2

	top := make([]rune, 0, r.Width())
	top = append(top, frameTopLeft)
	top = append(top, repeatRune(frameHorizontal, inner)...)
	top = append(top, frameTopRight)
	s.r.WriteText(core.ScreenPos{Row: r.Top, Col: r.Left}, top, s.style)

	for row := r.Top + 1; row < r.Bottom-1; row++ {
		line := make([]rune, 0, r.Width())
		line = append(line, frameVertical)
		line = append(line, repeatRune(' ', inner)...)
		line = append(line, frameVertical)
		s.r.WriteText(core.ScreenPos{Row: row, Col: r.Left}, line, s.style)
	}

	bottom := make([]rune, 0, r.Width())
	bottom = append(bottom, frameBottomLeft)
	bottom = append(bottom, repeatRune(frameHorizontal, inner)...)
	bottom = append(bottom, frameBottomRight)
	s.r.WriteText(core.ScreenPos{Row: r.Bottom - 1, Col: r.Left}, bottom, s.style)
}

// drawPrompt writes text at the start of the first content row.
func (s *Stack) drawPrompt(p *Popup, text string) {
	text = core.Truncate(text, p.content.Width())
	s.r.WriteText(core.ScreenPos{Row: p.content.Top, Col: p.content.Left}, []rune(text), s.style)
}

// clearRow blanks one content row with style.
func (s *Stack) clearRow(p *Popup, row int, style core.Style) {
	s.r.WriteText(core.ScreenPos{Row: row, Col: p.content.Left},
		repeatRune(' ', p.content.Width()), style)
}

func repeatRune(r rune, n int) []rune {
	if n <= 0 {
		return nil
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return out
}
