package editor

import "github.com/dshills/keyline/internal/renderer/core"

// DefaultCapacity is the edit buffer size used when none is given.
const DefaultCapacity = 512

// State is the resumable state of one edit.
type State struct {
	// Buffer holds the typed characters.
	Buffer []rune

	// Capacity is the maximum number of characters in Buffer.
	Capacity int

	// Cursor is the insertion offset, 0 <= Cursor <= len(Buffer).
	Cursor int

	// Visible is the number of screen cells the echoed buffer occupies.
	Visible int

	// Echo reports whether the buffer is drawn.
	Echo bool

	// Insert selects insert mode; otherwise typing overwrites.
	Insert bool

	// Origin is the screen position of the first character. Its row goes
	// negative once the start of a long line scrolls off the screen.
	Origin core.ScreenPos
}

// Len returns the number of characters in the buffer.
func (s *State) Len() int {
	return len(s.Buffer)
}

// AtEnd reports whether the cursor is after the last character.
func (s *State) AtEnd() bool {
	return s.Cursor >= len(s.Buffer)
}

// Room returns how many characters still fit.
func (s *State) Room() int {
	return max(s.Capacity-len(s.Buffer), 0)
}
