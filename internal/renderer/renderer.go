package renderer

import (
	"github.com/dshills/keyline/internal/renderer/backend"
	"github.com/dshills/keyline/internal/renderer/core"
)

// Renderer is the screen contract consumed by the editor and popups.
// Coordinates outside the screen are clipped, never rejected.
type Renderer interface {
	// Size returns the screen dimensions in columns and rows.
	Size() (width, height int)

	// WriteText writes runes on one row starting at pos and returns the
	// number of columns used. Text past the right edge is dropped.
	WriteText(pos core.ScreenPos, text []rune, style core.Style) int

	// FillRegion writes count copies of cell starting at pos, wrapping
	// onto the following rows.
	FillRegion(pos core.ScreenPos, cell core.Cell, count int)

	// ReadRegion returns the cells inside rect, one slice per row.
	ReadRegion(rect core.ScreenRect) [][]core.Cell

	// WriteRegion writes cells previously returned by ReadRegion back
	// into rect.
	WriteRegion(rect core.ScreenRect, cells [][]core.Cell)

	// ScrollUp moves the screen contents up by n rows and blanks the
	// rows uncovered at the bottom.
	ScrollUp(n int)

	// SetCursor moves the cursor.
	SetCursor(pos core.ScreenPos)

	// Cursor returns the last position passed to SetCursor.
	Cursor() core.ScreenPos

	// SetCursorStyle changes the cursor shape.
	SetCursorStyle(style backend.CursorStyle)

	// Beep rings the bell.
	Beep()

	// Flush makes pending writes visible.
	Flush()
}
