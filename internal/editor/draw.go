package editor

import "github.com/dshills/keyline/internal/renderer/core"

// tabStop is the column interval tabs are expanded to.
const tabStop = 8

// glyph returns what r is echoed as. Control characters use caret
// notation. A tab is echoed as blanks, so it has no glyph.
func glyph(r rune) []rune {
	switch {
	case r == '\t':
		return nil
	case r < 0x20 || r == 0x7F:
		return []rune{'^', r ^ 0x40}
	}
	return []rune{r}
}

// cellWidth returns how many cells r takes when echoed at col of a row
// width cells wide. A tab runs to the next tab stop or the row end.
func cellWidth(r rune, col, width int) int {
	if r != '\t' {
		return core.RuneWidth(r)
	}
	if col >= width {
		return tabStop
	}
	return min(tabStop-col%tabStop, width-col)
}

// layout returns the screen position of every buffer offset, including
// the one past the last character. A character that does not fit the
// rest of a row starts the next one.
func (e *Editor) layout(width int) []core.ScreenPos {
	s := &e.state
	pos := make([]core.ScreenPos, s.Len()+1)
	row, col := s.Origin.Row, s.Origin.Col
	for i, r := range s.Buffer {
		w := cellWidth(r, col, width)
		if col+w > width {
			row++
			col = 0
			w = cellWidth(r, col, width)
		}
		pos[i] = core.ScreenPos{Row: row, Col: col}
		col += w
	}
	if col >= width {
		row++
		col = 0
	}
	pos[s.Len()] = core.ScreenPos{Row: row, Col: col}
	return pos
}

// cells returns how many cells lie between the origin and p.
func (e *Editor) cells(p core.ScreenPos, width int) int {
	return (p.Row-e.state.Origin.Row)*width + p.Col - e.state.Origin.Col
}

// scrollFor scrolls the screen up until row fits and returns how far it
// scrolled.
func (e *Editor) scrollFor(row, height int) int {
	if row < height {
		return 0
	}
	n := row - height + 1
	e.r.ScrollUp(n)
	e.state.Origin.Row -= n
	return n
}

// redraw echoes the whole buffer and places the cursor.
func (e *Editor) redraw() {
	if e.r == nil || !e.state.Echo {
		return
	}
	width, height := e.r.Size()
	if width <= 0 || height <= 0 {
		return
	}

	pos := e.layout(width)
	if n := e.scrollFor(pos[len(pos)-1].Row, height); n > 0 {
		for i := range pos {
			pos[i].Row -= n
		}
	}

	visible := e.cells(pos[len(pos)-1], width)
	e.r.FillRegion(e.state.Origin, core.EmptyCell(), max(visible, e.state.Visible))
	style := core.DefaultStyle()
	for i, r := range e.state.Buffer {
		if g := glyph(r); len(g) > 0 {
			e.r.WriteText(pos[i], g, style)
		}
	}
	e.state.Visible = visible

	e.r.SetCursor(pos[e.state.Cursor])
	e.r.Flush()
}

// RestoreCursor puts the screen cursor on the cursor offset.
func (e *Editor) RestoreCursor() {
	if e.r == nil || !e.state.Echo {
		return
	}
	width, height := e.r.Size()
	if width <= 0 {
		return
	}
	pos := e.layout(width)
	p := pos[e.state.Cursor]
	if n := e.scrollFor(pos[len(pos)-1].Row, height); n > 0 {
		p.Row -= n
	}
	e.r.SetCursor(p)
	e.r.Flush()
}

// finishLine moves the cursor to the start of the row after the line.
func (e *Editor) finishLine() {
	if e.r == nil || !e.state.Echo {
		return
	}
	width, height := e.r.Size()
	if width <= 0 {
		return
	}
	pos := e.layout(width)
	row := pos[len(pos)-1].Row + 1
	if pos[len(pos)-1].Col == 0 && e.state.Len() > 0 {
		row--
	}
	row -= e.scrollFor(row, height)
	e.r.SetCursor(core.ScreenPos{Row: row, Col: 0})
	e.r.Flush()
}
