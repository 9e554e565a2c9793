package renderer

import (
	"github.com/dshills/keyline/internal/renderer/backend"
	"github.com/dshills/keyline/internal/renderer/core"
)

// Surface implements Renderer on top of a backend.
type Surface struct {
	backend backend.Backend
	cursor  core.ScreenPos
}

// NewSurface creates a surface drawing to b. The backend must already be
// initialized.
func NewSurface(b backend.Backend) *Surface {
	return &Surface{backend: b}
}

// Backend returns the underlying backend.
func (s *Surface) Backend() backend.Backend {
	return s.backend
}

// Size returns the screen dimensions.
func (s *Surface) Size() (int, int) {
	return s.backend.Size()
}

// WriteText writes text on the row of pos, clipped at the right edge.
// A wide rune that would straddle the edge is not written.
func (s *Surface) WriteText(pos core.ScreenPos, text []rune, style core.Style) int {
	width, height := s.backend.Size()
	if pos.Row < 0 || pos.Row >= height || pos.Col >= width {
		return 0
	}

	col := max(pos.Col, 0)
	for _, r := range text {
		w := core.RuneWidth(r)
		if col+w > width {
			break
		}
		s.backend.SetCell(col, pos.Row, core.NewStyledCell(r, style))
		if w == 2 {
			s.backend.SetCell(col+1, pos.Row, core.ContinuationCell(style))
		}
		col += w
	}
	return col - max(pos.Col, 0)
}

// FillRegion writes count copies of cell from pos onwards, continuing at
// column 0 of the next row when a row is full.
func (s *Surface) FillRegion(pos core.ScreenPos, cell core.Cell, count int) {
	width, height := s.backend.Size()
	if width <= 0 {
		return
	}
	row, col := pos.Row, max(pos.Col, 0)
	for ; count > 0 && row < height; count-- {
		if col >= width {
			row++
			col = 0
		}
		if row >= 0 && row < height {
			s.backend.SetCell(col, row, cell)
		}
		col++
	}
}

// ReadRegion copies the cells of rect. Rows or columns outside the screen
// read as empty cells.
func (s *Surface) ReadRegion(rect core.ScreenRect) [][]core.Cell {
	rows := make([][]core.Cell, 0, rect.Height())
	for y := rect.Top; y < rect.Bottom; y++ {
		row := make([]core.Cell, 0, rect.Width())
		for x := rect.Left; x < rect.Right; x++ {
			row = append(row, s.backend.GetCell(x, y))
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteRegion restores cells into rect.
func (s *Surface) WriteRegion(rect core.ScreenRect, cells [][]core.Cell) {
	for i, row := range cells {
		y := rect.Top + i
		if y >= rect.Bottom {
			break
		}
		for j, c := range row {
			x := rect.Left + j
			if x >= rect.Right {
				break
			}
			s.backend.SetCell(x, y, c)
		}
	}
}

// ScrollUp shifts every row up by n.
func (s *Surface) ScrollUp(n int) {
	width, height := s.backend.Size()
	if n <= 0 {
		return
	}
	n = min(n, height)
	for y := 0; y+n < height; y++ {
		for x := 0; x < width; x++ {
			s.backend.SetCell(x, y, s.backend.GetCell(x, y+n))
		}
	}
	s.backend.Fill(core.ScreenRect{Top: height - n, Left: 0, Bottom: height, Right: width}, core.EmptyCell())
	s.cursor.Row -= n
}

// SetCursor moves the cursor. Positions off screen hide it.
func (s *Surface) SetCursor(pos core.ScreenPos) {
	s.cursor = pos
	width, height := s.backend.Size()
	if pos.Row < 0 || pos.Row >= height || pos.Col < 0 || pos.Col >= width {
		s.backend.HideCursor()
		return
	}
	s.backend.ShowCursor(pos.Col, pos.Row)
}

// Cursor returns the current cursor position.
func (s *Surface) Cursor() core.ScreenPos {
	return s.cursor
}

// SetCursorStyle changes the cursor shape.
func (s *Surface) SetCursorStyle(style backend.CursorStyle) {
	s.backend.SetCursorStyle(style)
}

// Beep rings the bell.
func (s *Surface) Beep() {
	s.backend.Beep()
}

// Flush shows pending changes.
func (s *Surface) Flush() {
	s.backend.Show()
}

// Ensure Surface implements Renderer.
var _ Renderer = (*Surface)(nil)
