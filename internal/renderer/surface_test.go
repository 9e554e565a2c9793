package renderer

import (
	"testing"

	"github.com/dshills/keyline/internal/renderer/backend"
	"github.com/dshills/keyline/internal/renderer/core"
)

func newTestSurface(w, h int) (*Surface, *backend.NullBackend) {
	b := backend.NewNullBackend(w, h)
	return NewSurface(b), b
}

func TestSurfaceWriteText(t *testing.T) {
	tests := []struct {
		name string
		pos  core.ScreenPos
		text string
		want string
		cols int
	}{
		{"plain", core.ScreenPos{Row: 0, Col: 2}, "dir", "  dir", 3},
		{"clipped", core.ScreenPos{Row: 0, Col: 6}, "abcdef", "      abcd", 4},
		{"wide", core.ScreenPos{Row: 0, Col: 0}, "日本", "日本", 4},
		{"wide at edge", core.ScreenPos{Row: 0, Col: 9}, "日", "", 0},
		{"off screen", core.ScreenPos{Row: 5, Col: 0}, "x", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, b := newTestSurface(10, 2)
			got := s.WriteText(tt.pos, []rune(tt.text), core.DefaultStyle())
			if got != tt.cols {
				t.Errorf("WriteText = %d, want %d", got, tt.cols)
			}
			if row := b.Row(0); row != tt.want {
				t.Errorf("row 0 = %q, want %q", row, tt.want)
			}
		})
	}
}

func TestSurfaceFillRegionWraps(t *testing.T) {
	s, b := newTestSurface(4, 3)
	s.FillRegion(core.ScreenPos{Row: 0, Col: 2}, core.NewStyledCell('#', core.DefaultStyle()), 5)

	want := []string{"  ##", "###", ""}
	for y, w := range want {
		if got := b.Row(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestSurfaceReadWriteRegion(t *testing.T) {
	s, b := newTestSurface(6, 3)
	s.WriteText(core.ScreenPos{Row: 1, Col: 0}, []rune("keyline"), core.DefaultStyle())

	rect := core.ScreenRect{Top: 1, Left: 1, Bottom: 2, Right: 4}
	saved := s.ReadRegion(rect)
	s.FillRegion(core.ScreenPos{Row: 1, Col: 0}, core.EmptyCell(), 6)
	s.WriteRegion(rect, saved)

	if got := b.Row(1); got != " eyl" {
		t.Errorf("row 1 = %q, want %q", got, " eyl")
	}
}

func TestSurfaceScrollUp(t *testing.T) {
	s, b := newTestSurface(5, 3)
	s.WriteText(core.ScreenPos{Row: 0, Col: 0}, []rune("one"), core.DefaultStyle())
	s.WriteText(core.ScreenPos{Row: 1, Col: 0}, []rune("two"), core.DefaultStyle())
	s.WriteText(core.ScreenPos{Row: 2, Col: 0}, []rune("three"), core.DefaultStyle())
	s.SetCursor(core.ScreenPos{Row: 2, Col: 1})

	s.ScrollUp(1)

	want := []string{"two", "three", ""}
	for y, w := range want {
		if got := b.Row(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
	if got := s.Cursor(); got != (core.ScreenPos{Row: 1, Col: 1}) {
		t.Errorf("Cursor = %+v, want row 1 col 1", got)
	}
}

func TestSurfaceCursorOffScreen(t *testing.T) {
	s, b := newTestSurface(5, 3)
	s.SetCursor(core.ScreenPos{Row: 1, Col: 2})
	if x, y, visible := b.CursorPosition(); x != 2 || y != 1 || !visible {
		t.Errorf("CursorPosition = (%d, %d, %v), want (2, 1, true)", x, y, visible)
	}

	s.SetCursor(core.ScreenPos{Row: -1, Col: 0})
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor above the screen should be hidden")
	}
}
