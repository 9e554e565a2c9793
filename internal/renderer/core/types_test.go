package core

import (
	"testing"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{' ', 1},
		{'世', 2},
		{'Ａ', 2},
		{0x1a, 2},
		{'\t', 2},
	}

	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestIsFullWidth(t *testing.T) {
	if IsFullWidth('a') {
		t.Error("IsFullWidth('a') = true, want false")
	}
	if !IsFullWidth('日') {
		t.Error("IsFullWidth('日') = false, want true")
	}
	if IsFullWidth(0x1a) {
		t.Error("control characters are not full width")
	}
}

func TestRunesWidth(t *testing.T) {
	if got := RunesWidth([]rune("ab日本")); got != 6 {
		t.Errorf("RunesWidth = %d, want 6", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"日本語", 4, "日本"},
		{"日本語", 5, "日本"},
		{"a日b", 2, "a"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestCellsFromString(t *testing.T) {
	cells := CellsFromString("a日", DefaultStyle())
	if len(cells) != 3 {
		t.Fatalf("len(cells) = %d, want 3", len(cells))
	}
	if !cells[2].IsContinuation() {
		t.Error("expected continuation cell after wide rune")
	}
	if got := StringFromCells(cells); got != "a日" {
		t.Errorf("StringFromCells = %q, want %q", got, "a日")
	}
}

func TestStyleInvert(t *testing.T) {
	s := PopupStyle()
	inv := s.Invert()
	if inv.Foreground != s.Background || inv.Background != s.Foreground {
		t.Errorf("Invert() = %+v, want swapped colors of %+v", inv, s)
	}

	d := DefaultStyle().Invert()
	if !d.Attributes.Has(AttrReverse) {
		t.Error("inverting the default style should set reverse video")
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(2, 3, 4, 5)
	if r.Width() != 5 || r.Height() != 4 {
		t.Errorf("size = %dx%d, want 5x4", r.Width(), r.Height())
	}
	if !r.Contains(ScreenPos{Row: 2, Col: 3}) {
		t.Error("expected top-left corner to be contained")
	}
	if r.Contains(ScreenPos{Row: 6, Col: 3}) {
		t.Error("bottom edge is exclusive")
	}

	inner := r.Inset(1)
	if inner != (ScreenRect{Top: 3, Left: 4, Bottom: 5, Right: 7}) {
		t.Errorf("Inset(1) = %+v", inner)
	}

	got := r.Intersection(ScreenRect{Top: 0, Left: 0, Bottom: 3, Right: 4})
	if got != (ScreenRect{Top: 2, Left: 3, Bottom: 3, Right: 4}) {
		t.Errorf("Intersection = %+v", got)
	}
	if !r.Intersection(ScreenRect{Top: 20, Left: 20, Bottom: 21, Right: 21}).IsEmpty() {
		t.Error("disjoint intersection should be empty")
	}
}
