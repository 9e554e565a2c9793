// Package core provides the screen types shared by the renderer, the
// backends and the line-editing packages that draw through them.
package core

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Attribute represents text attributes.
type Attribute uint8

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is a terminal palette color. The zero value is the terminal
// default.
type Color struct {
	// Index is the palette index (0-255). Ignored when Default is set.
	Index uint8
	// Default indicates the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Palette colors used by popups.
var (
	ColorBlack   = ColorFromIndex(0)
	ColorBlue    = ColorFromIndex(4)
	ColorMagenta = ColorFromIndex(5)
	ColorCyan    = ColorFromIndex(6)
	ColorWhite   = ColorFromIndex(7)
)

// ColorFromIndex creates a palette color.
func ColorFromIndex(index uint8) Color {
	return Color{Index: index}
}

// IsDefault returns true if this is the default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("idx(%d)", c.Index)
}

// Style represents the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
	}
}

// PopupStyle returns the style popups are drawn with.
func PopupStyle() Style {
	return Style{
		Foreground: ColorMagenta,
		Background: ColorWhite,
	}
}

// Invert returns a style with foreground and background swapped. A style
// using default colors gets reverse video instead.
func (s Style) Invert() Style {
	if s.Foreground.IsDefault() || s.Background.IsDefault() {
		s.Attributes ^= AttrReverse
		return s
	}
	return Style{
		Foreground: s.Background,
		Background: s.Foreground,
		Attributes: s.Attributes,
	}
}

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the character to display. Zero marks the trailing half of a
	// wide character.
	Rune rune

	// Width is the display width of this cell.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// IsContinuation returns true if this is the trailing half of a wide rune.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// ContinuationCell returns the trailing cell of a wide character.
func ContinuationCell(style Style) Cell {
	return Cell{Style: style}
}

// RuneWidth returns the number of columns a rune occupies. Control
// characters are echoed in caret notation (^Z) and take two columns.
func RuneWidth(r rune) int {
	if r < 0x20 || r == 0x7F {
		return 2
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// IsFullWidth reports whether r occupies two columns.
func IsFullWidth(r rune) bool {
	return r >= 0x20 && r != 0x7F && runewidth.RuneWidth(r) == 2
}

// RunesWidth returns the total display width of rs.
func RunesWidth(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += RuneWidth(r)
	}
	return w
}

// StringWidth returns the display width of s, measured per grapheme
// cluster.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate returns the longest prefix of s whose display width does not
// exceed width. A wide grapheme that would straddle the limit is dropped.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	used := 0
	end := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width {
			break
		}
		used += w
		end += len(cluster)
	}
	return s[:end]
}

// CellsFromString creates cells from a string, adding a continuation cell
// after every wide rune.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		width := RuneWidth(r)
		cells = append(cells, Cell{Rune: r, Width: width, Style: style})
		if width == 2 {
			cells = append(cells, ContinuationCell(style))
		}
	}
	return cells
}

// StringFromCells converts cells back to a string.
func StringFromCells(cells []Cell) string {
	runes := make([]rune, 0, len(cells))
	for _, c := range cells {
		if !c.IsContinuation() && c.Rune != 0 {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}

// ScreenPos represents a position on screen (0-indexed). Row may be
// negative for content that has scrolled off the top.
type ScreenPos struct {
	Row int
	Col int
}

// Add returns a new position offset by the given delta.
func (p ScreenPos) Add(dRow, dCol int) ScreenPos {
	return ScreenPos{Row: p.Row + dRow, Col: p.Col + dCol}
}

// ScreenRect represents a rectangular region on screen.
type ScreenRect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains returns true if pos is within the rectangle.
func (r ScreenRect) Contains(pos ScreenPos) bool {
	return pos.Row >= r.Top && pos.Row < r.Bottom &&
		pos.Col >= r.Left && pos.Col < r.Right
}

// Intersection returns the overlapping region of two rectangles.
func (r ScreenRect) Intersection(other ScreenRect) ScreenRect {
	out := ScreenRect{
		Top:    max(r.Top, other.Top),
		Left:   max(r.Left, other.Left),
		Bottom: min(r.Bottom, other.Bottom),
		Right:  min(r.Right, other.Right),
	}
	if out.IsEmpty() {
		return ScreenRect{}
	}
	return out
}

// Inset returns a rectangle shrunk by n cells on every side.
func (r ScreenRect) Inset(n int) ScreenRect {
	return ScreenRect{
		Top:    r.Top + n,
		Left:   r.Left + n,
		Bottom: r.Bottom - n,
		Right:  r.Right - n,
	}
}
