package editor

import "testing"

func TestDelimitersIs(t *testing.T) {
	d := Delimiters(".;")
	for _, r := range " .;" {
		if !d.Is(r) {
			t.Errorf("Is(%q) = false, want true", r)
		}
	}
	if d.Is('a') {
		t.Error("Is('a') = true, want false")
	}
	if !Delimiters("").Is(' ') {
		t.Error("space must always delimit words")
	}
}

func TestPrevWord(t *testing.T) {
	tests := []struct {
		text   string
		cursor int
		delims Delimiters
		want   int
	}{
		{"abc def", 7, "", 4},
		{"abc def", 4, "", 0},
		{"abc def", 0, "", 0},
		{"foo.bar", 7, ".", 4},
		{"foo.bar", 7, "", 0},
		{"abc   ", 6, "", 0},
	}

	for _, tt := range tests {
		if got := prevWord([]rune(tt.text), tt.cursor, tt.delims); got != tt.want {
			t.Errorf("prevWord(%q, %d, %q) = %d, want %d", tt.text, tt.cursor, tt.delims, got, tt.want)
		}
	}
}

func TestPrevWordExtended(t *testing.T) {
	tests := []struct {
		text   string
		cursor int
		delims Delimiters
		want   int
	}{
		{"abc def", 7, "", 4},
		{"abc   ", 6, "", 0},
		{"a.b c", 5, ".", 4},
		{"x ..", 4, ".", 2},
		{"abc", 0, "", 0},
	}

	for _, tt := range tests {
		if got := prevWordExtended([]rune(tt.text), tt.cursor, tt.delims); got != tt.want {
			t.Errorf("prevWordExtended(%q, %d, %q) = %d, want %d", tt.text, tt.cursor, tt.delims, got, tt.want)
		}
	}
}

func TestNextWord(t *testing.T) {
	tests := []struct {
		text   string
		cursor int
		delims Delimiters
		want   int
	}{
		{"abc def", 0, "", 4},
		{"abc   def", 0, "", 6},
		{"abc def", 4, "", 6},
		{"abc def", 7, "", 7},
		{"foo.bar", 0, ".", 4},
	}

	for _, tt := range tests {
		if got := nextWord([]rune(tt.text), tt.cursor, tt.delims); got != tt.want {
			t.Errorf("nextWord(%q, %d, %q) = %d, want %d", tt.text, tt.cursor, tt.delims, got, tt.want)
		}
	}
}

func TestNextWordExtended(t *testing.T) {
	tests := []struct {
		text   string
		cursor int
		delims Delimiters
		want   int
	}{
		{"abc def", 0, "", 4},
		{"abc def", 4, "", 7},
		{"   abc", 0, "", 3},
		{"a.b c", 0, ".", 1},
		{"a..  b", 1, ".", 5},
	}

	for _, tt := range tests {
		if got := nextWordExtended([]rune(tt.text), tt.cursor, tt.delims); got != tt.want {
			t.Errorf("nextWordExtended(%q, %d, %q) = %d, want %d", tt.text, tt.cursor, tt.delims, got, tt.want)
		}
	}
}
