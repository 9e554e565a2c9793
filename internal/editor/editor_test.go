package editor

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/keyline/internal/alias"
	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/renderer"
	"github.com/dshills/keyline/internal/renderer/backend"
	"github.com/dshills/keyline/internal/renderer/core"
)

type fixture struct {
	ed      *Editor
	backend *backend.NullBackend
	hist    *history.History
	aliases *alias.Registry
}

func newFixture(t *testing.T, width, height int, opts Options, commands ...string) *fixture {
	t.Helper()
	b := backend.NewNullBackend(width, height)
	store := history.NewStore(history.WithCapacity(20))
	h, err := store.Allocate("sh", 1)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	for _, c := range commands {
		if err := h.Record(c, false); err != nil {
			t.Fatalf("Record(%q): %v", c, err)
		}
	}
	reg := alias.NewRegistry()

	opts.Renderer = renderer.NewSurface(b)
	opts.History = h
	opts.Aliases = reg
	opts.Owner = "sh"
	return &fixture{ed: New(opts), backend: b, hist: h, aliases: reg}
}

func echoOpts() Options {
	return Options{Echo: true, Insert: true}
}

func (f *fixture) typeText(s string) Outcome {
	out := Continue
	for _, r := range s {
		out = f.ed.HandleKey(key.NewRuneEvent(r, key.ModNone))
	}
	return out
}

func (f *fixture) press(k key.Key, mods key.Modifier) Outcome {
	return f.ed.HandleKey(key.NewSpecialEvent(k, mods))
}

func (f *fixture) line() string {
	return string(f.ed.Text())
}

func TestInsertAndOverwrite(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts())

	f.typeText("hello")
	f.press(key.KeyLeft, key.ModNone)
	f.press(key.KeyLeft, key.ModNone)
	f.typeText("X")
	if f.line() != "helXlo" {
		t.Fatalf("insert: line = %q, want %q", f.line(), "helXlo")
	}
	if got := f.backend.CursorStyleValue(); got != backend.CursorUnderline {
		t.Errorf("insert cursor style = %v, want underline", got)
	}

	f.press(key.KeyInsert, key.ModNone)
	f.typeText("Y")
	if f.line() != "helXYo" {
		t.Errorf("overwrite: line = %q, want %q", f.line(), "helXYo")
	}
	if f.ed.Cursor() != 5 {
		t.Errorf("Cursor = %d, want 5", f.ed.Cursor())
	}
	if got := f.backend.CursorStyleValue(); got != backend.CursorBlock {
		t.Errorf("overwrite cursor style = %v, want block", got)
	}
	if got := f.backend.Row(0); got != "helXYo" {
		t.Errorf("screen = %q, want %q", got, "helXYo")
	}
	if x, y, _ := f.backend.CursorPosition(); x != 5 || y != 0 {
		t.Errorf("screen cursor = (%d,%d), want (5,0)", x, y)
	}

	f.typeText("Z!")
	if f.line() != "helXYZ!" {
		t.Errorf("overwrite at end: line = %q, want %q", f.line(), "helXYZ!")
	}
}

func TestCursorBounds(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts())
	f.typeText("ab")

	f.press(key.KeyRight, key.ModNone)
	if f.ed.Cursor() != 2 {
		t.Errorf("Right at end moved cursor to %d", f.ed.Cursor())
	}
	f.press(key.KeyHome, key.ModNone)
	f.press(key.KeyLeft, key.ModNone)
	if f.ed.Cursor() != 0 {
		t.Errorf("Left at start moved cursor to %d", f.ed.Cursor())
	}
	f.press(key.KeyBackspace, key.ModNone)
	if f.line() != "ab" {
		t.Errorf("Backspace at start changed line to %q", f.line())
	}
	f.press(key.KeyEnd, key.ModNone)
	if f.ed.Cursor() != 2 {
		t.Errorf("End: cursor = %d, want 2", f.ed.Cursor())
	}
}

func TestCapacityTruncates(t *testing.T) {
	opts := echoOpts()
	opts.Capacity = 3
	f := newFixture(t, 40, 5, opts)

	if got := f.typeText("abcd"); got != Truncated {
		t.Errorf("outcome = %v, want %v", got, Truncated)
	}
	if f.line() != "abc" {
		t.Errorf("line = %q, want %q", f.line(), "abc")
	}
	if f.backend.Beeps() != 1 {
		t.Errorf("beeps = %d, want 1", f.backend.Beeps())
	}
}

func TestRecallTruncates(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		key   key.Key
		want  string
	}{
		{"previous", "", key.KeyUp, "abcd"},
		{"oldest", "", key.KeyPageUp, "abcd"},
		{"newest", "", key.KeyPageDown, "abcd"},
		{"search", "ab", key.KeyF8, "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := echoOpts()
			opts.Capacity = 4
			f := newFixture(t, 40, 5, opts, "abcdefgh")
			f.typeText(tt.typed)

			if got := f.press(tt.key, key.ModNone); got != Truncated {
				t.Errorf("outcome = %v, want %v", got, Truncated)
			}
			if f.line() != tt.want {
				t.Errorf("line = %q, want %q", f.line(), tt.want)
			}
			if f.backend.Beeps() != 1 {
				t.Errorf("beeps = %d, want 1", f.backend.Beeps())
			}
		})
	}

	opts := echoOpts()
	opts.Capacity = 4
	f := newFixture(t, 40, 5, opts, "abc")
	if got := f.press(key.KeyUp, key.ModNone); got != Continue || f.line() != "abc" {
		t.Errorf("short recall = %v %q, want %v %q", got, f.line(), Continue, "abc")
	}
}

func TestBrowseTruncatedLineIsNotSubmitted(t *testing.T) {
	opts := echoOpts()
	opts.Capacity = 4
	f := newFixture(t, 60, 15, opts, "abcdefgh")

	f.press(key.KeyF7, key.ModNone)
	if got := f.press(key.KeyEnter, key.ModNone); got != Truncated {
		t.Fatalf("outcome = %v, want %v", got, Truncated)
	}
	if f.ed.PopupActive() {
		t.Error("popup still active after Enter")
	}
	if f.line() != "abcd" {
		t.Errorf("line = %q, want %q", f.line(), "abcd")
	}
	if f.hist.Count() != 1 {
		t.Errorf("history count = %d, want 1", f.hist.Count())
	}

	if got := f.press(key.KeyEnter, key.ModNone); got != Complete {
		t.Errorf("second Enter = %v, want %v", got, Complete)
	}
}

func TestRecallBoundaries(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts(), "one", "two", "three")

	steps := []struct {
		k    key.Key
		want string
	}{
		{key.KeyUp, "three"},
		{key.KeyUp, "two"},
		{key.KeyF5, "one"},
		{key.KeyUp, "one"},
		{key.KeyDown, "two"},
		{key.KeyDown, "three"},
		{key.KeyDown, "three"},
		{key.KeyPageUp, "one"},
		{key.KeyPageDown, "three"},
	}

	for i, s := range steps {
		f.press(s.k, key.ModNone)
		if f.line() != s.want {
			t.Errorf("step %d (%s): line = %q, want %q", i, s.k, f.line(), s.want)
		}
		if f.ed.Cursor() != len(s.want) {
			t.Errorf("step %d: cursor = %d, want %d", i, f.ed.Cursor(), len(s.want))
		}
	}
}

func TestRecallWithoutHistory(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts())
	f.typeText("abc")
	f.press(key.KeyUp, key.ModNone)
	f.press(key.KeyF8, key.ModNone)
	if f.line() != "abc" {
		t.Errorf("line = %q, want %q", f.line(), "abc")
	}
}

func TestSearchCyclesKeepingCursor(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts(), "git status", "ls", "git log")
	f.typeText("git")

	for i, want := range []string{"git log", "git status", "git log"} {
		f.press(key.KeyF8, key.ModNone)
		if f.line() != want {
			t.Errorf("F8 #%d: line = %q, want %q", i+1, f.line(), want)
		}
		if f.ed.Cursor() != 3 {
			t.Errorf("F8 #%d: cursor = %d, want 3", i+1, f.ed.Cursor())
		}
	}
}

func TestCopyFromPreviousCommand(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts(), "dir /w")

	f.press(key.KeyRight, key.ModNone)
	f.press(key.KeyF1, key.ModNone)
	if f.line() != "di" {
		t.Fatalf("Right/F1: line = %q, want %q", f.line(), "di")
	}

	f.press(key.KeyF3, key.ModNone)
	if f.line() != "dir /w" || f.ed.Cursor() != 6 {
		t.Errorf("F3: line = %q cursor %d, want %q cursor 6", f.line(), f.ed.Cursor(), "dir /w")
	}

	f.press(key.KeyRight, key.ModNone)
	if f.line() != "dir /w" {
		t.Errorf("Right past the previous command changed line to %q", f.line())
	}
}

func TestCopyRestOverwrites(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts(), "hello world")
	f.typeText("HE")
	f.press(key.KeyF3, key.ModNone)
	if f.line() != "HEllo world" {
		t.Errorf("line = %q, want %q", f.line(), "HEllo world")
	}
}

func TestCopyRestTruncates(t *testing.T) {
	opts := echoOpts()
	opts.Capacity = 5
	f := newFixture(t, 40, 5, opts, "hello world")

	if got := f.press(key.KeyF3, key.ModNone); got != Truncated {
		t.Errorf("outcome = %v, want %v", got, Truncated)
	}
	if f.line() != "hello" {
		t.Errorf("line = %q, want %q", f.line(), "hello")
	}
}

func TestDeletions(t *testing.T) {
	tests := []struct {
		name   string
		cursor int
		k      key.Key
		mods   key.Modifier
		want   string
		cursAt int
	}{
		{"delete", 0, key.KeyDelete, key.ModNone, "oo bar", 0},
		{"delete word class", 0, key.KeyDelete, key.ModCtrl, " bar", 0},
		{"delete delimiter run", 3, key.KeyDelete, key.ModCtrl, "foobar", 3},
		{"delete to end", 4, key.KeyEnd, key.ModCtrl, "foo ", 4},
		{"delete to start", 4, key.KeyHome, key.ModCtrl, "bar", 0},
		{"escape", 2, key.KeyEscape, key.ModNone, "", 0},
		{"backspace", 4, key.KeyBackspace, key.ModNone, "foobar", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 40, 5, echoOpts())
			f.typeText("foo bar")
			f.press(key.KeyHome, key.ModNone)
			for i := 0; i < tt.cursor; i++ {
				f.press(key.KeyRight, key.ModNone)
			}

			f.press(tt.k, tt.mods)
			if f.line() != tt.want {
				t.Errorf("line = %q, want %q", f.line(), tt.want)
			}
			if f.ed.Cursor() != tt.cursAt {
				t.Errorf("cursor = %d, want %d", f.ed.Cursor(), tt.cursAt)
			}
			if got, want := f.backend.Row(0), strings.TrimRight(tt.want, " "); got != want {
				t.Errorf("screen = %q, want %q", got, want)
			}
		})
	}
}

func TestWordMotion(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts())
	f.typeText("abc def")

	f.press(key.KeyLeft, key.ModCtrl)
	if f.ed.Cursor() != 4 {
		t.Errorf("Ctrl+Left: cursor = %d, want 4", f.ed.Cursor())
	}
	f.press(key.KeyLeft, key.ModCtrl)
	if f.ed.Cursor() != 0 {
		t.Errorf("Ctrl+Left: cursor = %d, want 0", f.ed.Cursor())
	}
	f.press(key.KeyRight, key.ModCtrl)
	f.press(key.KeyRight, key.ModCtrl)
	if f.ed.Cursor() != 6 {
		t.Errorf("Ctrl+Right twice: cursor = %d, want 6", f.ed.Cursor())
	}
}

func TestExtendedKeys(t *testing.T) {
	opts := echoOpts()
	opts.ExtendedKeys = true
	f := newFixture(t, 40, 5, opts)
	f.typeText("foo bar")

	f.ed.HandleKey(key.NewRuneEvent('w', key.ModCtrl))
	if f.line() != "foo " {
		t.Errorf("Ctrl+W: line = %q, want %q", f.line(), "foo ")
	}
	f.ed.HandleKey(key.NewRuneEvent('a', key.ModCtrl))
	if f.ed.Cursor() != 0 {
		t.Errorf("Ctrl+A: cursor = %d, want 0", f.ed.Cursor())
	}
	f.ed.HandleKey(key.NewRuneEvent('k', key.ModCtrl))
	if f.line() != "" {
		t.Errorf("Ctrl+K: line = %q, want empty", f.line())
	}
}

func TestControlCharacters(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts())
	f.typeText("ab")
	f.ed.HandleKey(key.NewRuneEvent('a', key.ModCtrl))
	f.press(key.KeyF6, key.ModNone)

	if f.line() != "ab\x01\x1a" {
		t.Errorf("line = %q, want %q", f.line(), "ab\x01\x1a")
	}
	if got := f.backend.Row(0); got != "ab^A^Z" {
		t.Errorf("screen = %q, want %q", got, "ab^A^Z")
	}
	if x, _, _ := f.backend.CursorPosition(); x != 6 {
		t.Errorf("screen cursor column = %d, want 6", x)
	}
}

func TestTabExpandsToTabStop(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		origin int
		text   string
		rows   []string
		x, y   int
	}{
		{"after prompt", 40, 5, "ab\tc", []string{"     ab c"}, 9, 0},
		{"from column zero", 40, 0, "ab\tc", []string{"ab      c"}, 9, 0},
		{"at row end", 10, 0, "abcdefghi\tx", []string{"abcdefghi", "x"}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := echoOpts()
			opts.Origin = core.ScreenPos{Col: tt.origin}
			f := newFixture(t, tt.width, 5, opts)
			f.typeText(tt.text)

			if f.line() != tt.text {
				t.Errorf("line = %q, want %q", f.line(), tt.text)
			}
			for i, want := range tt.rows {
				if got := f.backend.Row(i); got != want {
					t.Errorf("row %d = %q, want %q", i, got, want)
				}
			}
			if x, y, _ := f.backend.CursorPosition(); x != tt.x || y != tt.y {
				t.Errorf("screen cursor = (%d,%d), want (%d,%d)", x, y, tt.x, tt.y)
			}
		})
	}
}

func TestRawControlRunes(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts())
	f.typeText("abc\b")
	if f.line() != "ab" {
		t.Errorf("line = %q, want %q", f.line(), "ab")
	}
	if got := f.typeText("\r"); got != Complete {
		t.Errorf("outcome = %v, want %v", got, Complete)
	}
}

func TestWrapAndScroll(t *testing.T) {
	opts := echoOpts()
	opts.Origin = core.ScreenPos{Row: 2, Col: 5}
	f := newFixture(t, 10, 3, opts)

	f.typeText("abcdefgh")

	if got := f.ed.State().Origin; got != (core.ScreenPos{Row: 1, Col: 5}) {
		t.Errorf("origin = %+v, want row 1 col 5", got)
	}
	if got := f.backend.Row(1); got != "     abcde" {
		t.Errorf("row 1 = %q", got)
	}
	if got := f.backend.Row(2); got != "fgh" {
		t.Errorf("row 2 = %q", got)
	}
	if x, y, _ := f.backend.CursorPosition(); x != 3 || y != 2 {
		t.Errorf("screen cursor = (%d,%d), want (3,2)", x, y)
	}
	if got := f.ed.State().Visible; got != 8 {
		t.Errorf("Visible = %d, want 8", got)
	}

	f.press(key.KeyEscape, key.ModNone)
	if f.backend.Row(1) != "" || f.backend.Row(2) != "" {
		t.Errorf("Escape left %q / %q on screen", f.backend.Row(1), f.backend.Row(2))
	}
}

func TestCompleteRecordsHistory(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts(), "first")
	f.typeText("make test")

	if got := f.press(key.KeyEnter, key.ModNone); got != Complete {
		t.Fatalf("outcome = %v, want %v", got, Complete)
	}
	c := f.ed.Completion()
	if c.Typed != "make test" || c.Expanded || !reflect.DeepEqual(c.Commands, []string{"make test"}) {
		t.Errorf("Completion = %+v", c)
	}
	if !reflect.DeepEqual(f.hist.Commands(), []string{"first", "make test"}) {
		t.Errorf("history = %q", f.hist.Commands())
	}
	if _, y, _ := f.backend.CursorPosition(); y != 1 {
		t.Errorf("cursor row after Enter = %d, want 1", y)
	}
	if !f.ed.Done() {
		t.Error("Done() = false after completion")
	}
}

func TestCompleteEmptyLine(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts(), "first")
	if got := f.press(key.KeyEnter, key.ModNone); got != Complete {
		t.Fatalf("outcome = %v, want %v", got, Complete)
	}
	if f.hist.Count() != 1 {
		t.Errorf("history count = %d, want 1", f.hist.Count())
	}
}

func TestCompleteExpandsAlias(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts())
	if err := f.aliases.Define("sh", "s", "go $1 $*"); err != nil {
		t.Fatal(err)
	}
	if err := f.aliases.Define("sh", "cl", "cls$Techo hi"); err != nil {
		t.Fatal(err)
	}

	f.typeText("s build now")
	f.press(key.KeyEnter, key.ModNone)
	c := f.ed.Completion()
	if !c.Expanded || !reflect.DeepEqual(c.Commands, []string{"go build build now"}) {
		t.Errorf("Completion = %+v", c)
	}
	if !reflect.DeepEqual(f.hist.Commands(), []string{"s build now"}) {
		t.Errorf("history = %q, want the typed line", f.hist.Commands())
	}

	g := newFixture(t, 40, 5, echoOpts())
	if err := g.aliases.Define("sh", "cl", "cls$Techo hi"); err != nil {
		t.Fatal(err)
	}
	g.typeText("CL")
	g.press(key.KeyEnter, key.ModNone)
	if got := g.ed.Completion().Commands; !reflect.DeepEqual(got, []string{"cls", "echo hi"}) {
		t.Errorf("Commands = %q", got)
	}
}

func TestCompleteRejectsOverflow(t *testing.T) {
	opts := echoOpts()
	opts.Capacity = 12
	f := newFixture(t, 40, 5, opts, "first")
	if err := f.aliases.Define("sh", "s", "go $1 $*"); err != nil {
		t.Fatal(err)
	}

	f.typeText("s build now")
	if got := f.press(key.KeyEnter, key.ModNone); got != Rejected {
		t.Fatalf("outcome = %v, want %v", got, Rejected)
	}
	if !errors.Is(f.ed.Err(), alias.ErrBufferTooSmall) {
		t.Errorf("Err() = %v, want %v", f.ed.Err(), alias.ErrBufferTooSmall)
	}
	if f.line() != "s build now" {
		t.Errorf("line = %q, want it kept", f.line())
	}
	if f.hist.Count() != 1 {
		t.Errorf("history count = %d, want 1", f.hist.Count())
	}
	if f.ed.Done() {
		t.Error("a rejected line must stay editable")
	}
}

func TestEchoOff(t *testing.T) {
	f := newFixture(t, 40, 5, Options{Insert: true}, "first")
	if err := f.aliases.Define("sh", "s", "go $1"); err != nil {
		t.Fatal(err)
	}

	f.typeText("s x")
	f.press(key.KeyEnter, key.ModNone)
	c := f.ed.Completion()
	if c.Expanded || !reflect.DeepEqual(c.Commands, []string{"s x"}) {
		t.Errorf("Completion = %+v", c)
	}
	if f.hist.Count() != 1 {
		t.Errorf("history count = %d, want 1", f.hist.Count())
	}
	if got := f.backend.Row(0); got != "" {
		t.Errorf("screen = %q, want nothing echoed", got)
	}
}

func TestClearHistoryAndAliases(t *testing.T) {
	f := newFixture(t, 40, 5, echoOpts(), "one")
	if err := f.aliases.Define(f.aliases.ShellOwner(), "ll", "ls -l"); err != nil {
		t.Fatal(err)
	}

	f.press(key.KeyF7, key.ModAlt)
	if f.hist.Count() != 0 {
		t.Errorf("history count = %d after Alt+F7", f.hist.Count())
	}
	f.press(key.KeyF10, key.ModAlt)
	if n := f.aliases.Len(f.aliases.ShellOwner()); n != 0 {
		t.Errorf("shell aliases = %d after Alt+F10", n)
	}
}

func TestBrowsePopupSubmits(t *testing.T) {
	f := newFixture(t, 60, 15, echoOpts(), "alpha", "beta", "gamma")

	f.press(key.KeyF7, key.ModNone)
	if !f.ed.PopupActive() {
		t.Fatal("F7 did not open the browse list")
	}
	f.press(key.KeyUp, key.ModNone)
	if got := f.press(key.KeyEnter, key.ModNone); got != Complete {
		t.Fatalf("outcome = %v, want %v", got, Complete)
	}
	if got := f.ed.Completion().Typed; got != "beta" {
		t.Errorf("Typed = %q, want %q", got, "beta")
	}
	if f.ed.PopupActive() {
		t.Error("popup still active after Enter")
	}
}

func TestCopyPopups(t *testing.T) {
	f := newFixture(t, 60, 15, echoOpts(), "copy a.txt b.txt")

	f.press(key.KeyF2, key.ModNone)
	if !f.ed.PopupActive() {
		t.Fatal("F2 did not open a popup")
	}
	f.typeText(".")
	if f.line() != "copy a" {
		t.Errorf("F2: line = %q, want %q", f.line(), "copy a")
	}

	f.press(key.KeyHome, key.ModNone)
	f.press(key.KeyF4, key.ModNone)
	f.typeText(" ")
	if f.line() != " a" {
		t.Errorf("F4: line = %q, want %q", f.line(), " a")
	}

	f.press(key.KeyF4, key.ModNone)
	f.typeText("z")
	if f.line() != " a" {
		t.Errorf("F4 with a missing char changed line to %q", f.line())
	}
}

func TestGotoNumberNeedsWidth(t *testing.T) {
	f := newFixture(t, 6, 5, echoOpts(), "one")
	f.press(key.KeyF9, key.ModNone)
	if f.ed.PopupActive() {
		t.Error("goto popup opened on a screen narrower than 7 columns")
	}

	g := newFixture(t, 60, 15, echoOpts(), "one", "two")
	g.press(key.KeyF9, key.ModNone)
	g.typeText("0")
	g.press(key.KeyEnter, key.ModNone)
	if g.line() != "one" {
		t.Errorf("line = %q, want %q", g.line(), "one")
	}
}

func TestAbort(t *testing.T) {
	f := newFixture(t, 60, 15, echoOpts(), "one")
	f.typeText("abc")
	f.press(key.KeyF7, key.ModNone)
	f.ed.Abort()

	if f.ed.PopupActive() {
		t.Error("Abort left a popup open")
	}
	if f.hist.Count() != 1 {
		t.Errorf("history count = %d, want 1", f.hist.Count())
	}
	if got := f.press(key.KeyEnter, key.ModNone); got != Complete {
		t.Errorf("outcome after Abort = %v, want %v", got, Complete)
	}
}
