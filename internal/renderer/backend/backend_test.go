package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/renderer/core"
)

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)

	cell := core.NewStyledCell('X', core.PopupStyle())
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); got != cell {
		t.Errorf("GetCell = %+v, want %+v", got, cell)
	}

	// Out of bounds writes are ignored.
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); got != core.EmptyCell() {
		t.Errorf("GetCell(-1, 0) = %+v, want empty cell", got)
	}
}

func TestNullBackendFillAndRow(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Fill(core.RectFromSize(1, 2, 1, 3), core.NewStyledCell('.', core.DefaultStyle()))

	if got := b.Row(1); got != "  ..." {
		t.Errorf("Row(1) = %q, want %q", got, "  ...")
	}
	if got := b.Row(0); got != "" {
		t.Errorf("Row(0) = %q, want empty", got)
	}

	b.Clear()
	if got := b.Row(1); got != "" {
		t.Errorf("Row(1) after Clear = %q, want empty", got)
	}
}

func TestNullBackendCursorAndEvents(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.ShowCursor(4, 2)
	x, y, visible := b.CursorPosition()
	if x != 4 || y != 2 || !visible {
		t.Errorf("CursorPosition = (%d, %d, %v), want (4, 2, true)", x, y, visible)
	}

	ev := Event{Type: EventKey, Key: key.NewSpecialEvent(key.KeyF7, key.ModNone)}
	b.PostEvent(ev)
	if got := b.PollEvent(); got != ev {
		t.Errorf("PollEvent = %+v, want %+v", got, ev)
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(10, 3)
	var gotW, gotH int
	b.OnResize(func(w, h int) { gotW, gotH = w, h })
	b.Resize(20, 5)

	if gotW != 20 || gotH != 5 {
		t.Errorf("resize callback got (%d, %d), want (20, 5)", gotW, gotH)
	}
	if w, h := b.Size(); w != 20 || h != 5 {
		t.Errorf("Size = (%d, %d), want (20, 5)", w, h)
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), key.NewRuneEvent('x', key.ModNone)},
		{"ctrl w", tcell.NewEventKey(tcell.KeyCtrlW, 0x17, tcell.ModCtrl), key.NewRuneEvent('w', key.ModCtrl)},
		{"alt f7", tcell.NewEventKey(tcell.KeyF7, 0, tcell.ModAlt), key.NewSpecialEvent(key.KeyF7, key.ModAlt)},
		{"ctrl home", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl), key.NewSpecialEvent(key.KeyHome, key.ModCtrl)},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyBackspace, key.ModNone)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.NewSpecialEvent(key.KeyEnter, key.ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertKey(tt.ev); got != tt.want {
				t.Errorf("convertKey = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConvertStyleRoundTrip(t *testing.T) {
	s := core.PopupStyle()
	s.Attributes = core.AttrReverse
	if got := convertTcellStyle(convertStyle(s)); got != s {
		t.Errorf("convertTcellStyle(convertStyle(s)) = %+v, want %+v", got, s)
	}
}

func TestTerminalSimulation(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := newTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer term.Shutdown()
	screen.SetSize(20, 4)

	term.SetCell(1, 1, core.NewStyledCell('k', core.DefaultStyle()))
	if got := term.GetCell(1, 1); got.Rune != 'k' {
		t.Errorf("GetCell rune = %q, want 'k'", got.Rune)
	}

	term.PostEvent(Event{Type: EventKey, Key: key.NewRuneEvent('u', key.ModCtrl)})
	ev := term.PollEvent()
	if ev.Type != EventKey || ev.Key != key.NewRuneEvent('u', key.ModCtrl) {
		t.Errorf("PollEvent = %+v, want Ctrl+U key event", ev)
	}
}
