package key

import (
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events. Control characters
	// (Ctrl+Z is 0x1A) arrive as runes too.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character without Ctrl or Alt.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.Modifiers.HasCtrl() && !e.Modifiers.HasAlt()
}

// IsEscape returns true if this is the Escape key.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape
}

// IsEnter returns true if this is the Enter key or a bare carriage return.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter || (e.Key == KeyRune && e.Rune == '\r')
}

// IsBackspace returns true for Backspace or a bare 0x08 rune.
func (e Event) IsBackspace() bool {
	return e.Key == KeyBackspace || (e.Key == KeyRune && e.Rune == '\b')
}

// Binding returns the keymap index of the event. Shift is dropped for
// runes because it is already folded into the character.
func (e Event) Binding() Binding {
	b := Binding{Key: e.Key, Modifiers: e.Modifiers}
	if e.Key == KeyRune {
		b.Rune = unicode.ToLower(e.Rune)
		b.Modifiers &^= ModShift
	}
	return b
}

// String returns a canonical representation such as "Ctrl+W" or "F7".
func (e Event) String() string {
	return e.Binding().String()
}

// Binding is the comparable form of an event used to index key tables.
type Binding struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// String returns a representation that Parse accepts.
func (b Binding) String() string {
	name := b.Key.String()
	if b.Key == KeyRune {
		switch {
		case b.Rune == ' ':
			name = "Space"
		case b.Rune < 0x20:
			name = string(rune('a' + b.Rune - 1))
		default:
			name = string(unicode.ToUpper(b.Rune))
		}
	}
	if mods := b.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}
