package editor

import (
	"fmt"
	"sort"

	"github.com/dshills/keyline/internal/input/key"
)

// Action names an editor operation a key can be bound to.
type Action string

// Editing actions.
const (
	ActionBackspace       Action = "edit.backspace"
	ActionDeleteChar      Action = "edit.deleteChar"
	ActionDeleteWordClass Action = "edit.deleteWordClass"
	ActionDeleteToEnd     Action = "edit.deleteToEnd"
	ActionDeleteToStart   Action = "edit.deleteToStart"
	ActionDeleteLine      Action = "edit.deleteLine"
	ActionErasePrevWord   Action = "edit.erasePreviousWord"
	ActionToggleInsert    Action = "edit.toggleInsert"
	ActionInsertEOF       Action = "edit.insertEOF"
	ActionComplete        Action = "edit.complete"
)

// Cursor actions.
const (
	ActionMoveLeft  Action = "cursor.moveLeft"
	ActionMoveRight Action = "cursor.moveRight"
	ActionLineStart Action = "cursor.moveLineStart"
	ActionLineEnd   Action = "cursor.moveLineEnd"
	ActionWordLeft  Action = "cursor.wordLeft"
	ActionWordRight Action = "cursor.wordRight"
)

// History actions.
const (
	ActionHistoryPrevious Action = "history.previous"
	ActionHistoryNext     Action = "history.next"
	ActionHistoryOldest   Action = "history.oldest"
	ActionHistoryNewest   Action = "history.newest"
	ActionHistorySearch   Action = "history.search"
	ActionHistoryClear    Action = "history.clear"
	ActionCopyRest        Action = "history.copyRest"
)

// Popup and alias actions.
const (
	ActionBrowse       Action = "popup.browse"
	ActionCopyToChar   Action = "popup.copyToChar"
	ActionCopyFromChar Action = "popup.copyFromChar"
	ActionGotoNumber   Action = "popup.gotoNumber"
	ActionClearAliases Action = "alias.clearShell"
)

var knownActions = map[Action]bool{
	ActionBackspace: true, ActionDeleteChar: true, ActionDeleteWordClass: true,
	ActionDeleteToEnd: true, ActionDeleteToStart: true, ActionDeleteLine: true,
	ActionErasePrevWord: true, ActionToggleInsert: true, ActionInsertEOF: true,
	ActionComplete: true,
	ActionMoveLeft: true, ActionMoveRight: true, ActionLineStart: true,
	ActionLineEnd: true, ActionWordLeft: true, ActionWordRight: true,
	ActionHistoryPrevious: true, ActionHistoryNext: true, ActionHistoryOldest: true,
	ActionHistoryNewest: true, ActionHistorySearch: true, ActionHistoryClear: true,
	ActionCopyRest: true,
	ActionBrowse: true, ActionCopyToChar: true, ActionCopyFromChar: true,
	ActionGotoNumber: true, ActionClearAliases: true,
}

// Known reports whether a names an editor action.
func (a Action) Known() bool {
	return knownActions[a]
}

// Keymap maps key bindings to actions.
type Keymap struct {
	bindings map[key.Binding]Action
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[key.Binding]Action)}
}

// DefaultKeymap returns the standard bindings. With extended set, the
// Ctrl and Alt letter shortcuts are added.
func DefaultKeymap(extended bool) *Keymap {
	k := NewKeymap()
	special := func(kk key.Key, mods key.Modifier, a Action) {
		k.Bind(key.Binding{Key: kk, Modifiers: mods}, a)
	}

	special(key.KeyEnter, key.ModNone, ActionComplete)
	special(key.KeyBackspace, key.ModNone, ActionBackspace)
	special(key.KeyEscape, key.ModNone, ActionDeleteLine)
	special(key.KeyInsert, key.ModNone, ActionToggleInsert)
	special(key.KeyDelete, key.ModNone, ActionDeleteChar)
	special(key.KeyDelete, key.ModCtrl, ActionDeleteWordClass)

	special(key.KeyHome, key.ModNone, ActionLineStart)
	special(key.KeyHome, key.ModCtrl, ActionDeleteToStart)
	special(key.KeyEnd, key.ModNone, ActionLineEnd)
	special(key.KeyEnd, key.ModCtrl, ActionDeleteToEnd)
	special(key.KeyLeft, key.ModNone, ActionMoveLeft)
	special(key.KeyLeft, key.ModCtrl, ActionWordLeft)
	special(key.KeyRight, key.ModNone, ActionMoveRight)
	special(key.KeyRight, key.ModCtrl, ActionWordRight)

	special(key.KeyUp, key.ModNone, ActionHistoryPrevious)
	special(key.KeyDown, key.ModNone, ActionHistoryNext)
	special(key.KeyPageUp, key.ModNone, ActionHistoryOldest)
	special(key.KeyPageDown, key.ModNone, ActionHistoryNewest)

	special(key.KeyF1, key.ModNone, ActionMoveRight)
	special(key.KeyF2, key.ModNone, ActionCopyToChar)
	special(key.KeyF3, key.ModNone, ActionCopyRest)
	special(key.KeyF4, key.ModNone, ActionCopyFromChar)
	special(key.KeyF5, key.ModNone, ActionHistoryPrevious)
	special(key.KeyF6, key.ModNone, ActionInsertEOF)
	special(key.KeyF7, key.ModNone, ActionBrowse)
	special(key.KeyF7, key.ModAlt, ActionHistoryClear)
	special(key.KeyF8, key.ModNone, ActionHistorySearch)
	special(key.KeyF9, key.ModNone, ActionGotoNumber)
	special(key.KeyF10, key.ModAlt, ActionClearAliases)

	if extended {
		ctrl := func(r rune, a Action) {
			k.Bind(key.Binding{Key: key.KeyRune, Rune: r, Modifiers: key.ModCtrl}, a)
		}
		alt := func(r rune, a Action) {
			k.Bind(key.Binding{Key: key.KeyRune, Rune: r, Modifiers: key.ModAlt}, a)
		}

		ctrl('a', ActionLineStart)
		ctrl('b', ActionMoveLeft)
		ctrl('d', ActionDeleteChar)
		ctrl('e', ActionLineEnd)
		ctrl('f', ActionMoveRight)
		ctrl('k', ActionDeleteToEnd)
		ctrl('n', ActionHistoryNext)
		ctrl('p', ActionHistoryPrevious)
		ctrl('r', ActionHistorySearch)
		ctrl('t', ActionDeleteWordClass)
		ctrl('u', ActionDeleteLine)
		ctrl('w', ActionErasePrevWord)

		alt('a', ActionDeleteToStart)
		alt('b', ActionWordLeft)
		alt('d', ActionDeleteWordClass)
		alt('e', ActionDeleteToEnd)
		alt('f', ActionWordRight)
	}
	return k
}

// Bind maps b to a, replacing any earlier binding.
func (k *Keymap) Bind(b key.Binding, a Action) {
	k.bindings[b] = a
}

// Unbind removes the binding of b.
func (k *Keymap) Unbind(b key.Binding) {
	delete(k.bindings, b)
}

// Lookup returns the action bound to ev. A binding without Shift matches
// a shifted special key.
func (k *Keymap) Lookup(ev key.Event) (Action, bool) {
	b := ev.Binding()
	if a, ok := k.bindings[b]; ok {
		return a, true
	}
	if b.Modifiers.Has(key.ModShift) {
		b.Modifiers &^= key.ModShift
		a, ok := k.bindings[b]
		return a, ok
	}
	return "", false
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Apply adds bindings given as key names mapped to action names, such as
// "Ctrl+J" = "cursor.moveLineStart". An empty action removes the binding.
func (k *Keymap) Apply(bindings map[string]string) error {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b, err := key.Parse(name)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidBinding, name, err)
		}
		action := Action(bindings[name])
		if action == "" {
			k.Unbind(b)
			continue
		}
		if !action.Known() {
			return fmt.Errorf("%w: %q bound to %q", ErrUnknownAction, name, action)
		}
		k.Bind(b, action)
	}
	return nil
}

// Clone returns an independent copy of k.
func (k *Keymap) Clone() *Keymap {
	out := NewKeymap()
	for b, a := range k.bindings {
		out.bindings[b] = a
	}
	return out
}
