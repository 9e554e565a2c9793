// Package key provides the key event types consumed by the line editor and
// its popups.
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: Ctrl, Alt and Shift state
//   - Event: a single key press
//   - Binding: the Key/Rune/Modifier triple used as a keymap index
//
// # Key Specifications
//
// Configuration files name keys with Parse:
//
//   - Simple keys: "a", "Enter", "Escape", "F7"
//   - With modifiers: "Ctrl+Home", "Alt+F10", "Ctrl+W"
//   - Vim-style: "<C-w>", "<A-F7>", "<Esc>"
package key
