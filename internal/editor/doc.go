// Package editor implements the line editor of one read request.
//
// An Editor owns the edit buffer, the cursor and the insert mode. It
// receives one key at a time through HandleKey and never waits for
// input: every call returns after the key has been applied, and the
// caller decides when the next key is delivered.
//
// Keys are looked up in a Keymap that maps key bindings to named actions
// such as "cursor.wordLeft" or "history.previous". Printable characters
// that are not bound are inserted (or overwrite the character under the
// cursor). Enter completes the line: it is expanded through the alias
// registry, recorded into the command history and handed back as a
// Completion.
//
// While a popup is open every key goes to the popup stack first. Popups
// change the line through the popup.Line methods the Editor implements.
package editor
