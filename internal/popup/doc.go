// Package popup implements the overlays the line editor opens over the
// screen: the command history list, the copy-to-char and copy-from-char
// prompts, and the command number prompt.
//
// Popups live on a Stack. Push saves every screen row the popup covers
// and draws its frame; Pop writes the saved rows back, so closing the
// last popup leaves the screen as it was before the first was opened.
//
// A Popup is a tagged value: its Kind selects the state it uses and the
// branch of HandleEvent that runs. Handling one event never blocks. The
// caller keeps the Stack between events and feeds the next key when it
// arrives.
package popup
