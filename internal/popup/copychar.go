package popup

import "github.com/dshills/keyline/internal/input/key"

// handleCopyToChar copies the previous command from the cursor up to the
// typed character. Nothing happens when the character does not occur
// after the cursor.
func (p *Popup) handleCopyToChar(s *Stack, ev key.Event, line Line) Outcome {
	s.Pop()
	if ev.IsEscape() || !ev.IsRune() || s.hist == nil {
		return Closed
	}

	last, ok := s.hist.Last()
	if !ok {
		return Closed
	}
	if end := indexAfter([]rune(last), line.Cursor(), ev.Rune); end >= 0 {
		line.CopyFromLast(end)
	}
	return Closed
}

// handleCopyFromChar deletes the edit line from the cursor up to the
// typed character.
func (p *Popup) handleCopyFromChar(s *Stack, ev key.Event, line Line) Outcome {
	s.Pop()
	if ev.IsEscape() || !ev.IsRune() {
		return Closed
	}

	if end := indexAfter(line.Text(), line.Cursor(), ev.Rune); end >= 0 {
		line.DeleteTo(end)
	}
	return Closed
}

// indexAfter returns the index of the first c in text after offset
// cursor, or -1.
func indexAfter(text []rune, cursor int, c rune) int {
	for i := cursor + 1; i < len(text); i++ {
		if text[i] == c {
			return i
		}
	}
	return -1
}
