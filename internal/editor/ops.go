package editor

import "github.com/dshills/keyline/internal/history"

// insert types r at the cursor, inserting or overwriting by mode.
func (e *Editor) insert(r rune) Outcome {
	s := &e.state
	if s.Insert || s.AtEnd() {
		if s.Room() == 0 {
			e.beep()
			return Truncated
		}
		s.Buffer = append(s.Buffer, 0)
		copy(s.Buffer[s.Cursor+1:], s.Buffer[s.Cursor:])
	}
	s.Buffer[s.Cursor] = r
	s.Cursor++
	e.redraw()
	return Continue
}

// moveTo puts the cursor at offset n. Offsets outside the buffer are
// ignored.
func (e *Editor) moveTo(n int) {
	if n < 0 || n > e.state.Len() || n == e.state.Cursor {
		return
	}
	e.state.Cursor = n
	e.RestoreCursor()
}

// moveRight advances the cursor. At the end of the line it copies the
// character at the same offset of the previous command.
func (e *Editor) moveRight() Outcome {
	if !e.state.AtEnd() {
		e.moveTo(e.state.Cursor + 1)
		return Continue
	}
	last := e.lastCommand()
	if len(last) > e.state.Cursor && e.state.Room() > 0 {
		return e.copyFromLast(last, e.state.Cursor+1)
	}
	return Continue
}

func (e *Editor) wordLeft() {
	if e.extended {
		e.moveTo(prevWordExtended(e.state.Buffer, e.state.Cursor, e.delims))
	} else {
		e.moveTo(prevWord(e.state.Buffer, e.state.Cursor, e.delims))
	}
}

func (e *Editor) wordRight() {
	if e.extended {
		e.moveTo(nextWordExtended(e.state.Buffer, e.state.Cursor, e.delims))
	} else {
		e.moveTo(nextWord(e.state.Buffer, e.state.Cursor, e.delims))
	}
}

func (e *Editor) backspace() {
	s := &e.state
	if s.Cursor == 0 {
		return
	}
	s.Buffer = append(s.Buffer[:s.Cursor-1], s.Buffer[s.Cursor:]...)
	s.Cursor--
	e.redraw()
}

// deleteChar deletes the character under the cursor. With class set it
// keeps deleting while the next character is of the same class (word or
// delimiter) as the first one.
func (e *Editor) deleteChar(class bool) {
	s := &e.state
	if s.AtEnd() {
		return
	}
	delim := e.delims.Is(s.Buffer[s.Cursor])
	n := 1
	if class {
		for s.Cursor+n < s.Len() && e.delims.Is(s.Buffer[s.Cursor+n]) == delim {
			n++
		}
	}
	s.Buffer = append(s.Buffer[:s.Cursor], s.Buffer[s.Cursor+n:]...)
	e.redraw()
}

func (e *Editor) deleteToEnd() {
	s := &e.state
	if s.AtEnd() {
		return
	}
	s.Buffer = s.Buffer[:s.Cursor]
	e.redraw()
}

func (e *Editor) deleteToStart() {
	s := &e.state
	if s.Cursor == 0 {
		return
	}
	s.Buffer = append(s.Buffer[:0], s.Buffer[s.Cursor:]...)
	s.Cursor = 0
	e.redraw()
}

func (e *Editor) erasePrevWord() {
	s := &e.state
	start := prevWord(s.Buffer, s.Cursor, e.delims)
	if e.extended {
		start = prevWordExtended(s.Buffer, s.Cursor, e.delims)
	}
	if start >= s.Cursor {
		return
	}
	s.Buffer = append(s.Buffer[:start], s.Buffer[s.Cursor:]...)
	s.Cursor = start
	e.redraw()
}

// setLine replaces the buffer and puts the cursor at its end. Text beyond
// the capacity is dropped and the line reports Truncated.
func (e *Editor) setLine(text []rune) Outcome {
	s := &e.state
	outcome := Continue
	if len(text) > s.Capacity {
		text = text[:s.Capacity]
		outcome = Truncated
		e.beep()
	}
	s.Buffer = append(s.Buffer[:0], text...)
	s.Cursor = len(s.Buffer)
	e.redraw()
	return outcome
}

func (e *Editor) recall(dir history.Direction) Outcome {
	if e.hist == nil {
		return Continue
	}
	if text, ok := e.hist.Recall(dir); ok {
		return e.setLine([]rune(text))
	}
	return Continue
}

func (e *Editor) recallOrdinal(ordinal int) Outcome {
	if e.hist == nil {
		return Continue
	}
	if text, ok := e.hist.RecallByIndex(ordinal); ok {
		return e.setLine([]rune(text))
	}
	return Continue
}

// search recalls the next older command starting with the text before
// the cursor, leaving the cursor where it was.
func (e *Editor) search() Outcome {
	if e.hist == nil || e.hist.Count() == 0 {
		return Continue
	}
	cursor := e.state.Cursor
	i, ok := e.hist.FindPrefixMatch(string(e.state.Buffer[:cursor]), e.hist.DisplayedOrdinal(), 0)
	if !ok {
		return Continue
	}
	text, ok := e.hist.RecallSlot(i)
	if !ok {
		return Continue
	}
	outcome := e.setLine([]rune(text))
	e.state.Cursor = min(cursor, e.state.Len())
	e.RestoreCursor()
	return outcome
}

// copyRest copies the previous command from the cursor to its end.
func (e *Editor) copyRest() Outcome {
	last := e.lastCommand()
	if len(last) <= e.state.Cursor {
		return Continue
	}
	return e.copyFromLast(last, len(last))
}

// copyFromLast copies last[cursor:end] over the buffer and moves the
// cursor past the copy.
func (e *Editor) copyFromLast(last []rune, end int) Outcome {
	s := &e.state
	end = min(end, len(last))
	if end <= s.Cursor {
		return Continue
	}
	src := last[s.Cursor:end]
	outcome := Continue
	if room := s.Capacity - s.Cursor; len(src) > room {
		src = src[:max(room, 0)]
		outcome = Truncated
		e.beep()
	}
	if need := s.Cursor + len(src); need > s.Len() {
		s.Buffer = append(s.Buffer, make([]rune, need-s.Len())...)
	}
	copy(s.Buffer[s.Cursor:], src)
	s.Cursor += len(src)
	e.redraw()
	return outcome
}

func (e *Editor) lastCommand() []rune {
	if e.hist == nil {
		return nil
	}
	last, ok := e.hist.Last()
	if !ok {
		return nil
	}
	return []rune(last)
}

// Text returns the edit buffer.
func (e *Editor) Text() []rune {
	return e.state.Buffer
}

// Cursor returns the cursor offset.
func (e *Editor) Cursor() int {
	return e.state.Cursor
}

// SetCommand replaces the line with the history command at ordinal.
func (e *Editor) SetCommand(ordinal int) {
	if e.recallOrdinal(ordinal) == Truncated {
		e.cut = true
	}
}

// CopyFromLast copies the previous command from the cursor up to end.
func (e *Editor) CopyFromLast(end int) {
	if e.copyFromLast(e.lastCommand(), end) == Truncated {
		e.cut = true
	}
}

// DeleteTo deletes from the cursor up to end.
func (e *Editor) DeleteTo(end int) {
	s := &e.state
	end = min(end, s.Len())
	if end <= s.Cursor {
		return
	}
	s.Buffer = append(s.Buffer[:s.Cursor], s.Buffer[end:]...)
	e.redraw()
}
