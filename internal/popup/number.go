package popup

import (
	"strconv"

	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/renderer/core"
)

// numberPos returns the screen position of digit i of the goto prompt.
func (p *Popup) numberPos(i int) core.ScreenPos {
	return core.ScreenPos{Row: p.content.Top, Col: p.content.Right - NumberDigits + i}
}

func (p *Popup) initGotoNumber(s *Stack) {
	prompt := GotoNumberPrompt
	if limit := p.content.Width() - NumberDigits; len(prompt) > limit {
		prompt = prompt[:max(limit, 0)]
	}
	s.drawPrompt(p, prompt)
	s.r.SetCursor(p.numberPos(0))
}

func (p *Popup) handleGotoNumber(s *Stack, ev key.Event, line Line) Outcome {
	switch {
	case ev.IsRune() && ev.Rune >= '0' && ev.Rune <= '9':
		if len(p.digits) < NumberDigits {
			s.r.WriteText(p.numberPos(len(p.digits)), []rune{ev.Rune}, s.style)
			p.digits = append(p.digits, ev.Rune)
			s.r.SetCursor(p.numberPos(len(p.digits)))
			s.r.Flush()
		}
	case ev.IsBackspace():
		if len(p.digits) > 0 {
			p.digits = p.digits[:len(p.digits)-1]
			s.r.WriteText(p.numberPos(len(p.digits)), []rune{' '}, s.style)
			s.r.SetCursor(p.numberPos(len(p.digits)))
			s.r.Flush()
		}
	case ev.IsEscape():
		s.Pop()
		if s.Active() {
			s.Pop()
		}
		return Closed
	case ev.IsEnter():
		n, _ := strconv.Atoi(string(p.digits))
		if count := s.hist.Count(); n >= count {
			n = count - 1
		}
		s.Pop()
		if s.Active() {
			s.Pop()
		}
		line.SetCommand(n)
		return Closed
	}
	return Pending
}
