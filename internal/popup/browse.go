package popup

import (
	"strconv"

	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/renderer/core"
)

// minGotoWidth is the narrowest screen the goto prompt opens on.
const minGotoWidth = NumberDigits + 2

// initBrowse highlights the displayed command and scrolls the list so it
// is visible.
func (p *Popup) initBrowse(s *Stack) {
	count := s.hist.Count()
	rows := p.content.Height()

	cur := s.hist.DisplayedOrdinal()
	if cur < 0 {
		cur = count - 1
	}
	p.current = cur
	if cur < count-rows {
		p.bottom = max(cur, rows-1)
	} else {
		p.bottom = count - 1
	}
	p.drawBrowse(s)
}

func (p *Popup) handleBrowse(s *Stack, ev key.Event, line Line) Outcome {
	count := s.hist.Count()
	rows := p.content.Height()

	switch {
	case ev.Key == key.KeyF9:
		w, _ := s.r.Size()
		if w >= minGotoWidth {
			_, _ = s.Push(KindGotoNumber, DefaultSize(KindGotoNumber))
		}
		return Pending
	case ev.IsEscape():
		s.Pop()
		return Closed
	case ev.Key == key.KeyUp:
		p.moveTo(s, p.current-1)
	case ev.Key == key.KeyDown:
		p.moveTo(s, p.current+1)
	case ev.Key == key.KeyEnd:
		p.moveTo(s, p.current+count)
	case ev.Key == key.KeyHome:
		p.moveTo(s, p.current-count)
	case ev.Key == key.KeyPageUp:
		p.moveTo(s, p.current-rows)
	case ev.Key == key.KeyPageDown:
		p.moveTo(s, p.current+rows)
	case ev.Key == key.KeyLeft || ev.Key == key.KeyRight:
		s.Pop()
		line.SetCommand(p.current)
		return Closed
	case ev.IsEnter():
		s.Pop()
		line.SetCommand(p.current)
		return Submit
	case ev.IsChar():
		i, ok := s.hist.FindPrefixMatch(string(ev.Rune), p.current, history.MatchJustLooking)
		if ok {
			p.moveTo(s, s.hist.OrdinalOf(i))
		}
	}
	return Pending
}

// moveTo highlights ordinal n, clamped to the list. The list scrolls only
// when n leaves the visible rows.
func (p *Popup) moveTo(s *Stack, n int) {
	count := s.hist.Count()
	rows := p.content.Height()

	n = min(max(n, 0), count-1)
	delta := n - p.current
	if delta == 0 {
		return
	}

	switch {
	case n <= p.bottom-rows:
		p.bottom = max(p.bottom+delta, rows-1)
	case n > p.bottom:
		p.bottom = min(p.bottom+delta, count-1)
	}
	p.current = n
	p.drawBrowse(s)
	s.r.Flush()
}

// top returns the first visible ordinal.
func (p *Popup) top() int {
	return max(p.bottom-p.content.Height()+1, 0)
}

func (p *Popup) drawBrowse(s *Stack) {
	width := p.content.Width()
	row := p.content.Top
	for n := p.top(); n <= p.bottom && row < p.content.Bottom; n++ {
		style := s.style
		if n == p.current {
			style = style.Invert()
		}
		s.clearRow(p, row, style)

		label := core.Truncate(strconv.Itoa(n)+": ", width)
		cmd, _ := s.hist.CommandAt(n)
		cmd = core.Truncate(cmd, width-core.StringWidth(label))

		pos := core.ScreenPos{Row: row, Col: p.content.Left}
		pos.Col += s.r.WriteText(pos, []rune(label), style)
		s.r.WriteText(pos, []rune(cmd), style)
		row++
	}
	for ; row < p.content.Bottom; row++ {
		s.clearRow(p, row, s.style)
	}
}
