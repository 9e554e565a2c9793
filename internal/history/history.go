package history

import "strings"

// ProcessID identifies the client process a history is bound to.
type ProcessID int

// Direction selects the recall direction.
type Direction int

const (
	// Older recalls the previous (older) command.
	Older Direction = iota
	// Newer recalls the next (newer) command.
	Newer
)

// MatchFlags control FindPrefixMatch.
type MatchFlags uint8

const (
	// MatchExact requires the command to equal the prefix.
	MatchExact MatchFlags = 1 << iota
	// MatchJustLooking searches without consuming the reset state.
	MatchJustLooking
)

// History is one ring of recorded commands belonging to an owner.
type History struct {
	owner string
	pid   ProcessID

	commands []string
	count    int

	first         RingIndex
	lastAdded     RingIndex
	lastDisplayed RingIndex

	// reset means the next backward recall shows lastDisplayed itself.
	reset     bool
	allocated bool

	// releasedAt orders free histories for reuse.
	releasedAt uint64
}

func newHistory(owner string, pid ProcessID, capacity int) *History {
	return &History{
		owner:         owner,
		pid:           pid,
		commands:      make([]string, capacity),
		first:         0,
		lastAdded:     NoIndex,
		lastDisplayed: NoIndex,
		allocated:     true,
	}
}

// Owner returns the owner (program) name.
func (h *History) Owner() string { return h.owner }

// Process returns the process the history is bound to, or 0 when free.
func (h *History) Process() ProcessID { return h.pid }

// Allocated reports whether a process currently owns the history.
func (h *History) Allocated() bool { return h.allocated }

// Count returns the number of live commands.
func (h *History) Count() int { return h.count }

// Capacity returns the maximum number of commands.
func (h *History) Capacity() int { return len(h.commands) }

// Record appends text as the newest command. Empty text and text equal to
// the newest command are not added, but the recall position is still
// reset. With noDuplicate an identical older command is moved to the
// newest position instead of being stored twice.
func (h *History) Record(text string, noDuplicate bool) error {
	capacity := len(h.commands)
	if capacity == 0 {
		return ErrZeroCapacity
	}
	if text == "" {
		return nil
	}

	if h.count == 0 || h.commands[h.lastAdded] != text {
		if noDuplicate {
			if i, ok := h.findMatch(text, h.lastDisplayed, MatchExact); ok {
				h.remove(i)
			}
		}

		if h.count < capacity {
			h.lastAdded = incSlot(h.lastAdded, capacity)
			h.count++
		} else {
			h.lastAdded = incSlot(h.lastAdded, capacity)
			h.first = incSlot(h.first, capacity)
			if h.lastDisplayed == h.lastAdded {
				h.lastDisplayed = NoIndex
			}
		}

		if !h.lastDisplayed.Valid() || h.commands[h.lastDisplayed] != text {
			h.lastDisplayed = h.lastAdded
		}
		h.commands[h.lastAdded] = text
	}

	h.reset = true
	return nil
}

// remove deletes the command in slot i, keeping the live commands
// contiguous from first.
func (h *History) remove(i RingIndex) {
	capacity := len(h.commands)
	n := SlotToOrdinal(i, h.first, capacity)
	if h.count == 0 || n < 0 || n >= h.count {
		return
	}

	displayed := -1
	if h.lastDisplayed == i {
		h.lastDisplayed = NoIndex
	} else if h.lastDisplayed.Valid() {
		displayed = SlotToOrdinal(h.lastDisplayed, h.first, capacity)
	}

	for o := n; o < h.count-1; o++ {
		h.commands[h.SlotOf(o)] = h.commands[h.SlotOf(o+1)]
	}
	h.commands[h.SlotOf(h.count-1)] = ""
	h.lastAdded = decSlot(h.lastAdded, capacity)
	if displayed > n {
		h.lastDisplayed = h.SlotOf(displayed - 1)
	}
	h.count--
}

// AtFirst reports whether a backward recall would move past the oldest
// command.
func (h *History) AtFirst() bool {
	if h.reset {
		return false
	}
	i := h.lastDisplayed - 1
	if i == -1 {
		i = RingIndex(h.count - 1)
	}
	return i == h.lastAdded
}

// AtLast reports whether the newest command is displayed.
func (h *History) AtLast() bool {
	return h.lastDisplayed == h.lastAdded
}

// Recall moves the display position one command in dir and returns the
// command there. It returns false, without moving, when the history is
// empty or already at that end.
func (h *History) Recall(dir Direction) (string, bool) {
	if h.count == 0 {
		return "", false
	}
	if (dir == Older && h.AtFirst()) || (dir == Newer && h.AtLast()) {
		return "", false
	}

	switch {
	case h.count == 1:
		h.lastDisplayed = 0
	case dir == Older:
		if h.reset {
			h.reset = false
		} else {
			h.lastDisplayed = prevCommand(h.lastDisplayed, h.count)
		}
	default:
		h.lastDisplayed = nextCommand(h.lastDisplayed, h.count)
	}
	return h.commands[h.lastDisplayed], true
}

// RecallByIndex displays the command with the given ordinal. Ordinals out
// of range are clamped.
func (h *History) RecallByIndex(ordinal int) (string, bool) {
	if h.count == 0 {
		return "", false
	}
	ordinal = min(max(ordinal, 0), h.count-1)
	h.lastDisplayed = h.SlotOf(ordinal)
	return h.commands[h.lastDisplayed], true
}

// RecallSlot displays the command stored in slot i.
func (h *History) RecallSlot(i RingIndex) (string, bool) {
	if !h.live(i) {
		return "", false
	}
	h.lastDisplayed = i
	return h.commands[i], true
}

// FindPrefixMatch scans backwards, cyclically, for the most recent command
// starting with prefix (equal to it with MatchExact). The scan starts at
// the command with ordinal fromOrdinal; without MatchJustLooking a pending
// reset makes the scan include that command itself and consumes the reset.
// An empty prefix matches the first candidate.
func (h *History) FindPrefixMatch(prefix string, fromOrdinal int, flags MatchFlags) (RingIndex, bool) {
	start := NoIndex
	if fromOrdinal >= 0 && fromOrdinal < h.count {
		start = h.SlotOf(fromOrdinal)
	}
	return h.findMatch(prefix, start, flags)
}

func (h *History) findMatch(prefix string, start RingIndex, flags MatchFlags) (RingIndex, bool) {
	if h.count == 0 {
		return NoIndex, false
	}
	if !h.live(start) {
		start = h.lastAdded
	}

	if flags&MatchJustLooking == 0 && h.reset {
		h.reset = false
	} else {
		start = prevCommand(start, h.count)
	}

	if prefix == "" {
		return start, true
	}

	for i := 0; i < h.count; i++ {
		cmd := h.commands[start]
		if flags&MatchExact != 0 {
			if cmd == prefix {
				return start, true
			}
		} else if strings.HasPrefix(cmd, prefix) {
			return start, true
		}
		start = prevCommand(start, h.count)
	}
	return NoIndex, false
}

// ClearAll discards every command.
func (h *History) ClearAll() {
	clear(h.commands)
	h.count = 0
	h.first = 0
	h.lastAdded = NoIndex
	h.lastDisplayed = NoIndex
	h.reset = true
}

// ResizeCapacity changes the number of slots, keeping the most recent
// commands that fit and laying them out from slot 0. It does nothing when
// n is unchanged, negative or above MaxCapacity, and reports whether the
// ring changed.
func (h *History) ResizeCapacity(n int) bool {
	if n < 0 || n == len(h.commands) || n > MaxCapacity {
		return false
	}

	keep := min(h.count, n)
	commands := make([]string, n)
	for i := 0; i < keep; i++ {
		commands[i] = h.commands[h.SlotOf(h.count-keep+i)]
	}

	h.commands = commands
	h.count = keep
	h.first = 0
	h.lastAdded = RingIndex(keep - 1)
	h.lastDisplayed = RingIndex(keep - 1)
	h.reset = true
	return true
}

// Last returns the displayed command, the one F1 to F3 copy from.
func (h *History) Last() (string, bool) {
	if h.count == 0 || !h.live(h.lastDisplayed) {
		return "", false
	}
	return h.commands[h.lastDisplayed], true
}

// CommandAt returns the command with the given ordinal.
func (h *History) CommandAt(ordinal int) (string, bool) {
	if ordinal < 0 || ordinal >= h.count {
		return "", false
	}
	return h.commands[h.SlotOf(ordinal)], true
}

// Commands returns the live commands, oldest first.
func (h *History) Commands() []string {
	out := make([]string, h.count)
	for i := range out {
		out[i] = h.commands[h.SlotOf(i)]
	}
	return out
}

// DisplayedOrdinal returns the ordinal of the displayed command, or -1.
func (h *History) DisplayedOrdinal() int {
	if !h.live(h.lastDisplayed) {
		return -1
	}
	return h.OrdinalOf(h.lastDisplayed)
}

// SlotOf converts an ordinal of this history into a slot.
func (h *History) SlotOf(ordinal int) RingIndex {
	return OrdinalToSlot(ordinal, h.first, len(h.commands))
}

// OrdinalOf converts a slot of this history into an ordinal.
func (h *History) OrdinalOf(i RingIndex) int {
	return SlotToOrdinal(i, h.first, len(h.commands))
}

// live reports whether slot i holds a command.
func (h *History) live(i RingIndex) bool {
	if !i.Valid() || int(i) >= len(h.commands) {
		return false
	}
	n := h.OrdinalOf(i)
	return n >= 0 && n < h.count
}
