package history

// MaxCapacity is the largest number of commands one history can hold.
const MaxCapacity = 32767

// RingIndex is a physical slot in a history ring.
type RingIndex int

// NoIndex marks the absence of a slot.
const NoIndex RingIndex = -1

// Valid reports whether i refers to a slot.
func (i RingIndex) Valid() bool {
	return i >= 0
}

// SlotToOrdinal converts a slot into the age-based number of the command
// stored there, given the slot of the oldest command.
func SlotToOrdinal(slot, first RingIndex, capacity int) int {
	if capacity <= 0 || !slot.Valid() {
		return -1
	}
	return (int(slot) + capacity - int(first)) % capacity
}

// OrdinalToSlot converts an age-based command number into its slot.
func OrdinalToSlot(ordinal int, first RingIndex, capacity int) RingIndex {
	if capacity <= 0 || ordinal < 0 {
		return NoIndex
	}
	return RingIndex((ordinal + int(first)) % capacity)
}

// prevCommand steps back one command, wrapping at count. Only valid while
// the live commands occupy slots 0..count-1 or the ring is full.
func prevCommand(i RingIndex, count int) RingIndex {
	if i <= 0 {
		i = RingIndex(count)
	}
	return i - 1
}

// nextCommand steps forward one command, wrapping at count.
func nextCommand(i RingIndex, count int) RingIndex {
	i++
	if int(i) >= count {
		i = 0
	}
	return i
}

// incSlot steps forward one slot, wrapping at capacity.
func incSlot(i RingIndex, capacity int) RingIndex {
	i++
	if int(i) >= capacity {
		i = 0
	}
	return i
}

// decSlot steps back one slot, wrapping at capacity.
func decSlot(i RingIndex, capacity int) RingIndex {
	if i <= 0 {
		i = RingIndex(capacity)
	}
	return i - 1
}
