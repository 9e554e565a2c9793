package history

// Export writes the live commands, oldest first, each followed by a NUL
// byte. With a nil dst it only returns the number of bytes required.
// When dst is too small nothing is written and ErrBufferTooSmall is
// returned together with the required size.
func (h *History) Export(dst []byte) (int, error) {
	need := 0
	for i := 0; i < h.count; i++ {
		need += len(h.commands[h.SlotOf(i)]) + 1
	}
	if dst == nil {
		return need, nil
	}
	if len(dst) < need {
		return need, ErrBufferTooSmall
	}

	n := 0
	for i := 0; i < h.count; i++ {
		n += copy(dst[n:], h.commands[h.SlotOf(i)])
		dst[n] = 0
		n++
	}
	return n, nil
}
