package alias

import "fmt"

// ExportAliases writes the aliases of owner into dst as NUL-terminated
// "source=target" records and returns the number of bytes written.
//
// With a nil dst nothing is written and the required size is returned.
// If dst is too small the required size is returned together with
// ErrBufferTooSmall and dst is left untouched.
func (r *Registry) ExportAliases(owner string, dst []byte) (int, error) {
	aliases := r.ListAll(owner)
	need := 0
	for _, a := range aliases {
		need += len(a.Source) + 1 + len(a.Target) + 1
	}
	if dst == nil {
		return need, nil
	}
	if len(dst) < need {
		return need, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, need, len(dst))
	}

	n := 0
	for _, a := range aliases {
		n += copy(dst[n:], a.Source)
		dst[n] = '='
		n++
		n += copy(dst[n:], a.Target)
		dst[n] = 0
		n++
	}
	return n, nil
}

// ExportOwners writes the names of the owners that have aliases into dst
// as NUL-terminated records. Probe and short-buffer behave as in
// ExportAliases.
func (r *Registry) ExportOwners(dst []byte) (int, error) {
	owners := r.ListOwners()
	need := 0
	for _, o := range owners {
		need += len(o) + 1
	}
	if dst == nil {
		return need, nil
	}
	if len(dst) < need {
		return need, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, need, len(dst))
	}

	n := 0
	for _, o := range owners {
		n += copy(dst[n:], o)
		dst[n] = 0
		n++
	}
	return n, nil
}
