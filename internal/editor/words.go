package editor

import "strings"

// Delimiters is the set of extra word delimiter characters. A space is
// always a delimiter.
type Delimiters string

// Is reports whether r separates words.
func (d Delimiters) Is(r rune) bool {
	return r == ' ' || strings.ContainsRune(string(d), r)
}

// prevWord returns the start of the word before cursor. Any delimiter
// ends a word.
func prevWord(buf []rune, cursor int, d Delimiters) int {
	if cursor <= 0 {
		return 0
	}
	i := cursor - 1
	seen := false
	for i != 0 {
		if !d.Is(buf[i]) {
			seen = true
		} else if seen {
			break
		}
		i--
	}
	if i != 0 {
		return i + 1
	}
	return 0
}

// prevWordExtended moves back over a run of spaces, then over either a
// run of delimiters or a run of word characters.
func prevWordExtended(buf []rune, cursor int, d Delimiters) int {
	if cursor <= 0 {
		return 0
	}
	i := cursor - 1
	if i != 0 {
		if buf[i] == ' ' {
			for i--; i != 0; i-- {
				if buf[i] != ' ' {
					break
				}
			}
		}
		if i != 0 {
			if d.Is(buf[i]) {
				for i--; i != 0; i-- {
					if buf[i] == ' ' || !d.Is(buf[i]) {
						break
					}
				}
			} else {
				for i--; i != 0; i-- {
					if d.Is(buf[i]) {
						break
					}
				}
			}
		}
	}
	if i != 0 {
		i++
	}
	return i
}

// nextWord returns the start of the word after cursor. The result never
// passes the last character.
func nextWord(buf []rune, cursor int, d Delimiters) int {
	n := len(buf)
	if cursor >= n {
		return cursor
	}
	i := cursor
	for ; i < n-1; i++ {
		if d.Is(buf[i]) {
			i++
			for i < n-1 && d.Is(buf[i]) {
				i++
			}
			break
		}
	}
	return i
}

// nextWordExtended skips a run of spaces, or a run of one class followed
// by any spaces.
func nextWordExtended(buf []rune, cursor int, d Delimiters) int {
	n := len(buf)
	if cursor >= n {
		return cursor
	}
	i := cursor
	if buf[i] == ' ' {
		for i < n && buf[i] == ' ' {
			i++
		}
		return i
	}

	startDelim := d.Is(buf[i])
	for i++; i < n; i++ {
		if d.Is(buf[i]) != startDelim {
			break
		}
	}
	if i < n && buf[i] == ' ' {
		for i++; i < n; i++ {
			if buf[i] != ' ' {
				break
			}
		}
	}
	return i
}
