package alias

import (
	"fmt"
	"strings"
)

// LineBreak terminates every line of an expansion.
const LineBreak = "\r\n"

// maxArgs is the highest numbered argument a target can reference.
const maxArgs = 9

// Expansion is the result of expanding an alias.
type Expansion struct {
	// Text holds the expanded commands, each followed by LineBreak.
	Text string

	// Lines is the number of commands in Text.
	Lines int
}

// Commands returns the expanded commands without their terminators.
func (e Expansion) Commands() []string {
	if e.Text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(e.Text, LineBreak), LineBreak)
}

// Expand expands line if its first token is an alias of owner.
//
// capacity limits the length of the expansion in characters, terminators
// included; zero or less means no limit. ErrNoAlias is returned when the
// token is not an alias, ErrBufferTooSmall when the expansion would
// exceed capacity.
func (r *Registry) Expand(owner, line string, capacity int) (Expansion, error) {
	token, remainder := splitToken(line)
	if token == "" {
		return Expansion{}, ErrNoAlias
	}
	target, ok := r.Lookup(owner, token)
	if !ok {
		return Expansion{}, ErrNoAlias
	}

	args := splitArgs(remainder, argCount(target))

	src := []rune(target)
	out := make([]rune, 0, len(src)+len(LineBreak))
	lines := 1

	for i := 0; i < len(src); i++ {
		if src[i] != '$' || i == len(src)-1 {
			out = append(out, src[i])
			continue
		}

		i++
		switch c := src[i]; {
		case c >= '1' && c <= '9':
			if n := int(c - '1'); n < len(args) {
				out = append(out, []rune(args[n])...)
			}
		case c == '*':
			if len(args) > 0 {
				out = append(out, []rune(remainder)...)
			}
		case c == 'l' || c == 'L':
			out = append(out, '<')
		case c == 'g' || c == 'G':
			out = append(out, '>')
		case c == 'b' || c == 'B':
			out = append(out, '|')
		case c == 't' || c == 'T':
			out = append(out, '\r', '\n')
			lines++
		default:
			out = append(out, '$', c)
		}

		if capacity > 0 && len(out)+len(LineBreak) > capacity {
			return Expansion{}, fmt.Errorf("%w: alias %q needs more than %d characters",
				ErrBufferTooSmall, token, capacity)
		}
	}

	out = append(out, '\r', '\n')
	if capacity > 0 && len(out) > capacity {
		return Expansion{}, fmt.Errorf("%w: alias %q needs %d characters, have %d",
			ErrBufferTooSmall, token, len(out), capacity)
	}

	return Expansion{Text: string(out), Lines: lines}, nil
}

// splitToken splits line at its first space. Spaces after the token are
// not part of the remainder.
func splitToken(line string) (token, remainder string) {
	i := strings.IndexByte(line, ' ')
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimLeft(line[i:], " ")
}

// argCount returns the highest argument number target references. $*
// counts as a reference to the first argument.
func argCount(target string) int {
	n := 0
	for i := 0; i+1 < len(target); i++ {
		if target[i] != '$' {
			continue
		}
		switch c := target[i+1]; {
		case c >= '1' && c <= '9':
			n = max(n, int(c-'0'))
		case c == '*':
			n = max(n, 1)
		}
	}
	return n
}

// splitArgs returns at most n space-delimited arguments of remainder.
func splitArgs(remainder string, n int) []string {
	if n == 0 {
		return nil
	}
	args := make([]string, 0, min(n, maxArgs))
	for _, f := range strings.Split(remainder, " ") {
		if f == "" {
			continue
		}
		if len(args) == n {
			break
		}
		args = append(args, f)
	}
	return args
}
