package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into a Binding.
//
// Supported formats:
//   - Single character: "a", "1", "@"
//   - Special keys: "Enter", "Escape", "F7", "Space"
//   - With modifiers: "Ctrl+Home", "Alt+F10"
//   - Vim-style: "<C-w>", "<A-F7>", "<Esc>"
func Parse(spec string) (Binding, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Binding{}, ErrEmptySpec
	}

	sep := "+"
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		spec = spec[1 : len(spec)-1]
		sep = "-"
	}
	if spec == "" {
		return Binding{}, ErrInvalidSpec
	}

	parts := strings.Split(spec, sep)
	// "Ctrl++" and "<C-->" name the separator itself.
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = append(parts[:len(parts)-2], sep)
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(strings.TrimSpace(p))
		if mod == ModNone {
			return Binding{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods |= mod
	}

	return parseKey(strings.TrimSpace(parts[len(parts)-1]), mods)
}

// parseKey parses the key part with already-known modifiers.
func parseKey(keyPart string, mods Modifier) (Binding, error) {
	if keyPart == "" {
		return Binding{}, ErrInvalidSpec
	}
	if strings.EqualFold(keyPart, "space") {
		return Binding{Key: KeyRune, Rune: ' ', Modifiers: mods &^ ModShift}, nil
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return Binding{Key: k, Modifiers: mods}, nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		return Binding{Key: KeyRune, Rune: unicode.ToLower(runes[0]), Modifiers: mods &^ ModShift}, nil
	}

	return Binding{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Binding {
	b, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return b
}
