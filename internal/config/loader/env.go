package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from prefixed environment variables.
//
// KEYLINE_HISTORY_NO_DUPLICATES=yes becomes history.no_duplicates = true:
// the first word after the prefix names the section and the rest, joined
// with underscores, names the key.
type EnvLoader struct {
	prefix   string
	environ  func() []string
	template map[string]any
}

// NewEnvLoader creates an environment loader. The prefix should include
// the trailing underscore (e.g., "KEYLINE_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, environ: os.Environ}
}

// WithTemplate types values after an existing configuration tree. A
// variable whose path holds a string in the template stays a string even
// when it looks like a number.
func (l *EnvLoader) WithTemplate(template map[string]any) *EnvLoader {
	l.template = template
	return l
}

// WithEnviron replaces the environment source.
func (l *EnvLoader) WithEnviron(environ func() []string) *EnvLoader {
	l.environ = environ
	return l
}

// Load returns the configuration set by the environment.
// Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		section, key, ok := l.envToPath(name)
		if !ok {
			continue
		}
		sec, _ := config[section].(map[string]any)
		if sec == nil {
			sec = make(map[string]any)
			config[section] = sec
		}
		sec[key] = l.convert(section, key, value)
	}
	return config, nil
}

// envToPath splits KEYLINE_EDITOR_BUFFER_SIZE into editor and buffer_size.
func (l *EnvLoader) envToPath(env string) (section, key string, ok bool) {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok = strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return "", "", false
	}
	return section, key, true
}

func (l *EnvLoader) convert(section, key, value string) any {
	if sec, ok := l.template[section].(map[string]any); ok {
		switch sec[key].(type) {
		case string:
			return value
		case bool:
			if b, ok := parseBool(value); ok {
				return b
			}
			return value
		case int64, int:
			if i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
				return i
			}
			return value
		}
	}
	return parseValue(value)
}

// parseValue guesses the type of an untemplated value.
func parseValue(s string) any {
	if b, ok := parseBool(s); ok {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	}
	return false, false
}

// ExpandPath expands environment variables and a leading ~/ in a path.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return path
}
