package loader

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix is the prefix of environment variables read by default.
const DefaultEnvPrefix = "ARIABUTTON_"

// EnvLoader builds a configuration map from prefixed environment variables.
//
// Mapped variables go to their configured path. Any other prefixed variable
// maps by splitting its remainder on underscores once: the first part is
// the section and the rest, lowercased and joined, the key, so
// ARIABUTTON_DEFAULTS_TABINDEX sets defaults.tabindex.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// EnvOption configures an EnvLoader.
type EnvOption func(*EnvLoader)

// WithMapping adds explicit variable to path mappings.
func WithMapping(m map[string]string) EnvOption {
	return func(l *EnvLoader) {
		for k, v := range m {
			l.mapping[k] = v
		}
	}
}

// WithEnviron replaces os.Environ as the variable source.
func WithEnviron(environ func() []string) EnvOption {
	return func(l *EnvLoader) {
		if environ != nil {
			l.environ = environ
		}
	}
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix should include its trailing underscore.
func NewEnvLoader(prefix string, opts ...EnvOption) *EnvLoader {
	l := &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":     "logging.level",
		prefix + "HOLD_DELAY":    "hold.delay",
		prefix + "HOLD_INTERVAL": "hold.interval",
	}
}

// Load reads the environment. Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	vars := l.environ()
	sort.Strings(vars)
	for _, kv := range vars {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts PREFIX_SECTION_KEY_PARTS to section.keyparts.
func (l *EnvLoader) envToPath(name string) string {
	rest := strings.ToLower(strings.TrimPrefix(name, l.prefix))
	section, key, ok := strings.Cut(rest, "_")
	if !ok {
		return rest
	}
	key = strings.ReplaceAll(key, "_", "")
	if section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// parseValue converts a variable's text to the most specific type: bool,
// integer, float, duration, JSON array or object, else string. Bare 0 and 1
// stay integers.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) && gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}
	return s
}

// setByPath stores value under a dot-separated path, creating or
// replacing intermediate maps.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
