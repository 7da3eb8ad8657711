package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jmespath/go-jmespath"
	"gopkg.in/yaml.v3"
)

// ErrInvalidQuery is returned for a JMESPath expression that does not
// compile or cannot be evaluated.
var ErrInvalidQuery = errors.New("invalid query")

// Query evaluates a JMESPath expression against a raw configuration, as
// returned by Raw. Numbers are compared as floats and durations as their
// string form, so `button[?tabindex > `0`].id` works on any layer.
func Query(raw map[string]any, expr string) (any, error) {
	jp, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidQuery, expr, err)
	}
	result, err := jp.Search(plain(raw, true))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidQuery, expr, err)
	}
	return result, nil
}

// Dump writes v as YAML.
func Dump(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plain(v, false)); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// plain copies a raw tree into JSON-like values: durations become strings
// and, when floats is set, integers become float64.
func plain(v any, floats bool) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = plain(item, floats)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item, floats)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item, floats)
		}
		return out
	case time.Duration:
		return val.String()
	case int:
		if floats {
			return float64(val)
		}
	case int64:
		if floats {
			return float64(val)
		}
	}
	return v
}
