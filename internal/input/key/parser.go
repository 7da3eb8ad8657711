package key

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse errors
var (
	ErrInvalidKey  = errors.New("invalid key")
	ErrInvalidSpec = errors.New("invalid key set specification")
)

// ParseCode parses a single token: a decimal code ("13") or a code name
// ("Enter").
func ParseCode(token string) (Code, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return CodeNone, fmt.Errorf("%w: empty token", ErrInvalidKey)
	}
	if n, err := strconv.Atoi(token); err == nil {
		if n < 0 {
			return CodeNone, fmt.Errorf("%w: negative code %d", ErrInvalidKey, n)
		}
		return Code(n), nil
	}
	if c, ok := Lookup(token); ok {
		return c, nil
	}
	return CodeNone, fmt.Errorf("%w: %q", ErrInvalidKey, token)
}

// ParseSet builds a Set from a dynamic specification.
//
// Supported inputs:
//   - string: space-delimited tokens, "13 32" or "enter space"
//   - integer and float kinds: a single code
//   - Code, []Code, []int, []int64, []string, []any
//   - Set: returned as is
//   - nil: the empty set
func ParseSet(v any) (Set, error) {
	switch val := v.(type) {
	case nil:
		return Set{}, nil
	case Set:
		return val, nil
	case string:
		return parseTokens(strings.Fields(val))
	case []string:
		return parseTokens(val)
	case Code:
		return NewSet(val), nil
	case []Code:
		return NewSet(val...), nil
	case []int:
		codes := make([]Code, 0, len(val))
		for _, n := range val {
			c, err := intCode(int64(n))
			if err != nil {
				return Set{}, err
			}
			codes = append(codes, c)
		}
		return NewSet(codes...), nil
	case []int64:
		codes := make([]Code, 0, len(val))
		for _, n := range val {
			c, err := intCode(n)
			if err != nil {
				return Set{}, err
			}
			codes = append(codes, c)
		}
		return NewSet(codes...), nil
	case []any:
		codes := make([]Code, 0, len(val))
		for _, item := range val {
			c, err := anyCode(item)
			if err != nil {
				return Set{}, err
			}
			codes = append(codes, c)
		}
		return NewSet(codes...), nil
	default:
		c, err := anyCode(v)
		if err != nil {
			return Set{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidSpec, v)
		}
		return NewSet(c), nil
	}
}

func parseTokens(tokens []string) (Set, error) {
	codes := make([]Code, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		c, err := ParseCode(tok)
		if err != nil {
			return Set{}, err
		}
		codes = append(codes, c)
	}
	return NewSet(codes...), nil
}

func anyCode(v any) (Code, error) {
	switch n := v.(type) {
	case Code:
		return n, nil
	case int:
		return intCode(int64(n))
	case int32:
		return intCode(int64(n))
	case int64:
		return intCode(n)
	case uint8:
		return Code(n), nil
	case uint16:
		return Code(n), nil
	case uint32:
		return intCode(int64(n))
	case float64:
		if n != math.Trunc(n) {
			return CodeNone, fmt.Errorf("%w: non-integer code %v", ErrInvalidKey, n)
		}
		return intCode(int64(n))
	case string:
		return ParseCode(n)
	default:
		return CodeNone, fmt.Errorf("%w: unsupported type %T", ErrInvalidKey, v)
	}
}

func intCode(n int64) (Code, error) {
	if n < 0 || n > math.MaxInt32 {
		return CodeNone, fmt.Errorf("%w: code %d out of range", ErrInvalidKey, n)
	}
	return Code(n), nil
}
