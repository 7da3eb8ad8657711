package key

import (
	"sort"
	"strconv"
	"strings"
)

// Set is an immutable set of key codes.
// The zero value is an empty set that matches nothing.
type Set struct {
	codes map[Code]struct{}
}

// NewSet builds a set from codes. Duplicates collapse.
func NewSet(codes ...Code) Set {
	if len(codes) == 0 {
		return Set{}
	}
	m := make(map[Code]struct{}, len(codes))
	for _, c := range codes {
		m[c] = struct{}{}
	}
	return Set{codes: m}
}

// DefaultSet returns the keys that activate a button by default: Enter and Space.
func DefaultSet() Set {
	return NewSet(CodeEnter, CodeSpace)
}

// Contains reports whether c is in the set.
func (s Set) Contains(c Code) bool {
	_, ok := s.codes[c]
	return ok
}

// Len returns the number of codes in the set.
func (s Set) Len() int {
	return len(s.codes)
}

// IsEmpty reports whether the set has no codes.
func (s Set) IsEmpty() bool {
	return len(s.codes) == 0
}

// Codes returns the codes in ascending order.
func (s Set) Codes() []Code {
	out := make([]Code, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Equal reports whether two sets hold the same codes.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for c := range s.codes {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// String returns the space-delimited numeric form, e.g. "13 32".
func (s Set) String() string {
	codes := s.Codes()
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(int(c))
	}
	return strings.Join(parts, " ")
}
