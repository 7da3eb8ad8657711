package key

import (
	"sort"
	"strconv"
	"strings"
)

// Code is a numeric key code as reported by DOM keyboard events.
type Code int

// Well-known key codes.
const (
	CodeNone      Code = 0
	CodeBackspace Code = 8
	CodeTab       Code = 9
	CodeEnter     Code = 13
	CodeShift     Code = 16
	CodeCtrl      Code = 17
	CodeAlt       Code = 18
	CodePause     Code = 19
	CodeCapsLock  Code = 20
	CodeEscape    Code = 27
	CodeSpace     Code = 32
	CodePageUp    Code = 33
	CodePageDown  Code = 34
	CodeEnd       Code = 35
	CodeHome      Code = 36
	CodeLeft      Code = 37
	CodeUp        Code = 38
	CodeRight     Code = 39
	CodeDown      Code = 40
	CodeInsert    Code = 45
	CodeDelete    Code = 46
	CodeF1        Code = 112
	CodeF12       Code = 123
)

var codeNames = map[Code]string{
	CodeBackspace: "Backspace",
	CodeTab:       "Tab",
	CodeEnter:     "Enter",
	CodeShift:     "Shift",
	CodeCtrl:      "Ctrl",
	CodeAlt:       "Alt",
	CodePause:     "Pause",
	CodeCapsLock:  "CapsLock",
	CodeEscape:    "Escape",
	CodeSpace:     "Space",
	CodePageUp:    "PageUp",
	CodePageDown:  "PageDown",
	CodeEnd:       "End",
	CodeHome:      "Home",
	CodeLeft:      "Left",
	CodeUp:        "Up",
	CodeRight:     "Right",
	CodeDown:      "Down",
	CodeInsert:    "Insert",
	CodeDelete:    "Delete",
}

// aliases maps lower-case names to codes. Built from codeNames plus the
// common spellings found in keymap files.
var aliases = func() map[string]Code {
	m := make(map[string]Code, len(codeNames)+8)
	for c, n := range codeNames {
		m[strings.ToLower(n)] = c
	}
	m["return"] = CodeEnter
	m["cr"] = CodeEnter
	m["esc"] = CodeEscape
	m["bs"] = CodeBackspace
	m["del"] = CodeDelete
	m["control"] = CodeCtrl
	return m
}()

// String returns a human-readable name for the code.
func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	if c >= CodeF1 && c <= CodeF12 {
		return "F" + strconv.Itoa(int(c-CodeF1)+1)
	}
	if c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return string(rune(c))
	}
	return strconv.Itoa(int(c))
}

// Named returns the codes that have a name, F1-F12 included, in ascending
// order.
func Named() []Code {
	codes := make([]Code, 0, len(codeNames)+12)
	for c := range codeNames {
		codes = append(codes, c)
	}
	for c := CodeF1; c <= CodeF12; c++ {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Lookup resolves a code name (case-insensitive) such as "enter" or "F5".
func Lookup(name string) (Code, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if c, ok := aliases[lower]; ok {
		return c, true
	}
	if len(lower) >= 2 && lower[0] == 'f' {
		if n, err := strconv.Atoi(lower[1:]); err == nil && n >= 1 && n <= 12 {
			return CodeF1 + Code(n-1), true
		}
	}
	return CodeNone, false
}

// FromRune returns the keydown code for a printable character.
// Letters map to their upper-case code and digits to their ASCII value.
func FromRune(r rune) Code {
	switch {
	case r >= 'a' && r <= 'z':
		return Code(r - 'a' + 'A')
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return Code(r)
	case r == ' ':
		return CodeSpace
	case r == '\r', r == '\n':
		return CodeEnter
	case r == '\t':
		return CodeTab
	}
	return Code(r)
}
