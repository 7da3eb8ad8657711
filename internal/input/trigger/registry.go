package trigger

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/ariabutton/internal/input/mouse"
)

// ErrInvalidTrigger is returned when a trigger specification cannot be parsed.
var ErrInvalidTrigger = errors.New("invalid trigger")

// KeyTriggers is every key gesture bit.
const KeyTriggers = KeyDown | KeyPress | KeyUp

// Pre-combined per-button masks.
const (
	allMouse    = Click | DoubleClick | MouseDown | MouseHold | MouseUp
	leftMouse   = LeftClick | LeftDoubleClick | LeftMouseDown | LeftMouseHold | LeftMouseUp
	middleMouse = MiddleClick | MiddleDoubleClick | MiddleMouseDown | MiddleMouseHold | MiddleMouseUp
	rightMouse  = RightClick | RightDoubleClick | RightMouseDown | RightMouseHold | RightMouseUp

	all = allMouse | leftMouse | middleMouse | rightMouse | KeyTriggers
)

// Default is the trigger mask a new button starts with.
const Default = Click | KeyPress

// MouseTriggers returns the OR of the five gesture bits for b.
// mouse.ButtonAll yields the generic bits; unnamed buttons yield None.
func MouseTriggers(b mouse.Button) Mask {
	switch b {
	case mouse.ButtonAll:
		return allMouse
	case mouse.ButtonLeft:
		return leftMouse
	case mouse.ButtonMiddle:
		return middleMouse
	case mouse.ButtonRight:
		return rightMouse
	default:
		return None
	}
}

type entry struct {
	name string
	mask Mask
}

// table lists every named bit in bit order.
var table = []entry{
	{"click", Click},
	{"doubleclick", DoubleClick},
	{"mousedown", MouseDown},
	{"mousehold", MouseHold},
	{"mouseup", MouseUp},
	{"leftclick", LeftClick},
	{"leftdoubleclick", LeftDoubleClick},
	{"leftmousedown", LeftMouseDown},
	{"leftmousehold", LeftMouseHold},
	{"leftmouseup", LeftMouseUp},
	{"middleclick", MiddleClick},
	{"middledoubleclick", MiddleDoubleClick},
	{"middlemousedown", MiddleMouseDown},
	{"middlemousehold", MiddleMouseHold},
	{"middlemouseup", MiddleMouseUp},
	{"rightclick", RightClick},
	{"rightdoubleclick", RightDoubleClick},
	{"rightmousedown", RightMouseDown},
	{"rightmousehold", RightMouseHold},
	{"rightmouseup", RightMouseUp},
	{"keydown", KeyDown},
	{"keypress", KeyPress},
	{"keyup", KeyUp},
}

var byName = func() map[string]Mask {
	m := make(map[string]Mask, len(table)+1)
	for _, e := range table {
		m[e.name] = e.mask
	}
	m["none"] = None
	return m
}()

// Lookup returns the bit for a trigger name. Names are case-insensitive.
func Lookup(name string) (Mask, bool) {
	m, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// Names returns every trigger name in bit order.
func Names() []string {
	names := make([]string, len(table))
	for i, e := range table {
		names[i] = e.name
	}
	return names
}

// ParseMask builds a Mask from a dynamic specification: an integer, a string
// of names separated by spaces, '|' or ',', or a list of names and integers.
func ParseMask(v any) (Mask, error) {
	switch val := v.(type) {
	case nil:
		return None, nil
	case Mask:
		return val, nil
	case string:
		return parseNames(val)
	case []string:
		var m Mask
		for _, s := range val {
			part, err := parseNames(s)
			if err != nil {
				return None, err
			}
			m |= part
		}
		return m, nil
	case []any:
		var m Mask
		for _, item := range val {
			part, err := ParseMask(item)
			if err != nil {
				return None, err
			}
			m |= part
		}
		return m, nil
	case int:
		return fromInt(int64(val))
	case int32:
		return fromInt(int64(val))
	case int64:
		return fromInt(val)
	case uint32:
		return fromInt(int64(val))
	case float64:
		if val != math.Trunc(val) {
			return None, fmt.Errorf("%w: non-integer mask %v", ErrInvalidTrigger, val)
		}
		return fromInt(int64(val))
	default:
		return None, fmt.Errorf("%w: unsupported type %T", ErrInvalidTrigger, v)
	}
}

func parseNames(s string) (Mask, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '|' || r == ','
	})
	var m Mask
	for _, f := range fields {
		if n, err := strconv.ParseInt(f, 0, 64); err == nil {
			part, err := fromInt(n)
			if err != nil {
				return None, err
			}
			m |= part
			continue
		}
		part, ok := Lookup(f)
		if !ok {
			return None, fmt.Errorf("%w: unknown name %q", ErrInvalidTrigger, f)
		}
		m |= part
	}
	return m, nil
}

func fromInt(n int64) (Mask, error) {
	if n < 0 || n > math.MaxUint32 {
		return None, fmt.Errorf("%w: mask %d out of range", ErrInvalidTrigger, n)
	}
	return Mask(n), nil
}
