package trigger

import (
	"strconv"
	"strings"

	"github.com/dshills/ariabutton/internal/input/mouse"
)

// Mask is a set of (source, gesture) trigger bits.
type Mask uint32

// Trigger bits. The layout is fixed: generic mouse gestures occupy bits
// 0-4, left 5-9, middle 10-14, right 15-19 and key gestures 20-22.
const (
	None Mask = 0

	Click Mask = 1 << (iota - 1)
	DoubleClick
	MouseDown
	MouseHold
	MouseUp

	LeftClick
	LeftDoubleClick
	LeftMouseDown
	LeftMouseHold
	LeftMouseUp

	MiddleClick
	MiddleDoubleClick
	MiddleMouseDown
	MiddleMouseHold
	MiddleMouseUp

	RightClick
	RightDoubleClick
	RightMouseDown
	RightMouseHold
	RightMouseUp

	KeyDown
	KeyPress
	KeyUp
)

// Has reports whether every bit of other is set in m.
func (m Mask) Has(other Mask) bool {
	return other != None && m&other == other
}

// Any reports whether m and other share at least one bit.
func (m Mask) Any(other Mask) bool {
	return m&other != 0
}

// With returns m with the bits of other set.
func (m Mask) With(other Mask) Mask {
	return m | other
}

// Without returns m with the bits of other cleared.
func (m Mask) Without(other Mask) Mask {
	return m &^ other
}

// MouseEnabled reports whether the mask enables any gesture at all for
// button b: either a generic mouse bit or one of b's own bits.
func (m Mask) MouseEnabled(b mouse.Button) bool {
	return m.Any(MouseTriggers(mouse.ButtonAll)) || m.Any(MouseTriggers(b))
}

// MouseFires reports whether gesture g performed with button b fires a
// press: the generic bit for g is set, or b's specific bit for g is set.
// Buttons other than left, middle and right only match generic bits.
func (m Mask) MouseFires(b mouse.Button, g Gesture) bool {
	if !g.IsMouse() {
		return false
	}
	return m.Any(g.Generic()) || m.Any(g.ForButton(b))
}

// KeyEnabled reports whether any key gesture is enabled.
func (m Mask) KeyEnabled() bool {
	return m.Any(KeyTriggers)
}

// KeyFires reports whether key gesture g fires a press.
func (m Mask) KeyFires(g Gesture) bool {
	if !g.IsKey() {
		return false
	}
	return m.Any(g.Generic())
}

// String returns the space-separated names of the set bits in bit order,
// or "none".
func (m Mask) String() string {
	if m == None {
		return "none"
	}
	var names []string
	for _, e := range table {
		if m&e.mask != 0 {
			names = append(names, e.name)
		}
	}
	if rest := m &^ all; rest != 0 {
		names = append(names, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(names, " ")
}

