package trigger

import "github.com/dshills/ariabutton/internal/input/mouse"

// Gesture is a physical input interaction type.
type Gesture uint8

const (
	GestureNone Gesture = iota
	GestureClick
	GestureDoubleClick
	GestureMouseDown
	GestureMouseHold
	GestureMouseUp
	GestureKeyDown
	GestureKeyPress
	GestureKeyUp
)

// String returns the gesture's trigger name ("click", "mousehold", ...).
func (g Gesture) String() string {
	switch g {
	case GestureClick:
		return "click"
	case GestureDoubleClick:
		return "doubleclick"
	case GestureMouseDown:
		return "mousedown"
	case GestureMouseHold:
		return "mousehold"
	case GestureMouseUp:
		return "mouseup"
	case GestureKeyDown:
		return "keydown"
	case GestureKeyPress:
		return "keypress"
	case GestureKeyUp:
		return "keyup"
	default:
		return "none"
	}
}

// IsMouse reports whether g is a mouse gesture.
func (g Gesture) IsMouse() bool {
	return g >= GestureClick && g <= GestureMouseUp
}

// IsKey reports whether g is a key gesture.
func (g Gesture) IsKey() bool {
	return g >= GestureKeyDown && g <= GestureKeyUp
}

// Generic returns the bit that matches g from any source.
func (g Gesture) Generic() Mask {
	switch g {
	case GestureClick:
		return Click
	case GestureDoubleClick:
		return DoubleClick
	case GestureMouseDown:
		return MouseDown
	case GestureMouseHold:
		return MouseHold
	case GestureMouseUp:
		return MouseUp
	case GestureKeyDown:
		return KeyDown
	case GestureKeyPress:
		return KeyPress
	case GestureKeyUp:
		return KeyUp
	default:
		return None
	}
}

// ForButton returns b's specific bit for mouse gesture g, composed the same
// way the names are ("left" + "click" is LeftClick). It returns None for key
// gestures and for buttons without their own bits.
func (g Gesture) ForButton(b mouse.Button) Mask {
	if !g.IsMouse() || !b.IsNamed() {
		return None
	}
	// Generic bits sit at 0-4; each named button is a block of five above.
	return g.Generic() << (5 * uint(b))
}
