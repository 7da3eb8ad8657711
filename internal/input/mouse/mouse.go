package mouse

import "time"

// Button represents a mouse button.
// The numeric values match the DOM "which" property.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonBack is the back navigation button (mouse button 4).
	ButtonBack
	// ButtonForward is the forward navigation button (mouse button 5).
	ButtonForward
)

// ButtonAll is the pseudo-button used to address gestures that match any
// button. It is never reported by a host.
const ButtonAll Button = 0xff

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	case ButtonAll:
		return "all"
	default:
		return "none"
	}
}

// IsNamed reports whether the button has its own trigger bits
// (left, middle or right).
func (b Button) IsNamed() bool {
	return b == ButtonLeft || b == ButtonMiddle || b == ButtonRight
}

// Buttons is the set of buttons held at one instant.
type Buttons uint8

// Of returns the mask bit for a single button.
func Of(b Button) Buttons {
	if b == ButtonNone || b > ButtonForward {
		return 0
	}
	return Buttons(1 << (b - 1))
}

// Has reports whether b is held.
func (bs Buttons) Has(b Button) bool {
	bit := Of(b)
	return bit != 0 && bs&bit != 0
}

// List returns the held buttons in ascending order.
func (bs Buttons) List() []Button {
	var out []Button
	for b := ButtonLeft; b <= ButtonForward; b++ {
		if bs.Has(b) {
			out = append(out, b)
		}
	}
	return out
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two positions.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Config configures click detection.
type Config struct {
	// DoubleClickTime is the maximum time between clicks for a double-click.
	DoubleClickTime time.Duration

	// DoubleClickDistance is the maximum distance between clicks for a double-click.
	DoubleClickDistance int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 4,
	}
}
