package dom

import (
	"time"

	"github.com/dshills/ariabutton/internal/input/key"
	"github.com/dshills/ariabutton/internal/input/mouse"
)

// EventType names a DOM event.
type EventType string

// Event types understood by the document.
const (
	EventClick       EventType = "click"
	EventDoubleClick EventType = "dblclick"
	EventMouseDown   EventType = "mousedown"
	EventMouseUp     EventType = "mouseup"
	EventMouseEnter  EventType = "mouseenter"
	EventMouseLeave  EventType = "mouseleave"
	EventFocus       EventType = "focus"
	EventBlur        EventType = "blur"
	EventKeyDown     EventType = "keydown"
	EventKeyPress    EventType = "keypress"
	EventKeyUp       EventType = "keyup"
)

// Bubbles reports whether events of this type propagate from the target
// element to the document. Enter, leave, focus and blur do not; custom
// types do.
func (t EventType) Bubbles() bool {
	switch t {
	case EventMouseEnter, EventMouseLeave, EventFocus, EventBlur:
		return false
	default:
		return true
	}
}

// IsMouse reports whether t carries a mouse button.
func (t EventType) IsMouse() bool {
	switch t {
	case EventClick, EventDoubleClick, EventMouseDown, EventMouseUp:
		return true
	default:
		return false
	}
}

// IsKey reports whether t carries a key code.
func (t EventType) IsKey() bool {
	return t == EventKeyDown || t == EventKeyPress || t == EventKeyUp
}

// Event is a dispatched event.
type Event struct {
	// Type is the event type.
	Type EventType

	// Target is the element the event was dispatched on.
	// It is nil for events dispatched directly on the document.
	Target *Element

	// CurrentTarget is the element whose listeners are running,
	// or nil while document listeners run.
	CurrentTarget *Element

	// Button is the mouse button for mouse events (1 left, 2 middle, 3 right).
	Button mouse.Button

	// Key is the key code for keyboard events.
	Key key.Code

	// Position is the pointer position for mouse events.
	Position mouse.Position

	// Detail carries type-specific data for custom events.
	Detail any

	// Timestamp is when the event occurred.
	Timestamp time.Time

	stopped bool
}

// StopPropagation prevents the event from reaching the document.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// Listener handles an event.
type Listener func(*Event)
