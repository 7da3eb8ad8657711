package button

import (
	"time"

	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/input/mouse"
	"github.com/dshills/ariabutton/internal/input/trigger"
	"github.com/dshills/ariabutton/internal/schedule"
)

// EventPress is the semantic event dispatched on the element for each press.
const EventPress dom.EventType = "buttonpress"

// Hold timing defaults.
const (
	HoldDelay    = 200 * time.Millisecond
	HoldInterval = 50 * time.Millisecond
)

// PressDetail is the Detail of an EventPress event.
type PressDetail struct {
	// Gesture is the gesture that fired the press; GestureNone for
	// programmatic presses.
	Gesture trigger.Gesture

	// Button is the mouse button for mouse gestures.
	Button mouse.Button

	// Count is the number of presses this button has signalled, including
	// this one.
	Count int

	// Repeat is true for presses fired by the hold timer.
	Repeat bool
}

// State is a snapshot of the interaction state.
type State struct {
	MousePressed bool
	MouseOver    bool
	KeyPressed   bool
	Forced       bool
	Holding      bool
}

// Down reports whether the button shows as pressed.
func (s State) Down() bool {
	return s.KeyPressed || s.Forced || (s.MousePressed && s.MouseOver)
}

type interaction struct {
	mousePressed bool
	mouseOver    bool
	keyPressed   bool
	// forced is set by StartPress and cleared by EndPress.
	forced bool

	holdDelay  schedule.Timer
	holdRepeat schedule.Timer
}

// State returns the current interaction state.
func (b *Button) State() State {
	return State{
		MousePressed: b.state.mousePressed,
		MouseOver:    b.state.mouseOver,
		KeyPressed:   b.state.keyPressed,
		Forced:       b.state.forced,
		Holding:      b.state.holdDelay != nil || b.state.holdRepeat != nil,
	}
}

// Presses returns how many presses the button has signalled.
func (b *Button) Presses() int {
	return b.presses
}

// Press signals a press programmatically. Disabled buttons ignore it.
func (b *Button) Press() {
	if b.destroyed || b.opts.Disabled {
		return
	}
	b.signal(trigger.GestureNone, mouse.ButtonNone, false)
}

// StartPress shows the button as pressed until EndPress, independent of
// the mouse and keyboard channels. Disabled buttons ignore it.
func (b *Button) StartPress() {
	if b.destroyed || b.opts.Disabled {
		return
	}
	b.state.forced = true
	b.refreshDown()
}

// EndPress releases every channel and cancels any hold in progress.
func (b *Button) EndPress() {
	if b.destroyed {
		return
	}
	b.state.forced = false
	b.state.mousePressed = false
	b.state.keyPressed = false
	b.cancelHold()
	b.refreshDown()
}

// signal dispatches EventPress on the element.
func (b *Button) signal(g trigger.Gesture, btn mouse.Button, repeat bool) {
	b.presses++
	b.log.Debug("press gesture=%s count=%d repeat=%v", g, b.presses, repeat)
	b.el.Dispatch(&dom.Event{
		Type: EventPress,
		Detail: PressDetail{
			Gesture: g,
			Button:  btn,
			Count:   b.presses,
			Repeat:  repeat,
		},
	})
}

func (b *Button) onMouseDown(ev *dom.Event) {
	if b.opts.Disabled || !b.MouseTriggersAny(ev.Button) {
		return
	}
	b.state.mousePressed = true
	// The pointer is necessarily over the element it went down on.
	if !b.state.mouseOver {
		b.state.mouseOver = true
		b.el.SwapClass(ClassOut, ClassOver)
	}
	b.refreshDown()

	if b.MouseTriggersEvent(ev.Button, trigger.GestureMouseHold) {
		b.startHold(ev.Button)
	}
	if b.MouseTriggersEvent(ev.Button, trigger.GestureMouseDown) {
		b.signal(trigger.GestureMouseDown, ev.Button, false)
	}
}

func (b *Button) onMouseUp(ev *dom.Event) {
	if b.opts.Disabled || !b.state.mousePressed {
		return
	}
	if b.MouseTriggersEvent(ev.Button, trigger.GestureMouseUp) {
		b.signal(trigger.GestureMouseUp, ev.Button, false)
	}
}

func (b *Button) onClick(ev *dom.Event) {
	if b.opts.Disabled {
		return
	}
	if b.MouseTriggersEvent(ev.Button, trigger.GestureClick) {
		b.signal(trigger.GestureClick, ev.Button, false)
	}
}

func (b *Button) onDoubleClick(ev *dom.Event) {
	if b.opts.Disabled {
		return
	}
	if b.MouseTriggersEvent(ev.Button, trigger.GestureDoubleClick) {
		b.signal(trigger.GestureDoubleClick, ev.Button, false)
	}
}

func (b *Button) onMouseEnter(*dom.Event) {
	b.state.mouseOver = true
	b.el.SwapClass(ClassOut, ClassOver)
	b.refreshDown()
}

func (b *Button) onMouseLeave(*dom.Event) {
	b.state.mouseOver = false
	b.el.SwapClass(ClassOver, ClassOut)
	b.refreshDown()
}

func (b *Button) onFocus(*dom.Event) {
	b.el.SwapClass(ClassBlur, ClassFocus)
}

func (b *Button) onBlur(*dom.Event) {
	b.el.SwapClass(ClassFocus, ClassBlur)
}

func (b *Button) onKeyDown(ev *dom.Event) {
	if b.opts.Disabled || !b.KeyTriggersAny(ev.Key) {
		return
	}
	b.state.keyPressed = true
	b.refreshDown()

	if b.KeyTriggersEvent(ev.Key, trigger.GestureKeyDown) {
		b.signal(trigger.GestureKeyDown, mouse.ButtonNone, false)
	}
}

func (b *Button) onKeyPress(ev *dom.Event) {
	if b.opts.Disabled {
		return
	}
	if b.KeyTriggersEvent(ev.Key, trigger.GestureKeyPress) {
		b.signal(trigger.GestureKeyPress, mouse.ButtonNone, false)
	}
}

func (b *Button) onKeyUp(ev *dom.Event) {
	if b.opts.Disabled || !b.state.keyPressed {
		return
	}
	if b.KeyTriggersEvent(ev.Key, trigger.GestureKeyUp) {
		b.signal(trigger.GestureKeyUp, mouse.ButtonNone, false)
	}
}

// releaseMouse handles a mouseup anywhere in the document.
func (b *Button) releaseMouse(*dom.Event) {
	b.state.mousePressed = false
	b.cancelHold()
	b.refreshDown()
}

// releaseKey handles a keyup anywhere in the document.
func (b *Button) releaseKey(*dom.Event) {
	b.state.keyPressed = false
	b.cancelHold()
	b.refreshDown()
}

// refreshDown puts the down or up class on the element to match the state.
func (b *Button) refreshDown() {
	if b.State().Down() {
		b.el.SwapClass(ClassUp, ClassDown)
	} else {
		b.el.SwapClass(ClassDown, ClassUp)
	}
}

func (b *Button) startHold(btn mouse.Button) {
	b.cancelHold()
	b.state.holdDelay = b.sched.AfterFunc(b.holdDelay, func() {
		b.state.holdDelay = nil
		if b.destroyed || !b.state.mousePressed {
			return
		}
		b.holdTick(btn)
		if b.destroyed || !b.state.mousePressed {
			return
		}
		b.state.holdRepeat = b.sched.Every(b.holdInterval, func() {
			b.holdTick(btn)
		})
	})
}

func (b *Button) holdTick(btn mouse.Button) {
	if b.destroyed || b.opts.Disabled || !b.state.mousePressed {
		return
	}
	if b.state.mouseOver {
		b.signal(trigger.GestureMouseHold, btn, true)
	}
}

// cancelHold stops both hold timers. Safe to call when none are running.
func (b *Button) cancelHold() {
	schedule.StopTimer(b.state.holdDelay)
	schedule.StopTimer(b.state.holdRepeat)
	b.state.holdDelay = nil
	b.state.holdRepeat = nil
}
