// Package mouse provides pointer primitives shared by the widget and the
// terminal host.
//
// Button identifiers follow the DOM "which" numbering: 1 is the left
// (primary) button, 2 the middle button and 3 the right button. Buttons is a
// bitmask of buttons held at one instant, which is how terminals report
// pointer state.
//
// ClickCounter turns a stream of completed clicks into click counts so a
// host that only sees press and release samples can synthesize "click" and
// "dblclick" gestures.
//
// # Usage
//
//	counter := mouse.NewClickCounter(mouse.DefaultConfig())
//	if counter.Record(pos, time.Now()) == 2 {
//	    // double click
//	}
package mouse
