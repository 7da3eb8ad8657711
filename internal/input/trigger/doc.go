// Package trigger defines the vocabulary that maps physical input gestures
// to a widget's semantic "press".
//
// Each bit of a Mask names one (source, gesture) pair. Generic mouse bits
// (Click, MouseDown, ...) match any button; button-specific bits
// (LeftClick, RightMouseUp, ...) match only that button. Key bits (KeyDown,
// KeyPress, KeyUp) apply to every key in the widget's key set.
//
// The bit values are fixed and part of the configuration surface: a mask
// stored as an integer in a config file keeps its meaning across releases.
//
//	m := trigger.Click | trigger.KeyPress
//	m.MouseFires(mouse.ButtonLeft, trigger.GestureClick) // true
//	m.MouseFires(mouse.ButtonLeft, trigger.GestureMouseUp) // false
package trigger
