// Package term draws buttons on a terminal and turns terminal input into
// document events.
//
// A Renderer lays the document's elements out in rows and paints each one
// with the Theme style picked from its state classes. A Translator receives
// tcell mouse and key events, hit-tests them against the last Layout and
// dispatches the matching mousedown/mouseup/click/dblclick,
// mouseenter/mouseleave and keydown/keypress/keyup events.
//
// Terminals report no key releases, so each key event is translated into a
// keydown, keypress and keyup in that order.
package term
