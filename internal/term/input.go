package term

import (
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ariabutton/internal/button"
	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/input/key"
	"github.com/dshills/ariabutton/internal/input/mouse"
)

// Translator dispatches document events for terminal input.
// It is not safe for concurrent use.
type Translator struct {
	doc    *dom.Document
	layout *Layout
	clicks *mouse.ClickCounter

	held   mouse.Buttons
	downOn map[mouse.Button]*dom.Element
	hover  *dom.Element
}

// NewTranslator creates a translator for doc.
func NewTranslator(doc *dom.Document, cfg mouse.Config) *Translator {
	return &Translator{
		doc:    doc,
		clicks: mouse.NewClickCounter(cfg),
		downOn: make(map[mouse.Button]*dom.Element),
	}
}

// SetLayout sets the layout used for hit testing.
func (t *Translator) SetLayout(l *Layout) {
	t.layout = l
}

// Hover returns the element under the pointer, if any.
func (t *Translator) Hover() *dom.Element {
	return t.hover
}

// tcell reports the full set of held buttons on every mouse event, so
// presses and releases are found by diffing against the previous set.
var buttonMap = []struct {
	tcell tcell.ButtonMask
	btn   mouse.Button
}{
	{tcell.ButtonPrimary, mouse.ButtonLeft},
	{tcell.ButtonMiddle, mouse.ButtonMiddle},
	{tcell.ButtonSecondary, mouse.ButtonRight},
}

func heldButtons(m tcell.ButtonMask) mouse.Buttons {
	var out mouse.Buttons
	for _, e := range buttonMap {
		if m&e.tcell != 0 {
			out |= mouse.Of(e.btn)
		}
	}
	return out
}

// Mouse translates a tcell mouse event.
func (t *Translator) Mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pos := mouse.Position{X: x, Y: y}
	when := ev.When()
	target := t.layout.At(x, y)

	if target != t.hover {
		if t.hover != nil {
			t.hover.Dispatch(&dom.Event{Type: dom.EventMouseLeave, Position: pos, Timestamp: when})
		}
		t.hover = target
		if target != nil {
			target.Dispatch(&dom.Event{Type: dom.EventMouseEnter, Position: pos, Timestamp: when})
		}
	}

	now := heldButtons(ev.Buttons())
	for _, e := range buttonMap {
		b := e.btn
		was, is := t.held.Has(b), now.Has(b)
		switch {
		case is && !was:
			t.press(b, target, pos, when)
		case was && !is:
			t.release(b, target, pos, when)
		}
	}
	t.held = now
}

func (t *Translator) press(b mouse.Button, target *dom.Element, pos mouse.Position, when time.Time) {
	t.downOn[b] = target
	if target != nil && focusable(target) {
		target.Focus()
	}
	t.dispatch(target, &dom.Event{Type: dom.EventMouseDown, Button: b, Position: pos, Timestamp: when})
}

func (t *Translator) release(b mouse.Button, target *dom.Element, pos mouse.Position, when time.Time) {
	origin := t.downOn[b]
	delete(t.downOn, b)
	t.dispatch(target, &dom.Event{Type: dom.EventMouseUp, Button: b, Position: pos, Timestamp: when})

	if target == nil || origin != target {
		return
	}
	target.Dispatch(&dom.Event{Type: dom.EventClick, Button: b, Position: pos, Timestamp: when})
	if t.clicks.Record(b, pos, when) == 2 {
		target.Dispatch(&dom.Event{Type: dom.EventDoubleClick, Button: b, Position: pos, Timestamp: when})
	}
}

// Key translates a tcell key event into keydown, keypress and keyup on the
// focused element. Tab and Backtab move focus instead. It reports whether
// the event was translated.
func (t *Translator) Key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyTab:
		t.FocusNext(false)
		return true
	case tcell.KeyBacktab:
		t.FocusNext(true)
		return true
	}

	code, ok := KeyCode(ev)
	if !ok {
		return false
	}
	target := t.doc.ActiveElement()
	when := ev.When()
	for _, typ := range []dom.EventType{dom.EventKeyDown, dom.EventKeyPress, dom.EventKeyUp} {
		t.dispatch(target, &dom.Event{Type: typ, Key: code, Timestamp: when})
	}
	return true
}

// FocusNext moves focus to the next focusable element in layout order,
// wrapping around. With reverse it moves backwards.
func (t *Translator) FocusNext(reverse bool) {
	els := t.layout.Elements()
	var candidates []*dom.Element
	for _, el := range els {
		if focusable(el) {
			candidates = append(candidates, el)
		}
	}
	if len(candidates) == 0 {
		return
	}

	idx := -1
	active := t.doc.ActiveElement()
	for i, el := range candidates {
		if el == active {
			idx = i
			break
		}
	}

	var next int
	switch {
	case idx < 0 && reverse:
		next = len(candidates) - 1
	case idx < 0:
		next = 0
	case reverse:
		next = (idx - 1 + len(candidates)) % len(candidates)
	default:
		next = (idx + 1) % len(candidates)
	}
	candidates[next].Focus()
}

// Reset releases held buttons on the document and clears hover, for use
// when the terminal loses focus or the layout is replaced.
func (t *Translator) Reset() {
	for _, e := range buttonMap {
		if t.held.Has(e.btn) {
			t.doc.Dispatch(&dom.Event{Type: dom.EventMouseUp, Button: e.btn})
		}
	}
	t.held = 0
	clear(t.downOn)
	if t.hover != nil {
		t.hover.Fire(dom.EventMouseLeave)
		t.hover = nil
	}
	t.clicks.Reset()
}

func (t *Translator) dispatch(target *dom.Element, ev *dom.Event) {
	if target != nil {
		target.Dispatch(ev)
		return
	}
	t.doc.Dispatch(ev)
}

// focusable reports whether el takes focus: its tabindex is not negative.
func focusable(el *dom.Element) bool {
	v, ok := el.Attr(button.AttrTabIndex)
	if !ok {
		return false
	}
	n, err := strconv.Atoi(v)
	return err == nil && n >= 0
}

var tcellKeys = map[tcell.Key]key.Code{
	tcell.KeyEnter:      key.CodeEnter,
	tcell.KeyEscape:     key.CodeEscape,
	tcell.KeyBackspace:  key.CodeBackspace,
	tcell.KeyBackspace2: key.CodeBackspace,
	tcell.KeyDelete:     key.CodeDelete,
	tcell.KeyInsert:     key.CodeInsert,
	tcell.KeyHome:       key.CodeHome,
	tcell.KeyEnd:        key.CodeEnd,
	tcell.KeyPgUp:       key.CodePageUp,
	tcell.KeyPgDn:       key.CodePageDown,
	tcell.KeyUp:         key.CodeUp,
	tcell.KeyDown:       key.CodeDown,
	tcell.KeyLeft:       key.CodeLeft,
	tcell.KeyRight:      key.CodeRight,
	tcell.KeyPause:      key.CodePause,
}

// KeyCode returns the DOM key code for a tcell key event.
func KeyCode(ev *tcell.EventKey) (key.Code, bool) {
	k := ev.Key()
	if k == tcell.KeyRune {
		return key.FromRune(ev.Rune()), true
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.CodeF1 + key.Code(k-tcell.KeyF1), true
	}
	code, ok := tcellKeys[k]
	return code, ok
}
