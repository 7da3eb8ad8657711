package dom

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateID is returned when an element id is already in use.
var ErrDuplicateID = errors.New("duplicate element id")

// Document owns elements and document-level listeners.
type Document struct {
	elements  map[string]*Element
	order     []*Element
	listeners *listenerSet
	active    *Element
	clock     func() time.Time
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithClock sets the time source used to stamp events.
func WithClock(now func() time.Time) DocumentOption {
	return func(d *Document) {
		d.clock = now
	}
}

// NewDocument creates an empty document.
func NewDocument(opts ...DocumentOption) *Document {
	d := &Document{
		elements:  make(map[string]*Element),
		listeners: newListenerSet(),
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateElement adds a new element with the given id.
func (d *Document) CreateElement(id string) (*Element, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrDuplicateID)
	}
	if _, exists := d.elements[id]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	el := &Element{
		id:        id,
		doc:       d,
		attrs:     make(map[string]string),
		data:      make(map[string]any),
		listeners: newListenerSet(),
	}
	d.elements[id] = el
	d.order = append(d.order, el)
	return el, nil
}

// MustCreateElement is CreateElement for ids known to be unique.
func (d *Document) MustCreateElement(id string) *Element {
	el, err := d.CreateElement(id)
	if err != nil {
		panic(err)
	}
	return el
}

// Element returns the element with the given id.
func (d *Document) Element(id string) (*Element, bool) {
	el, ok := d.elements[id]
	return el, ok
}

// Elements returns all elements in creation order.
func (d *Document) Elements() []*Element {
	out := make([]*Element, len(d.order))
	copy(out, d.order)
	return out
}

// Listen registers fn for events of type t reaching the document.
func (d *Document) Listen(t EventType, fn Listener) Subscription {
	return d.listeners.add(t, fn)
}

// ListenerCount returns the number of document listeners for t.
func (d *Document) ListenerCount(t EventType) int {
	return d.listeners.count(t)
}

// Dispatch runs ev on the document only, with no target element.
func (d *Document) Dispatch(ev *Event) {
	ev.Target = nil
	ev.CurrentTarget = nil
	if ev.Timestamp.IsZero() {
		ev.Timestamp = d.now()
	}
	d.listeners.run(ev)
}

// ActiveElement returns the focused element, if any.
func (d *Document) ActiveElement() *Element {
	return d.active
}

// Focus moves focus to el, dispatching blur on the previous element and
// focus on el. Focusing the active element is a no-op.
func (d *Document) Focus(el *Element) {
	if el == nil {
		d.Blur()
		return
	}
	if el.doc != d || d.active == el {
		return
	}
	prev := d.active
	d.active = el
	if prev != nil {
		prev.Fire(EventBlur)
	}
	el.Fire(EventFocus)
}

// Blur clears focus, dispatching blur on the element that had it.
func (d *Document) Blur() {
	prev := d.active
	if prev == nil {
		return
	}
	d.active = nil
	prev.Fire(EventBlur)
}

func (d *Document) now() time.Time {
	return d.clock()
}
