package dom

import (
	"sort"
	"strings"
	"time"
)

// Element is a node that widgets bind to.
type Element struct {
	id        string
	doc       *Document
	attrs     map[string]string
	classes   []string
	data      map[string]any
	listeners *listenerSet
}

// ID returns the element identifier.
func (e *Element) ID() string {
	return e.id
}

// Document returns the owning document.
func (e *Element) Document() *Document {
	return e.doc
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(name, value string) {
	e.attrs[name] = value
}

// RemoveAttr removes an attribute. Removing an absent attribute is a no-op.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// Attrs returns a copy of all attributes.
func (e *Element) Attrs() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass appends classes not already present.
func (e *Element) AddClass(names ...string) {
	for _, n := range names {
		if n != "" && !e.HasClass(n) {
			e.classes = append(e.classes, n)
		}
	}
}

// RemoveClass removes classes. Absent names are ignored.
func (e *Element) RemoveClass(names ...string) {
	if len(names) == 0 || len(e.classes) == 0 {
		return
	}
	kept := e.classes[:0]
	for _, c := range e.classes {
		drop := false
		for _, n := range names {
			if c == n {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, c)
		}
	}
	e.classes = kept
}

// SwapClass removes from and adds to in one step.
func (e *Element) SwapClass(from, to string) {
	e.RemoveClass(from)
	e.AddClass(to)
}

// Classes returns a copy of the class list in insertion order.
func (e *Element) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// ClassName returns the class list as a space-separated string.
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

// Data returns a value stored under key.
func (e *Element) Data(key string) (any, bool) {
	v, ok := e.data[key]
	return v, ok
}

// SetData stores a value under key.
func (e *Element) SetData(key string, value any) {
	e.data[key] = value
}

// RemoveData deletes the value stored under key.
func (e *Element) RemoveData(key string) {
	delete(e.data, key)
}

// DataKeys returns the stored data keys in sorted order.
func (e *Element) DataKeys() []string {
	keys := make([]string, 0, len(e.data))
	for k := range e.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Listen registers fn for events of type t dispatched on this element.
func (e *Element) Listen(t EventType, fn Listener) Subscription {
	return e.listeners.add(t, fn)
}

// ListenerCount returns the number of listeners for t.
func (e *Element) ListenerCount(t EventType) int {
	return e.listeners.count(t)
}

// TotalListeners returns the number of listeners across all types.
func (e *Element) TotalListeners() int {
	return e.listeners.total()
}

// Dispatch runs ev on this element and bubbles it to the document when the
// type bubbles and propagation was not stopped. Target and Timestamp are
// filled in when unset.
func (e *Element) Dispatch(ev *Event) {
	ev.Target = e
	if ev.Timestamp.IsZero() {
		ev.Timestamp = e.doc.now()
	}

	ev.CurrentTarget = e
	e.listeners.run(ev)

	if ev.Type.Bubbles() && !ev.stopped {
		ev.CurrentTarget = nil
		e.doc.listeners.run(ev)
	}
}

// Focused reports whether the element is the document's active element.
func (e *Element) Focused() bool {
	return e.doc.active == e
}

// Focus makes this element the active element.
func (e *Element) Focus() {
	e.doc.Focus(e)
}

// Blur removes focus from this element if it has it.
func (e *Element) Blur() {
	if e.Focused() {
		e.doc.Blur()
	}
}

// Fire is shorthand for dispatching a bare event of type t.
func (e *Element) Fire(t EventType) {
	e.Dispatch(&Event{Type: t})
}

// FireAt dispatches a bare event with an explicit timestamp.
func (e *Element) FireAt(t EventType, at time.Time) {
	e.Dispatch(&Event{Type: t, Timestamp: at})
}
