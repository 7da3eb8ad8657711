package dom

import "github.com/google/uuid"

// Subscription is the handle returned by Listen.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Type returns the subscribed event type.
	Type() EventType

	// Active reports whether the listener still receives events.
	Active() bool

	// Cancel removes the listener. Cancelling twice is a no-op.
	Cancel()
}

type listenerEntry struct {
	id     string
	typ    EventType
	fn     Listener
	owner  *listenerSet
	active bool
}

func (l *listenerEntry) ID() string      { return l.id }
func (l *listenerEntry) Type() EventType { return l.typ }
func (l *listenerEntry) Active() bool    { return l.active }

func (l *listenerEntry) Cancel() {
	if !l.active {
		return
	}
	l.active = false
	l.owner.remove(l)
}

// listenerSet holds listeners per event type in registration order.
type listenerSet struct {
	byType map[EventType][]*listenerEntry
}

func newListenerSet() *listenerSet {
	return &listenerSet{byType: make(map[EventType][]*listenerEntry)}
}

func (s *listenerSet) add(t EventType, fn Listener) *listenerEntry {
	l := &listenerEntry{
		id:     uuid.NewString(),
		typ:    t,
		fn:     fn,
		owner:  s,
		active: true,
	}
	s.byType[t] = append(s.byType[t], l)
	return l
}

func (s *listenerSet) remove(l *listenerEntry) {
	list := s.byType[l.typ]
	for i := range list {
		if list[i] == l {
			// Copy so a dispatch iterating the old slice is unaffected.
			next := make([]*listenerEntry, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(s.byType, l.typ)
			} else {
				s.byType[l.typ] = next
			}
			return
		}
	}
}

// run invokes the listeners registered for ev.Type. Listeners cancelled by
// an earlier listener in the same dispatch are skipped.
func (s *listenerSet) run(ev *Event) {
	for _, l := range s.byType[ev.Type] {
		if l.active {
			l.fn(ev)
		}
	}
}

func (s *listenerSet) count(t EventType) int {
	return len(s.byType[t])
}

func (s *listenerSet) total() int {
	n := 0
	for _, list := range s.byType {
		n += len(list)
	}
	return n
}
