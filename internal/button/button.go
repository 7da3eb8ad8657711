package button

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/logging"
	"github.com/dshills/ariabutton/internal/schedule"
)

// Name is the widget name. It is the role written to the element and the
// data key the instance is stored under.
const Name = "button"

// Button is an accessible push button bound to one element.
type Button struct {
	id    string
	el    *dom.Element
	sched schedule.Scheduler
	log   *logging.Logger

	holdDelay    time.Duration
	holdInterval time.Duration

	opts     Options
	state    interaction
	original map[string]snapshot
	subs     []dom.Subscription

	presses   int
	destroyed bool
}

type snapshot struct {
	value   string
	present bool
}

// Option configures a Button at construction.
type Option func(*Button)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logging.Logger) Option {
	return func(b *Button) {
		if l != nil {
			b.log = l
		}
	}
}

// WithHoldTiming overrides the hold delay and repeat interval.
// Non-positive values keep the defaults.
func WithHoldTiming(delay, interval time.Duration) Option {
	return func(b *Button) {
		if delay > 0 {
			b.holdDelay = delay
		}
		if interval > 0 {
			b.holdInterval = interval
		}
	}
}

// New binds a button to el. Timers are created through sched, which must
// run callbacks on the same goroutine that delivers el's events.
//
// The element's aria-disabled, disabled, role and tabindex attributes are
// recorded for Destroy, role and tabindex are set, listeners are bound on
// the element and its document, and the defaults merged with options are
// applied through SetOption. Init runs last.
func New(el *dom.Element, sched schedule.Scheduler, options map[string]any, opts ...Option) (*Button, error) {
	if el == nil {
		return nil, ErrNilElement
	}
	if sched == nil {
		return nil, ErrNilScheduler
	}
	if _, bound := el.Data(Name); bound {
		return nil, ErrAlreadyBound
	}

	b := &Button{
		id:           uuid.NewString(),
		el:           el,
		sched:        sched,
		log:          logging.Null(),
		holdDelay:    HoldDelay,
		holdInterval: HoldInterval,
		opts:         DefaultOptions(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.WithComponent(Name).WithField("element", el.ID())

	b.create()

	merged := DefaultOptions().Map()
	for k, v := range options {
		merged[k] = v
	}
	if err := b.SetOptions(merged); err != nil {
		b.Destroy()
		return nil, err
	}

	el.SetData(Name, b)
	b.Init()
	b.log.Debug("created id=%s", b.id)
	return b, nil
}

// create records the original attributes, claims the element and binds
// listeners. Options are not applied yet.
func (b *Button) create() {
	b.original = make(map[string]snapshot, len(managedAttrs))
	for _, name := range managedAttrs {
		v, ok := b.el.Attr(name)
		b.original[name] = snapshot{value: v, present: ok}
	}

	b.el.SetAttr(AttrRole, Name)
	b.el.SetAttr(AttrTabIndex, "0")

	b.bind()

	b.el.AddClass(ClassEnabled, ClassUp, ClassOut)
	if b.el.Focused() {
		b.el.AddClass(ClassFocus)
	} else {
		b.el.AddClass(ClassBlur)
	}
}

func (b *Button) bind() {
	el := b.el
	doc := el.Document()
	b.subs = append(b.subs,
		el.Listen(dom.EventClick, b.onClick),
		el.Listen(dom.EventDoubleClick, b.onDoubleClick),
		el.Listen(dom.EventMouseDown, b.onMouseDown),
		el.Listen(dom.EventMouseUp, b.onMouseUp),
		el.Listen(dom.EventFocus, b.onFocus),
		el.Listen(dom.EventBlur, b.onBlur),
		el.Listen(dom.EventMouseEnter, b.onMouseEnter),
		el.Listen(dom.EventMouseLeave, b.onMouseLeave),
		el.Listen(dom.EventKeyDown, b.onKeyDown),
		el.Listen(dom.EventKeyUp, b.onKeyUp),
		el.Listen(dom.EventKeyPress, b.onKeyPress),

		// Releases are watched on the document so that letting go after
		// leaving the element still ends the press.
		doc.Listen(dom.EventMouseUp, b.releaseMouse),
		doc.Listen(dom.EventKeyUp, b.releaseKey),
	)
}

// ID returns the instance identifier.
func (b *Button) ID() string {
	return b.id
}

// Widget returns the bound element.
func (b *Button) Widget() *dom.Element {
	return b.el
}

// Destroyed reports whether Destroy has run.
func (b *Button) Destroyed() bool {
	return b.destroyed
}

// Init re-applies the effective tabindex. It is idempotent.
func (b *Button) Init() {
	if b.destroyed {
		return
	}
	b.applyTabIndex()
}

func (b *Button) applyTabIndex() {
	if b.opts.Disabled {
		b.el.SetAttr(AttrTabIndex, "-1")
		return
	}
	b.el.SetAttr(AttrTabIndex, strconv.Itoa(b.opts.TabIndex))
}

// Enable marks the button enabled and restores the configured tabindex.
func (b *Button) Enable() {
	if b.destroyed {
		return
	}
	b.opts.Disabled = false
	b.el.SetAttr(AttrAriaDisabled, "false")
	b.el.RemoveAttr(AttrDisabled)
	b.el.SwapClass(ClassDisabled, ClassEnabled)
	b.applyTabIndex()
}

// Disable marks the button disabled, forces tabindex to -1 and ends any
// press in progress.
func (b *Button) Disable() {
	if b.destroyed {
		return
	}
	b.opts.Disabled = true
	b.el.SetAttr(AttrAriaDisabled, "true")
	b.el.SetAttr(AttrDisabled, "disabled")
	b.el.SwapClass(ClassEnabled, ClassDisabled)
	b.applyTabIndex()
	b.EndPress()
}

// Destroy restores the original attributes, strips state classes, cancels
// hold timers, removes every listener this button added and detaches the
// instance from the element. Calling it again is a no-op.
func (b *Button) Destroy() {
	if b.destroyed {
		return
	}

	b.cancelHold()
	b.state = interaction{}

	for _, sub := range b.subs {
		sub.Cancel()
	}
	b.subs = nil

	for _, name := range managedAttrs {
		snap := b.original[name]
		if snap.present {
			b.el.SetAttr(name, snap.value)
		} else {
			b.el.RemoveAttr(name)
		}
	}
	b.el.RemoveClass(StateClasses...)

	if v, ok := b.el.Data(Name); ok && v == b {
		b.el.RemoveData(Name)
	}

	b.destroyed = true
	b.log.Debug("destroyed id=%s presses=%d", b.id, b.presses)
}
