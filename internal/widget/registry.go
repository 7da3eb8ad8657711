package widget

import (
	"fmt"
	"sync"

	"github.com/dshills/ariabutton/internal/button"
	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/logging"
	"github.com/dshills/ariabutton/internal/schedule"
)

// Registry creates buttons on demand and dispatches operations to them.
// It holds what every new button shares: the scheduler, the logger and the
// default options.
type Registry struct {
	sched schedule.Scheduler
	log   *logging.Logger

	mu         sync.RWMutex
	defaults   map[string]any
	buttonOpts []button.Option
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger passed to new buttons.
func WithLogger(l *logging.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithDefaults sets options applied to every new button before the options
// given at creation.
func WithDefaults(defaults map[string]any) RegistryOption {
	return func(r *Registry) {
		r.defaults = copyMap(defaults)
	}
}

// WithButtonOptions adds construction options passed to every new button.
func WithButtonOptions(opts ...button.Option) RegistryOption {
	return func(r *Registry) {
		r.buttonOpts = append(r.buttonOpts, opts...)
	}
}

// NewRegistry creates a registry whose buttons schedule timers on sched.
func NewRegistry(sched schedule.Scheduler, opts ...RegistryOption) *Registry {
	r := &Registry{
		sched:    sched,
		log:      logging.Null(),
		defaults: make(map[string]any),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithComponent("widget")
	return r
}

// Defaults returns a copy of the options applied to new buttons.
func (r *Registry) Defaults() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyMap(r.defaults)
}

// SetDefault changes a default for buttons created from now on.
// Existing buttons are not affected.
func (r *Registry) SetDefault(name string, value any) {
	r.mu.Lock()
	r.defaults[name] = value
	r.mu.Unlock()
}

// SetDefaults merges values into the defaults.
func (r *Registry) SetDefaults(values map[string]any) {
	r.mu.Lock()
	for k, v := range values {
		r.defaults[k] = v
	}
	r.mu.Unlock()
}

// ReplaceDefaults discards the current defaults and uses values instead.
func (r *Registry) ReplaceDefaults(values map[string]any) {
	r.mu.Lock()
	r.defaults = copyMap(values)
	r.mu.Unlock()
}

// Instance returns the live button bound to el.
func Instance(el *dom.Element) (*button.Button, bool) {
	if el == nil {
		return nil, false
	}
	v, ok := el.Data(button.Name)
	if !ok {
		return nil, false
	}
	b, ok := v.(*button.Button)
	if !ok || b.Destroyed() {
		return nil, false
	}
	return b, true
}

// Bound returns the elements of els that carry a live button, in order.
func Bound(els []*dom.Element) []*dom.Element {
	var out []*dom.Element
	for _, el := range els {
		if _, ok := Instance(el); ok {
			out = append(out, el)
		}
	}
	return out
}

// Create binds a button to el with the registry defaults merged with
// options, then runs Init.
func (r *Registry) Create(el *dom.Element, options map[string]any) (*button.Button, error) {
	merged := r.Defaults()
	for k, v := range options {
		merged[k] = v
	}
	b, err := button.New(el, r.sched, merged, append([]button.Option{button.WithLogger(r.log)}, r.buttonOpts...)...)
	if err != nil {
		return nil, err
	}
	r.log.Debug("bound %s", el.ID())
	return b, nil
}

// Invoke applies args to every element in els.
//
// With no arguments, or a single options map, elements without a button get
// one created from the options; elements that already have one get the map
// applied through SetOptions and Init re-run. The first element's button is
// returned.
//
// With a leading operation (a string name or an Operation) the operation
// runs on every element and the first element's result is returned. Every
// element must already carry a button.
//
// Processing stops at the first failing element.
func (r *Registry) Invoke(els []*dom.Element, args ...any) (any, error) {
	if len(args) == 0 {
		return r.initAll(els, nil)
	}

	switch first := args[0].(type) {
	case nil:
		if len(args) > 1 {
			return nil, &OperationError{Err: fmt.Errorf("%w: extra arguments after options", ErrInvalidArguments)}
		}
		return r.initAll(els, nil)
	case map[string]any:
		if len(args) > 1 {
			return nil, &OperationError{Err: fmt.Errorf("%w: extra arguments after options", ErrInvalidArguments)}
		}
		return r.initAll(els, first)
	case string:
		op, err := ParseOperation(first)
		if err != nil {
			return nil, err
		}
		return r.dispatch(els, op, first, args[1:])
	case Operation:
		return r.dispatch(els, first, first.String(), args[1:])
	default:
		return nil, &OperationError{Err: fmt.Errorf("%w: first argument of type %T", ErrInvalidArguments, args[0])}
	}
}

func (r *Registry) initAll(els []*dom.Element, options map[string]any) (any, error) {
	var first *button.Button
	for i, el := range els {
		b, ok := Instance(el)
		if ok {
			if options != nil {
				if err := b.SetOptions(options); err != nil {
					return nil, &OperationError{Element: el.ID(), Err: err}
				}
			}
			b.Init()
		} else {
			var err error
			b, err = r.Create(el, options)
			if err != nil {
				return nil, &OperationError{Element: elementID(el), Err: err}
			}
		}
		if i == 0 {
			first = b
		}
	}
	if first == nil {
		return nil, nil
	}
	return first, nil
}

func (r *Registry) dispatch(els []*dom.Element, op Operation, name string, args []any) (any, error) {
	var ret any
	for i, el := range els {
		b, ok := Instance(el)
		if !ok {
			return nil, &OperationError{Op: name, Element: elementID(el), Err: ErrNotBound}
		}
		v, err := apply(b, op, args)
		if err != nil {
			return nil, &OperationError{Op: name, Element: el.ID(), Err: err}
		}
		if i == 0 {
			ret = v
		}
	}
	return ret, nil
}

// apply runs one operation on one button.
func apply(b *button.Button, op Operation, args []any) (any, error) {
	switch op {
	case OpEnable, OpDisable, OpPress, OpStartPress, OpEndPress, OpWidget, OpDestroy:
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: %s takes no arguments", ErrInvalidArguments, op)
		}
	}

	switch op {
	case OpEnable:
		b.Enable()
	case OpDisable:
		b.Disable()
	case OpPress:
		b.Press()
	case OpStartPress:
		b.StartPress()
	case OpEndPress:
		b.EndPress()
	case OpWidget:
		return b.Widget(), nil
	case OpDestroy:
		b.Destroy()
	case OpOption:
		return option(b, args)
	case OpOptions:
		return options(b, args)
	default:
		return nil, ErrUnknownOperation
	}
	return nil, nil
}

func option(b *button.Button, args []any) (any, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, fmt.Errorf("%w: option takes a name and an optional value", ErrInvalidArguments)
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: option name of type %T", ErrInvalidArguments, args[0])
	}
	if len(args) == 1 {
		v, _ := b.Option(name)
		return v, nil
	}
	return nil, b.SetOption(name, args[1])
}

func options(b *button.Button, args []any) (any, error) {
	switch len(args) {
	case 0:
		return b.Options().Map(), nil
	case 1:
		m, ok := args[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: options of type %T", ErrInvalidArguments, args[0])
		}
		return nil, b.SetOptions(m)
	default:
		return nil, fmt.Errorf("%w: options takes at most one map", ErrInvalidArguments)
	}
}

func elementID(el *dom.Element) string {
	if el == nil {
		return ""
	}
	return el.ID()
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
