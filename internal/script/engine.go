package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ariabutton/internal/button"
	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/logging"
	"github.com/dshills/ariabutton/internal/widget"
)

// DefaultTimeout bounds a single chunk or handler call.
const DefaultTimeout = time.Second

// PressHandler is the global function called for each press.
const PressHandler = "on_press"

// Globals removed from the base library.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

// Engine runs Lua against a document's buttons.
type Engine struct {
	L *lua.LState

	doc     *dom.Document
	reg     *widget.Registry
	log     *logging.Logger
	timeout time.Duration

	sub    dom.Subscription
	depth  int
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by log(), print() and handler errors.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTimeout sets the per-call deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

// New creates an engine whose button() global resolves ids in doc and
// invokes operations through reg.
func New(doc *dom.Document, reg *widget.Registry, opts ...Option) *Engine {
	e := &Engine{
		doc:     doc,
		reg:     reg,
		log:     logging.Null(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("script")

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetGlobal("button", L.NewFunction(e.luaButton))
	L.SetGlobal("log", L.NewFunction(e.luaLog))
	L.SetGlobal("print", L.NewFunction(e.luaPrint))

	e.L = L
	return e
}

// DoString runs a chunk of Lua.
func (e *Engine) DoString(ctx context.Context, code string) error {
	return e.run(ctx, func() error {
		return e.L.DoString(code)
	})
}

// DoFile runs the Lua file at path.
func (e *Engine) DoFile(ctx context.Context, path string) error {
	err := e.run(ctx, func() error {
		return e.L.DoFile(path)
	})
	if err != nil && !errors.Is(err, ErrTimeout) && !errors.Is(err, ErrClosed) {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return err
}

// Global returns the Go value of a Lua global, or nil.
func (e *Engine) Global(name string) any {
	if e.closed {
		return nil
	}
	return toGo(e.L.GetGlobal(name))
}

// Bind subscribes to presses in the document. Calling it again is a no-op.
func (e *Engine) Bind() {
	if e.closed || e.sub != nil {
		return
	}
	e.sub = e.doc.Listen(button.EventPress, e.onPress)
}

// Unbind removes the press subscription.
func (e *Engine) Unbind() {
	if e.sub != nil {
		e.sub.Cancel()
		e.sub = nil
	}
}

// HandlePress calls the press handler for a press on el. It does nothing
// when the script defines no handler.
func (e *Engine) HandlePress(ctx context.Context, el *dom.Element, detail button.PressDetail) error {
	if e.closed {
		return ErrClosed
	}
	fn, ok := e.L.GetGlobal(PressHandler).(*lua.LFunction)
	if !ok {
		return nil
	}
	return e.run(ctx, func() error {
		return e.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true},
			lua.LString(el.ID()),
			lua.LNumber(detail.Count),
			lua.LString(detail.Gesture.String()),
			lua.LBool(detail.Repeat),
		)
	})
}

// Close releases the Lua state and the press subscription.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.Unbind()
	e.L.Close()
	e.closed = true
	return nil
}

func (e *Engine) onPress(ev *dom.Event) {
	detail, ok := ev.Detail.(button.PressDetail)
	if !ok || ev.Target == nil {
		return
	}
	if err := e.HandlePress(context.Background(), ev.Target, detail); err != nil {
		e.log.Error("%s(%s): %v", PressHandler, ev.Target.ID(), err)
	}
}

// run executes fn under the engine deadline. Nested calls, made when a
// handler's button() call dispatches another press, share the outer
// deadline.
func (e *Engine) run(ctx context.Context, fn func() error) (err error) {
	if e.closed {
		return ErrClosed
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	if e.depth > 0 {
		e.depth++
		defer func() { e.depth-- }()
		return fn()
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	e.L.SetContext(ctx)
	e.depth++
	defer func() {
		e.depth--
		e.L.RemoveContext()
	}()

	err = fn()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

// luaButton implements button(id, [op], ...).
func (e *Engine) luaButton(L *lua.LState) int {
	id := L.CheckString(1)
	el, ok := e.doc.Element(id)
	if !ok {
		L.RaiseError("%v: %q", ErrNoElement, id)
		return 0
	}

	args := make([]any, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		args = append(args, toGo(L.Get(i)))
	}

	v, err := e.reg.Invoke([]*dom.Element{el}, args...)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(toLua(L, v))
	return 1
}

// luaLog implements log(fmt, ...).
func (e *Engine) luaLog(L *lua.LState) int {
	format := L.CheckString(1)
	if L.GetTop() == 1 {
		e.log.Info("%s", format)
		return 0
	}
	args := make([]any, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		args = append(args, toGo(L.Get(i)))
	}
	e.log.Info(format, args...)
	return 0
}

func (e *Engine) luaPrint(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	e.log.Info("%s", strings.Join(parts, "\t"))
	return 0
}
