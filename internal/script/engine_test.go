package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/ariabutton/internal/button"
	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/input/mouse"
	"github.com/dshills/ariabutton/internal/logging"
	"github.com/dshills/ariabutton/internal/schedule"
	"github.com/dshills/ariabutton/internal/widget"
)

type fixture struct {
	doc    *dom.Document
	reg    *widget.Registry
	engine *Engine
	logs   *bytes.Buffer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	doc := dom.NewDocument()
	els := []*dom.Element{doc.MustCreateElement("ok"), doc.MustCreateElement("other")}
	reg := widget.NewRegistry(schedule.NewManual(time.Unix(0, 0)))
	if _, err := reg.Invoke(els); err != nil {
		t.Fatalf("binding buttons: %v", err)
	}

	logs := &bytes.Buffer{}
	log := logging.New(logging.Config{Level: logging.LevelDebug, Output: logs})
	e := New(doc, reg, append([]Option{WithLogger(log)}, opts...)...)
	t.Cleanup(func() { e.Close() })
	return &fixture{doc: doc, reg: reg, engine: e, logs: logs}
}

func (f *fixture) el(id string) *dom.Element {
	el, _ := f.doc.Element(id)
	return el
}

func TestOnPress(t *testing.T) {
	f := newFixture(t)
	f.engine.Bind()
	f.engine.Bind()

	err := f.engine.DoString(context.Background(), `
calls = {}
function on_press(id, count, gesture, rep)
  calls[#calls + 1] = id .. ":" .. count .. ":" .. gesture .. ":" .. tostring(rep)
end
`)
	if err != nil {
		t.Fatalf("DoString failed: %v", err)
	}

	if _, err := f.reg.Invoke([]*dom.Element{f.el("ok")}, "press"); err != nil {
		t.Fatal(err)
	}
	f.el("other").Dispatch(&dom.Event{Type: dom.EventClick, Button: mouse.ButtonLeft})

	calls, ok := f.engine.Global("calls").([]any)
	if !ok {
		t.Fatalf("calls = %#v", f.engine.Global("calls"))
	}
	want := []string{"ok:1:none:false", "other:1:click:false"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %v, want %s", i, calls[i], want[i])
		}
	}
}

func TestUnbind(t *testing.T) {
	f := newFixture(t)
	f.engine.Bind()
	if err := f.engine.DoString(context.Background(), `n = 0 function on_press() n = n + 1 end`); err != nil {
		t.Fatal(err)
	}
	f.engine.Unbind()
	if _, err := f.reg.Invoke([]*dom.Element{f.el("ok")}, "press"); err != nil {
		t.Fatal(err)
	}
	if n := f.engine.Global("n"); n != int64(0) {
		t.Errorf("n = %v, want 0 after Unbind", n)
	}
}

func TestButtonOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.engine.DoString(ctx, `button("ok", "disable")`); err != nil {
		t.Fatal(err)
	}
	if v, _ := f.el("ok").Attr(button.AttrAriaDisabled); v != "true" {
		t.Errorf("aria-disabled = %q, want true", v)
	}

	err := f.engine.DoString(ctx, `
button("other", "option", "tabindex", 3)
tab = button("other", "option", "tabindex")
trig = button("other", "option", "triggers")
keys = button("other", "option", "keys")
el = button("other", "widget")
opts = button("other", "options")
`)
	if err != nil {
		t.Fatal(err)
	}
	if v := f.engine.Global("tab"); v != int64(3) {
		t.Errorf("tab = %#v, want 3", v)
	}
	if v := f.engine.Global("trig"); v != "click keypress" {
		t.Errorf("triggers = %#v", v)
	}
	if v, ok := f.engine.Global("keys").([]any); !ok || len(v) != 2 {
		t.Errorf("keys = %#v, want two codes", f.engine.Global("keys"))
	}
	if v := f.engine.Global("el"); v != "other" {
		t.Errorf("widget = %#v, want element id", v)
	}
	if m, ok := f.engine.Global("opts").(map[string]any); !ok || m["tabindex"] != int64(3) {
		t.Errorf("options = %#v", f.engine.Global("opts"))
	}
}

func TestButtonOptionsTable(t *testing.T) {
	f := newFixture(t)
	if err := f.engine.DoString(context.Background(), `button("ok", {disabled = true})`); err != nil {
		t.Fatal(err)
	}
	if v, _ := f.el("ok").Attr(button.AttrTabIndex); v != "-1" {
		t.Errorf("tabindex = %q, want -1", v)
	}
}

func TestButtonErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"unknown element", `button("nope", "press")`, "no such element"},
		{"unknown operation", `button("ok", "explode")`, "unknown operation"},
		{"private operation", `button("ok", "_init")`, "private"},
		{"missing id", `button()`, "bad argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := f.engine.DoString(context.Background(), tt.code)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestButtonErrorCaught(t *testing.T) {
	f := newFixture(t)
	err := f.engine.DoString(context.Background(), `ok, msg = pcall(button, "nope")`)
	if err != nil {
		t.Fatal(err)
	}
	if f.engine.Global("ok") != false {
		t.Error("pcall should report failure")
	}
	if msg, _ := f.engine.Global("msg").(string); !strings.Contains(msg, "nope") {
		t.Errorf("msg = %q", msg)
	}
}

func TestSandbox(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		if v := f.engine.L.GetGlobal(name); v.String() != "nil" {
			t.Errorf("%s is available: %v", name, v)
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs"} {
		if v := f.engine.L.GetGlobal(name); v.String() == "nil" {
			t.Errorf("%s is missing", name)
		}
	}
}

func TestTimeout(t *testing.T) {
	f := newFixture(t, WithTimeout(20*time.Millisecond))
	err := f.engine.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}

	// The state stays usable.
	if err := f.engine.DoString(context.Background(), `x = 1`); err != nil {
		t.Errorf("DoString after timeout: %v", err)
	}
}

func TestHandlerTimeoutLogged(t *testing.T) {
	f := newFixture(t, WithTimeout(20*time.Millisecond))
	f.engine.Bind()
	if err := f.engine.DoString(context.Background(), `function on_press() while true do end end`); err != nil {
		t.Fatal(err)
	}
	if _, err := f.reg.Invoke([]*dom.Element{f.el("ok")}, "press"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.logs.String(), "on_press(ok)") {
		t.Errorf("handler error not logged: %q", f.logs.String())
	}
}

func TestNestedPress(t *testing.T) {
	f := newFixture(t)
	f.engine.Bind()
	err := f.engine.DoString(context.Background(), `
seen = {}
function on_press(id)
  seen[#seen + 1] = id
  if id == "ok" then button("other", "press") end
end
`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.reg.Invoke([]*dom.Element{f.el("ok")}, "press"); err != nil {
		t.Fatal(err)
	}
	seen, _ := f.engine.Global("seen").([]any)
	if len(seen) != 2 || seen[0] != "ok" || seen[1] != "other" {
		t.Errorf("seen = %v", seen)
	}
}

func TestLogAndPrint(t *testing.T) {
	f := newFixture(t)
	if err := f.engine.DoString(context.Background(), `log("count=%d", 4) print("a", 1) log("100%")`); err != nil {
		t.Fatal(err)
	}
	out := f.logs.String()
	for _, want := range []string{"count=4", "a\t1", "100%"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %q", want, out)
		}
	}
}

func TestDoFile(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`button("ok", "disable")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := f.engine.DoFile(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if v, _ := f.el("ok").Attr(button.AttrAriaDisabled); v != "true" {
		t.Errorf("aria-disabled = %q", v)
	}

	err := f.engine.DoFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil || !strings.Contains(err.Error(), "missing.lua") {
		t.Errorf("missing file error = %v", err)
	}
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	f.engine.Bind()
	if err := f.engine.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.engine.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if f.doc.ListenerCount(button.EventPress) != 0 {
		t.Error("Close left the press listener")
	}
	if err := f.engine.DoString(context.Background(), `x = 1`); !errors.Is(err, ErrClosed) {
		t.Errorf("DoString after Close = %v, want ErrClosed", err)
	}
	if f.engine.Global("x") != nil {
		t.Error("Global after Close should be nil")
	}
}
