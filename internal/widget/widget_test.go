package widget

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/ariabutton/internal/button"
	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/input/trigger"
	"github.com/dshills/ariabutton/internal/schedule"
)

func setup(t *testing.T, ids ...string) (*Registry, *dom.Document, []*dom.Element) {
	t.Helper()
	doc := dom.NewDocument()
	els := make([]*dom.Element, 0, len(ids))
	for _, id := range ids {
		els = append(els, doc.MustCreateElement(id))
	}
	reg := NewRegistry(schedule.NewManual(time.Unix(0, 0)))
	return reg, doc, els
}

func TestParseOperation(t *testing.T) {
	for _, op := range Operations() {
		got, err := ParseOperation(op.String())
		if err != nil || got != op {
			t.Errorf("ParseOperation(%q) = (%v, %v)", op.String(), got, err)
		}
	}

	tests := []struct {
		name string
		want error
	}{
		{"_create", ErrPrivateOperation},
		{"_setOption", ErrPrivateOperation},
		{"bogus", ErrUnknownOperation},
		{"Enable", ErrUnknownOperation},
		{"", ErrUnknownOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOperation(tt.name)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var opErr *OperationError
			if !errors.As(err, &opErr) || opErr.Op != tt.name {
				t.Errorf("error does not name the operation: %v", err)
			}
		})
	}
}

func TestParseOperationSuggest(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Enable", "enable"},
		{"startPress", "startpress"},
		{"EndPress", "endpress"},
		{"dis", "disable"},
		{"zzz", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOperation(tt.name)
			var opErr *OperationError
			if !errors.As(err, &opErr) {
				t.Fatalf("error = %v, want *OperationError", err)
			}
			if opErr.Suggest != tt.want {
				t.Errorf("Suggest = %q, want %q", opErr.Suggest, tt.want)
			}
			hint := strings.Contains(err.Error(), "did you mean")
			if hint != (tt.want != "") {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestInvokeCreates(t *testing.T) {
	reg, _, els := setup(t, "a", "b")

	v, err := reg.Invoke(els, map[string]any{"tabindex": 2})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	first, ok := v.(*button.Button)
	if !ok || first.Widget() != els[0] {
		t.Fatalf("Invoke returned %v, want first element's button", v)
	}

	for _, el := range els {
		b, ok := Instance(el)
		if !ok {
			t.Fatalf("%s has no button", el.ID())
		}
		if got, _ := b.Option("tabindex"); got != 2 {
			t.Errorf("%s tabindex = %v, want 2", el.ID(), got)
		}
	}
}

func TestInvokeNoArgsReinits(t *testing.T) {
	reg, _, els := setup(t, "a")

	if _, err := reg.Invoke(els); err != nil {
		t.Fatal(err)
	}
	b, _ := Instance(els[0])

	els[0].SetAttr(button.AttrTabIndex, "99")
	if _, err := reg.Invoke(els); err != nil {
		t.Fatal(err)
	}
	if v, _ := els[0].Attr(button.AttrTabIndex); v != "0" {
		t.Errorf("tabindex = %q, want re-applied 0", v)
	}
	if again, _ := Instance(els[0]); again != b {
		t.Error("second Invoke replaced the instance")
	}
}

func TestInvokeOptionsOnBound(t *testing.T) {
	reg, _, els := setup(t, "a")
	if _, err := reg.Invoke(els); err != nil {
		t.Fatal(err)
	}

	if _, err := reg.Invoke(els, map[string]any{"disabled": true}); err != nil {
		t.Fatal(err)
	}
	if v, _ := els[0].Attr(button.AttrTabIndex); v != "-1" {
		t.Errorf("tabindex = %q, want -1", v)
	}
}

func TestInvokeOperations(t *testing.T) {
	reg, _, els := setup(t, "a", "b")
	if _, err := reg.Invoke(els); err != nil {
		t.Fatal(err)
	}

	if _, err := reg.Invoke(els, "disable"); err != nil {
		t.Fatal(err)
	}
	for _, el := range els {
		if v, _ := el.Attr(button.AttrAriaDisabled); v != "true" {
			t.Errorf("%s aria-disabled = %q", el.ID(), v)
		}
	}

	if _, err := reg.Invoke(els, OpEnable); err != nil {
		t.Fatal(err)
	}
	if v, _ := els[1].Attr(button.AttrAriaDisabled); v != "false" {
		t.Errorf("b aria-disabled = %q", v)
	}

	v, err := reg.Invoke(els, "widget")
	if err != nil || v != els[0] {
		t.Errorf("widget = (%v, %v), want first element", v, err)
	}
}

func TestInvokeOption(t *testing.T) {
	reg, _, els := setup(t, "a", "b")
	if _, err := reg.Invoke(els); err != nil {
		t.Fatal(err)
	}

	if _, err := reg.Invoke(els, "option", "triggers", "keyup"); err != nil {
		t.Fatal(err)
	}
	v, err := reg.Invoke(els, "option", "triggers")
	if err != nil || v != trigger.KeyUp {
		t.Errorf("option triggers = (%v, %v)", v, err)
	}

	b, _ := Instance(els[1])
	if got, _ := b.Option("triggers"); got != trigger.KeyUp {
		t.Errorf("second element triggers = %v", got)
	}

	if _, err := reg.Invoke(els, "options", map[string]any{"label": "Go"}); err != nil {
		t.Fatal(err)
	}
	all, err := reg.Invoke(els, "options")
	if err != nil {
		t.Fatal(err)
	}
	if m := all.(map[string]any); m["label"] != "Go" {
		t.Errorf("options() = %v", m)
	}
}

func TestInvokeOptionErrors(t *testing.T) {
	reg, _, els := setup(t, "a")
	if _, err := reg.Invoke(els); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []any
		want error
	}{
		{"option without name", []any{"option"}, ErrInvalidArguments},
		{"option non-string name", []any{"option", 3}, ErrInvalidArguments},
		{"option too many", []any{"option", "a", 1, 2}, ErrInvalidArguments},
		{"options non-map", []any{"options", "x"}, ErrInvalidArguments},
		{"enable with args", []any{"enable", true}, ErrInvalidArguments},
		{"bad tabindex", []any{"option", "tabindex", "abc"}, button.ErrInvalidOption},
		{"private", []any{"_init"}, ErrPrivateOperation},
		{"unknown", []any{"explode"}, ErrUnknownOperation},
		{"bad first arg", []any{42}, ErrInvalidArguments},
		{"options then extra", []any{map[string]any{}, 1}, ErrInvalidArguments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Invoke(els, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInvokeUnbound(t *testing.T) {
	reg, _, els := setup(t, "a")

	_, err := reg.Invoke(els, "press")
	if !errors.Is(err, ErrNotBound) {
		t.Fatalf("error = %v, want ErrNotBound", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Element != "a" || opErr.Op != "press" {
		t.Errorf("OperationError = %+v", opErr)
	}
	if _, ok := Instance(els[0]); ok {
		t.Error("operation call must not create a button")
	}
}

func TestInvokeDestroy(t *testing.T) {
	reg, _, els := setup(t, "a")
	if _, err := reg.Invoke(els); err != nil {
		t.Fatal(err)
	}

	if _, err := reg.Invoke(els, "destroy"); err != nil {
		t.Fatal(err)
	}
	if _, ok := Instance(els[0]); ok {
		t.Error("destroyed element still reports an instance")
	}
	if len(Bound(els)) != 0 {
		t.Error("Bound should be empty")
	}
	if _, err := reg.Invoke(els, "enable"); !errors.Is(err, ErrNotBound) {
		t.Errorf("operation after destroy = %v, want ErrNotBound", err)
	}

	// A fresh Invoke binds again.
	if _, err := reg.Invoke(els); err != nil {
		t.Fatal(err)
	}
	if _, ok := Instance(els[0]); !ok {
		t.Error("re-binding failed")
	}
}

func TestInvokePress(t *testing.T) {
	reg, _, els := setup(t, "a")
	if _, err := reg.Invoke(els); err != nil {
		t.Fatal(err)
	}

	n := 0
	els[0].Listen(button.EventPress, func(*dom.Event) { n++ })
	if _, err := reg.Invoke(els, "press"); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Invoke(els, "startpress"); err != nil {
		t.Fatal(err)
	}
	if !els[0].HasClass(button.ClassDown) {
		t.Error("startpress did not show the button down")
	}
	if _, err := reg.Invoke(els, "endpress"); err != nil {
		t.Fatal(err)
	}
	if els[0].HasClass(button.ClassDown) {
		t.Error("endpress left the button down")
	}
	if n != 1 {
		t.Errorf("presses = %d, want 1", n)
	}
}

func TestOperationNames(t *testing.T) {
	want := []string{"enable", "disable", "press", "startpress", "endpress", "option", "options", "widget", "destroy"}
	for _, name := range want {
		op, err := ParseOperation(name)
		if err != nil {
			t.Errorf("ParseOperation(%q) = %v", name, err)
			continue
		}
		if op.String() != name {
			t.Errorf("%q round trips as %q", name, op.String())
		}
	}
}

func TestRegistryDefaults(t *testing.T) {
	reg, doc, els := setup(t, "a")
	reg.SetDefault("tabindex", 4)
	reg.SetDefaults(map[string]any{"label": "default"})

	if _, err := reg.Invoke(els, map[string]any{"label": "mine"}); err != nil {
		t.Fatal(err)
	}
	b, _ := Instance(els[0])
	if v, _ := b.Option("tabindex"); v != 4 {
		t.Errorf("tabindex = %v, want registry default 4", v)
	}
	if v, _ := b.Option("label"); v != "mine" {
		t.Errorf("label = %v, want explicit option", v)
	}

	d := reg.Defaults()
	d["tabindex"] = 9
	other := doc.MustCreateElement("other")
	b2, err := reg.Create(other, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := b2.Option("tabindex"); v != 4 {
		t.Errorf("Defaults() leaked a mutable map: tabindex = %v", v)
	}
}

func TestRegistryWithDefaults(t *testing.T) {
	doc := dom.NewDocument()
	el := doc.MustCreateElement("a")
	reg := NewRegistry(schedule.NewManual(time.Unix(0, 0)),
		WithDefaults(map[string]any{"disabled": true}),
		WithButtonOptions(button.WithHoldTiming(time.Second, time.Second)))

	b, err := reg.Create(el, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := b.Option("disabled"); v != true {
		t.Error("WithDefaults not applied")
	}
}

func TestInstanceNil(t *testing.T) {
	if _, ok := Instance(nil); ok {
		t.Error("Instance(nil) reported a button")
	}
	el := dom.NewDocument().MustCreateElement("x")
	el.SetData(button.Name, "not a button")
	if _, ok := Instance(el); ok {
		t.Error("foreign data reported as a button")
	}
}

func TestOperationErrorMessage(t *testing.T) {
	err := &OperationError{Op: "press", Element: "ok", Err: ErrNotBound}
	want := `widget: "press" on ok: element has no button`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestReplaceDefaults(t *testing.T) {
	reg, _, els := setup(t, "a")
	reg.SetDefaults(map[string]any{"tabindex": 4, "label": "x"})

	src := map[string]any{"label": "y"}
	reg.ReplaceDefaults(src)
	src["label"] = "changed"

	d := reg.Defaults()
	if len(d) != 1 || d["label"] != "y" {
		t.Errorf("Defaults = %v, want only label y", d)
	}
	if _, err := reg.Invoke(els); err != nil {
		t.Fatal(err)
	}
	b, _ := Instance(els[0])
	if v, _ := b.Option("tabindex"); v != 0 {
		t.Errorf("tabindex = %v, want the built-in default", v)
	}
}
