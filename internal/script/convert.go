package script

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ariabutton/internal/button"
	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/input/key"
	"github.com/dshills/ariabutton/internal/input/trigger"
)

// toGo converts a Lua value for use as a widget argument. Integral numbers
// become int64; sequences become []any and other tables map[string]any.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, make(map[*lua.LTable]bool))
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		out := make([]any, n)
		for i := 1; i <= n; i++ {
			out[i-1] = toGoVisited(t.RawGetInt(i), visited)
		}
		return out
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var name string
		switch kv := k.(type) {
		case lua.LString:
			name = string(kv)
		default:
			name = k.String()
		}
		m[name] = toGoVisited(v, visited)
	})
	return m
}

// toLua converts a widget result for return to a script. Key sets become
// sequences of codes, trigger masks their name string, elements and buttons their id.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case string:
		return lua.LString(val)
	case int:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case key.Code:
		return lua.LNumber(val)
	case key.Set:
		t := L.NewTable()
		for _, c := range val.Codes() {
			t.Append(lua.LNumber(c))
		}
		return t
	case trigger.Mask:
		return lua.LString(val.String())
	case *dom.Element:
		return lua.LString(val.ID())
	case *button.Button:
		return lua.LString(val.Widget().ID())
	case []any:
		t := L.NewTable()
		for _, item := range val {
			t.Append(toLua(L, item))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		names := make([]string, 0, len(val))
		for k := range val {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			t.RawSetString(k, toLua(L, val[k]))
		}
		return t
	case fmt.Stringer:
		return lua.LString(val.String())
	default:
		return lua.LString(fmt.Sprint(val))
	}
}
