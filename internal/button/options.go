package button

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/ariabutton/internal/input/key"
	"github.com/dshills/ariabutton/internal/input/trigger"
)

// Option names.
const (
	OptionDisabled = "disabled"
	OptionKeys     = "keys"
	OptionTabIndex = "tabindex"
	OptionTriggers = "triggers"
)

// Options is a button's configuration.
type Options struct {
	// Disabled blocks all presses and forces tabindex to -1.
	Disabled bool

	// Keys are the key codes that take part in key triggers.
	Keys key.Set

	// TabIndex is the configured tab index, normalized to >= -1.
	// The element shows -1 while the button is disabled.
	TabIndex int

	// Triggers selects which gestures fire a press.
	Triggers trigger.Mask

	// Extra holds options with no behavior, stored verbatim.
	Extra map[string]any
}

// DefaultOptions returns a fresh default configuration: enabled, Enter and
// Space keys, tabindex 0, click and keypress triggers. Each call returns an
// independent value.
func DefaultOptions() Options {
	return Options{
		Keys:     key.DefaultSet(),
		TabIndex: 0,
		Triggers: trigger.Default,
	}
}

// Clone returns a copy that shares no mutable state with o.
func (o Options) Clone() Options {
	c := o
	if o.Extra != nil {
		c.Extra = make(map[string]any, len(o.Extra))
		for k, v := range o.Extra {
			c.Extra[k] = v
		}
	}
	return c
}

// Map returns the options keyed by option name.
func (o Options) Map() map[string]any {
	m := make(map[string]any, 4+len(o.Extra))
	for k, v := range o.Extra {
		m[k] = v
	}
	m[OptionDisabled] = o.Disabled
	m[OptionKeys] = o.Keys
	m[OptionTabIndex] = o.TabIndex
	m[OptionTriggers] = o.Triggers
	return m
}

// Option returns the value of a named option. Unknown names return the
// value stored for them, if any.
func (b *Button) Option(name string) (any, bool) {
	switch name {
	case OptionDisabled:
		return b.opts.Disabled, true
	case OptionKeys:
		return b.opts.Keys, true
	case OptionTabIndex:
		return b.opts.TabIndex, true
	case OptionTriggers:
		return b.opts.Triggers, true
	default:
		v, ok := b.opts.Extra[name]
		return v, ok
	}
}

// Options returns a copy of the current configuration.
func (b *Button) Options() Options {
	return b.opts.Clone()
}

// SetOption sets a named option and applies its side effects.
//
//   - disabled: coerced to a boolean, then Disable or Enable.
//   - tabindex: normalized with NormalizeTabIndex and written to the element
//     unless the button is disabled.
//   - keys: parsed with key.ParseSet; the old set is replaced, never merged.
//   - triggers: parsed with trigger.ParseMask.
//   - anything else: stored verbatim with no side effect.
//
// An invalid value returns an error wrapping ErrInvalidOption and leaves the
// option unchanged. Unknown names never fail.
func (b *Button) SetOption(name string, value any) error {
	switch name {
	case OptionDisabled:
		if Truthy(value) {
			b.Disable()
		} else {
			b.Enable()
		}
	case OptionTabIndex:
		n, err := NormalizeTabIndex(value)
		if err != nil {
			return err
		}
		b.opts.TabIndex = n
		if !b.opts.Disabled {
			b.el.SetAttr(AttrTabIndex, strconv.Itoa(n))
		}
	case OptionKeys:
		set, err := key.ParseSet(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidOption, name, err)
		}
		b.opts.Keys = set
	case OptionTriggers:
		mask, err := trigger.ParseMask(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidOption, name, err)
		}
		b.opts.Triggers = mask
	default:
		if b.opts.Extra == nil {
			b.opts.Extra = make(map[string]any)
		}
		b.opts.Extra[name] = value
	}
	return nil
}

// SetOptions applies each entry through SetOption in sorted name order.
// Every entry is attempted; the returned error joins all failures.
func (b *Button) SetOptions(values map[string]any) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := b.SetOption(name, values[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NormalizeTabIndex converts a tabindex option to an integer >= -1.
// true maps to 0 and false to -1; numbers and numeric strings are truncated
// toward zero and clamped at -1.
func NormalizeTabIndex(v any) (int, error) {
	var n int64
	switch val := v.(type) {
	case bool:
		if val {
			return 0, nil
		}
		return -1, nil
	case int:
		n = int64(val)
	case int8:
		n = int64(val)
	case int16:
		n = int64(val)
	case int32:
		n = int64(val)
	case int64:
		n = val
	case uint:
		n = clampUint(uint64(val))
	case uint8:
		n = int64(val)
	case uint16:
		n = int64(val)
	case uint32:
		n = int64(val)
	case uint64:
		n = clampUint(val)
	case float32:
		return fromFloat(float64(val))
	case float64:
		return fromFloat(val)
	case string:
		s := strings.TrimSpace(val)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			n = i
			break
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: tabindex %q is not numeric", ErrInvalidOption, val)
		}
		return fromFloat(f)
	default:
		return 0, fmt.Errorf("%w: tabindex of type %T", ErrInvalidOption, v)
	}
	return clampTabIndex(n), nil
}

func fromFloat(f float64) (int, error) {
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%w: tabindex is NaN", ErrInvalidOption)
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	return clampTabIndex(int64(math.Max(f, -2))), nil
}

func clampUint(u uint64) int64 {
	if u > math.MaxInt32 {
		return math.MaxInt32
	}
	return int64(u)
}

func clampTabIndex(n int64) int {
	if n < -1 {
		return -1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Truthy coerces a dynamic value to a boolean. nil, false, zero or NaN
// numbers and the empty string are false. Every other value is true,
// including the strings "false" and "0".
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case int:
		return val != 0
	case int8:
		return val != 0
	case int16:
		return val != 0
	case int32:
		return val != 0
	case int64:
		return val != 0
	case uint:
		return val != 0
	case uint8:
		return val != 0
	case uint16:
		return val != 0
	case uint32:
		return val != 0
	case uint64:
		return val != 0
	case uintptr:
		return val != 0
	case float32:
		return val != 0 && !math.IsNaN(float64(val))
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	default:
		return true
	}
}
