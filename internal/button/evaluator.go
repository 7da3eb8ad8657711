package button

import (
	"github.com/dshills/ariabutton/internal/input/key"
	"github.com/dshills/ariabutton/internal/input/mouse"
	"github.com/dshills/ariabutton/internal/input/trigger"
)

// MouseTriggersAny reports whether the configured triggers enable any
// gesture at all for button b. It gates whether a button-down starts
// tracking a press.
func (b *Button) MouseTriggersAny(btn mouse.Button) bool {
	return b.opts.Triggers.MouseEnabled(btn)
}

// MouseTriggersEvent reports whether gesture g with button btn fires a
// press: the generic bit for g or btn's own bit for g is configured.
func (b *Button) MouseTriggersEvent(btn mouse.Button, g trigger.Gesture) bool {
	return b.opts.Triggers.MouseFires(btn, g)
}

// KeyTriggersAny reports whether code is a configured key and at least one
// key gesture is enabled. It gates whether a keydown starts tracking a press.
func (b *Button) KeyTriggersAny(code key.Code) bool {
	return b.opts.Keys.Contains(code) && b.opts.Triggers.KeyEnabled()
}

// KeyTriggersEvent reports whether code is a configured key and key
// gesture g is enabled.
func (b *Button) KeyTriggersEvent(code key.Code, g trigger.Gesture) bool {
	return b.opts.Keys.Contains(code) && b.opts.Triggers.KeyFires(g)
}
