// Package button implements an accessible push button bound to a dom.Element.
//
// A Button turns physical gestures into a single semantic "buttonpress"
// event dispatched on its element. Which gestures count is configured with
// a trigger.Mask (mouse buttons times click, doubleclick, mousedown,
// mousehold and mouseup, plus keydown, keypress and keyup for the keys in a
// key.Set).
//
// Mouse and keyboard are tracked as independent channels. A qualifying
// down gesture marks the channel pressed; the matching release is observed
// on the document, not the element, so releasing after the pointer or focus
// has moved away still ends the press. When a hold trigger is configured, a
// press that lasts HoldDelay starts repeating every HoldInterval while the
// pointer stays over the element.
//
// State is reflected on the element through fixed class names
// (button-up/button-down and friends) and ARIA attributes. Destroy restores
// every attribute the button touched to its original value.
//
// # Usage
//
//	b, err := button.New(el, loop, map[string]any{
//	    "triggers": trigger.Click | trigger.LeftMouseHold | trigger.KeyPress,
//	})
//	if err != nil {
//	    return err
//	}
//	el.Listen(button.EventPress, func(ev *dom.Event) {
//	    detail := ev.Detail.(button.PressDetail)
//	    fmt.Println("pressed", detail.Count)
//	})
//
// A Button must only be used from the goroutine that runs its scheduler.
package button
