// Package widget exposes buttons through a call-by-name convention.
//
// Invoke is the single entry point for a selection of elements. Called with
// no arguments or an options map it binds a button to each element that has
// none (or re-runs Init on those that do). Called with an operation name it
// runs that operation on every element and returns the first element's
// result:
//
//	reg := widget.NewRegistry(loop)
//	reg.Invoke(els, map[string]any{"triggers": "click keypress"})
//	reg.Invoke(els, "disable")
//	v, _ := reg.Invoke(els, "option", "tabindex")
//
// Names starting with an underscore are private and always rejected.
package widget
