// Package script runs Lua press handlers against the buttons of a document.
//
// A script sees a sandboxed Lua state (base, table, string and math
// libraries; no io, os, debug or file loading) and these globals:
//
//	button(id, [op], ...)   invoke a widget operation on element id
//	log(fmt, ...)           write an info line to the application log
//
// If the script defines a global on_press function it is called for every
// press in the document:
//
//	function on_press(id, count, gesture, repeat)
//	  if id == "ok" and count == 3 then
//	    button("ok", "disable")
//	  end
//	end
//
// An Engine is not safe for concurrent use; call it from the goroutine that
// dispatches the document's events.
package script
