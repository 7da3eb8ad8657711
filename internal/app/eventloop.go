package app

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/widget"
)

// statusHint follows the press counters on the status line.
const statusHint = "[tab] focus  [q] quit"

// pollEvents forwards terminal events to the loop. PollEvent returns nil
// once the screen is finalized, which ends the goroutine.
func (app *Application) pollEvents(ctx context.Context) {
	screen := app.renderer.Screen()
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := app.loop.Post(func() { app.handleEvent(ev) }); err != nil {
			app.metrics.RecordInputDropped()
		}
	}
}

// watchConfig forwards config file changes to the loop.
func (app *Application) watchConfig(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-app.watcher.Events():
			if !ok {
				return
			}
			app.log.Debug("config %s: %s", ev.Path, ev.Op)
			if ev.Removed() {
				continue
			}
			_ = app.loop.Post(func() {
				if err := app.Reload(); err == nil {
					app.redraw()
				}
			})
		case err, ok := <-app.watcher.Errors():
			if !ok {
				return
			}
			app.log.Warn("config watcher: %v", err)
		}
	}
}

// handleEvent processes one terminal event on the loop goroutine.
func (app *Application) handleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		app.metrics.RecordInput()
		if isQuitKey(e) {
			app.Quit()
			return
		}
		app.translator.Key(e)

	case *tcell.EventMouse:
		app.metrics.RecordInput()
		app.translator.Mouse(e)

	case *tcell.EventResize:
		app.renderer.Sync()

	case *tcell.EventFocus:
		if !e.Focused {
			app.translator.Reset()
		}

	default:
		return
	}
	app.redraw()
}

func isQuitKey(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return e.Rune() == 'q' && e.Modifiers() == tcell.ModNone
	}
	return false
}

// requestRedraw posts a redraw unless one is already queued.
func (app *Application) requestRedraw() {
	if app.renderer == nil || app.redrawPending {
		return
	}
	app.redrawPending = true
	if err := app.loop.Post(app.redraw); err != nil {
		app.redrawPending = false
	}
}

// redraw paints the live buttons and points the translator at the new
// layout.
func (app *Application) redraw() {
	app.redrawPending = false
	if app.renderer == nil {
		return
	}
	start := time.Now()

	ids := app.ButtonIDs()
	els := make([]*dom.Element, 0, len(ids))
	for _, id := range ids {
		if el, ok := app.doc.Element(id); ok {
			els = append(els, el)
		}
	}
	els = widget.Bound(els)

	status := app.metrics.Snapshot().StatusLine(ids)
	if status != "" {
		status += "  "
	}
	layout := app.renderer.Draw(els, status+statusHint)
	if app.translator != nil {
		app.translator.SetLayout(layout)
	}
	app.metrics.RecordRender(time.Since(start))
}
