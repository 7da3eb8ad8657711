package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/dshills/ariabutton/internal/button"
	"github.com/dshills/ariabutton/internal/config"
	"github.com/dshills/ariabutton/internal/config/watcher"
	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/history"
	"github.com/dshills/ariabutton/internal/logging"
	"github.com/dshills/ariabutton/internal/schedule"
	"github.com/dshills/ariabutton/internal/script"
	"github.com/dshills/ariabutton/internal/stream"
	"github.com/dshills/ariabutton/internal/widget"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := config.Load(app.opts.ConfigPath, app.opts.ConfigOptions...)
	if err != nil {
		app.log = logging.Null()
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	// 2. Logging
	app.log = app.newLogger(cfg)

	// 3. Event loop
	app.loop = schedule.NewLoop()

	// 4. Document and widgets
	app.doc = dom.NewDocument()
	app.reg = widget.NewRegistry(app.loop,
		widget.WithLogger(app.log),
		widget.WithDefaults(cfg.Defaults),
		widget.WithButtonOptions(button.WithHoldTiming(cfg.Hold.Delay, cfg.Hold.Interval)),
	)
	app.doc.Listen(button.EventPress, app.onPress)

	if err := app.applyButtons(cfg); err != nil {
		return &InitError{Component: "buttons", Err: err}
	}

	// 5. Script (optional)
	if app.opts.ScriptPath != "" {
		app.script = script.New(app.doc, app.reg, script.WithLogger(app.log))
		app.script.Bind()
		if err := app.script.DoFile(context.Background(), app.opts.ScriptPath); err != nil {
			return &InitError{Component: "script", Err: err}
		}
	}

	// 6. Press history and feed (optional)
	if app.opts.HistoryPath != "" {
		store, err := history.Open(app.opts.HistoryPath)
		if err != nil {
			return &InitError{Component: "history", Err: err}
		}
		app.history = store
	}
	if app.opts.Listen != "" {
		ln, err := net.Listen("tcp", app.opts.Listen)
		if err != nil {
			return &InitError{Component: "stream", Err: err}
		}
		app.listener = ln
		app.hub = stream.NewHub(
			stream.WithLogger(app.log),
			stream.WithHello(func() stream.Message {
				return stream.Message{Type: stream.TypeHello, Buttons: app.ButtonIDs()}
			}),
		)
		app.log.Info("press feed on ws://%s%s", ln.Addr(), stream.Path)
	}

	// 7. Config watcher (optional, non-fatal)
	if app.opts.Watch && app.opts.ConfigPath != "" {
		w, err := watcher.New(app.opts.ConfigPath)
		if err != nil {
			app.log.Warn("config reload disabled: %v", err)
		} else {
			app.watcher = w
		}
	}

	app.log.Debug("bootstrap complete")
	return nil
}

func (app *Application) newLogger(cfg *config.Config) *logging.Logger {
	if app.opts.LogOutput == nil {
		return logging.Null()
	}
	level := cfg.LogLevel()
	if app.opts.LogLevel != "" {
		level = logging.ParseLevel(app.opts.LogLevel)
	}
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Output = app.opts.LogOutput
	return logging.New(lc)
}

// applyButtons makes the document's buttons match cfg: configured ids are
// created or re-initialized with the defaults and their own options, and
// live buttons no longer configured are destroyed. Every button is
// attempted; the errors are joined.
func (app *Application) applyButtons(cfg *config.Config) error {
	app.reg.ReplaceDefaults(cfg.Defaults)

	var errs []error
	keep := make(map[string]bool, len(cfg.Buttons))
	order := make([]string, 0, len(cfg.Buttons))

	for _, bc := range cfg.Buttons {
		keep[bc.ID] = true
		el, ok := app.doc.Element(bc.ID)
		if !ok {
			var err error
			if el, err = app.doc.CreateElement(bc.ID); err != nil {
				errs = append(errs, err)
				continue
			}
		}

		opts := make(map[string]any, len(cfg.Defaults)+len(bc.Options))
		for k, v := range cfg.Defaults {
			opts[k] = v
		}
		for k, v := range bc.Options {
			opts[k] = v
		}
		if _, err := app.reg.Invoke([]*dom.Element{el}, opts); err != nil {
			errs = append(errs, fmt.Errorf("button %q: %w", bc.ID, err))
			continue
		}
		order = append(order, bc.ID)
	}

	for _, el := range widget.Bound(app.doc.Elements()) {
		if keep[el.ID()] {
			continue
		}
		if _, err := app.reg.Invoke([]*dom.Element{el}, widget.OpDestroy); err != nil {
			errs = append(errs, err)
			continue
		}
		app.log.Info("removed button %s", el.ID())
	}

	app.mu.Lock()
	app.order = order
	app.mu.Unlock()
	return errors.Join(errs...)
}

// onPress counts presses for the status line, records and publishes them,
// and schedules a redraw.
func (app *Application) onPress(ev *dom.Event) {
	detail, ok := ev.Detail.(button.PressDetail)
	if !ok || ev.Target == nil {
		return
	}
	id := ev.Target.ID()
	app.metrics.RecordPress(id, detail.Repeat)
	app.log.Debug("press %s count=%d gesture=%s", id, detail.Count, detail.Gesture)

	when := ev.Timestamp
	if when.IsZero() {
		when = time.Now()
	}
	if app.history != nil {
		err := app.history.Record(context.Background(), history.Entry{
			Button:  id,
			Gesture: detail.Gesture.String(),
			Mouse:   int(detail.Button),
			Count:   detail.Count,
			Repeat:  detail.Repeat,
			Time:    when,
		})
		if err != nil {
			app.log.Warn("%v", err)
		}
	}
	if app.hub != nil {
		app.hub.Publish(stream.Message{
			Type:    stream.TypePress,
			Button:  id,
			Gesture: detail.Gesture.String(),
			Mouse:   int(detail.Button),
			Count:   detail.Count,
			Repeat:  detail.Repeat,
			Time:    when,
		})
	}
	app.requestRedraw()
}
