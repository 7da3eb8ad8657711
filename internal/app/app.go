// Package app wires the configuration, the button widgets, the script
// engine and the terminal front end together and runs them on a single
// event loop.
package app

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/dshills/ariabutton/internal/config"
	"github.com/dshills/ariabutton/internal/config/watcher"
	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/history"
	"github.com/dshills/ariabutton/internal/input/mouse"
	"github.com/dshills/ariabutton/internal/logging"
	"github.com/dshills/ariabutton/internal/schedule"
	"github.com/dshills/ariabutton/internal/script"
	"github.com/dshills/ariabutton/internal/stream"
	"github.com/dshills/ariabutton/internal/term"
	"github.com/dshills/ariabutton/internal/widget"
)

// Application is the central coordinator for all components.
//
// Every widget, script and renderer call happens on the loop goroutine;
// other goroutines reach them only through loop.Post.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	cfg     *config.Config
	log     *logging.Logger
	loop    *schedule.Loop
	metrics *Metrics

	// Widgets
	doc   *dom.Document
	reg   *widget.Registry
	order []string

	// Extensions
	script   *script.Engine
	watcher  *watcher.Watcher
	history  *history.Store
	hub      *stream.Hub
	listener net.Listener

	// Front end
	renderer      *term.Renderer
	translator    *term.Translator
	redrawPending bool

	// State
	running     atomic.Bool
	quitting    atomic.Bool
	cancel      context.CancelFunc
	releaseOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// ScriptPath is a Lua file defining press handlers.
	ScriptPath string

	// LogLevel overrides the configured level when not empty.
	LogLevel string

	// LogOutput receives log lines. Nil discards them, since the terminal
	// is owned by the renderer.
	LogOutput io.Writer

	// Watch reloads the configuration when its file changes.
	Watch bool

	// ConfigOptions are passed to every config.Load.
	ConfigOptions []config.LoadOption

	// Mouse configures double-click detection.
	Mouse mouse.Config

	// HistoryPath is a SQLite database recording every press.
	HistoryPath string

	// Listen is the address of the websocket press feed, e.g.
	// "127.0.0.1:7070". Empty disables it.
	Listen string
}

// New creates an Application and starts every component except the
// terminal.
func New(opts Options) (*Application, error) {
	if opts.Mouse == (mouse.Config{}) {
		opts.Mouse = mouse.DefaultConfig()
	}
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
	}

	if err := app.bootstrap(); err != nil {
		app.release()
		return nil, err
	}
	return app, nil
}

// SetRenderer sets the terminal renderer. Must be called before Run.
func (app *Application) SetRenderer(r *term.Renderer) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	if theme, err := app.cfg.Theme.Build(); err == nil {
		r.SetTheme(theme)
	}
	app.renderer = r
	return nil
}

// Run initializes the terminal and processes events until Quit, Shutdown
// or ctx is done. It returns ErrQuit after Quit and nil after Shutdown.
func (app *Application) Run(ctx context.Context) error {
	app.mu.Lock()
	if app.running.Load() {
		app.mu.Unlock()
		return ErrAlreadyRunning
	}
	if app.renderer == nil {
		app.mu.Unlock()
		return ErrNoRenderer
	}
	runCtx, cancel := context.WithCancel(ctx)
	app.cancel = cancel
	app.running.Store(true)
	app.mu.Unlock()

	defer func() {
		cancel()
		app.running.Store(false)
		app.release()
	}()

	if err := app.renderer.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer app.renderer.Shutdown()

	app.translator = term.NewTranslator(app.doc, app.opts.Mouse)
	go app.pollEvents(runCtx)
	if app.watcher != nil {
		go app.watchConfig(runCtx)
	}
	if app.listener != nil {
		served := make(chan struct{})
		defer func() {
			cancel()
			<-served
		}()
		go func() {
			defer close(served)
			if err := stream.Serve(runCtx, app.listener, app.hub); err != nil {
				app.log.Warn("press feed: %v", err)
			}
		}()
	}
	app.requestRedraw()

	app.log.Info("running with %d buttons", len(app.order))
	err := app.loop.Run(runCtx)

	switch {
	case app.quitting.Load():
		return ErrQuit
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, context.Canceled):
		return nil
	default:
		return err
	}
}

// Quit stops Run, which then returns ErrQuit.
func (app *Application) Quit() {
	app.quitting.Store(true)
	app.stop()
}

// Shutdown stops Run if it is running and releases every component. It is
// safe to call more than once and from any goroutine.
func (app *Application) Shutdown() {
	if app.stop() {
		return
	}
	app.release()
}

// stop cancels a running Run, which releases components on its way out.
func (app *Application) stop() bool {
	app.mu.RLock()
	cancel := app.cancel
	app.mu.RUnlock()

	if cancel != nil && app.running.Load() {
		cancel()
		return true
	}
	return false
}

// release closes components in reverse initialization order.
func (app *Application) release() {
	app.releaseOnce.Do(func() {
		if app.hub != nil {
			app.hub.Close()
		}
		if app.listener != nil {
			_ = app.listener.Close()
		}
		if app.history != nil {
			if err := app.history.Close(); err != nil {
				app.log.Warn("closing history: %v", err)
			}
		}
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.log.Warn("closing watcher: %v", err)
			}
		}
		if app.script != nil {
			app.script.Close()
		}
		if app.loop != nil {
			app.loop.Close()
		}
	})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Document returns the document holding the button elements.
func (app *Application) Document() *dom.Document {
	return app.doc
}

// Registry returns the widget registry.
func (app *Application) Registry() *widget.Registry {
	return app.reg
}

// Script returns the script engine (may be nil).
func (app *Application) Script() *script.Engine {
	return app.script
}

// Loop returns the event loop.
func (app *Application) Loop() *schedule.Loop {
	return app.loop
}

// History returns the press history store (may be nil).
func (app *Application) History() *history.Store {
	return app.history
}

// FeedAddr returns the address the press feed listens on, or "" when it
// is disabled.
func (app *Application) FeedAddr() string {
	if app.listener == nil {
		return ""
	}
	return app.listener.Addr().String()
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.log
}

// ButtonIDs returns the configured button ids in display order.
func (app *Application) ButtonIDs() []string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	out := make([]string, len(app.order))
	copy(out, app.order)
	return out
}
