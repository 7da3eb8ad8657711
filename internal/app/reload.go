package app

import (
	"github.com/dshills/ariabutton/internal/config"
)

// Reload reads the configuration again and applies it: log level, theme,
// defaults and every button's options. A configuration that fails to load
// is rejected as a whole and the current one stays in effect. Must be
// called on the loop goroutine while running.
func (app *Application) Reload() error {
	cfg, err := config.Load(app.opts.ConfigPath, app.opts.ConfigOptions...)
	if err != nil {
		rerr := &ReloadError{Path: app.opts.ConfigPath, Err: err}
		app.metrics.RecordReload(rerr)
		app.log.Warn("%v", rerr)
		return rerr
	}
	err = app.apply(cfg)
	app.metrics.RecordReload(err)
	return err
}

func (app *Application) apply(cfg *config.Config) error {
	app.mu.Lock()
	prev := app.cfg
	app.cfg = cfg
	app.mu.Unlock()

	if app.opts.LogLevel == "" {
		app.log.SetLevel(cfg.LogLevel())
	}
	if prev != nil && prev.Hold != cfg.Hold {
		app.log.Warn("hold timing changes apply after restart")
	}
	if app.renderer != nil {
		if theme, err := cfg.Theme.Build(); err == nil {
			app.renderer.SetTheme(theme)
		}
	}

	if err := app.applyButtons(cfg); err != nil {
		app.log.Error("applying buttons: %v", err)
		return &ReloadError{Path: app.opts.ConfigPath, Err: err}
	}
	app.log.Info("configuration reloaded (%d buttons)", len(cfg.Buttons))
	return nil
}
