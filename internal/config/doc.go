// Package config loads the button demo configuration.
//
// Configuration comes from two layers, lowest first:
//
//  1. a TOML or YAML file (with optional "@include" files beneath it)
//  2. ARIABUTTON_* environment variables
//
// A file looks like:
//
//	[logging]
//	level = "debug"
//
//	[hold]
//	delay = "200ms"
//	interval = "50ms"
//
//	[theme]              # hex colors, blended for hover and press states
//	accent = "#88c0d0"
//
//	[defaults]           # options applied to every button
//	triggers = "click keypress leftmousehold"
//
//	[[button]]
//	id = "ok"
//	label = "OK"
//	keys = "enter space"
//
// Every key of a [[button]] table other than id is a button option; label
// is stored verbatim and used by the terminal renderer.
//
// # Sub-packages
//
//   - loader: raw TOML, YAML and environment loading, DeepMerge and Clone
//   - watcher: fsnotify-based change notification for live reload
package config
