package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/ariabutton/internal/button"
	"github.com/dshills/ariabutton/internal/config/loader"
	"github.com/dshills/ariabutton/internal/input/key"
	"github.com/dshills/ariabutton/internal/input/trigger"
	"github.com/dshills/ariabutton/internal/logging"
	"github.com/dshills/ariabutton/internal/term"
)

// maxIncludeDepth bounds nested "@include" files.
const maxIncludeDepth = 8

// Config is the decoded configuration.
type Config struct {
	// Path is the file the configuration was loaded from, if any.
	Path string

	Logging LoggingConfig
	Hold    HoldConfig
	Theme   ThemeConfig

	// Defaults are options applied to every button before its own.
	Defaults map[string]any

	// Buttons are the buttons to create, in file order.
	Buttons []ButtonConfig
}

// LoggingConfig is the [logging] section.
type LoggingConfig struct {
	Level string
}

// HoldConfig is the [hold] section: the mousehold delay and repeat interval.
type HoldConfig struct {
	Delay    time.Duration
	Interval time.Duration
}

// ThemeConfig is the [theme] section: hex colors the terminal theme is
// derived from.
type ThemeConfig struct {
	Foreground string
	Background string
	Accent     string
}

// Build returns the terminal theme for these colors.
func (t ThemeConfig) Build() (term.Theme, error) {
	return term.NewTheme(t.Foreground, t.Background, t.Accent)
}

// ButtonConfig is one [[button]] table.
type ButtonConfig struct {
	ID    string
	Label string

	// Options holds every key of the table except id, label included.
	Options map[string]any
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Hold: HoldConfig{
			Delay:    button.HoldDelay,
			Interval: button.HoldInterval,
		},
		Theme: ThemeConfig{
			Foreground: term.DefaultForeground,
			Background: term.DefaultBackground,
			Accent:     term.DefaultAccent,
		},
		Defaults: map[string]any{},
		Buttons: []ButtonConfig{
			{ID: "ok", Label: "OK", Options: map[string]any{"label": "OK"}},
			{ID: "repeat", Label: "Hold me", Options: map[string]any{
				"label":    "Hold me",
				"triggers": "leftmousehold keydown",
			}},
			{ID: "off", Label: "Disabled", Options: map[string]any{
				"label":    "Disabled",
				"disabled": true,
			}},
		},
	}
}

// Button returns the button with the given id.
func (c *Config) Button(id string) (ButtonConfig, bool) {
	for _, b := range c.Buttons {
		if b.ID == id {
			return b, true
		}
	}
	return ButtonConfig{}, false
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}

type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
	envOpts   []loader.EnvOption
	skipEnv   bool
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithFS reads files from fsys instead of the OS.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(o *loadOptions) { o.fs = fsys }
}

// WithEnviron reads environment variables from environ instead of the
// process environment.
func WithEnviron(environ func() []string) LoadOption {
	return func(o *loadOptions) {
		o.envOpts = append(o.envOpts, loader.WithEnviron(environ))
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// WithoutEnv skips the environment layer.
func WithoutEnv() LoadOption {
	return func(o *loadOptions) { o.skipEnv = true }
}

// Load reads path (if not empty) and the environment and decodes the
// result over Default. A missing file is not an error.
func Load(path string, opts ...LoadOption) (*Config, error) {
	raw, err := Raw(path, opts...)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode(raw)
	if err != nil {
		if path != "" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Raw returns the merged file and environment layers without decoding
// them. Files ending in .yaml or .yml are read as YAML, others as TOML.
func Raw(path string, opts ...LoadOption) (map[string]any, error) {
	o := loadOptions{fs: loader.DefaultFS(), envPrefix: loader.DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	raw := make(map[string]any)
	if path != "" {
		file, err := loader.NewFileLoaderWithFS(o.fs, path).LoadWithIncludes(path, maxIncludeDepth)
		if err != nil {
			return nil, err
		}
		raw = loader.DeepMerge(raw, file)
	}

	if !o.skipEnv {
		env, err := loader.NewEnvLoader(o.envPrefix, o.envOpts...).Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		raw = loader.DeepMerge(raw, env)
	}
	return raw, nil
}

// Decode builds a Config from a raw map over Default. Sections that are
// absent keep their defaults; a [[button]] array replaces the default
// buttons entirely.
func Decode(raw map[string]any) (*Config, error) {
	cfg := Default()

	if v, ok := raw["logging"]; ok {
		sec, err := section("logging", v)
		if err != nil {
			return nil, err
		}
		if lv, ok := sec["level"]; ok {
			s, ok := lv.(string)
			if !ok || !logging.ValidLevel(s) {
				return nil, fieldErr("logging.level", "unknown level %v", lv)
			}
			cfg.Logging.Level = strings.ToLower(s)
		}
	}

	if v, ok := raw["hold"]; ok {
		sec, err := section("hold", v)
		if err != nil {
			return nil, err
		}
		if d, ok := sec["delay"]; ok {
			if cfg.Hold.Delay, err = duration("hold.delay", d); err != nil {
				return nil, err
			}
		}
		if d, ok := sec["interval"]; ok {
			if cfg.Hold.Interval, err = duration("hold.interval", d); err != nil {
				return nil, err
			}
		}
	}

	if v, ok := raw["theme"]; ok {
		sec, err := section("theme", v)
		if err != nil {
			return nil, err
		}
		for _, f := range []struct {
			name string
			dst  *string
		}{
			{"foreground", &cfg.Theme.Foreground},
			{"background", &cfg.Theme.Background},
			{"accent", &cfg.Theme.Accent},
		} {
			if c, ok := sec[f.name]; ok {
				s, ok := c.(string)
				if !ok {
					return nil, fieldErr("theme."+f.name, "expected a color string, got %T", c)
				}
				*f.dst = s
			}
		}
		if _, err := cfg.Theme.Build(); err != nil {
			return nil, &FieldError{Path: "theme", Message: err.Error(), Err: err}
		}
	}

	if v, ok := raw["defaults"]; ok {
		sec, err := section("defaults", v)
		if err != nil {
			return nil, err
		}
		if err := validateOptions("defaults", sec); err != nil {
			return nil, err
		}
		cfg.Defaults = loader.Clone(sec)
	}

	if v, ok := raw["button"]; ok {
		buttons, err := decodeButtons(v)
		if err != nil {
			return nil, err
		}
		cfg.Buttons = buttons
	}

	return cfg, nil
}

func section(name string, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fieldErr(name, "expected a table, got %T", v)
	}
	return m, nil
}

// duration accepts a Go duration string, a time.Duration, or an integer
// number of milliseconds. The result must be positive.
func duration(path string, v any) (time.Duration, error) {
	var d time.Duration
	switch val := v.(type) {
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return 0, fieldErr(path, "%v", err)
		}
		d = parsed
	case time.Duration:
		d = val
	case int64:
		d = time.Duration(val) * time.Millisecond
	case int:
		d = time.Duration(val) * time.Millisecond
	default:
		return 0, fieldErr(path, "expected a duration, got %T", v)
	}
	if d <= 0 {
		return 0, fieldErr(path, "must be positive, got %v", d)
	}
	return d, nil
}

func decodeButtons(v any) ([]ButtonConfig, error) {
	var tables []map[string]any
	switch val := v.(type) {
	case []map[string]any:
		tables = val
	case []any:
		for i, item := range val {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fieldErr(fmt.Sprintf("button[%d]", i), "expected a table, got %T", item)
			}
			tables = append(tables, m)
		}
	default:
		return nil, fieldErr("button", "expected an array of tables, got %T", v)
	}

	seen := make(map[string]int, len(tables))
	buttons := make([]ButtonConfig, 0, len(tables))
	for i, t := range tables {
		path := fmt.Sprintf("button[%d]", i)

		id, ok := t["id"].(string)
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fieldErr(path+".id", "required string")
		}
		if prev, dup := seen[id]; dup {
			return nil, &FieldError{
				Path:    path + ".id",
				Message: fmt.Sprintf("%q already used by button[%d]", id, prev),
				Err:     ErrDuplicateButton,
			}
		}
		seen[id] = i

		opts := make(map[string]any, len(t))
		for k, v := range t {
			if k != "id" {
				opts[k] = v
			}
		}
		if err := validateOptions(path, opts); err != nil {
			return nil, err
		}

		label := id
		if l, ok := t["label"]; ok {
			s, ok := l.(string)
			if !ok {
				return nil, fieldErr(path+".label", "expected a string, got %T", l)
			}
			label = s
		}
		opts["label"] = label

		buttons = append(buttons, ButtonConfig{ID: id, Label: label, Options: opts})
	}
	return buttons, nil
}

// validateOptions checks the options with behavior so that a bad file is
// reported at load time rather than when a button is created.
func validateOptions(path string, opts map[string]any) error {
	if v, ok := opts[button.OptionKeys]; ok {
		if _, err := key.ParseSet(v); err != nil {
			return &FieldError{Path: path + ".keys", Message: err.Error(), Err: err}
		}
	}
	if v, ok := opts[button.OptionTriggers]; ok {
		if _, err := trigger.ParseMask(v); err != nil {
			return &FieldError{Path: path + ".triggers", Message: err.Error(), Err: err}
		}
	}
	if v, ok := opts[button.OptionTabIndex]; ok {
		if _, err := button.NormalizeTabIndex(v); err != nil {
			return &FieldError{Path: path + ".tabindex", Message: err.Error(), Err: err}
		}
	}
	return nil
}
