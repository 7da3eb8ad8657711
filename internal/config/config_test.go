package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/dshills/ariabutton/internal/input/key"
	"github.com/dshills/ariabutton/internal/logging"
)

type memFS map[string]string

func (m memFS) Open(string) (fs.File, error) { return nil, fs.ErrNotExist }

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func (m memFS) Stat(string) (fs.FileInfo, error) { return nil, fs.ErrNotExist }

func noEnv() []string { return nil }

func TestLoadFile(t *testing.T) {
	files := memFS{"/buttons.toml": `
[logging]
level = "DEBUG"

[hold]
delay = "300ms"
interval = 25

[defaults]
triggers = "click keypress"
tabindex = 1

[[button]]
id = "save"
label = "Save"
keys = "enter"

[[button]]
id = "quit"
disabled = true
`}

	cfg, err := Load("/buttons.toml", WithFS(files), WithEnviron(noEnv))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Path != "/buttons.toml" {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.Logging.Level != "debug" || cfg.LogLevel() != logging.LevelDebug {
		t.Errorf("logging level = %q", cfg.Logging.Level)
	}
	if cfg.Hold.Delay != 300*time.Millisecond || cfg.Hold.Interval != 25*time.Millisecond {
		t.Errorf("hold = %+v", cfg.Hold)
	}
	if cfg.Defaults["triggers"] != "click keypress" {
		t.Errorf("defaults = %v", cfg.Defaults)
	}

	if len(cfg.Buttons) != 2 {
		t.Fatalf("buttons = %d, want 2", len(cfg.Buttons))
	}
	save := cfg.Buttons[0]
	if save.ID != "save" || save.Label != "Save" {
		t.Errorf("first button = %+v", save)
	}
	if _, ok := save.Options["id"]; ok {
		t.Error("id leaked into options")
	}
	if save.Options["label"] != "Save" || save.Options["keys"] != "enter" {
		t.Errorf("save options = %v", save.Options)
	}

	quit, ok := cfg.Button("quit")
	if !ok {
		t.Fatal("Button(quit) not found")
	}
	if quit.Label != "quit" || quit.Options["label"] != "quit" {
		t.Errorf("label should default to id: %+v", quit)
	}
	if quit.Options["disabled"] != true {
		t.Errorf("quit options = %v", quit.Options)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", WithEnviron(noEnv))
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if len(cfg.Buttons) != len(def.Buttons) {
		t.Errorf("buttons = %d, want defaults", len(cfg.Buttons))
	}
	if cfg.Hold.Delay != 200*time.Millisecond || cfg.Hold.Interval != 50*time.Millisecond {
		t.Errorf("hold = %+v", cfg.Hold)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/absent.toml", WithFS(memFS{}), WithoutEnv())
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if len(cfg.Buttons) == 0 {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	files := memFS{"/c.toml": `
[logging]
level = "warn"

[defaults]
tabindex = 4
`}
	env := func() []string {
		return []string{
			"ARIABUTTON_LOG_LEVEL=error",
			"ARIABUTTON_DEFAULTS_TABINDEX=7",
			"ARIABUTTON_HOLD_INTERVAL=10ms",
		}
	}

	cfg, err := Load("/c.toml", WithFS(files), WithEnviron(env))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("level = %q, want env value", cfg.Logging.Level)
	}
	if cfg.Defaults["tabindex"] != int64(7) {
		t.Errorf("tabindex = %v, want env value 7", cfg.Defaults["tabindex"])
	}
	if cfg.Hold.Interval != 10*time.Millisecond {
		t.Errorf("interval = %v", cfg.Hold.Interval)
	}
}

func TestLoadEnvPrefix(t *testing.T) {
	env := func() []string { return []string{"DEMO_LOG_LEVEL=debug", "ARIABUTTON_LOG_LEVEL=error"} }
	cfg, err := Load("", WithEnviron(env), WithEnvPrefix("DEMO_"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want value from DEMO_ prefix", cfg.Logging.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want error
	}{
		{"bad level", "[logging]\nlevel = \"loud\"\n", ErrInvalidConfig},
		{"logging not table", "logging = 3\n", ErrInvalidConfig},
		{"bad delay", "[hold]\ndelay = \"soon\"\n", ErrInvalidConfig},
		{"negative interval", "[hold]\ninterval = -5\n", ErrInvalidConfig},
		{"missing id", "[[button]]\nlabel = \"x\"\n", ErrInvalidConfig},
		{"duplicate id", "[[button]]\nid = \"a\"\n[[button]]\nid = \"a\"\n", ErrDuplicateButton},
		{"bad keys", "[[button]]\nid = \"a\"\nkeys = \"enter nope\"\n", key.ErrInvalidKey},
		{"bad triggers", "[defaults]\ntriggers = \"poke\"\n", ErrInvalidConfig},
		{"bad tabindex", "[defaults]\ntabindex = \"high\"\n", ErrInvalidConfig},
		{"label not string", "[[button]]\nid = \"a\"\nlabel = 3\n", ErrInvalidConfig},
		{"button not array", "button = \"x\"\n", ErrInvalidConfig},
		{"bad color", "[theme]\naccent = \"teal\"\n", ErrInvalidConfig},
		{"color not string", "[theme]\nforeground = 12\n", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := memFS{"/c.toml": tt.toml}
			_, err := Load("/c.toml", WithFS(files), WithoutEnv())
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFieldErrorPath(t *testing.T) {
	_, err := Decode(map[string]any{
		"button": []any{
			map[string]any{"id": "a"},
			map[string]any{"id": "b", "keys": "bogus"},
		},
	})
	var ferr *FieldError
	if !errors.As(err, &ferr) {
		t.Fatalf("error = %v, want *FieldError", err)
	}
	if ferr.Path != "button[1].keys" {
		t.Errorf("Path = %q", ferr.Path)
	}
}

func TestDecodeDurationForms(t *testing.T) {
	cfg, err := Decode(map[string]any{
		"hold": map[string]any{"delay": 150 * time.Millisecond, "interval": 20},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hold.Delay != 150*time.Millisecond || cfg.Hold.Interval != 20*time.Millisecond {
		t.Errorf("hold = %+v", cfg.Hold)
	}
}

func TestDecodeButtonsTyped(t *testing.T) {
	cfg, err := Decode(map[string]any{
		"button": []map[string]any{{"id": "x"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Buttons) != 1 || cfg.Buttons[0].ID != "x" {
		t.Errorf("buttons = %+v", cfg.Buttons)
	}
}

func TestDefaultIndependent(t *testing.T) {
	a := Default()
	a.Buttons[0].Options["label"] = "changed"
	a.Defaults["x"] = 1

	b := Default()
	if b.Buttons[0].Options["label"] != "OK" || len(b.Defaults) != 0 {
		t.Error("Default shares mutable state")
	}
}

func TestDecodeTheme(t *testing.T) {
	cfg, err := Decode(map[string]any{
		"theme": map[string]any{"accent": "#ff8800"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme.Accent != "#ff8800" || cfg.Theme.Foreground != Default().Theme.Foreground {
		t.Errorf("theme = %+v", cfg.Theme)
	}
	if _, err := cfg.Theme.Build(); err != nil {
		t.Errorf("Build: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	files := memFS{"/buttons.yml": `
logging:
  level: warn
hold:
  delay: 150ms
defaults:
  tabindex: 1
button:
  - id: save
    keys: [enter]
  - id: quit
    disabled: true
`}

	cfg, err := Load("/buttons.yml", WithFS(files), WithEnviron(noEnv))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "warn" || cfg.Hold.Delay != 150*time.Millisecond {
		t.Errorf("logging/hold = %+v %+v", cfg.Logging, cfg.Hold)
	}
	if len(cfg.Buttons) != 2 || cfg.Buttons[0].ID != "save" || cfg.Buttons[1].Options["disabled"] != true {
		t.Errorf("buttons = %+v", cfg.Buttons)
	}
	if cfg.Defaults["tabindex"] != 1 {
		t.Errorf("defaults = %v", cfg.Defaults)
	}
}

func TestQuery(t *testing.T) {
	files := memFS{"/buttons.toml": `
[hold]
delay = "300ms"

[[button]]
id = "a"
tabindex = 0

[[button]]
id = "b"
tabindex = 3
`}
	raw, err := Raw("/buttons.toml", WithFS(files), WithEnviron(func() []string {
		return []string{"ARIABUTTON_HOLD_INTERVAL=20ms"}
	}))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		expr string
		want string
	}{
		{"button[0].id", "a"},
		{"button[?tabindex > `0`].id | [0]", "b"},
		{"hold.interval", "20ms"},
		{"length(button)", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Query(raw, tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			if s := fmt.Sprint(got); s != tt.want {
				t.Errorf("Query = %v (%T), want %s", got, got, tt.want)
			}
		})
	}

	if _, err := Query(raw, "button[?"); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("bad expression error = %v, want ErrInvalidQuery", err)
	}
}

func TestDump(t *testing.T) {
	var buf strings.Builder
	err := Dump(&buf, map[string]any{
		"hold":   map[string]any{"delay": 300 * time.Millisecond},
		"button": []any{map[string]any{"id": "ok", "tabindex": int64(2)}},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"delay: 300ms", "- id: ok", "tabindex: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump output missing %q:\n%s", want, out)
		}
	}
}
