package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory FileSystem.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return memFileInfo(path), nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo string

func (f memFileInfo) Name() string       { return string(f) }
func (f memFileInfo) Size() int64        { return 0 }
func (f memFileInfo) Mode() fs.FileMode  { return 0o644 }
func (f memFileInfo) ModTime() time.Time { return time.Time{} }
func (f memFileInfo) IsDir() bool        { return false }
func (f memFileInfo) Sys() any           { return nil }

func TestFileLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/buttons.toml", `
[logging]
level = "debug"

[defaults]
tabindex = 2
triggers = "click keypress"

[[button]]
id = "ok"
label = "OK"
keys = [13, 32]

[[button]]
id = "cancel"
disabled = true
`)

	config, err := NewFileLoaderWithFS(memfs, "/buttons.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	logging, ok := config["logging"].(map[string]any)
	if !ok || logging["level"] != "debug" {
		t.Errorf("logging = %v", config["logging"])
	}

	defaults := config["defaults"].(map[string]any)
	if defaults["tabindex"] != int64(2) {
		t.Errorf("tabindex = %v (%T), want int64 2", defaults["tabindex"], defaults["tabindex"])
	}

	buttons, ok := config["button"].([]any)
	if !ok || len(buttons) != 2 {
		t.Fatalf("button = %#v, want two tables", config["button"])
	}
	first := buttons[0].(map[string]any)
	if first["id"] != "ok" {
		t.Errorf("first id = %v", first["id"])
	}
	if keys, ok := first["keys"].([]any); !ok || len(keys) != 2 {
		t.Errorf("keys = %#v", first["keys"])
	}
}

func TestFileLoader_Missing(t *testing.T) {
	config, err := NewFileLoaderWithFS(NewMemFS(), "/nope.toml").Load()
	if err != nil || config != nil {
		t.Errorf("missing file = (%v, %v), want (nil, nil)", config, err)
	}
}

func TestFileLoader_Invalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[defaults]\ntabindex = = 3\n")

	_, err := NewFileLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
	if !strings.Contains(perr.Error(), "line 2") {
		t.Errorf("Error() = %q", perr.Error())
	}
}

func TestFileLoader_YAML(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/base.toml", "[hold]\ndelay = \"300ms\"\n")
	memfs.AddFile("/buttons.yaml", `
"@include": base.toml
defaults:
  tabindex: 2
  keys: [13, space]
button:
  - id: ok
    label: OK
  - id: repeat
    triggers: leftmousehold keydown
`)

	config, err := NewFileLoaderWithFS(memfs, "/buttons.yaml").LoadWithIncludes("/buttons.yaml", 4)
	if err != nil {
		t.Fatal(err)
	}
	defaults, ok := config["defaults"].(map[string]any)
	if !ok {
		t.Fatalf("defaults = %T", config["defaults"])
	}
	if defaults["tabindex"] != 2 {
		t.Errorf("tabindex = %v (%T), want int 2", defaults["tabindex"], defaults["tabindex"])
	}
	if keys, ok := defaults["keys"].([]any); !ok || len(keys) != 2 || keys[1] != "space" {
		t.Errorf("keys = %#v", defaults["keys"])
	}
	buttons, ok := config["button"].([]any)
	if !ok || len(buttons) != 2 {
		t.Fatalf("button = %#v", config["button"])
	}
	if buttons[1].(map[string]any)["triggers"] != "leftmousehold keydown" {
		t.Errorf("second button = %v", buttons[1])
	}
	if v, _ := getByPath(config, "hold.delay"); v != "300ms" {
		t.Errorf("included hold.delay = %v", v)
	}
}

func TestFileLoader_YAMLInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yml", "defaults:\n\ttabindex: 1\n")

	_, err := NewFileLoaderWithFS(memfs, "/bad.yml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.yml" || perr.Line == 0 {
		t.Errorf("ParseError = %+v, want path and line", perr)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.toml", FormatTOML},
		{"a.yaml", FormatYAML},
		{"A.YML", FormatYAML},
		{"noext", FormatTOML},
	}
	for _, tt := range tests {
		if got := formatFor(tt.path); got != tt.want {
			t.Errorf("formatFor(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileLoader_LoadFromReader(t *testing.T) {
	l := NewFileLoader("unused")
	config, err := l.LoadFromReader(strings.NewReader(`label = "x"`))
	if err != nil {
		t.Fatal(err)
	}
	if config["label"] != "x" {
		t.Errorf("label = %v", config["label"])
	}
	if l.Path() != "unused" {
		t.Errorf("Path() = %q", l.Path())
	}
}

func TestFileLoader_LoadWithIncludes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/etc/base.toml", `
[defaults]
tabindex = 1
triggers = "click"
`)
	memfs.AddFile("/etc/main.toml", `
"@include" = "base.toml"

[defaults]
tabindex = 5
`)

	config, err := NewFileLoaderWithFS(memfs, "/etc/main.toml").LoadWithIncludes("/etc/main.toml", 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := config[IncludeKey]; ok {
		t.Error("include key left in result")
	}
	defaults := config["defaults"].(map[string]any)
	if defaults["tabindex"] != int64(5) {
		t.Errorf("tabindex = %v, want including file's 5", defaults["tabindex"])
	}
	if defaults["triggers"] != "click" {
		t.Errorf("triggers = %v, want included value", defaults["triggers"])
	}
}

func TestFileLoader_IncludeErrors(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/loop.toml", `"@include" = "loop.toml"`)
	memfs.AddFile("/bad.toml", `"@include" = 3`)

	l := NewFileLoaderWithFS(memfs, "")
	if _, err := l.LoadWithIncludes("/loop.toml", 3); !errors.Is(err, ErrIncludeDepth) {
		t.Errorf("recursive include = %v, want ErrIncludeDepth", err)
	}
	if _, err := l.LoadWithIncludes("/bad.toml", 3); !errors.Is(err, ErrBadInclude) {
		t.Errorf("bad include = %v, want ErrBadInclude", err)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"logging":  map[string]any{"level": "info"},
		"defaults": map[string]any{"tabindex": 0, "keys": "13"},
		"keep":     true,
	}
	src := map[string]any{
		"defaults": map[string]any{"tabindex": 3},
		"logging":  "flat",
	}

	got := DeepMerge(dst, src)

	defaults := got["defaults"].(map[string]any)
	if defaults["tabindex"] != 3 || defaults["keys"] != "13" {
		t.Errorf("defaults = %v", defaults)
	}
	if got["logging"] != "flat" {
		t.Errorf("non-map source should replace: %v", got["logging"])
	}
	if got["keep"] != true {
		t.Error("untouched key lost")
	}
	if DeepMerge(nil, src)["logging"] != "flat" {
		t.Error("nil dst not allocated")
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"defaults": map[string]any{"tabindex": 1},
		"button":   []any{map[string]any{"id": "ok"}},
	}
	c := Clone(src)

	c["defaults"].(map[string]any)["tabindex"] = 9
	c["button"].([]any)[0].(map[string]any)["id"] = "changed"

	if src["defaults"].(map[string]any)["tabindex"] != 1 {
		t.Error("nested map shared")
	}
	if src["button"].([]any)[0].(map[string]any)["id"] != "ok" {
		t.Error("map inside slice shared")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) != nil")
	}
}

func TestEnvLoader_Load(t *testing.T) {
	env := []string{
		"ARIABUTTON_LOG_LEVEL=debug",
		"ARIABUTTON_HOLD_DELAY=300ms",
		"ARIABUTTON_DEFAULTS_TABINDEX=1",
		"ARIABUTTON_DEFAULTS_KEYS=[13, 27]",
		"ARIABUTTON_DEFAULTS_DISABLED=yes",
		"OTHER_VAR=ignored",
		"ARIABUTTON_=skipped",
	}
	l := NewEnvLoader(DefaultEnvPrefix, WithEnviron(func() []string { return env }))

	config, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}

	if v, _ := getByPath(config, "logging.level"); v != "debug" {
		t.Errorf("logging.level = %v", v)
	}
	if v, _ := getByPath(config, "hold.delay"); v != 300*time.Millisecond {
		t.Errorf("hold.delay = %v (%T)", v, v)
	}
	if v, _ := getByPath(config, "defaults.tabindex"); v != int64(1) {
		t.Errorf("defaults.tabindex = %v (%T), want int64 1", v, v)
	}
	if v, _ := getByPath(config, "defaults.keys"); len(v.([]any)) != 2 {
		t.Errorf("defaults.keys = %v", v)
	}
	if v, _ := getByPath(config, "defaults.disabled"); v != true {
		t.Errorf("defaults.disabled = %v", v)
	}
	if _, ok := config["other"]; ok {
		t.Error("unprefixed variable loaded")
	}
	if len(config) != 3 {
		t.Errorf("sections = %v", config)
	}
}

func TestEnvLoader_Mapping(t *testing.T) {
	env := []string{"APP_COLOR=red"}
	l := NewEnvLoader("APP_",
		WithEnviron(func() []string { return env }),
		WithMapping(map[string]string{"APP_COLOR": "theme.button.color"}))

	config, _ := l.Load()
	if v, _ := getByPath(config, "theme.button.color"); v != "red" {
		t.Errorf("mapped value = %v", v)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	tests := []struct {
		env  string
		want string
	}{
		{"ARIABUTTON_DEFAULTS_TABINDEX", "defaults.tabindex"},
		{"ARIABUTTON_DEFAULTS_TAB_INDEX", "defaults.tabindex"},
		{"ARIABUTTON_VERBOSE", "verbose"},
		{"ARIABUTTON_SECTION_", ""},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Off", false},
		{"1", int64(1)},
		{"0", int64(0)},
		{"-1", int64(-1)},
		{"2.5", 2.5},
		{"50ms", 50 * time.Millisecond},
		{"click keypress", "click keypress"},
		{"[oops", "[oops"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}

func TestParseValueJSON(t *testing.T) {
	v, ok := parseValue(`{"keys": ["enter", 32], "disabled": false}`).(map[string]any)
	if !ok {
		t.Fatalf("object parsed as %T", v)
	}
	keys, ok := v["keys"].([]any)
	if !ok || len(keys) != 2 || keys[0] != "enter" || keys[1] != float64(32) {
		t.Errorf("keys = %#v", v["keys"])
	}
	if v["disabled"] != false {
		t.Errorf("disabled = %v", v["disabled"])
	}
}

func getByPath(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = data
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[p]; !ok {
			return nil, false
		}
	}
	return cur, true
}
