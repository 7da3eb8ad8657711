package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/ariabutton/internal/dom"
	"github.com/dshills/ariabutton/internal/widget"
)

// Renderer draws buttons on a tcell screen.
type Renderer struct {
	screen tcell.Screen
	theme  Theme
	mu     sync.Mutex
	layout *Layout
}

// NewRenderer creates a renderer on the real terminal.
func NewRenderer(theme Theme) (*Renderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewRendererWithScreen(screen, theme), nil
}

// NewRendererWithScreen creates a renderer on an existing screen, such as a
// tcell simulation screen.
func NewRendererWithScreen(screen tcell.Screen, theme Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Init initializes the screen and enables mouse and focus reporting.
func (r *Renderer) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.screen.Init(); err != nil {
		return err
	}
	r.screen.EnableMouse()
	r.screen.EnableFocus()
	r.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal.
func (r *Renderer) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Fini()
}

// Screen returns the underlying screen.
func (r *Renderer) Screen() tcell.Screen {
	return r.screen
}

// SetTheme replaces the theme used by the next Draw.
func (r *Renderer) SetTheme(t Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.theme = t
}

// Layout returns the layout of the last Draw.
func (r *Renderer) Layout() *Layout {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.layout
}

// Draw lays out and paints els, then writes status on the line below them.
// It returns the new layout.
func (r *Renderer) Draw(els []*dom.Element, status string) *Layout {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.screen.Size()
	layout := NewLayout(els, Label, width)
	r.layout = layout

	r.screen.Clear()
	for _, el := range layout.Elements() {
		rect, _ := layout.Rect(el)
		style := r.theme.StyleFor(el)
		text := fmt.Sprintf("%*s%s%*s", padding, "", Label(el), padding, "")
		r.putString(rect.X, rect.Y, text, style)
	}

	if y := layout.Bottom() + 1; y < height {
		r.putString(marginX, y, status, r.theme.Status)
	}
	r.screen.Show()
	return layout
}

// Sync redraws the whole screen after a resize.
func (r *Renderer) Sync() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screen.Sync()
}

// putString writes s from (x, y) one grapheme cluster at a time.
func (r *Renderer) putString(x, y int, s string, style tcell.Style) {
	width, _ := r.screen.Size()
	state := -1
	rest := s
	for len(rest) > 0 && x < width {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		runes := []rune(cluster)
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}

// LabelOption is the button option holding the drawn text.
const LabelOption = "label"

// Label returns the text drawn for el: the bound button's label option,
// or the element id.
func Label(el *dom.Element) string {
	if b, ok := widget.Instance(el); ok {
		if v, ok := b.Option(LabelOption); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return el.ID()
}
