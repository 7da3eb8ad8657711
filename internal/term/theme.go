package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/ariabutton/internal/button"
	"github.com/dshills/ariabutton/internal/dom"
)

// Default theme colors.
const (
	DefaultForeground = "#d8dee9"
	DefaultBackground = "#3b4252"
	DefaultAccent     = "#88c0d0"
)

// Theme holds the style of each button state.
type Theme struct {
	Normal   tcell.Style
	Over     tcell.Style
	Down     tcell.Style
	Disabled tcell.Style
	Status   tcell.Style
}

// DefaultTheme returns the theme built from the default colors.
func DefaultTheme() Theme {
	t, err := NewTheme(DefaultForeground, DefaultBackground, DefaultAccent)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTheme derives every state style from three hex colors. Hover blends
// the background toward the accent, down uses the accent itself and
// disabled fades the foreground into the background.
func NewTheme(fg, bg, accent string) (Theme, error) {
	f, err := colorful.Hex(fg)
	if err != nil {
		return Theme{}, fmt.Errorf("foreground %q: %w", fg, err)
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return Theme{}, fmt.Errorf("background %q: %w", bg, err)
	}
	a, err := colorful.Hex(accent)
	if err != nil {
		return Theme{}, fmt.Errorf("accent %q: %w", accent, err)
	}

	base := tcell.StyleDefault.Foreground(toTcell(f)).Background(toTcell(b))
	return Theme{
		Normal:   base,
		Over:     base.Background(toTcell(b.BlendLab(a, 0.4).Clamped())),
		Down:     base.Background(toTcell(a)).Foreground(toTcell(b)).Bold(true),
		Disabled: base.Foreground(toTcell(f.BlendLab(b, 0.6).Clamped())),
		Status:   tcell.StyleDefault.Foreground(toTcell(a)),
	}, nil
}

// StyleFor picks the style for el from its state classes. Focus adds an
// underline to whichever state style applies.
func (t Theme) StyleFor(el *dom.Element) tcell.Style {
	var s tcell.Style
	switch {
	case el.HasClass(button.ClassDisabled):
		s = t.Disabled
	case el.HasClass(button.ClassDown):
		s = t.Down
	case el.HasClass(button.ClassOver):
		s = t.Over
	default:
		s = t.Normal
	}
	if el.HasClass(button.ClassFocus) {
		s = s.Underline(true)
	}
	return s
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
