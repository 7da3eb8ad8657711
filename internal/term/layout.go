package term

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/ariabutton/internal/dom"
)

// Layout constants in cells.
const (
	marginX  = 2
	marginY  = 1
	gapX     = 2
	rowPitch = 2
	padding  = 2 // each side of the label
)

// Rect is a screen rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout places elements on screen.
type Layout struct {
	order []*dom.Element
	rects map[*dom.Element]Rect
}

// NewLayout places els left to right, wrapping at width. The label function
// supplies the text drawn for each element.
func NewLayout(els []*dom.Element, label func(*dom.Element) string, width int) *Layout {
	l := &Layout{
		order: make([]*dom.Element, 0, len(els)),
		rects: make(map[*dom.Element]Rect, len(els)),
	}

	x, y := marginX, marginY
	for _, el := range els {
		w := uniseg.StringWidth(label(el)) + 2*padding
		if x > marginX && x+w > width-marginX {
			x = marginX
			y += rowPitch
		}
		l.order = append(l.order, el)
		l.rects[el] = Rect{X: x, Y: y, W: w, H: 1}
		x += w + gapX
	}
	return l
}

// At returns the element drawn at (x, y), or nil.
func (l *Layout) At(x, y int) *dom.Element {
	if l == nil {
		return nil
	}
	for _, el := range l.order {
		if l.rects[el].Contains(x, y) {
			return el
		}
	}
	return nil
}

// Rect returns the rectangle of el.
func (l *Layout) Rect(el *dom.Element) (Rect, bool) {
	if l == nil {
		return Rect{}, false
	}
	r, ok := l.rects[el]
	return r, ok
}

// Elements returns the laid out elements in tab order.
func (l *Layout) Elements() []*dom.Element {
	if l == nil {
		return nil
	}
	out := make([]*dom.Element, len(l.order))
	copy(out, l.order)
	return out
}

// Bottom returns the first row below every element.
func (l *Layout) Bottom() int {
	bottom := marginY
	for _, r := range l.rects {
		if r.Y+r.H > bottom {
			bottom = r.Y + r.H
		}
	}
	return bottom
}
