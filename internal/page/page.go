// Package page lays out the scrollable landing document and answers the
// geometry queries the scroll effects need.
package page

import (
	"math"

	"github.com/iburimskiy/solar-system/internal/errs"
	"github.com/iburimskiy/solar-system/internal/scroll"
)

// Anchors and classes the host looks up.
const (
	Intro        = "intro"
	IntroContent = "intro-content"
	SolarSection = "solar-system-section"
	LoadButton   = "load-solar-system-btn"
	BackButton   = "back-to-main-btn"

	DescriptionClass = "planet-description"
	CanvasClass      = "planet-canvas"
)

func SectionID(body string) string     { return body + "-section" }
func CanvasID(body string) string      { return body + "-canvas" }
func DescriptionID(body string) string { return body + "-description" }

// Element is a laid out box. X and Y are document coordinates unless Fixed, in
// which case they are viewport coordinates.
type Element struct {
	ID    string
	Class string
	Body  string // owning body, if any
	X, Y  float64
	W, H  float64
	Fixed bool
}

// Page is the laid out document for one viewport size.
type Page struct {
	ViewportW, ViewportH float64
	Height               float64

	elems []*Element
	byID  map[string]*Element
}

// Layout stacks the intro, one section per body and the solar-system section.
func Layout(bodies []string, viewportW, viewportH float64, canvasSize int) *Page {
	p := &Page{
		ViewportW: viewportW,
		ViewportH: viewportH,
		byID:      make(map[string]*Element),
	}
	cs := float64(canvasSize)
	margin := math.Max(24, viewportW*0.08)

	p.add(&Element{ID: Intro, W: viewportW, H: viewportH})
	p.add(&Element{ID: IntroContent, Class: IntroContent, X: margin, Y: viewportH/2 - 80, W: viewportW - 2*margin, H: 160})
	y := viewportH

	sectionH := math.Max(cs+160, viewportH*0.75)
	for i, name := range bodies {
		p.add(&Element{ID: SectionID(name), Body: name, Y: y, W: viewportW, H: sectionH})
		top := y + (sectionH-cs)/2
		canvasX, descX := margin, margin+cs+40
		if i%2 == 1 {
			// alternate sides down the page
			canvasX = viewportW - margin - cs
			descX = margin
		}
		descW := math.Max(120, viewportW-2*margin-cs-40)
		p.add(&Element{ID: CanvasID(name), Class: CanvasClass, Body: name, X: canvasX, Y: top, W: cs, H: cs})
		p.add(&Element{ID: DescriptionID(name), Class: DescriptionClass, Body: name, X: descX, Y: top + cs/2 - 50, W: descW, H: 100})
		y += sectionH
	}

	p.add(&Element{ID: SolarSection, Y: y, W: viewportW, H: viewportH})
	p.add(&Element{ID: LoadButton, X: viewportW/2 - 110, Y: y + viewportH/2 - 24, W: 220, H: 48})
	y += viewportH

	p.add(&Element{ID: BackButton, X: viewportW - 200, Y: viewportH - 64, W: 180, H: 40, Fixed: true})
	p.Height = y
	return p
}

func (p *Page) add(e *Element) {
	p.elems = append(p.elems, e)
	p.byID[e.ID] = e
}

// Lookup finds an element by id.
func (p *Page) Lookup(id string) (*Element, error) {
	e, ok := p.byID[id]
	if !ok {
		return nil, &errs.TargetNotFoundError{Target: id}
	}
	return e, nil
}

// Query returns elements with the given class in document order.
func (p *Page) Query(class string) []*Element {
	var out []*Element
	for _, e := range p.elems {
		if e.Class == class {
			out = append(out, e)
		}
	}
	return out
}

// MaxScroll is the largest valid scroll offset.
func (p *Page) MaxScroll() float64 {
	return math.Max(0, p.Height-p.ViewportH)
}

// Rect is the element's vertical extent relative to the viewport.
func (e *Element) Rect(offset float64) scroll.Rect {
	top := e.Y
	if !e.Fixed {
		top -= offset
	}
	return scroll.Rect{Top: top, Bottom: top + e.H}
}

// ScreenY is the element's top edge in viewport coordinates.
func (e *Element) ScreenY(offset float64) float64 {
	return e.Rect(offset).Top
}

// Contains reports whether viewport point (x, y) hits the element.
func (e *Element) Contains(offset, x, y float64) bool {
	r := e.Rect(offset)
	return x >= e.X && x < e.X+e.W && y >= r.Top && y < r.Bottom
}
