// Package scroll maps the document scroll offset to visual effects: background
// parallax, fading, and reveal-on-enter flags.
package scroll

import "math"

// DefaultParallax is the background speed relative to the page.
const DefaultParallax = 0.5

// BackgroundOffset returns the background position for a scroll offset.
func BackgroundOffset(offset, factor float64) float64 {
	return offset * factor
}

// Opacity fades content out over the first viewport height of scrolling.
// The result is always in [0, 1] and never increases with offset.
func Opacity(offset, viewportHeight float64) float64 {
	if viewportHeight <= 0 {
		if offset > 0 {
			return 0
		}
		return 1
	}
	o := 1 - math.Min(offset/viewportHeight, 1)
	return math.Max(0, math.Min(1, o))
}

// Rect is the vertical extent of an element relative to the top of the viewport.
type Rect struct {
	Top, Bottom float64
}

// InView reports whether any part of r lies inside a viewport of the given height.
func InView(r Rect, viewportHeight float64) bool {
	return r.Top < viewportHeight && r.Bottom >= 0
}

// Reveal tracks elements that have entered the viewport. Once revealed an
// element stays revealed. The zero value is ready to use.
type Reveal struct {
	at map[string]float64 // reveal time in milliseconds
}

// Observe records the element's current rect at time now and returns whether
// it is revealed.
func (r *Reveal) Observe(id string, rect Rect, viewportHeight, now float64) bool {
	if _, ok := r.at[id]; ok {
		return true
	}
	if !InView(rect, viewportHeight) {
		return false
	}
	if r.at == nil {
		r.at = make(map[string]float64)
	}
	r.at[id] = now
	return true
}

func (r *Reveal) Visible(id string) bool {
	_, ok := r.at[id]
	return ok
}

// Alpha is the fade-in opacity of id at time now: 0 until revealed, then a
// linear ramp to 1 over fade milliseconds.
func (r *Reveal) Alpha(id string, now, fade float64) float64 {
	t, ok := r.at[id]
	if !ok {
		return 0
	}
	if fade <= 0 {
		return 1
	}
	return math.Max(0, math.Min(1, (now-t)/fade))
}
