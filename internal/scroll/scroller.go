package scroll

import "math"

// Scroller owns the document scroll offset. Offsets are clamped to [0, Max].
type Scroller struct {
	offset float64
	max    float64

	// smooth scroll in progress
	from, to  float64
	elapsed   float64
	duration  float64
	animating bool
}

func (s *Scroller) Offset() float64 { return s.offset }

func (s *Scroller) Max() float64 { return s.max }

// SetMax changes the scrollable range, e.g. after a resize.
func (s *Scroller) SetMax(limit float64) {
	s.max = math.Max(0, limit)
	s.offset = s.clamp(s.offset)
	s.to = s.clamp(s.to)
}

// ScrollBy moves the offset by delta and cancels any smooth scroll.
func (s *Scroller) ScrollBy(delta float64) {
	s.ScrollTo(s.offset + delta)
}

// ScrollTo jumps to offset.
func (s *Scroller) ScrollTo(offset float64) {
	s.animating = false
	s.offset = s.clamp(offset)
}

// SmoothTo animates toward offset over duration milliseconds.
func (s *Scroller) SmoothTo(offset, duration float64) {
	target := s.clamp(offset)
	if duration <= 0 || target == s.offset {
		s.ScrollTo(target)
		return
	}
	s.from, s.to = s.offset, target
	s.elapsed, s.duration = 0, duration
	s.animating = true
}

// Animating reports whether a smooth scroll is running.
func (s *Scroller) Animating() bool { return s.animating }

// Step advances a running smooth scroll by dt milliseconds.
func (s *Scroller) Step(dt float64) {
	if !s.animating {
		return
	}
	s.elapsed += dt
	p := s.elapsed / s.duration
	if p >= 1 {
		s.offset = s.to
		s.animating = false
		return
	}
	s.offset = s.from + (s.to-s.from)*easeInOut(p)
}

func (s *Scroller) clamp(v float64) float64 {
	return math.Max(0, math.Min(s.max, v))
}

// easeInOut is a cubic ease for p in [0, 1].
func easeInOut(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	f := -2*p + 2
	return 1 - f*f*f/2
}
