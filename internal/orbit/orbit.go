// Package orbit computes circular orbital motion and self-rotation for scene bodies.
//
// Everything here is a pure function of time and configuration, so positions for
// different bodies can be evaluated in any order, or concurrently.
package orbit

import "math"

// DefaultOmega is the global orbit speed multiplier of the reference scene.
const DefaultOmega = 0.0005

// Kinematics places bodies on circular orbits. Omega scales every body's angular
// speed; time is usually the frame timestamp in milliseconds.
type Kinematics struct {
	Omega float64
}

// Default uses DefaultOmega.
var Default = Kinematics{Omega: DefaultOmega}

// Angle returns the orbital angle in radians at time t.
func (k Kinematics) Angle(t, angularSpeed float64) float64 {
	return t * k.Omega * angularSpeed
}

// Position returns where a body orbiting center at the given radius is at time t.
// Motion stays in the orbital plane, so the result always has center's Y.
func (k Kinematics) Position(t float64, center Vec3, radius, angularSpeed float64) Vec3 {
	if radius == 0 {
		return center
	}
	a := k.Angle(t, angularSpeed)
	return Vec3{
		X: center.X + radius*math.Cos(a),
		Y: center.Y,
		Z: center.Z + radius*math.Sin(a),
	}
}

// Period returns the time one revolution takes. Bodies that never move
// have an infinite period.
func (k Kinematics) Period(angularSpeed float64) float64 {
	w := math.Abs(k.Omega * angularSpeed)
	if w == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / w
}

// Spin accumulates self-rotation about the Y axis, one Rate step per frame.
// The angle is never wrapped.
type Spin struct {
	Rate  float64
	Angle float64
}

// Step advances one frame and returns the new angle.
func (s *Spin) Step() float64 {
	s.Angle += s.Rate
	return s.Angle
}
