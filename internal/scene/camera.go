package scene

import (
	"math"

	"github.com/iburimskiy/solar-system/internal/orbit"
)

// Camera is a perspective camera. FOV is the vertical field of view in degrees.
type Camera struct {
	Position orbit.Vec3
	Target   orbit.Vec3
	FOV      float64
	Near     float64
	Far      float64
}

// Projection is a point mapped onto the screen.
type Projection struct {
	X, Y  float64
	Scale float64 // pixels per world unit at this depth
	Depth float64 // distance along the view axis
}

// Basis returns the camera's right, up and forward unit vectors in world space.
func (c *Camera) Basis() (right, up, forward orbit.Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	worldUp := orbit.V3(0, 1, 0)
	right = forward.Cross(worldUp).Normalize()
	if right.Len() == 0 {
		// looking straight up or down
		right = forward.Cross(orbit.V3(0, 0, -1)).Normalize()
	}
	up = right.Cross(forward)
	return right, up, forward
}

// ViewToWorld converts a direction given in view space (x right, y up, z toward
// the camera) into world space.
func (c *Camera) ViewToWorld(v orbit.Vec3) orbit.Vec3 {
	right, up, forward := c.Basis()
	return right.Scale(v.X).Add(up.Scale(v.Y)).Sub(forward.Scale(v.Z))
}

// Project maps p onto a w×h viewport. ok is false outside the near/far range.
func (c *Camera) Project(p orbit.Vec3, w, h float64) (Projection, bool) {
	right, up, forward := c.Basis()
	d := p.Sub(c.Position)
	depth := d.Dot(forward)
	if depth < c.Near || depth > c.Far {
		return Projection{}, false
	}
	f := (h / 2) / math.Tan(c.FOV*math.Pi/360)
	s := f / depth
	return Projection{
		X:     w/2 + d.Dot(right)*s,
		Y:     h/2 - d.Dot(up)*s,
		Scale: s,
		Depth: depth,
	}, true
}

// Controls orbits the camera around a target, like an orbit-controls widget:
// drag rotates, wheel zooms within [MinDistance, MaxDistance].
type Controls struct {
	Target      orbit.Vec3
	Azimuth     float64 // radians around Y, 0 looks down -Z
	Polar       float64 // radians from +Y
	Distance    float64
	MinDistance float64
	MaxDistance float64
}

const polarEps = 1e-3

// NewControls places the camera distance away from the origin, elevation degrees
// above the orbital plane.
func NewControls(distance, elevation, minDistance, maxDistance float64) *Controls {
	c := &Controls{
		Polar:       math.Pi/2 - elevation*math.Pi/180,
		Distance:    distance,
		MinDistance: minDistance,
		MaxDistance: maxDistance,
	}
	c.Rotate(0, 0)
	c.Zoom(1)
	return c
}

// Rotate moves the camera around the target. Polar is kept off the poles.
func (c *Controls) Rotate(dAzimuth, dPolar float64) {
	c.Azimuth += dAzimuth
	c.Polar = math.Max(polarEps, math.Min(math.Pi-polarEps, c.Polar+dPolar))
}

// Zoom multiplies the distance by factor.
func (c *Controls) Zoom(factor float64) {
	c.Distance = math.Max(c.MinDistance, math.Min(c.MaxDistance, c.Distance*factor))
}

// Apply writes the controlled position into cam.
func (c *Controls) Apply(cam *Camera) {
	sp := math.Sin(c.Polar)
	cam.Target = c.Target
	cam.Position = c.Target.Add(orbit.V3(
		c.Distance*sp*math.Sin(c.Azimuth),
		c.Distance*math.Cos(c.Polar),
		c.Distance*sp*math.Cos(c.Azimuth),
	))
}
