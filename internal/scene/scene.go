// Package scene holds the per-canvas scene state: meshes, lights and camera,
// and advances it over time. A Context is owned by its caller; nothing here is
// package-global, so any number of scenes can run side by side.
package scene

import (
	"math"
	"sort"

	"github.com/iburimskiy/solar-system/internal/bodies"
	"github.com/iburimskiy/solar-system/internal/config"
	"github.com/iburimskiy/solar-system/internal/orbit"
)

// Ring geometry relative to the planet radius.
const (
	RingInner  = 1.4
	RingOuter  = 1.8
	RingOffset = 0.1 // downward shift under the planet
)

// RingTilt is the ring orientation as XYZ Euler angles.
var RingTilt = orbit.V3(math.Pi/2, math.Pi/4, math.Pi/8)

// Mesh is a body placed in a scene. Body is a copy of the configuration row;
// only Position and Spin change while the scene runs.
type Mesh struct {
	Body     bodies.CelestialBody
	Position orbit.Vec3
	Spin     orbit.Spin
	Ring     *Ring
}

// RotationY is the accumulated self-rotation.
func (m *Mesh) RotationY() float64 { return m.Spin.Angle }

// Ring is a textured annulus that follows its planet without spinning.
type Ring struct {
	Texture      string
	Inner, Outer float64
	Drop         float64
	Rotation     orbit.Vec3
	Position     orbit.Vec3
}

func newRing(b bodies.CelestialBody) *Ring {
	return &Ring{
		Texture:  b.RingTexture,
		Inner:    b.Radius * RingInner,
		Outer:    b.Radius * RingOuter,
		Drop:     b.Radius * RingOffset,
		Rotation: RingTilt,
	}
}

func (r *Ring) follow(m *Mesh) {
	r.Position = m.Position
	r.Position.Y -= r.Drop
}

type LightKind int

const (
	Ambient LightKind = iota
	Directional
	Point
)

// Light is a white light. Range 0 means a point light never fades.
type Light struct {
	Kind      LightKind
	Intensity float64
	Position  orbit.Vec3
	Range     float64
}

// Context is one independent scene.
type Context struct {
	Name       string
	Camera     Camera
	Controls   *Controls
	Lights     []Light
	Meshes     []*Mesh
	Center     *Mesh
	Guides     []float64 // orbit radii drawn as guide circles
	Kinematics orbit.Kinematics
	Background string
	Skybox     []string
}

// NewCanvas builds the small scene showing a single body on the landing page.
func NewCanvas(b bodies.CelestialBody, s config.Settings, background string) (*Context, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	r := b.Radius
	c := &Context{
		Name: b.Name,
		Camera: Camera{
			Position: orbit.V3(r, r/2, 2.5*r),
			FOV:      s.Camera.CanvasFOV,
			Near:     0.1,
			Far:      1000,
		},
		Lights: []Light{
			{Kind: Ambient, Intensity: 0.3},
			{Kind: Directional, Intensity: 0, Position: orbit.V3(5, 5, 5).Normalize()},
			{Kind: Point, Intensity: 1, Position: orbit.V3(10, 10, 10), Range: 100},
		},
		Kinematics: orbit.Kinematics{Omega: s.Orbit.SpeedMultiplier},
		Background: background,
	}
	m := newMesh(b, s.Orbit.CanvasRotationSpeed)
	c.Meshes = []*Mesh{m}
	return c, nil
}

// NewSystem builds the interactive scene with every system body orbiting the center.
func NewSystem(cat bodies.Catalog, s config.Settings) (*Context, error) {
	if err := cat.ValidateSystem(); err != nil {
		return nil, err
	}
	c := &Context{
		Name: "system",
		Camera: Camera{
			FOV:  s.Camera.FOV,
			Near: 0.1,
			Far:  s.Camera.MaxDistance + 1000,
		},
		Controls:   NewControls(s.Camera.Distance, s.Camera.Elevation, s.Camera.MinDistance, s.Camera.MaxDistance),
		Kinematics: orbit.Kinematics{Omega: s.Orbit.SpeedMultiplier},
		Skybox:     cat.Skybox,
	}
	c.Controls.Apply(&c.Camera)

	for _, b := range cat.System {
		m := newMesh(b, s.Orbit.RotationSpeed)
		c.Meshes = append(c.Meshes, m)
		if b.Name == cat.Center {
			c.Center = m
			continue
		}
		c.Guides = append(c.Guides, b.OrbitRadius)
	}
	c.Lights = []Light{{Kind: Point, Intensity: 1, Position: c.Center.Position}}
	c.Update(0)
	return c, nil
}

func newMesh(b bodies.CelestialBody, uniformSpin float64) *Mesh {
	rate := uniformSpin
	if b.RotationSpeed > 0 {
		rate = b.RotationSpeed
	}
	m := &Mesh{Body: b, Spin: orbit.Spin{Rate: rate}}
	if b.HasRing() {
		m.Ring = newRing(b)
		m.Ring.follow(m)
	}
	return m
}

// Update advances one frame: every body spins one step, then orbiting bodies
// are placed for time t around the center.
func (c *Context) Update(t float64) {
	center := orbit.Vec3{}
	if c.Center != nil {
		center = c.Center.Position
	}
	for _, m := range c.Meshes {
		m.Spin.Step()
		if m != c.Center && m.Body.OrbitRadius > 0 {
			m.Position = c.Kinematics.Position(t, center, m.Body.OrbitRadius, m.Body.AngularSpeed)
		}
		if m.Ring != nil {
			m.Ring.follow(m)
		}
	}
	if c.Controls != nil {
		c.Controls.Apply(&c.Camera)
	}
}

// Mesh finds a mesh by body name.
func (c *Context) Mesh(name string) *Mesh {
	for _, m := range c.Meshes {
		if m.Body.Name == name {
			return m
		}
	}
	return nil
}

// DrawOrder returns the meshes sorted far to near from the camera.
func (c *Context) DrawOrder() []*Mesh {
	out := make([]*Mesh, len(c.Meshes))
	copy(out, c.Meshes)
	eye := c.Camera.Position
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position.Sub(eye).Len() > out[j].Position.Sub(eye).Len()
	})
	return out
}

// Illumination returns the light reaching point p with surface normal n on m.
// Unlit materials are always fully bright.
func (c *Context) Illumination(m *Mesh, p, n orbit.Vec3) float64 {
	if !m.Body.Lit() {
		return 1
	}
	var sum float64
	for _, l := range c.Lights {
		switch l.Kind {
		case Ambient:
			sum += l.Intensity
		case Directional:
			sum += l.Intensity * math.Max(0, n.Dot(l.Position.Normalize()))
		case Point:
			d := l.Position.Sub(p)
			dist := d.Len()
			atten := 1.0
			if l.Range > 0 {
				atten = math.Max(0, 1-dist/l.Range)
			}
			sum += l.Intensity * atten * math.Max(0, n.Dot(d.Normalize()))
		}
	}
	return math.Min(1, sum)
}
