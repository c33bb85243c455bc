package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/solar-system/internal/bodies"
	"github.com/iburimskiy/solar-system/internal/config"
	"github.com/iburimskiy/solar-system/internal/errs"
	"github.com/iburimskiy/solar-system/internal/orbit"
)

func defaults(t *testing.T) (bodies.Catalog, config.Settings) {
	t.Helper()
	cat, err := bodies.Default()
	require.NoError(t, err)
	return cat, config.Default()
}

func TestSystemPositionsFollowKinematics(t *testing.T) {
	cat, s := defaults(t)
	sys, err := NewSystem(cat, s)
	require.NoError(t, err)
	require.NotNil(t, sys.Center)
	assert.Len(t, sys.Guides, 8)

	clock := &ManualClock{}
	d := NewDriver(clock)
	d.Attach(sys)

	for _, ts := range []float64{0, 16.7, 1000, math.Pi / 0.0005} {
		clock.T = ts
		assert.Equal(t, ts, d.Step())
		for _, b := range cat.Orbiting() {
			want := orbit.Default.Position(ts, orbit.Vec3{}, b.OrbitRadius, b.AngularSpeed)
			got := sys.Mesh(b.Name).Position
			assert.InDelta(t, want.X, got.X, 1e-9, b.Name)
			assert.Equal(t, 0.0, got.Y, b.Name)
			assert.InDelta(t, want.Z, got.Z, 1e-9, b.Name)
		}
		assert.Equal(t, orbit.Vec3{}, sys.Center.Position)
	}

	earth := sys.Mesh("earth")
	assert.InDelta(t, -70, earth.Position.X, 1e-6)
}

func TestSpinIsUniformAndIncreasing(t *testing.T) {
	cat, s := defaults(t)
	sys, err := NewSystem(cat, s)
	require.NoError(t, err)

	before := make(map[string]float64)
	for _, m := range sys.Meshes {
		before[m.Body.Name] = m.RotationY()
	}
	for i := 1; i <= 10; i++ {
		sys.Update(float64(i) * 16)
	}
	for _, m := range sys.Meshes {
		assert.InDelta(t, before[m.Body.Name]+10*0.003, m.RotationY(), 1e-12, m.Body.Name)
	}
}

func TestRotationOverride(t *testing.T) {
	cat, s := defaults(t)
	cat.System[3].RotationSpeed = 0.05
	sys, err := NewSystem(cat, s)
	require.NoError(t, err)
	assert.Equal(t, 0.05, sys.Mesh(cat.System[3].Name).Spin.Rate)
	assert.Equal(t, 0.003, sys.Mesh(cat.System[1].Name).Spin.Rate)
}

func TestSystemRejectsBadCatalog(t *testing.T) {
	cat, s := defaults(t)
	cat.System[2].Radius = -1
	_, err := NewSystem(cat, s)
	var ce *errs.ConfigurationError
	assert.True(t, errors.As(err, &ce))
}

func TestCanvasScene(t *testing.T) {
	cat, s := defaults(t)
	var saturn bodies.CelestialBody
	for _, b := range cat.Landing {
		if b.Name == "saturn" {
			saturn = b
		}
	}
	c, err := NewCanvas(saturn, s, cat.Background)
	require.NoError(t, err)

	r := saturn.Radius
	assert.Equal(t, orbit.V3(r, r/2, 2.5*r), c.Camera.Position)
	assert.Equal(t, orbit.Vec3{}, c.Camera.Target)
	assert.Equal(t, 45.0, c.Camera.FOV)
	require.Len(t, c.Meshes, 1)

	m := c.Meshes[0]
	require.NotNil(t, m.Ring)
	assert.InDelta(t, 1.4*r, m.Ring.Inner, 1e-12)
	assert.InDelta(t, 1.8*r, m.Ring.Outer, 1e-12)

	for i := 0; i < 3; i++ {
		c.Update(float64(i) * 16)
	}
	assert.Equal(t, orbit.Vec3{}, m.Position)
	assert.InDelta(t, 0.03, m.RotationY(), 1e-12)
	assert.InDelta(t, -0.1*r, m.Ring.Position.Y, 1e-12)
	// the ring never spins
	assert.Equal(t, RingTilt, m.Ring.Rotation)
}

func TestCanvasScenesAreIndependent(t *testing.T) {
	cat, s := defaults(t)
	broken := cat.Landing[1]
	broken.Texture = ""
	_, err := NewCanvas(broken, s, "")
	require.Error(t, err)

	a, err := NewCanvas(cat.Landing[2], s, "")
	require.NoError(t, err)
	b, err := NewCanvas(cat.Landing[3], s, "")
	require.NoError(t, err)
	a.Update(10)
	a.Update(20)
	assert.InDelta(t, 0.02, a.Meshes[0].RotationY(), 1e-12)
	assert.Equal(t, 0.0, b.Meshes[0].RotationY())
}

func TestFrameClock(t *testing.T) {
	c := &FrameClock{TPS: 60}
	assert.Equal(t, 0.0, c.Now())
	for i := 0; i < 60; i++ {
		c.Advance()
	}
	assert.InDelta(t, 1000, c.Now(), 1e-9)
	assert.InDelta(t, 1000.0/60, c.FrameMillis(), 1e-12)
	assert.Equal(t, 0.0, (&FrameClock{}).Now())
}

func TestDriverDetach(t *testing.T) {
	cat, s := defaults(t)
	a, err := NewCanvas(cat.Landing[0], s, "")
	require.NoError(t, err)
	d := NewDriver(&ManualClock{})
	d.Attach(a)
	d.Step()
	d.Detach(a)
	assert.Equal(t, 0, d.Len())
	d.Step()
	assert.InDelta(t, 0.01, a.Meshes[0].RotationY(), 1e-12)
}

func TestProjectCenterAndBehind(t *testing.T) {
	cam := Camera{Position: orbit.V3(0, 0, 100), FOV: 90, Near: 0.1, Far: 1000}
	p, ok := cam.Project(orbit.Vec3{}, 800, 600)
	require.True(t, ok)
	assert.InDelta(t, 400, p.X, 1e-9)
	assert.InDelta(t, 300, p.Y, 1e-9)
	assert.InDelta(t, 100, p.Depth, 1e-9)
	// tan(45°) = 1, so f = 300 px and 3 px per unit at depth 100
	assert.InDelta(t, 3, p.Scale, 1e-9)

	right, ok := cam.Project(orbit.V3(10, 10, 0), 800, 600)
	require.True(t, ok)
	assert.Greater(t, right.X, 400.0)
	assert.Less(t, right.Y, 300.0)

	_, ok = cam.Project(orbit.V3(0, 0, 200), 800, 600)
	assert.False(t, ok)
}

func TestBasisLookingDown(t *testing.T) {
	cam := Camera{Position: orbit.V3(0, 50, 0)}
	right, up, forward := cam.Basis()
	assert.InDelta(t, 1, right.Len(), 1e-12)
	assert.InDelta(t, 1, up.Len(), 1e-12)
	assert.InDelta(t, -1, forward.Y, 1e-12)
}

func TestControlsClampZoom(t *testing.T) {
	c := NewControls(100, 0, 12, 1000)
	var cam Camera
	c.Apply(&cam)
	assert.InDelta(t, 100, cam.Position.Z, 1e-9)
	assert.InDelta(t, 0, cam.Position.Y, 1e-9)

	c.Zoom(0.01)
	assert.Equal(t, 12.0, c.Distance)
	c.Zoom(1e6)
	assert.Equal(t, 1000.0, c.Distance)

	c.Rotate(0, 10)
	assert.Less(t, c.Polar, math.Pi)
	c.Rotate(0, -10)
	assert.Greater(t, c.Polar, 0.0)
}

func TestControlsElevation(t *testing.T) {
	c := NewControls(100, 30, 12, 1000)
	var cam Camera
	c.Apply(&cam)
	assert.InDelta(t, 50, cam.Position.Y, 1e-9)
	assert.InDelta(t, 100, cam.Position.Len(), 1e-9)
}

func TestDrawOrderFarToNear(t *testing.T) {
	cat, s := defaults(t)
	sys, err := NewSystem(cat, s)
	require.NoError(t, err)
	order := sys.DrawOrder()
	require.Len(t, order, len(sys.Meshes))
	eye := sys.Camera.Position
	for i := 1; i < len(order); i++ {
		assert.GreaterOrEqual(t, order[i-1].Position.Sub(eye).Len(), order[i].Position.Sub(eye).Len())
	}
}

func TestIllumination(t *testing.T) {
	cat, s := defaults(t)
	sys, err := NewSystem(cat, s)
	require.NoError(t, err)

	earth := sys.Mesh("earth")
	p := orbit.V3(70, 0, 0)
	assert.InDelta(t, 1, sys.Illumination(earth, p, orbit.V3(-1, 0, 0)), 1e-12)
	assert.Equal(t, 0.0, sys.Illumination(earth, p, orbit.V3(1, 0, 0)))
	assert.Equal(t, 1.0, sys.Illumination(sys.Center, p, orbit.V3(1, 0, 0)))

	canvas, err := NewCanvas(cat.Landing[3], s, "")
	require.NoError(t, err)
	m := canvas.Meshes[0]
	// facing away from every light: ambient only
	assert.InDelta(t, 0.3, canvas.Illumination(m, orbit.V3(0, -0.6, 0), orbit.V3(0, -1, 0)), 1e-12)
}

func TestSphereMesh(t *testing.T) {
	verts, idx := Sphere(SphereSpec{CX: 100, CY: 100, R: 50, TexW: 512, TexH: 256, Segments: 8})
	assert.Len(t, verts, 81)
	assert.Len(t, idx, 8*8*6)
	for _, v := range verts {
		dx, dy := v.DstX-100, v.DstY-100
		assert.LessOrEqual(t, float64(dx*dx+dy*dy), 50.0*50+1e-2)
		assert.Equal(t, float32(1), v.Shade)
	}
	for _, i := range idx {
		assert.Less(t, int(i), len(verts))
	}

	// a quarter turn shifts the texture by a quarter of its width
	turned, _ := Sphere(SphereSpec{CX: 100, CY: 100, R: 50, TexW: 512, TexH: 256, Segments: 8, Longitude: math.Pi / 2})
	assert.InDelta(t, verts[0].SrcX+128, turned[0].SrcX, 1e-3)
}

func TestEulerXYZ(t *testing.T) {
	// a ring in the XY plane tipped a quarter turn about X lies flat in XZ
	v := EulerXYZ(orbit.V3(0, 1, 0), orbit.V3(math.Pi/2, 0, 0))
	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, 0, v.Y, 1e-12)
	assert.InDelta(t, 1, v.Z, 1e-12)

	w := EulerXYZ(orbit.V3(3, -2, 5), RingTilt)
	assert.InDelta(t, orbit.V3(3, -2, 5).Len(), w.Len(), 1e-12)
}

func TestRingMesh(t *testing.T) {
	cam := Camera{Position: orbit.V3(0, 5, 10), FOV: 45, Near: 0.1, Far: 100}
	project := func(p orbit.Vec3) (Projection, bool) { return cam.Project(p, 300, 300) }
	verts, idx, ok := RingMesh(1.4, 1.8, 16, orbit.Vec3{}, RingTilt, 64, 64, project)
	require.True(t, ok)
	assert.Len(t, verts, 34)
	assert.Len(t, idx, 16*6)

	far := Camera{Position: orbit.V3(0, 0, 500), FOV: 45, Near: 0.1, Far: 100}
	_, _, ok = RingMesh(1.4, 1.8, 16, orbit.Vec3{}, RingTilt, 64, 64, func(p orbit.Vec3) (Projection, bool) {
		return far.Project(p, 300, 300)
	})
	assert.False(t, ok)
}

func TestCircle(t *testing.T) {
	pts := Circle(orbit.Vec3{}, 70, 32)
	require.Len(t, pts, 33)
	for _, p := range pts {
		assert.InDelta(t, 70, p.Len(), 1e-9)
		assert.Equal(t, 0.0, p.Y)
	}
	assert.InDelta(t, pts[0].X, pts[32].X, 1e-9)
}
