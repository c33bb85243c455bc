package scene

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/iburimskiy/solar-system/internal/orbit"
)

// Vertex is a screen-space vertex with texture coordinates and a light factor.
// It maps one to one onto the host's triangle vertex type.
type Vertex struct {
	DstX, DstY float32
	SrcX, SrcY float32
	Shade      float32
}

// SphereSpec describes a sphere drawn at a projected screen position.
type SphereSpec struct {
	CX, CY, R  float32
	Longitude  float64 // texture longitude facing the viewer, radians
	TexW, TexH float32
	Segments   int
	// Shade returns the light factor for a view-space unit normal. Nil means 1.
	Shade func(n orbit.Vec3) float32
}

// Sphere tessellates the visible hemisphere as a (Segments+1)² grid of vertices.
// Texture X runs past the image width; draw with a repeating address mode.
func Sphere(s SphereSpec) ([]Vertex, []uint16) {
	n := s.Segments
	if n < 2 {
		n = 2
	}
	if (n+1)*(n+1) > math.MaxUint16 {
		n = 254
	}
	// only the fractional turn matters for sampling
	turn := float32(math.Mod(s.Longitude/(2*math.Pi), 1))
	if turn < 0 {
		turn++
	}

	verts := make([]Vertex, 0, (n+1)*(n+1))
	for i := 0; i <= n; i++ {
		lat := math32.Pi/2 - math32.Pi*float32(i)/float32(n)
		sinLat, cosLat := math32.Sincos(lat)
		for j := 0; j <= n; j++ {
			lon := -math32.Pi/2 + math32.Pi*float32(j)/float32(n)
			sinLon, cosLon := math32.Sincos(lon)
			nx, ny, nz := sinLon*cosLat, sinLat, cosLon*cosLat

			shade := float32(1)
			if s.Shade != nil {
				shade = s.Shade(orbit.V3(float64(nx), float64(ny), float64(nz)))
			}
			u := (lon+math32.Pi/2)/(2*math32.Pi) + turn
			verts = append(verts, Vertex{
				DstX:  s.CX + s.R*nx,
				DstY:  s.CY - s.R*ny,
				SrcX:  u * s.TexW,
				SrcY:  float32(i) / float32(n) * s.TexH,
				Shade: shade,
			})
		}
	}
	return verts, gridIndices(n, n)
}

// gridIndices triangulates a (rows+1)×(cols+1) vertex grid.
func gridIndices(rows, cols int) []uint16 {
	idx := make([]uint16, 0, rows*cols*6)
	stride := cols + 1
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			a := uint16(i*stride + j)
			b := a + 1
			c := a + uint16(stride)
			d := c + 1
			idx = append(idx, a, c, b, b, c, d)
		}
	}
	return idx
}

// EulerXYZ rotates v by e.X about X, e.Y about Y and e.Z about Z, composed in
// XYZ order (the Z rotation is applied to v first).
func EulerXYZ(v, e orbit.Vec3) orbit.Vec3 {
	sz, cz := math.Sincos(e.Z)
	v = orbit.V3(v.X*cz-v.Y*sz, v.X*sz+v.Y*cz, v.Z)
	sy, cy := math.Sincos(e.Y)
	v = orbit.V3(v.X*cy+v.Z*sy, v.Y, -v.X*sy+v.Z*cy)
	sx, cx := math.Sincos(e.X)
	return orbit.V3(v.X, v.Y*cx-v.Z*sx, v.Y*sx+v.Z*cx)
}

// Projector maps a world point to the screen.
type Projector func(p orbit.Vec3) (Projection, bool)

// RingMesh tessellates an annulus lying in its local XY plane, rotated by
// rot and moved to center, with planar texture mapping over the outer radius.
// ok is false when any vertex falls outside the camera range.
func RingMesh(inner, outer float64, segments int, center, rot orbit.Vec3, texW, texH float32, project Projector) ([]Vertex, []uint16, bool) {
	if segments < 3 {
		segments = 3
	}
	verts := make([]Vertex, 0, 2*(segments+1))
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		st, ct := math.Sincos(theta)
		for _, r := range [2]float64{inner, outer} {
			local := orbit.V3(r*ct, r*st, 0)
			p, ok := project(EulerXYZ(local, rot).Add(center))
			if !ok {
				return nil, nil, false
			}
			verts = append(verts, Vertex{
				DstX:  float32(p.X),
				DstY:  float32(p.Y),
				SrcX:  float32((local.X/outer+1)/2) * texW,
				SrcY:  float32((local.Y/outer+1)/2) * texH,
				Shade: 1,
			})
		}
	}
	return verts, gridIndices(segments, 1), true
}

// Circle returns points of a horizontal circle around center, closing back on
// the first point.
func Circle(center orbit.Vec3, radius float64, segments int) []orbit.Vec3 {
	if segments < 3 {
		segments = 3
	}
	pts := make([]orbit.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		pts = append(pts, center.Add(orbit.V3(radius*c, 0, radius*s)))
	}
	return pts
}
