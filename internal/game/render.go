package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/solar-system/internal/bodies"
	"github.com/iburimskiy/solar-system/internal/orbit"
	"github.com/iburimskiy/solar-system/internal/scene"
)

const (
	guideSegments = 128
	ringSegments  = 64
)

var (
	spaceBlack = color.RGBA{R: 2, G: 3, B: 10, A: 255}
	guideColor = colorful.Color{R: 1, G: 1, B: 1}
	glowWhite  = colorful.Color{R: 1, G: 0.97, B: 0.85}
)

// renderScene draws ctx into dst. glow in [0, 1] brightens the halo around
// unlit bodies.
func (g *Game) renderScene(dst *ebiten.Image, ctx *scene.Context, glow float64) {
	w := float64(dst.Bounds().Dx())
	h := float64(dst.Bounds().Dy())
	project := func(p orbit.Vec3) (scene.Projection, bool) { return ctx.Camera.Project(p, w, h) }

	dst.Fill(spaceBlack)
	switch {
	case len(ctx.Skybox) == bodies.SkyboxFaces:
		g.drawSkybox(dst, ctx)
	case ctx.Background != "":
		if bg := g.textures.optional(ctx.Background); bg != nil {
			drawCover(dst, bg, 0, 0, w, h)
		}
	}

	center := orbit.Vec3{}
	if ctx.Center != nil {
		center = ctx.Center.Position
	}
	for _, r := range ctx.Guides {
		g.drawGuide(dst, scene.Circle(center, r, guideSegments), project)
	}

	for _, m := range ctx.DrawOrder() {
		g.drawMesh(dst, ctx, m, project, glow)
	}
}

func (g *Game) drawGuide(dst *ebiten.Image, pts []orbit.Vec3, project scene.Projector) {
	clr := withAlpha(guideColor, 0.35)
	var prev scene.Projection
	havePrev := false
	for _, p := range pts {
		cur, ok := project(p)
		if ok && havePrev {
			vector.StrokeLine(dst, float32(prev.X), float32(prev.Y), float32(cur.X), float32(cur.Y), 1, clr, true)
		}
		prev, havePrev = cur, ok
	}
}

func (g *Game) drawMesh(dst *ebiten.Image, ctx *scene.Context, m *scene.Mesh, project scene.Projector, glow float64) {
	p, ok := project(m.Position)
	if !ok {
		return
	}
	r := m.Body.Radius * p.Scale
	if r < 0.75 {
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), 0.75, withAlpha(m.Body.FallbackColor(), 1), true)
		return
	}

	if !m.Body.Lit() && glow > 0 {
		halo := m.Body.FallbackColor().BlendHcl(glowWhite, glow).Clamped()
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), float32(r*(1.1+0.5*glow)), withAlpha(halo, 0.25+0.35*glow), true)
	}

	tex := g.textures.get(m.Body.Texture, m.Body.FallbackColor())
	tb := tex.Bounds()

	toCam := ctx.Camera.Position.Sub(m.Position)
	facing := math.Atan2(toCam.X, toCam.Z)

	verts, idx := scene.Sphere(scene.SphereSpec{
		CX:        float32(p.X),
		CY:        float32(p.Y),
		R:         float32(r),
		Longitude: m.RotationY() + facing,
		TexW:      float32(tb.Dx()),
		TexH:      float32(tb.Dy()),
		Segments:  segmentsFor(r),
		Shade: func(n orbit.Vec3) float32 {
			nw := ctx.Camera.ViewToWorld(n)
			return float32(ctx.Illumination(m, m.Position.Add(nw.Scale(m.Body.Radius)), nw))
		},
	})
	dst.DrawTriangles(toEbiten(verts), idx, tex, &ebiten.DrawTrianglesOptions{
		Address: ebiten.AddressRepeat,
		Filter:  ebiten.FilterLinear,
	})

	if m.Ring != nil {
		g.drawRing(dst, m, project)
	}
}

func (g *Game) drawRing(dst *ebiten.Image, m *scene.Mesh, project scene.Projector) {
	tex := g.textures.get(m.Ring.Texture, m.Body.FallbackColor())
	tb := tex.Bounds()
	verts, idx, ok := scene.RingMesh(m.Ring.Inner, m.Ring.Outer, ringSegments, m.Ring.Position, m.Ring.Rotation,
		float32(tb.Dx()), float32(tb.Dy()), project)
	if !ok {
		return
	}
	dst.DrawTriangles(toEbiten(verts), idx, tex, &ebiten.DrawTrianglesOptions{
		Address: ebiten.AddressClampToZero,
		Filter:  ebiten.FilterLinear,
	})
}

// drawSkybox shows the two side faces around the camera's heading, scrolled
// with the azimuth. Faces are ordered ft, bk, up, dn, rt, lf.
func (g *Game) drawSkybox(dst *ebiten.Image, ctx *scene.Context) {
	az := 0.0
	if ctx.Controls != nil {
		az = ctx.Controls.Azimuth
	}
	ring := [4]string{ctx.Skybox[0], ctx.Skybox[4], ctx.Skybox[1], ctx.Skybox[5]}
	turn := math.Mod(az/(math.Pi/2), 4)
	if turn < 0 {
		turn += 4
	}
	i := int(turn)
	frac := turn - float64(i)

	w := float64(dst.Bounds().Dx())
	h := float64(dst.Bounds().Dy())
	if a := g.textures.optional(ring[i%4]); a != nil {
		drawCover(dst, a, -frac*w, 0, w, h)
	}
	if b := g.textures.optional(ring[(i+1)%4]); b != nil {
		drawCover(dst, b, (1-frac)*w, 0, w, h)
	}
}

// drawCover scales src to fill a w×h box at (x, y).
func drawCover(dst, src *ebiten.Image, x, y, w, h float64) {
	sb := src.Bounds()
	sx := w / float64(sb.Dx())
	sy := h / float64(sb.Dy())
	s := math.Max(sx, sy)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x+(w-float64(sb.Dx())*s)/2, y+(h-float64(sb.Dy())*s)/2)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

func segmentsFor(r float64) int {
	switch {
	case r < 8:
		return 8
	case r < 40:
		return 16
	default:
		return 32
	}
}

func toEbiten(verts []scene.Vertex) []ebiten.Vertex {
	out := make([]ebiten.Vertex, len(verts))
	for i, v := range verts {
		out[i] = ebiten.Vertex{
			DstX:   v.DstX,
			DstY:   v.DstY,
			SrcX:   v.SrcX,
			SrcY:   v.SrcY,
			ColorR: v.Shade,
			ColorG: v.Shade,
			ColorB: v.Shade,
			ColorA: 1,
		}
	}
	return out
}

// ensureImage returns img if it already has size w×h, otherwise a new image.
func ensureImage(img *ebiten.Image, w, h int) *ebiten.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if img != nil && img.Bounds().Size() == image.Pt(w, h) {
		return img
	}
	if img != nil {
		img.Deallocate()
	}
	return ebiten.NewImage(w, h)
}
