package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/solar-system/internal/page"
	"github.com/iburimskiy/solar-system/internal/scroll"
)

var (
	panelColor   = color.RGBA{R: 16, G: 20, B: 36, A: 200}
	borderColor  = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	buttonColor  = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	hoveredColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(spaceBlack)
	off := g.scroller.Offset()
	vh := float64(g.height)

	g.drawIntro(screen, off, vh)
	for _, c := range g.canvases {
		g.drawCanvas(screen, c, off, vh)
	}
	g.drawSolarSection(screen, off, vh)

	if g.state.BackVisible() {
		g.drawButton(screen, page.BackButton, "Back to top")
	}

	status := "Scroll: wheel / arrows   M: soundtrack   Esc: quit"
	if g.soundtrack.Playing() {
		if g.soundtrack.Paused() {
			status += "   (soundtrack paused, Space to play)"
		} else {
			status += "   (Space to pause)"
		}
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawIntro(screen *ebiten.Image, off, vh float64) {
	intro, ok := g.state.Target(page.Intro)
	if !ok {
		return
	}
	r := intro.Rect(off)
	if !scroll.InView(r, vh) {
		return
	}
	if bg := g.textures.optional(g.catalog.Background); bg != nil {
		// the background lags behind the page
		y := r.Top + scroll.BackgroundOffset(off, g.settings.Page.ParallaxFactor)
		drawCover(screen, bg, 0, y, intro.W, intro.H)
	}

	content, ok := g.state.Target(page.IntroContent)
	if !ok {
		return
	}
	g.introLayer = ensureImage(g.introLayer, int(content.W), int(content.H))
	g.introLayer.Clear()
	title := g.settings.Page.Title
	sub := g.settings.Page.Subtitle
	ebitenutil.DebugPrintAt(g.introLayer, title, (int(content.W)-len(title)*charW)/2, int(content.H)/2-charH)
	ebitenutil.DebugPrintAt(g.introLayer, sub, (int(content.W)-len(sub)*charW)/2, int(content.H)/2+charH)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(content.X, content.ScreenY(off))
	op.ColorScale.ScaleAlpha(float32(scroll.Opacity(off, vh)))
	screen.DrawImage(g.introLayer, op)
}

func (g *Game) drawCanvas(screen *ebiten.Image, c *canvas, off, vh float64) {
	el, ok := g.state.Target(page.CanvasID(c.body.Name))
	if !ok {
		return
	}
	r := el.Rect(off)
	if scroll.InView(r, vh) {
		if c.err != nil {
			vector.DrawFilledRect(screen, float32(el.X), float32(r.Top), float32(el.W), float32(el.H), panelColor, false)
			ebitenutil.DebugPrintAt(screen, c.body.Name+": unavailable", int(el.X)+8, int(r.Top)+8)
		} else {
			c.img = ensureImage(c.img, int(el.W), int(el.H))
			g.renderScene(c.img, c.ctx, 0)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(el.X, r.Top)
			screen.DrawImage(c.img, op)
		}
	}
	g.drawDescription(screen, c, off, vh)
}

func (g *Game) drawDescription(screen *ebiten.Image, c *canvas, off, vh float64) {
	id := page.DescriptionID(c.body.Name)
	alpha := g.state.DescriptionAlpha(id, g.clock.Now(), g.settings.Page.FadeMS)
	if alpha <= 0 {
		return
	}
	el, ok := g.state.Target(id)
	if !ok {
		return
	}
	r := el.Rect(off)
	if !scroll.InView(r, vh) {
		return
	}
	c.desc = ensureImage(c.desc, int(el.W), int(el.H))
	c.desc.Fill(panelColor)
	y := 8
	ebitenutil.DebugPrintAt(c.desc, strings.ToUpper(c.body.Name), 10, y)
	for _, line := range wrapText(c.body.Description, el.W-20) {
		y += charH
		if float64(y) > el.H-charH {
			break
		}
		ebitenutil.DebugPrintAt(c.desc, line, 10, y)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(el.X, r.Top)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(c.desc, op)
}

func (g *Game) drawSolarSection(screen *ebiten.Image, off, vh float64) {
	section, ok := g.state.Target(page.SolarSection)
	if !ok {
		return
	}
	r := section.Rect(off)
	if !scroll.InView(r, vh) {
		return
	}
	system := g.state.System()
	if system == nil {
		g.drawButton(screen, page.LoadButton, "Load solar system")
		if err := g.state.SystemErr(); err != nil {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Could not build the scene: %v", err), 20, int(r.Top)+20)
		}
		return
	}
	g.systemImg = ensureImage(g.systemImg, int(section.W), int(section.H))
	g.renderScene(g.systemImg, system, g.soundtrack.Level())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(section.X, r.Top)
	screen.DrawImage(g.systemImg, op)
	ebitenutil.DebugPrintAt(screen, "Drag to orbit, wheel to zoom", int(section.X)+12, int(r.Top)+int(section.H)-24)
}

func (g *Game) drawButton(screen *ebiten.Image, id, label string) {
	el, ok := g.state.Target(id)
	if !ok {
		return
	}
	off := g.scroller.Offset()
	y := el.ScreenY(off)
	mx, my := ebiten.CursorPosition()
	bg := buttonColor
	if el.Contains(off, float64(mx), float64(my)) {
		bg = hoveredColor
	}
	vector.DrawFilledRect(screen, float32(el.X), float32(y), float32(el.W), float32(el.H), bg, false)
	vector.StrokeRect(screen, float32(el.X), float32(y), float32(el.W), float32(el.H), 2, borderColor, false)
	textX := int(el.X) + (int(el.W)-len(label)*charW)/2
	textY := int(y) + (int(el.H)-charH)/2
	ebitenutil.DebugPrintAt(screen, label, textX, textY)
}
