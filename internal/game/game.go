// Package game hosts the landing page and the solar-system scene in an ebiten
// window. The window is the viewport; the page scrolls inside it.
package game

import (
	"errors"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/solar-system/internal/audio"
	"github.com/iburimskiy/solar-system/internal/bodies"
	"github.com/iburimskiy/solar-system/internal/config"
	"github.com/iburimskiy/solar-system/internal/landing"
	"github.com/iburimskiy/solar-system/internal/page"
	"github.com/iburimskiy/solar-system/internal/scene"
	"github.com/iburimskiy/solar-system/internal/scroll"
)

const (
	dragSpeed = 0.005
	zoomStep  = 0.95
)

// canvas is one landing page planet with its own scene and render target.
type canvas struct {
	body bodies.CelestialBody
	ctx  *scene.Context
	img  *ebiten.Image
	desc *ebiten.Image
	err  error
}

type Game struct {
	log        *slog.Logger
	settings   config.Settings
	catalog    bodies.Catalog
	textures   *textures
	soundtrack *audio.Soundtrack

	// page
	width, height int
	state         *landing.State
	scroller      scroll.Scroller

	// scenes
	clock     *scene.FrameClock
	driver    *scene.Driver
	canvases  []*canvas
	systemImg *ebiten.Image

	// input
	dragging     bool
	dragX, dragY int

	introLayer *ebiten.Image
	lastErr    error
}

func New(log *slog.Logger, settings config.Settings, catalog bodies.Catalog) *Game {
	clock := &scene.FrameClock{TPS: ebiten.DefaultTPS}
	g := &Game{
		log:        log,
		settings:   settings,
		catalog:    catalog,
		textures:   newTextures(log, settings.Assets),
		soundtrack: audio.NewSoundtrack(log),
		state:      landing.New(log, nil),
		clock:      clock,
		driver:     scene.NewDriver(clock),
	}

	for _, b := range catalog.Landing {
		c := &canvas{body: b}
		c.ctx, c.err = scene.NewCanvas(b, settings, catalog.Background)
		if c.err != nil {
			// only this canvas is lost
			log.Error("planet canvas disabled", "body", b.Name, "err", c.err)
		} else {
			g.driver.Attach(c.ctx)
		}
		g.canvases = append(g.canvases, c)
	}
	g.relayout(settings.Window.Width, settings.Window.Height)

	if settings.Soundtrack != "" {
		if err := g.soundtrack.Play(settings.Soundtrack); err != nil {
			log.Warn("soundtrack unavailable", "path", settings.Soundtrack, "err", err)
			g.lastErr = err
		}
	}
	return g
}

// Close releases the audio device.
func (g *Game) Close() {
	g.soundtrack.Close()
}

func (g *Game) relayout(w, h int) {
	g.width, g.height = w, h
	names := make([]string, 0, len(g.canvases))
	for _, c := range g.canvases {
		names = append(names, c.body.Name)
	}
	p := page.Layout(names, float64(w), float64(h), g.settings.Page.CanvasSize)
	g.state.SetPage(p)
	g.scroller.SetMax(p.MaxScroll())
	g.log.Debug("layout", "width", w, "height", h, "document", p.Height)
}

func (g *Game) Update() error {
	if err := g.handleKeys(); err != nil {
		return err
	}
	g.handleMouse()

	g.scroller.Step(g.clock.FrameMillis())
	g.state.OnScroll(g.scroller.Offset(), g.clock.Now())

	g.clock.Advance()
	g.driver.Step()
	g.soundtrack.Update()
	return nil
}

func (g *Game) handleKeys() error {
	step := g.settings.Page.WheelStep
	vh := float64(g.height)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		g.scroller.ScrollBy(step)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		g.scroller.ScrollBy(-step)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.scroller.ScrollBy(vh * 0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.scroller.ScrollBy(-vh * 0.9)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.scroller.SmoothTo(0, g.settings.Page.SmoothScrollMS)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.scroller.SmoothTo(g.scroller.Max(), g.settings.Page.SmoothScrollMS)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.soundtrack.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		if err := g.chooseSoundtrack(); err != nil {
			g.lastErr = err
		}
	}
	return nil
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	off := g.scroller.Offset()

	system := g.state.System()
	overSystem := false
	if section, ok := g.state.Target(page.SolarSection); ok && system != nil {
		overSystem = section.Contains(off, x, y)
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		if overSystem {
			system.Controls.Zoom(math.Pow(zoomStep, dy))
		} else {
			g.scroller.ScrollBy(-dy * g.settings.Page.WheelStep)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case g.state.BackVisible() && g.hit(page.BackButton, x, y):
			g.scroller.SmoothTo(0, g.settings.Page.SmoothScrollMS)
		case system == nil && g.hit(page.LoadButton, x, y):
			if err := g.state.LoadSystem(g.catalog, g.settings, g.driver); err != nil {
				g.lastErr = err
			}
		case overSystem:
			g.dragging = true
			g.dragX, g.dragY = mx, my
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging && system != nil {
		system.Controls.Rotate(-float64(mx-g.dragX)*dragSpeed, -float64(my-g.dragY)*dragSpeed)
		g.dragX, g.dragY = mx, my
	}
}

func (g *Game) hit(id string, x, y float64) bool {
	el, ok := g.state.Target(id)
	return ok && el.Contains(g.scroller.Offset(), x, y)
}

func (g *Game) chooseSoundtrack() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.soundtrack.Play(filename)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.width, g.height
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.relayout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
