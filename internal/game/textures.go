package game

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/solar-system/internal/assets"
)

// textures turns decoded images into GPU images. A path that fails to load is
// replaced by a flat image of the fallback colour and reported once.
type textures struct {
	log    *slog.Logger
	loader *assets.Loader
	images map[string]*ebiten.Image
}

func newTextures(log *slog.Logger, root string) *textures {
	return &textures{
		log:    log,
		loader: assets.NewLoader(root),
		images: make(map[string]*ebiten.Image),
	}
}

func (t *textures) get(path string, fallback colorful.Color) *ebiten.Image {
	if img := t.images[path]; img != nil {
		return img
	}
	src, err := t.loader.Load(path)
	var img *ebiten.Image
	if err != nil {
		t.log.Warn("texture unavailable, using flat material", "path", path, "err", err)
		img = ebiten.NewImage(4, 4)
		img.Fill(withAlpha(fallback, 1))
	} else {
		img = ebiten.NewImageFromImage(src)
	}
	t.images[path] = img
	return img
}

// optional is like get but returns nil instead of a fallback.
func (t *textures) optional(path string) *ebiten.Image {
	if path == "" {
		return nil
	}
	if img, ok := t.images[path]; ok {
		return img
	}
	src, err := t.loader.Load(path)
	if err != nil {
		t.log.Warn("texture unavailable", "path", path, "err", err)
		t.images[path] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	t.images[path] = img
	return img
}
