package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/solar-system/internal/bodies"
	"github.com/iburimskiy/solar-system/internal/config"
	"github.com/iburimskiy/solar-system/internal/game"
)

func main() {
	configPath := flag.String("config", "", "settings file (TOML)")
	catalogPath := flag.String("catalog", "", "body table (YAML), overrides the settings file")
	assetsDir := flag.String("assets", "", "directory containing the texture tree, overrides the settings file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *catalogPath != "" {
		settings.Catalog = *catalogPath
	}
	if *assetsDir != "" {
		settings.Assets = *assetsDir
	}

	level, err := settings.Level()
	if err != nil {
		fatal(err)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	catalog, err := bodies.Load(settings.Catalog)
	if err != nil {
		fatal(err)
	}
	log.Info("catalog loaded", "landing", len(catalog.Landing), "system", len(catalog.System))

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(log, settings, catalog)
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("render loop stopped", "err", err)
		os.Exit(1)
	}
}

// fatal reports a startup error before any window exists.
func fatal(err error) {
	slog.Error("startup failed", "err", err)
	_ = zenity.Error(err.Error(), zenity.Title("Solar System"), zenity.ErrorIcon)
	os.Exit(1)
}
