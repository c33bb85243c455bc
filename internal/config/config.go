// Package config loads the application settings. Every key is optional; missing
// keys keep the values of the reference scene.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/iburimskiy/solar-system/internal/errs"
	"github.com/iburimskiy/solar-system/internal/orbit"
	"github.com/iburimskiy/solar-system/internal/scroll"
)

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Orbit struct {
	SpeedMultiplier     float64 `toml:"speed_multiplier"`
	RotationSpeed       float64 `toml:"rotation_speed"`
	CanvasRotationSpeed float64 `toml:"canvas_rotation_speed"`
}

type Camera struct {
	FOV         float64 `toml:"fov"`
	Distance    float64 `toml:"distance"`
	MinDistance float64 `toml:"min_distance"`
	MaxDistance float64 `toml:"max_distance"`
	Elevation   float64 `toml:"elevation"` // degrees above the orbital plane
	CanvasFOV   float64 `toml:"canvas_fov"`
}

type Page struct {
	CanvasSize     int     `toml:"canvas_size"`
	ParallaxFactor float64 `toml:"parallax_factor"`
	WheelStep      float64 `toml:"wheel_step"`
	SmoothScrollMS float64 `toml:"smooth_scroll_ms"`
	FadeMS         float64 `toml:"fade_ms"`
	Title          string  `toml:"title"`
	Subtitle       string  `toml:"subtitle"`
}

type Settings struct {
	Window     Window `toml:"window"`
	Orbit      Orbit  `toml:"orbit"`
	Camera     Camera `toml:"camera"`
	Page       Page   `toml:"page"`
	Catalog    string `toml:"catalog"`
	Assets     string `toml:"assets"`
	Soundtrack string `toml:"soundtrack"`
	LogLevel   string `toml:"log_level"`
}

func Default() Settings {
	return Settings{
		Window: Window{Width: 1280, Height: 800, Title: "Solar System"},
		Orbit: Orbit{
			SpeedMultiplier:     orbit.DefaultOmega,
			RotationSpeed:       0.003,
			CanvasRotationSpeed: 0.01,
		},
		Camera: Camera{
			FOV:         85,
			Distance:    100,
			MinDistance: 12,
			MaxDistance: 1000,
			CanvasFOV:   45,
		},
		Page: Page{
			CanvasSize:     260,
			ParallaxFactor: scroll.DefaultParallax,
			WheelStep:      60,
			SmoothScrollMS: 450,
			FadeMS:         600,
			Title:          "Journey Through the Solar System",
			Subtitle:       "Scroll to explore",
		},
		Assets:   ".",
		LogLevel: "info",
	}
}

// Load reads settings from a TOML file on top of Default. An empty path returns
// the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, s.Validate()
	}
	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return s, &errs.ConfigurationError{Scope: "settings", Reason: strict.String()}
		}
		return s, &errs.ConfigurationError{Scope: "settings", Reason: err.Error()}
	}
	return s, s.Validate()
}

func (s Settings) Validate() error {
	for _, f := range []struct {
		scope, field string
		v            float64
	}{
		{"orbit", "speed_multiplier", s.Orbit.SpeedMultiplier},
		{"orbit", "rotation_speed", s.Orbit.RotationSpeed},
		{"orbit", "canvas_rotation_speed", s.Orbit.CanvasRotationSpeed},
		{"camera", "fov", s.Camera.FOV},
		{"camera", "distance", s.Camera.Distance},
		{"camera", "min_distance", s.Camera.MinDistance},
		{"camera", "max_distance", s.Camera.MaxDistance},
		{"camera", "elevation", s.Camera.Elevation},
		{"camera", "canvas_fov", s.Camera.CanvasFOV},
		{"page", "parallax_factor", s.Page.ParallaxFactor},
		{"page", "wheel_step", s.Page.WheelStep},
		{"page", "smooth_scroll_ms", s.Page.SmoothScrollMS},
		{"page", "fade_ms", s.Page.FadeMS},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errs.Config(f.scope, f.field, "must be finite, got %v", f.v)
		}
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return errs.Config("window", "size", "must be positive, got %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Orbit.SpeedMultiplier < 0 {
		return errs.Config("orbit", "speed_multiplier", "must be >= 0")
	}
	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		return errs.Config("camera", "fov", "must be in (0, 180), got %v", s.Camera.FOV)
	}
	if s.Camera.CanvasFOV <= 0 || s.Camera.CanvasFOV >= 180 {
		return errs.Config("camera", "canvas_fov", "must be in (0, 180), got %v", s.Camera.CanvasFOV)
	}
	if s.Camera.MinDistance <= 0 || s.Camera.MaxDistance < s.Camera.MinDistance {
		return errs.Config("camera", "min_distance", "need 0 < min <= max, got %v..%v", s.Camera.MinDistance, s.Camera.MaxDistance)
	}
	if s.Page.CanvasSize <= 0 {
		return errs.Config("page", "canvas_size", "must be positive")
	}
	if s.Page.SmoothScrollMS < 0 {
		return errs.Config("page", "smooth_scroll_ms", "must be >= 0")
	}
	if s.Page.FadeMS < 0 {
		return errs.Config("page", "fade_ms", "must be >= 0")
	}
	if _, err := s.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (s Settings) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s.LogLevel))); err != nil {
		return slog.LevelInfo, errs.Config("settings", "log_level", "unknown level %q", s.LogLevel)
	}
	return l, nil
}
