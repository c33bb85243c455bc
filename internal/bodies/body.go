// Package bodies holds the celestial body tables that drive every scene.
package bodies

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/solar-system/internal/errs"
)

// Material selects how a body is shaded.
type Material string

const (
	// Standard bodies are lit by the scene lights.
	Standard Material = "standard"
	// Basic bodies ignore lights; used for the star.
	Basic Material = "basic"
)

// CelestialBody is one row of the body table. Bodies are plain values and are
// never modified after the table is loaded.
type CelestialBody struct {
	Name          string   `yaml:"name"`
	Texture       string   `yaml:"texture"`
	Radius        float64  `yaml:"radius"`
	OrbitRadius   float64  `yaml:"orbitRadius"`
	AngularSpeed  float64  `yaml:"angularSpeed"`
	RotationSpeed float64  `yaml:"rotationSpeed"` // 0 uses the scene's uniform spin
	RingTexture   string   `yaml:"ringTexture"`
	Material      Material `yaml:"material"`
	Color         string   `yaml:"color"`
	Description   string   `yaml:"description"`
}

// HasRing reports whether the body carries a ring.
func (b CelestialBody) HasRing() bool { return b.RingTexture != "" }

// Lit reports whether scene lights affect the body.
func (b CelestialBody) Lit() bool { return b.Material != Basic }

// FallbackColor is the flat colour used when the texture cannot be loaded.
func (b CelestialBody) FallbackColor() colorful.Color {
	c, err := colorful.Hex(b.Color)
	if err != nil {
		return colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	}
	return c
}

// Validate checks a single body. Errors are *errs.ConfigurationError.
func (b CelestialBody) Validate() error {
	scope := b.Name
	if scope == "" {
		return errs.Config("body", "name", "must not be empty")
	}
	if b.Texture == "" {
		return errs.Config(scope, "texture", "must not be empty")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"radius", b.Radius},
		{"orbitRadius", b.OrbitRadius},
		{"angularSpeed", b.AngularSpeed},
		{"rotationSpeed", b.RotationSpeed},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errs.Config(scope, f.name, "must be finite, got %v", f.v)
		}
	}
	if b.Radius <= 0 {
		return errs.Config(scope, "radius", "must be > 0, got %v", b.Radius)
	}
	if b.OrbitRadius < 0 {
		return errs.Config(scope, "orbitRadius", "must be >= 0, got %v", b.OrbitRadius)
	}
	switch b.Material {
	case "", Standard, Basic:
	default:
		return errs.Config(scope, "material", "unknown material %q", b.Material)
	}
	if b.Color != "" {
		if _, err := colorful.Hex(b.Color); err != nil {
			return errs.Config(scope, "color", "invalid hex colour %q", b.Color)
		}
	}
	return nil
}
