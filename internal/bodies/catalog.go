package bodies

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/solar-system/internal/errs"
)

//go:embed bodies.yaml
var defaultCatalog []byte

// SkyboxFaces is the number of skybox images, ordered ft, bk, up, dn, rt, lf.
const SkyboxFaces = 6

// Catalog is the full configuration surface: the landing page canvases and the
// interactive system scene.
type Catalog struct {
	Background string          `yaml:"background"`
	Skybox     []string        `yaml:"skybox"`
	Landing    []CelestialBody `yaml:"landing"`
	Center     string          `yaml:"center"`
	System     []CelestialBody `yaml:"system"`
}

// Default returns the built-in table.
func Default() (Catalog, error) {
	return Decode(bytes.NewReader(defaultCatalog))
}

// Load reads a table from path, or the built-in one when path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML table. Unknown keys are rejected. Individual bodies are not
// validated here so that one broken row only takes down its own scene.
func Decode(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, &errs.ConfigurationError{Scope: "catalog", Reason: err.Error()}
	}
	if len(c.Landing) == 0 && len(c.System) == 0 {
		return Catalog{}, errs.Config("catalog", "", "no bodies defined")
	}
	return c, nil
}

// ValidateSystem checks everything the system scene needs.
func (c Catalog) ValidateSystem() error {
	if len(c.System) == 0 {
		return errs.Config("system", "", "no bodies defined")
	}
	seen := make(map[string]bool, len(c.System))
	for _, b := range c.System {
		if err := b.Validate(); err != nil {
			return err
		}
		if seen[b.Name] {
			return errs.Config(b.Name, "name", "duplicate body")
		}
		seen[b.Name] = true
	}
	center, ok := c.CenterBody()
	if !ok {
		return errs.Config("system", "center", "central body %q not in system table", c.Center)
	}
	if center.OrbitRadius != 0 {
		return errs.Config(center.Name, "orbitRadius", "central body must not orbit")
	}
	if len(c.Skybox) != 0 && len(c.Skybox) != SkyboxFaces {
		return errs.Config("system", "skybox", "want %d faces, got %d", SkyboxFaces, len(c.Skybox))
	}
	return nil
}

// CenterBody returns the body the system orbits around.
func (c Catalog) CenterBody() (CelestialBody, bool) {
	for _, b := range c.System {
		if b.Name == c.Center {
			return b, true
		}
	}
	return CelestialBody{}, false
}

// Orbiting returns the system bodies other than the center, in table order.
func (c Catalog) Orbiting() []CelestialBody {
	out := make([]CelestialBody, 0, len(c.System))
	for _, b := range c.System {
		if b.Name != c.Center {
			out = append(out, b)
		}
	}
	return out
}
