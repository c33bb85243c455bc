package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/solar-system/internal/errs"
	"github.com/iburimskiy/solar-system/internal/orbit"
	"github.com/iburimskiy/solar-system/internal/scroll"
)

func writeSettings(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	require.NoError(t, s.Validate())
	assert.Equal(t, 0.0005, s.Orbit.SpeedMultiplier)
	assert.Equal(t, 0.003, s.Orbit.RotationSpeed)
	assert.Equal(t, 0.5, s.Page.ParallaxFactor)
}

func TestLoadOverridesSomeKeys(t *testing.T) {
	path := writeSettings(t, `
log_level = "debug"
soundtrack = "music/space.mp3"

[orbit]
speed_multiplier = 0.001

[camera]
elevation = 20
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.001, s.Orbit.SpeedMultiplier)
	assert.Equal(t, 0.003, s.Orbit.RotationSpeed)
	assert.Equal(t, 20.0, s.Camera.Elevation)
	assert.Equal(t, 85.0, s.Camera.FOV)
	assert.Equal(t, "music/space.mp3", s.Soundtrack)

	l, err := s.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "[orbit]\nwobble = 1\n",
		"bad fov":      "[camera]\nfov = 190\n",
		"bad distance": "[camera]\nmin_distance = 50\nmax_distance = 10\n",
		"bad level":    "log_level = \"loud\"\n",
		"syntax":       "[window\n",
		"bad window":   "[window]\nwidth = 0\n",
		"bad fade":     "[page]\nfade_ms = -1\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeSettings(t, data))
			var ce *errs.ConfigurationError
			assert.True(t, errors.As(err, &ce), "got %v", err)
		})
	}
}

func TestLoadRejectsNonFinite(t *testing.T) {
	tests := []struct {
		data, field string
	}{
		{"[orbit]\nspeed_multiplier = nan\n", "speed_multiplier"},
		{"[orbit]\nrotation_speed = inf\n", "rotation_speed"},
		{"[orbit]\ncanvas_rotation_speed = -inf\n", "canvas_rotation_speed"},
		{"[camera]\nfov = nan\n", "fov"},
		{"[camera]\nelevation = nan\n", "elevation"},
		{"[camera]\nmax_distance = inf\n", "max_distance"},
		{"[page]\nparallax_factor = nan\n", "parallax_factor"},
		{"[page]\nwheel_step = inf\n", "wheel_step"},
		{"[page]\nsmooth_scroll_ms = nan\n", "smooth_scroll_ms"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := Load(writeSettings(t, tt.data))
			var ce *errs.ConfigurationError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestDefaultsShareReferenceConstants(t *testing.T) {
	s := Default()
	assert.Equal(t, orbit.DefaultOmega, s.Orbit.SpeedMultiplier)
	assert.Equal(t, scroll.DefaultParallax, s.Page.ParallaxFactor)
}

func TestLoadDefaultValidates(t *testing.T) {
	s := Default()
	s.LogLevel = "loud"
	assert.Error(t, s.Validate())
	_, err := Load("")
	assert.NoError(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
