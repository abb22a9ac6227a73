package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monster-globe/internal/globe"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "globe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1280, c.Window.Width)
	assert.Equal(t, "Monster Hunt", c.Window.Title)
	assert.Equal(t, float32(150), c.Camera.MinDistance)
	assert.Equal(t, float32(500), c.Camera.MaxDistance)
	assert.Equal(t, float32(300), c.Camera.Distance)
	assert.Equal(t, float32(0.95), c.Motion.Damping)
	assert.Equal(t, 2*time.Second, c.Rings.Repeat)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "", c.Assets.Markers)
	assert.False(t, c.Debug.Enabled)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
  height: 600
camera:
  max_distance: 650
rings:
  repeat: 3s
debug:
  enabled: true
  hit_volumes: true
log:
  level: debug
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 600, c.Window.Height)
	assert.Equal(t, float32(650), c.Camera.MaxDistance)
	assert.Equal(t, float32(150), c.Camera.MinDistance, "unset keys keep defaults")
	assert.Equal(t, 3*time.Second, c.Rings.Repeat)
	assert.True(t, c.Debug.HitVolumes)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GLOBE_CAMERA_MAX_DISTANCE", "600")
	t.Setenv("GLOBE_LOG_LEVEL", "warn")
	path := writeConfig(t, "camera:\n  max_distance: 450\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(600), c.Camera.MaxDistance)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zoom range", "camera:\n  min_distance: 500\n  max_distance: 150\n"},
		{"distance below zoom range", "camera:\n  distance: 100\n"},
		{"distance above zoom range", "camera:\n  distance: 600\n"},
		{"damping", "motion:\n  damping: 1.5\n"},
		{"radius", "globe:\n  radius: 0\n"},
		{"hit radius", "markers:\n  hit_radius: 1\n"},
		{"color", "markers:\n  ring_color: blue\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "window: [\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestGlobeParams_DefaultsMatchEngine(t *testing.T) {
	got := Default().GlobeParams()
	want := globe.DefaultParams()

	assert.Equal(t, want.Camera, got.Camera)
	assert.Equal(t, want.Controls, got.Controls)
	assert.Equal(t, want.Motion, got.Motion)
	assert.Equal(t, want.Rings, got.Rings)
	assert.Equal(t, want.DotColor, got.DotColor)
	assert.Equal(t, want.RingColor, got.RingColor)
	assert.Equal(t, want.AtmosphereColor, got.AtmosphereColor)
	assert.Equal(t, want.HitRadius, got.HitRadius)
	assert.Equal(t, mgl32.Vec3{0, 50, 300}, got.Camera.Position)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#d4af37", color.RGBA{0xd4, 0xaf, 0x37, 0xff}, true},
		{"0ea5e9", color.RGBA{0x0e, 0xa5, 0xe9, 0xff}, true},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"#00000080", color.RGBA{0, 0, 0, 0x80}, true},
		{"rgba(14, 165, 233, 0.5)", color.RGBA{14, 165, 233, 128}, true},
		{"#12345", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_ShippedConfigMatchesDefaults(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)

	assert.Equal(t, "assets/overlay.css", c.Assets.Stylesheet)
	got := c.GlobeParams()
	want := Default().GlobeParams()
	assert.Equal(t, want.Camera, got.Camera)
	assert.Equal(t, want.Controls, got.Controls)
	assert.Equal(t, want.Motion, got.Motion)
	assert.Equal(t, want.Rings, got.Rings)
	assert.Equal(t, want.Stars, got.Stars)
	assert.Equal(t, Default().Controls.WheelStep, c.Controls.WheelStep)
}
