// Package config loads the viewer configuration: defaults, an optional YAML file and GLOBE_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/viper"

	"monster-globe/internal/globe"
	"monster-globe/internal/ui/style"
)

// DefaultPath is the config file read when no other path is given, relative to the working directory.
const DefaultPath = "config/globe.yaml"

// EnvPrefix prefixes environment overrides: camera.max_distance is GLOBE_CAMERA_MAX_DISTANCE.
const EnvPrefix = "GLOBE"

// ErrInvalid is returned by Validate and Load for out-of-range values.
var ErrInvalid = errors.New("config: invalid")

type Window struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	FPS    int    `mapstructure:"fps"`
	MSAA   bool   `mapstructure:"msaa"`
}

type Assets struct {
	Dir        string `mapstructure:"dir"`
	Markers    string `mapstructure:"markers"` // YAML marker file; empty = built-in hunt
	Stylesheet string `mapstructure:"stylesheet"`
	FontsDir   string `mapstructure:"fonts_dir"`
}

type Globe struct {
	Radius             float32 `mapstructure:"radius"`
	Segments           int     `mapstructure:"segments"`
	SurfaceTexture     string  `mapstructure:"surface_texture"`
	BumpTexture        string  `mapstructure:"bump_texture"`
	AtmosphereColor    string  `mapstructure:"atmosphere_color"`
	AtmosphereAltitude float32 `mapstructure:"atmosphere_altitude"`
}

type Markers struct {
	Altitude  float32 `mapstructure:"altitude"`
	DotRadius float32 `mapstructure:"dot_radius"`
	DotColor  string  `mapstructure:"dot_color"`
	HitRadius float32 `mapstructure:"hit_radius"`
	RingColor string  `mapstructure:"ring_color"`
}

type Rings struct {
	MaxRadius float32       `mapstructure:"max_radius"`
	Speed     float32       `mapstructure:"speed"`
	Repeat    time.Duration `mapstructure:"repeat"`
}

type Camera struct {
	Fov         float32 `mapstructure:"fov"`
	Near        float32 `mapstructure:"near"`
	Far         float32 `mapstructure:"far"`
	Height      float32 `mapstructure:"height"`
	Distance    float32 `mapstructure:"distance"`
	MinDistance float32 `mapstructure:"min_distance"`
	MaxDistance float32 `mapstructure:"max_distance"`
}

type Controls struct {
	DragScale     float32 `mapstructure:"drag_scale"`
	DragThreshold float32 `mapstructure:"drag_threshold"`
	ZoomScale     float32 `mapstructure:"zoom_scale"`
	// WheelStep is the pixel delta one wheel notch stands for.
	WheelStep float32 `mapstructure:"wheel_step"`
}

type Motion struct {
	AutoRotate float32 `mapstructure:"auto_rotate"`
	Damping    float32 `mapstructure:"damping"`
}

type Stars struct {
	Count  int     `mapstructure:"count"`
	Extent float32 `mapstructure:"extent"`
	Seed   int64   `mapstructure:"seed"`
	Size   float32 `mapstructure:"size"`
}

type Log struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

type Debug struct {
	Enabled    bool `mapstructure:"enabled"`
	HitVolumes bool `mapstructure:"hit_volumes"`
}

// Config is the whole viewer configuration.
type Config struct {
	Window   Window   `mapstructure:"window"`
	Assets   Assets   `mapstructure:"assets"`
	Globe    Globe    `mapstructure:"globe"`
	Markers  Markers  `mapstructure:"markers"`
	Rings    Rings    `mapstructure:"rings"`
	Camera   Camera   `mapstructure:"camera"`
	Controls Controls `mapstructure:"controls"`
	Motion   Motion   `mapstructure:"motion"`
	Stars    Stars    `mapstructure:"stars"`
	Log      Log      `mapstructure:"log"`
	Debug    Debug    `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	p := globe.DefaultParams()

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Monster Hunt")
	v.SetDefault("window.fps", 60)
	v.SetDefault("window.msaa", true)

	v.SetDefault("assets.dir", "assets")
	v.SetDefault("assets.markers", "")
	v.SetDefault("assets.stylesheet", "")
	v.SetDefault("assets.fonts_dir", "assets/fonts")

	v.SetDefault("globe.radius", p.GlobeRadius)
	v.SetDefault("globe.segments", p.GlobeSegments)
	v.SetDefault("globe.surface_texture", p.SurfaceTexture)
	v.SetDefault("globe.bump_texture", p.BumpTexture)
	v.SetDefault("globe.atmosphere_color", "#d4af37")
	v.SetDefault("globe.atmosphere_altitude", p.AtmosphereAltitude)

	v.SetDefault("markers.altitude", p.MarkerAltitude)
	v.SetDefault("markers.dot_radius", p.DotRadius)
	v.SetDefault("markers.dot_color", "#d4af37")
	v.SetDefault("markers.hit_radius", p.HitRadius)
	v.SetDefault("markers.ring_color", "#0ea5e9")

	v.SetDefault("rings.max_radius", p.Rings.MaxRadius)
	v.SetDefault("rings.speed", p.Rings.Speed)
	v.SetDefault("rings.repeat", p.Rings.Repeat)

	v.SetDefault("camera.fov", p.Camera.Fov)
	v.SetDefault("camera.near", p.Camera.Near)
	v.SetDefault("camera.far", p.Camera.Far)
	v.SetDefault("camera.height", p.Camera.Position.Y())
	v.SetDefault("camera.distance", p.Camera.Position.Z())
	v.SetDefault("camera.min_distance", p.Controls.MinDistance)
	v.SetDefault("camera.max_distance", p.Controls.MaxDistance)

	v.SetDefault("controls.drag_scale", p.Controls.DragScale)
	v.SetDefault("controls.drag_threshold", p.Controls.DragThreshold)
	v.SetDefault("controls.zoom_scale", p.Controls.ZoomScale)
	v.SetDefault("controls.wheel_step", 100)

	v.SetDefault("motion.auto_rotate", p.Motion.AutoRotate)
	v.SetDefault("motion.damping", p.Motion.Damping)

	v.SetDefault("stars.count", p.Stars.Count)
	v.SetDefault("stars.extent", p.Stars.Extent)
	v.SetDefault("stars.seed", 0)
	v.SetDefault("stars.size", p.Stars.Size)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/globe.log")
	v.SetDefault("log.console", true)

	v.SetDefault("debug.enabled", false)
	v.SetDefault("debug.hit_volumes", false)
}

// Load reads the config file at path over the defaults, then applies GLOBE_* environment
// overrides. A missing file is not an error: the defaults apply. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the configuration with no file and no environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	// Defaults always decode.
	_ = v.Unmarshal(&c)
	return &c
}

// Validate reports the first out-of-range value, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
	}
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Globe.Radius <= 0:
		return invalid("globe.radius %v must be positive", c.Globe.Radius)
	case c.Globe.Segments < 3:
		return invalid("globe.segments %d must be at least 3", c.Globe.Segments)
	case c.Markers.HitRadius <= c.Markers.DotRadius:
		return invalid("markers.hit_radius %v must exceed markers.dot_radius %v", c.Markers.HitRadius, c.Markers.DotRadius)
	case c.Camera.MinDistance <= 0 || c.Camera.MinDistance >= c.Camera.MaxDistance:
		return invalid("camera distance range [%v, %v]", c.Camera.MinDistance, c.Camera.MaxDistance)
	case c.Camera.Distance < c.Camera.MinDistance || c.Camera.Distance > c.Camera.MaxDistance:
		return invalid("camera.distance %v outside [%v, %v]", c.Camera.Distance, c.Camera.MinDistance, c.Camera.MaxDistance)
	case c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far:
		return invalid("camera clip range [%v, %v]", c.Camera.Near, c.Camera.Far)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return invalid("camera.fov %v", c.Camera.Fov)
	case c.Motion.Damping <= 0 || c.Motion.Damping >= 1:
		return invalid("motion.damping %v must be in (0, 1)", c.Motion.Damping)
	case c.Controls.DragThreshold < 0:
		return invalid("controls.drag_threshold %v", c.Controls.DragThreshold)
	}
	for key, s := range map[string]string{
		"globe.atmosphere_color": c.Globe.AtmosphereColor,
		"markers.dot_color":      c.Markers.DotColor,
		"markers.ring_color":     c.Markers.RingColor,
	} {
		if _, err := ParseColor(s); err != nil {
			return invalid("%s: %v", key, err)
		}
	}
	return nil
}

// GlobeParams converts the configuration into engine parameters. Call Validate first.
func (c *Config) GlobeParams() globe.Params {
	p := globe.DefaultParams()
	p.GlobeRadius = c.Globe.Radius
	p.GlobeSegments = c.Globe.Segments
	p.SurfaceTexture = c.Globe.SurfaceTexture
	p.BumpTexture = c.Globe.BumpTexture
	p.AtmosphereAltitude = c.Globe.AtmosphereAltitude
	p.AtmosphereColor = mustColor(c.Globe.AtmosphereColor, p.AtmosphereColor)

	p.MarkerAltitude = c.Markers.Altitude
	p.DotRadius = c.Markers.DotRadius
	p.DotColor = mustColor(c.Markers.DotColor, p.DotColor)
	p.HitRadius = c.Markers.HitRadius
	p.RingColor = mustColor(c.Markers.RingColor, p.RingColor)

	p.Rings = globe.RingParams{MaxRadius: c.Rings.MaxRadius, Speed: c.Rings.Speed, Repeat: c.Rings.Repeat}

	p.Camera = globe.CameraParams{
		Fov:      c.Camera.Fov,
		Near:     c.Camera.Near,
		Far:      c.Camera.Far,
		Position: mgl32.Vec3{0, c.Camera.Height, c.Camera.Distance},
	}
	p.Controls = globe.Controls{
		DragScale:     c.Controls.DragScale,
		DragThreshold: c.Controls.DragThreshold,
		ZoomScale:     c.Controls.ZoomScale,
		MinDistance:   c.Camera.MinDistance,
		MaxDistance:   c.Camera.MaxDistance,
	}
	p.Motion = globe.Motion{AutoRotate: c.Motion.AutoRotate, Damping: c.Motion.Damping}

	p.Stars.Count = c.Stars.Count
	p.Stars.Extent = c.Stars.Extent
	p.Stars.Seed = c.Stars.Seed
	p.Stars.Size = c.Stars.Size
	return p
}

// ParseColor parses a colour in the overlay stylesheet syntax (#rgb, #rrggbb, #rrggbbaa,
// rgb(), rgba()). The leading '#' may be omitted, since it starts a comment in unquoted YAML.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := style.ParseColor(s); ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		if c, ok := style.ParseColor("#" + s); ok {
			return c, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("bad color %q", s)
}

func mustColor(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
