package globe

import (
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Params holds every tunable of the globe engine. DefaultParams matches the hunt's look and feel;
// config.Config.GlobeParams builds one from the config file.
type Params struct {
	GlobeRadius        float32
	GlobeSegments      int
	SurfaceTexture     string // local image path; empty or missing = procedural fallback in the runtime
	BumpTexture        string
	AtmosphereColor    color.RGBA
	AtmosphereAltitude float32

	// MarkerAltitude lifts dots, hit volumes and rings above the surface as a fraction of GlobeRadius.
	MarkerAltitude float32
	DotRadius      float32
	DotColor       color.RGBA
	// HitRadius is the radius of the invisible click target. Must exceed DotRadius.
	HitRadius float32

	Rings     RingParams
	RingColor color.RGBA

	Camera   CameraParams
	Controls Controls
	Motion   Motion
	Stars    StarParams
	Lights   []Light
}

// CameraParams configures the perspective camera. Fov is vertical, in degrees.
type CameraParams struct {
	Fov      float32
	Near     float32
	Far      float32
	Position mgl32.Vec3
}

// Controls configures pointer and wheel handling.
type Controls struct {
	// DragScale converts pointer pixels into radians per move event.
	DragScale float32
	// DragThreshold is the cumulative pixel distance on either axis above which a press becomes a drag.
	DragThreshold float32
	ZoomScale     float32
	MinDistance   float32
	MaxDistance   float32
}

// Motion configures the per-frame idle spin and inertia.
type Motion struct {
	AutoRotate float32 // radians of yaw added per frame while not dragging
	Damping    float32 // per-frame velocity multiplier, in (0, 1)
}

// StarParams configures the decorative starfield. Seed 0 picks a time-based seed.
type StarParams struct {
	Count  int
	Extent float32 // side length of the cube the stars are scattered in
	Seed   int64
	Size   float32
	Color  color.RGBA
}

// RingParams configures the pulse ring drawn around every marker. Radii are in degrees of arc.
type RingParams struct {
	MaxRadius float32
	Speed     float32 // degrees per second
	Repeat    time.Duration
}

var (
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gold  = color.RGBA{R: 0xd4, G: 0xaf, B: 0x37, A: 0xff}
	sky   = color.RGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 0xff}
)

// DefaultLights returns the ambient + key + rim rig.
func DefaultLights() []Light {
	return []Light{
		{Kind: LightAmbient, Color: white, Intensity: 0.4},
		{Kind: LightDirectional, Color: white, Intensity: 0.7, Position: mgl32.Vec3{5, 3, 5}},
		{Kind: LightDirectional, Color: gold, Intensity: 0.4, Position: mgl32.Vec3{-5, 0, -5}},
	}
}

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		GlobeRadius:        100,
		GlobeSegments:      64,
		SurfaceTexture:     "assets/textures/earth-blue-marble.jpg",
		BumpTexture:        "assets/textures/earth-topology.png",
		AtmosphereColor:    gold,
		AtmosphereAltitude: 0.2,
		MarkerAltitude:     0.02,
		DotRadius:          1.5,
		DotColor:           gold,
		HitRadius:          15,
		Rings:              RingParams{MaxRadius: 3, Speed: 2, Repeat: 2 * time.Second},
		RingColor:          sky,
		Camera: CameraParams{
			Fov:      50,
			Near:     0.1,
			Far:      1000,
			Position: mgl32.Vec3{0, 50, 300},
		},
		Controls: Controls{
			DragScale:     0.005,
			DragThreshold: 2,
			ZoomScale:     0.1,
			MinDistance:   150,
			MaxDistance:   500,
		},
		Motion: Motion{AutoRotate: 0.001, Damping: 0.95},
		Stars: StarParams{
			Count:  10000,
			Extent: 2000,
			Size:   1.5,
			Color:  color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc},
		},
		Lights: DefaultLights(),
	}
}
