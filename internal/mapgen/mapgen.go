// Package mapgen generates the procedural globe texture used when the surface and bump images
// are not available locally.
package mapgen

import (
	"image"
	"image/color"
	"time"

	"github.com/chewxy/math32"
)

// TextureOptions controls procedural globe texture generation.
// Width/Height are the equirectangular image size in pixels (2:1 maps the whole sphere).
// SeaLevel is the noise height in [0,1] below which a pixel is ocean.
// Seed controls randomness; Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity, and Gain control the fractal noise shape; Frequency is in
// lattice cells per image width.
type TextureOptions struct {
	Width    int
	Height   int
	SeaLevel float32

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultTextureOptions returns a sane default configuration.
func DefaultTextureOptions() TextureOptions {
	return TextureOptions{
		Width:      1024,
		Height:     512,
		SeaLevel:   0.55,
		Seed:       0,
		Octaves:    5,
		Frequency:  6,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

func (o TextureOptions) normalized() TextureOptions {
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = o.Width / 2
	}
	if o.SeaLevel <= 0 || o.SeaLevel >= 1 {
		o.SeaLevel = 0.55
	}
	if o.Octaves <= 0 {
		o.Octaves = 1
	}
	if o.Frequency <= 0 {
		o.Frequency = 6
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = 2.0
	}
	if o.Gain <= 0 {
		o.Gain = 0.5
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// HeightField samples fractal noise over the image, row-major, values in [0,1]. The field wraps
// horizontally so the seam at longitude ±180 is invisible on the sphere.
func HeightField(opts TextureOptions) []float32 {
	o := opts.normalized()
	field := make([]float32, o.Width*o.Height)
	scale := o.Frequency / float32(o.Width)
	period := float32(o.Width) * scale
	for y := 0; y < o.Height; y++ {
		for x := 0; x < o.Width; x++ {
			u := float32(x) * scale
			v := float32(y) * scale
			a := fractalValueNoise2D(u, v, o.Seed, o.Octaves, o.Lacunarity, o.Gain)
			b := fractalValueNoise2D(u-period, v, o.Seed, o.Octaves, o.Lacunarity, o.Gain)
			// Blend with the copy one period to the left so column Width continues column 0.
			t := float32(x) / float32(o.Width)
			h := lerp(b, a, 1-t)
			if !isFinite(h) {
				h = 0
			}
			field[y*o.Width+x] = clamp01(h)
		}
	}
	return field
}

var (
	deepSea    = color.RGBA{R: 0x0a, G: 0x1a, B: 0x3a, A: 0xff}
	shallowSea = color.RGBA{R: 0x1d, G: 0x4e, B: 0x7a, A: 0xff}
	lowland    = color.RGBA{R: 0x4a, G: 0x6b, B: 0x2f, A: 0xff}
	highland   = color.RGBA{R: 0x8a, G: 0x74, B: 0x4a, A: 0xff}
	ice        = color.RGBA{R: 0xe8, G: 0xee, B: 0xf2, A: 0xff}
)

// Surface returns an equirectangular colour texture and the matching grayscale bump map.
// Latitudes beyond 72 degrees are ice.
func Surface(opts TextureOptions) (*image.RGBA, *image.Gray) {
	o := opts.normalized()
	field := HeightField(o)
	albedo := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	bump := image.NewGray(image.Rect(0, 0, o.Width, o.Height))
	for y := 0; y < o.Height; y++ {
		lat := 90 - 180*(float32(y)+0.5)/float32(o.Height)
		polar := math32.Abs(lat) > 72
		for x := 0; x < o.Width; x++ {
			h := field[y*o.Width+x]
			var c color.RGBA
			switch {
			case polar:
				c = ice
			case h < o.SeaLevel:
				c = mix(deepSea, shallowSea, h/o.SeaLevel)
			default:
				c = mix(lowland, highland, (h-o.SeaLevel)/(1-o.SeaLevel))
			}
			albedo.SetRGBA(x, y, c)
			// Oceans are flat in the bump map.
			relief := float32(0)
			if h >= o.SeaLevel {
				relief = (h - o.SeaLevel) / (1 - o.SeaLevel)
			}
			bump.SetGray(x, y, color.Gray{Y: uint8(relief * 255)})
		}
	}
	return albedo, bump
}

func mix(a, b color.RGBA, t float32) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(lerp(float32(a.R), float32(b.R), t)),
		G: uint8(lerp(float32(a.G), float32(b.G), t)),
		B: uint8(lerp(float32(a.B), float32(b.B), t)),
		A: 0xff,
	}
}

// fractalValueNoise2D is simple fractal value noise: layered smooth value noise with
// configurable octaves, lacunarity, and gain. Output is in [0,1].
func fractalValueNoise2D(x, y float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum float32
	var amplitude float32 = 1
	var maxAmp float32 = 0
	freq := float32(1)

	for i := 0; i < octaves; i++ {
		n := valueNoise2D(x*freq, y*freq, int32(seed)+int32(i))
		sum += n * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise2D is smooth value noise in [0,1] using a hash-based lattice and cubic easing.
func valueNoise2D(x, y float32, seed int32) float32 {
	x0 := int32(math32.Floor(x))
	y0 := int32(math32.Floor(y))
	tx := x - float32(x0)
	ty := y - float32(y0)

	v00 := hash2D(x0, y0, seed)
	v10 := hash2D(x0+1, y0, seed)
	v01 := hash2D(x0, y0+1, seed)
	v11 := hash2D(x0+1, y0+1, seed)

	sx := smoothStep(tx)
	sy := smoothStep(ty)

	ix0 := lerp(v00, v10, sx)
	ix1 := lerp(v01, v11, sx)
	return lerp(ix0, ix1, sy)
}

// hash2D maps integer lattice coordinates to a deterministic pseudo-random float in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is Perlin-style cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
