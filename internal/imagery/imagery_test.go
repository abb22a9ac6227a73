package imagery

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestResolve(t *testing.T) {
	tests := []struct {
		ref  string
		want string
		err  bool
	}{
		{"/monsters/kraken.png", filepath.Join("assets", "monsters", "kraken.png"), false},
		{"monsters/yeti.png", filepath.Join("assets", "monsters", "yeti.png"), false},
		{"/../secret.png", "", true},
		{"", "", true},
		{"/", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := Resolve("assets", tt.ref)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCover(t *testing.T) {
	// Wide source: left third red, middle green, right third blue. Cover into a square crops the sides.
	src := image.NewRGBA(image.Rect(0, 0, 300, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 300; x++ {
			c := color.RGBA{G: 0xff, A: 0xff}
			if x < 100 {
				c = color.RGBA{R: 0xff, A: 0xff}
			} else if x >= 200 {
				c = color.RGBA{B: 0xff, A: 0xff}
			}
			src.SetRGBA(x, y, c)
		}
	}
	out := Cover(src, 50, 50)
	require.Equal(t, image.Rect(0, 0, 50, 50), out.Bounds())
	center := out.RGBAAt(25, 25)
	assert.Greater(t, center.G, uint8(0xf0))
	assert.Less(t, center.R, uint8(0x10))

	tall := Cover(solid(10, 40, color.RGBA{R: 0x80, A: 0xff}), 64, 32)
	assert.Equal(t, image.Rect(0, 0, 64, 32), tall.Bounds())
}

func TestCoverStartsAtOrigin(t *testing.T) {
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	out := Cover(solid(400, 400, white), 392, 196)
	require.Equal(t, image.Rect(0, 0, 392, 196), out.Bounds())
	for _, pt := range []image.Point{{0, 0}, {10, 10}, {391, 195}} {
		assert.Equal(t, uint8(0xff), out.RGBAAt(pt.X, pt.Y).A, "alpha at %v", pt)
	}
}

func TestCacheLoadsAndFits(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "monsters"), 0755))
	require.NoError(t, imgio.Save(filepath.Join(dir, "monsters", "kraken.png"), solid(80, 40, color.RGBA{R: 0x20, G: 0x40, B: 0x60, A: 0xff}), imgio.PNGEncoder()))

	var logs bytes.Buffer
	c := NewCache(dir, 32, 16, zerolog.New(&logs))

	img := c.Get("/monsters/kraken.png")
	assert.False(t, img.Placeholder)
	assert.Equal(t, image.Rect(0, 0, 32, 16), img.Bounds())
	assert.Equal(t, uint8(0x40), img.RGBAAt(16, 8).G)
	assert.Empty(t, logs.String())

	again := c.Get("/monsters/kraken.png")
	assert.Same(t, img.RGBA, again.RGBA)
	assert.Equal(t, 1, c.Len())
}

func TestCacheMissingImageLogsOnce(t *testing.T) {
	var logs bytes.Buffer
	c := NewCache(t.TempDir(), 32, 16, zerolog.New(&logs))

	first := c.Get("/monsters/missing.png")
	assert.True(t, first.Placeholder)
	assert.Equal(t, image.Rect(0, 0, 32, 16), first.Bounds())

	second := c.Get("/monsters/missing.png")
	assert.True(t, second.Placeholder)
	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("using placeholder")))
}

func TestCacheUndecodableImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0644))
	c := NewCache(dir, 8, 8, zerolog.Nop())
	assert.True(t, c.Get("broken.png").Placeholder)
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder(20, 10)
	assert.Equal(t, image.Rect(0, 0, 20, 10), p.Bounds())
	top, bottom := p.RGBAAt(10, 0), p.RGBAAt(10, 9)
	assert.GreaterOrEqual(t, top.B, bottom.B)

	assert.Equal(t, image.Rect(0, 0, 1, 1), Placeholder(0, -3).Bounds())
}
