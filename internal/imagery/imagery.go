// Package imagery loads marker images from the assets directory, fitted to the panel's image
// box. Images that cannot be loaded are replaced by a placeholder and reported once.
package imagery

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrOutsideAssets is returned for image references that resolve outside the assets directory.
var ErrOutsideAssets = errors.New("imagery: reference outside assets directory")

// Image is a loaded marker image. Placeholder is true when the source could not be used.
type Image struct {
	*image.RGBA
	Placeholder bool
}

// Cache loads each reference once at a fixed size.
type Cache struct {
	dir           string
	width, height int
	log           zerolog.Logger

	mu      sync.Mutex
	entries map[string]Image
}

// NewCache returns a cache that resolves references under dir and fits images to width x height.
func NewCache(dir string, width, height int, log zerolog.Logger) *Cache {
	return &Cache{
		dir:     dir,
		width:   max(width, 1),
		height:  max(height, 1),
		log:     log.With().Str("component", "imagery").Logger(),
		entries: make(map[string]Image),
	}
}

// Get returns the image for ref, loading it on first use. It never fails: a missing or
// undecodable image yields the placeholder, logged once per reference.
func (c *Cache) Get(ref string) Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.entries[ref]; ok {
		return img
	}
	img, err := c.load(ref)
	if err != nil {
		c.log.Warn().Err(err).Str("image", ref).Msg("marker image unavailable, using placeholder")
		img = Image{RGBA: Placeholder(c.width, c.height), Placeholder: true}
	}
	c.entries[ref] = img
	return img
}

// Len returns the number of cached references.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) load(ref string) (Image, error) {
	path, err := Resolve(c.dir, ref)
	if err != nil {
		return Image{}, err
	}
	src, err := imgio.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("imagery: open %s: %w", path, err)
	}
	return Image{RGBA: Cover(src, c.width, c.height)}, nil
}

// Resolve maps a reference such as "/monsters/kraken.png" to a path under dir.
func Resolve(dir, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", errors.New("imagery: empty reference")
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimLeft(ref, "/")))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %q", ErrOutsideAssets, ref)
	}
	return filepath.Join(dir, rel), nil
}

// Cover scales src to fill width x height, keeping its aspect ratio and cropping the overflow
// equally on both sides.
func Cover(src image.Image, width, height int) *image.RGBA {
	b := src.Bounds()
	if b.Empty() {
		return Placeholder(width, height)
	}
	sx := float64(width) / float64(b.Dx())
	sy := float64(height) / float64(b.Dy())
	scale := max(sx, sy)
	w := max(width, int(float64(b.Dx())*scale+0.5))
	h := max(height, int(float64(b.Dy())*scale+0.5))
	scaled := transform.Resize(src, w, h, transform.Linear)
	x0 := (w - width) / 2
	y0 := (h - height) / 2
	out := transform.Crop(scaled, image.Rect(x0, y0, x0+width, y0+height))
	// Crop keeps the crop offset in its bounds; consumers index from (0, 0).
	out.Rect = out.Rect.Sub(out.Rect.Min)
	return out
}

var (
	placeholderTop    = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	placeholderBottom = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
)

// Placeholder is a soft vertical gradient the panel draws the map glyph on.
func Placeholder(width, height int) *image.RGBA {
	width, height = max(width, 1), max(height, 1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		t := float64(y) / float64(max(height-1, 1))
		c := color.RGBA{
			R: uint8(float64(placeholderTop.R)*(1-t) + float64(placeholderBottom.R)*t),
			G: uint8(float64(placeholderTop.G)*(1-t) + float64(placeholderBottom.G)*t),
			B: uint8(float64(placeholderTop.B)*(1-t) + float64(placeholderBottom.B)*t),
			A: 0xff,
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return blur.Gaussian(img, 2)
}
