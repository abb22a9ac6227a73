// Package ui draws the 2D overlay (title header, mission panel) from CSS-styled nodes with raylib.
package ui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"monster-globe/internal/ui/style"
)

// fontBaseSize is the size glyphs are rasterized at; smaller sizes are scaled down.
const fontBaseSize = 64

// Engine holds the current stylesheet and font and draws nodes with raylib.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached per type/class/id and recomputed only when the stylesheet changes.
// If a font is loaded (LoadFont), text is drawn with it; otherwise raylib's default font is used.
type Engine struct {
	sheet  *style.Stylesheet
	styles map[string]style.Computed
	font   rl.Font
	custom bool
}

// New creates a UI engine with the built-in overlay stylesheet and raylib's default font.
func New() *Engine {
	return &Engine{sheet: style.Default(), styles: make(map[string]style.Computed)}
}

// LoadCSS parses the CSS file at path and layers it over the built-in stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := style.Parse(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	e.SetStylesheet(style.Default().Merge(sheet))
	return nil
}

// SetStylesheet replaces the stylesheet.
func (e *Engine) SetStylesheet(sheet *style.Stylesheet) {
	e.sheet = sheet
	clear(e.styles)
}

// Stylesheet returns the current stylesheet.
func (e *Engine) Stylesheet() *style.Stylesheet {
	return e.sheet
}

// LoadFont loads a TTF font from path for text rendering, with Latin-1 and the overlay's symbols.
// If loading fails, the engine keeps its current font. Call once the window exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFontEx(path, fontBaseSize, codepoints())
	if f.Texture.ID == 0 {
		return fmt.Errorf("ui: load font %s: %w", path, os.ErrNotExist)
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	e.unloadFont()
	e.font = f
	e.custom = true
	return nil
}

func codepoints() []rune {
	var cps []rune
	for r := rune(32); r < 127; r++ {
		cps = append(cps, r)
	}
	for r := rune(0xa0); r <= 0xff; r++ {
		cps = append(cps, r)
	}
	return append(cps, '•', '×', '—', '’', '“', '”')
}

// Font returns the font text is drawn with.
func (e *Engine) Font() rl.Font {
	if e.custom {
		return e.font
	}
	return rl.GetFontDefault()
}

func (e *Engine) unloadFont() {
	if e.custom {
		rl.UnloadFont(e.font)
		e.custom = false
	}
}

// Unload frees the loaded font.
func (e *Engine) Unload() {
	e.unloadFont()
}

// Style returns the resolved style for a node.
func (e *Engine) Style(n *Node) style.Computed {
	key := n.Type + "|" + n.Class + "|" + n.ID
	if c, ok := e.styles[key]; ok {
		return c
	}
	c := style.Resolve(e.sheet.Match(n.Type, n.Class, n.ID))
	e.styles[key] = c
	return c
}

// Measure returns the drawn width of text in style c.
func (e *Engine) Measure(text string, c style.Computed) float32 {
	return rl.MeasureTextEx(e.Font(), text, c.FontSize, c.LetterSpacing).X
}

// Place resolves a node's position from its style against a screen of width x height. Nodes
// with zero size take the style's width and height; percentage offsets centre within the rest.
func (e *Engine) Place(n *Node, width, height int32) {
	c := e.Style(n)
	if n.Bounds.Width == 0 && c.Width > 0 {
		n.Bounds.Width = float32(c.Width)
	}
	if n.Bounds.Height == 0 && c.Height > 0 {
		n.Bounds.Height = float32(c.Height)
	}
	if c.LeftPct >= 0 {
		n.Bounds.X = float32((width - int32(n.Bounds.Width)) * c.LeftPct / 100)
	} else if c.Left != 0 {
		n.Bounds.X = float32(c.Left)
	}
	if c.TopPct >= 0 {
		n.Bounds.Y = float32((height - int32(n.Bounds.Height)) * c.TopPct / 100)
	} else if c.Top != 0 {
		n.Bounds.Y = float32(c.Top)
	}
}

// Draw draws nodes in order: background, border, then text.
func (e *Engine) Draw(nodes ...*Node) {
	for _, n := range nodes {
		e.drawNode(n, e.Style(n))
	}
}

func (e *Engine) drawNode(n *Node, c style.Computed) {
	b := n.Bounds
	if c.Background.A > 0 && b.Width > 0 && b.Height > 0 {
		bg := fade(c.Background, c.Opacity)
		if c.Radius > 0 {
			rl.DrawRectangleRounded(b, roundness(b, c.Radius), 12, bg)
		} else {
			rl.DrawRectangleRec(b, bg)
		}
	}
	if c.HasBorder() && b.Width > 0 && b.Height > 0 {
		border := fade(c.Border, c.Opacity)
		if c.Radius > 0 {
			rl.DrawRectangleRoundedLinesEx(b, roundness(b, c.Radius), 12, c.BorderWidth, border)
		} else {
			rl.DrawRectangleLinesEx(b, c.BorderWidth, border)
		}
	}
	if n.Text == "" {
		return
	}
	pad := float32(c.Padding)
	inner := b.Width - 2*pad
	lines := []string{n.Text}
	if n.Wrap {
		lines = style.Wrap(n.Text, inner, func(s string) float32 { return e.Measure(s, c) })
	}
	fg := fade(c.Color, c.Opacity)
	y := b.Y + pad
	if !n.Wrap && b.Height > 0 && c.TextAlign == style.AlignCenter {
		// Single centred labels (close button, placeholder glyph) centre vertically too.
		y = b.Y + (b.Height-c.FontSize)/2
	}
	for _, line := range lines {
		x := b.X + pad
		switch c.TextAlign {
		case style.AlignCenter:
			x = b.X + (b.Width-e.Measure(line, c))/2
		case style.AlignRight:
			x = b.X + b.Width - pad - e.Measure(line, c)
		}
		rl.DrawTextEx(e.Font(), line, rl.NewVector2(x, y), c.FontSize, c.LetterSpacing, fg)
		y += c.FontSize * c.LineHeight
	}
}

// roundness converts a pixel corner radius to raylib's 0..1 roundness.
func roundness(b rl.Rectangle, radius float32) float32 {
	short := min(b.Width, b.Height)
	if short <= 0 {
		return 0
	}
	return min(1, 2*radius/short)
}

func fade(c rl.Color, opacity float32) rl.Color {
	if opacity >= 1 {
		return c
	}
	return rl.Fade(c, float32(c.A)/255*opacity)
}
