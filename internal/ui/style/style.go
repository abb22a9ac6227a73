// Package style parses the overlay stylesheet and resolves it into drawable values.
package style

import (
	_ "embed"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

//go:embed overlay.css
var defaultCSS string

// Default returns the built-in overlay stylesheet.
func Default() *Stylesheet {
	sheet, err := Parse(defaultCSS)
	if err != nil {
		panic(fmt.Sprintf("style: built-in stylesheet: %v", err))
	}
	return sheet
}

// Rule is one CSS rule: its selectors and raw property values.
type Rule struct {
	Selectors []string          // e.g. ".card", "#close", "label"
	Props     map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// Merge returns a stylesheet with other's rules after s's, so other wins.
func (s *Stylesheet) Merge(other *Stylesheet) *Stylesheet {
	out := &Stylesheet{}
	if s != nil {
		out.Rules = append(out.Rules, s.Rules...)
	}
	if other != nil {
		out.Rules = append(out.Rules, other.Rules...)
	}
	return out
}

// Match merges the properties of every rule matching a node of the given type, class and id.
// Class may hold several space-separated classes.
func (s *Stylesheet) Match(typ, class, id string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	classes := strings.Fields(class)
	for _, rule := range s.Rules {
		if !rule.matches(typ, classes, id) {
			continue
		}
		for k, v := range rule.Props {
			merged[k] = v
		}
	}
	return merged
}

func (r Rule) matches(typ string, classes []string, id string) bool {
	for _, sel := range r.Selectors {
		switch {
		case strings.HasPrefix(sel, "."):
			for _, c := range classes {
				if c == sel[1:] {
					return true
				}
			}
		case strings.HasPrefix(sel, "#"):
			if id != "" && id == sel[1:] {
				return true
			}
		default:
			if typ != "" && typ == sel {
				return true
			}
		}
	}
	return false
}

// Align is horizontal text alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Computed holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type Computed struct {
	Background    color.RGBA
	Color         color.RGBA
	Border        color.RGBA
	BorderWidth   float32
	Radius        float32 // corner radius in pixels
	FontSize      float32
	LetterSpacing float32
	LineHeight    float32 // multiple of FontSize
	TextAlign     Align
	Width         int32
	Height        int32
	Left          int32
	Top           int32
	LeftPct       int32
	TopPct        int32
	Padding       int32
	Opacity       float32
}

// HasBorder reports whether a border should be drawn.
func (c Computed) HasBorder() bool {
	return c.BorderWidth > 0 && c.Border.A > 0
}

// DefaultComputed returns a minimal style: transparent background, white 20px text, no border.
func DefaultComputed() Computed {
	return Computed{
		Color:      color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		FontSize:   20,
		LineHeight: 1.3,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		Opacity:    1,
	}
}

// Resolve builds a Computed from a merged property map (e.g. from Match). Unparseable values
// keep the default.
func Resolve(props map[string]string) Computed {
	out := DefaultComputed()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border":
			for _, f := range strings.Fields(v) {
				if n, ok := ParsePx(f); ok {
					out.BorderWidth = float32(n)
				} else if c, ok := ParseColor(f); ok {
					out.Border = c
					if out.BorderWidth == 0 {
						out.BorderWidth = 1
					}
				}
			}
		case "border-color":
			if c, ok := ParseColor(v); ok {
				out.Border = c
			}
		case "border-width":
			if n, ok := ParsePx(v); ok {
				out.BorderWidth = float32(n)
			}
		case "border-radius":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Radius = float32(n)
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = float32(n)
			}
		case "letter-spacing":
			if n, ok := ParsePx(v); ok {
				out.LetterSpacing = float32(n)
			}
		case "line-height":
			if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
				out.LineHeight = float32(f)
			}
		case "text-align":
			switch v {
			case "center":
				out.TextAlign = AlignCenter
			case "right":
				out.TextAlign = AlignRight
			default:
				out.TextAlign = AlignLeft
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "opacity":
			if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 && f <= 1 {
				out.Opacity = float32(f)
			}
		}
	}
	return out
}

// ParseColor parses #RGB, #RRGGBB, #RRGGBBAA, rgb(r,g,b) and rgba(r,g,b,a) with a in [0,1].
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGB(s[len("rgba("):len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGB(s[len("rgb("):len(s)-1], false)
	case s == "transparent":
		return color.RGBA{}, true
	case s == "white":
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, true
	case s == "black":
		return color.RGBA{A: 0xff}, true
	}
	return color.RGBA{}, false
}

func parseHex(hex string) (color.RGBA, bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, true
}

func parseRGB(args string, alpha bool) (color.RGBA, bool) {
	parts := strings.Split(args, ",")
	if (alpha && len(parts) != 4) || (!alpha && len(parts) != 3) {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return color.RGBA{}, false
		}
		ch[i] = uint8(n)
	}
	a := uint8(0xff)
	if alpha {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || f < 0 || f > 1 {
			return color.RGBA{}, false
		}
		a = uint8(f*255 + 0.5)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: a}, true
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	n, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}
