package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultTitle    = "Monster Hunt"
	DefaultSubtitle = "A World Tour of Legendary Beasts"
)

var titleCase = cases.Upper(language.English)

// Header is the title block at the top of the screen.
type Header struct {
	title    *Node
	subtitle *Node
}

// NewHeader returns a header; the title is shown in capitals.
func NewHeader(title, subtitle string) *Header {
	return &Header{
		title:    NewNode("label", "title", "", titleCase.String(title)),
		subtitle: NewNode("label", "subtitle", "", subtitle),
	}
}

// Draw lays the header out across a width x height screen and draws it.
func (h *Header) Draw(e *Engine, width, height int32) {
	for _, n := range []*Node{h.title, h.subtitle} {
		c := e.Style(n)
		n.Bounds = rl.Rectangle{Width: float32(width), Height: c.FontSize * c.LineHeight}
		e.Place(n, width, height)
	}
	e.Draw(h.title, h.subtitle)
}

// DrawBackdrop fills the screen with the .backdrop colour and a radial .glow centred on the
// globe. Draw it before the 3D scene.
func DrawBackdrop(e *Engine, width, height int32) {
	bg := e.Style(&Node{Type: "panel", Class: "backdrop"})
	rl.ClearBackground(bg.Background)
	glow := e.Style(&Node{Type: "panel", Class: "glow"})
	if glow.Background.A == 0 {
		return
	}
	radius := float32(min(width, height)) * 0.45
	outer := glow.Background
	outer.A = 0
	rl.DrawCircleGradient(width/2, height/2, radius, glow.Background, outer)
}
