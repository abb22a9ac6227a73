package ui

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"monster-globe/internal/imagery"
	"monster-globe/internal/overlay"
)

// MissionPanel draws the selected marker's mission card over the globe. It owns the card's
// nodes and one texture per marker image, uploaded on first display.
type MissionPanel struct {
	state  *overlay.State
	images *imagery.Cache
	log    zerolog.Logger
	failed map[string]bool

	textures    map[string]rl.Texture2D
	placeholder map[string]bool

	scrim       *Node
	card        *Node
	heading     *Node
	sequence    *Node
	image       *Node
	glyph       *Node
	name        *Node
	place       *Node
	description *Node
	close       *Node
}

// NewMissionPanel creates the panel for state, loading images through images.
func NewMissionPanel(state *overlay.State, images *imagery.Cache, log zerolog.Logger) *MissionPanel {
	return &MissionPanel{
		state:       state,
		images:      images,
		log:         log.With().Str("component", "mission").Logger(),
		failed:      make(map[string]bool),
		textures:    make(map[string]rl.Texture2D),
		placeholder: make(map[string]bool),
		scrim:       NewNode("panel", "scrim", "", ""),
		card:        NewNode("panel", "card", "", ""),
		heading:     NewNode("label", "card-heading", "", ""),
		sequence:    NewNode("label", "card-sequence", "", ""),
		image:       NewNode("panel", "card-image", "", ""),
		glyph:       NewNode("label", "placeholder", "", overlay.ImagePlaceholder),
		name:        NewNode("label", "card-name", "", ""),
		place:       NewNode("label", "card-place", "", ""),
		description: NewNode("label", "card-description", "", ""),
		close:       NewNode("button", "close", "close", "×"),
	}
}

// Draw renders the card for the current selection in layout l. Nothing is drawn while the
// panel is hidden.
func (p *MissionPanel) Draw(e *Engine, l overlay.Layout) {
	panel, err := p.state.Panel()
	if errors.Is(err, overlay.ErrNoSelection) {
		return
	}
	if err != nil {
		if id := p.state.Selected().ID; !p.failed[id] {
			p.failed[id] = true
			p.log.Error().Err(err).Str("marker", id).Msg("mission panel unavailable")
		}
		return
	}
	p.scrim.SetRect(l.Scrim)
	p.card.SetRect(l.Card)
	p.image.SetRect(l.Image)
	p.glyph.SetRect(l.Image)
	p.close.SetRect(l.Close)

	top := float32(l.Card.Min.Y + l.CloseMargin)
	header := rectangle(l.Image)
	header.Y = top
	header.Height = float32(l.Image.Min.Y) - top
	header.Width -= float32(l.Close.Dx() + l.CloseMargin)
	p.heading.Bounds = header
	p.heading.Text = panel.Heading
	p.sequence.Bounds = header
	p.sequence.Text = panel.Sequence

	text := rectangle(l.Text)
	p.name.Text = panel.Name
	p.place.Text = panel.Place
	p.description.Text = panel.Description
	y := text.Y
	for _, n := range []*Node{p.name, p.place} {
		c := e.Style(n)
		h := c.FontSize*c.LineHeight + float32(2*c.Padding)
		n.Bounds = rl.Rectangle{X: text.X, Y: y, Width: text.Width, Height: h}
		y += h
	}
	p.description.Wrap = true
	p.description.Bounds = rl.Rectangle{X: text.X, Y: y + 8, Width: text.Width, Height: max(0, text.Y+text.Height-y-8)}

	e.Draw(p.scrim, p.card, p.heading, p.sequence, p.image)
	if tex, ok := p.texture(panel.Image); ok {
		src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
		rl.DrawTexturePro(tex, src, p.image.Bounds, rl.Vector2{}, 0, rl.White)
	}
	if p.placeholder[panel.Image] {
		e.Draw(p.glyph)
	}
	e.Draw(p.name, p.place, p.description, p.close)
}

func (p *MissionPanel) texture(ref string) (rl.Texture2D, bool) {
	if tex, ok := p.textures[ref]; ok {
		return tex, tex.ID != 0
	}
	img := p.images.Get(ref)
	p.placeholder[ref] = img.Placeholder
	var tex rl.Texture2D
	if img.RGBA != nil {
		ri := rl.NewImageFromImage(img.RGBA)
		tex = rl.LoadTextureFromImage(ri)
		rl.UnloadImage(ri)
		if tex.ID != 0 {
			rl.SetTextureFilter(tex, rl.FilterBilinear)
		}
	}
	p.textures[ref] = tex
	return tex, tex.ID != 0
}

// Release unloads every uploaded image texture.
func (p *MissionPanel) Release() {
	for ref, tex := range p.textures {
		if tex.ID != 0 {
			rl.UnloadTexture(tex)
		}
		delete(p.textures, ref)
	}
}
