// Package overlay holds the selection state and the mission panel's presentation and layout.
// It draws nothing; internal/ui renders what Panel and Layout describe.
package overlay

import (
	"errors"
	"fmt"
	"image"

	"github.com/jinzhu/copier"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"monster-globe/internal/marker"
)

// ErrNoSelection is returned for a panel when no marker is selected.
var ErrNoSelection = errors.New("overlay: no marker selected")

// ImagePlaceholder is shown in place of a marker image that cannot be loaded.
const ImagePlaceholder = "🗺"

var upper = cases.Upper(language.English)

// Panel is the mission panel's content for one marker.
type Panel struct {
	Heading     string // "MISSION"
	Sequence    string // "04 / 12"
	Image       string
	Name        string
	Country     string
	Continent   string
	Place       string // "Denmark • Europe"
	Description string
}

// State is the current selection: one marker or none. The panel is visible exactly while a
// marker is selected.
type State struct {
	total    int
	selected *marker.Marker
	onChange func(*marker.Marker)
}

// NewState returns an empty selection for a dataset of total markers.
func NewState(total int) *State {
	return &State{total: total}
}

// OnChange registers fn to be called with the new selection (nil when cleared).
func (s *State) OnChange(fn func(*marker.Marker)) {
	s.onChange = fn
}

// Select shows the panel for m, replacing any previous selection.
func (s *State) Select(m *marker.Marker) {
	if m == nil {
		s.Clear()
		return
	}
	if s.selected == m {
		return
	}
	s.selected = m
	s.changed()
}

// Clear hides the panel.
func (s *State) Clear() {
	if s.selected == nil {
		return
	}
	s.selected = nil
	s.changed()
}

func (s *State) changed() {
	if s.onChange != nil {
		s.onChange(s.selected)
	}
}

// Selected returns the selected marker, or nil.
func (s *State) Selected() *marker.Marker {
	return s.selected
}

// Visible reports whether the panel is shown.
func (s *State) Visible() bool {
	return s.selected != nil
}

// Total is the dataset size the sequence label counts against.
func (s *State) Total() int {
	return s.total
}

// Panel returns the content for the selected marker, or ErrNoSelection.
func (s *State) Panel() (Panel, error) {
	return NewPanel(s.selected, s.total)
}

// NewPanel presents m as the given entry of a hunt of total missions. A nil m yields
// ErrNoSelection.
func NewPanel(m *marker.Marker, total int) (Panel, error) {
	if m == nil {
		return Panel{}, ErrNoSelection
	}
	var p Panel
	// Same-named fields only.
	if err := copier.Copy(&p, m); err != nil {
		return Panel{}, fmt.Errorf("overlay: panel for %q: %w", m.ID, err)
	}
	p.Heading = upper.String("Mission")
	p.Sequence = SequenceLabel(m.Order, total)
	p.Place = Place(m.Country, m.Continent)
	return p, nil
}

// SequenceLabel formats a 1-based order as "04 / 12". The order is zero-padded to two digits;
// the total is not.
func SequenceLabel(order, total int) string {
	return fmt.Sprintf("%02d / %d", order, total)
}

// Place joins country and continent with a bullet, dropping an empty side.
func Place(country, continent string) string {
	switch {
	case country == "":
		return continent
	case continent == "":
		return country
	}
	return country + " • " + continent
}

// Layout is the panel geometry for one surface size, in pixels.
type Layout struct {
	Scrim       image.Rectangle
	Card        image.Rectangle
	Close       image.Rectangle
	Image       image.Rectangle
	Text        image.Rectangle
	Padding     int
	CloseMargin int
}

const (
	maxCardWidth  = 440
	maxCardHeight = 640
	cardMargin    = 24
	cardPadding   = 24
	closeSize     = 32
	imageRatio    = 0.5 // image height / card inner width
)

// NewLayout centres the card on a width x height surface. Small surfaces shrink the card down to
// the margins; the image keeps its aspect ratio and the text takes the rest.
func NewLayout(width, height int) Layout {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	l := Layout{
		Scrim:       image.Rect(0, 0, width, height),
		Padding:     cardPadding,
		CloseMargin: cardPadding / 2,
	}
	cw := min(maxCardWidth, width-2*cardMargin)
	ch := min(maxCardHeight, height-2*cardMargin)
	if cw <= 2*cardPadding || ch <= 2*cardPadding {
		// Too small for a card: it takes the whole surface.
		cw, ch = width, height
	}
	x0 := (width - cw) / 2
	y0 := (height - ch) / 2
	l.Card = image.Rect(x0, y0, x0+cw, y0+ch)

	l.Close = image.Rect(
		l.Card.Max.X-l.CloseMargin-closeSize, l.Card.Min.Y+l.CloseMargin,
		l.Card.Max.X-l.CloseMargin, l.Card.Min.Y+l.CloseMargin+closeSize,
	)

	inner := l.Card.Inset(cardPadding)
	if inner.Empty() {
		inner = l.Card
	}
	// Heading and sequence line sit above the image.
	top := inner.Min.Y + closeSize
	imgH := int(float32(inner.Dx()) * imageRatio)
	if top+imgH > inner.Max.Y {
		imgH = max(0, inner.Max.Y-top)
	}
	l.Image = image.Rect(inner.Min.X, top, inner.Max.X, top+imgH)
	l.Text = image.Rect(inner.Min.X, l.Image.Max.Y+cardPadding/2, inner.Max.X, inner.Max.Y)
	if l.Text.Min.Y > l.Text.Max.Y {
		l.Text.Min.Y = l.Text.Max.Y
	}
	return l
}

// Action is what a click on the overlay did.
type Action int

const (
	// Pass means the overlay is hidden and the click belongs to the globe.
	Pass Action = iota
	// Consumed means the click landed on the card and did nothing.
	Consumed
	// Dismissed means the click closed the panel.
	Dismissed
)

func (a Action) String() string {
	switch a {
	case Consumed:
		return "consumed"
	case Dismissed:
		return "dismissed"
	}
	return "pass"
}

// HandleClick routes a click at (x, y) while the panel may be visible. The close button and the
// scrim outside the card dismiss; clicks inside the card are consumed. Nothing reaches the globe
// while the panel is visible.
func (s *State) HandleClick(x, y int, l Layout) Action {
	if !s.Visible() {
		return Pass
	}
	pt := image.Pt(x, y)
	if pt.In(l.Close) || !pt.In(l.Card) {
		s.Clear()
		return Dismissed
	}
	return Consumed
}
