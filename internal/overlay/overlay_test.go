package overlay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monster-globe/internal/marker"
)

func TestSequenceLabel(t *testing.T) {
	tests := []struct {
		order, total int
		want         string
	}{
		{1, 12, "01 / 12"},
		{4, 12, "04 / 12"},
		{12, 12, "12 / 12"},
		{7, 9, "07 / 9"},
		{123, 200, "123 / 200"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, SequenceLabel(tt.order, tt.total))
		})
	}
}

func TestPlace(t *testing.T) {
	assert.Equal(t, "Denmark • Europe", Place("Denmark", "Europe"))
	assert.Equal(t, "Europe", Place("", "Europe"))
	assert.Equal(t, "Denmark", Place("Denmark", ""))
}

func TestPanelForKraken(t *testing.T) {
	ds := marker.Builtin()
	kraken, ok := ds.ByID("kraken")
	require.True(t, ok)

	s := NewState(ds.Len())
	_, err := s.Panel()
	assert.ErrorIs(t, err, ErrNoSelection)

	s.Select(kraken)
	p, err := s.Panel()
	require.NoError(t, err)
	assert.Equal(t, "MISSION", p.Heading)
	assert.Equal(t, "04 / 12", p.Sequence)
	assert.Equal(t, "Kraken", p.Name)
	assert.Equal(t, "Denmark • Europe", p.Place)
	assert.Equal(t, kraken.Description, p.Description)
	assert.Equal(t, "/monsters/kraken.png", p.Image)
}

func TestNewPanelWithoutMarker(t *testing.T) {
	p, err := NewPanel(nil, 12)
	require.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, Panel{}, p)
}

func TestSelectionChanges(t *testing.T) {
	ds := marker.Builtin()
	var seen []string
	s := NewState(ds.Len())
	s.OnChange(func(m *marker.Marker) {
		if m == nil {
			seen = append(seen, "")
			return
		}
		seen = append(seen, m.ID)
	})

	s.Select(ds.At(0))
	s.Select(ds.At(0))
	s.Select(ds.At(1))
	assert.True(t, s.Visible())
	assert.Same(t, ds.At(1), s.Selected())

	s.Clear()
	s.Clear()
	assert.False(t, s.Visible())
	assert.Nil(t, s.Selected())

	s.Select(ds.At(2))
	s.Select(nil)
	assert.False(t, s.Visible())

	assert.Equal(t, []string{ds.At(0).ID, ds.At(1).ID, "", ds.At(2).ID, ""}, seen)
}

func TestLayout(t *testing.T) {
	l := NewLayout(1280, 720)
	assert.Equal(t, image.Rect(0, 0, 1280, 720), l.Scrim)
	assert.Equal(t, maxCardWidth, l.Card.Dx())
	assert.Equal(t, min(maxCardHeight, 720-2*cardMargin), l.Card.Dy())
	assert.True(t, l.Close.In(l.Card))
	assert.True(t, l.Image.In(l.Card))
	assert.True(t, l.Text.In(l.Card))
	assert.LessOrEqual(t, l.Image.Max.Y, l.Text.Min.Y)

	// Centred.
	assert.Equal(t, 1280-l.Card.Max.X, l.Card.Min.X)

	short := NewLayout(1280, 500)
	assert.Equal(t, maxCardWidth, short.Card.Dx())
	assert.Equal(t, 500-2*cardMargin, short.Card.Dy())
	assert.Equal(t, cardMargin, short.Card.Min.Y)
	assert.True(t, short.Text.In(short.Card))

	small := NewLayout(40, 40)
	assert.Equal(t, small.Scrim, small.Card)
}

func TestHandleClick(t *testing.T) {
	ds := marker.Builtin()
	l := NewLayout(1280, 720)
	s := NewState(ds.Len())

	assert.Equal(t, Pass, s.HandleClick(10, 10, l))

	s.Select(ds.At(0))
	mid := l.Text.Min.Add(image.Pt(5, 5))
	assert.Equal(t, Consumed, s.HandleClick(mid.X, mid.Y, l))
	assert.True(t, s.Visible())

	closeBtn := l.Close.Min.Add(image.Pt(1, 1))
	assert.Equal(t, Dismissed, s.HandleClick(closeBtn.X, closeBtn.Y, l))
	assert.False(t, s.Visible())

	s.Select(ds.At(0))
	assert.Equal(t, Dismissed, s.HandleClick(5, 5, l))
	assert.False(t, s.Visible())
}
