package marker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	d := Builtin()
	require.Equal(t, 12, d.Len())

	orders := make(map[int]bool)
	for _, m := range d.All() {
		assert.GreaterOrEqual(t, m.Latitude, float32(-90), m.ID)
		assert.LessOrEqual(t, m.Latitude, float32(90), m.ID)
		assert.GreaterOrEqual(t, m.Longitude, float32(-180), m.ID)
		assert.LessOrEqual(t, m.Longitude, float32(180), m.ID)
		orders[m.Order] = true
	}
	for i := 1; i <= 12; i++ {
		assert.True(t, orders[i], "order %d missing", i)
	}

	k, ok := d.ByID("kraken")
	require.True(t, ok)
	assert.Equal(t, 4, k.Order)
	assert.Equal(t, "Denmark", k.Country)
	assert.Same(t, d.At(11), k)
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]Marker{{ID: "a", Order: 1}, {ID: "a", Order: 2}})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = New([]Marker{{ID: "a", Order: 1}, {ID: "b", Order: 1}})
	assert.ErrorIs(t, err, ErrDuplicateOrder)
}

func TestAllReturnsCopy(t *testing.T) {
	d := Builtin()
	all := d.All()
	all[0].Name = "changed"
	assert.Equal(t, "Bunyip", d.At(0).Name)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "markers.yaml")
	data := `markers:
  - id: kraken
    name: Kraken
    country: Denmark
    continent: Europe
    order: 1
    latitude: 55.7
    longitude: 12.6
    image: /monsters/kraken.png
    description: Sea monster.
  - id: yeti
    name: Himalayan Yeti
    country: Nepal
    continent: Asia
    order: 2
    latitude: 28.6
    longitude: 84
    image: /monsters/yeti.png
    description: Ice guardian.
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	d, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, d.Len())
	assert.Equal(t, "kraken", d.At(0).ID)
	assert.InDelta(t, 55.7, d.At(0).Latitude, 1e-4)
	assert.Equal(t, "Ice guardian.", d.At(1).Description)
}

func TestLoadEmptyPathUsesBuiltin(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, d.Len())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("markers: [oops"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
