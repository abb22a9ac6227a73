package marker

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrDuplicateID is returned when two markers share an id (one marker = one globe location).
	ErrDuplicateID = errors.New("marker: duplicate id")
	// ErrDuplicateOrder is returned when two markers share a sequence order.
	ErrDuplicateOrder = errors.New("marker: duplicate order")
)

// Marker is one geolocated mission. Records are read-only once loaded.
// Latitude/Longitude are degrees. Order is the 1-based position in the hunt (shown as "04 / 12").
// Image is a reference relative to the assets directory, e.g. "/monsters/kraken.png".
type Marker struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Country     string  `yaml:"country"`
	Continent   string  `yaml:"continent"`
	Order       int     `yaml:"order"`
	Latitude    float32 `yaml:"latitude"`
	Longitude   float32 `yaml:"longitude"`
	Image       string  `yaml:"image"`
	Description string  `yaml:"description"`
}

// Dataset is the ordered, immutable marker collection.
type Dataset struct {
	markers []Marker
	byID    map[string]int
}

// New builds a dataset from markers in the given order. Ids and orders must be unique.
// Coordinates are not range-checked; out-of-range input is the supplier's contract violation.
func New(markers []Marker) (*Dataset, error) {
	d := &Dataset{
		markers: make([]Marker, len(markers)),
		byID:    make(map[string]int, len(markers)),
	}
	copy(d.markers, markers)
	orders := make(map[int]string, len(markers))
	for i, m := range d.markers {
		if _, ok := d.byID[m.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, m.ID)
		}
		if other, ok := orders[m.Order]; ok {
			return nil, fmt.Errorf("%w: %d (%q, %q)", ErrDuplicateOrder, m.Order, other, m.ID)
		}
		d.byID[m.ID] = i
		orders[m.Order] = m.ID
	}
	return d, nil
}

// Len returns the number of markers.
func (d *Dataset) Len() int {
	return len(d.markers)
}

// At returns a pointer to the i-th marker. The pointer is stable for the dataset's lifetime
// and is what scene nodes and the selection hold on to; callers must not modify it.
func (d *Dataset) At(i int) *Marker {
	return &d.markers[i]
}

// ByID looks up a marker by id.
func (d *Dataset) ByID(id string) (*Marker, bool) {
	i, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return &d.markers[i], true
}

// All returns a copy of the markers in dataset order.
func (d *Dataset) All() []Marker {
	out := make([]Marker, len(d.markers))
	copy(out, d.markers)
	return out
}

// file is the on-disk YAML layout: a top-level "markers" list.
type file struct {
	Markers []Marker `yaml:"markers"`
}

// Load reads a YAML marker file. An empty path returns the built-in set.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("marker: read %s: %w", path, err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("marker: parse %s: %w", path, err)
	}
	return New(f.Markers)
}
