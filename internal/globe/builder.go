package globe

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"monster-globe/internal/geo"
	"monster-globe/internal/marker"
)

// Scene is the render graph built once at startup.
// Dots, HitVolumes and Rings are index-aligned with the marker dataset and parented under Globe.
type Scene struct {
	Root       *Node
	Globe      *Node
	Atmosphere *Node
	Stars      *Node
	Dots       []*Node
	HitVolumes []*Node
	Rings      []*Node
	Lights     []Light

	meshes []Mesh
}

// UpdateWorld refreshes every world transform. Call before ray casts and rendering.
func (s *Scene) UpdateWorld() {
	s.Root.UpdateWorld()
}

// Release detaches the marker nodes and releases every mesh created for the scene.
// All meshes are attempted; errors are joined.
func (s *Scene) Release() error {
	if s.Globe != nil {
		for _, group := range [][]*Node{s.HitVolumes, s.Dots, s.Rings} {
			for _, n := range group {
				s.Globe.Remove(n)
			}
		}
	}
	var errs []error
	for _, m := range s.meshes {
		if err := safeRelease(m.Release); err != nil {
			errs = append(errs, err)
		}
	}
	s.meshes = nil
	s.HitVolumes, s.Dots, s.Rings = nil, nil, nil
	return errors.Join(errs...)
}

// Build constructs the scene on rt: the textured globe with its atmosphere, one dot, one invisible
// hit volume and one pulse ring per marker, the light rig and a static starfield.
// Marker nodes share one mesh per kind. On error every mesh created so far is released.
func Build(rt Runtime, markers *marker.Dataset, p Params) (_ *Scene, err error) {
	s := &Scene{
		Root:   NewNode("scene", nil),
		Lights: append([]Light(nil), p.Lights...),
	}
	defer func() {
		if err != nil {
			_ = s.Release()
		}
	}()

	create := func(name string, spec MeshSpec) (Mesh, error) {
		m, err := rt.CreateMesh(spec)
		if err != nil {
			return nil, fmt.Errorf("globe: create %s mesh: %w", name, err)
		}
		s.meshes = append(s.meshes, m)
		return m, nil
	}

	globeMesh, err := create("globe", MeshSpec{
		Kind:     KindSphere,
		Radius:   p.GlobeRadius,
		Segments: p.GlobeSegments,
		Material: Material{
			Color:   white,
			Opacity: 1,
			Visible: true,
			Texture: p.SurfaceTexture,
			Bump:    p.BumpTexture,
		},
	})
	if err != nil {
		return nil, err
	}
	s.Globe = NewNode("globe", globeMesh)
	s.Root.Add(s.Globe)

	atmosphereMesh, err := create("atmosphere", MeshSpec{
		Kind:     KindSphere,
		Radius:   geo.LiftedRadius(p.GlobeRadius, p.AtmosphereAltitude),
		Segments: p.GlobeSegments / 2,
		Material: Material{
			Color:    p.AtmosphereColor,
			Opacity:  0.25,
			Visible:  true,
			Unlit:    true,
			BackFace: true,
		},
	})
	if err != nil {
		return nil, err
	}
	s.Atmosphere = NewNode("atmosphere", atmosphereMesh)
	s.Globe.Add(s.Atmosphere)

	if err := s.addMarkers(create, markers, p); err != nil {
		return nil, err
	}

	starMesh, err := create("stars", MeshSpec{
		Kind:      KindPoints,
		Points:    Starfield(p.Stars),
		PointSize: p.Stars.Size,
		Material:  Material{Color: p.Stars.Color, Opacity: 1, Visible: true, Unlit: true},
	})
	if err != nil {
		return nil, err
	}
	s.Stars = NewNode("stars", starMesh)
	s.Root.Add(s.Stars)

	s.UpdateWorld()
	return s, nil
}

func (s *Scene) addMarkers(create func(string, MeshSpec) (Mesh, error), markers *marker.Dataset, p Params) error {
	if markers == nil || markers.Len() == 0 {
		return nil
	}
	radius := geo.LiftedRadius(p.GlobeRadius, p.MarkerAltitude)

	dotMesh, err := create("dot", MeshSpec{
		Kind:     KindSphere,
		Radius:   p.DotRadius,
		Segments: 8,
		Material: Material{Color: p.DotColor, Opacity: 1, Visible: true, Unlit: true},
	})
	if err != nil {
		return err
	}
	hitMesh, err := create("hit volume", MeshSpec{
		Kind:     KindSphere,
		Radius:   p.HitRadius,
		Segments: 16,
		Material: Material{Visible: false},
	})
	if err != nil {
		return err
	}
	// Ring geometry is one degree of arc wide; node scale carries the pulse radius in degrees.
	ringMesh, err := create("ring", MeshSpec{
		Kind:     KindRing,
		Radius:   geo.ArcLength(1, radius),
		Segments: 32,
		Material: Material{Color: p.RingColor, Opacity: 1, Visible: true, Unlit: true},
	})
	if err != nil {
		return err
	}

	for i := 0; i < markers.Len(); i++ {
		m := markers.At(i)
		pos := geo.ToCartesian(m.Latitude, m.Longitude, radius)

		dot := NewNode("dot-"+m.ID, dotMesh)
		dot.Position = pos
		dot.Marker = m

		hit := NewNode("clickable-"+m.ID, hitMesh)
		hit.Position = pos
		hit.Marker = m

		ring := NewNode("ring-"+m.ID, ringMesh)
		ring.Position = pos
		ring.Marker = m
		ring.Scale = mgl32.Vec3{0, 0, 0}
		ring.Visible = false

		s.Globe.Add(dot, hit, ring)
		s.Dots = append(s.Dots, dot)
		s.HitVolumes = append(s.HitVolumes, hit)
		s.Rings = append(s.Rings, ring)
	}
	return nil
}

// Starfield scatters p.Count points uniformly in a cube of side p.Extent centred on the origin.
func Starfield(p StarParams) []mgl32.Vec3 {
	if p.Count <= 0 {
		return nil
	}
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	points := make([]mgl32.Vec3, p.Count)
	for i := range points {
		points[i] = mgl32.Vec3{
			(rng.Float32() - 0.5) * p.Extent,
			(rng.Float32() - 0.5) * p.Extent,
			(rng.Float32() - 0.5) * p.Extent,
		}
	}
	return points
}

// PulseRings updates every ring's scale and opacity for the given time since start.
func (s *Scene) PulseRings(elapsed time.Duration, p RingParams) {
	radius, opacity := RingPulse(elapsed, p)
	for _, r := range s.Rings {
		r.Scale = mgl32.Vec3{radius, radius, radius}
		r.Opacity = opacity
		r.Visible = opacity > 0
	}
}

// safeRelease calls release and turns a panic into an error.
func safeRelease(release func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("globe: release panicked: %v", r)
		}
	}()
	return release()
}
