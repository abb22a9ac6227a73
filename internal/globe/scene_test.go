package globe_test

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monster-globe/internal/geo"
	"monster-globe/internal/globe"
	"monster-globe/internal/marker"
)

func testParams() globe.Params {
	p := globe.DefaultParams()
	p.Stars.Count = 100
	p.Stars.Seed = 1
	return p
}

func TestBuildScene(t *testing.T) {
	rt := &fakeRuntime{}
	ds := marker.Builtin()
	s, err := globe.Build(rt, ds, testParams())
	require.NoError(t, err)

	require.Len(t, s.Dots, ds.Len())
	require.Len(t, s.HitVolumes, ds.Len())
	require.Len(t, s.Rings, ds.Len())
	// globe, atmosphere, dot, hit volume, ring, stars: marker nodes share one mesh per kind.
	assert.Len(t, rt.meshes, 6)

	for i := 0; i < ds.Len(); i++ {
		m := ds.At(i)
		assert.Same(t, m, s.Dots[i].Marker)
		assert.Same(t, m, s.HitVolumes[i].Marker)
		assert.Equal(t, "clickable-"+m.ID, s.HitVolumes[i].Name)
		assert.Same(t, s.Globe, s.HitVolumes[i].Parent())
		assert.False(t, s.HitVolumes[i].Visible, "hit volumes are never drawn")
		assert.True(t, s.Dots[i].Visible)
		assert.Greater(t, s.HitVolumes[i].BoundingRadius(), s.Dots[i].BoundingRadius())
	}
	assert.Len(t, s.Lights, 3)
	assert.Len(t, s.Stars.Mesh.Spec().Points, 100)
}

func TestBuildWithoutMarkers(t *testing.T) {
	rt := &fakeRuntime{}
	ds, err := marker.New(nil)
	require.NoError(t, err)

	s, err := globe.Build(rt, ds, testParams())
	require.NoError(t, err)
	assert.Empty(t, s.HitVolumes)
	assert.Len(t, rt.meshes, 3)
}

func TestBuildFailureReleasesMeshes(t *testing.T) {
	for n := 1; n <= 6; n++ {
		rt := &fakeRuntime{failAfter: n}
		_, err := globe.Build(rt, marker.Builtin(), testParams())
		require.ErrorIs(t, err, errCreate)
		assert.Zero(t, rt.liveMeshes(), "fail at mesh %d", n)
	}
}

func TestDotsAndHitVolumesCoincide(t *testing.T) {
	s, err := globe.Build(&fakeRuntime{}, marker.Builtin(), testParams())
	require.NoError(t, err)

	p := testParams()
	radius := geo.LiftedRadius(p.GlobeRadius, p.MarkerAltitude)
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		s.Globe.Rotation = mgl32.Vec3{
			(rng.Float32() - 0.5) * 8,
			(rng.Float32() - 0.5) * 8,
			0,
		}
		s.UpdateWorld()
		for i, dot := range s.Dots {
			hit := s.HitVolumes[i]
			d := dot.WorldPosition()
			h := hit.WorldPosition()
			assert.InDelta(t, 0, d.Sub(h).Len(), 1e-3)

			m := dot.Marker
			want := s.Globe.World().Mul4x1(geo.ToCartesian(m.Latitude, m.Longitude, radius).Vec4(1)).Vec3()
			assert.InDelta(t, 0, want.Sub(h).Len(), 1e-2)
			assert.InDelta(t, radius, h.Len(), 1e-2)
		}
	}
}

func TestPulseRings(t *testing.T) {
	s, err := globe.Build(&fakeRuntime{}, marker.Builtin(), testParams())
	require.NoError(t, err)
	p := testParams().Rings

	s.PulseRings(p.Repeat/4, p)
	for _, r := range s.Rings {
		assert.True(t, r.Visible)
		assert.InDelta(t, 1, r.Scale.X(), 1e-4)
		assert.InDelta(t, 2.0/3, r.Opacity, 1e-4)
	}

	s.PulseRings(p.Repeat*3/4, p)
	for _, r := range s.Rings {
		assert.False(t, r.Visible)
	}
}

func TestSceneRelease(t *testing.T) {
	rt := &fakeRuntime{}
	s, err := globe.Build(rt, marker.Builtin(), testParams())
	require.NoError(t, err)
	rt.meshes[2].panics = true
	rt.meshes[3].err = assert.AnError

	err = s.Release()
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, s.HitVolumes)
	for i, m := range rt.meshes {
		if i == 2 {
			continue
		}
		assert.Equal(t, 1, m.released, "mesh %d", i)
	}
	for _, n := range s.Globe.Children() {
		assert.Nil(t, n.Marker, "marker nodes are detached")
	}
}

func TestStarfield(t *testing.T) {
	p := globe.StarParams{Count: 500, Extent: 2000, Seed: 3}
	a := globe.Starfield(p)
	b := globe.Starfield(p)
	require.Len(t, a, 500)
	assert.Equal(t, a, b, "same seed, same sky")
	for _, pt := range a {
		for _, c := range pt {
			assert.LessOrEqual(t, c, float32(1000))
			assert.GreaterOrEqual(t, c, float32(-1000))
		}
	}
	assert.Nil(t, globe.Starfield(globe.StarParams{}))
}

func TestCameraProjectAndUnproject(t *testing.T) {
	c := globe.NewCamera(testParams().Camera, 1280, 720)
	assert.InDelta(t, 1280.0/720, c.Aspect, 1e-5)

	points := []mgl32.Vec3{{0, 0, 0}, {50, 20, 40}, {-80, -30, 10}, {12.5, 84.3, 56.1}}
	for _, p := range points {
		screen, ok := c.Project(p, 1280, 720)
		require.True(t, ok)
		ray := c.RayFromNDC(globe.ScreenToNDC(screen.X(), screen.Y(), 1280, 720))
		assert.InDelta(t, 1, ray.Direction.Len(), 1e-4)

		// Distance from p to the ray.
		toP := p.Sub(ray.Origin)
		along := toP.Dot(ray.Direction)
		assert.Greater(t, along, float32(0))
		assert.InDelta(t, 0, toP.Sub(ray.Direction.Mul(along)).Len(), 0.5)
	}

	_, ok := c.Project(mgl32.Vec3{0, 0, 400}, 1280, 720)
	assert.False(t, ok, "behind the camera")
}

func TestScreenToNDC(t *testing.T) {
	assert.Equal(t, mgl32.Vec2{-1, 1}, globe.ScreenToNDC(0, 0, 800, 600))
	assert.Equal(t, mgl32.Vec2{1, -1}, globe.ScreenToNDC(800, 600, 800, 600))
	assert.Equal(t, mgl32.Vec2{0, 0}, globe.ScreenToNDC(400, 300, 800, 600))
}

func TestRayIntersectSphere(t *testing.T) {
	r := globe.Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}
	d, ok := r.IntersectSphere(mgl32.Vec3{}, 2)
	require.True(t, ok)
	assert.InDelta(t, 8, d, 1e-5)

	_, ok = r.IntersectSphere(mgl32.Vec3{5, 0, 0}, 2)
	assert.False(t, ok)

	// Origin inside the sphere: the exit point counts.
	d, ok = globe.Ray{Direction: mgl32.Vec3{1, 0, 0}}.IntersectSphere(mgl32.Vec3{}, 3)
	require.True(t, ok)
	assert.InDelta(t, 3, d, 1e-5)

	_, ok = r.IntersectSphere(mgl32.Vec3{0, 0, 20}, 2)
	assert.False(t, ok, "behind the origin")
}
