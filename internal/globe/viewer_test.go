package globe_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monster-globe/internal/globe"
	"monster-globe/internal/marker"
	"monster-globe/internal/overlay"
)

const (
	testWidth  = 1280
	testHeight = 720
)

func newViewer(t *testing.T, sel globe.Selection) (*globe.Viewer, *fakeRuntime) {
	t.Helper()
	v := globe.NewViewer(marker.Builtin(), sel, testParams(), zerolog.Nop())
	rt := &fakeRuntime{}
	require.NoError(t, v.Initialize(rt, testWidth, testHeight))
	t.Cleanup(func() { _ = v.Close() })
	return v, rt
}

// screenOf returns the pixel position of a marker's hit volume.
func screenOf(t *testing.T, v *globe.Viewer, id string) (float32, float32) {
	t.Helper()
	v.Scene().UpdateWorld()
	for _, n := range v.Scene().HitVolumes {
		if n.Marker.ID != id {
			continue
		}
		p, ok := v.Camera().Project(n.WorldPosition(), testWidth, testHeight)
		require.True(t, ok)
		return p.X(), p.Y()
	}
	t.Fatalf("no hit volume for %q", id)
	return 0, 0
}

func TestInitializeWaitsForRuntime(t *testing.T) {
	v := globe.NewViewer(marker.Builtin(), nil, testParams(), zerolog.Nop())
	rt := &fakeRuntime{notReady: true}

	err := v.Initialize(rt, testWidth, testHeight)
	require.ErrorIs(t, err, globe.ErrRuntimeUnavailable)
	assert.False(t, v.Ready())
	assert.Empty(t, rt.meshes)

	require.ErrorIs(t, v.Initialize(nil, testWidth, testHeight), globe.ErrRuntimeUnavailable)

	rt.notReady = false
	require.NoError(t, v.Initialize(rt, testWidth, testHeight))
	assert.True(t, v.Ready())
	assert.Equal(t, [2]int{testWidth, testHeight}, rt.mounted)

	// Second call is a no-op.
	require.NoError(t, v.Initialize(rt, testWidth, testHeight))
	assert.Len(t, rt.meshes, 6)

	require.NoError(t, v.Close())
	require.ErrorIs(t, v.Initialize(rt, testWidth, testHeight), globe.ErrClosed)
}

func TestEventsBeforeInitialize(t *testing.T) {
	sel := &recorder{}
	v := globe.NewViewer(marker.Builtin(), sel, testParams(), zerolog.Nop())
	assert.NotPanics(t, func() {
		v.PointerDown(1, 1)
		v.PointerMove(50, 50)
		v.PointerUp(50, 50)
		v.Click(50, 50)
		v.Wheel(10)
		v.Resize(10, 10)
		v.Frame(time.Millisecond)
	})
	assert.Empty(t, sel.selected)
	assert.Zero(t, sel.clears)
	assert.Nil(t, v.Scene())
	assert.NoError(t, v.Close())
}

func TestClickKrakenOpensMission(t *testing.T) {
	ds := marker.Builtin()
	state := overlay.NewState(ds.Len())
	v := globe.NewViewer(ds, state, testParams(), zerolog.Nop())
	require.NoError(t, v.Initialize(&fakeRuntime{}, testWidth, testHeight))
	defer v.Close()

	x, y := screenOf(t, v, "kraken")
	v.PointerDown(x, y)
	v.PointerUp(x, y)
	v.Click(x, y)

	require.True(t, state.Visible())
	p, err := state.Panel()
	require.NoError(t, err)
	assert.Equal(t, "kraken", state.Selected().ID)
	assert.Equal(t, "04 / 12", p.Sequence)
	kraken, _ := ds.ByID("kraken")
	assert.Equal(t, kraken.Description, p.Description)
}

func TestClickFollowsRotation(t *testing.T) {
	sel := &recorder{}
	v, _ := newViewer(t, sel)

	for i := 0; i < 120; i++ {
		v.Frame(16 * time.Millisecond)
	}
	v.Scene().Globe.Rotation[1] += 0.4

	x, y := screenOf(t, v, "el-coco")
	v.Click(x, y)
	assert.Equal(t, []string{"el-coco"}, sel.selected)
}

func TestClickMissClears(t *testing.T) {
	sel := &recorder{}
	v, _ := newViewer(t, sel)

	// Top-left corner is empty sky.
	v.Click(2, 2)
	assert.Empty(t, sel.selected)
	assert.Equal(t, 1, sel.clears)
}

func TestDragIsNotClick(t *testing.T) {
	sel := &recorder{}
	v, _ := newViewer(t, sel)
	x, y := screenOf(t, v, "kraken")

	before := v.Scene().Globe.Rotation
	v.PointerDown(x, y)
	v.PointerMove(x+40, y+10)
	v.PointerUp(x+40, y+10)
	assert.NotEqual(t, before, v.Scene().Globe.Rotation, "globe follows the drag")

	v.Click(x+40, y+10)
	assert.Empty(t, sel.selected)
	assert.Zero(t, sel.clears)

	// The flag is consumed: the next plain click is hit-tested.
	x, y = screenOf(t, v, "kraken")
	v.PointerDown(x, y)
	v.PointerMove(x+2, y+1)
	v.PointerUp(x+2, y+1)
	v.Click(x, y)
	assert.Equal(t, []string{"kraken"}, sel.selected)
}

func TestInertiaAfterRelease(t *testing.T) {
	v, rt := newViewer(t, nil)

	v.PointerDown(400, 300)
	v.PointerMove(420, 310)
	v.PointerUp(420, 310)
	prev := v.Interaction().Velocity
	require.NotZero(t, prev.Y())

	for i := 0; i < 30; i++ {
		v.Frame(16 * time.Millisecond)
		cur := v.Interaction().Velocity
		assert.Less(t, cur.Len(), prev.Len())
		prev = cur
	}
	assert.Equal(t, 30, rt.renders)
}

func TestWheelZoomClamps(t *testing.T) {
	v, _ := newViewer(t, nil)
	assert.Equal(t, float32(300), v.Camera().Distance())

	v.Wheel(-500)
	assert.Equal(t, float32(250), v.Camera().Distance())
	for i := 0; i < 100; i++ {
		v.Wheel(-500)
	}
	assert.Equal(t, float32(150), v.Camera().Distance())
	for i := 0; i < 100; i++ {
		v.Wheel(500)
	}
	assert.Equal(t, float32(500), v.Camera().Distance())
}

func TestResize(t *testing.T) {
	v, rt := newViewer(t, nil)
	v.Resize(800, 800)
	assert.Equal(t, [2]int{800, 800}, rt.resized)
	assert.InDelta(t, 1, v.Camera().Aspect, 1e-6)

	v.Resize(0, 100)
	assert.Equal(t, [2]int{800, 800}, rt.resized)
}

func TestCloseReleasesEverything(t *testing.T) {
	v := globe.NewViewer(marker.Builtin(), nil, testParams(), zerolog.Nop())
	rt := &fakeRuntime{}
	require.NoError(t, v.Initialize(rt, testWidth, testHeight))

	require.NoError(t, v.Close())
	assert.Zero(t, rt.liveMeshes())
	assert.Equal(t, 1, rt.released)
	assert.False(t, v.Ready())

	require.NoError(t, v.Close())
	assert.Equal(t, 1, rt.released, "close is idempotent")
}

func TestCloseAfterPartialInitialize(t *testing.T) {
	v := globe.NewViewer(marker.Builtin(), nil, testParams(), zerolog.Nop())
	rt := &fakeRuntime{failAfter: 4}

	err := v.Initialize(rt, testWidth, testHeight)
	require.ErrorIs(t, err, errCreate)
	assert.False(t, v.Ready())
	assert.Zero(t, rt.liveMeshes())

	assert.NotPanics(t, func() { require.NoError(t, v.Close()) })
	assert.Equal(t, 1, rt.released)
}

func TestCloseAfterMountFailure(t *testing.T) {
	v := globe.NewViewer(marker.Builtin(), nil, testParams(), zerolog.Nop())
	rt := &fakeRuntime{mountErr: assert.AnError}

	require.ErrorIs(t, v.Initialize(rt, testWidth, testHeight), assert.AnError)
	assert.NoError(t, v.Close())
}

func TestCloseJoinsFailures(t *testing.T) {
	v := globe.NewViewer(marker.Builtin(), nil, testParams(), zerolog.Nop())
	rt := &fakeRuntime{releaseErr: assert.AnError}
	require.NoError(t, v.Initialize(rt, testWidth, testHeight))
	rt.meshes[0].panics = true

	var err error
	assert.NotPanics(t, func() { err = v.Close() })
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "panicked")
}
