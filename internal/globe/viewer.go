package globe

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"monster-globe/internal/marker"
)

// Selection receives the hit-test outcome. overlay.State implements it.
type Selection interface {
	Select(m *marker.Marker)
	Clear()
}

// Viewer is the globe engine: it owns the scene, camera and interaction state and turns host
// events into transform updates, selections and frames. All methods must be called from the
// goroutine that owns the runtime; nothing here locks.
type Viewer struct {
	params  Params
	markers *marker.Dataset
	sel     Selection
	log     zerolog.Logger

	rt     Runtime
	scene  *Scene
	camera *Camera
	hits   *HitTester
	input  InteractionState

	width, height int
	elapsed       time.Duration
	ready         bool
	closed        bool
}

// NewViewer returns an uninitialized viewer. Call Initialize once the runtime is ready.
func NewViewer(markers *marker.Dataset, sel Selection, p Params, log zerolog.Logger) *Viewer {
	return &Viewer{
		params:  p,
		markers: markers,
		sel:     sel,
		log:     log.With().Str("component", "globe").Logger(),
	}
}

// Initialize mounts the surface on rt and builds the scene. It returns ErrRuntimeUnavailable
// (wrapped) while rt is not ready; the host calls it again on a later frame. A second call after
// success is a no-op.
func (v *Viewer) Initialize(rt Runtime, width, height int) error {
	if v.closed {
		return ErrClosed
	}
	if v.ready {
		return nil
	}
	if rt == nil || !rt.Ready() {
		return ErrRuntimeUnavailable
	}
	v.rt = rt
	if err := rt.Mount(width, height); err != nil {
		return fmt.Errorf("globe: mount: %w", err)
	}
	scene, err := Build(rt, v.markers, v.params)
	if err != nil {
		return err
	}
	v.scene = scene
	v.camera = NewCamera(v.params.Camera, width, height)
	v.hits = NewHitTester(rt, scene, v.camera)
	v.width, v.height = width, height
	v.ready = true
	v.log.Info().
		Int("markers", len(scene.HitVolumes)).
		Int("width", width).
		Int("height", height).
		Msg("globe initialized")
	return nil
}

// Ready reports whether Initialize succeeded and Close has not been called.
func (v *Viewer) Ready() bool {
	return v.ready && !v.closed
}

// PointerDown starts a drag at (x, y).
func (v *Viewer) PointerDown(x, y float32) {
	v.pointer(PointerEvent{Kind: PointerDown, Position: mgl32.Vec2{x, y}})
}

// PointerMove follows the pointer; while dragging the globe rotates with it.
func (v *Viewer) PointerMove(x, y float32) {
	v.pointer(PointerEvent{Kind: PointerMove, Position: mgl32.Vec2{x, y}})
}

// PointerUp ends a drag. The last velocity keeps spinning the globe down.
func (v *Viewer) PointerUp(x, y float32) {
	v.pointer(PointerEvent{Kind: PointerUp, Position: mgl32.Vec2{x, y}})
}

func (v *Viewer) pointer(e PointerEvent) {
	if !v.Ready() {
		return
	}
	var rot mgl32.Vec2
	v.input, rot = v.input.Apply(e, v.params.Controls)
	v.scene.Globe.Rotation[0] += rot[0]
	v.scene.Globe.Rotation[1] += rot[1]
}

// Click hit-tests (x, y) unless the click ends a drag. A hit selects its marker; a miss clears
// the selection.
func (v *Viewer) Click(x, y float32) {
	if !v.Ready() {
		return
	}
	var ok bool
	v.input, ok = v.input.Click()
	if !ok {
		return
	}
	m := v.hits.Pick(x, y, v.width, v.height)
	if m == nil {
		v.log.Debug().Float32("x", x).Float32("y", y).Msg("click missed")
		if v.sel != nil {
			v.sel.Clear()
		}
		return
	}
	v.log.Info().
		Str("marker", m.ID).
		Float32("lat", m.Latitude).
		Float32("lng", m.Longitude).
		Msg("marker clicked")
	if v.sel != nil {
		v.sel.Select(m)
	}
}

// Wheel zooms by a wheel delta in pixels (positive moves the camera away).
func (v *Viewer) Wheel(deltaY float32) {
	if !v.Ready() {
		return
	}
	v.camera.SetDistance(Zoom(v.camera.Distance(), deltaY, v.params.Controls))
}

// Resize updates the camera aspect ratio and the runtime's output size.
func (v *Viewer) Resize(width, height int) {
	if !v.Ready() || width <= 0 || height <= 0 {
		return
	}
	v.width, v.height = width, height
	v.camera.SetAspect(width, height)
	v.rt.Resize(width, height)
}

// Frame advances one display refresh: idle spin and inertia, ring pulses, then a redraw.
// dt is the time since the previous frame and only drives the ring animation; spin and
// damping are per frame.
func (v *Viewer) Frame(dt time.Duration) {
	if !v.Ready() {
		return
	}
	v.elapsed += dt
	f := Tick(FrameState{
		Rotation: v.scene.Globe.Rotation,
		Velocity: v.input.Velocity,
		Dragging: v.input.Dragging(),
	}, v.params.Motion)
	v.scene.Globe.Rotation = f.Rotation
	v.input.Velocity = f.Velocity

	v.scene.PulseRings(v.elapsed, v.params.Rings)
	v.scene.UpdateWorld()
	v.rt.Render(v.scene, v.camera)
}

// Close releases the scene meshes (hit volumes included) and the runtime. It is safe to call
// after a failed Initialize and more than once, and it never panics; failures are returned joined.
func (v *Viewer) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	v.ready = false
	var errs []error
	if v.scene != nil {
		if err := v.scene.Release(); err != nil {
			errs = append(errs, err)
		}
		v.scene = nil
	}
	if v.rt != nil {
		if err := safeRelease(v.rt.Release); err != nil {
			errs = append(errs, err)
		}
		v.rt = nil
	}
	err := errors.Join(errs...)
	if err != nil {
		v.log.Warn().Err(err).Msg("globe teardown")
	} else {
		v.log.Debug().Msg("globe released")
	}
	return err
}

// Scene returns the scene graph, or nil before Initialize.
func (v *Viewer) Scene() *Scene {
	return v.scene
}

// Camera returns the camera, or nil before Initialize.
func (v *Viewer) Camera() *Camera {
	return v.camera
}

// Interaction returns the current interaction state.
func (v *Viewer) Interaction() InteractionState {
	return v.input
}
