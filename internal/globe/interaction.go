package globe

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// Phase is the pointer state of the interaction controller.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// PointerKind is the type of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerEvent is one pointer sample in pixels, origin top-left.
type PointerEvent struct {
	Kind     PointerKind
	Position mgl32.Vec2
}

// InteractionState is everything the controller remembers between events.
// Velocity.X() is the pitch rate (from vertical motion) and Velocity.Y() the yaw rate,
// both in radians per event/frame.
type InteractionState struct {
	Phase    Phase
	DidDrag  bool
	Start    mgl32.Vec2
	Last     mgl32.Vec2
	Velocity mgl32.Vec2
}

// Dragging reports whether a pointer is held down.
func (s InteractionState) Dragging() bool {
	return s.Phase == Dragging
}

// Apply transitions the state for one pointer event. The returned rotation (pitch, yaw) is to be
// added to the globe right away so it follows the pointer; the same sample is kept as Velocity for
// inertia after release.
func (s InteractionState) Apply(e PointerEvent, c Controls) (InteractionState, mgl32.Vec2) {
	switch e.Kind {
	case PointerDown:
		s.Phase = Dragging
		s.DidDrag = false
		s.Start = e.Position
		s.Last = e.Position
		return s, mgl32.Vec2{}
	case PointerMove:
		if s.Phase != Dragging {
			return s, mgl32.Vec2{}
		}
		delta := e.Position.Sub(s.Last)
		s.Velocity = mgl32.Vec2{delta[1] * c.DragScale, delta[0] * c.DragScale}
		s.Last = e.Position
		moved := e.Position.Sub(s.Start)
		if math32.Abs(moved[0]) > c.DragThreshold || math32.Abs(moved[1]) > c.DragThreshold {
			s.DidDrag = true
		}
		return s, s.Velocity
	case PointerUp:
		s.Phase = Idle
		return s, mgl32.Vec2{}
	}
	return s, mgl32.Vec2{}
}

// Click consumes a click. It reports whether the click should be hit-tested: a release that
// ended a drag is never a click, and the drag flag is cleared so the next click counts.
func (s InteractionState) Click() (InteractionState, bool) {
	if s.DidDrag {
		s.DidDrag = false
		return s, false
	}
	s.Phase = Idle
	return s, true
}

// Zoom applies a wheel delta to the camera distance, clamped to [MinDistance, MaxDistance].
func Zoom(distance, deltaY float32, c Controls) float32 {
	return clamp(distance+deltaY*c.ZoomScale, c.MinDistance, c.MaxDistance)
}

func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
