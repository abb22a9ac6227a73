package globe

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameState is the slice of engine state the per-frame step reads and writes.
type FrameState struct {
	Rotation mgl32.Vec3 // globe Euler angles
	Velocity mgl32.Vec2 // pitch, yaw
	Dragging bool
}

// Tick advances one frame. While the pointer is up the globe spins slowly on its yaw axis and the
// last drag velocity decays by Damping before being applied, so a flick coasts to a stop
// asymptotically. While dragging nothing changes: the pointer drives the rotation.
func Tick(f FrameState, m Motion) FrameState {
	if f.Dragging {
		return f
	}
	f.Rotation[1] += m.AutoRotate
	f.Velocity = f.Velocity.Mul(m.Damping)
	f.Rotation[0] += f.Velocity[0]
	f.Rotation[1] += f.Velocity[1]
	return f
}

// RingPulse returns a pulse ring's radius (degrees) and opacity at the given time since start.
// A ring is emitted every Repeat, grows at Speed and fades out as it reaches MaxRadius.
func RingPulse(elapsed time.Duration, p RingParams) (radius, opacity float32) {
	if p.Repeat <= 0 || p.Speed <= 0 || p.MaxRadius <= 0 {
		return 0, 0
	}
	t := float32((elapsed % p.Repeat).Seconds())
	radius = p.Speed * t
	if radius >= p.MaxRadius {
		return 0, 0
	}
	return radius, 1 - radius/p.MaxRadius
}
