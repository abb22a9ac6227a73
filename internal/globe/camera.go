package globe

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera with a fixed orientation: it looks down -Z with +Y up,
// so zooming is a change of Position.Z only.
type Camera struct {
	Position mgl32.Vec3
	Fov      float32 // vertical, degrees
	Aspect   float32
	Near     float32
	Far      float32
}

// NewCamera returns a camera for a surface of the given size.
func NewCamera(p CameraParams, width, height int) *Camera {
	c := &Camera{
		Position: p.Position,
		Fov:      p.Fov,
		Near:     p.Near,
		Far:      p.Far,
	}
	c.SetAspect(width, height)
	return c
}

// SetAspect updates the aspect ratio after a resize. Degenerate sizes keep the previous ratio.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		if c.Aspect == 0 {
			c.Aspect = 1
		}
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Forward is the viewing direction.
func (c *Camera) Forward() mgl32.Vec3 {
	return mgl32.Vec3{0, 0, -1}
}

// Up is the camera's up vector.
func (c *Camera) Up() mgl32.Vec3 {
	return mgl32.Vec3{0, 1, 0}
}

// Target is a point one unit in front of the camera.
func (c *Camera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Forward())
}

// Distance is the camera's Z coordinate, the quantity the wheel zooms.
func (c *Camera) Distance() float32 {
	return c.Position[2]
}

// SetDistance moves the camera along Z.
func (c *Camera) SetDistance(d float32) {
	c.Position[2] = d
}

// View returns the world-to-camera transform.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target(), c.Up())
}

// Projection returns the perspective projection.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// ScreenToNDC converts pixel coordinates (origin top-left) to normalized device coordinates.
func ScreenToNDC(x, y float32, width, height int) mgl32.Vec2 {
	return mgl32.Vec2{
		x/float32(width)*2 - 1,
		-(y/float32(height))*2 + 1,
	}
}

// RayFromNDC returns the ray from the camera through an NDC point.
func (c *Camera) RayFromNDC(ndc mgl32.Vec2) Ray {
	inv := c.Projection().Mul4(c.View()).Inv()
	near := inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndc[0], ndc[1], 1, 1})
	nearW := near.Vec3().Mul(1 / near[3])
	farW := far.Vec3().Mul(1 / far[3])
	return Ray{Origin: c.Position, Direction: farW.Sub(nearW).Normalize()}
}

// Project maps a world point to pixel coordinates. ok is false for points behind the camera.
func (c *Camera) Project(p mgl32.Vec3, width, height int) (screen mgl32.Vec2, ok bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	return mgl32.Vec2{
		(ndc[0] + 1) / 2 * float32(width),
		(1 - ndc[1]) / 2 * float32(height),
	}, true
}
