package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"monster-globe/internal/globe"
)

// toMatrix converts a column-major mgl32 matrix; raylib names its fields by the same indices.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func fromVector3(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// toColor scales the alpha channel by opacity.
func toColor(c color.RGBA, opacity float32) rl.Color {
	a := float32(c.A) * clampOpacity(opacity)
	return rl.NewColor(c.R, c.G, c.B, uint8(a))
}

func clampOpacity(o float32) float32 {
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}

// toCamera3D mirrors the engine camera for BeginMode3D.
func toCamera3D(c *globe.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target()),
		Up:         toVector3(c.Up()),
		Fovy:       c.Fov,
		Projection: rl.CameraPerspective,
	}
}
