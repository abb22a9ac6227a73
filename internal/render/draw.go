package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"monster-globe/internal/globe"
)

// Render draws scene from camera. Call between BeginDrawing and EndDrawing; it opens and closes
// its own 3D mode. Opaque spheres go first, then stars and rings, then the additive atmosphere.
func (r *Runtime) Render(scene *globe.Scene, camera *globe.Camera) {
	if !r.mounted || scene == nil || camera == nil {
		return
	}
	var (
		solid, glow []*globe.Node
		points      []*globe.Node
		rings       []*globe.Node
		hidden      []*globe.Node
	)
	scene.Root.Walk(func(n *globe.Node) {
		if n.Mesh == nil {
			return
		}
		spec := n.Mesh.Spec()
		if !n.Visible {
			if n.Marker != nil && spec.Kind == globe.KindSphere {
				hidden = append(hidden, n)
			}
			return
		}
		switch spec.Kind {
		case globe.KindSphere:
			if spec.Material.BackFace {
				glow = append(glow, n)
			} else {
				solid = append(solid, n)
			}
		case globe.KindPoints:
			points = append(points, n)
		case globe.KindRing:
			rings = append(rings, n)
		}
	})

	viewPos := [3]float32(camera.Position)
	lights := newLightUniforms(scene.Lights)

	rl.BeginMode3D(toCamera3D(camera))
	for _, n := range solid {
		r.drawSphere(n, viewPos, lights)
	}
	for _, n := range points {
		drawPoints(n)
	}
	if scene.Globe != nil {
		center := scene.Globe.WorldPosition()
		for _, n := range rings {
			drawRing(n, center)
		}
	}
	if r.opts.ShowHitVolumes {
		for _, n := range hidden {
			rl.DrawSphereWires(toVector3(n.WorldPosition()), n.BoundingRadius(), 8, 8, hitVolumeColor)
		}
	}
	if len(glow) > 0 {
		rl.BeginBlendMode(rl.BlendAdditive)
		rl.DisableDepthMask()
		rl.DisableBackfaceCulling()
		for _, n := range glow {
			r.drawSphere(n, viewPos, lights)
		}
		rl.EnableBackfaceCulling()
		rl.EnableDepthMask()
		rl.EndBlendMode()
	}
	rl.EndMode3D()
}

func (r *Runtime) drawSphere(n *globe.Node, viewPos [3]float32, lights lightUniforms) {
	m, ok := unwrap(n.Mesh)
	if !ok || !m.uploaded {
		return
	}
	mat := m.spec.Material
	if albedo := m.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = toColor(mat.Color, mat.Opacity*n.Opacity)
	}
	switch m.shader {
	case shaderLit:
		setLitShaderUniforms(m.mtl.Shader, viewPos, lights, m.bump)
	case shaderGlow:
		setGlowShaderUniforms(m.mtl.Shader, viewPos)
	}
	rl.DrawMesh(m.rl, m.mtl, toMatrix(n.World()))
}

func drawPoints(n *globe.Node) {
	spec := n.Mesh.Spec()
	c := toColor(spec.Material.Color, spec.Material.Opacity*n.Opacity)
	world := n.World()
	identity := world == mgl32.Ident4()
	for _, p := range spec.Points {
		if !identity {
			p = world.Mul4x1(p.Vec4(1)).Vec3()
		}
		rl.DrawPoint3D(toVector3(p), c)
	}
}

// drawRing draws a pulse ring lying on the sphere around center, facing outwards.
func drawRing(n *globe.Node, center mgl32.Vec3) {
	radius := n.BoundingRadius()
	if radius <= 0 {
		return
	}
	pos := n.WorldPosition()
	axis, deg := ringAxis(pos.Sub(center))
	spec := n.Mesh.Spec()
	rl.DrawCircle3D(toVector3(pos), radius, toVector3(axis), deg, toColor(spec.Material.Color, spec.Material.Opacity*n.Opacity))
}
