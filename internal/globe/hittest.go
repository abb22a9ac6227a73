package globe

import (
	"monster-globe/internal/marker"
)

// HitTester resolves a screen point to the marker whose hit volume the camera ray meets first.
type HitTester struct {
	rt     Runtime
	scene  *Scene
	camera *Camera
}

// NewHitTester returns a hit tester over scene's hit volumes.
func NewHitTester(rt Runtime, scene *Scene, camera *Camera) *HitTester {
	return &HitTester{rt: rt, scene: scene, camera: camera}
}

// Pick casts a ray through pixel (x, y) of a width x height surface. Only hit volumes are tested,
// never the visible dots. World transforms are refreshed first because hit volumes inherit the
// globe's current rotation. Returns nil when nothing is hit.
func (h *HitTester) Pick(x, y float32, width, height int) *marker.Marker {
	if width <= 0 || height <= 0 {
		return nil
	}
	h.scene.UpdateWorld()
	ray := h.camera.RayFromNDC(ScreenToNDC(x, y, width, height))
	hits := h.rt.Raycast(ray, h.scene.HitVolumes)
	var nearest *Intersection
	for i := range hits {
		if hits[i].Node == nil || hits[i].Node.Marker == nil {
			continue
		}
		if nearest == nil || hits[i].Distance < nearest.Distance {
			nearest = &hits[i]
		}
	}
	if nearest == nil {
		return nil
	}
	return nearest.Node.Marker
}
