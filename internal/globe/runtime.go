package globe

import (
	"errors"
	"image/color"
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrRuntimeUnavailable means the rendering runtime cannot be used yet (no window/GL context).
	// It is not fatal: the host retries Initialize on a later frame.
	ErrRuntimeUnavailable = errors.New("globe: runtime not ready")
	// ErrClosed is returned by Initialize after Close.
	ErrClosed = errors.New("globe: viewer closed")
)

// Runtime is the capability set the engine needs from a rendering backend:
// geometry/material primitives, a ray caster and a renderer drawing to a mounted surface.
// The engine never touches a backend directly; render.Runtime implements it on raylib.
type Runtime interface {
	// Ready reports whether Mount and CreateMesh can be called.
	Ready() bool
	// Mount attaches the drawing surface at the given size.
	Mount(width, height int) error
	CreateMesh(spec MeshSpec) (Mesh, error)
	// Raycast intersects ray with the targets' bounding spheres, nearest first.
	Raycast(ray Ray, targets []*Node) []Intersection
	Render(scene *Scene, camera *Camera)
	Resize(width, height int)
	// Release frees the surface and native resources. Must not panic.
	Release() error
}

// Mesh is a backend geometry+material pair. Several nodes may share one mesh.
type Mesh interface {
	Spec() MeshSpec
	Release() error
}

// Kind selects the geometry of a mesh.
type Kind int

const (
	KindSphere Kind = iota
	KindPoints
	KindRing
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPoints:
		return "points"
	case KindRing:
		return "ring"
	}
	return "unknown"
}

// Material describes how a mesh is drawn. Invisible materials are never drawn but still
// take part in ray casts (hit volumes).
type Material struct {
	Color   color.RGBA
	Opacity float32
	Visible bool
	Texture string
	Bump    string
	// Unlit skips the light rig (dots, rings, stars).
	Unlit bool
	// BackFace draws the inside of the sphere (atmosphere shell).
	BackFace bool
}

// MeshSpec is everything a runtime needs to build a mesh.
type MeshSpec struct {
	Kind     Kind
	Radius   float32
	Segments int
	// Points and PointSize are used by KindPoints.
	Points    []mgl32.Vec3
	PointSize float32
	Material  Material
}

// LightKind distinguishes ambient from directional lights.
type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
)

// Light is one entry of the light rig. Position is the direction a directional light shines from.
type Light struct {
	Kind      LightKind
	Color     color.RGBA
	Intensity float32
	Position  mgl32.Vec3
}

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectSphere returns the distance to the first surface crossing in front of the origin.
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
		if t < 0 {
			return 0, false
		}
	}
	return t, true
}

// Intersection is one ray-cast hit.
type Intersection struct {
	Node     *Node
	Distance float32
	Point    mgl32.Vec3
}

// IntersectSpheres casts ray against each target's world-space bounding sphere and returns hits
// sorted nearest first. World transforms must be up to date. Runtimes without a native ray caster
// can delegate to this.
func IntersectSpheres(ray Ray, targets []*Node) []Intersection {
	var hits []Intersection
	for _, n := range targets {
		if n == nil || n.Mesh == nil {
			continue
		}
		t, ok := ray.IntersectSphere(n.WorldPosition(), n.BoundingRadius())
		if !ok {
			continue
		}
		hits = append(hits, Intersection{Node: n, Distance: t, Point: ray.At(t)})
	}
	SortIntersections(hits)
	return hits
}

// SortIntersections orders hits nearest first; equal distances keep their input order.
func SortIntersections(hits []Intersection) {
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
}
