package globe

import (
	"github.com/go-gl/mathgl/mgl32"

	"monster-globe/internal/marker"
)

// Node is one entry of the scene graph. Local transform is Position * Rx * Ry * Rz * Scale
// (Euler angles in radians, XYZ order). Children inherit the parent's world transform, which is
// how marker dots and hit volumes follow the globe's rotation without being recomputed.
type Node struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool
	// Opacity multiplies the material opacity (pulse rings fade out).
	Opacity float32
	Mesh    Mesh
	// Marker is set on dots, hit volumes and rings.
	Marker *marker.Marker

	parent   *Node
	children []*Node
	world    mgl32.Mat4
}

// NewNode returns a node at the origin with unit scale. It is visible unless its mesh material is not.
func NewNode(name string, mesh Mesh) *Node {
	visible := true
	if mesh != nil {
		visible = mesh.Spec().Material.Visible
	}
	return &Node{
		Name:    name,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: visible,
		Opacity: 1,
		Mesh:    mesh,
		world:   mgl32.Ident4(),
	}
}

// Add attaches children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child. Returns false if child is not a direct child of n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return true
		}
	}
	return false
}

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Local returns the node's transform relative to its parent.
func (n *Node) Local() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := mgl32.HomogRotate3DX(n.Rotation[0]).
		Mul4(mgl32.HomogRotate3DY(n.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation[2]))
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// UpdateWorld recomputes the world transform of n and its whole subtree.
func (n *Node) UpdateWorld() {
	if n.parent != nil {
		n.world = n.parent.world.Mul4(n.Local())
	} else {
		n.world = n.Local()
	}
	for _, c := range n.children {
		c.UpdateWorld()
	}
}

// World returns the world transform as of the last UpdateWorld.
func (n *Node) World() mgl32.Mat4 {
	return n.world
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.world.Col(3).Vec3()
}

// WorldScale returns the world scale along the node's X axis. Scene nodes are scaled uniformly.
func (n *Node) WorldScale() float32 {
	return n.world.Col(0).Vec3().Len()
}

// BoundingRadius is the world-space radius of the node's mesh, or 0 without a mesh.
func (n *Node) BoundingRadius() float32 {
	if n.Mesh == nil {
		return 0
	}
	return n.Mesh.Spec().Radius * n.WorldScale()
}

// Walk calls fn for n and every descendant, parents first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}
