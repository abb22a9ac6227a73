package render

import (
	"fmt"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"monster-globe/internal/geo"
	"monster-globe/internal/globe"
)

// mesh is a globe.Mesh backed by GPU resources. Points and rings have no GPU mesh; they are
// drawn immediate-mode from their spec.
type mesh struct {
	spec     globe.MeshSpec
	rl       rl.Mesh
	mtl      rl.Material
	uploaded bool
	textures []rl.Texture2D // owned; unloaded on Release
	shader   shaderKind
	bump     bool
	released bool
}

type shaderKind int

const (
	shaderDefault shaderKind = iota
	shaderLit
	shaderGlow
)

func (m *mesh) Spec() globe.MeshSpec {
	return m.spec
}

func (m *mesh) Release() error {
	if m.released {
		return nil
	}
	m.released = true
	if m.uploaded {
		rl.UnloadMesh(&m.rl)
		m.uploaded = false
	}
	for _, t := range m.textures {
		if rl.IsTextureValid(t) {
			rl.UnloadTexture(t)
		}
	}
	m.textures = nil
	return nil
}

// uploadGeometry copies g into raylib-allocated buffers and uploads it, so UnloadMesh can free
// the buffers with raylib's allocator.
func uploadGeometry(g geo.Geometry) (rl.Mesh, error) {
	if g.VertexCount() == 0 || g.TriangleCount() == 0 {
		return rl.Mesh{}, fmt.Errorf("render: empty geometry")
	}
	m := rl.Mesh{
		VertexCount:   int32(g.VertexCount()),
		TriangleCount: int32(g.TriangleCount()),
	}
	m.Vertices = allocFloats(g.Positions)
	m.Normals = allocFloats(g.Normals)
	m.Texcoords = allocFloats(g.UVs)
	m.Indices = allocIndices(g.Indices)
	rl.UploadMesh(&m, false)
	if m.VaoID == 0 {
		rl.UnloadMesh(&m)
		return rl.Mesh{}, fmt.Errorf("render: mesh upload failed")
	}
	return m, nil
}

func allocFloats(src []float32) *float32 {
	p := (*float32)(rl.MemAlloc(uint32(len(src) * 4)))
	copy(unsafe.Slice(p, len(src)), src)
	return p
}

func allocIndices(src []uint16) *uint16 {
	p := (*uint16)(rl.MemAlloc(uint32(len(src) * 2)))
	copy(unsafe.Slice(p, len(src)), src)
	return p
}
