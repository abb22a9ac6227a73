package geo

// Geometry is an indexed triangle mesh in flat arrays, ready for upload.
type Geometry struct {
	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	UVs       []float32 // uv per vertex
	Indices   []uint16  // three per triangle, counter-clockwise from outside
}

// VertexCount returns the number of vertices.
func (g Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (g Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// MaxSphereSegments keeps sphere vertex counts within 16-bit indices.
const MaxSphereSegments = 254

// Sphere builds a UV sphere of the given radius with vertices placed by ToCartesian, so an
// equirectangular texture (u = longitude, v = latitude from the north pole) lines up with markers.
// The seam column is duplicated at longitude ±180.
func Sphere(radius float32, segments int) Geometry {
	segments = max(3, min(segments, MaxSphereSegments))
	rings, slices := segments, segments
	n := (rings + 1) * (slices + 1)
	g := Geometry{
		Positions: make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		UVs:       make([]float32, 0, n*2),
		Indices:   make([]uint16, 0, rings*slices*6),
	}
	for i := 0; i <= rings; i++ {
		v := float32(i) / float32(rings)
		lat := 90 - 180*v
		for j := 0; j <= slices; j++ {
			u := float32(j) / float32(slices)
			lng := -180 + 360*u
			unit := ToCartesian(lat, lng, 1)
			g.Positions = append(g.Positions, unit[0]*radius, unit[1]*radius, unit[2]*radius)
			g.Normals = append(g.Normals, unit[0], unit[1], unit[2])
			g.UVs = append(g.UVs, u, v)
		}
	}
	stride := slices + 1
	for i := 0; i < rings; i++ {
		for j := 0; j < slices; j++ {
			a := uint16(i*stride + j)
			b := a + uint16(stride)
			g.Indices = append(g.Indices, a, b, a+1, b, b+1, a+1)
		}
	}
	return g
}
