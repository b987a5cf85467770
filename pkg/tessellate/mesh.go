package tessellate

// Mesh is a triangle mesh suitable for rendering.
// Vertices is flat and interleaved: 6 floats per vertex
// (x,y,z, nx,ny,nz), indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0,nx0,ny0,nz0, x1,...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // which scene object this came from
}

// VertexStride is the number of floats per vertex in Mesh.Vertices.
const VertexStride = 6

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}
