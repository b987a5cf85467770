// Package tessellate samples spline surfaces over uniform parameter grids
// and produces triangle meshes. One mesh is produced per surface; the
// tessellator is read-only and never mutates the geometry.
package tessellate

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/mapforge/spline/pkg/nurbs"
)

// TessellatedSurface is a sampled surface: a row-major grid of evaluated
// points (u varies by row) plus a triangle index buffer over that grid.
// Grid[i*ResV+j] is the sample at u-step i, v-step j.
type TessellatedSurface struct {
	ResU    int
	ResV    int
	Grid    []nurbs.SurfacePoint
	Indices []uint32
}

// Tessellate samples the surface over a uniform resU by resV parameter grid
// spanning its clamped domain. Both resolutions must be at least 2. The
// final row and column sample exactly at the domain's upper bounds, so a
// clamped surface's boundary control points appear in the output.
//
// Quads are split into two triangles each. For the quad at grid cell (i,j)
// with v0 = i*resV+j, v1 = v0+1, v2 = (i+1)*resV+j, v3 = v2+1, the
// triangles are (v0,v1,v2) and (v1,v3,v2). Downstream rendering and
// collision rely on this winding staying fixed.
func Tessellate(s *nurbs.Surface, resU, resV int) (*TessellatedSurface, error) {
	if resU < 2 || resV < 2 {
		return nil, fmt.Errorf("tessellate: resolution %dx%d (need at least 2x2): %w",
			resU, resV, nurbs.ErrInvalidParameter)
	}

	u0, u1 := s.DomainU()
	v0, v1 := s.DomainV()

	grid := make([]nurbs.SurfacePoint, 0, resU*resV)
	for i := 0; i < resU; i++ {
		u := u0 + (u1-u0)*float64(i)/float64(resU-1)
		if i == resU-1 {
			// Rounding can land one ulp past u1, where every basis
			// function vanishes and the sample collapses to zero.
			u = u1
		}
		for j := 0; j < resV; j++ {
			v := v0 + (v1-v0)*float64(j)/float64(resV-1)
			if j == resV-1 {
				v = v1
			}
			grid = append(grid, s.Evaluate(u, v))
		}
	}

	indices := make([]uint32, 0, 6*(resU-1)*(resV-1))
	for i := 0; i < resU-1; i++ {
		for j := 0; j < resV-1; j++ {
			a := uint32(i*resV + j)
			b := a + 1
			c := uint32((i+1)*resV + j)
			d := c + 1
			indices = append(indices, a, b, c)
			indices = append(indices, b, d, c)
		}
	}

	return &TessellatedSurface{
		ResU:    resU,
		ResV:    resV,
		Grid:    grid,
		Indices: indices,
	}, nil
}

// At returns the sample at u-step i, v-step j.
func (t *TessellatedSurface) At(i, j int) nurbs.SurfacePoint {
	return t.Grid[i*t.ResV+j]
}

// TriangleCount returns the number of triangles in the index buffer.
func (t *TessellatedSurface) TriangleCount() int {
	return len(t.Indices) / 3
}

// Triangle returns the k-th triangle's vertex positions in index order.
func (t *TessellatedSurface) Triangle(k int) sdf.Triangle3 {
	var tri sdf.Triangle3
	for c := 0; c < 3; c++ {
		tri[c] = t.Grid[t.Indices[3*k+c]].Position
	}
	return tri
}

// Mesh flattens the sampled grid into a renderable mesh: interleaved
// position and normal per vertex, plus a copy of the index buffer.
func (t *TessellatedSurface) Mesh(name string) *Mesh {
	vertices := make([]float32, 0, VertexStride*len(t.Grid))
	for _, p := range t.Grid {
		vertices = append(vertices,
			float32(p.Position.X), float32(p.Position.Y), float32(p.Position.Z),
			float32(p.Normal.X), float32(p.Normal.Y), float32(p.Normal.Z),
		)
	}
	return &Mesh{
		Vertices: vertices,
		Indices:  append([]uint32(nil), t.Indices...),
		Name:     name,
	}
}

// TessellateCurve samples the curve uniformly over its domain and returns
// the polyline vertices. Resolution must be at least 2; the last vertex
// samples exactly at the domain's upper bound.
func TessellateCurve(c *nurbs.Curve, res int) ([]v3.Vec, error) {
	if res < 2 {
		return nil, fmt.Errorf("tessellate: curve resolution %d (need at least 2): %w",
			res, nurbs.ErrInvalidParameter)
	}

	t0, t1 := c.Domain()
	points := make([]v3.Vec, res)
	for i := range points {
		u := t0 + (t1-t0)*float64(i)/float64(res-1)
		if i == res-1 {
			// Pin the endpoint; one ulp past t1 evaluates to zero.
			u = t1
		}
		points[i] = c.Evaluate(u)
	}
	return points, nil
}
