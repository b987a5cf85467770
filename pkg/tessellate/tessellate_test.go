package tessellate

import (
	"errors"
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/mapforge/spline/pkg/nurbs"
)

func bilinearPatch(t *testing.T) *nurbs.Surface {
	t.Helper()
	points := [][]nurbs.ControlPoint{
		{{Pos: v3.Vec{X: 0, Z: 0}, W: 1}, {Pos: v3.Vec{X: 0, Z: 2}, W: 1}},
		{{Pos: v3.Vec{X: 3, Z: 0}, W: 1}, {Pos: v3.Vec{X: 3, Z: 2}, W: 1}},
	}
	s, err := nurbs.NewSurface(1, 1, points, nil, nil)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	return s
}

func TestTessellateCounts(t *testing.T) {
	s := bilinearPatch(t)
	tests := []struct {
		resU, resV int
	}{
		{2, 2},
		{3, 5},
		{10, 4},
		{50, 50},
	}
	for _, tt := range tests {
		ts, err := Tessellate(s, tt.resU, tt.resV)
		if err != nil {
			t.Fatalf("Tessellate(%d,%d): %v", tt.resU, tt.resV, err)
		}
		if got, want := len(ts.Grid), tt.resU*tt.resV; got != want {
			t.Errorf("%dx%d vertex count %d, want %d", tt.resU, tt.resV, got, want)
		}
		if got, want := ts.TriangleCount(), 2*(tt.resU-1)*(tt.resV-1); got != want {
			t.Errorf("%dx%d triangle count %d, want %d", tt.resU, tt.resV, got, want)
		}
		for _, idx := range ts.Indices {
			if int(idx) >= len(ts.Grid) {
				t.Fatalf("%dx%d index %d out of range", tt.resU, tt.resV, idx)
			}
		}
	}
}

func TestTessellateInvalidResolution(t *testing.T) {
	s := bilinearPatch(t)
	for _, res := range [][2]int{{1, 2}, {2, 1}, {0, 0}, {-3, 50}} {
		if _, err := Tessellate(s, res[0], res[1]); !errors.Is(err, nurbs.ErrInvalidParameter) {
			t.Errorf("Tessellate(%d,%d) error = %v, want invalid parameter", res[0], res[1], err)
		}
	}
}

func TestTessellateQuadWinding(t *testing.T) {
	s := bilinearPatch(t)
	ts, err := Tessellate(s, 2, 2)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	want := []uint32{0, 1, 2, 1, 3, 2}
	if len(ts.Indices) != len(want) {
		t.Fatalf("index count %d, want %d", len(ts.Indices), len(want))
	}
	for i := range want {
		if ts.Indices[i] != want[i] {
			t.Fatalf("indices %v, want %v", ts.Indices, want)
		}
	}
}

func TestTessellateGridSamples(t *testing.T) {
	s := bilinearPatch(t)
	ts, err := Tessellate(s, 4, 3)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	// A bilinear patch samples to the bilinear interpolation of its corners,
	// including exact boundary rows and columns.
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			u := float64(i) / 3
			v := float64(j) / 2
			want := v3.Vec{X: 3 * u, Z: 2 * v}
			got := ts.At(i, j).Position
			if got.Sub(want).Length() > 1e-9 {
				t.Errorf("sample (%d,%d): got %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestTessellatedSurfaceTriangle(t *testing.T) {
	s := bilinearPatch(t)
	ts, err := Tessellate(s, 2, 2)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	for k := 0; k < ts.TriangleCount(); k++ {
		tri := ts.Triangle(k)
		for c := 0; c < 3; c++ {
			want := ts.Grid[ts.Indices[3*k+c]].Position
			if tri[c] != want {
				t.Errorf("triangle %d vertex %d: got %v, want %v", k, c, tri[c], want)
			}
		}
	}

	// The patch lies in the y=0 plane and the winding is fixed, so the
	// geometric triangle normal is exactly +y.
	var first sdf.Triangle3 = ts.Triangle(0)
	if n := first.Normal(); n.Sub(v3.Vec{Y: 1}).Length() > 1e-12 {
		t.Errorf("triangle 0 normal %v, want +y", n)
	}
}

func TestTessellatedSurfaceMesh(t *testing.T) {
	s := bilinearPatch(t)
	ts, err := Tessellate(s, 3, 3)
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	m := ts.Mesh("patch")
	if m.Name != "patch" {
		t.Errorf("mesh name %q", m.Name)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if got, want := m.VertexCount(), len(ts.Grid); got != want {
		t.Errorf("mesh vertex count %d, want %d", got, want)
	}
	if got, want := m.TriangleCount(), ts.TriangleCount(); got != want {
		t.Errorf("mesh triangle count %d, want %d", got, want)
	}
	for v := 0; v < m.VertexCount(); v++ {
		base := v * VertexStride
		p := ts.Grid[v]
		if m.Vertices[base] != float32(p.Position.X) ||
			m.Vertices[base+1] != float32(p.Position.Y) ||
			m.Vertices[base+2] != float32(p.Position.Z) {
			t.Fatalf("vertex %d position mismatch", v)
		}
		nx := float64(m.Vertices[base+3])
		ny := float64(m.Vertices[base+4])
		nz := float64(m.Vertices[base+5])
		if l := math.Sqrt(nx*nx + ny*ny + nz*nz); math.Abs(l-1) > 1e-5 {
			t.Fatalf("vertex %d normal not unit: %v", v, l)
		}
	}
}

func TestTessellateCurve(t *testing.T) {
	points := []nurbs.ControlPoint{
		{Pos: v3.Vec{X: 0}, W: 1},
		{Pos: v3.Vec{X: 1, Y: 2}, W: 1},
		{Pos: v3.Vec{X: 2, Y: 2}, W: 1},
		{Pos: v3.Vec{X: 3}, W: 1},
	}
	c, err := nurbs.NewCurve(3, points, nil)
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}

	if _, err := TessellateCurve(c, 1); !errors.Is(err, nurbs.ErrInvalidParameter) {
		t.Fatalf("resolution 1 error = %v, want invalid parameter", err)
	}

	line, err := TessellateCurve(c, 17)
	if err != nil {
		t.Fatalf("TessellateCurve: %v", err)
	}
	if len(line) != 17 {
		t.Fatalf("polyline length %d, want 17", len(line))
	}
	if line[0].Sub(points[0].Pos).Length() > 1e-9 {
		t.Errorf("polyline start %v", line[0])
	}
	if line[16].Sub(points[3].Pos).Length() > 1e-9 {
		t.Errorf("polyline end %v", line[16])
	}
}
