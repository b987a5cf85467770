// Package collide tests rays against spline surfaces. A surface is
// tessellated into a scratch triangle mesh and every triangle is tested
// with the Moller-Trumbore algorithm; the nearest accepted hit wins.
package collide

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/mapforge/spline/pkg/nurbs"
	"github.com/mapforge/spline/pkg/tessellate"
)

// DefaultResolution is the tessellation grid used by Intersect in each
// parametric direction. Fixed rather than adaptive: 50x50 keeps the cost
// bounded and the precision adequate for picking.
const DefaultResolution = 50

// Result reports a ray intersection. Point, Normal, and Distance are
// meaningful only when Hit is true. Normal is the unit normal of the hit
// triangle, flipped if needed to face back along the ray.
type Result struct {
	Hit      bool
	Point    v3.Vec
	Normal   v3.Vec
	Distance float64
}

// Intersect tessellates the surface at DefaultResolution and returns the
// nearest intersection along the ray. Direction must be unit length for
// Distance to be a metric distance. The scratch tessellation is discarded
// before returning.
func Intersect(origin, dir v3.Vec, s *nurbs.Surface) (Result, error) {
	ts, err := tessellate.Tessellate(s, DefaultResolution, DefaultResolution)
	if err != nil {
		return Result{}, err
	}
	return IntersectTessellated(origin, dir, ts), nil
}

// IntersectTessellated tests the ray against every triangle of an already
// tessellated surface and returns the globally nearest hit. Ties at
// bit-identical distances resolve to the first triangle in enumeration
// order.
func IntersectTessellated(origin, dir v3.Vec, ts *tessellate.TessellatedSurface) Result {
	var res Result
	best := 0.0

	for k := 0; k < ts.TriangleCount(); k++ {
		tri := ts.Triangle(k)
		t, ok := rayTriangle(origin, dir, tri[0], tri[1], tri[2])
		if !ok {
			continue
		}
		if res.Hit && t >= best {
			continue
		}

		n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
		n = unitOrDefault(n)
		if n.Dot(dir) > 0 {
			n = n.MulScalar(-1)
		}

		res = Result{
			Hit:      true,
			Point:    origin.Add(dir.MulScalar(t)),
			Normal:   n,
			Distance: t,
		}
		best = t
	}

	return res
}

// rayTriangle is Moller-Trumbore. It returns the ray parameter of the hit,
// or ok=false when the ray is parallel to the triangle plane, the
// barycentric coordinates fall outside the triangle, or the hit is at or
// behind the origin.
func rayTriangle(origin, dir, v0, v1, v2 v3.Vec) (float64, bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -nurbs.Epsilon && a < nurbs.Epsilon {
		return 0, false
	}

	f := 1 / a
	s := origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	if t <= nurbs.Epsilon {
		return 0, false
	}
	return t, true
}

// unitOrDefault mirrors the evaluator's degenerate-normal rule for
// zero-area triangles.
func unitOrDefault(v v3.Vec) v3.Vec {
	if l := v.Length(); l > nurbs.Epsilon {
		return v.MulScalar(1 / l)
	}
	return v3.Vec{Z: 1}
}
