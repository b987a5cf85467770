package nurbs

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Epsilon is the tolerance below which a knot span, a rational weight sum,
// or a tangent cross product is treated as degenerate. Degeneracies resolve
// to documented fallback values, never to NaN.
const Epsilon = 1e-6

// Capacity maxima enforced at construction. Exceeding either is a distinct
// failure (ErrCapacityExceeded), not a truncation.
const (
	MaxControlPoints = 64  // per parametric direction
	MaxKnots         = 128 // per parametric direction
)

// ControlPoint is a homogeneous control point: a position and a rational
// weight. W > 0 is a rational weight; W = 1 everywhere makes the curve or
// surface non-rational.
type ControlPoint struct {
	Pos v3.Vec  `json:"pos"`
	W   float64 `json:"w"`
}

// KnotVector is a non-decreasing sequence of parameter values. For a curve
// with n control points of degree p it has length n+p+1, and the clamped
// (open) form repeats the first and last knot p+1 times.
type KnotVector []float64

// ClampedUniform returns the clamped uniform knot vector for the given
// degree and control point count: degree+1 zeros, evenly spaced interior
// knots, degree+1 ones.
func ClampedUniform(degree, numControlPoints int) KnotVector {
	n := numControlPoints + degree + 1
	knots := make(KnotVector, n)

	interior := n - 2*(degree+1)
	for i := 0; i < interior; i++ {
		knots[degree+1+i] = float64(i+1) / float64(interior+1)
	}
	for i := n - degree - 1; i < n; i++ {
		knots[i] = 1
	}

	return knots
}

// IsNonDecreasing reports whether the knot values never decrease.
func (k KnotVector) IsNonDecreasing() bool {
	for i := 1; i < len(k); i++ {
		if k[i] < k[i-1] {
			return false
		}
	}
	return true
}

// IsClamped reports whether the first and last knot each repeat degree+1
// times, so that the curve interpolates its end control points.
func (k KnotVector) IsClamped(degree int) bool {
	if len(k) < 2*(degree+1) {
		return false
	}
	for i := 0; i <= degree; i++ {
		if k[i] != k[0] || k[len(k)-1-i] != k[len(k)-1] {
			return false
		}
	}
	return true
}

// Domain returns the evaluable parameter range [knots[degree],
// knots[numControlPoints]] for the given degree and control point count.
func (k KnotVector) Domain(degree, numControlPoints int) (start, end float64) {
	return k[degree], k[numControlPoints]
}

// unitOrDefault normalizes v, falling back to the canonical +Z direction
// when v is too short to normalize. Every surface sample therefore carries
// a usable unit normal, even at poles and collapsed spans.
func unitOrDefault(v v3.Vec) v3.Vec {
	if l := v.Length(); l > Epsilon {
		return v.MulScalar(1 / l)
	}
	return v3.Vec{Z: 1}
}
