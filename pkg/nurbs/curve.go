package nurbs

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Curve is a rational B-spline curve: an ordered control polygon with
// homogeneous weights and a knot vector of length len(Points)+Degree+1.
type Curve struct {
	Degree int            `json:"degree"`
	Points []ControlPoint `json:"controlPoints"`
	Knots  KnotVector     `json:"knots"`
}

// NewCurve validates and builds a curve. The knot vector may be nil, in
// which case a clamped uniform one is generated.
func NewCurve(degree int, points []ControlPoint, knots KnotVector) (*Curve, error) {
	if degree < 1 {
		return nil, fmt.Errorf("curve degree %d: %w", degree, ErrInvalidParameter)
	}
	if len(points) <= degree {
		return nil, fmt.Errorf("curve needs more than %d control points, got %d: %w",
			degree, len(points), ErrInvalidParameter)
	}
	if len(points) > MaxControlPoints {
		return nil, fmt.Errorf("curve with %d control points (max %d): %w",
			len(points), MaxControlPoints, ErrCapacityExceeded)
	}

	if knots == nil {
		knots = ClampedUniform(degree, len(points))
	}
	if len(knots) != len(points)+degree+1 {
		return nil, fmt.Errorf("curve knot count %d, want %d: %w",
			len(knots), len(points)+degree+1, ErrInvalidParameter)
	}
	if len(knots) > MaxKnots {
		return nil, fmt.Errorf("curve with %d knots (max %d): %w",
			len(knots), MaxKnots, ErrCapacityExceeded)
	}
	if !knots.IsNonDecreasing() {
		return nil, fmt.Errorf("curve knots must be non-decreasing: %w", ErrInvalidParameter)
	}

	return &Curve{Degree: degree, Points: points, Knots: knots}, nil
}

// Domain returns the evaluable parameter range of the curve.
func (c *Curve) Domain() (start, end float64) {
	return c.Knots.Domain(c.Degree, len(c.Points))
}

// Evaluate returns the curve position at parameter t. The weighted control
// point sum and the weight sum accumulate in a single pass; a weight sum
// with magnitude below Epsilon yields the zero vector rather than a NaN.
func (c *Curve) Evaluate(t float64) v3.Vec {
	var num v3.Vec
	var wSum float64

	for i, cp := range c.Points {
		w := cp.W * BasisFunction(i, c.Degree, t, c.Knots)
		num = num.Add(cp.Pos.MulScalar(w))
		wSum += w
	}

	if math.Abs(wSum) < Epsilon {
		return v3.Vec{}
	}
	return num.MulScalar(1 / wSum)
}

// Bounds returns the axis-aligned bounding box of the control polygon,
// which also bounds the curve by the convex hull property.
func (c *Curve) Bounds() (min, max v3.Vec) {
	min = c.Points[0].Pos
	max = c.Points[0].Pos
	for _, cp := range c.Points[1:] {
		min = min.Min(cp.Pos)
		max = max.Max(cp.Pos)
	}
	return min, max
}

// Fingerprint returns a content hash of the curve's degree, control points,
// and knots. Callers cache tessellations keyed by it and re-tessellate when
// the value changes; the curve itself carries no dirty state.
func (c *Curve) Fingerprint() uint64 {
	h := newGeomHash()
	h.writeInt(c.Degree)
	h.writeInt(len(c.Points))
	for _, cp := range c.Points {
		h.writePoint(cp)
	}
	h.writeFloats(c.Knots)
	return h.sum()
}

// Translated returns a copy of the curve with every control point moved
// by d.
func (c *Curve) Translated(d v3.Vec) *Curve {
	out := c.clone()
	for i := range out.Points {
		out.Points[i].Pos = out.Points[i].Pos.Add(d)
	}
	return out
}

// Scaled returns a copy of the curve with control points scaled
// per-component about the origin.
func (c *Curve) Scaled(s v3.Vec) *Curve {
	out := c.clone()
	for i := range out.Points {
		out.Points[i].Pos = out.Points[i].Pos.Mul(s)
	}
	return out
}

// RotatedY returns a copy of the curve rotated by angle radians around the
// Y axis.
func (c *Curve) RotatedY(angle float64) *Curve {
	sin, cos := math.Sincos(angle)
	out := c.clone()
	for i := range out.Points {
		p := out.Points[i].Pos
		out.Points[i].Pos = v3.Vec{
			X: p.X*cos - p.Z*sin,
			Y: p.Y,
			Z: p.X*sin + p.Z*cos,
		}
	}
	return out
}

func (c *Curve) clone() *Curve {
	return &Curve{
		Degree: c.Degree,
		Points: append([]ControlPoint(nil), c.Points...),
		Knots:  append(KnotVector(nil), c.Knots...),
	}
}
