package nurbs

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Surface is a tensor-product rational B-spline surface. Points is a
// u-major grid: Points[i][j] is the control point at u-index i, v-index j.
// Each direction independently satisfies the curve invariants.
type Surface struct {
	DegreeU int              `json:"degreeU"`
	DegreeV int              `json:"degreeV"`
	Points  [][]ControlPoint `json:"controlPoints"`
	KnotsU  KnotVector       `json:"knotsU"`
	KnotsV  KnotVector       `json:"knotsV"`
}

// SurfacePoint is a single surface evaluation result. Normal is unit
// length, falling back to the canonical +Z direction when both tangents
// vanish (for example at a pole). Tangents are basis-difference
// approximations adequate for shading, not exact partial derivatives.
type SurfacePoint struct {
	Position v3.Vec
	Normal   v3.Vec
	TangentU v3.Vec
	TangentV v3.Vec
}

// NewSurface validates and builds a surface from a u-major control grid.
// Nil knot vectors are replaced by clamped uniform ones.
func NewSurface(degreeU, degreeV int, points [][]ControlPoint, knotsU, knotsV KnotVector) (*Surface, error) {
	if degreeU < 1 || degreeV < 1 {
		return nil, fmt.Errorf("surface degrees %dx%d: %w", degreeU, degreeV, ErrInvalidParameter)
	}

	numU := len(points)
	if numU == 0 {
		return nil, fmt.Errorf("surface control grid is empty: %w", ErrInvalidParameter)
	}
	numV := len(points[0])
	for _, row := range points {
		if len(row) != numV {
			return nil, fmt.Errorf("surface control grid is ragged: %w", ErrInvalidParameter)
		}
	}

	if numU <= degreeU || numV <= degreeV {
		return nil, fmt.Errorf("surface control grid %dx%d too small for degrees %dx%d: %w",
			numU, numV, degreeU, degreeV, ErrInvalidParameter)
	}
	if numU > MaxControlPoints || numV > MaxControlPoints {
		return nil, fmt.Errorf("surface control grid %dx%d (max %d per direction): %w",
			numU, numV, MaxControlPoints, ErrCapacityExceeded)
	}

	if knotsU == nil {
		knotsU = ClampedUniform(degreeU, numU)
	}
	if knotsV == nil {
		knotsV = ClampedUniform(degreeV, numV)
	}
	if err := checkKnots("u", knotsU, degreeU, numU); err != nil {
		return nil, err
	}
	if err := checkKnots("v", knotsV, degreeV, numV); err != nil {
		return nil, err
	}

	return &Surface{
		DegreeU: degreeU,
		DegreeV: degreeV,
		Points:  points,
		KnotsU:  knotsU,
		KnotsV:  knotsV,
	}, nil
}

func checkKnots(dir string, knots KnotVector, degree, numControlPoints int) error {
	if len(knots) != numControlPoints+degree+1 {
		return fmt.Errorf("%s knot count %d, want %d: %w",
			dir, len(knots), numControlPoints+degree+1, ErrInvalidParameter)
	}
	if len(knots) > MaxKnots {
		return fmt.Errorf("%s direction with %d knots (max %d): %w",
			dir, len(knots), MaxKnots, ErrCapacityExceeded)
	}
	if !knots.IsNonDecreasing() {
		return fmt.Errorf("%s knots must be non-decreasing: %w", dir, ErrInvalidParameter)
	}
	return nil
}

// NumU returns the control point count in the u direction.
func (s *Surface) NumU() int { return len(s.Points) }

// NumV returns the control point count in the v direction.
func (s *Surface) NumV() int { return len(s.Points[0]) }

// DomainU returns the evaluable u parameter range.
func (s *Surface) DomainU() (start, end float64) {
	return s.KnotsU.Domain(s.DegreeU, s.NumU())
}

// DomainV returns the evaluable v parameter range.
func (s *Surface) DomainV() (start, end float64) {
	return s.KnotsV.Domain(s.DegreeV, s.NumV())
}

// Evaluate returns the surface point at (u, v): position, approximate
// tangents, and a unit normal.
//
// Position is the rational double sum over the control grid; if its
// total weight has magnitude below Epsilon the position is the zero
// vector. Tangents accumulate successive basis differences, each with its
// own weight sum that is divided through only when it exceeds Epsilon.
// The normal is the normalized tangent cross product with the canonical
// fallback, so degenerate samples stay finite.
func (s *Surface) Evaluate(u, v float64) SurfacePoint {
	numU, numV := s.NumU(), s.NumV()

	// One basis evaluation per row and column; the double loop below
	// reuses them instead of recomputing per grid cell.
	basisU := make([]float64, numU)
	for i := range basisU {
		basisU[i] = BasisFunction(i, s.DegreeU, u, s.KnotsU)
	}
	basisV := make([]float64, numV)
	for j := range basisV {
		basisV[j] = BasisFunction(j, s.DegreeV, v, s.KnotsV)
	}

	var pos, du, dv v3.Vec
	var wSum, duSum, dvSum float64

	for i := 0; i < numU; i++ {
		for j := 0; j < numV; j++ {
			cp := s.Points[i][j]
			w := cp.W * basisU[i] * basisV[j]
			pos = pos.Add(cp.Pos.MulScalar(w))
			wSum += w

			if i > 0 {
				dw := cp.W * (basisU[i] - basisU[i-1]) * basisV[j]
				du = du.Add(cp.Pos.MulScalar(dw))
				duSum += dw
			}
			if j > 0 {
				dw := cp.W * basisU[i] * (basisV[j] - basisV[j-1])
				dv = dv.Add(cp.Pos.MulScalar(dw))
				dvSum += dw
			}
		}
	}

	if math.Abs(wSum) > Epsilon {
		pos = pos.MulScalar(1 / wSum)
	} else {
		pos = v3.Vec{}
	}
	if duSum > Epsilon {
		du = du.MulScalar(1 / duSum)
	}
	if dvSum > Epsilon {
		dv = dv.MulScalar(1 / dvSum)
	}

	return SurfacePoint{
		Position: pos,
		Normal:   unitOrDefault(du.Cross(dv)),
		TangentU: du,
		TangentV: dv,
	}
}

// Bounds returns the axis-aligned bounding box of the control grid, which
// bounds the surface by the convex hull property.
func (s *Surface) Bounds() (min, max v3.Vec) {
	min = s.Points[0][0].Pos
	max = s.Points[0][0].Pos
	for _, row := range s.Points {
		for _, cp := range row {
			min = min.Min(cp.Pos)
			max = max.Max(cp.Pos)
		}
	}
	return min, max
}

// Fingerprint returns a content hash of the surface's degrees, control
// grid, and knot vectors, for caller-owned tessellation caching.
func (s *Surface) Fingerprint() uint64 {
	h := newGeomHash()
	h.writeInt(s.DegreeU)
	h.writeInt(s.DegreeV)
	h.writeInt(s.NumU())
	h.writeInt(s.NumV())
	for _, row := range s.Points {
		for _, cp := range row {
			h.writePoint(cp)
		}
	}
	h.writeFloats(s.KnotsU)
	h.writeFloats(s.KnotsV)
	return h.sum()
}

// Translated returns a copy of the surface with every control point moved
// by d.
func (s *Surface) Translated(d v3.Vec) *Surface {
	out := s.clone()
	for _, row := range out.Points {
		for j := range row {
			row[j].Pos = row[j].Pos.Add(d)
		}
	}
	return out
}

// Scaled returns a copy of the surface with control points scaled
// per-component about the origin.
func (s *Surface) Scaled(sc v3.Vec) *Surface {
	out := s.clone()
	for _, row := range out.Points {
		for j := range row {
			row[j].Pos = row[j].Pos.Mul(sc)
		}
	}
	return out
}

// RotatedY returns a copy of the surface rotated by angle radians around
// the Y axis.
func (s *Surface) RotatedY(angle float64) *Surface {
	sin, cos := math.Sincos(angle)
	out := s.clone()
	for _, row := range out.Points {
		for j := range row {
			p := row[j].Pos
			row[j].Pos = v3.Vec{
				X: p.X*cos - p.Z*sin,
				Y: p.Y,
				Z: p.X*sin + p.Z*cos,
			}
		}
	}
	return out
}

func (s *Surface) clone() *Surface {
	points := make([][]ControlPoint, len(s.Points))
	for i, row := range s.Points {
		points[i] = append([]ControlPoint(nil), row...)
	}
	return &Surface{
		DegreeU: s.DegreeU,
		DegreeV: s.DegreeV,
		Points:  points,
		KnotsU:  append(KnotVector(nil), s.KnotsU...),
		KnotsV:  append(KnotVector(nil), s.KnotsV...),
	}
}
