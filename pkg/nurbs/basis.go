package nurbs

// BasisFunction evaluates the i-th B-spline basis function of the given
// degree at parameter t over knots, using the Cox-de Boor recurrence
// rewritten as an iterative dynamic-programming pass (recursion depth would
// equal the degree; the table form avoids stack growth and recomputation).
//
// Any recurrence term whose knot-span denominator is below Epsilon
// contributes exactly zero: collapsed spans vanish instead of dividing.
//
// The degree-0 intervals are half-open, knots[j] <= t < knots[j+1], except
// that the final nonempty span of the knot vector is closed on the right.
// Evaluating a clamped curve at the exact upper domain bound therefore
// interpolates the last control point instead of collapsing to zero.
func BasisFunction(i, degree int, t float64, knots KnotVector) float64 {
	n := make([]float64, degree+1)
	for k := 0; k <= degree; k++ {
		n[k] = basisZero(i+k, t, knots)
	}

	for p := 1; p <= degree; p++ {
		for k := 0; k+p <= degree; k++ {
			j := i + k
			var left, right float64
			if d := knots[j+p] - knots[j]; d > Epsilon {
				left = (t - knots[j]) / d * n[k]
			}
			if d := knots[j+p+1] - knots[j+1]; d > Epsilon {
				right = (knots[j+p+1] - t) / d * n[k+1]
			}
			n[k] = left + right
		}
	}

	return n[0]
}

// basisZero is the degree-0 case: 1 inside the half-open span, with the
// last nonempty span treated as closed so the upper domain bound is
// reachable.
func basisZero(j int, t float64, knots KnotVector) float64 {
	if t >= knots[j] && t < knots[j+1] {
		return 1
	}
	if t >= knots[len(knots)-1] && knots[j] < t && t <= knots[j+1] {
		return 1
	}
	return 0
}
