package nurbs

import "errors"

// ErrInvalidParameter reports malformed geometry or non-positive dimensions
// passed to a constructor. Evaluation loops trust their inputs; validation
// happens only at construction boundaries.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrCapacityExceeded reports a construction requesting more control points
// or knots than the fixed maxima. It is never silently truncated away.
var ErrCapacityExceeded = errors.New("capacity exceeded")
