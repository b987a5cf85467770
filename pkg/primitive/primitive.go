// Package primitive builds exact spline surfaces for common shapes.
// Circular cross sections are rational quadratics: nine control points
// (four quarter arcs), odd indices weighted 1/sqrt(2) and pushed out to
// the tangent square corners, so the result is a true circle rather than
// an approximation. All shapes are centered at the origin.
package primitive

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/mapforge/spline/pkg/nurbs"
)

// Control polygon of the unit circle in the xz plane: on-circle points at
// even indices, tangent square corners at odd indices. The circle starts
// at +x and passes -z at the quarter parameter.
var (
	circleX = [9]float64{1, 1, 0, -1, -1, -1, 0, 1, 1}
	circleZ = [9]float64{0, -1, -1, -1, 0, 1, 1, 1, 0}
)

func circleWeight(i int) float64 {
	if i%2 == 1 {
		return math.Sqrt2 / 2
	}
	return 1
}

func circleKnots() nurbs.KnotVector {
	return nurbs.KnotVector{0, 0, 0, 0.25, 0.25, 0.5, 0.5, 0.75, 0.75, 1, 1, 1}
}

func semicircleKnots() nurbs.KnotVector {
	return nurbs.KnotVector{0, 0, 0, 0.5, 0.5, 1, 1, 1}
}

// Plane returns a bilinear patch in the xz plane, centered at the origin,
// width along x and height along z.
func Plane(width, height float64) (*nurbs.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("plane %vx%v: %w", width, height, nurbs.ErrInvalidParameter)
	}
	return quad(
		v3.Vec{X: -width / 2, Z: -height / 2},
		v3.Vec{X: -width / 2, Z: height / 2},
		v3.Vec{X: width / 2, Z: -height / 2},
		v3.Vec{X: width / 2, Z: height / 2},
	)
}

// Sphere returns an exact sphere of the given radius: a rational
// semicircle profile (north pole to south pole) revolved around the y
// axis. u runs around the equator, v from pole to pole.
func Sphere(radius float64) (*nurbs.Surface, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius %v: %w", radius, nurbs.ErrInvalidParameter)
	}

	// Profile semicircle in the (radial, y) half plane.
	profileD := [5]float64{0, radius, radius, radius, 0}
	profileY := [5]float64{radius, radius, 0, -radius, -radius}

	points := make([][]nurbs.ControlPoint, 9)
	for i := range points {
		points[i] = make([]nurbs.ControlPoint, 5)
		for j := range points[i] {
			points[i][j] = nurbs.ControlPoint{
				Pos: v3.Vec{
					X: profileD[j] * circleX[i],
					Y: profileY[j],
					Z: profileD[j] * circleZ[i],
				},
				W: circleWeight(i) * circleWeight(j),
			}
		}
	}

	return nurbs.NewSurface(2, 2, points, circleKnots(), semicircleKnots())
}

// Cylinder returns an exact open cylinder: a rational circle of the given
// radius extruded along y from -height/2 to +height/2. u runs around the
// circle, v along the axis. End caps are not generated.
func Cylinder(radius, height float64) (*nurbs.Surface, error) {
	if radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("cylinder radius %v height %v: %w",
			radius, height, nurbs.ErrInvalidParameter)
	}
	return extrudedCircle(radius, radius, height)
}

// Cone returns an exact open cone frustum: circular cross sections of
// bottomRadius at y=-height/2 and topRadius at y=+height/2. A zero radius
// collapses that end to an apex point; at most one end may be zero.
func Cone(bottomRadius, topRadius, height float64) (*nurbs.Surface, error) {
	if bottomRadius < 0 || topRadius < 0 || height <= 0 {
		return nil, fmt.Errorf("cone radii %v/%v height %v: %w",
			bottomRadius, topRadius, height, nurbs.ErrInvalidParameter)
	}
	if bottomRadius == 0 && topRadius == 0 {
		return nil, fmt.Errorf("cone with both radii zero: %w", nurbs.ErrInvalidParameter)
	}
	return extrudedCircle(bottomRadius, topRadius, height)
}

func extrudedCircle(bottomRadius, topRadius, height float64) (*nurbs.Surface, error) {
	levels := [2]struct{ r, y float64 }{
		{bottomRadius, -height / 2},
		{topRadius, height / 2},
	}

	points := make([][]nurbs.ControlPoint, 9)
	for i := range points {
		points[i] = make([]nurbs.ControlPoint, 2)
		for j, l := range levels {
			points[i][j] = nurbs.ControlPoint{
				Pos: v3.Vec{X: l.r * circleX[i], Y: l.y, Z: l.r * circleZ[i]},
				W:   circleWeight(i),
			}
		}
	}

	return nurbs.NewSurface(2, 1, points, circleKnots(), nil)
}

// Torus returns an exact torus: a rational minor circle of minorRadius,
// centered majorRadius from the y axis, revolved around it. u runs around
// the major circle, v around the tube starting at the outer equator.
func Torus(majorRadius, minorRadius float64) (*nurbs.Surface, error) {
	if majorRadius <= 0 || minorRadius <= 0 {
		return nil, fmt.Errorf("torus radii %v/%v: %w",
			majorRadius, minorRadius, nurbs.ErrInvalidParameter)
	}

	// Minor circle in the (radial, y) plane, offset to the tube center.
	r := minorRadius
	minorD := [9]float64{r, r, 0, -r, -r, -r, 0, r, r}
	minorY := [9]float64{0, r, r, r, 0, -r, -r, -r, 0}

	points := make([][]nurbs.ControlPoint, 9)
	for i := range points {
		points[i] = make([]nurbs.ControlPoint, 9)
		for j := range points[i] {
			d := majorRadius + minorD[j]
			points[i][j] = nurbs.ControlPoint{
				Pos: v3.Vec{X: d * circleX[i], Y: minorY[j], Z: d * circleZ[i]},
				W:   circleWeight(i) * circleWeight(j),
			}
		}
	}

	return nurbs.NewSurface(2, 2, points, circleKnots(), circleKnots())
}

// Box returns the six bilinear faces of an axis-aligned box centered at
// the origin: width along x, height along y, depth along z. Face order is
// +z, -z, -x, +x, +y, -y.
func Box(width, height, depth float64) ([]*nurbs.Surface, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("box %vx%vx%v: %w",
			width, height, depth, nurbs.ErrInvalidParameter)
	}

	x, y, z := width/2, height/2, depth/2
	corner := func(sx, sy, sz float64) v3.Vec {
		return v3.Vec{X: sx * x, Y: sy * y, Z: sz * z}
	}

	faces := make([]*nurbs.Surface, 0, 6)
	for _, f := range [][4]v3.Vec{
		{corner(-1, -1, 1), corner(-1, 1, 1), corner(1, -1, 1), corner(1, 1, 1)},
		{corner(-1, -1, -1), corner(-1, 1, -1), corner(1, -1, -1), corner(1, 1, -1)},
		{corner(-1, -1, -1), corner(-1, 1, -1), corner(-1, -1, 1), corner(-1, 1, 1)},
		{corner(1, -1, -1), corner(1, 1, -1), corner(1, -1, 1), corner(1, 1, 1)},
		{corner(-1, 1, -1), corner(-1, 1, 1), corner(1, 1, -1), corner(1, 1, 1)},
		{corner(-1, -1, -1), corner(-1, -1, 1), corner(1, -1, -1), corner(1, -1, 1)},
	} {
		face, err := quad(f[0], f[1], f[2], f[3])
		if err != nil {
			return nil, err
		}
		faces = append(faces, face)
	}
	return faces, nil
}

// quad builds a bilinear patch from four corners: p00 at (u,v)=(0,0), p01
// at (0,1), p10 at (1,0), p11 at (1,1).
func quad(p00, p01, p10, p11 v3.Vec) (*nurbs.Surface, error) {
	points := [][]nurbs.ControlPoint{
		{{Pos: p00, W: 1}, {Pos: p01, W: 1}},
		{{Pos: p10, W: 1}, {Pos: p11, W: 1}},
	}
	return nurbs.NewSurface(1, 1, points, nil, nil)
}
