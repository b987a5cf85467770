// Package nurbs implements rational B-spline (NURBS) curves and surfaces:
// Cox-de Boor basis evaluation, rational curve/surface evaluation with
// homogeneous control points, and the supporting geometry types shared by
// the tessellation and collision packages.
//
// Curves and surfaces are value-like: no evaluation mutates them, so
// independent evaluations are safe to run concurrently. Callers that edit
// geometry are responsible for excluding readers while they do so.
package nurbs
