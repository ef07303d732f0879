package common

import "github.com/jakecoffman/cp"

// QuadraticBezier evaluates B(t) for three control points.
func QuadraticBezier(p0, p1, p2 cp.Vector, t float64) cp.Vector {
	u := 1 - t
	return p0.Mult(u * u).Add(p1.Mult(2 * u * t)).Add(p2.Mult(t * t))
}

// CubicBezier evaluates B(t) for four control points.
func CubicBezier(p0, p1, p2, p3 cp.Vector, t float64) cp.Vector {
	u := 1 - t
	return p0.Mult(u * u * u).
		Add(p1.Mult(3 * u * u * t)).
		Add(p2.Mult(3 * u * t * t)).
		Add(p3.Mult(t * t * t))
}
