package component

import "github.com/jakecoffman/cp"

// Mesh is a polygon loop in unit space ([-1,1] on both axes, center origin)
// used by the precise collision tests.
type Mesh struct {
	Name     string
	Vertices []cp.Vector
}

var MeshComponent = NewComponent[Mesh]()

// Bezier drives a hazard along a quadratic (3 points) or cubic (4 points)
// curve. TimeMs is the curve clock.
type Bezier struct {
	Points    []cp.Vector
	Quadratic bool
	TimeMs    float64
}

var BezierComponent = NewComponent[Bezier]()

// Falling marks a hazard that drifts down at a constant rate.
type Falling struct {
	Drift float64
}

var FallingComponent = NewComponent[Falling]()
