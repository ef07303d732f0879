package common

import "github.com/jakecoffman/cp"

// Body is the subset of rigid body state the bounce needs. InvMass zero makes
// the body immovable.
type Body struct {
	Position cp.Vector
	Velocity cp.Vector
	InvMass  float64
}

// Bounce applies an impulse along the line from b's center to a's center:
// J = -(1+e)·(va-vb)·n / (1/ma + 1/mb). Bodies already separating are left
// alone. It reports whether an impulse was applied.
func Bounce(a, b *Body, restitution float64) bool {
	invSum := a.InvMass + b.InvMass
	if invSum == 0 {
		return false
	}
	delta := a.Position.Sub(b.Position)
	if delta.LengthSq() == 0 {
		delta = cp.Vector{X: 0, Y: -1}
	}
	n := delta.Normalize()
	vn := a.Velocity.Sub(b.Velocity).Dot(n)
	if vn >= 0 {
		return false
	}
	j := -(1 + restitution) * vn / invSum
	a.Velocity = a.Velocity.Add(n.Mult(j * a.InvMass))
	b.Velocity = b.Velocity.Sub(n.Mult(j * b.InvMass))
	return true
}

// Separate pushes the bodies apart by depth along axis, split by inverse mass.
// Axis points from b towards a.
func Separate(a, b *Body, axis cp.Vector, depth float64) {
	invSum := a.InvMass + b.InvMass
	if invSum == 0 || depth <= 0 {
		return
	}
	a.Position = a.Position.Add(axis.Mult(depth * a.InvMass / invSum))
	b.Position = b.Position.Sub(axis.Mult(depth * b.InvMass / invSum))
}
