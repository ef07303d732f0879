package component

import "github.com/jakecoffman/cp"

// Motion is the physical state of a moving or placed entity. Position is the
// box center in world pixels, y grows downwards. The sign of Scale encodes
// facing; box extents always use its absolute value.
type Motion struct {
	Position cp.Vector
	Angle    float64
	Velocity cp.Vector
	Scale    cp.Vector
	ReflectX bool
	ReflectY bool
	// OffGround is false only when the last world collision pass found support.
	OffGround bool
	// Climbing suppresses gravity and platform collision.
	Climbing bool
	SpeedMul float64
}

// Size returns the unsigned box size.
func (m *Motion) Size() cp.Vector {
	return cp.Vector{X: abs(m.Scale.X), Y: abs(m.Scale.Y)}
}

// Box returns the axis-aligned box. cp.BB keeps its B (min y) / T (max y)
// naming; in screen space B is the top edge.
func (m *Motion) Box() cp.BB {
	s := m.Size()
	return cp.NewBBForExtents(m.Position, s.X/2, s.Y/2)
}

// Feet returns the y of the bottom edge.
func (m *Motion) Feet() float64 {
	return m.Position.Y + abs(m.Scale.Y)/2
}

// Facing returns -1 when reflected on x, else 1.
func (m *Motion) Facing() float64 {
	if m.ReflectX {
		return -1
	}
	return 1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

var MotionComponent = NewComponent[Motion]()

// Mass is used by the bounce resolution. Zero means immovable.
type Mass struct {
	Value float64
}

var MassComponent = NewComponent[Mass]()
