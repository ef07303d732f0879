package component

import "github.com/jakecoffman/cp"

// Camera is the projection window in world pixels plus easing state.
type Camera struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64

	ShiftingX bool
	ShiftingY bool
	TimerX    float64
	TimerY    float64
	FromX     float64
	ToX       float64
	FromY     float64
	ToY       float64

	// Bias is the horizontal look-ahead applied in the facing direction.
	Bias float64
	// Facing is the facing the current horizontal target was computed for.
	Facing float64
}

// View returns the visible rectangle.
func (c *Camera) View() cp.BB {
	return cp.BB{L: c.Left, B: c.Top, R: c.Right, T: c.Bottom}
}

// Width returns the view width.
func (c *Camera) Width() float64 { return c.Right - c.Left }

// Height returns the view height.
func (c *Camera) Height() float64 { return c.Bottom - c.Top }

var CameraComponent = NewComponent[Camera]()
