package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
)

// NewSpike creates a static spike. It has no mass and never moves.
func (f *Factory) NewSpike(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	b := f.begin(w, component.ClassSpike, pos)
	add(b, component.MassComponent, &component.Mass{})
	f.mesh(b, "spike")
	return b.done()
}

// NewWheel creates a rolling wheel. A zero vx uses the tuned speed.
func (f *Factory) NewWheel(w *ecs.World, pos cp.Vector, vx float64) (ecs.Entity, error) {
	if vx == 0 {
		vx = f.Tuning.Wheel.Speed
	}
	b := f.begin(w, component.ClassWheel, pos)
	if m := b.motion(); m != nil {
		m.Velocity.X = vx
	}
	add(b, component.MassComponent, &component.Mass{Value: f.Tuning.Wheel.Mass})
	f.mesh(b, "wheel")
	return b.done()
}

func (f *Factory) NewFallingHazard(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	b := f.begin(w, component.ClassFallingHazard, pos)
	add(b, component.FallingComponent, &component.Falling{Drift: f.Tuning.Falling.Drift})
	return b.done()
}

// NewCurveHazard creates a hazard driven along a quadratic or cubic curve
// starting at its first control point.
func (f *Factory) NewCurveHazard(w *ecs.World, points []cp.Vector, quadratic bool) (ecs.Entity, error) {
	want := 4
	if quadratic {
		want = 3
	}
	if len(points) != want {
		return 0, fmt.Errorf("entity: curve_hazard: need %d points, got %d", want, len(points))
	}
	pts := make([]cp.Vector, len(points))
	copy(pts, points)
	b := f.begin(w, component.ClassCurveHazard, pts[0])
	add(b, component.BezierComponent, &component.Bezier{Points: pts, Quadratic: quadratic})
	return b.done()
}
