package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/levels"
)

// BuildLevel populates an empty world from level data and returns the player.
func (f *Factory) BuildLevel(w *ecs.World, lvl *levels.Level) (ecs.Entity, error) {
	if lvl == nil {
		return 0, fmt.Errorf("entity: build level: nil level")
	}
	if _, err := f.NewCamera(w); err != nil {
		return 0, err
	}

	for i, blk := range lvl.Blocks {
		class, ok := component.ParseClass(blk.Type)
		if !ok || !class.IsStatic() {
			return 0, fmt.Errorf("entity: build level %s: block %d: bad type %q", lvl.Name, i, blk.Type)
		}
		if _, err := f.NewBlock(w, class, blk); err != nil {
			return 0, err
		}
	}

	for i, spec := range lvl.Entities {
		if _, err := f.placed(w, spec); err != nil {
			return 0, fmt.Errorf("entity: build level %s: entity %d: %w", lvl.Name, i, err)
		}
	}

	if lvl.Boss != nil {
		if _, _, err := f.NewBoss(w, cp.Vector{X: lvl.Boss.X, Y: lvl.Boss.Y}, component.BossVariant(lvl.Boss.Variant), lvl.Boss.Health); err != nil {
			return 0, err
		}
		if lvl.Boss.Blockade != nil {
			if _, err := f.NewBlock(w, component.ClassBlockade, *lvl.Boss.Blockade); err != nil {
				return 0, err
			}
		}
	}

	if lvl.Bus != nil {
		if _, err := f.NewBus(w, *lvl.Bus); err != nil {
			return 0, err
		}
	}

	if lvl.Door != nil {
		if _, err := f.NewDoor(w, lvl.Door.Vector()); err != nil {
			return 0, err
		}
	}

	player, err := f.NewPlayer(w, lvl.Player.Vector())
	if err != nil {
		return 0, err
	}
	if _, err := f.NewReticle(w, player); err != nil {
		return 0, err
	}
	if _, err := f.NewOverlay(w); err != nil {
		return 0, err
	}
	return player, nil
}

func (f *Factory) placed(w *ecs.World, spec levels.Entity) (ecs.Entity, error) {
	pos := cp.Vector{X: spec.X, Y: spec.Y}
	switch spec.Type {
	case "student":
		return f.NewStudent(w, pos, spec.VX)
	case "wheel":
		return f.NewWheel(w, pos, spec.VX)
	case "curve_hazard":
		pts := make([]cp.Vector, len(spec.Points))
		for i, p := range spec.Points {
			pts[i] = p.Vector()
		}
		return f.NewCurveHazard(w, pts, spec.Quadratic)
	}
	class, ok := component.ParseClass(spec.Type)
	if !ok {
		return 0, fmt.Errorf("unknown type %q", spec.Type)
	}
	return f.Spawn(w, class, pos)
}

// NewBlock creates static geometry from a top-left anchored block.
func (f *Factory) NewBlock(w *ecs.World, class component.Class, blk levels.Block) (ecs.Entity, error) {
	b := f.begin(w, class, blk.Center())
	if m := b.motion(); m != nil {
		m.Scale = cp.Vector{X: blk.W, Y: blk.H}
	}
	return b.done()
}

func (f *Factory) NewCollectible(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	return f.begin(w, component.ClassCollectible, pos).done()
}

func (f *Factory) NewDoor(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	b := f.begin(w, component.ClassDoor, pos)
	add(b, component.DoorComponent, &component.Door{})
	add(b, component.AnimationComponent, &component.Animation{Mode: component.AnimClosed})
	return b.done()
}

func (f *Factory) NewBus(w *ecs.World, spec levels.BusSpec) (ecs.Entity, error) {
	b := f.begin(w, component.ClassBus, cp.Vector{X: spec.X, Y: spec.Y})
	if m := b.motion(); m != nil {
		m.Velocity.X = spec.Speed
	}
	add(b, component.BusComponent, &component.Bus{MinX: spec.MinX, MaxX: spec.MaxX, Speed: spec.Speed})
	return b.done()
}

// NewCamera creates the camera entity sized from tuning.
func (f *Factory) NewCamera(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	cam := f.Tuning.Camera
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Right:  cam.Width,
		Bottom: cam.Height,
		Bias:   cam.Width * cam.Bias,
		Facing: 1,
	}); err != nil {
		return 0, fmt.Errorf("entity: camera: add camera: %w", err)
	}
	return e, nil
}

// NewOverlay creates the full-screen fade-in layer.
func (f *Factory) NewOverlay(w *ecs.World) (ecs.Entity, error) {
	b := f.begin(w, component.ClassOverlay, cp.Vector{})
	add(b, component.OverlayComponent, &component.Overlay{Opacity: 1})
	add(b, component.FadingTimerComponent, &component.FadingTimer{
		TimerMs: f.Tuning.Timers.FadeMs,
		TotalMs: f.Tuning.Timers.FadeMs,
		Factor:  1,
	})
	return b.done()
}

// NewDebugBox creates a single-frame marker drawn around bb.
func (f *Factory) NewDebugBox(w *ecs.World, bb cp.BB) (ecs.Entity, error) {
	b := f.begin(w, component.ClassDebug, bb.Center())
	if m := b.motion(); m != nil {
		m.Scale = cp.Vector{X: bb.R - bb.L, Y: bb.T - bb.B}
	}
	add(b, component.DebugComponent, &component.Debug{})
	return b.done()
}
