package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
)

func (f *Factory) NewPlayer(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	b := f.begin(w, component.ClassPlayer, pos)
	add(b, component.PlayerComponent, &component.Player{Lives: f.Tuning.Player.Lives})
	add(b, component.InputComponent, &component.Input{})
	add(b, component.AnimationComponent, &component.Animation{Mode: component.AnimIdle})
	return b.done()
}

// NewReticle creates the aiming marker that follows target.
func (f *Factory) NewReticle(w *ecs.World, target ecs.Entity) (ecs.Entity, error) {
	pos := cp.Vector{}
	if m, ok := ecs.Get(w, target, component.MotionComponent.Kind()); ok {
		pos = m.Position
	}
	b := f.begin(w, component.ClassReticle, pos)
	add(b, component.FollowerComponent, &component.Follower{Target: uint64(target), OffsetX: f.Tuning.Player.ReticleGap})
	return b.done()
}

func (f *Factory) NewZombie(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	b := f.begin(w, component.ClassZombie, pos)
	add(b, component.MassComponent, &component.Mass{Value: 1})
	add(b, component.ZombieAIComponent, &component.ZombieAI{Direction: -1, Mode: component.AnimIdle})
	add(b, component.AnimationComponent, &component.Animation{Mode: component.AnimIdle})
	return b.done()
}

// NewStudent creates a wandering NPC. A zero vx starts it walking right.
func (f *Factory) NewStudent(w *ecs.World, pos cp.Vector, vx float64) (ecs.Entity, error) {
	if vx == 0 {
		vx = f.Tuning.Student.WalkSpeed
	}
	b := f.begin(w, component.ClassStudent, pos)
	if m := b.motion(); m != nil {
		m.Velocity.X = vx
	}
	add(b, component.MassComponent, &component.Mass{Value: 1})
	add(b, component.AnimationComponent, &component.Animation{Mode: component.AnimRun})
	return b.done()
}

// NewBook creates a loose book lying in the level.
func (f *Factory) NewBook(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	b := f.begin(w, component.ClassBook, pos)
	add(b, component.BookComponent, &component.Book{})
	add(b, component.MassComponent, &component.Mass{Value: 1})
	f.mesh(b, "book")
	return b.done()
}

// NewBoss creates the boss and its health bar.
func (f *Factory) NewBoss(w *ecs.World, pos cp.Vector, variant component.BossVariant, health int) (boss, bar ecs.Entity, err error) {
	if health <= 0 {
		health = f.Tuning.Boss.Health
	}
	b := f.begin(w, component.ClassBoss, pos)
	add(b, component.MassComponent, &component.Mass{Value: 4})
	add(b, component.BossComponent, &component.Boss{
		Variant:   variant,
		Health:    health,
		MaxHealth: health,
		SummonMs:  f.Tuning.Boss.SummonMs,
		Direction: -1,
	})
	add(b, component.AnimationComponent, &component.Animation{Mode: component.AnimIdle})
	boss, err = b.done()
	if err != nil {
		return 0, 0, err
	}

	barPos := pos.Sub(cp.Vector{X: 0, Y: f.Tuning.Boss.BarOffset})
	hb := f.begin(w, component.ClassHealthBar, barPos)
	width, _ := f.Tuning.Size(component.ClassHealthBar.String())
	add(hb, component.HealthBarComponent, &component.HealthBar{Owner: uint64(boss), Width: width, Offset: f.Tuning.Boss.BarOffset})
	bar, err = hb.done()
	if err != nil {
		ecs.DestroyEntity(w, boss)
		return 0, 0, err
	}
	return boss, bar, nil
}
