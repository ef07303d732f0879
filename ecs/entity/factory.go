package entity

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/outbreak/ecs"
	"github.com/milk9111/outbreak/ecs/component"
	"github.com/milk9111/outbreak/prefabs"
)

var ErrUnsupportedClass = errors.New("entity: class cannot be spawned from a point")

// Factory creates fully populated entities. It is the spawner used by the
// spawn scheduler, the infection timer and the boss.
type Factory struct {
	Tuning *prefabs.Tuning
}

func NewFactory(tuning *prefabs.Tuning) *Factory {
	if tuning == nil {
		tuning = prefabs.DefaultTuning()
	}
	return &Factory{Tuning: tuning}
}

// Spawn creates an entity of class centred on pos.
func (f *Factory) Spawn(w *ecs.World, class component.Class, pos cp.Vector) (ecs.Entity, error) {
	switch class {
	case component.ClassZombie:
		return f.NewZombie(w, pos)
	case component.ClassStudent:
		return f.NewStudent(w, pos, 0)
	case component.ClassBook:
		return f.NewBook(w, pos)
	case component.ClassWheel:
		return f.NewWheel(w, pos, 0)
	case component.ClassSpike:
		return f.NewSpike(w, pos)
	case component.ClassCollectible:
		return f.NewCollectible(w, pos)
	case component.ClassFallingHazard:
		return f.NewFallingHazard(w, pos)
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedClass, class)
}

// builder threads the first error through a run of component adds.
type builder struct {
	w     *ecs.World
	e     ecs.Entity
	class component.Class
	err   error
}

func (f *Factory) begin(w *ecs.World, class component.Class, pos cp.Vector) *builder {
	b := &builder{w: w, e: ecs.CreateEntity(w), class: class}
	width, height := f.Tuning.Size(class.String())
	add(b, component.KindComponent, &component.Kind{Class: class})
	add(b, component.MotionComponent, &component.Motion{
		Position:  pos,
		Scale:     cp.Vector{X: width, Y: height},
		OffGround: class.Gravity() != component.GravityNone,
		SpeedMul:  1,
	})
	return b
}

func add[T any](b *builder, handle component.ComponentHandle[T], value *T) {
	if b.err != nil {
		return
	}
	if err := ecs.Add(b.w, b.e, handle.Kind(), value); err != nil {
		b.err = fmt.Errorf("entity: %s: add %s: %w", b.class, handle.Kind().Name(), err)
	}
}

func (b *builder) motion() *component.Motion {
	m, _ := ecs.Get(b.w, b.e, component.MotionComponent.Kind())
	return m
}

// done returns the entity, destroying it when any add failed.
func (b *builder) done() (ecs.Entity, error) {
	if b.err != nil {
		ecs.DestroyEntity(b.w, b.e)
		return 0, b.err
	}
	return b.e, nil
}

func (f *Factory) mesh(b *builder, name string) {
	if b.err != nil {
		return
	}
	verts, err := prefabs.Mesh(name)
	if err != nil {
		b.err = fmt.Errorf("entity: %s: %w", b.class, err)
		return
	}
	add(b, component.MeshComponent, &component.Mesh{Name: name, Vertices: verts})
}
