package ecs

import (
	"fmt"

	"github.com/milk9111/outbreak/ecs/component"
)

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

// Entities returns every alive entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.live()
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if value == nil {
		return component.ErrNilComponent
	}
	return w.AddComponent(e, kind, value)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.GetComponent(e, kind)
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// Fetch is Get with an error for callers that propagate absence.
func Fetch[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, error) {
	v, ok := Get(w, e, kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s on entity %s", ErrComponentNotFound, kind.Name(), e)
	}
	return v, nil
}

// MustGet is for components an entity is known to carry. A miss is a broken
// invariant and panics.
func MustGet[T any](w *World, e Entity, kind component.ComponentKind[T]) *T {
	v, err := Fetch(w, e, kind)
	if err != nil {
		panic(err)
	}
	return v
}

func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	return w.First(kind)
}

// ForEach visits every entity holding kind in insertion order. Entities added
// during the walk are not visited; removals are applied after it returns.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	forEach(w, kind, false, fn)
}

// ForEachReverse is ForEach walking from the newest entry to the oldest.
func ForEachReverse[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	forEach(w, kind, true, fn)
}

func forEach[T any](w *World, kind component.ComponentKind[T], reverse bool, fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return
	}
	w.lock()
	defer w.unlock()

	n := len(s.denseEntities)
	for i := 0; i < n; i++ {
		idx := i
		if reverse {
			idx = n - 1 - i
		}
		if s.dead[idx] {
			continue
		}
		v, ok := s.denseValues[idx].(*T)
		if !ok {
			continue
		}
		fn(s.denseEntities[idx], v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := Get(w, e, kb); ok {
			fn(e, a, b)
		}
	})
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := Get(w, e, kb)
		if !ok {
			return
		}
		if c, ok := Get(w, e, kc); ok {
			fn(e, a, b, c)
		}
	})
}
