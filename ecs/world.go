package ecs

import (
	"errors"
	"fmt"

	"github.com/milk9111/outbreak/ecs/component"
)

// ErrComponentNotFound is returned by Fetch when an entity lacks a component.
var ErrComponentNotFound = errors.New("ecs: component not found")

// World owns entities, component tables and the per-frame collision log.
// It is not safe for concurrent use; the simulation drives it from one
// goroutine.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	order    []component.ComponentID

	// iterating counts nested ForEach calls; compaction waits until it is zero.
	iterating int
	dirty     []*SparseSet

	collisions CollisionLog
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes e from every component table and invalidates the
// handle. It returns false when e was not alive.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, id := range w.order {
		w.removeFrom(w.stores[id], e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if s, ok := w.stores[id]; ok {
		return s
	}
	if !create {
		return nil
	}
	s := &SparseSet{}
	w.stores[id] = s
	w.order = append(w.order, id)
	return s
}

// AddComponent stores value under kind for e.
func (w *World) AddComponent(e Entity, kind component.AnyKind, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).Set(e, value)
	return nil
}

// GetComponent returns the raw value stored under kind for e.
func (w *World) GetComponent(e Entity, kind component.AnyKind) (any, bool) {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return nil, false
	}
	v := s.Get(e)
	return v, v != nil
}

// HasComponent reports whether e has a value under kind.
func (w *World) HasComponent(e Entity, kind component.AnyKind) bool {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).Has(e)
}

// RemoveComponent removes kind from e. Removing an absent component is a no-op
// that returns false.
func (w *World) RemoveComponent(e Entity, kind component.AnyKind) bool {
	if w == nil || kind == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.removeFrom(w.store(kind.ID(), false), e)
}

func (w *World) removeFrom(s *SparseSet, e Entity) bool {
	if s == nil || !s.Remove(e) {
		return false
	}
	if w.iterating > 0 {
		w.dirty = append(w.dirty, s)
		return true
	}
	s.compact()
	return true
}

func (w *World) lock() {
	w.iterating++
}

func (w *World) unlock() {
	w.iterating--
	if w.iterating > 0 {
		return
	}
	for _, s := range w.dirty {
		s.compact()
	}
	w.dirty = w.dirty[:0]
}

// Query returns alive entities that have every kind, ordered by the first
// kind's table.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	base := w.store(kinds[0].ID(), false)
	if base == nil {
		return nil
	}
	out := make([]Entity, 0, base.Len())
	for _, e := range base.Entities() {
		match := true
		for _, k := range kinds[1:] {
			if !w.store(k.ID(), false).Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity holding kind.
func (w *World) First(kind component.AnyKind) (Entity, bool) {
	if w == nil || kind == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return 0, false
	}
	for i, e := range s.denseEntities {
		if !s.dead[i] {
			return e, true
		}
	}
	return 0, false
}

// Collisions returns the world's collision log.
func (w *World) Collisions() *CollisionLog {
	if w == nil {
		return nil
	}
	return &w.collisions
}

// ComponentsOf lists the names of the components e currently holds, in table
// registration order.
func (w *World) ComponentsOf(e Entity) []string {
	if w == nil || !w.entities.isAlive(e) {
		return nil
	}
	var names []string
	for _, id := range w.order {
		if w.stores[id].Has(e) {
			names = append(names, id.Name())
		}
	}
	return names
}

// Describe renders every alive entity with its component names. Debug only.
func (w *World) Describe() []string {
	if w == nil {
		return nil
	}
	lines := make([]string, 0, w.entities.count)
	for _, e := range w.entities.live() {
		lines = append(lines, fmt.Sprintf("%s %v", e, w.ComponentsOf(e)))
	}
	return lines
}
