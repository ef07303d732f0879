package ecs

// Collision is one detected overlap seen from Self. A physics step records a
// qualifying pair in both orderings and may record the same pair more than
// once; consumers must treat repeated records idempotently.
type Collision struct {
	Self  Entity
	Other Entity
}

// CollisionLog is the per-frame collision multiset. It is filled by the
// physics step and drained by the world update within the same frame.
type CollisionLog struct {
	items []Collision
}

// Push records a collision.
func (q *CollisionLog) Push(c Collision) {
	if q == nil {
		return
	}
	q.items = append(q.items, c)
}

// PushPair records both orderings of a pair.
func (q *CollisionLog) PushPair(a, b Entity) {
	q.Push(Collision{Self: a, Other: b})
	q.Push(Collision{Self: b, Other: a})
}

// Items returns the recorded collisions without clearing them.
func (q *CollisionLog) Items() []Collision {
	if q == nil {
		return nil
	}
	return q.items
}

// Len returns the number of records.
func (q *CollisionLog) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Clear empties the log, keeping its capacity.
func (q *CollisionLog) Clear() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
}
