package ecs

// SparseSet stores one component table keyed by entity slot. Dense storage
// keeps insertion order. Removed slots are tombstoned and compacted with a
// stable filter, so iteration order never depends on which entity was removed.
type SparseSet struct {
	denseEntities []Entity
	denseValues   []any
	dead          []bool
	sparse        []int
	tombstones    int
}

func (s *SparseSet) index(e Entity) (int, bool) {
	id := int(e.id())
	if s == nil || id <= 0 || id-1 >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx] != e {
		return 0, false
	}
	return idx, true
}

// Has returns true if the entity has a live value in the set.
func (s *SparseSet) Has(e Entity) bool {
	idx, ok := s.index(e)
	return ok && !s.dead[idx]
}

// Get returns the component for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	idx, ok := s.index(e)
	if !ok || s.dead[idx] {
		return nil
	}
	return s.denseValues[idx]
}

// Set inserts or updates a component for e.
func (s *SparseSet) Set(e Entity, v any) {
	id := int(e.id())
	if s == nil || id <= 0 {
		return
	}
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(e); ok {
		if s.dead[idx] {
			s.dead[idx] = false
			s.tombstones--
		}
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.dead = append(s.dead, false)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove tombstones the value for e. It reports whether a live value existed.
// The slot is reclaimed by the next compact.
func (s *SparseSet) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok || s.dead[idx] {
		return false
	}
	s.dead[idx] = true
	s.denseValues[idx] = nil
	s.tombstones++
	return true
}

// Len returns the number of live values.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities) - s.tombstones
}

func (s *SparseSet) compact() {
	if s == nil || s.tombstones == 0 {
		return
	}
	n := 0
	for i, e := range s.denseEntities {
		if s.dead[i] {
			s.sparse[e.id()-1] = -1
			continue
		}
		s.denseEntities[n] = e
		s.denseValues[n] = s.denseValues[i]
		s.dead[n] = false
		s.sparse[e.id()-1] = n
		n++
	}
	clear(s.denseValues[n:])
	s.denseEntities = s.denseEntities[:n]
	s.denseValues = s.denseValues[:n]
	s.dead = s.dead[:n]
	s.tombstones = 0
}

// Entities returns a copy of the live entities in insertion order.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	out := make([]Entity, 0, s.Len())
	for i, e := range s.denseEntities {
		if !s.dead[i] {
			out = append(out, e)
		}
	}
	return out
}
