package ecs

// componentStore is the type-erased view of a sparseSet the world needs to
// drop components when an entity dies.
type componentStore interface {
	has(e Entity) bool
	remove(e Entity) bool
	len() int
}

// sparseSet is a cache-friendly storage for one component type keyed by
// entity id. Dense slices keep insertion order until a removal swaps the
// last element into the hole.
type sparseSet[T any] struct {
	owners []Entity
	values []*T
	sparse []int
}

func (s *sparseSet[T]) index(e Entity) int {
	id := int(e.slot())
	if id <= 0 || id-1 >= len(s.sparse) {
		return -1
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.owners) || s.owners[idx] != e {
		return -1
	}
	return idx
}

func (s *sparseSet[T]) has(e Entity) bool {
	return s.index(e) >= 0
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx := s.index(e)
	if idx < 0 {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	id := int(e.slot())
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.owners) && s.owners[idx].slot() == e.slot() {
		s.owners[idx] = e
		s.values[idx] = v
		return
	}
	s.owners = append(s.owners, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.owners) - 1
}

func (s *sparseSet[T]) remove(e Entity) bool {
	idx := s.index(e)
	if idx < 0 {
		return false
	}
	last := len(s.owners) - 1
	moved := s.owners[last]

	s.owners[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.slot()-1] = idx

	s.owners[last] = 0
	s.values[last] = nil
	s.owners = s.owners[:last]
	s.values = s.values[:last]
	s.sparse[e.slot()-1] = -1
	return true
}

func (s *sparseSet[T]) len() int {
	return len(s.owners)
}

// snapshot copies the owner list so callers can destroy entities while
// iterating.
func (s *sparseSet[T]) snapshot() []Entity {
	return append([]Entity(nil), s.owners...)
}
