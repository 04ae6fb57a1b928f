package ecs

// entityStore tracks entity generations and free ids. Ids start at 1 so the
// zero Entity is always invalid.
type entityStore struct {
	gens  []generation
	alive []bool
	free  []slotIndex
	count int
}

func (s *entityStore) create() Entity {
	var id slotIndex
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
		id = slotIndex(len(s.gens))
	}
	s.alive[id-1] = true
	s.count++
	return packEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.slot() - 1
	s.gens[idx]++
	s.alive[idx] = false
	s.free = append(s.free, e.slot())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.slot()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.alive[id-1] && s.gens[id-1] == e.gen()
}

func (s *entityStore) list() []Entity {
	out := make([]Entity, 0, s.count)
	for i, ok := range s.alive {
		if ok {
			out = append(out, packEntity(slotIndex(i+1), s.gens[i]))
		}
	}
	return out
}
