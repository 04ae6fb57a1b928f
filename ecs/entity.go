package ecs

import "strconv"

// Entity is a generational handle: the low half names a storage slot, the
// high half counts how many times that slot has been handed out. The zero
// value is never alive, and destroying an entity invalidates every copy of
// its handle even after the slot is reused.
type Entity uint64

type slotIndex uint32
type generation uint32

const slotBits = 32

func packEntity(slot slotIndex, gen generation) Entity {
	return Entity(uint64(gen)<<slotBits | uint64(slot))
}

func (e Entity) slot() slotIndex {
	return slotIndex(e & (1<<slotBits - 1))
}

func (e Entity) gen() generation {
	return generation(e >> slotBits)
}

// String renders the handle as slot#generation, so a reused slot is told
// apart from its previous occupant in logs.
func (e Entity) String() string {
	if !e.Valid() {
		return "none"
	}
	b := strconv.AppendUint(nil, uint64(e.slot()), 10)
	b = append(b, '#')
	b = strconv.AppendUint(b, uint64(e.gen()), 10)
	return string(b)
}

func (e Entity) Valid() bool {
	return e.slot() != 0
}
