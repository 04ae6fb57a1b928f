package system

import (
	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/proximity"
)

// AwayFromSystem drops entities from the candidate set when they leave the
// avatar's range. It is scheduled ahead of NextToSystem so a leave and an
// enter in the same tick settle in that order.
type AwayFromSystem struct {
	reader ecs.EventReader[proximity.Left]
}

func NewAwayFromSystem() *AwayFromSystem { return &AwayFromSystem{} }

func (s *AwayFromSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	set := candidates(w)
	for _, ev := range s.reader.Drain(ecs.Events[proximity.Left](w)) {
		if err := set.Remove(ev.Entity); err != nil {
			diagnostics(w).Violation("away from %v: %v", ev.Entity, err)
		}
	}
}

// NextToSystem makes entities that came within range the most recent
// interaction candidate.
type NextToSystem struct {
	reader ecs.EventReader[proximity.Entered]
}

func NewNextToSystem() *NextToSystem { return &NextToSystem{} }

func (s *NextToSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	set := candidates(w)
	records := proximityRecords(w)
	for _, ev := range s.reader.Drain(ecs.Events[proximity.Entered](w)) {
		if rec, ok := records.Get(ev.Entity); !ok || !rec.Near {
			diagnostics(w).Violation("next to %v: no near record", ev.Entity)
			continue
		}
		if err := set.Push(ev.Entity); err != nil {
			diagnostics(w).Violation("next to %v: %v", ev.Entity, err)
		}
	}
}
