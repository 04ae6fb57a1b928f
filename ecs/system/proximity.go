package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/navstack"
	"github.com/milk9111/npcstack/proximity"
)

// ProximityWatchSystem measures every proximity-enabled entity against the
// avatar while the primary screen is current and emits an Entered or Left
// event on each threshold crossing.
type ProximityWatchSystem struct {
	states StateSource
}

func NewProximityWatchSystem(states StateSource) *ProximityWatchSystem {
	return &ProximityWatchSystem{states: states}
}

func (s *ProximityWatchSystem) Update(w *ecs.World) {
	if w == nil || s.states == nil || s.states.Current() != navstack.Primary {
		return
	}

	records := proximityRecords(w)
	s.prune(w, records)

	avatars := ecs.Count(w, component.AvatarTagComponent.Kind())
	if avatars != 1 {
		diagnostics(w).Violation("%v: found %d", ErrAvatarCardinality, avatars)
		return
	}
	avatar, _ := ecs.First(w, component.AvatarTagComponent.Kind())
	at, ok := ecs.Get(w, avatar, component.TransformComponent.Kind())
	if !ok {
		diagnostics(w).Violation("avatar %v has no transform", avatar)
		return
	}
	origin := cp.Vector{X: at.X, Y: at.Y}

	ecs.ForEach3(w,
		component.ProximityEnabledComponent.Kind(),
		component.TransformComponent.Kind(),
		component.ProximityRadiusComponent.Kind(),
		func(e ecs.Entity, _ *component.ProximityEnabled, t *component.Transform, r *component.ProximityRadius) {
			if e == avatar {
				return
			}
			dist := origin.Distance(cp.Vector{X: t.X, Y: t.Y})
			switch records.Observe(e, dist, r.Threshold) {
			case proximity.EnterEdge:
				ecs.Emit(w, proximity.Entered{Entity: e, Distance: dist})
			case proximity.LeaveEdge:
				ecs.Emit(w, proximity.Left{Entity: e, Distance: dist})
			}
		})
}

// prune forgets entities that died or stopped being proximity-enabled. Ones
// that were near get a Left so the candidate set lets go of them too.
func (s *ProximityWatchSystem) prune(w *ecs.World, records *proximity.Records) {
	for _, e := range records.Entities() {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.ProximityEnabledComponent.Kind()) {
			continue
		}
		rec, _ := records.Drop(e)
		if rec.Near {
			ecs.Emit(w, proximity.Left{Entity: e, Distance: rec.Distance, Despawn: true})
		}
	}
}

func proximityRecords(w *ecs.World) *proximity.Records {
	if r, ok := ecs.Resource[proximity.Records](w); ok {
		return r
	}
	r := proximity.NewRecords()
	ecs.SetResource(w, r)
	return r
}

func candidates(w *ecs.World) *proximity.Candidates {
	if c, ok := ecs.Resource[proximity.Candidates](w); ok {
		return c
	}
	c := &proximity.Candidates{}
	ecs.SetResource(w, c)
	return c
}

// ResetProximity clears records, candidates and any undelivered proximity
// events.
func ResetProximity(w *ecs.World) {
	proximityRecords(w).Reset()
	candidates(w).Reset()
	ecs.Events[proximity.Entered](w).Clear()
	ecs.Events[proximity.Left](w).Clear()
}
