package system

import (
	"testing"

	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/ecs/entity"
	"github.com/milk9111/npcstack/navstack"
	"github.com/milk9111/npcstack/prefabs"
	"github.com/milk9111/npcstack/proximity"
)

type fixedState navstack.State

func (s *fixedState) Current() navstack.State { return navstack.State(*s) }

type harness struct {
	w      *ecs.World
	state  *fixedState
	sched  *ecs.Scheduler
	avatar ecs.Entity
	npcs   map[string]ecs.Entity

	entered ecs.EventReader[proximity.Entered]
	left    ecs.EventReader[proximity.Left]
}

func newHarness(t *testing.T, npcs ...prefabs.NPCSpec) *harness {
	t.Helper()
	state := fixedState(navstack.Primary)
	h := &harness{
		w:     ecs.NewWorld(),
		state: &state,
		npcs:  make(map[string]ecs.Entity),
	}
	ecs.SetResource(h.w, &Diagnostics{})
	h.sched = ecs.NewScheduler(
		NewProximityWatchSystem(h.state),
		NewAwayFromSystem(),
		NewNextToSystem(),
	)

	avatar, err := entity.BuildAvatar(h.w, &prefabs.AvatarSpec{Name: "Player", Speed: 250})
	if err != nil {
		t.Fatalf("build avatar: %v", err)
	}
	h.avatar = avatar
	for _, spec := range npcs {
		e, err := entity.BuildNPC(h.w, spec)
		if err != nil {
			t.Fatalf("build npc: %v", err)
		}
		h.npcs[spec.Name] = e
	}
	return h
}

func npcAt(name string, x, y, threshold float64) prefabs.NPCSpec {
	return prefabs.NPCSpec{
		Name:      name,
		Threshold: threshold,
		Transform: prefabs.TransformSpec{X: x, Y: y},
	}
}

func (h *harness) moveTo(x, y float64) {
	t, _ := ecs.Get(h.w, h.avatar, component.TransformComponent.Kind())
	t.X, t.Y = x, y
}

func (h *harness) tick() ([]proximity.Entered, []proximity.Left) {
	h.sched.Update(h.w)
	return h.entered.Drain(ecs.Events[proximity.Entered](h.w)), h.left.Drain(ecs.Events[proximity.Left](h.w))
}

func (h *harness) candidates() *proximity.Candidates {
	return candidates(h.w)
}

func (h *harness) diagnostics() *Diagnostics {
	return diagnostics(h.w)
}
