package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/navstack"
	"github.com/milk9111/npcstack/prefabs"
)

var defaultScreenTint = color.NRGBA{A: 0xc8}

// BuildScreen spawns the overlay panel for state. extra lines are shown
// before the static lines from screens.yaml.
func BuildScreen(w *ecs.World, state navstack.State, spec prefabs.ScreenSpec, layer int, extra ...string) (ecs.Entity, error) {
	title := spec.Title
	if title == "" {
		title = state.String()
	}
	lines := make([]string, 0, len(extra)+len(spec.Lines))
	lines = append(lines, extra...)
	lines = append(lines, spec.Lines...)

	panel := ecs.CreateEntity(w)
	if err := ecs.Add(w, panel, component.ScreenMemberComponent.Kind(), &component.ScreenMember{Screen: state}); err != nil {
		return 0, fmt.Errorf("screen %s: add member: %w", state, err)
	}
	if err := ecs.Add(w, panel, component.ScreenTextComponent.Kind(), &component.ScreenText{
		Title: title,
		Lines: lines,
		Layer: layer,
		Tint:  spec.Tint.NRGBA(defaultScreenTint),
	}); err != nil {
		return 0, fmt.Errorf("screen %s: add text: %w", state, err)
	}
	return panel, nil
}

// DespawnScreen destroys every entity tied to state.
func DespawnScreen(w *ecs.World, state navstack.State) int {
	n := 0
	ecs.ForEach(w, component.ScreenMemberComponent.Kind(), func(e ecs.Entity, m *component.ScreenMember) {
		if m.Screen == state && ecs.DestroyEntity(w, e) {
			n++
		}
	})
	return n
}
