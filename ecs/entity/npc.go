package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/prefabs"
)

var defaultNPCColor = color.NRGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}

// NewNPCs spawns every character listed in npcs.yaml.
func NewNPCs(w *ecs.World) ([]ecs.Entity, error) {
	specs, err := prefabs.LoadNPCSpecs()
	if err != nil {
		return nil, fmt.Errorf("npc: load specs: %w", err)
	}
	return BuildNPCs(w, specs)
}

func BuildNPCs(w *ecs.World, specs []prefabs.NPCSpec) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(specs))
	for _, spec := range specs {
		e, err := BuildNPC(w, spec)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}

func BuildNPC(w *ecs.World, spec prefabs.NPCSpec) (ecs.Entity, error) {
	npc := ecs.CreateEntity(w)
	if err := ecs.Add(w, npc, component.NPCTagComponent.Kind(), &component.NPCTag{}); err != nil {
		return 0, fmt.Errorf("npc %q: add npc tag: %w", spec.Name, err)
	}
	if err := ecs.Add(w, npc, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		return 0, fmt.Errorf("npc %q: add name: %w", spec.Name, err)
	}
	if err := ecs.Add(w, npc, component.TransformComponent.Kind(), &component.Transform{
		X: spec.Transform.X,
		Y: spec.Transform.Y,
	}); err != nil {
		return 0, fmt.Errorf("npc %q: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, npc, component.ProximityEnabledComponent.Kind(), &component.ProximityEnabled{}); err != nil {
		return 0, fmt.Errorf("npc %q: add proximity marker: %w", spec.Name, err)
	}
	if err := ecs.Add(w, npc, component.ProximityRadiusComponent.Kind(), &component.ProximityRadius{Threshold: spec.Threshold}); err != nil {
		return 0, fmt.Errorf("npc %q: add proximity radius: %w", spec.Name, err)
	}
	if err := ecs.Add(w, npc, component.DialogueComponent.Kind(), &component.Dialogue{Script: spec.Greeting}); err != nil {
		return 0, fmt.Errorf("npc %q: add dialogue: %w", spec.Name, err)
	}

	glyph := 'N'
	if r := []rune(spec.Name); len(r) > 0 {
		glyph = r[0]
	}
	if err := ecs.Add(w, npc, component.SpriteComponent.Kind(), sprite(spec.Sprite, defaultNPCColor, glyph)); err != nil {
		return 0, fmt.Errorf("npc %q: add sprite: %w", spec.Name, err)
	}
	return npc, nil
}

// DespawnNPCs destroys every NPC and returns how many were removed.
func DespawnNPCs(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.NPCTagComponent.Kind(), func(e ecs.Entity, _ *component.NPCTag) {
		if ecs.DestroyEntity(w, e) {
			n++
		}
	})
	return n
}
