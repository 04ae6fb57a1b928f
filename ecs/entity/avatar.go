package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/prefabs"
)

var defaultAvatarColor = color.NRGBA{R: 0xf5, G: 0xf5, B: 0xdc, A: 0xff}

func NewAvatar(w *ecs.World) (ecs.Entity, error) {
	spec, err := prefabs.LoadAvatarSpec()
	if err != nil {
		return 0, fmt.Errorf("avatar: load spec: %w", err)
	}
	return BuildAvatar(w, spec)
}

func BuildAvatar(w *ecs.World, spec *prefabs.AvatarSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("avatar: nil spec")
	}

	avatar := ecs.CreateEntity(w)
	if err := ecs.Add(w, avatar, component.AvatarTagComponent.Kind(), &component.AvatarTag{}); err != nil {
		return 0, fmt.Errorf("avatar: add avatar tag: %w", err)
	}
	if err := ecs.Add(w, avatar, component.AvatarComponent.Kind(), &component.Avatar{Speed: spec.Speed}); err != nil {
		return 0, fmt.Errorf("avatar: add avatar: %w", err)
	}
	if err := ecs.Add(w, avatar, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
		return 0, fmt.Errorf("avatar: add name: %w", err)
	}
	if err := ecs.Add(w, avatar, component.TransformComponent.Kind(), &component.Transform{
		X: spec.Transform.X,
		Y: spec.Transform.Y,
	}); err != nil {
		return 0, fmt.Errorf("avatar: add transform: %w", err)
	}
	if err := ecs.Add(w, avatar, component.SpriteComponent.Kind(), sprite(spec.Sprite, defaultAvatarColor, '@')); err != nil {
		return 0, fmt.Errorf("avatar: add sprite: %w", err)
	}
	return avatar, nil
}

func sprite(spec prefabs.SpriteSpec, fallback color.NRGBA, glyph rune) *component.Sprite {
	radius := spec.Radius
	if radius <= 0 {
		radius = 40
	}
	if r := []rune(spec.Glyph); len(r) > 0 {
		glyph = r[0]
	}
	return &component.Sprite{
		Radius: radius,
		Color:  spec.Color.NRGBA(fallback),
		Glyph:  glyph,
	}
}
