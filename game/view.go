package game

import (
	"sort"

	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/component"
)

// Drawable is one disc in the gameplay view.
type Drawable struct {
	Entity ecs.Entity
	Name   string
	X, Y   float64
	Sprite component.Sprite
	Avatar bool
	// Threshold is the proximity radius, zero for the avatar.
	Threshold float64
	// Near is set for characters inside their proximity threshold.
	Near bool
	// Focus marks the character an interaction would address.
	Focus bool
}

// Drawables returns everything with a position and sprite, avatar last.
func (s *Session) Drawables() []Drawable {
	records := s.Records()
	focus, _ := s.Candidates().MostRecent()

	var out []Drawable
	ecs.ForEach2(s.world, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, sp *component.Sprite) {
		d := Drawable{
			Entity: e,
			X:      t.X,
			Y:      t.Y,
			Sprite: *sp,
			Avatar: ecs.Has(s.world, e, component.AvatarTagComponent.Kind()),
			Focus:  e == focus,
		}
		if n, ok := ecs.Get(s.world, e, component.NameComponent.Kind()); ok {
			d.Name = n.Value
		}
		if r, ok := ecs.Get(s.world, e, component.ProximityRadiusComponent.Kind()); ok {
			d.Threshold = r.Threshold
		}
		if rec, ok := records.Get(e); ok {
			d.Near = rec.Near
		}
		out = append(out, d)
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Avatar != out[j].Avatar {
			return !out[i].Avatar
		}
		return out[i].Entity < out[j].Entity
	})
	return out
}

func sortOverlays(panels []component.ScreenText) {
	sort.SliceStable(panels, func(i, j int) bool { return panels[i].Layer < panels[j].Layer })
}
