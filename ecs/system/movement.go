package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/navstack"
)

const defaultTPS = 60

// MovementSystem moves the avatar from held directions while the primary
// screen is current. Diagonals are normalized so every direction covers the
// same distance per tick. Y grows downward, as on screen.
type MovementSystem struct {
	states StateSource
	dt     float64
}

func NewMovementSystem(states StateSource, tps int) *MovementSystem {
	if tps <= 0 {
		tps = defaultTPS
	}
	return &MovementSystem{states: states, dt: 1.0 / float64(tps)}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil || s.states == nil || s.states.Current() != navstack.Primary {
		return
	}
	input, ok := ecs.Resource[component.Input](w)
	if !ok {
		return
	}

	dir := direction(*input)
	if dir.Length() == 0 {
		return
	}
	dir = dir.Normalize()

	ecs.ForEach3(w,
		component.AvatarTagComponent.Kind(),
		component.AvatarComponent.Kind(),
		component.TransformComponent.Kind(),
		func(_ ecs.Entity, _ *component.AvatarTag, a *component.Avatar, t *component.Transform) {
			step := dir.Mult(a.Speed * s.dt)
			t.X += step.X
			t.Y += step.Y
		})
}

func direction(in component.Input) cp.Vector {
	var v cp.Vector
	if in.Left {
		v.X--
	}
	if in.Right {
		v.X++
	}
	if in.Up {
		v.Y--
	}
	if in.Down {
		v.Y++
	}
	return v
}
