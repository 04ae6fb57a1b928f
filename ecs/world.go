package ecs

import (
	"reflect"

	"github.com/milk9111/npcstack/ecs/component"
)

// ErrEntityNotAlive is returned when a component is attached to a dead or
// stale handle.
var ErrEntityNotAlive = component.ErrEntityNotAlive

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, resources and event logs.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]componentStore
	resources map[reflect.Type]any
	logs      []tickAdvancer
	tick      uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]componentStore),
		resources: make(map[reflect.Type]any),
	}
}

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// EndTick closes the current tick: event logs drop everything older than
// the tick that just ended.
func (w *World) EndTick() {
	if w == nil {
		return
	}
	for _, l := range w.logs {
		l.advance()
	}
	w.tick++
}

func (w *World) ensure() {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	if w.resources == nil {
		w.resources = make(map[reflect.Type]any)
	}
}
