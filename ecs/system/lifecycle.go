package system

import (
	"log"

	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/entity"
	"github.com/milk9111/npcstack/navstack"
	"github.com/milk9111/npcstack/prefabs"
)

// WorldSpawner populates the gameplay world. It runs the first time the
// primary screen is entered.
type WorldSpawner func(w *ecs.World) error

// ScreenLifecycle binds spawn and despawn side effects to navigation states.
type ScreenLifecycle struct {
	world   *ecs.World
	screens prefabs.ScreensSpec
	scripts *DialogScripts
	spawn   WorldSpawner
	spawned bool
}

func NewScreenLifecycle(w *ecs.World, screens prefabs.ScreensSpec, scripts *DialogScripts, spawn WorldSpawner) *ScreenLifecycle {
	if scripts == nil {
		scripts = NewDialogScripts()
	}
	return &ScreenLifecycle{world: w, screens: screens, scripts: scripts, spawn: spawn}
}

// Bind registers the hooks on nav.
func (l *ScreenLifecycle) Bind(nav *navstack.Controller) {
	nav.OnEnter(navstack.Primary, func(navstack.State) {
		ResetProximity(l.world)
		if l.spawned || l.spawn == nil {
			return
		}
		if err := l.spawn(l.world); err != nil {
			log.Printf("lifecycle: spawn world: %v", err)
			return
		}
		l.spawned = true
	})
	// Candidates cannot outlive a suspension of the primary screen; entities
	// may be despawned while it is not watching.
	nav.OnPause(navstack.Primary, func(navstack.State) { ResetProximity(l.world) })
	nav.OnExit(navstack.Primary, func(navstack.State) { ResetProximity(l.world) })

	for _, s := range navstack.States() {
		if s == navstack.Primary {
			continue
		}
		nav.OnEnter(s, func(state navstack.State) { l.enter(nav, state) })
		nav.OnExit(s, func(state navstack.State) { l.exit(state) })
	}
}

func (l *ScreenLifecycle) enter(nav *navstack.Controller, state navstack.State) {
	spec := l.screens[state.String()]

	var extra []string
	if state == navstack.Dialog {
		extra = append(extra, l.greeting(spec))
	}
	if _, err := entity.BuildScreen(l.world, state, spec, nav.Depth(), extra...); err != nil {
		log.Printf("lifecycle: spawn %s: %v", state, err)
	}
}

func (l *ScreenLifecycle) exit(state navstack.State) {
	entity.DespawnScreen(l.world, state)
	if state == navstack.Dialog {
		ecs.RemoveResource[DialogSubject](l.world)
	}
}

func (l *ScreenLifecycle) greeting(spec prefabs.ScreenSpec) string {
	subject, ok := ecs.Resource[DialogSubject](l.world)
	if !ok {
		diagnostics(l.world).Violation("dialog opened without a subject")
		return ""
	}

	script := subject.Script
	if script == "" {
		script = spec.Script
	}
	line, err := l.scripts.Render(script, subject.Name)
	if err != nil {
		log.Printf("lifecycle: %v", err)
		return Greeting(subject.Name)
	}
	return line
}

// SetScreens swaps the overlay content used by later spawns.
func (l *ScreenLifecycle) SetScreens(screens prefabs.ScreensSpec) {
	l.screens = screens
}
