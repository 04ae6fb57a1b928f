// Package game owns one play session: the world, the navigation controller
// and the ordered systems that advance them a tick at a time.
package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"go.opentelemetry.io/otel/trace"

	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/ecs/entity"
	"github.com/milk9111/npcstack/ecs/system"
	"github.com/milk9111/npcstack/navstack"
	"github.com/milk9111/npcstack/prefabs"
	"github.com/milk9111/npcstack/proximity"
)

type Options struct {
	Context context.Context
	// Strict turns invariant violations into panics.
	Strict bool
	TPS    int
	Tracer trace.Tracer
	// Table overrides transitions.yaml.
	Table *navstack.Table
	// Spawn overrides the avatar and npcs prefabs.
	Spawn system.WorldSpawner
}

type Session struct {
	world      *ecs.World
	nav        *navstack.Controller
	scheduler  *ecs.Scheduler
	navigation *system.NavigationSystem
	lifecycle  *system.ScreenLifecycle
	scripts    *system.DialogScripts
}

func New(opts Options) (*Session, error) {
	table := opts.Table
	if table == nil {
		loaded, err := prefabs.LoadTransitionTable()
		switch {
		case err == nil:
			table = loaded
		case errors.Is(err, fs.ErrNotExist):
			table = navstack.DefaultTable()
		default:
			return nil, fmt.Errorf("game: %w", err)
		}
	}
	screens, err := prefabs.LoadScreensSpec()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	spawn := opts.Spawn
	if spawn == nil {
		spawn = SpawnWorld
	}

	w := ecs.NewWorld()
	ecs.SetResource(w, &system.Diagnostics{Strict: opts.Strict})
	ecs.SetResource(w, &component.Input{})
	ecs.SetResource(w, proximity.NewRecords())
	ecs.SetResource(w, &proximity.Candidates{})

	nav := navstack.NewController(table)
	scripts := system.NewDialogScripts()
	lifecycle := system.NewScreenLifecycle(w, screens, scripts, spawn)
	lifecycle.Bind(nav)

	navigation := system.NewNavigationSystem(opts.Context, nav, opts.Tracer)
	s := &Session{
		world:      w,
		nav:        nav,
		navigation: navigation,
		lifecycle:  lifecycle,
		scripts:    scripts,
		scheduler: ecs.NewScheduler(
			system.NewProximityWatchSystem(nav),
			system.NewAwayFromSystem(),
			system.NewNextToSystem(),
			system.NewMovementSystem(nav, opts.TPS),
			navigation,
		),
	}

	if err := nav.SetInitial(navstack.Primary); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	return s, nil
}

// SpawnWorld builds the avatar and every NPC from prefabs.
func SpawnWorld(w *ecs.World) error {
	if _, err := entity.NewAvatar(w); err != nil {
		return err
	}
	_, err := entity.NewNPCs(w)
	return err
}

// Step runs one tick with in as the input state.
func (s *Session) Step(in component.Input) {
	*ecs.ResetResource[component.Input](s.world) = in
	s.scheduler.Update(s.world)
}

// Request submits a navigation request outside the input mapping.
func (s *Session) Request(req navstack.Request) error {
	return s.navigation.Apply(s.world, req)
}

// ReloadNPCs despawns every NPC and builds them again from npcs.yaml.
func (s *Session) ReloadNPCs() error {
	specs, err := prefabs.LoadNPCSpecs()
	if err != nil {
		return fmt.Errorf("game: reload npcs: %w", err)
	}
	removed := entity.DespawnNPCs(s.world)
	added, err := entity.BuildNPCs(s.world, specs)
	if err != nil {
		return fmt.Errorf("game: reload npcs: %w", err)
	}
	log.Printf("game: reloaded npcs (%d removed, %d spawned)", removed, len(added))
	return nil
}

// HandleChange applies a prefab edit reported by the watcher.
func (s *Session) HandleChange(c prefabs.Change) error {
	if c.Script() {
		s.scripts.Invalidate(c.Name)
		return nil
	}
	switch c.Name {
	case "npcs.yaml":
		return s.ReloadNPCs()
	case "screens.yaml":
		screens, err := prefabs.LoadScreensSpec()
		if err != nil {
			return fmt.Errorf("game: reload screens: %w", err)
		}
		s.lifecycle.SetScreens(screens)
	default:
		log.Printf("game: %s changed; restart to apply", c.Name)
	}
	return nil
}

func (s *Session) World() *ecs.World { return s.world }

func (s *Session) Navigation() *navstack.Controller { return s.nav }

func (s *Session) Current() navstack.State { return s.nav.Current() }

func (s *Session) Tick() uint64 { return s.world.Tick() }

func (s *Session) Diagnostics() *system.Diagnostics {
	d, _ := ecs.Resource[system.Diagnostics](s.world)
	return d
}

func (s *Session) Candidates() *proximity.Candidates {
	c, _ := ecs.Resource[proximity.Candidates](s.world)
	return c
}

func (s *Session) Records() *proximity.Records {
	r, _ := ecs.Resource[proximity.Records](s.world)
	return r
}

// Avatar returns the avatar entity and its position.
func (s *Session) Avatar() (ecs.Entity, component.Transform, bool) {
	e, ok := ecs.First(s.world, component.AvatarTagComponent.Kind())
	if !ok {
		return 0, component.Transform{}, false
	}
	t, ok := ecs.Get(s.world, e, component.TransformComponent.Kind())
	if !ok {
		return e, component.Transform{}, false
	}
	return e, *t, true
}

// NPC looks up a character by name.
func (s *Session) NPC(name string) (ecs.Entity, bool) {
	var found ecs.Entity
	ecs.ForEach2(s.world, component.NPCTagComponent.Kind(), component.NameComponent.Kind(), func(e ecs.Entity, _ *component.NPCTag, n *component.Name) {
		if n.Value == name && found == 0 {
			found = e
		}
	})
	return found, found != 0
}

// Overlays returns the open screen panels, lowest layer first.
func (s *Session) Overlays() []component.ScreenText {
	var out []component.ScreenText
	ecs.ForEach(s.world, component.ScreenTextComponent.Kind(), func(_ ecs.Entity, t *component.ScreenText) {
		out = append(out, *t)
	})
	sortOverlays(out)
	return out
}
