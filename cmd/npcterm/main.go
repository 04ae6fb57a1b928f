// Command npcterm runs the npc session in a terminal.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/npcstack/config"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/game"
	"github.com/milk9111/npcstack/prefabs"
	"github.com/milk9111/npcstack/telemetry"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	prefabs.SetDir(cfg.Prefabs)

	ctx := context.Background()
	tracer := telemetry.NoopTracer()
	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("telemetry: setup failed, continuing without: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("telemetry: shutdown: %v", err)
				}
			}()
			tracer = telemetry.Tracer("navigation")
		}
	}

	session, err := game.New(game.Options{Context: ctx, Strict: cfg.Strict, TPS: cfg.TPS, Tracer: tracer})
	if err != nil {
		log.Fatal(err)
	}

	watcher := watchPrefabs(cfg)
	if watcher != nil {
		defer watcher.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))

	run(session, screen, watcher, time.Second/time.Duration(cfg.TPS))
}

// run steps the session once per tick with the keys seen since the last
// tick. Terminals report no key releases, so a direction moves the avatar
// for one tick per key event. Prefab edits are applied before each step.
func run(session *game.Session, screen tcell.Screen, watcher *prefabs.Watcher, tick time.Duration) {
	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	term := NewTerminal(screen)
	var in component.Input
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !Key(ev.Key(), ev.Rune(), &in) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			watcher = applyChanges(session, watcher)
			session.Step(in)
			in = component.Input{}
			term.Draw(session)
		}
	}
}
