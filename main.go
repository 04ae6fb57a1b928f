package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/npcstack/common"
	"github.com/milk9111/npcstack/config"
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

	session, err := game.New(game.Options{
		Context: ctx,
		Strict:  cfg.Strict,
		TPS:     cfg.TPS,
		Tracer:  tracer,
	})
	if err != nil {
		log.Fatal(err)
	}

	var watcher *prefabs.Watcher
	if cfg.Watch {
		dirs := []string{cfg.Prefabs}
		if scripts := filepath.Join(cfg.Prefabs, "scripts"); isDir(scripts) {
			dirs = append(dirs, scripts)
		}
		watcher, err = prefabs.NewWatcher(200*time.Millisecond, dirs...)
		if err != nil {
			log.Printf("prefabs: watch %s: %v", cfg.Prefabs, err)
		} else {
			defer watcher.Close()
		}
	}

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("npcstack")

	if err := ebiten.RunGame(NewGame(session, watcher, cfg.Debug)); err != nil {
		log.Fatal(err)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
