package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/milk9111/npcstack/config"
	"github.com/milk9111/npcstack/game"
	"github.com/milk9111/npcstack/prefabs"
)

// watchPrefabs watches the prefab directory and its scripts. It returns nil
// when watching is off or could not start.
func watchPrefabs(cfg config.Config) *prefabs.Watcher {
	if !cfg.Watch {
		return nil
	}
	dirs := []string{cfg.Prefabs}
	if scripts := filepath.Join(cfg.Prefabs, "scripts"); isDir(scripts) {
		dirs = append(dirs, scripts)
	}
	w, err := prefabs.NewWatcher(200*time.Millisecond, dirs...)
	if err != nil {
		log.Printf("prefabs: watch %s: %v", cfg.Prefabs, err)
		return nil
	}
	return w
}

// applyChanges drains pending watcher events without blocking. It returns
// nil once the watcher has shut down.
func applyChanges(session *game.Session, w *prefabs.Watcher) *prefabs.Watcher {
	if w == nil {
		return nil
	}
	for {
		select {
		case c, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if err := session.HandleChange(c); err != nil {
				log.Printf("prefabs: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			return w
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
