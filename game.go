package main

import (
	"fmt"
	"log"
	"slices"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/npcstack/common"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/game"
	"github.com/milk9111/npcstack/prefabs"
)

type Game struct {
	session *game.Session
	watcher *prefabs.Watcher
	camera  common.Camera
	debug   bool

	ui       *ebitenui.UI
	overlays []component.ScreenText
}

func NewGame(session *game.Session, watcher *prefabs.Watcher, debug bool) *Game {
	g := &Game{
		session: session,
		watcher: watcher,
		camera:  common.Camera{Smoothing: 0.15},
		debug:   debug,
	}
	if _, pos, ok := session.Avatar(); ok {
		g.camera.X, g.camera.Y = pos.X, pos.Y
	}
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.applyPrefabChanges()

	from := g.session.Current()
	g.session.Step(pollInput())
	if g.debug && g.session.Current() != from {
		log.Printf("navigation: %s -> %s (stack %v)", from, g.session.Current(), g.session.Navigation().Stack())
	}

	if _, pos, ok := g.session.Avatar(); ok {
		g.camera.Follow(pos.X, pos.Y)
	}

	overlays := g.session.Overlays()
	if !sameOverlays(overlays, g.overlays) {
		g.overlays = overlays
		g.ui = nil
		if len(overlays) > 0 {
			g.ui = NewOverlayUI(overlays)
		}
	}
	if g.ui != nil {
		g.ui.Update()
	}
	return nil
}

// applyPrefabChanges drains pending watcher events without blocking.
func (g *Game) applyPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.session.HandleChange(c); err != nil {
				log.Printf("prefabs: %v", err)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.camera, g.session.Drawables(), g.debug)
	if g.ui != nil {
		g.ui.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.1f  state: %s  stack: %v  near: %d",
			ebiten.ActualTPS(), g.session.Current(), g.session.Navigation().Stack(), g.session.Candidates().Len()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func sameOverlays(a, b []component.ScreenText) bool {
	return slices.EqualFunc(a, b, func(x, y component.ScreenText) bool {
		return x.Title == y.Title && x.Layer == y.Layer && x.Tint == y.Tint && slices.Equal(x.Lines, y.Lines)
	})
}
