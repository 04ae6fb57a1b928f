package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/npcstack/ecs/component"
)

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// pollInput reads the keyboard. Navigation keys are edges.
func pollInput() component.Input {
	return component.Input{
		Up:    anyPressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Down:  anyPressed(ebiten.KeyS, ebiten.KeyArrowDown),
		Left:  anyPressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right: anyPressed(ebiten.KeyD, ebiten.KeyArrowRight),

		TogglePause:    inpututil.IsKeyJustPressed(ebiten.KeyM),
		ToggleMenu:     inpututil.IsKeyJustPressed(ebiten.KeyTab),
		ToggleSettings: inpututil.IsKeyJustPressed(ebiten.KeyO),
		Interact:       inpututil.IsKeyJustPressed(ebiten.KeyE),
	}
}
