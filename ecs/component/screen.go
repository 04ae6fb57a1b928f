package component

import (
	"image/color"

	"github.com/milk9111/npcstack/navstack"
)

// ScreenMember ties an entity's lifetime to one screen state: it is spawned
// when the state is entered and despawned when the state is exited.
type ScreenMember struct {
	Screen navstack.State
}

var ScreenMemberComponent = NewComponent[ScreenMember]()

// ScreenText is the content of an overlay panel.
type ScreenText struct {
	Title string
	Lines []string
	// Layer orders overlays; higher draws on top.
	Layer int
	Tint  color.NRGBA
}

var ScreenTextComponent = NewComponent[ScreenText]()
