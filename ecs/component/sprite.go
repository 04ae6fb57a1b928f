package component

import "image/color"

// Sprite is a filled disc. Frontends decide how to draw it.
type Sprite struct {
	Radius float64
	Color  color.NRGBA
	Glyph  rune
}

var SpriteComponent = NewComponent[Sprite]()
