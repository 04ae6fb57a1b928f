package component

// Avatar holds movement tuning for the player-controlled entity.
type Avatar struct {
	// Speed is in world units per second.
	Speed float64
}

var AvatarComponent = NewComponent[Avatar]()
