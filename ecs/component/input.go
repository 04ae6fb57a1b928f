package component

// Input is the per-tick input state, written by a frontend before each tick.
// Held directions move the avatar; the remaining fields are edges that are
// true only on the tick the key went down.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	TogglePause    bool
	ToggleMenu     bool
	ToggleSettings bool
	Interact       bool
}

// Triggered reports whether any navigation edge is set.
func (i Input) Triggered() bool {
	return i.TogglePause || i.ToggleMenu || i.ToggleSettings || i.Interact
}
