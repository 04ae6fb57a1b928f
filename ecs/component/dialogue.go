package component

// Dialogue carries an optional per-character greeting script. An empty
// Script falls back to the dialog screen's script.
type Dialogue struct {
	Script string
}

var DialogueComponent = NewComponent[Dialogue]()
