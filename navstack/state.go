// Package navstack is the navigation state-stack controller: it owns the
// current screen state, the stack of suspended states beneath it, and the
// table of legal transitions between them.
package navstack

import "fmt"

// State is one screen mode.
type State int

const (
	Primary State = iota
	Paused
	Dialog
	MainMenu
	Settings
)

var stateNames = [...]string{
	Primary:  "primary",
	Paused:   "paused",
	Dialog:   "dialog",
	MainMenu: "main-menu",
	Settings: "settings",
}

// States lists every state in declaration order.
func States() []State {
	return []State{Primary, Paused, Dialog, MainMenu, Settings}
}

func (s State) Valid() bool {
	return s >= Primary && s <= Settings
}

func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState accepts the names returned by String.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("navstack: unknown state %q", name)
}
