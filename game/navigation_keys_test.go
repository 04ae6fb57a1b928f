package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/navstack"
)

var navKeys = []struct {
	name string
	in   component.Input
}{
	{"M", component.Input{TogglePause: true}},
	{"Tab", component.Input{ToggleMenu: true}},
	{"O", component.Input{ToggleSettings: true}},
	{"E", component.Input{Interact: true}},
}

// navConfig identifies a navigation configuration by the current state, the
// suspended states and the origin of the current level.
func navConfig(s *Session) string {
	nav := s.Navigation()
	origin, ok := nav.Origin()
	if !ok {
		return fmt.Sprintf("%s %v", nav.Current(), nav.Stack())
	}
	return fmt.Sprintf("%s %v via %s", nav.Current(), nav.Stack(), origin)
}

func keyNames(path []int) string {
	names := make([]string, 0, len(path))
	for _, k := range path {
		names = append(names, navKeys[k].name)
	}
	return strings.Join(names, ",")
}

func TestSessionMenuOverSettingsLeadsBack(t *testing.T) {
	s := newSession(t)

	steps := []struct {
		key   string
		in    component.Input
		want  navstack.State
		depth int
	}{
		{"M", component.Input{TogglePause: true}, navstack.Paused, 1},
		{"O", component.Input{ToggleSettings: true}, navstack.Settings, 2},
		{"Tab", component.Input{ToggleMenu: true}, navstack.MainMenu, 2},
		{"Tab", component.Input{ToggleMenu: true}, navstack.Settings, 2},
		{"O", component.Input{ToggleSettings: true}, navstack.Paused, 1},
		{"M", component.Input{TogglePause: true}, navstack.Primary, 0},
	}
	for i, st := range steps {
		s.Step(st.in)
		if s.Current() != st.want || s.Navigation().Depth() != st.depth {
			t.Fatalf("step %d %s: current %s depth %d, want %s depth %d",
				i, st.key, s.Current(), s.Navigation().Depth(), st.want, st.depth)
		}
	}
	if len(s.Overlays()) != 0 {
		t.Fatalf("overlays left behind: %+v", s.Overlays())
	}
	if len(s.Diagnostics().Rejected) != 0 {
		t.Fatalf("unexpected rejections: %v", s.Diagnostics().Rejected)
	}
}

// Every configuration reachable by keys must lead back to gameplay by keys.
func TestSessionKeysAlwaysReachPrimary(t *testing.T) {
	replay := func(path []int) *Session {
		s := newSession(t)
		walk(t, s, component.Input{Right: true}, 120, near("Alex"))
		for _, k := range path {
			s.Step(navKeys[k].in)
		}
		return s
	}

	home := navConfig(replay(nil))
	paths := map[string][]int{home: nil}
	edges := make(map[string][]string)
	queue := []string{home}
	for len(queue) > 0 {
		from := queue[0]
		queue = queue[1:]
		if len(paths) > 64 {
			t.Fatalf("key walk did not converge: %d configurations", len(paths))
		}
		for k := range navKeys {
			path := append(append([]int(nil), paths[from]...), k)
			to := navConfig(replay(path))
			edges[from] = append(edges[from], to)
			if _, seen := paths[to]; !seen {
				paths[to] = path
				queue = append(queue, to)
			}
		}
	}

	// Walk the edges backwards from home.
	reverse := make(map[string][]string)
	for from, tos := range edges {
		for _, to := range tos {
			reverse[to] = append(reverse[to], from)
		}
	}
	back := map[string]bool{home: true}
	stack := []string{home}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, from := range reverse[n] {
			if !back[from] {
				back[from] = true
				stack = append(stack, from)
			}
		}
	}

	for cfg, path := range paths {
		if !back[cfg] {
			t.Fatalf("no keys lead back to primary from %q (reached by %s)", cfg, keyNames(path))
		}
	}
	for _, want := range []navstack.State{navstack.Paused, navstack.Dialog, navstack.MainMenu, navstack.Settings} {
		found := false
		for cfg := range paths {
			if strings.HasPrefix(cfg, want.String()+" ") {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("%s never reached by keys", want)
		}
	}
}
