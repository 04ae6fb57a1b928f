package system

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/navstack"
)

func newNavigation(t *testing.T) (*screenHarness, *NavigationSystem, *tracetest.SpanRecorder) {
	t.Helper()
	h := newScreenHarness(t)
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return h, NewNavigationSystem(context.Background(), h.nav, tp.Tracer("test")), rec
}

func press(s *NavigationSystem, w *ecs.World, in component.Input) {
	ecs.SetResource(w, &in)
	s.Update(w)
}

func TestNavigationKeys(t *testing.T) {
	h, nav, _ := newNavigation(t)
	d := diagnostics(h.w)
	d.Strict = false

	steps := []struct {
		name  string
		input component.Input
		want  navstack.State
		depth int
	}{
		{"pause", component.Input{TogglePause: true}, navstack.Paused, 1},
		{"menu", component.Input{ToggleMenu: true}, navstack.MainMenu, 1},
		{"settings", component.Input{ToggleSettings: true}, navstack.Settings, 2},
		{"close settings", component.Input{ToggleSettings: true}, navstack.MainMenu, 1},
		{"pause from menu is rejected", component.Input{TogglePause: true}, navstack.MainMenu, 1},
		{"back to pause", component.Input{ToggleMenu: true}, navstack.Paused, 1},
		{"resume", component.Input{TogglePause: true}, navstack.Primary, 0},
		{"menu from primary is rejected", component.Input{ToggleMenu: true}, navstack.Primary, 0},
		{"priority", component.Input{TogglePause: true, ToggleSettings: true, Interact: true}, navstack.Paused, 1},
		{"resume again", component.Input{TogglePause: true}, navstack.Primary, 0},
	}
	for _, s := range steps {
		press(nav, h.w, s.input)
		if got := h.nav.Current(); got != s.want || h.nav.Depth() != s.depth {
			t.Fatalf("%s: current %s depth %d, want %s depth %d", s.name, got, h.nav.Depth(), s.want, s.depth)
		}
	}
	if len(d.Rejected) != 2 {
		t.Fatalf("expected two rejected requests, got %v", d.Rejected)
	}
}

func TestNavigationMenuReturnsToOrigin(t *testing.T) {
	h, nav, _ := newNavigation(t)

	steps := []struct {
		name  string
		input component.Input
		want  navstack.State
		depth int
	}{
		{"pause", component.Input{TogglePause: true}, navstack.Paused, 1},
		{"settings", component.Input{ToggleSettings: true}, navstack.Settings, 2},
		{"menu over settings", component.Input{ToggleMenu: true}, navstack.MainMenu, 2},
		{"back to settings", component.Input{ToggleMenu: true}, navstack.Settings, 2},
		{"close settings", component.Input{ToggleSettings: true}, navstack.Paused, 1},
		{"resume", component.Input{TogglePause: true}, navstack.Primary, 0},
	}
	for _, s := range steps {
		press(nav, h.w, s.input)
		if got := h.nav.Current(); got != s.want || h.nav.Depth() != s.depth {
			t.Fatalf("%s: current %s depth %d, want %s depth %d", s.name, got, h.nav.Depth(), s.want, s.depth)
		}
	}
	if got := diagnostics(h.w).Rejected; len(got) != 0 {
		t.Fatalf("unexpected rejections: %v", got)
	}
}

func TestNavigationInteract(t *testing.T) {
	h, nav, _ := newNavigation(t)
	alex := h.npc("Alex")

	press(nav, h.w, component.Input{Interact: true})
	if h.nav.Current() != navstack.Primary {
		t.Fatalf("dialog opened with nobody in range")
	}
	if len(diagnostics(h.w).Rejected) != 0 {
		t.Fatalf("interact without a candidate should not be a request")
	}

	proximityRecords(h.w).Observe(alex, 50, 150)
	_ = candidates(h.w).Push(alex)
	press(nav, h.w, component.Input{Interact: true})
	if h.nav.Current() != navstack.Dialog {
		t.Fatalf("dialog not opened, current %s", h.nav.Current())
	}
	subject, ok := ecs.Resource[DialogSubject](h.w)
	if !ok || subject.Entity != alex || subject.Name != "Alex" {
		t.Fatalf("dialog subject = %+v", subject)
	}

	press(nav, h.w, component.Input{Interact: true})
	if h.nav.Current() != navstack.Primary {
		t.Fatalf("dialog not closed, current %s", h.nav.Current())
	}
}

func TestNavigationStaleCandidate(t *testing.T) {
	h, nav, _ := newNavigation(t)
	diagnostics(h.w).Strict = false
	alex := h.npc("Alex")
	_ = candidates(h.w).Push(alex)
	ecs.DestroyEntity(h.w, alex)

	press(nav, h.w, component.Input{Interact: true})
	if h.nav.Current() != navstack.Primary {
		t.Fatalf("dialog opened for a dead entity")
	}
	if candidates(h.w).HasAny() {
		t.Fatalf("dead candidate kept")
	}
	if len(diagnostics(h.w).Violations) != 1 {
		t.Fatalf("expected one violation, got %v", diagnostics(h.w).Violations)
	}
}

func TestNavigationSpans(t *testing.T) {
	h, nav, rec := newNavigation(t)
	diagnostics(h.w).Strict = false

	_ = nav.Apply(h.w, navstack.Push(navstack.Paused))
	_ = nav.Apply(h.w, navstack.Push(navstack.MainMenu))
	_ = nav.Apply(h.w, navstack.Pop())

	spans := rec.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}

	want := []struct {
		name     string
		from     string
		target   string
		accepted bool
	}{
		{"navigation.push", "primary", "paused", true},
		{"navigation.push", "paused", "main-menu", false},
		{"navigation.pop", "paused", "paused", true},
	}
	for i, w := range want {
		s := spans[i]
		if s.Name() != w.name {
			t.Fatalf("span %d name = %q, want %q", i, s.Name(), w.name)
		}
		attrs := make(map[attribute.Key]attribute.Value)
		for _, kv := range s.Attributes() {
			attrs[kv.Key] = kv.Value
		}
		if attrs["from"].AsString() != w.from || attrs["target"].AsString() != w.target || attrs["accepted"].AsBool() != w.accepted {
			t.Fatalf("span %d attributes = %v", i, s.Attributes())
		}
	}
}
