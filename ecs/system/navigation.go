package system

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/ecs/component"
	"github.com/milk9111/npcstack/navstack"
)

// DialogSubject is the character a dialog was opened for. It is captured
// before the push so the dialog does not depend on the candidate set, which
// is cleared when the primary screen is suspended.
type DialogSubject struct {
	Entity ecs.Entity
	Name   string
	Script string
}

// NavigationSystem turns the tick's input edges into at most one navigation
// request. Priority when several edges fire: pause, menu, settings,
// interact.
type NavigationSystem struct {
	ctx    context.Context
	nav    *navstack.Controller
	tracer trace.Tracer
}

func NewNavigationSystem(ctx context.Context, nav *navstack.Controller, tracer trace.Tracer) *NavigationSystem {
	if ctx == nil {
		ctx = context.Background()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("npcstack/noop")
	}
	return &NavigationSystem{ctx: ctx, nav: nav, tracer: tracer}
}

func (s *NavigationSystem) Update(w *ecs.World) {
	if w == nil || s.nav == nil {
		return
	}
	input, ok := ecs.Resource[component.Input](w)
	if !ok || !input.Triggered() {
		return
	}

	req, ok := s.request(w, *input)
	if !ok {
		return
	}
	s.Apply(w, req)
}

func (s *NavigationSystem) request(w *ecs.World, in component.Input) (navstack.Request, bool) {
	current := s.nav.Current()
	switch {
	case in.TogglePause:
		if current == navstack.Paused {
			return navstack.Pop(), true
		}
		return navstack.Push(navstack.Paused), true
	case in.ToggleMenu:
		if current == navstack.MainMenu {
			// Go back to whatever the menu replaced on this level.
			if origin, ok := s.nav.Origin(); ok && origin != navstack.MainMenu {
				return navstack.Replace(origin), true
			}
			return navstack.Replace(navstack.Paused), true
		}
		return navstack.Replace(navstack.MainMenu), true
	case in.ToggleSettings:
		if current == navstack.Settings {
			return navstack.Pop(), true
		}
		return navstack.Push(navstack.Settings), true
	case in.Interact:
		if current == navstack.Dialog {
			return navstack.Pop(), true
		}
		if current != navstack.Primary {
			return navstack.Request{}, false
		}
		if !s.captureSubject(w) {
			return navstack.Request{}, false
		}
		return navstack.Push(navstack.Dialog), true
	}
	return navstack.Request{}, false
}

// captureSubject stores the most recent candidate as the dialog subject. It
// reports false when nobody is in range.
func (s *NavigationSystem) captureSubject(w *ecs.World) bool {
	set := candidates(w)
	e, ok := set.MostRecent()
	if !ok {
		return false
	}
	if !ecs.IsAlive(w, e) {
		diagnostics(w).Violation("dialog candidate %v is not alive", e)
		if err := set.Remove(e); err != nil {
			diagnostics(w).Violation("dialog candidate %v: %v", e, err)
		}
		return false
	}

	subject := &DialogSubject{Entity: e}
	if name, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok {
		subject.Name = name.Value
	}
	if d, ok := ecs.Get(w, e, component.DialogueComponent.Kind()); ok {
		subject.Script = d.Script
	}
	ecs.SetResource(w, subject)
	return true
}

// Apply submits req to the controller inside a span. Rejections are
// recorded in Diagnostics and returned.
func (s *NavigationSystem) Apply(w *ecs.World, req navstack.Request) error {
	from := s.nav.Current()
	target := req.Target
	if req.Op == navstack.OpPop {
		target = from
	}
	_, span := s.tracer.Start(s.ctx, "navigation."+req.Op.String())
	defer span.End()

	span.SetAttributes(
		attribute.String("from", from.String()),
		attribute.String("target", target.String()),
	)

	err := s.nav.Apply(req)
	span.SetAttributes(
		attribute.Bool("accepted", err == nil),
		attribute.Int("depth", s.nav.Depth()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if req.Op == navstack.OpPush && req.Target == navstack.Dialog {
			ecs.RemoveResource[DialogSubject](w)
		}
		diagnostics(w).Reject(req, err)
		return err
	}
	return nil
}
