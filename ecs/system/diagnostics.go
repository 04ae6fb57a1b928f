package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/npcstack/ecs"
	"github.com/milk9111/npcstack/navstack"
)

var ErrAvatarCardinality = errors.New("system: expected exactly one avatar")

// Diagnostics collects invariant violations and rejected navigation
// requests. With Strict set a violation panics instead of being logged.
type Diagnostics struct {
	Strict     bool
	Violations []string
	Rejected   []navstack.Request
}

// Violation records a broken invariant.
func (d *Diagnostics) Violation(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if d == nil {
		log.Printf("invariant violated: %s", msg)
		return
	}
	d.Violations = append(d.Violations, msg)
	if d.Strict {
		panic("invariant violated: " + msg)
	}
	log.Printf("invariant violated: %s", msg)
}

// Reject records a navigation request the controller refused.
func (d *Diagnostics) Reject(req navstack.Request, err error) {
	if d != nil {
		d.Rejected = append(d.Rejected, req)
	}
	log.Printf("navigation: %v", err)
}

func (d *Diagnostics) Reset() {
	strict := d.Strict
	*d = Diagnostics{Strict: strict}
}

func diagnostics(w *ecs.World) *Diagnostics {
	if d, ok := ecs.Resource[Diagnostics](w); ok {
		return d
	}
	d := &Diagnostics{}
	ecs.SetResource(w, d)
	return d
}

// StateSource reports the current navigation state.
type StateSource interface {
	Current() navstack.State
}
