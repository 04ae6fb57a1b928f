package navstack

import (
	"fmt"
	"sort"
)

// Rule permits one operation from one source state. Pop rules carry their
// source state as Target.
type Rule struct {
	From   State
	Op     Op
	Target State
}

func (r Rule) normalized() Rule {
	if r.Op == OpPop {
		r.Target = r.From
	}
	return r
}

func (r Rule) String() string {
	if r.Op == OpPop {
		return fmt.Sprintf("%s: pop", r.From)
	}
	return fmt.Sprintf("%s: %s -> %s", r.From, r.Op, r.Target)
}

// Table is the explicit set of legal transitions. Anything not listed is
// illegal.
type Table struct {
	rules map[Rule]struct{}
}

// NewTable validates and indexes rules.
func NewTable(rules ...Rule) (*Table, error) {
	t := &Table{rules: make(map[Rule]struct{}, len(rules))}
	for _, r := range rules {
		if !r.From.Valid() || !r.Target.Valid() {
			return nil, fmt.Errorf("navstack: rule %v: invalid state", r)
		}
		switch r.Op {
		case OpPush, OpReplace:
			if r.From == r.Target {
				return nil, fmt.Errorf("navstack: rule %v: target equals source", r)
			}
		case OpPop:
		default:
			return nil, fmt.Errorf("navstack: rule %v: op %s cannot appear in a table", r, r.Op)
		}
		t.rules[r.normalized()] = struct{}{}
	}
	return t, nil
}

// DefaultTable is the built-in transition graph:
//
//	push:    primary, dialog -> paused; primary -> dialog; main-menu, paused -> settings
//	pop:     paused, dialog, settings
//	replace: paused <-> main-menu; settings <-> main-menu
func DefaultTable() *Table {
	t, err := NewTable(DefaultRules()...)
	if err != nil {
		panic(err)
	}
	return t
}

func DefaultRules() []Rule {
	return []Rule{
		{From: Primary, Op: OpPush, Target: Paused},
		{From: Dialog, Op: OpPush, Target: Paused},
		{From: Primary, Op: OpPush, Target: Dialog},
		{From: MainMenu, Op: OpPush, Target: Settings},
		{From: Paused, Op: OpPush, Target: Settings},

		{From: Paused, Op: OpPop},
		{From: Dialog, Op: OpPop},
		{From: Settings, Op: OpPop},

		{From: Paused, Op: OpReplace, Target: MainMenu},
		{From: MainMenu, Op: OpReplace, Target: Paused},
		{From: Settings, Op: OpReplace, Target: MainMenu},
		{From: MainMenu, Op: OpReplace, Target: Settings},
	}
}

// Allows reports whether the table lists req from the given state.
func (t *Table) Allows(from State, req Request) bool {
	if t == nil {
		return false
	}
	_, ok := t.rules[Rule{From: from, Op: req.Op, Target: req.Target}.normalized()]
	return ok
}

// Rules returns the table sorted by source, op and target.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, 0, len(t.rules))
	for r := range t.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Op != b.Op {
			return a.Op < b.Op
		}
		return a.Target < b.Target
	})
	return out
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Equal reports whether both tables permit exactly the same transitions.
func (t *Table) Equal(o *Table) bool {
	if t.Len() != o.Len() {
		return false
	}
	if t == nil || o == nil {
		return true
	}
	for r := range t.rules {
		if _, ok := o.rules[r]; !ok {
			return false
		}
	}
	return true
}
