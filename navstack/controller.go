package navstack

// Hook is a lifecycle callback bound to one state.
type Hook func(State)

// frame is one level of the navigation stack. origin is the state that was
// pushed to open the level; the base level has none.
type frame struct {
	state  State
	origin State
	pushed bool
}

// Controller is the single source of truth for which screen is current.
//
// Lifecycle hooks run exactly once per accepted transition:
//   - push: OnPause(current), then OnEnter(target) after target is current
//   - pop: OnExit(current), then OnResume(restored) after it is current
//   - replace: OnExit(current), OnEnter(target), then target becomes current
//   - set-initial: OnEnter(target) after target is current
//
// A pop resumes the restored state; it never runs OnEnter for it.
type Controller struct {
	table       *Table
	top         frame
	stack       []frame
	initialized bool
	busy        bool

	onEnter  map[State][]Hook
	onExit   map[State][]Hook
	onPause  map[State][]Hook
	onResume map[State][]Hook
}

// NewController builds a controller over table, or DefaultTable when nil.
func NewController(table *Table) *Controller {
	if table == nil {
		table = DefaultTable()
	}
	return &Controller{
		table:    table,
		onEnter:  make(map[State][]Hook),
		onExit:   make(map[State][]Hook),
		onPause:  make(map[State][]Hook),
		onResume: make(map[State][]Hook),
	}
}

func (c *Controller) OnEnter(s State, fn Hook)  { c.register(c.onEnter, s, fn) }
func (c *Controller) OnExit(s State, fn Hook)   { c.register(c.onExit, s, fn) }
func (c *Controller) OnPause(s State, fn Hook)  { c.register(c.onPause, s, fn) }
func (c *Controller) OnResume(s State, fn Hook) { c.register(c.onResume, s, fn) }

func (c *Controller) register(m map[State][]Hook, s State, fn Hook) {
	if fn == nil {
		return
	}
	m[s] = append(m[s], fn)
}

func (c *Controller) run(m map[State][]Hook, s State) {
	for _, fn := range m[s] {
		fn(s)
	}
}

func (c *Controller) Table() *Table {
	return c.table
}

// Current returns the current state. Before SetInitial it is Primary.
func (c *Controller) Current() State {
	return c.top.state
}

func (c *Controller) Initialized() bool {
	return c.initialized
}

// Depth is the number of suspended states.
func (c *Controller) Depth() int {
	return len(c.stack)
}

// Stack returns the suspended states, bottom first.
func (c *Controller) Stack() []State {
	out := make([]State, 0, len(c.stack))
	for _, f := range c.stack {
		out = append(out, f.state)
	}
	return out
}

// Origin returns the state that was pushed to open the current level. It
// reports false on the base level.
func (c *Controller) Origin() (State, bool) {
	return c.top.origin, c.top.pushed
}

// Suspended reports whether s is on the stack beneath the current state.
func (c *Controller) Suspended(s State) bool {
	for _, f := range c.stack {
		if f.state == s {
			return true
		}
	}
	return false
}

// Check reports whether req would be accepted, without side effects.
func (c *Controller) Check(req Request) error {
	if req.Op == OpSetInitial {
		if c.initialized {
			return ErrAlreadyInitialized
		}
		if !req.Target.Valid() {
			return c.reject(req, "unknown target")
		}
		return nil
	}
	if !c.initialized {
		return ErrNotInitialized
	}
	if c.busy {
		return c.reject(req, "another transition is in progress")
	}

	switch req.Op {
	case OpPush:
		if req.Target == c.top.state {
			return c.reject(req, "already current")
		}
		if c.Suspended(req.Target) {
			return c.reject(req, "already suspended on the stack")
		}
		if !c.table.Allows(c.top.state, req) {
			return c.reject(req, "not permitted by the transition table")
		}
	case OpPop:
		if len(c.stack) == 0 {
			return c.reject(req, "stack is empty")
		}
		if !c.table.Allows(c.top.state, req) {
			return c.reject(req, "not permitted by the transition table")
		}
		if !c.top.pushed || c.top.origin != c.top.state {
			return c.reject(req, "current state was reached by replace")
		}
	case OpReplace:
		if req.Target == c.top.state {
			return c.reject(req, "already current")
		}
		if c.Suspended(req.Target) {
			return c.reject(req, "already suspended on the stack")
		}
		if !c.table.Allows(c.top.state, req) {
			return c.reject(req, "not permitted by the transition table")
		}
	default:
		return c.reject(req, "unknown op")
	}
	return nil
}

func (c *Controller) reject(req Request, reason string) error {
	return &TransitionError{From: c.top.state, Request: req, Reason: reason}
}

// Apply performs req or returns why it was rejected. A rejected request
// leaves the controller untouched.
func (c *Controller) Apply(req Request) error {
	if err := c.Check(req); err != nil {
		return err
	}

	c.busy = true
	defer func() { c.busy = false }()

	switch req.Op {
	case OpSetInitial:
		c.top = frame{state: req.Target}
		c.initialized = true
		c.run(c.onEnter, req.Target)
	case OpPush:
		prev := c.top.state
		c.run(c.onPause, prev)
		c.stack = append(c.stack, c.top)
		c.top = frame{state: req.Target, origin: req.Target, pushed: true}
		c.run(c.onEnter, req.Target)
	case OpPop:
		leaving := c.top.state
		c.run(c.onExit, leaving)
		last := len(c.stack) - 1
		c.top = c.stack[last]
		c.stack = c.stack[:last]
		c.run(c.onResume, c.top.state)
	case OpReplace:
		leaving := c.top.state
		c.run(c.onExit, leaving)
		c.run(c.onEnter, req.Target)
		c.top.state = req.Target
	}
	return nil
}

func (c *Controller) SetInitial(target State) error { return c.Apply(SetInitial(target)) }
func (c *Controller) Push(target State) error       { return c.Apply(Push(target)) }
func (c *Controller) Pop() error                    { return c.Apply(Pop()) }
func (c *Controller) Replace(target State) error    { return c.Apply(Replace(target)) }
