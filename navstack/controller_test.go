package navstack

import (
	"errors"
	"math/rand"
	"testing"
)

type hookLog struct {
	calls []string
}

func (l *hookLog) attach(c *Controller) {
	for _, s := range States() {
		c.OnEnter(s, func(s State) { l.calls = append(l.calls, "enter:"+s.String()) })
		c.OnExit(s, func(s State) { l.calls = append(l.calls, "exit:"+s.String()) })
		c.OnPause(s, func(s State) { l.calls = append(l.calls, "pause:"+s.String()) })
		c.OnResume(s, func(s State) { l.calls = append(l.calls, "resume:"+s.String()) })
	}
}

func (l *hookLog) take() []string {
	out := l.calls
	l.calls = nil
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newStarted(t *testing.T) (*Controller, *hookLog) {
	t.Helper()
	c := NewController(nil)
	log := &hookLog{}
	log.attach(c)
	if err := c.SetInitial(Primary); err != nil {
		t.Fatal(err)
	}
	log.take()
	return c, log
}

func TestSetInitial(t *testing.T) {
	c := NewController(nil)
	if err := c.Push(Paused); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	log := &hookLog{}
	log.attach(c)
	if err := c.SetInitial(Primary); err != nil {
		t.Fatal(err)
	}
	if got := log.take(); !equalStrings(got, []string{"enter:primary"}) {
		t.Fatalf("unexpected hooks %v", got)
	}
	if err := c.SetInitial(Paused); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
	if c.Current() != Primary || c.Depth() != 0 {
		t.Fatalf("second SetInitial must not change state")
	}
}

func TestPushPopHooks(t *testing.T) {
	c, log := newStarted(t)

	if err := c.Push(Paused); err != nil {
		t.Fatal(err)
	}
	if got := log.take(); !equalStrings(got, []string{"pause:primary", "enter:paused"}) {
		t.Fatalf("push hooks %v", got)
	}
	if c.Current() != Paused || c.Depth() != 1 {
		t.Fatalf("expected paused at depth 1, got %s at %d", c.Current(), c.Depth())
	}

	if err := c.Pop(); err != nil {
		t.Fatal(err)
	}
	// a pop resumes; it never re-enters the restored state
	if got := log.take(); !equalStrings(got, []string{"exit:paused", "resume:primary"}) {
		t.Fatalf("pop hooks %v", got)
	}
	if c.Current() != Primary || c.Depth() != 0 {
		t.Fatalf("expected primary at depth 0, got %s at %d", c.Current(), c.Depth())
	}
}

func TestPopFromPrimaryRejected(t *testing.T) {
	c, log := newStarted(t)
	err := c.Pop()
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	var terr *TransitionError
	if !errors.As(err, &terr) || terr.From != Primary || terr.Request.Op != OpPop {
		t.Fatalf("expected TransitionError from primary, got %#v", err)
	}
	if c.Current() != Primary || len(log.take()) != 0 {
		t.Fatalf("rejected pop must not change state or run hooks")
	}
}

func TestPausedToMainMenu(t *testing.T) {
	c, log := newStarted(t)
	if err := c.Push(Paused); err != nil {
		t.Fatal(err)
	}
	log.take()

	if err := c.Push(MainMenu); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("push main-menu from paused should be rejected, got %v", err)
	}
	if c.Current() != Paused || c.Depth() != 1 {
		t.Fatalf("rejected push changed state")
	}

	if err := c.Replace(MainMenu); err != nil {
		t.Fatal(err)
	}
	if got := log.take(); !equalStrings(got, []string{"exit:paused", "enter:main-menu"}) {
		t.Fatalf("replace hooks %v", got)
	}
	if c.Current() != MainMenu || c.Depth() != 1 {
		t.Fatalf("replace should keep depth 1, got %s at %d", c.Current(), c.Depth())
	}
}

func TestReplaceOrderSeesOldCurrent(t *testing.T) {
	c, _ := newStarted(t)
	if err := c.Push(Paused); err != nil {
		t.Fatal(err)
	}
	var during State = -1
	c.OnEnter(MainMenu, func(State) { during = c.Current() })
	if err := c.Replace(MainMenu); err != nil {
		t.Fatal(err)
	}
	if during != Paused {
		t.Fatalf("current should still be paused while main-menu enters, got %s", during)
	}
}

func TestPopAfterReplace(t *testing.T) {
	c, _ := newStarted(t)
	steps := []struct {
		req     Request
		wantErr bool
		current State
	}{
		{Push(Paused), false, Paused},
		{Replace(MainMenu), false, MainMenu},
		{Pop(), true, MainMenu},
		{Push(Settings), false, Settings},
		{Pop(), false, MainMenu},
		{Replace(Settings), false, Settings},
		{Pop(), true, Settings},
		{Replace(MainMenu), false, MainMenu},
		{Replace(Paused), false, Paused},
		{Pop(), false, Primary},
	}
	for i, s := range steps {
		err := c.Apply(s.req)
		if (err != nil) != s.wantErr {
			t.Fatalf("step %d %s: err=%v wantErr=%v", i, s.req, err, s.wantErr)
		}
		if c.Current() != s.current {
			t.Fatalf("step %d %s: current %s, want %s", i, s.req, c.Current(), s.current)
		}
	}
}

func TestReentrantAndStackedTargetsRejected(t *testing.T) {
	c, _ := newStarted(t)
	if err := c.Push(Paused); err != nil {
		t.Fatal(err)
	}
	if err := c.Push(Paused); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("re-entrant push should be rejected, got %v", err)
	}

	c2, _ := newStarted(t)
	for _, req := range []Request{Push(Paused), Replace(MainMenu), Push(Settings)} {
		if err := c2.Apply(req); err != nil {
			t.Fatalf("%s: %v", req, err)
		}
	}
	// main-menu is suspended beneath settings
	if err := c2.Replace(MainMenu); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("replace into a suspended state should be rejected, got %v", err)
	}
}

func TestTransitionFromHookRejected(t *testing.T) {
	c, _ := newStarted(t)
	var nested error
	c.OnEnter(Paused, func(State) { nested = c.Push(Settings) })
	if err := c.Push(Paused); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(nested, ErrIllegalTransition) {
		t.Fatalf("nested transition should be rejected, got %v", nested)
	}
	if c.Current() != Paused || c.Depth() != 1 {
		t.Fatalf("nested request leaked: %s at %d", c.Current(), c.Depth())
	}
}

// model replays the push/pop discipline independently of the controller.
type model struct {
	current State
	origin  State
	pushed  bool
	stack   []model
}

func TestRandomSequencesFollowStackLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var requests []Request
	for _, s := range States() {
		requests = append(requests, Push(s), Replace(s))
	}
	requests = append(requests, Pop())

	for run := 0; run < 50; run++ {
		c, _ := newStarted(t)
		m := model{current: Primary}
		for step := 0; step < 200; step++ {
			req := requests[rng.Intn(len(requests))]
			depth := c.Depth()
			err := c.Apply(req)
			if err != nil {
				if !errors.Is(err, ErrIllegalTransition) {
					t.Fatalf("unexpected error type %v", err)
				}
				if c.Depth() != depth || c.Current() != m.current {
					t.Fatalf("rejected %s changed state", req)
				}
				continue
			}
			switch req.Op {
			case OpPush:
				if c.Depth() != depth+1 {
					t.Fatalf("push changed depth by %d", c.Depth()-depth)
				}
				m.stack = append(m.stack, model{current: m.current, origin: m.origin, pushed: m.pushed})
				m.current, m.origin, m.pushed = req.Target, req.Target, true
			case OpPop:
				if c.Depth() != depth-1 {
					t.Fatalf("pop changed depth by %d", c.Depth()-depth)
				}
				if !m.pushed || m.origin != m.current {
					t.Fatalf("pop accepted from %s reached by replace", m.current)
				}
				last := m.stack[len(m.stack)-1]
				m.stack = m.stack[:len(m.stack)-1]
				m.current, m.origin, m.pushed = last.current, last.origin, last.pushed
			case OpReplace:
				if c.Depth() != depth {
					t.Fatalf("replace changed depth by %d", c.Depth()-depth)
				}
				m.current = req.Target
			}
			if c.Current() != m.current {
				t.Fatalf("controller at %s, model at %s", c.Current(), m.current)
			}
			for _, s := range c.Stack() {
				if s == c.Current() {
					t.Fatalf("stack %v contains current %s", c.Stack(), s)
				}
			}
			if c.Depth() > len(States())-1 {
				t.Fatalf("stack grew to %d", c.Depth())
			}
		}
	}
}

func TestOriginSurvivesReplace(t *testing.T) {
	c, _ := newStarted(t)
	if _, ok := c.Origin(); ok {
		t.Fatalf("base level has no origin")
	}
	steps := []struct {
		req    Request
		origin State
	}{
		{Push(Paused), Paused},
		{Push(Settings), Settings},
		{Replace(MainMenu), Settings},
		{Replace(Settings), Settings},
	}
	for i, s := range steps {
		if err := c.Apply(s.req); err != nil {
			t.Fatalf("step %d %s: %v", i, s.req, err)
		}
		if got, ok := c.Origin(); !ok || got != s.origin {
			t.Fatalf("step %d %s: origin %s (%v), want %s", i, s.req, got, ok, s.origin)
		}
	}
	if err := c.Pop(); err != nil {
		t.Fatalf("settings restored by replace should pop: %v", err)
	}
	if c.Current() != Paused {
		t.Fatalf("current %s, want paused", c.Current())
	}
}
