package ecs

type tickAdvancer interface {
	advance()
}

// EventLog is an append-only log of one event type. An event stays readable
// during the tick it was emitted in and the following tick, so a reader that
// runs before the emitter in the schedule still sees it once.
type EventLog[T any] struct {
	events   []T
	start    uint64 // sequence number of events[0]
	boundary uint64 // first sequence number of the current tick
}

func (l *EventLog[T]) end() uint64 {
	return l.start + uint64(len(l.events))
}

// Emit appends ev to the log.
func (l *EventLog[T]) Emit(ev T) {
	if l == nil {
		return
	}
	l.events = append(l.events, ev)
}

// Len returns how many events are currently retained.
func (l *EventLog[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.events)
}

// Clear drops every retained event.
func (l *EventLog[T]) Clear() {
	if l == nil {
		return
	}
	l.start = l.end()
	l.boundary = l.start
	l.events = nil
}

func (l *EventLog[T]) advance() {
	if drop := int(l.boundary - l.start); drop > 0 {
		n := copy(l.events, l.events[drop:])
		clear(l.events[n:])
		l.events = l.events[:n]
		l.start = l.boundary
	}
	l.boundary = l.end()
}

// EventReader is one consumer's cursor into an EventLog.
type EventReader[T any] struct {
	next uint64
}

// Drain returns every event this reader has not seen yet, in emission
// order, and moves the cursor past them.
func (r *EventReader[T]) Drain(l *EventLog[T]) []T {
	if r == nil || l == nil {
		return nil
	}
	if r.next < l.start {
		r.next = l.start
	}
	end := l.end()
	if r.next >= end {
		return nil
	}
	out := append([]T(nil), l.events[r.next-l.start:]...)
	r.next = end
	return out
}

// Events returns the world's log for event type T, creating it on first use.
func Events[T any](w *World) *EventLog[T] {
	if w == nil {
		return nil
	}
	if l, ok := Resource[EventLog[T]](w); ok {
		return l
	}
	l := &EventLog[T]{}
	SetResource(w, l)
	w.logs = append(w.logs, l)
	return l
}

// Emit publishes ev on the world's log for T.
func Emit[T any](w *World, ev T) {
	Events[T](w).Emit(ev)
}
