package component

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

// Kind is the untyped view of a ComponentKind, used by multi-kind queries.
type Kind interface {
	ID() ComponentID
}

var (
	nextComponentID atomic.Uint32
	kindNames       sync.Map // ComponentID -> string
)

// ComponentKind identifies one component store. Every kind made by
// NewComponentKind is distinct, even for the same T.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	kindNames.Store(id, reflect.TypeFor[T]().String())
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

func (k ComponentKind[T]) String() string { return KindName(k.id) }

// KindName returns the Go type name registered for id.
func KindName(id ComponentID) string {
	if name, ok := kindNames.Load(id); ok {
		return name.(string)
	}
	return fmt.Sprintf("kind(%d)", id)
}

// ComponentHandle is the package-level declaration of a kind:
//
//	var TransformComponent = NewComponent[Transform]()
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
