package component

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// AnyKind is the untyped view of a ComponentKind, used where a list of kinds of
// different component types is needed (queries, introspection).
type AnyKind interface {
	ID() ComponentID
	Name() string
}

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	name := fmt.Sprintf("%T", *new(T))
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	kindNames.Store(id, name)
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

func (k ComponentKind[T]) Name() string {
	return k.id.Name()
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

type ComponentID uint32

// Name returns the Go type name the id was registered with.
func (id ComponentID) Name() string {
	if v, ok := kindNames.Load(id); ok {
		return v.(string)
	}
	return fmt.Sprintf("component#%d", uint32(id))
}

var (
	nextComponentID atomic.Uint32
	kindNames       sync.Map
)
