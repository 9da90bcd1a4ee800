package ecs

import "reflect"

// EventBus delivers registry notifications to subscribers synchronously, in
// subscription order. Handlers run inside the mutating call, so they must not
// structurally change pools that are currently being iterated.
type EventBus struct {
	handlers map[reflect.Type][]any
}

func newEventBus() *EventBus {
	return &EventBus{handlers: make(map[reflect.Type][]any)}
}

// Subscribe registers handler for events of type T
func Subscribe[T any](bus *EventBus, handler func(T)) {
	t := reflect.TypeFor[T]()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Publish calls every handler subscribed to T
func Publish[T any](bus *EventBus, event T) {
	hs, ok := bus.handlers[reflect.TypeFor[T]()]
	if !ok {
		return
	}
	for _, h := range hs {
		h.(func(T))(event)
	}
}

// EntityCreated is published after MakeEntity, before any component other
// than EInfo is attached.
type EntityCreated struct {
	Entity Entity
	Name   string
}

// EntityRemoved is published after an entity's components have been dropped.
// Entity carries the generation the entity had while alive.
type EntityRemoved struct {
	Entity Entity
}

// ParentChanged is published whenever a child's parent link is set or cleared.
type ParentChanged struct {
	Child     EntityId
	OldParent EntityId
	NewParent EntityId
}

type NameChanged struct {
	Entity Entity
	Name   string
}

type ComponentAdded struct {
	Entity EntityId
	Type   reflect.Type
}

// ComponentRemoved is published for explicit removals and for every component
// dropped by RemoveEntity, before the matching EntityRemoved.
type ComponentRemoved struct {
	Entity EntityId
	Type   reflect.Type
}

// SnapshotLoaded is published after RestoreSnapshot has replaced every pool.
type SnapshotLoaded struct {
	Entities int
}
