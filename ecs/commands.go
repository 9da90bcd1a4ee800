package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// Commands provides a buffer for deferred registry operations that are executed
// at the end of a frame. This prevents structural changes to the pools while
// systems are iterating them.
//
// Flush applies the queued operations by kind, not in queue order: removals
// first, then component removals, component additions, hierarchy changes,
// entity creation and finally deferred functions. Operations that target an
// entity removed earlier in the same flush, or a stale handle, are skipped.
type Commands struct {
	spawns   []spawnCommand
	removes  []Entity
	adds     []addComponentCommand
	drops    []removeComponentCommand
	parents  []parentCommand
	defers   []func()
	entities *intmap.Map[EntityId, struct{}]
}

func newCommands() *Commands {
	return &Commands{entities: intmap.New[EntityId, struct{}](16)}
}

// NewCommands creates an empty command buffer, for use outside a Scheduler
func NewCommands() *Commands {
	return newCommands()
}

type spawnCommand struct {
	name       string
	components []any
}

type addComponentCommand struct {
	entity    Entity
	component any
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
}

type parentCommand struct {
	child  Entity
	parent Entity
	clear  bool
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// MakeEntity queues the creation of a named entity with the given components.
func (c *Commands) MakeEntity(name string, components ...any) {
	c.spawns = append(c.spawns, spawnCommand{name: name, components: components})
}

// RemoveEntity queues an entity removal operation.
func (c *Commands) RemoveEntity(entity Entity) {
	c.removes = append(c.removes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity Entity, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity Entity, compType reflect.Type) {
	c.drops = append(c.drops, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// SetParent queues a SetParent.
func (c *Commands) SetParent(child, parent Entity) {
	c.parents = append(c.parents, parentCommand{child: child, parent: parent})
}

// ClearParent queues a ClearParent.
func (c *Commands) ClearParent(child Entity) {
	c.parents = append(c.parents, parentCommand{child: child, clear: true})
}

// Len is the number of queued operations
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.removes) + len(c.adds) + len(c.drops) + len(c.parents) + len(c.defers)
}

// skip reports whether e can no longer be targeted, logging why
func (c *Commands) skip(r *Registry, e Entity, op string) bool {
	if _, removed := c.entities.Get(e.Id); removed {
		r.logger.Debug().Stringer("entity", e).Str("op", op).Msg("skipping command for removed entity")
		return true
	}
	if !r.Alive(e) {
		r.logger.Debug().Stringer("entity", e).Str("op", op).Msg("skipping command for stale entity")
		return true
	}
	return false
}

// Flush flushes all commands to the provided registry, resetting the buffer state.
// Commands queued by deferred functions are applied in a further round of the
// same flush.
func (c *Commands) Flush(r *Registry) {
	if c.Len() == 0 {
		return
	}
	for round := 0; c.Len() > 0; round++ {
		r.logger.Debug().Int("commands", c.Len()).Int("round", round).Msg("flushing commands")
		c.flushRound(r)
		c.entities.Clear()
	}
}

// flushRound detaches the queued buffers before applying them, so anything
// queued while applying lands in fresh buffers.
func (c *Commands) flushRound(r *Registry) {
	removes, drops, adds, parents, spawns, defers := c.removes, c.drops, c.adds, c.parents, c.spawns, c.defers
	c.removes, c.drops, c.adds, c.parents, c.spawns, c.defers = nil, nil, nil, nil, nil, nil

	for _, e := range removes {
		if !r.Alive(e) {
			continue
		}
		r.RemoveEntity(e)
		c.entities.Put(e.Id, struct{}{})
	}

	for _, cmd := range drops {
		if c.skip(r, cmd.entity, "remove component") {
			continue
		}
		r.RemoveComponentType(cmd.entity, cmd.compType)
	}

	for _, cmd := range adds {
		if c.skip(r, cmd.entity, "add component") {
			continue
		}
		if r.HasComponentType(cmd.entity, componentType(cmd.component)) {
			r.logger.Warn().Stringer("entity", cmd.entity).Str("component", componentType(cmd.component).String()).Msg("skipping duplicate component")
			continue
		}
		r.AddComponentValue(cmd.entity, cmd.component)
	}

	for _, cmd := range parents {
		if c.skip(r, cmd.child, "parent") {
			continue
		}
		if cmd.clear {
			r.ClearParent(cmd.child)
			continue
		}
		if c.skip(r, cmd.parent, "parent") {
			continue
		}
		r.SetParent(cmd.child, cmd.parent)
	}

	for _, cmd := range spawns {
		r.Spawn(cmd.name, cmd.components...)
	}

	for _, fn := range defers {
		fn()
	}
}
