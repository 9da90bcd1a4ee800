package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
	"github.com/rs/zerolog"
)

const defaultEntityCapacity = 64

// Registry owns one Pool per registered component type, the lifecycle of every
// entity, the Transform hierarchy and the world snapshot.
//
// A Registry is not safe for concurrent use. Structural changes (creating or
// removing entities, adding or removing components) invalidate every slice and
// pointer previously obtained from a pool or view; systems that need to change
// structure while iterating must queue the change on Commands instead.
type Registry struct {
	pools      *intmap.Map[int, ErasedPool]
	poolList   []ErasedPool
	info       *Pool[EInfo]
	transforms *Pool[Transform]

	singletons    *intmap.Map[int, *singletonEntry]
	singletonList []*singletonEntry

	events   *EventBus
	logger   zerolog.Logger
	capacity int
	snapshot *Snapshot
}

// NewRegistry creates an empty registry. EInfo and Transform are registered
// automatically; every other component type must be registered with
// RegisterComponent before use.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		pools:      intmap.New[int, ErasedPool](32),
		singletons: intmap.New[int, *singletonEntry](8),
		events:     newEventBus(),
		logger:     zerolog.Nop(),
		capacity:   defaultEntityCapacity,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.info = RegisterComponent[EInfo](r)
	r.transforms = RegisterComponent[Transform](r)
	return r
}

// RegisterComponent creates the pool for T. Registering a type twice returns the
// existing pool.
func RegisterComponent[T any](r *Registry) *Pool[T] {
	t := reflect.TypeFor[T]()
	key := typeKey(t)
	if existing, ok := r.pools.Get(key); ok {
		return existing.(*Pool[T])
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}

	p := NewPool[T](r.capacity)
	r.pools.Put(key, p)
	r.poolList = append(r.poolList, p)
	r.logger.Debug().Str("component", t.String()).Int("pools", len(r.poolList)).Msg("component registered")
	return p
}

// PoolOf returns the pool of T.
// Panics with ErrComponentNotRegistered if T was never registered.
func PoolOf[T any](r *Registry) *Pool[T] {
	p, ok := lookupPool[T](r)
	if !ok {
		violation(ErrComponentNotRegistered, "%s", reflect.TypeFor[T]())
	}
	return p
}

func lookupPool[T any](r *Registry) (*Pool[T], bool) {
	p, ok := r.pools.Get(typeKey(reflect.TypeFor[T]()))
	if !ok {
		return nil, false
	}
	return p.(*Pool[T]), true
}

// PoolByType returns the pool registered for t
func (r *Registry) PoolByType(t reflect.Type) (ErasedPool, bool) {
	return r.pools.Get(typeKey(t))
}

func (r *Registry) mustPool(t reflect.Type) ErasedPool {
	p, ok := r.pools.Get(typeKey(t))
	if !ok {
		violation(ErrComponentNotRegistered, "%s", t)
	}
	return p
}

// Pools returns every pool in registration order. EInfo and Transform come first.
func (r *Registry) Pools() []ErasedPool {
	return r.poolList
}

// Events returns the bus the registry publishes lifecycle notifications on
func (r *Registry) Events() *EventBus {
	return r.events
}

func (r *Registry) Logger() *zerolog.Logger {
	return &r.logger
}

// NextAvailable returns the id the next MakeEntity will use: the first
// destroyed slot in EInfo order, or a brand-new id when none is free.
func (r *Registry) NextAvailable() EntityId {
	infos := r.info.Components()
	for i := range infos {
		if infos[i].Destroyed {
			return r.info.Entities()[i]
		}
	}
	return EntityId(r.info.Len())
}

// MakeEntity creates an entity with the given name and returns its handle.
// A destroyed slot is reused before a new id is allocated; a reused slot keeps
// the generation it was advanced to when it was destroyed.
func (r *Registry) MakeEntity(name string) Entity {
	id := r.NextAvailable()
	var generation uint32
	if info, ok := r.info.TryGet(id); ok {
		info.Name = name
		info.Destroyed = false
		generation = info.Generation
	} else {
		r.info.Add(id, EInfo{Name: name})
	}

	e := Entity{Id: id, Generation: generation}
	r.logger.Debug().Stringer("entity", e).Str("name", name).Msg("entity created")
	Publish(r.events, EntityCreated{Entity: e, Name: name})
	return e
}

// Spawn creates a named entity and attaches every given component, passed
// either by value or by pointer.
func (r *Registry) Spawn(name string, components ...any) Entity {
	e := r.MakeEntity(name)
	for _, c := range components {
		r.AddComponentValue(e, c)
	}
	return e
}

// RemoveEntity destroys e: it is detached from its parent, its children are
// orphaned (not destroyed), its name is cleared, its generation advanced and
// every component other than EInfo is dropped, each reported as ComponentRemoved.
// Removing a destroyed entity, or using a stale handle, does nothing.
func (r *Registry) RemoveEntity(e Entity) {
	info, ok := r.info.TryGet(e.Id)
	if !ok || info.Destroyed || info.Generation != e.Generation {
		return
	}

	r.detach(e.Id)

	info.Destroyed = true
	info.Name = ""
	info.Generation++

	for _, p := range r.poolList {
		if p == r.info {
			continue
		}
		if p.Has(e.Id) {
			p.Remove(e.Id)
			Publish(r.events, ComponentRemoved{Entity: e.Id, Type: p.Type()})
		}
	}

	r.logger.Debug().Stringer("entity", e).Msg("entity removed")
	Publish(r.events, EntityRemoved{Entity: e})
}

// DuplicateEntity creates an entity with the name and a copy of every component
// of src. Children are duplicated recursively and parented to the copy; the copy
// itself gets the same parent as src.
func (r *Registry) DuplicateEntity(src Entity) Entity {
	r.mustAlive(src)
	parent := NoEntity
	if t, ok := r.transforms.TryGet(src.Id); ok && t.HasParent {
		parent = t.Parent
	}
	return r.duplicate(src.Id, parent)
}

func (r *Registry) duplicate(src, parent EntityId) Entity {
	dup := r.MakeEntity(r.info.Get(src).Name)

	for _, p := range r.poolList {
		if p == r.info || p == r.transforms || !p.Has(src) {
			continue
		}
		p.CloneComponent(src, dup.Id)
		Publish(r.events, ComponentAdded{Entity: dup.Id, Type: p.Type()})
	}

	t, ok := r.transforms.TryGet(src)
	if !ok {
		return dup
	}
	children := append([]EntityId(nil), t.Children...)
	clone := t.Clone()
	clone.Parent = NoEntity
	clone.HasParent = false
	clone.Children = nil
	clone.MatrixOutdated = true
	r.transforms.Add(dup.Id, clone)
	Publish(r.events, ComponentAdded{Entity: dup.Id, Type: r.transforms.Type()})

	if parent != NoEntity {
		r.setParent(dup.Id, parent)
	}
	for _, child := range children {
		r.duplicate(child, dup.Id)
	}
	return dup
}

// ClearScene removes every live entity
func (r *Registry) ClearScene() {
	for _, e := range r.Entities() {
		r.RemoveEntity(e)
	}
}

func (r *Registry) mustAlive(e Entity) *EInfo {
	info, ok := r.info.TryGet(e.Id)
	if !ok || info.Destroyed {
		violation(ErrEntityNotAlive, "entity %s", e)
	}
	if info.Generation != e.Generation {
		violation(ErrStaleEntity, "entity %s, slot is at generation %d", e, info.Generation)
	}
	return info
}

// Alive reports whether e refers to a live entity with a current generation
func (r *Registry) Alive(e Entity) bool {
	info, ok := r.info.TryGet(e.Id)
	return ok && !info.Destroyed && info.Generation == e.Generation
}

// IsDestroyed reports whether the slot id holds no live entity
func (r *Registry) IsDestroyed(id EntityId) bool {
	info, ok := r.info.TryGet(id)
	return !ok || info.Destroyed
}

// EntityOf returns the current handle of the live entity in slot id.
// Panics with ErrEntityNotAlive if the slot is free.
func (r *Registry) EntityOf(id EntityId) Entity {
	info, ok := r.info.TryGet(id)
	if !ok || info.Destroyed {
		violation(ErrEntityNotAlive, "entity %d", id)
	}
	return Entity{Id: id, Generation: info.Generation}
}

// Entities returns a handle for every live entity, in EInfo dense order
func (r *Registry) Entities() []Entity {
	infos := r.info.Components()
	ids := r.info.Entities()
	entities := make([]Entity, 0, len(infos))
	for i := range infos {
		if !infos[i].Destroyed {
			entities = append(entities, Entity{Id: ids[i], Generation: infos[i].Generation})
		}
	}
	return entities
}

// NumEntities is the number of live entities
func (r *Registry) NumEntities() int {
	n := 0
	for _, info := range r.info.Components() {
		if !info.Destroyed {
			n++
		}
	}
	return n
}

func (r *Registry) Name(e Entity) string {
	return r.mustAlive(e).Name
}

func (r *Registry) SetName(e Entity, name string) {
	r.mustAlive(e).Name = name
	Publish(r.events, NameChanged{Entity: e, Name: name})
}
