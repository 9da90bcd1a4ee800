package ecs

import "reflect"

var (
	einfoType     = reflect.TypeFor[EInfo]()
	transformType = reflect.TypeFor[Transform]()
)

// AddComponent attaches value to e and returns a pointer to the stored copy.
// Panics if e is not alive, T is not registered, or e already owns a T.
func AddComponent[T any](r *Registry, e Entity, value T) *T {
	r.mustAlive(e)
	p := PoolOf[T](r)
	if p.typ == einfoType {
		violation(ErrReservedComponent, "cannot add %s to entity %s", p.typ, e)
	}
	p.Add(e.Id, value)
	Publish(r.events, ComponentAdded{Entity: e.Id, Type: p.typ})
	return p.Get(e.Id)
}

// RemoveComponent drops the T of e, if any. Removing a Transform first detaches
// e from its parent and orphans its children.
func RemoveComponent[T any](r *Registry, e Entity) {
	r.mustAlive(e)
	r.removeComponent(e, PoolOf[T](r))
}

func (r *Registry) removeComponent(e Entity, p ErasedPool) {
	t := p.Type()
	if t == einfoType {
		violation(ErrReservedComponent, "cannot remove %s from entity %s", t, e)
	}
	if !p.Has(e.Id) {
		return
	}
	if t == transformType {
		r.detach(e.Id)
	}
	p.Remove(e.Id)
	Publish(r.events, ComponentRemoved{Entity: e.Id, Type: t})
}

// GetComponent returns the T of e.
// Panics if e is not alive or does not own a T.
func GetComponent[T any](r *Registry, e Entity) *T {
	r.mustAlive(e)
	return PoolOf[T](r).Get(e.Id)
}

// TryGetComponent returns the T of e, or false if e is not alive or owns no T
func TryGetComponent[T any](r *Registry, e Entity) (*T, bool) {
	if !r.Alive(e) {
		return nil, false
	}
	p, ok := lookupPool[T](r)
	if !ok {
		return nil, false
	}
	return p.TryGet(e.Id)
}

// HasComponent reports whether e is alive and owns a T. Unregistered types are
// never owned.
func HasComponent[T any](r *Registry, e Entity) bool {
	if !r.Alive(e) {
		return false
	}
	p, ok := lookupPool[T](r)
	return ok && p.Has(e.Id)
}

// componentType returns the component type of a value passed by value or pointer
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// AddComponentValue attaches a component whose type is only known at runtime.
// The value may be passed as T or *T; the stored *T is returned.
func (r *Registry) AddComponentValue(e Entity, component any) any {
	r.mustAlive(e)
	t := componentType(component)
	if t == einfoType {
		violation(ErrReservedComponent, "cannot add %s to entity %s", t, e)
	}
	p := r.mustPool(t)
	p.AddAny(e.Id, component)
	Publish(r.events, ComponentAdded{Entity: e.Id, Type: t})
	return p.GetAny(e.Id)
}

// ComponentByType returns a pointer to the component of type t owned by e, or
// nil if e is not alive or owns none.
func (r *Registry) ComponentByType(e Entity, t reflect.Type) any {
	if !r.Alive(e) {
		return nil
	}
	p, ok := r.PoolByType(t)
	if !ok {
		return nil
	}
	return p.GetAny(e.Id)
}

func (r *Registry) HasComponentType(e Entity, t reflect.Type) bool {
	if !r.Alive(e) {
		return false
	}
	p, ok := r.PoolByType(t)
	return ok && p.Has(e.Id)
}

// RemoveComponentType drops the component of type t from e, if any
func (r *Registry) RemoveComponentType(e Entity, t reflect.Type) {
	r.mustAlive(e)
	r.removeComponent(e, r.mustPool(t))
}

// ComponentTypes lists the types of every component e owns, EInfo included
func (r *Registry) ComponentTypes(e Entity) []reflect.Type {
	r.mustAlive(e)
	var types []reflect.Type
	for _, p := range r.poolList {
		if p.Has(e.Id) {
			types = append(types, p.Type())
		}
	}
	return types
}
