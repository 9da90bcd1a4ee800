package ecs

import (
	"iter"
	"reflect"
)

// DynamicView is a view whose component types are only known at runtime, used
// by tooling that builds queries from user input.
type DynamicView struct {
	types []reflect.Type
	pools []ErasedPool
}

// NewDynamicView creates a view over the given types.
// Panics with ErrComponentNotRegistered if any type is not registered.
func NewDynamicView(r *Registry, types ...reflect.Type) *DynamicView {
	if len(types) == 0 {
		panic("DynamicView needs at least one component type")
	}
	v := &DynamicView{types: types, pools: make([]ErasedPool, len(types))}
	for i, t := range types {
		v.pools[i] = r.mustPool(t)
	}
	return v
}

func (v *DynamicView) Types() []reflect.Type {
	return v.types
}

func (v *DynamicView) driver() ErasedPool {
	d := v.pools[0]
	for _, p := range v.pools[1:] {
		if p.Len() < d.Len() {
			d = p
		}
	}
	return d
}

func (v *DynamicView) Contains(id EntityId) bool {
	for _, p := range v.pools {
		if !p.Has(id) {
			return false
		}
	}
	return true
}

// Iter yields every member with pointers to its components, in type order.
// The slice is reused between iterations.
func (v *DynamicView) Iter() iter.Seq2[EntityId, []any] {
	return func(yield func(EntityId, []any) bool) {
		components := make([]any, len(v.pools))
		for _, id := range v.driver().Entities() {
			if !v.Contains(id) {
				continue
			}
			for i, p := range v.pools {
				components[i] = p.GetAny(id)
			}
			if !yield(id, components) {
				return
			}
		}
	}
}

func (v *DynamicView) Count() int {
	n := 0
	for _, id := range v.driver().Entities() {
		if v.Contains(id) {
			n++
		}
	}
	return n
}
