package ecs

//go:generate go run ../cmd/viewgen -out view_generated.go -max 4

import "iter"

// View1 iterates every owner of a single component type. With only one pool
// there is nothing to intersect, so iteration is a straight pass over the
// pool's dense arrays.
//
// Iteration order is the pool's dense order and changes whenever the pool is
// added to or removed from. Do not add or remove A while iterating.
type View1[A any] struct {
	a *Pool[A]
}

// NewView1 creates a view over the pool of A.
// Panics with ErrComponentNotRegistered if A is not registered.
func NewView1[A any](r *Registry) *View1[A] {
	return &View1[A]{a: PoolOf[A](r)}
}

// Iter yields every entity with its component
func (v *View1[A]) Iter() iter.Seq2[EntityId, *A] {
	return v.a.All()
}

// Each calls fn for every entity with its component
func (v *View1[A]) Each(fn func(EntityId, *A)) {
	dense := v.a.Entities()
	components := v.a.Components()
	for i := range dense {
		fn(dense[i], &components[i])
	}
}

// Get returns the component of id.
// Panics with ErrNotInView if id does not own an A.
func (v *View1[A]) Get(id EntityId) *A {
	c, ok := v.a.TryGet(id)
	if !ok {
		violation(ErrNotInView, "entity %d", id)
	}
	return c
}

func (v *View1[A]) Contains(id EntityId) bool {
	return v.a.Has(id)
}

// Find returns the position of id in iteration order
func (v *View1[A]) Find(id EntityId) (int, bool) {
	idx := v.a.Index(id)
	return idx, idx >= 0
}

func (v *View1[A]) Len() int {
	return v.a.Len()
}

// Entities returns the dense id array of the underlying pool
func (v *View1[A]) Entities() []EntityId {
	return v.a.Entities()
}
