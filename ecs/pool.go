package ecs

import (
	"iter"
	"reflect"
	"sort"
)

// Cloner is implemented by components that own reference data (slices, maps)
// and must be deep-copied when a pool is cloned or a component duplicated.
type Cloner[T any] interface {
	Clone() T
}

func cloneValue[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Pool stores the components of a single type for every entity that owns one.
// components[i] belongs to the entity at Entities()[i]; both arrays stay packed
// and index-aligned across every Add and Remove.
type Pool[T any] struct {
	set        SparseSet
	components []T
	typ        reflect.Type
}

// NewPool creates an empty pool with room for capacity components
func NewPool[T any](capacity int) *Pool[T] {
	return &Pool[T]{
		set:        SparseSet{dense: make([]EntityId, 0, capacity)},
		components: make([]T, 0, capacity),
		typ:        reflect.TypeFor[T](),
	}
}

// Type returns the component type stored in the pool
func (p *Pool[T]) Type() reflect.Type {
	return p.typ
}

// Add gives id the component value and returns a pointer to the stored copy.
// Panics with ErrDuplicateComponent if id already owns a component in this pool.
func (p *Pool[T]) Add(id EntityId, value T) *T {
	if p.set.Has(id) {
		violation(ErrDuplicateComponent, "entity %d, component %s", id, p.typ)
	}
	p.set.Insert(id)
	p.components = append(p.components, value)
	return &p.components[len(p.components)-1]
}

// Remove drops the component of id. Removing an absent id is a no-op.
func (p *Pool[T]) Remove(id EntityId) {
	idx := p.set.Index(id)
	if idx < 0 {
		return
	}
	last := len(p.components) - 1
	// the component swap uses the pre-removal index, the set then mirrors it
	p.components[idx] = p.components[last]
	var zero T
	p.components[last] = zero
	p.components = p.components[:last]
	p.set.Remove(id)
}

// Get returns the component of id.
// Panics with ErrComponentNotFound if id does not own one.
func (p *Pool[T]) Get(id EntityId) *T {
	idx := p.set.Index(id)
	if idx < 0 {
		violation(ErrComponentNotFound, "entity %d, component %s", id, p.typ)
	}
	return &p.components[idx]
}

// TryGet returns the component of id, or false if id does not own one
func (p *Pool[T]) TryGet(id EntityId) (*T, bool) {
	idx := p.set.Index(id)
	if idx < 0 {
		return nil, false
	}
	return &p.components[idx], true
}

// GetAny returns a *T for id, or nil
func (p *Pool[T]) GetAny(id EntityId) any {
	c, ok := p.TryGet(id)
	if !ok {
		return nil
	}
	return c
}

// AddAny adds a component given either as T or *T and returns the stored *T.
// Panics with ErrComponentType for any other value.
func (p *Pool[T]) AddAny(id EntityId, value any) any {
	switch v := value.(type) {
	case T:
		return p.Add(id, v)
	case *T:
		return p.Add(id, *v)
	default:
		violation(ErrComponentType, "value %T, pool %s", value, p.typ)
		return nil
	}
}

func (p *Pool[T]) Has(id EntityId) bool {
	return p.set.Has(id)
}

// Index returns the dense position of id, or -1
func (p *Pool[T]) Index(id EntityId) int {
	return p.set.Index(id)
}

func (p *Pool[T]) Len() int {
	return len(p.components)
}

func (p *Pool[T]) Empty() bool {
	return len(p.components) == 0
}

// Extent is one past the largest id the pool has ever held
func (p *Pool[T]) Extent() int {
	return p.set.Extent()
}

// Entities returns the packed id array, aligned with Components.
// Valid until the next Add or Remove on this pool.
func (p *Pool[T]) Entities() []EntityId {
	return p.set.Entities()
}

// Components returns the packed component array, aligned with Entities.
func (p *Pool[T]) Components() []T {
	return p.components
}

// Back returns the last component in dense order. This is not necessarily the
// most recently added one once the pool has been sorted or removed from.
func (p *Pool[T]) Back() *T {
	if len(p.components) == 0 {
		return nil
	}
	return &p.components[len(p.components)-1]
}

// All iterates ids and components in dense order
func (p *Pool[T]) All() iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		dense := p.set.Entities()
		for i := range dense {
			if !yield(dense[i], &p.components[i]) {
				return
			}
		}
	}
}

// CloneComponent copies the component of from onto to.
// from must own a component and to must not.
func (p *Pool[T]) CloneComponent(from, to EntityId) {
	src := p.Get(from)
	p.Add(to, cloneValue(*src))
}

// Clone returns a deep copy of the pool
func (p *Pool[T]) Clone() *Pool[T] {
	c := &Pool[T]{
		set:        *p.set.Clone(),
		components: make([]T, len(p.components), cap(p.components)),
		typ:        p.typ,
	}
	for i := range p.components {
		c.components[i] = cloneValue(p.components[i])
	}
	return c
}

// Clear drops every component
func (p *Pool[T]) Clear() {
	clear(p.components)
	p.components = p.components[:0]
	p.set.Clear()
}

// Swap exchanges the dense positions of two ids owning a component
func (p *Pool[T]) Swap(a, b EntityId) {
	ia, ib := p.set.Index(a), p.set.Index(b)
	p.components[ia], p.components[ib] = p.components[ib], p.components[ia]
	p.set.Swap(a, b)
}

// SortFunc reorders the pool so that less holds between consecutive components.
func (p *Pool[T]) SortFunc(less func(a, b *T) bool) {
	sort.Sort(&poolSorter[T]{pool: p, less: less})
}

// SortAs reorders the pool to follow the dense order of other. Entities that
// other does not contain end up after those it does, in unspecified order.
func (p *Pool[T]) SortAs(other ErasedPool) {
	pos := 0
	for _, id := range other.Entities() {
		if !p.set.Has(id) {
			continue
		}
		p.Swap(p.set.dense[pos], id)
		pos++
	}
}

func (p *Pool[T]) clone() ErasedPool {
	return p.Clone()
}

// restore replaces the contents of p with a deep copy of from
func (p *Pool[T]) restore(from ErasedPool) {
	src := from.(*Pool[T])
	p.set.sparse = append(p.set.sparse[:0], src.set.sparse...)
	p.set.dense = append(p.set.dense[:0], src.set.dense...)
	clear(p.components)
	p.components = p.components[:0]
	for i := range src.components {
		p.components = append(p.components, cloneValue(src.components[i]))
	}
}

type poolSorter[T any] struct {
	pool *Pool[T]
	less func(a, b *T) bool
}

func (ps *poolSorter[T]) Len() int { return len(ps.pool.components) }
func (ps *poolSorter[T]) Less(i, j int) bool {
	return ps.less(&ps.pool.components[i], &ps.pool.components[j])
}
func (ps *poolSorter[T]) Swap(i, j int) {
	dense := ps.pool.set.dense
	ps.pool.Swap(dense[i], dense[j])
}
