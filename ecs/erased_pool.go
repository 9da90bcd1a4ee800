package ecs

import "reflect"

// ErasedPool is the type-erased view of a Pool[T] that lets the Registry keep
// pools of every component type in one collection. Only *Pool[T] implements it.
type ErasedPool interface {
	Type() reflect.Type
	Has(id EntityId) bool
	Index(id EntityId) int
	Len() int
	Extent() int
	Entities() []EntityId
	Remove(id EntityId)
	CloneComponent(from, to EntityId)
	GetAny(id EntityId) any
	AddAny(id EntityId, value any) any
	Swap(a, b EntityId)
	Clear()

	clone() ErasedPool
	restore(from ErasedPool)
}

var _ ErasedPool = (*Pool[struct{}])(nil)
