package ecs

import "iter"

// Query wraps a View with a per-frame cache for repeated iteration.
// Execute walks the view once and stores the matching entities and their
// populated structs; Iter and Values then replay the cache.
type Query[T any] struct {
	view *View[T]

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a Query over r.
func NewQuery[T any](r *Registry) *Query[T] {
	q := &Query[T]{}
	q.Init(r)
	return q
}

// Init initializes or re-initializes the Query with a registry.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(r *Registry) {
	q.view = NewView[T](r)
	q.cacheValid = false
}

// Execute builds the entity and component caches for this frame.
// Called automatically by the Scheduler before each system runs.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for id, item := range q.view.Iter() {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
	}

	q.cacheValid = true
}

// Len is the number of entities cached by the last Execute
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// View returns the underlying view, for lookups that bypass the cache
func (q *Query[T]) View() *View[T] {
	return q.view
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
