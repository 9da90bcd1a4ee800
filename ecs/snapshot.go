package ecs

import "reflect"

// Snapshot is a deep copy of every pool and singleton of a registry, taken so
// that play-mode mutation can be reverted.
type Snapshot struct {
	pools      map[reflect.Type]ErasedPool
	singletons map[reflect.Type]any
	entities   int
}

// Entities is the number of live entities when the snapshot was taken
func (s *Snapshot) Entities() int {
	return s.entities
}

// Has reports whether the snapshot holds a pool for t
func (s *Snapshot) Has(t reflect.Type) bool {
	_, ok := s.pools[t]
	return ok
}

// MakeSnapshot deep-copies every pool and singleton. The snapshot is returned
// and also kept as the registry's current snapshot for LoadSnapshot.
func (r *Registry) MakeSnapshot() *Snapshot {
	s := &Snapshot{
		pools:      make(map[reflect.Type]ErasedPool, len(r.poolList)),
		singletons: make(map[reflect.Type]any, len(r.singletonList)),
		entities:   r.NumEntities(),
	}
	for _, p := range r.poolList {
		s.pools[p.Type()] = p.clone()
	}
	for _, entry := range r.singletonList {
		s.singletons[entry.typ] = entry.save()
	}
	r.snapshot = s

	r.logger.Debug().Int("pools", len(s.pools)).Int("entities", s.entities).Msg("snapshot taken")
	return s
}

// LoadSnapshot restores the snapshot taken by the last MakeSnapshot.
// It reports false if no snapshot was ever taken.
func (r *Registry) LoadSnapshot() bool {
	if r.snapshot == nil {
		return false
	}
	r.RestoreSnapshot(r.snapshot)
	return true
}

// RestoreSnapshot replaces the content of every pool with a copy of the
// snapshot's. Pools are restored in place, so pool pointers held by views stay
// usable; pools registered after the snapshot are emptied. The snapshot is not
// consumed and can be restored again. Every Transform is marked outdated.
func (r *Registry) RestoreSnapshot(s *Snapshot) {
	for _, p := range r.poolList {
		if saved, ok := s.pools[p.Type()]; ok {
			p.restore(saved)
		} else {
			p.Clear()
		}
	}
	for _, entry := range r.singletonList {
		if v, ok := s.singletons[entry.typ]; ok {
			entry.load(v)
		}
	}

	transforms := r.transforms.Components()
	for i := range transforms {
		transforms[i].MatrixOutdated = true
	}

	n := r.NumEntities()
	r.logger.Debug().Int("entities", n).Msg("snapshot loaded")
	Publish(r.events, SnapshotLoaded{Entities: n})
}
