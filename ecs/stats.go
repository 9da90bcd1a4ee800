package ecs

import "sort"

// RegistryStats is a point-in-time summary of a registry, used by tooling.
type RegistryStats struct {
	PoolCount        int
	EntityCount      int
	DestroyedCount   int
	SingletonCount   int
	ComponentCount   int
	PoolBreakdown    []PoolStats
	SingletonTypes   []string
	HasSnapshot      bool
	SnapshotEntities int
}

type PoolStats struct {
	Type   string
	Size   int
	Extent int
}

// CollectStats walks every pool and singleton. It allocates; call it from
// tooling, not from a per-entity hot path.
func (r *Registry) CollectStats() RegistryStats {
	stats := RegistryStats{
		PoolCount:      len(r.poolList),
		EntityCount:    r.NumEntities(),
		SingletonCount: len(r.singletonList),
		PoolBreakdown:  make([]PoolStats, 0, len(r.poolList)),
		SingletonTypes: make([]string, 0, len(r.singletonList)),
	}
	stats.DestroyedCount = r.info.Len() - stats.EntityCount

	for _, p := range r.poolList {
		stats.PoolBreakdown = append(stats.PoolBreakdown, PoolStats{
			Type:   p.Type().String(),
			Size:   p.Len(),
			Extent: p.Extent(),
		})
		if p != r.info {
			stats.ComponentCount += p.Len()
		}
	}
	sort.Slice(stats.PoolBreakdown, func(i, j int) bool {
		return stats.PoolBreakdown[i].Type < stats.PoolBreakdown[j].Type
	})

	for _, entry := range r.singletonList {
		stats.SingletonTypes = append(stats.SingletonTypes, entry.typ.String())
	}
	sort.Strings(stats.SingletonTypes)

	if r.snapshot != nil {
		stats.HasSnapshot = true
		stats.SnapshotEntities = r.snapshot.entities
	}
	return stats
}
