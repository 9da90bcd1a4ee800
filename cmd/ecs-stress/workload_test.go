package main

import (
	"testing"

	"github.com/plus3/scenecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkloadChurn(t *testing.T) {
	cfg := Config{Entities: 200, SpawnRate: 10, SnapshotEvery: 10, Seed: 7}
	r, s, counters := newWorkload(cfg)

	for range 50 {
		s.Once(1.0 / 60.0)
	}

	assert.Equal(t, int64(700), counters.Spawned)
	assert.Equal(t, int64(5), counters.Snapshots)
	assert.Equal(t, int64(4), counters.Restores)
	assert.Greater(t, counters.Reparented, int64(0))
	assert.Greater(t, counters.Duplicated, int64(0))
	assert.Greater(t, counters.Visited, int64(0))

	requireShallowHierarchy(t, r)
}

func requireShallowHierarchy(t *testing.T, r *ecs.Registry) {
	t.Helper()
	for _, e := range r.Entities() {
		parent, ok := r.Parent(e)
		if !ok {
			continue
		}
		require.True(t, r.Alive(parent))
		assert.False(t, r.HasParent(parent), "trees are at most two levels deep")
		assert.Contains(t, r.Children(parent), e)
	}
}

func TestDecayRemovesExpiredBodies(t *testing.T) {
	r, s, counters := newWorkload(Config{})

	dying := r.Spawn("dying", Position{}, Velocity{X: 6}, Health{Current: 1})
	living := r.Spawn("living", Position{}, Velocity{X: 6}, Health{Current: 5})

	s.Once(0.5)

	assert.False(t, r.Alive(dying))
	assert.Equal(t, int64(1), counters.Removed)
	require.True(t, r.Alive(living))
	assert.Equal(t, Position{X: 3}, *ecs.GetComponent[Position](r, living))
	assert.Equal(t, 4, ecs.GetComponent[Health](r, living).Current)
}
