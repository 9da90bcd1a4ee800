package ecs_test

import (
	"math/rand"
	"testing"

	"github.com/plus3/scenecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseSet(t *testing.T) {
	t.Run("insert keeps dense order", func(t *testing.T) {
		s := ecs.NewSparseSet(4)
		s.Insert(0)
		s.Insert(1)
		s.Insert(2)

		assert.Equal(t, []ecs.EntityId{0, 1, 2}, s.Entities())
		assert.Equal(t, 3, s.Len())
		for i, id := range s.Entities() {
			assert.Equal(t, i, s.Index(id))
		}
	})

	t.Run("remove swaps with the last entry", func(t *testing.T) {
		s := ecs.NewSparseSet(4)
		s.Insert(0)
		s.Insert(1)
		s.Insert(2)

		s.Remove(1)

		assert.Equal(t, []ecs.EntityId{0, 2}, s.Entities())
		assert.False(t, s.Has(1))
		assert.Equal(t, -1, s.Index(1))
		assert.Equal(t, 1, s.Index(2))
	})

	t.Run("remove the last entry", func(t *testing.T) {
		s := ecs.NewSparseSet(4)
		s.Insert(3)
		s.Insert(7)

		s.Remove(7)
		assert.Equal(t, []ecs.EntityId{3}, s.Entities())
		s.Remove(3)
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Has(3))
	})

	t.Run("sparse array grows to the largest id", func(t *testing.T) {
		var s ecs.SparseSet
		s.Insert(10)

		assert.Equal(t, 11, s.Extent())
		assert.True(t, s.Has(10))
		assert.False(t, s.Has(5))
		assert.False(t, s.Has(200))
		assert.Equal(t, -1, s.Index(200))

		idx, ok := s.Find(10)
		assert.True(t, ok)
		assert.Equal(t, 0, idx)
		assert.Equal(t, ecs.EntityId(10), s.Back())
	})

	t.Run("sort", func(t *testing.T) {
		s := ecs.NewSparseSet(4)
		for _, id := range []ecs.EntityId{4, 1, 3, 0} {
			s.Insert(id)
		}

		s.SortFunc(func(a, b ecs.EntityId) bool { return a < b })

		assert.Equal(t, []ecs.EntityId{0, 1, 3, 4}, s.Entities())
		for i, id := range s.Entities() {
			assert.Equal(t, i, s.Index(id))
		}
	})

	t.Run("clone is independent", func(t *testing.T) {
		s := ecs.NewSparseSet(4)
		s.Insert(1)
		s.Insert(2)

		c := s.Clone()
		s.Remove(1)
		c.Insert(5)

		assert.Equal(t, []ecs.EntityId{2}, s.Entities())
		assert.Equal(t, []ecs.EntityId{1, 2, 5}, c.Entities())
	})

	t.Run("clear", func(t *testing.T) {
		s := ecs.NewSparseSet(4)
		s.Insert(1)
		s.Insert(2)
		s.Clear()

		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Has(1))
		s.Insert(2)
		assert.Equal(t, 0, s.Index(2))
	})
}

func TestSparseSetRandomOperations(t *testing.T) {
	const ids = 48
	rng := rand.New(rand.NewSource(11))
	s := ecs.NewSparseSet(4)
	present := map[ecs.EntityId]bool{}

	for step := 0; step < 5000; step++ {
		id := ecs.EntityId(rng.Intn(ids))
		if present[id] {
			s.Remove(id)
			delete(present, id)
		} else {
			s.Insert(id)
			present[id] = true
		}

		dense := s.Entities()
		require.Len(t, dense, len(present), "step %d", step)
		for i, e := range dense {
			require.Equal(t, i, s.Index(e), "step %d", step)
			require.True(t, present[e], "step %d: entity %d", step, e)
		}
		for id := ecs.EntityId(0); id < ids; id++ {
			assert.Equal(t, present[id], s.Has(id), "step %d: entity %d", step, id)
		}
	}
}
