package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/scenecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spawnOverlap gives A to entities 1,2,3 and B to entities 2,3,4
func spawnOverlap(r *ecs.Registry) []ecs.Entity {
	entities := make([]ecs.Entity, 5)
	for i := range entities {
		entities[i] = r.MakeEntity("")
	}
	for _, i := range []int{1, 2, 3} {
		ecs.AddComponent(r, entities[i], Position{X: float32(i)})
	}
	for _, i := range []int{2, 3, 4} {
		ecs.AddComponent(r, entities[i], Velocity{DX: float32(i)})
	}
	return entities
}

func sorted(ids []ecs.EntityId) []ecs.EntityId {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	return ids
}

func TestView1(t *testing.T) {
	r := newTestRegistry()
	spawnOverlap(r)
	view := ecs.NewView1[Position](r)

	assert.Equal(t, 3, view.Len())
	assert.Equal(t, []ecs.EntityId{1, 2, 3}, view.Entities())
	assert.True(t, view.Contains(2))
	assert.False(t, view.Contains(4))
	assert.Equal(t, float32(3), view.Get(3).X)

	pos, ok := view.Find(3)
	assert.True(t, ok)
	assert.Equal(t, 2, pos)

	var sum float32
	for _, p := range view.Iter() {
		sum += p.X
	}
	assert.Equal(t, float32(6), sum)

	view.Each(func(_ ecs.EntityId, p *Position) { p.Y = 1 })
	assert.Equal(t, float32(1), view.Get(1).Y)

	requireViolation(t, ecs.ErrNotInView, func() {
		view.Get(0)
	})
}

func TestView2(t *testing.T) {
	t.Run("intersection", func(t *testing.T) {
		r := newTestRegistry()
		spawnOverlap(r)
		view := ecs.NewView2[Position, Velocity](r)

		assert.Equal(t, []ecs.EntityId{2, 3}, sorted(view.Entities()))
		assert.Equal(t, 2, view.Count())
		assert.Equal(t, [2]int{3, 3}, view.Sizes())
		assert.True(t, view.Contains(2))
		assert.False(t, view.Contains(1))
		assert.False(t, view.Contains(4))

		p, v := view.Get(3)
		assert.Equal(t, float32(3), p.X)
		assert.Equal(t, float32(3), v.DX)

		requireViolation(t, ecs.ErrNotInView, func() {
			view.Get(1)
		})
	})

	t.Run("driven by the smallest pool", func(t *testing.T) {
		r := newTestRegistry()
		for i := 0; i < 10; i++ {
			e := r.Spawn("", Position{})
			if i%5 == 0 {
				ecs.AddComponent(r, e, Velocity{})
			}
		}
		view := ecs.NewView2[Position, Velocity](r)

		assert.Equal(t, 2, view.SizeHint())
		assert.Equal(t, []ecs.EntityId{0, 5}, view.Entities())
	})

	t.Run("find counts members only", func(t *testing.T) {
		r := newTestRegistry()
		spawnOverlap(r)
		view := ecs.NewView2[Position, Velocity](r)

		members := view.Entities()
		for i, id := range members {
			pos, ok := view.Find(id)
			assert.True(t, ok)
			assert.Equal(t, i, pos)
		}
		_, ok := view.Find(1)
		assert.False(t, ok)
	})

	t.Run("each mutates in place", func(t *testing.T) {
		r := newTestRegistry()
		spawnOverlap(r)
		view := ecs.NewView2[Position, Velocity](r)

		view.Each(func(_ ecs.EntityId, p *Position, v *Velocity) {
			p.X += v.DX
		})

		assert.Equal(t, float32(1), ecs.PoolOf[Position](r).Get(1).X)
		assert.Equal(t, float32(4), ecs.PoolOf[Position](r).Get(2).X)
		assert.Equal(t, float32(6), ecs.PoolOf[Position](r).Get(3).X)
	})

	t.Run("iteration stops early", func(t *testing.T) {
		r := newTestRegistry()
		spawnOverlap(r)
		view := ecs.NewView2[Position, Velocity](r)

		n := 0
		for range view.Iter() {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})

	t.Run("sees entities added after construction", func(t *testing.T) {
		r := newTestRegistry()
		view := ecs.NewView2[Position, Velocity](r)
		assert.Equal(t, 0, view.Count())

		r.Spawn("late", Position{}, Velocity{})
		assert.Equal(t, 1, view.Count())
	})
}

func TestView3(t *testing.T) {
	r := newTestRegistry()
	entities := spawnOverlap(r)
	ecs.AddComponent(r, entities[3], Health{Current: 7})
	ecs.AddComponent(r, entities[4], Health{Current: 8})

	view := ecs.NewView3[Position, Velocity, Health](r)

	assert.Equal(t, []ecs.EntityId{3}, view.Entities())
	_, _, h := view.Get(3)
	assert.Equal(t, 7, h.Current)
	assert.Equal(t, 2, view.SizeHint())
}

func TestView4(t *testing.T) {
	r := newTestRegistry()
	e := r.Spawn("full", Position{}, Velocity{}, Health{}, Name{Value: "full"})
	r.Spawn("partial", Position{}, Velocity{}, Health{})

	view := ecs.NewView4[Position, Velocity, Health, Name](r)

	var names []string
	view.Each(func(_ ecs.EntityId, _ *Position, _ *Velocity, _ *Health, n *Name) {
		names = append(names, n.Value)
	})
	assert.Equal(t, []string{"full"}, names)
	assert.Equal(t, []ecs.EntityId{e.Id}, view.Entities())
}

func TestView(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		r := newTestRegistry()
		e := r.Spawn("e", &Position{X: 1, Y: 2}, Temperature(32))

		view := ecs.NewView[struct {
			*Position
			*Temperature
		}](r)

		item := view.Get(e.Id)
		require.NotNil(t, item)
		assert.Equal(t, Temperature(32), *item.Temperature)
		assert.Equal(t, float32(1), item.Position.X)
		assert.Equal(t, float32(2), item.Position.Y)
	})

	t.Run("missing component", func(t *testing.T) {
		r := newTestRegistry()
		e := r.Spawn("e", Position{X: 5, Y: 10})

		view := ecs.NewView[struct {
			*Position
			*Velocity
		}](r)

		assert.Nil(t, view.Get(e.Id))
		assert.False(t, view.Contains(e.Id))
	})

	t.Run("fill points at pool storage", func(t *testing.T) {
		r := newTestRegistry()
		e := r.Spawn("e", Position{X: 3, Y: 4}, Health{Current: 50, Max: 100})

		view := ecs.NewView[struct {
			*Position
			*Health
		}](r)

		var item struct {
			*Position
			*Health
		}
		require.True(t, view.Fill(e.Id, &item))
		item.Health.Current = 10

		assert.Equal(t, 10, ecs.GetComponent[Health](r, e).Current)
	})

	t.Run("optional components", func(t *testing.T) {
		r := newTestRegistry()
		withHealth := r.Spawn("a", Position{}, Health{Current: 1})
		without := r.Spawn("b", Position{})

		view := ecs.NewView[struct {
			Position *Position
			Health   *Health `ecs:"optional"`
		}](r)

		assert.Equal(t, 2, view.Count())
		assert.NotNil(t, view.Get(withHealth.Id).Health)
		assert.Nil(t, view.Get(without.Id).Health)
	})

	t.Run("id and handle fields", func(t *testing.T) {
		r := newTestRegistry()
		old := r.MakeEntity("old")
		r.RemoveEntity(old)
		e := r.Spawn("e", Position{})

		view := ecs.NewView[struct {
			Id     ecs.EntityId
			Handle ecs.Entity
			*Position
		}](r)

		item := view.Get(e.Id)
		require.NotNil(t, item)
		assert.Equal(t, e.Id, item.Id)
		assert.Equal(t, e, item.Handle)
		assert.Equal(t, item, view.GetEntity(e))
		assert.Nil(t, view.GetEntity(old))
	})

	t.Run("iter and values", func(t *testing.T) {
		r := newTestRegistry()
		spawnOverlap(r)

		view := ecs.NewView[struct {
			*Position
			*Velocity
		}](r)

		var ids []ecs.EntityId
		for id, item := range view.Iter() {
			ids = append(ids, id)
			assert.Equal(t, item.Position.X, item.Velocity.DX)
		}
		assert.Equal(t, []ecs.EntityId{2, 3}, sorted(ids))

		n := 0
		for range view.Values() {
			n++
		}
		assert.Equal(t, 2, n)
		assert.Equal(t, 3, view.SizeHint())
	})

	t.Run("spawn", func(t *testing.T) {
		r := newTestRegistry()
		view := ecs.NewView[struct {
			*Position
			Health *Health `ecs:"optional"`
		}](r)

		e := view.Spawn("spawned", struct {
			*Position
			Health *Health `ecs:"optional"`
		}{Position: &Position{X: 7}})

		assert.Equal(t, "spawned", r.Name(e))
		assert.Equal(t, float32(7), ecs.GetComponent[Position](r, e).X)
		assert.False(t, ecs.HasComponent[Health](r, e))
	})

	t.Run("spawn requires required components", func(t *testing.T) {
		r := newTestRegistry()
		view := ecs.NewView[struct{ *Position }](r)

		assert.Panics(t, func() {
			view.Spawn("e", struct{ *Position }{})
		})
		assert.Equal(t, 0, r.NumEntities())
	})

	t.Run("invalid declarations", func(t *testing.T) {
		r := newTestRegistry()

		assert.Panics(t, func() { ecs.NewView[int](r) })
		assert.Panics(t, func() { ecs.NewView[struct{ Position Position }](r) })
		assert.Panics(t, func() {
			ecs.NewView[struct {
				Position *Position `ecs:"maybe"`
			}](r)
		})
		assert.Panics(t, func() {
			ecs.NewView[struct {
				Position *Position `ecs:"optional"`
			}](r)
		})
	})
}

func TestDynamicView(t *testing.T) {
	r := newTestRegistry()
	spawnOverlap(r)

	view := ecs.NewDynamicView(r, ecs.PoolOf[Position](r).Type(), ecs.PoolOf[Velocity](r).Type())

	assert.Equal(t, 2, view.Count())
	for id, components := range view.Iter() {
		require.Len(t, components, 2)
		assert.Equal(t, float32(id), components[0].(*Position).X)
		assert.Equal(t, float32(id), components[1].(*Velocity).DX)
	}
}
