package ecs_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/plus3/scenecs/ecs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	t.Run("ids and generations", func(t *testing.T) {
		r := newTestRegistry()

		a := r.MakeEntity("A")
		assert.Equal(t, ecs.Entity{Id: 0, Generation: 0}, a)
		assert.Equal(t, "0#0", a.String())

		r.RemoveEntity(a)
		assert.False(t, r.Alive(a))
		assert.True(t, r.IsDestroyed(0))
		assert.Equal(t, ecs.EntityId(0), r.NextAvailable())

		b := r.MakeEntity("B")
		assert.Equal(t, ecs.Entity{Id: 0, Generation: 1}, b)
		assert.Equal(t, "B", r.Name(b))
		assert.False(t, r.Alive(a))
		assert.True(t, r.Alive(b))
	})

	t.Run("new ids are allocated when no slot is free", func(t *testing.T) {
		r := newTestRegistry()

		for i := 0; i < 3; i++ {
			e := r.MakeEntity("e")
			assert.Equal(t, ecs.EntityId(i), e.Id)
		}
		assert.Equal(t, ecs.EntityId(3), r.NextAvailable())
		assert.Equal(t, 3, r.NumEntities())
	})

	t.Run("first destroyed slot is reused first", func(t *testing.T) {
		r := newTestRegistry()
		e0 := r.MakeEntity("0")
		r.MakeEntity("1")
		e2 := r.MakeEntity("2")

		r.RemoveEntity(e2)
		r.RemoveEntity(e0)

		assert.Equal(t, ecs.EntityId(0), r.MakeEntity("x").Id)
		assert.Equal(t, ecs.EntityId(2), r.MakeEntity("y").Id)
		assert.Equal(t, ecs.EntityId(3), r.MakeEntity("z").Id)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		r := newTestRegistry()
		e := r.Spawn("e", Position{X: 1})

		r.RemoveEntity(e)
		r.RemoveEntity(e)

		assert.Equal(t, 0, r.NumEntities())
		assert.Equal(t, 0, ecs.PoolOf[Position](r).Len())
		assert.Equal(t, ecs.EntityId(0), r.MakeEntity("again").Id)
	})

	t.Run("stale handle does not remove the new owner", func(t *testing.T) {
		r := newTestRegistry()
		old := r.MakeEntity("old")
		r.RemoveEntity(old)
		fresh := r.MakeEntity("fresh")

		r.RemoveEntity(old)

		assert.True(t, r.Alive(fresh))
	})

	t.Run("remove drops every component", func(t *testing.T) {
		r := newTestRegistry()
		e := r.Spawn("e", Position{}, Velocity{}, ecs.NewTransform(ecs.Vec3{}))
		other := r.Spawn("other", Position{X: 9})

		r.RemoveEntity(e)

		for _, p := range r.Pools() {
			if p.Type() == reflect.TypeFor[ecs.EInfo]() {
				continue
			}
			assert.False(t, p.Has(e.Id), "pool %s", p.Type())
		}
		assert.Equal(t, float32(9), ecs.GetComponent[Position](r, other).X)
		assert.Equal(t, "", ecs.PoolOf[ecs.EInfo](r).Get(e.Id).Name)
	})

	t.Run("stale handles panic on access", func(t *testing.T) {
		r := newTestRegistry()
		old := r.MakeEntity("old")
		r.RemoveEntity(old)

		requireViolation(t, ecs.ErrEntityNotAlive, func() {
			r.Name(old)
		})

		r.MakeEntity("new")
		requireViolation(t, ecs.ErrStaleEntity, func() {
			ecs.AddComponent(r, old, Position{})
		})
		requireViolation(t, ecs.ErrEntityNotAlive, func() {
			r.EntityOf(42)
		})
	})

	t.Run("set name", func(t *testing.T) {
		r := newTestRegistry()
		e := r.MakeEntity("before")
		r.SetName(e, "after")

		assert.Equal(t, "after", r.Name(e))
	})

	t.Run("entities lists live handles", func(t *testing.T) {
		r := newTestRegistry()
		a := r.MakeEntity("a")
		b := r.MakeEntity("b")
		c := r.MakeEntity("c")
		r.RemoveEntity(b)

		assert.Equal(t, []ecs.Entity{a, c}, r.Entities())
		assert.Equal(t, c, r.EntityOf(c.Id))
	})

	t.Run("clear scene", func(t *testing.T) {
		r := newTestRegistry()
		parent := r.Spawn("parent", ecs.NewTransform(ecs.Vec3{}))
		child := r.Spawn("child", ecs.NewTransform(ecs.Vec3{}))
		r.SetParent(child, parent)

		r.ClearScene()

		assert.Equal(t, 0, r.NumEntities())
		assert.Equal(t, 0, ecs.PoolOf[ecs.Transform](r).Len())
	})
}

func TestRegistryComponents(t *testing.T) {
	t.Run("add get remove", func(t *testing.T) {
		r := newTestRegistry()
		e := r.MakeEntity("e")

		pos := ecs.AddComponent(r, e, Position{X: 1, Y: 2})
		pos.X = 5

		assert.True(t, ecs.HasComponent[Position](r, e))
		assert.Equal(t, float32(5), ecs.GetComponent[Position](r, e).X)

		ecs.RemoveComponent[Position](r, e)
		assert.False(t, ecs.HasComponent[Position](r, e))
		_, ok := ecs.TryGetComponent[Position](r, e)
		assert.False(t, ok)

		// removing again is a no-op
		ecs.RemoveComponent[Position](r, e)
	})

	t.Run("primitive components", func(t *testing.T) {
		r := newTestRegistry()
		e := r.Spawn("e", Score(10), Tag("boss"), int32(7))

		assert.Equal(t, Score(10), *ecs.GetComponent[Score](r, e))
		assert.Equal(t, Tag("boss"), *ecs.GetComponent[Tag](r, e))
		assert.Equal(t, int32(7), *ecs.GetComponent[int32](r, e))
	})

	t.Run("duplicate component panics", func(t *testing.T) {
		r := newTestRegistry()
		e := r.Spawn("e", Position{})

		requireViolation(t, ecs.ErrDuplicateComponent, func() {
			ecs.AddComponent(r, e, Position{})
		})
	})

	t.Run("missing component panics", func(t *testing.T) {
		r := newTestRegistry()
		e := r.MakeEntity("e")

		requireViolation(t, ecs.ErrComponentNotFound, func() {
			ecs.GetComponent[Position](r, e)
		})
	})

	t.Run("unregistered component panics", func(t *testing.T) {
		r := ecs.NewRegistry()
		e := r.MakeEntity("e")

		requireViolation(t, ecs.ErrComponentNotRegistered, func() {
			ecs.AddComponent(r, e, Position{})
		})
		assert.False(t, ecs.HasComponent[Position](r, e))
	})

	t.Run("EInfo is reserved", func(t *testing.T) {
		r := newTestRegistry()
		e := r.MakeEntity("e")

		requireViolation(t, ecs.ErrReservedComponent, func() {
			ecs.AddComponent(r, e, ecs.EInfo{})
		})
		requireViolation(t, ecs.ErrReservedComponent, func() {
			ecs.RemoveComponent[ecs.EInfo](r, e)
		})
		assert.True(t, ecs.HasComponent[ecs.EInfo](r, e))
	})

	t.Run("register is idempotent", func(t *testing.T) {
		r := newTestRegistry()
		before := len(r.Pools())

		p := ecs.RegisterComponent[Position](r)

		assert.Same(t, ecs.PoolOf[Position](r), p)
		assert.Equal(t, before, len(r.Pools()))
	})

	t.Run("reference kinds cannot be components", func(t *testing.T) {
		r := ecs.NewRegistry()

		assert.Panics(t, func() { ecs.RegisterComponent[*Position](r) })
		assert.Panics(t, func() { ecs.RegisterComponent[map[string]int](r) })
		assert.Panics(t, func() { ecs.RegisterComponent[func()](r) })
	})

	t.Run("builtin pools come first", func(t *testing.T) {
		r := newTestRegistry()
		pools := r.Pools()

		require.GreaterOrEqual(t, len(pools), 2)
		assert.Equal(t, reflect.TypeFor[ecs.EInfo](), pools[0].Type())
		assert.Equal(t, reflect.TypeFor[ecs.Transform](), pools[1].Type())
	})

	t.Run("runtime typed access", func(t *testing.T) {
		r := newTestRegistry()
		e := r.MakeEntity("e")
		healthType := reflect.TypeFor[Health]()

		stored := r.AddComponentValue(e, &Health{Current: 3, Max: 5})
		assert.Equal(t, &Health{Current: 3, Max: 5}, stored)
		assert.True(t, r.HasComponentType(e, healthType))
		assert.Equal(t, stored, r.ComponentByType(e, healthType))
		assert.Equal(t, []reflect.Type{reflect.TypeFor[ecs.EInfo](), healthType}, r.ComponentTypes(e))

		r.RemoveComponentType(e, healthType)
		assert.Nil(t, r.ComponentByType(e, healthType))
	})
}

func TestRegistryDuplicate(t *testing.T) {
	t.Run("copies every component", func(t *testing.T) {
		r := newTestRegistry()
		src := r.Spawn("src", Position{X: 1}, Inventory{Items: []string{"key"}})

		dup := r.DuplicateEntity(src)

		assert.NotEqual(t, src.Id, dup.Id)
		assert.Equal(t, "src", r.Name(dup))
		assert.Equal(t, float32(1), ecs.GetComponent[Position](r, dup).X)

		ecs.GetComponent[Inventory](r, dup).Items[0] = "lock"
		assert.Equal(t, "key", ecs.GetComponent[Inventory](r, src).Items[0])
	})

	t.Run("duplicates children recursively", func(t *testing.T) {
		r := newTestRegistry()
		root := r.Spawn("root", ecs.NewTransform(ecs.Vec3{}))
		src := r.Spawn("src", ecs.NewTransform(ecs.Vec3{X: 1}))
		child := r.Spawn("child", ecs.NewTransform(ecs.Vec3{}), Position{X: 2})
		grandchild := r.Spawn("grandchild", ecs.NewTransform(ecs.Vec3{}))
		r.SetParent(src, root)
		r.SetParent(child, src)
		r.SetParent(grandchild, child)

		dup := r.DuplicateEntity(src)

		parent, ok := r.Parent(dup)
		require.True(t, ok)
		assert.Equal(t, root, parent)
		assert.Len(t, r.Children(root), 2)

		dupChildren := r.Children(dup)
		require.Len(t, dupChildren, 1)
		assert.NotEqual(t, child, dupChildren[0])
		assert.Equal(t, "child", r.Name(dupChildren[0]))
		assert.Equal(t, float32(2), ecs.GetComponent[Position](r, dupChildren[0]).X)

		dupGrandchildren := r.Children(dupChildren[0])
		require.Len(t, dupGrandchildren, 1)
		assert.Equal(t, "grandchild", r.Name(dupGrandchildren[0]))

		// the source subtree is untouched
		assert.Equal(t, []ecs.Entity{child}, r.Children(src))
		assert.Equal(t, []ecs.Entity{grandchild}, r.Children(child))
		assert.Equal(t, 7, r.NumEntities())
	})
}

func TestRegistryEvents(t *testing.T) {
	r := newTestRegistry()

	var created []string
	var removed []ecs.Entity
	var added []reflect.Type
	ecs.Subscribe(r.Events(), func(ev ecs.EntityCreated) { created = append(created, ev.Name) })
	ecs.Subscribe(r.Events(), func(ev ecs.EntityRemoved) { removed = append(removed, ev.Entity) })
	ecs.Subscribe(r.Events(), func(ev ecs.ComponentAdded) { added = append(added, ev.Type) })

	e := r.Spawn("hero", Position{}, Velocity{})
	r.RemoveEntity(e)

	assert.Equal(t, []string{"hero"}, created)
	assert.Equal(t, []ecs.Entity{e}, removed)
	assert.Equal(t, []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()}, added)
}

func TestRegistryLogging(t *testing.T) {
	var buf bytes.Buffer
	r := ecs.NewRegistry(ecs.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	e := r.MakeEntity("logged")
	r.RemoveEntity(e)
	r.MakeSnapshot()

	out := buf.String()
	assert.Contains(t, out, `"message":"component registered"`)
	assert.Contains(t, out, `"message":"entity created"`)
	assert.Contains(t, out, `"name":"logged"`)
	assert.Contains(t, out, `"message":"entity removed"`)
	assert.Contains(t, out, `"message":"snapshot taken"`)
}
