package main

import (
	"fmt"
	"math/rand"
	"reflect"

	"github.com/plus3/scenecs/ecs"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	X, Y float32
}

// Health counts down one point per frame; the entity is removed at zero
type Health struct {
	Current int
}

// Counters tallies the scene operations performed during a run. It lives
// outside the registry so snapshot restores do not rewind it.
type Counters struct {
	Spawned    int64 `json:"spawned"`
	Removed    int64 `json:"removed"`
	Duplicated int64 `json:"duplicated"`
	Reparented int64 `json:"reparented"`
	Snapshots  int64 `json:"snapshots"`
	Restores   int64 `json:"restores"`
	Visited    int64 `json:"visited"`
}

func registerComponents(r *ecs.Registry) {
	ecs.RegisterComponent[Position](r)
	ecs.RegisterComponent[Velocity](r)
	ecs.RegisterComponent[Health](r)
}

func randomBody(rng *rand.Rand) []any {
	return []any{
		ecs.NewTransform(ecs.Vec3{X: rng.Float32() * 100, Y: rng.Float32() * 100}),
		Position{X: rng.Float32() * 100, Y: rng.Float32() * 100},
		Velocity{X: rng.Float32()*2 - 1, Y: rng.Float32()*2 - 1},
		Health{Current: 30 + rng.Intn(270)},
	}
}

// populate spawns n bodies directly, outside any frame
func populate(r *ecs.Registry, rng *rand.Rand, n int, counters *Counters) {
	for i := 0; i < n; i++ {
		r.Spawn(fmt.Sprintf("body-%d", i), randomBody(rng)...)
	}
	counters.Spawned += int64(n)
}

type MovementSystem struct {
	Bodies ecs.Query[struct {
		Pos *Position
		Vel *Velocity
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for body := range s.Bodies.Values() {
		body.Pos.X += body.Vel.X * dt
		body.Pos.Y += body.Vel.Y * dt
	}
}

// HierarchySystem resolves world positions one level deep per frame
type HierarchySystem struct {
	Nodes ecs.Query[struct {
		Transform *ecs.Transform
	}]
}

func (s *HierarchySystem) Execute(frame *ecs.UpdateFrame) {
	transforms := ecs.PoolOf[ecs.Transform](frame.Registry)
	for node := range s.Nodes.Values() {
		t := node.Transform
		t.Position = t.LocalPosition
		if t.HasParent {
			if parent, ok := transforms.TryGet(t.Parent); ok {
				t.Position.X += parent.Position.X
				t.Position.Y += parent.Position.Y
				t.Position.Z += parent.Position.Z
			}
		}
		t.MatrixOutdated = false
	}
}

type DecaySystem struct {
	Living ecs.Query[struct {
		Handle ecs.Entity
		Health *Health
	}]

	counters *Counters
}

func (s *DecaySystem) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Living.Values() {
		body.Health.Current--
		if body.Health.Current <= 0 {
			frame.Commands.RemoveEntity(body.Handle)
			s.counters.Removed++
		}
	}
}

// ChurnSystem spawns new bodies, links roots into shallow trees and
// duplicates whole subtrees. Trees are kept two levels deep so they never
// form cycles.
type ChurnSystem struct {
	Nodes ecs.Query[struct {
		Handle    ecs.Entity
		Transform *ecs.Transform
	}]

	rng       *rand.Rand
	spawnRate int
	counters  *Counters
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	for i := 0; i < s.spawnRate; i++ {
		frame.Commands.MakeEntity("spawned", randomBody(s.rng)...)
	}
	s.counters.Spawned += int64(s.spawnRate)

	var roots, leaves []ecs.Entity
	for node := range s.Nodes.Values() {
		if node.Transform.HasParent {
			continue
		}
		roots = append(roots, node.Handle)
		if len(node.Transform.Children) == 0 {
			leaves = append(leaves, node.Handle)
		}
	}
	if len(roots) < 2 {
		return
	}

	// an entity picked as a child this frame is never picked as a parent,
	// and the other way round
	children := map[ecs.EntityId]bool{}
	parents := map[ecs.EntityId]bool{}
	for i := 0; i < s.spawnRate/10+1 && len(leaves) > 0; i++ {
		child := leaves[s.rng.Intn(len(leaves))]
		parent := roots[s.rng.Intn(len(roots))]
		if child == parent || children[child.Id] || parents[child.Id] || children[parent.Id] {
			continue
		}
		children[child.Id] = true
		parents[parent.Id] = true
		frame.Commands.SetParent(child, parent)
		s.counters.Reparented++
	}

	src := roots[s.rng.Intn(len(roots))]
	r := frame.Registry
	frame.Commands.Defer(func() {
		// the source may have been removed or reparented by this frame's flush
		if !r.Alive(src) || r.HasParent(src) {
			return
		}
		for _, c := range r.Children(src) {
			if len(r.Children(c)) > 0 {
				return
			}
		}
		r.DuplicateEntity(src)
		s.counters.Duplicated++
	})
}

// ViewSystem walks the typed and dynamic views every frame
type ViewSystem struct {
	bodies  *ecs.View2[Position, Velocity]
	dynamic *ecs.DynamicView

	counters *Counters
}

func newViewSystem(r *ecs.Registry, counters *Counters) *ViewSystem {
	return &ViewSystem{
		bodies:   ecs.NewView2[Position, Velocity](r),
		dynamic:  ecs.NewDynamicView(r, reflect.TypeFor[Health](), reflect.TypeFor[ecs.Transform]()),
		counters: counters,
	}
}

func (s *ViewSystem) Execute(frame *ecs.UpdateFrame) {
	s.bodies.Each(func(ecs.EntityId, *Position, *Velocity) {
		s.counters.Visited++
	})
	s.counters.Visited += int64(s.dynamic.Count())
}

// SnapshotSystem takes a snapshot every n frames and restores it n/2 frames
// later, so half of every period is replayed.
type SnapshotSystem struct {
	every    int
	frame    int
	counters *Counters
}

func (s *SnapshotSystem) Execute(frame *ecs.UpdateFrame) {
	if s.every == 0 {
		return
	}
	s.frame++
	r := frame.Registry
	switch s.frame % s.every {
	case 0:
		frame.Commands.Defer(func() {
			r.MakeSnapshot()
			s.counters.Snapshots++
		})
	case s.every / 2:
		if s.frame < s.every {
			return
		}
		frame.Commands.Defer(func() {
			if r.LoadSnapshot() {
				s.counters.Restores++
			}
		})
	}
}

// newWorkload builds the registry and scheduler for a run
func newWorkload(cfg Config, opts ...ecs.Option) (*ecs.Registry, *ecs.Scheduler, *Counters) {
	r := ecs.NewRegistry(append([]ecs.Option{ecs.WithEntityCapacity(cfg.Entities)}, opts...)...)
	registerComponents(r)

	counters := &Counters{}
	rng := rand.New(rand.NewSource(cfg.Seed))
	populate(r, rng, cfg.Entities, counters)

	s := ecs.NewScheduler(r)
	s.Register(&MovementSystem{})
	s.Register(&HierarchySystem{})
	s.Register(&DecaySystem{counters: counters})
	s.Register(&ChurnSystem{rng: rng, spawnRate: cfg.SpawnRate, counters: counters})
	s.Register(newViewSystem(r, counters))
	s.Register(&SnapshotSystem{every: cfg.SnapshotEvery, counters: counters})
	return r, s, counters
}
