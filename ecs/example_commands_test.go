package ecs_test

import (
	"fmt"

	"github.com/plus3/scenecs/ecs"
)

type CleanupSystem struct {
	Entities ecs.Query[struct {
		Handle ecs.Entity
		*Position
		*Health
	}]
}

func (s *CleanupSystem) Execute(frame *ecs.UpdateFrame) {
	deadCount := 0
	for item := range s.Entities.Values() {
		if item.Health.Current <= 0 {
			frame.Commands.RemoveEntity(item.Handle)
			deadCount++
		}
	}
	if deadCount > 0 {
		fmt.Printf("Queued %d dead entities for removal\n", deadCount)
	}
}

// ExampleCommands demonstrates using command buffers to defer entity mutations.
// Removing entities while iterating a pool reorders it, so systems queue the
// removal instead. The Scheduler flushes commands at the end of each frame.
func ExampleCommands() {
	registry := ecs.NewRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Health](registry)

	registry.Spawn("dead", Position{X: 0, Y: 0}, Health{Current: 0, Max: 100})
	registry.Spawn("hurt", Position{X: 10, Y: 10}, Health{Current: 50, Max: 100})
	registry.Spawn("fine", Position{X: 20, Y: 20}, Health{Current: 100, Max: 100})

	scheduler := ecs.NewScheduler(registry)
	scheduler.Register(&CleanupSystem{})

	scheduler.Once(1.0)

	view := ecs.NewView1[Position](registry)
	fmt.Printf("Remaining entities: %d\n", view.Len())

	// Output:
	// Queued 1 dead entities for removal
	// Remaining entities: 2
}

type ShootTimer struct {
	TimeUntilShot float32
}

type ShootingSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
		*ShootTimer
	}]
}

func (s *ShootingSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		if item.ShootTimer.TimeUntilShot <= 0 {
			frame.Commands.MakeEntity("projectile",
				Position{X: item.Position.X, Y: item.Position.Y},
				Velocity{DX: item.Velocity.DX * 2, DY: item.Velocity.DY * 2},
			)
			fmt.Printf("Spawned projectile at (%.0f, %.0f)\n", item.Position.X, item.Position.Y)
			item.ShootTimer.TimeUntilShot = 10
		}
	}
}

// ExampleCommands_spawning shows using commands to create entities during
// iteration, as systems spawning projectiles or particles do.
func ExampleCommands_spawning() {
	registry := ecs.NewRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[ShootTimer](registry)

	registry.Spawn("turret",
		Position{X: 10, Y: 10},
		Velocity{DX: 1, DY: 0},
		ShootTimer{TimeUntilShot: 0},
	)
	registry.Spawn("cooling turret",
		Position{X: 20, Y: 20},
		Velocity{DX: 0, DY: 1},
		ShootTimer{TimeUntilShot: 5},
	)

	scheduler := ecs.NewScheduler(registry)
	scheduler.Register(&ShootingSystem{})

	scheduler.Once(1.0)

	view := ecs.NewView2[Position, Velocity](registry)
	fmt.Printf("Total entities with velocity: %d\n", view.Count())

	// Output:
	// Spawned projectile at (10, 10)
	// Total entities with velocity: 3
}
