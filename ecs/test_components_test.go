package ecs_test

import (
	"testing"

	"github.com/plus3/scenecs/ecs"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

type Inventory struct {
	Items []string
}

// Inventory copies its item list when cloned
func (i Inventory) Clone() Inventory {
	return Inventory{Items: append([]string(nil), i.Items...)}
}

type Stats struct {
	Attributes map[string]int
}

func newTestRegistry() *ecs.Registry {
	registry := ecs.NewRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[PlayerController](registry)
	ecs.RegisterComponent[AI](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Temperature](registry)
	ecs.RegisterComponent[Inventory](registry)
	ecs.RegisterComponent[Stats](registry)
	ecs.RegisterComponent[int32](registry)
	ecs.RegisterComponent[float64](registry)
	ecs.RegisterComponent[string](registry)
	return registry
}

// requireViolation runs fn and requires it to panic with an error matching target
func requireViolation(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "expected an error panic, got %v", r)
		assert.True(t, eris.Is(err, target), "expected %v, got %v", target, err)
	}()
	fn()
}
