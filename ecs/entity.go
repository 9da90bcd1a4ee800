package ecs

import (
	"math"
	"strconv"
)

// EntityId is the raw slot index of an entity. Pools and views are keyed by it.
type EntityId uint32

// NoEntity is never handed out by a Registry.
const NoEntity EntityId = math.MaxUint32

// Entity is a generation-checked handle to an entity.
// The Registry rejects handles whose generation no longer matches the slot,
// so a handle kept across a destroy/reuse cycle cannot address the new occupant.
type Entity struct {
	Id         EntityId
	Generation uint32
}

// Nil is the zero-generation handle of NoEntity.
var Nil = Entity{Id: NoEntity}

// IsNil reports whether e is the Nil handle
func (e Entity) IsNil() bool {
	return e.Id == NoEntity
}

func (e Entity) String() string {
	if e.IsNil() {
		return "nil"
	}
	return strconv.FormatUint(uint64(e.Id), 10) + "#" + strconv.FormatUint(uint64(e.Generation), 10)
}
