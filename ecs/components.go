package ecs

// EInfo is attached to every entity the Registry has ever created.
// Destroyed entities keep their EInfo so the slot can be reused.
type EInfo struct {
	Name       string
	Generation uint32
	Destroyed  bool
}

type Vec3 struct {
	X, Y, Z float32
}

// Transform places an entity in the scene and carries the parent/child links.
// Parent and Children are maintained by the Registry hierarchy helpers; editing
// them directly can leave the two sides of a link inconsistent.
type Transform struct {
	LocalPosition Vec3
	LocalRotation Vec3
	LocalScale    Vec3

	// World-space values, written by whatever system resolves the hierarchy.
	Position Vec3
	Rotation Vec3

	// MatrixOutdated asks the consumer to recompute derived matrices.
	MatrixOutdated bool `editor:"hidden"`

	Parent    EntityId   `editor:"readonly"`
	HasParent bool       `editor:"readonly"`
	Children  []EntityId `editor:"readonly"`
}

// NewTransform returns a parentless transform at pos with unit scale
func NewTransform(pos Vec3) Transform {
	return Transform{
		LocalPosition:  pos,
		LocalScale:     Vec3{1, 1, 1},
		MatrixOutdated: true,
		Parent:         NoEntity,
	}
}

// Clone copies the transform with its own children slice
func (t Transform) Clone() Transform {
	t.Children = append([]EntityId(nil), t.Children...)
	return t
}

func (t *Transform) removeChild(child EntityId) {
	for i, c := range t.Children {
		if c == child {
			t.Children = append(t.Children[:i], t.Children[i+1:]...)
			return
		}
	}
}
