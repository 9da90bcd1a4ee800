package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var (
	entityIdType = reflect.TypeFor[EntityId]()
	entityType   = reflect.TypeFor[Entity]()
)

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with embedded or named pointer fields for each
// component type. Named fields can be marked as optional using the
// `ecs:"optional"` struct tag. A field of type EntityId or Entity receives the
// id or the handle of the current entity.
//
// Like the typed views, iteration is driven by the smallest required pool.
type View[T any] struct {
	registry    *Registry
	pools       []ErasedPool
	optional    []bool
	fieldOffset []uintptr
	required    []ErasedPool

	idOffset     uintptr
	hasId        bool
	handleOffset uintptr
	hasHandle    bool
}

// NewView creates a new view for the given struct type.
// Embedded fields are always required. Panics if T is not a struct, if a field
// is neither a component pointer nor an id, if a component type is not
// registered, or if every component field is optional.
func NewView[T any](r *Registry) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{registry: r}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		switch field.Type {
		case entityIdType:
			v.idOffset, v.hasId = field.Offset, true
			continue
		case entityType:
			v.handleOffset, v.hasHandle = field.Offset, true
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types: " + structType.String() + "." + field.Name)
		}

		isOptional := false
		if !field.Anonymous {
			if tag := field.Tag.Get("ecs"); tag != "" {
				if tag != "optional" {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
				isOptional = true
			}
		}

		pool := r.mustPool(field.Type.Elem())
		v.pools = append(v.pools, pool)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		if !isOptional {
			v.required = append(v.required, pool)
		}
	}

	if len(v.required) == 0 {
		panic("View " + structType.String() + " needs at least one required component")
	}
	return v
}

func (v *View[T]) driver() ErasedPool {
	d := v.required[0]
	for _, p := range v.required[1:] {
		if p.Len() < d.Len() {
			d = p
		}
	}
	return d
}

// Contains reports whether id owns every required component
func (v *View[T]) Contains(id EntityId) bool {
	for _, p := range v.required {
		if !p.Has(id) {
			return false
		}
	}
	return true
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is missing any required components.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.Contains(id) {
		return false
	}
	v.fill(id, unsafe.Pointer(ptr))
	return true
}

func (v *View[T]) fill(id EntityId, structPtr unsafe.Pointer) {
	for i, p := range v.pools {
		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])
		component := p.GetAny(id)
		if component == nil {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = dataPointer(component)
	}
	if v.hasId {
		*(*EntityId)(unsafe.Add(structPtr, v.idOffset)) = id
	}
	if v.hasHandle {
		*(*Entity)(unsafe.Add(structPtr, v.handleOffset)) = Entity{Id: id, Generation: v.registry.info.Get(id).Generation}
	}
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetEntity is Get for a handle; stale or dead handles yield nil
func (v *View[T]) GetEntity(e Entity) *T {
	if !v.registry.Alive(e) {
		return nil
	}
	return v.Get(e.Id)
}

// Iter returns an iterator over all entities that have the required components.
// The iterator yields (EntityId, T) pairs where T is the populated view struct.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var result T
		resultPtr := unsafe.Pointer(&result)
		for _, id := range v.driver().Entities() {
			if !v.Contains(id) {
				continue
			}
			v.fill(id, resultPtr)
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count walks the view and returns the number of members
func (v *View[T]) Count() int {
	n := 0
	for _, id := range v.driver().Entities() {
		if v.Contains(id) {
			n++
		}
	}
	return n
}

// SizeHint is the size of the smallest required pool
func (v *View[T]) SizeHint() int {
	return v.driver().Len()
}

// Spawn creates a named entity with a copy of every non-nil component of data.
// Id fields of data are ignored.
func (v *View[T]) Spawn(name string, data T) Entity {
	structPtr := unsafe.Pointer(&data)
	for i, p := range v.pools {
		if v.optional[i] {
			continue
		}
		if *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i])) == nil {
			panic("required component " + p.Type().String() + " is nil in View.Spawn")
		}
	}

	e := v.registry.MakeEntity(name)
	for i, p := range v.pools {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil || p == v.registry.info {
			continue
		}
		v.registry.AddComponentValue(e, reflect.NewAt(p.Type(), componentPtr).Interface())
	}
	return e
}
