package ecs

import (
	"reflect"
	"unsafe"
)

// singletonEntry holds one singleton value; dataPtr points at a heap-allocated T
// that stays put for the lifetime of the registry.
type singletonEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
	save    func() any
	load    func(any)
}

func addSingleton[T any](r *Registry, value T) *singletonEntry {
	ptr := new(T)
	*ptr = value
	entry := &singletonEntry{
		typ:     reflect.TypeFor[T](),
		dataPtr: unsafe.Pointer(ptr),
		save: func() any {
			return cloneValue(*ptr)
		},
		load: func(v any) {
			*ptr = cloneValue(v.(T))
		},
	}
	r.singletons.Put(typeKey(entry.typ), entry)
	r.singletonList = append(r.singletonList, entry)
	r.logger.Debug().Str("singleton", entry.typ.String()).Msg("singleton added")
	return entry
}

func (r *Registry) getSingletonEntry(t reflect.Type) *singletonEntry {
	entry, ok := r.singletons.Get(typeKey(t))
	if !ok {
		return nil
	}
	return entry
}

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for global game state,
// configuration, or other singleton data. Singletons are part of snapshots.
type Singleton[T any] struct {
	registry      *Registry
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton creates a new Singleton accessor for the given registry.
// If initializer is provided and the singleton doesn't exist yet,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists after the call.
func NewSingleton[T any](r *Registry, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	entry := r.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		entry = addSingleton(r, value)
	}

	return &Singleton[T]{
		registry:      r,
		componentPtr:  entry.dataPtr,
		componentType: componentType,
	}
}

// Init binds the Singleton to a registry.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(r *Registry) {
	s.registry = r
	s.componentType = reflect.TypeFor[T]()
	s.componentPtr = nil
	s.updateCache()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton has not been added to the registry.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

// updateCache refreshes the cached pointer from the registry
func (s *Singleton[T]) updateCache() {
	if s.registry == nil {
		return
	}
	entry := s.registry.getSingletonEntry(s.componentType)
	if entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}

// Exists returns true if the singleton component has been added to the registry
func (s *Singleton[T]) Exists() bool {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return s.componentPtr != nil
}

// ReadSingleton returns the singleton of type T, or false if none was added
func ReadSingleton[T any](r *Registry) (*T, bool) {
	entry := r.getSingletonEntry(reflect.TypeFor[T]())
	if entry == nil {
		return nil, false
	}
	return (*T)(entry.dataPtr), true
}
