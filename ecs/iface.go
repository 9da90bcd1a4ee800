package ecs

import (
	"reflect"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeKey returns an integer identity for t: the address of its runtime type
// descriptor, which is unique per type for the lifetime of the process.
func typeKey(t reflect.Type) int {
	return int(uintptr((*iface)(unsafe.Pointer(&t)).data))
}

// dataPointer extracts the pointer stored in an interface holding a pointer value.
func dataPointer(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}
