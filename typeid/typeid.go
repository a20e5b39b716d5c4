package typeid

import (
	"reflect"
	"unsafe"
)

// Id identifies a Go type for the lifetime of the process.
// Two ids are equal if and only if they were derived from the same type.
type Id uint64

// Of returns the Id of the type parameter T.
// Interface types are valid and get an Id distinct from their implementations.
func Of[T any]() Id {
	return OfType(reflect.TypeFor[T]())
}

// OfType returns the Id of the reflected type.
// The result is not stable across binaries or runs of the same binary.
func OfType(t reflect.Type) Id {
	if t == nil {
		panic("typeid: OfType called with nil type")
	}

	return Id(mix(uint64(descriptorAddr(t))))
}

// descriptorAddr returns the address of the runtime type descriptor backing t.
// Every type has exactly one descriptor per process.
func descriptorAddr(t reflect.Type) uintptr {
	type eface struct {
		typ, val unsafe.Pointer
	}

	return uintptr((*eface)(unsafe.Pointer(&t)).val)
}

// mix is the splitmix64 finalizer. It is a bijection on uint64, so distinct
// descriptor addresses keep distinct ids while the aligned low bits get spread
// over the whole word.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
