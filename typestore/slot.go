package typestore

import (
	"io"
	"reflect"
)

// slot holds one erased value. value is always a *T for the type typ.
type slot struct {
	typ     reflect.Type
	value   any
	release func() error
}

func newSlot[T any](ptr *T) slot {
	return slot{
		typ:     reflect.TypeFor[T](),
		value:   ptr,
		release: releaserOf(ptr),
	}
}

// releaserOf returns a func closing the value behind ptr if it is an
// io.Closer. The value is inspected at release time, as it may have been
// changed through GetMut in the meantime.
func releaserOf[T any](ptr *T) func() error {
	return func() error {
		value := any(*ptr)
		if closer, ok := value.(io.Closer); ok && !isNil(value) {
			return closer.Close()
		}

		if closer, ok := any(ptr).(io.Closer); ok {
			return closer.Close()
		}

		return nil
	}
}

// sameCloser reports whether previous and next are the same io.Closer, such as
// one *os.File inserted twice. Releasing previous would then close the value
// that is still stored.
func sameCloser(previous, next any) bool {
	if _, ok := previous.(io.Closer); !ok || isNil(previous) {
		return false
	}

	rv := reflect.ValueOf(previous)
	if rv.Type() != reflect.TypeOf(next) || !rv.Comparable() {
		return false
	}

	return previous == next
}

func isNil(value any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// noCopy lets go vet report a Store copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
