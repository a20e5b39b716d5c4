// Package typestore provides a heterogeneous container holding at most one
// value per Go type, addressed by the type itself.
//
// A Store is useful to attach loosely coupled data to a shared object, such as
// request scoped extensions or plugin state:
//
//	var store typestore.Store
//	typestore.Insert(&store, uint32(1))
//	typestore.Insert(&store, "hello")
//
//	n, ok := typestore.Get[uint32](&store) // 1, true
//	_, ok = typestore.Get[uint64](&store)  // 0, false
//
// A Store is not safe for concurrent use. Wrap it in a Shared, or guard it
// otherwise, when it is accessed from multiple goroutines.
package typestore

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/leap-fish/typestore/internal/idmap"
	"github.com/leap-fish/typestore/typeid"
	"github.com/sirupsen/logrus"
)

// Store holds at most one value of each type. The zero value is an empty
// store ready to use.
type Store struct {
	_ noCopy

	slots idmap.Map[slot]
	log   logrus.FieldLogger
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Store{log: cfg.log}
	if cfg.capacity > 0 {
		s.slots = *idmap.New[slot](cfg.capacity)
	}

	return s
}

// Insert stores value as the single value of type T.
// A value of type T that was already stored is released and replaced, unless
// it is the very closer being inserted again.
func Insert[T any](s *Store, value T) {
	ptr := new(T)
	*ptr = value

	previous, replaced := s.slots.Set(typeid.Of[T](), newSlot(ptr))
	if replaced && !sameCloser(any(*downcast[T](previous)), any(value)) {
		s.release(previous)
	}
}

// Get returns a copy of the stored value of type T.
// The boolean is false if no value of type T is stored.
func Get[T any](s *Store) (T, bool) {
	ptr, ok := GetMut[T](s)
	if !ok {
		var zero T
		return zero, false
	}

	return *ptr, true
}

// GetMut returns a pointer to the stored value of type T. Writes through the
// pointer are visible to later reads until the value is removed or replaced.
func GetMut[T any](s *Store) (*T, bool) {
	sl, ok := s.slots.Get(typeid.Of[T]())
	if !ok {
		return nil, false
	}

	return downcast[T](sl), true
}

// GetOrInsert returns a pointer to the stored value of type T, inserting the
// result of fn first if no such value exists.
func GetOrInsert[T any](s *Store, fn func() T) *T {
	if ptr, ok := GetMut[T](s); ok {
		return ptr
	}

	Insert(s, fn())

	ptr, _ := GetMut[T](s)
	return ptr
}

// Remove takes the stored value of type T out of the store and returns it.
// The value is handed to the caller as is and is not released.
func Remove[T any](s *Store) (T, bool) {
	sl, ok := s.slots.Delete(typeid.Of[T]())
	if !ok {
		var zero T
		return zero, false
	}

	return *downcast[T](sl), true
}

// Contains reports whether a value of type T is stored.
func Contains[T any](s *Store) bool {
	return s.slots.Has(typeid.Of[T]())
}

// Clear releases and removes all stored values.
func (s *Store) Clear() {
	if err := s.drain(); err != nil {
		s.logger().WithError(err).Warn("typestore: failed to release values on clear")
	}
}

// Close releases and removes all stored values, like Clear, but returns the
// errors of all failed releases instead of logging them.
func (s *Store) Close() error {
	return s.drain()
}

func (s *Store) IsEmpty() bool {
	return s.slots.Len() == 0
}

func (s *Store) Len() int {
	return s.slots.Len()
}

// Types returns the types of all stored values, sorted by name. Distinct
// types sharing a name are ordered by their typeid.Id.
func (s *Store) Types() []reflect.Type {
	types := make([]reflect.Type, 0, s.slots.Len())
	for _, sl := range s.slots.All() {
		types = append(types, sl.typ)
	}

	slices.SortFunc(types, func(a, b reflect.Type) int {
		if c := strings.Compare(a.String(), b.String()); c != 0 {
			return c
		}

		return cmp.Compare(typeid.OfType(a), typeid.OfType(b))
	})

	return types
}

func (s *Store) String() string {
	names := make([]string, 0, s.slots.Len())
	for _, typ := range s.Types() {
		names = append(names, typ.String())
	}

	return "typestore.Store[" + strings.Join(names, ", ") + "]"
}

// drain empties the table before releasing anything, so a panicking Close
// never leaves released values reachable.
func (s *Store) drain() error {
	slots := make([]slot, 0, s.slots.Len())
	for _, sl := range s.slots.All() {
		slots = append(slots, sl)
	}

	s.slots.Clear()

	var errs []error
	for _, sl := range slots {
		if err := sl.release(); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", sl.typ, err))
		}
	}

	return errors.Join(errs...)
}

func (s *Store) release(sl slot) {
	if err := sl.release(); err != nil {
		s.logger().
			WithField("type", sl.typ.String()).
			WithError(err).
			Warn("typestore: failed to release replaced value")
	}
}

func (s *Store) logger() logrus.FieldLogger {
	if s.log == nil {
		return logrus.StandardLogger()
	}

	return s.log
}

func downcast[T any](sl slot) *T {
	ptr, ok := sl.value.(*T)
	if !ok {
		panic(fmt.Sprintf("typestore: slot for %s holds %T", reflect.TypeFor[T](), sl.value))
	}

	return ptr
}
