// Package idmap provides a hash table keyed by typeid.Id.
//
// Keys are hashed through typeid.Hasher only: ids are already well
// distributed, so the table uses them as their own hash instead of running
// them through a general purpose hash function.
package idmap

import (
	"iter"

	"github.com/leap-fish/typestore/typeid"
	"github.com/zyedidia/generic/hashmap"
)

const minCapacity = 8

// Map is a table from typeid.Id to V.
// The zero value is an empty map ready to use. A Map is not safe for
// concurrent use.
type Map[V any] struct {
	table    *hashmap.Map[typeid.Id, V]
	capacity uint64
}

// New returns a map presized to hold at least capacity entries without growing.
func New[V any](capacity int) *Map[V] {
	m := &Map[V]{}
	if capacity > minCapacity {
		m.capacity = uint64(capacity)
	}

	return m
}

func (m *Map[V]) Len() int {
	if m.table == nil {
		return 0
	}

	return m.table.Size()
}

// Get returns the value stored for id.
func (m *Map[V]) Get(id typeid.Id) (V, bool) {
	if m.table == nil {
		var zero V
		return zero, false
	}

	return m.table.Get(id)
}

func (m *Map[V]) Has(id typeid.Id) bool {
	_, ok := m.Get(id)
	return ok
}

// Set stores value for id and returns the value it replaced, if any.
func (m *Map[V]) Set(id typeid.Id, value V) (V, bool) {
	if m.table == nil {
		m.table = hashmap.New[typeid.Id, V](max(m.capacity, minCapacity), equals, hash)
	}

	previous, replaced := m.table.Get(id)
	m.table.Put(id, value)

	return previous, replaced
}

// Delete removes id and returns the value stored for it.
func (m *Map[V]) Delete(id typeid.Id) (V, bool) {
	value, ok := m.Get(id)
	if ok {
		m.table.Remove(id)
	}

	return value, ok
}

// Clear removes all entries.
func (m *Map[V]) Clear() {
	m.table = nil
}

// All iterates over all entries in table order.
// The map must not be modified during iteration.
func (m *Map[V]) All() iter.Seq2[typeid.Id, V] {
	return func(yield func(typeid.Id, V) bool) {
		if m.table == nil {
			return
		}

		stopped := false
		m.table.Each(func(id typeid.Id, value V) {
			if stopped {
				return
			}

			stopped = !yield(id, value)
		})
	}
}

func equals(a, b typeid.Id) bool {
	return a == b
}

func hash(id typeid.Id) uint64 {
	return typeid.Hash(id)
}
