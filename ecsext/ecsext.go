// Package ecsext attaches a typestore.Store to donburi entities, so systems can
// hang arbitrary per-entity data off an entity without declaring a component
// type for each piece.
package ecsext

import (
	"fmt"

	"github.com/leap-fish/typestore/typestore"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Component holds the extension store of an entity.
var Component = donburi.NewComponentType[typestore.Store]()

// Query matches all entities that have an extension store.
var Query = donburi.NewQuery(filter.Contains(Component))

// Of returns the extension store of the entry, attaching an empty one if the
// entry has none yet. The returned pointer is only valid until the entry's
// archetype changes.
func Of(entry *donburi.Entry) *typestore.Store {
	if !entry.HasComponent(Component) {
		entry.AddComponent(Component)
	}

	return Component.Get(entry)
}

// Insert stores value in the extension store of the entry.
func Insert[T any](entry *donburi.Entry, value T) {
	typestore.Insert(Of(entry), value)
}

// Get returns the value of type T from the extension store of the entry.
// It does not attach a store if the entry has none.
func Get[T any](entry *donburi.Entry) (T, bool) {
	if !entry.HasComponent(Component) {
		var zero T
		return zero, false
	}

	return typestore.Get[T](Component.Get(entry))
}

// Remove takes the value of type T out of the extension store of the entry.
func Remove[T any](entry *donburi.Entry) (T, bool) {
	if !entry.HasComponent(Component) {
		var zero T
		return zero, false
	}

	return typestore.Remove[T](Component.Get(entry))
}

// Detach releases all values of the entry's extension store and removes the
// store from the entry.
func Detach(entry *donburi.Entry) error {
	if !entry.HasComponent(Component) {
		return nil
	}

	err := Component.Get(entry).Close()
	entry.RemoveComponent(Component)

	if err != nil {
		return fmt.Errorf("entity %d: %w", entry.Id(), err)
	}

	return nil
}

// Each calls fn for every valid entity in the world that has an extension store.
func Each(world donburi.World, fn func(entry *donburi.Entry, store *typestore.Store)) {
	Query.Each(world, func(entry *donburi.Entry) {
		if !entry.Valid() {
			return
		}

		fn(entry, Component.Get(entry))
	})
}
