package typestore

import "sync"

// Shared guards a Store with a read-write mutex so it can be used from
// multiple goroutines. The zero value wraps an empty Store.
type Shared struct {
	lock  sync.RWMutex
	store Store
}

// Read calls fn with the store while holding the read lock.
// fn must not modify the store or keep pointers obtained from it.
func (s *Shared) Read(fn func(store *Store)) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	fn(&s.store)
}

// Write calls fn with the store while holding the write lock.
func (s *Shared) Write(fn func(store *Store)) {
	s.lock.Lock()
	defer s.lock.Unlock()

	fn(&s.store)
}

// Load returns a copy of the stored value of type T.
func Load[T any](s *Shared) (value T, ok bool) {
	s.Read(func(store *Store) {
		value, ok = Get[T](store)
	})

	return value, ok
}

// Put replaces the value of type T.
func Put[T any](s *Shared, value T) {
	s.Write(func(store *Store) {
		Insert(store, value)
	})
}
