package hashtab

import "iter"

// Set is a hash set of keys compared with a caller-supplied Functions pair.
type Set[K any] struct {
	t table[K, struct{}]
}

// NewSet creates an empty set. Storage is allocated on the first Insert
// unless WithCapacity is given.
func NewSet[K any](fns Functions[K], opts ...Option) *Set[K] {
	s := &Set[K]{}
	s.t.init("Set", fns, opts)
	return s
}

// Lookup returns the stored key equal to k.
func (s *Set[K]) Lookup(k K) (K, bool) {
	if e, ok := s.t.lookup(k); ok {
		return e.key, true
	}
	var zero K
	return zero, false
}

// Contains reports whether a key equal to k is stored.
func (s *Set[K]) Contains(k K) bool {
	_, ok := s.t.lookup(k)
	return ok
}

// Insert adds k, which must not be present yet.
func (s *Set[K]) Insert(k K) {
	s.t.insertNew(k, struct{}{})
}

// Replace stores k. If an equal key was present it is swapped out and
// returned.
func (s *Set[K]) Replace(k K) (old K, replaced bool) {
	e, ok := s.t.replace(k, struct{}{})
	return e.key, ok
}

// Erase removes the key equal to k and returns the stored key.
func (s *Set[K]) Erase(k K) (K, bool) {
	e, ok := s.t.erase(k)
	return e.key, ok
}

// Iterate calls fn for every key. fn must not modify the set.
func (s *Set[K]) Iterate(fn func(k K)) {
	s.t.live("Iterate")
	s.t.all(func(k K, _ struct{}) bool {
		fn(k)
		return true
	})
}

// All returns an iterator over the keys. The set must not be modified while
// the iteration is running.
func (s *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		s.t.live("All")
		s.t.all(func(k K, _ struct{}) bool {
			return yield(k)
		})
	}
}

// Len returns the number of keys.
func (s *Set[K]) Len() int { return s.t.used }

// Cap returns the number of slots currently allocated.
func (s *Set[K]) Cap() int { return len(s.t.slots) }

// Clear removes all keys and keeps the storage.
func (s *Set[K]) Clear() {
	s.t.mutable("Clear")
	s.t.clear()
}

// Free releases the storage. The set must not be used afterwards.
func (s *Set[K]) Free() {
	s.t.mutable("Free")
	s.t.free()
}
