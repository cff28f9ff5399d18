package hashtab

import "iter"

// Map is a hash map whose keys are compared with a caller-supplied Functions
// pair. Each entry carries one value of type V.
type Map[K, V any] struct {
	t table[K, V]
}

// NewMap creates an empty map. Storage is allocated on the first Insert
// unless WithCapacity is given.
func NewMap[K, V any](fns Functions[K], opts ...Option) *Map[K, V] {
	m := &Map[K, V]{}
	m.t.init("Map", fns, opts)
	return m
}

// Lookup returns the stored key equal to k and its value.
func (m *Map[K, V]) Lookup(k K) (K, V, bool) {
	if e, ok := m.t.lookup(k); ok {
		return e.key, e.value, true
	}
	var (
		zk K
		zv V
	)
	return zk, zv, false
}

// Get returns the value stored under a key equal to k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if e, ok := m.t.lookup(k); ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Insert adds k with value v. k must not be present yet.
func (m *Map[K, V]) Insert(k K, v V) {
	m.t.insertNew(k, v)
}

// Replace stores k with value v. If an equal key was present, the displaced
// key and value are returned.
func (m *Map[K, V]) Replace(k K, v V) (oldKey K, oldValue V, replaced bool) {
	e, ok := m.t.replace(k, v)
	return e.key, e.value, ok
}

// Erase removes the entry whose key equals k and returns it.
func (m *Map[K, V]) Erase(k K) (K, V, bool) {
	e, ok := m.t.erase(k)
	return e.key, e.value, ok
}

// Iterate calls fn for every entry. fn must not modify the map.
func (m *Map[K, V]) Iterate(fn func(k K, v V)) {
	m.t.live("Iterate")
	m.t.all(func(k K, v V) bool {
		fn(k, v)
		return true
	})
}

// All returns an iterator over the entries. The map must not be modified
// while the iteration is running.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.t.live("All")
		m.t.all(yield)
	}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.t.used }

// Cap returns the number of slots currently allocated.
func (m *Map[K, V]) Cap() int { return len(m.t.slots) }

// Clear removes all entries and keeps the storage.
func (m *Map[K, V]) Clear() {
	m.t.mutable("Clear")
	m.t.clear()
}

// Free releases the storage. The map must not be used afterwards.
func (m *Map[K, V]) Free() {
	m.t.mutable("Free")
	m.t.free()
}
