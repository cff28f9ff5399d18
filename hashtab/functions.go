package hashtab

import (
	"hash/maphash"
	"unsafe"

	"github.com/hupe1980/stgkit/internal/hash"
)

// Functions binds the notion of key identity used by a table.
//
// Equals(a, b) must imply Hash(a) == Hash(b).
type Functions[K any] struct {
	Hash   func(k K) uint32
	Equals func(a, b K) bool
}

// Integer is the set of key types accepted by Direct.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Strings hashes strings by content.
func Strings() Functions[string] {
	return Functions[string]{
		Hash: func(s string) uint32 {
			return NewAccu().AddString(s).Finish().Value()
		},
		Equals: func(a, b string) bool { return a == b },
	}
}

// Direct hashes integer keys by value.
func Direct[K Integer]() Functions[K] {
	return Functions[K]{
		Hash: func(k K) uint32 {
			return NewAccu().AddUint64(uint64(k)).Finish().Value()
		},
		Equals: func(a, b K) bool { return a == b },
	}
}

// Pointers hashes pointer keys by address, so two distinct objects with equal
// contents are distinct keys. The nil pointer is a valid key.
//
// Iteration order follows addresses and differs between runs.
func Pointers[T any]() Functions[*T] {
	return Functions[*T]{
		Hash: func(p *T) uint32 {
			return NewAccu().AddUint64(uint64(uintptr(unsafe.Pointer(p)))).Finish().Value()
		},
		Equals: func(a, b *T) bool { return a == b },
	}
}

// Comparable hashes any comparable key with hash/maphash, using == for
// equality. The seed is chosen per call, so iteration order differs between
// tables and between runs.
func Comparable[K comparable]() Functions[K] {
	seed := maphash.MakeSeed()
	return Functions[K]{
		Hash: func(k K) uint32 {
			h := maphash.Comparable(seed, k)
			return uint32(h) ^ uint32(h>>32)
		},
		Equals: func(a, b K) bool { return a == b },
	}
}

// StringsCRC32C hashes strings by content with hardware-accelerated
// CRC32-Castagnoli. Prefer it over Strings for long keys.
func StringsCRC32C() Functions[string] {
	return Functions[string]{
		Hash:   hash.String,
		Equals: func(a, b string) bool { return a == b },
	}
}
