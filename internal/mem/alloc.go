// Package mem provides memory allocation utilities.
package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of every buffer returned by AllocAligned.
// It covers all pointer-free scalar element types.
const Alignment = 8

// AllocAligned allocates a zeroed byte slice of the given size with 8-byte
// alignment.
//
// The memory is backed by a []uint64, so no over-allocation is needed to
// reach the alignment and the garbage collector never scans it.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	words := make([]uint64, (size+Alignment-1)/Alignment)
	ptr := unsafe.Pointer(unsafe.SliceData(words)) //nolint:gosec // unsafe is required for aligned byte views
	return unsafe.Slice((*byte)(ptr), size)        //nolint:gosec // unsafe is required for aligned byte views
}

// GrowAligned returns a buffer of size bytes holding the contents of buf.
//
// A buffer whose capacity already covers size is resliced in place; otherwise
// a new aligned buffer is allocated and the old contents are copied. Bytes
// past len(buf) are unspecified when the buffer is resliced.
func GrowAligned(buf []byte, size int) []byte {
	if size <= cap(buf) {
		return buf[:size]
	}
	nb := AllocAligned(size)
	copy(nb, buf)
	return nb
}
