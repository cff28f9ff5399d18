package stg

import (
	"unsafe"

	"github.com/hupe1980/stgkit"
)

// NewOf creates an arena whose element size is the size of T.
func NewOf[T any](capacity int, name string, opts ...Option) *Arena {
	return New(sizeOf[T](), capacity, name, opts...)
}

// NewSidecarOf creates a sidecar of base whose element size is the size of T.
func NewSidecarOf[T any](base *Arena, name string, opts ...Option) *Arena {
	return base.NewSidecar(sizeOf[T](), name, opts...)
}

// At returns element i of a as a *T. The size of T must equal a.ElemSize().
//
// T must not contain Go pointers: arena memory is not scanned by the garbage
// collector. The pointer is invalidated by growth.
func At[T any](a *Arena, i int) *T {
	a.live("stg.At")
	if n := sizeOf[T](); n != a.ElemSize() {
		a.fatal(stgkit.ErrInvalidSize, "stg.At",
			"type size %d does not match element size %d", n, a.ElemSize())
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(a.Elem(i)))) //nolint:gosec // unsafe is required for typed element views
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
