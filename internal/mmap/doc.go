// Package mmap provides anonymous memory regions outside the Go heap.
//
// # Overview
//
// Arenas that hold millions of small compiler records do not need the garbage
// collector to scan them. A Region hands out such memory directly from the
// operating system and can grow in place where the platform allows it.
//
// # Usage
//
//	r, err := mmap.MapAnon(1 << 20)
//	if err != nil { ... }
//	defer r.Close()
//
//	buf := r.Bytes()
//	if err := r.Grow(2 << 20); err != nil { ... }
//	buf = r.Bytes() // re-derive after Grow
//
// # Platform Support
//
//   - Linux: mmap(2), growth via mremap(2) without copying
//   - Other Unix: mmap(2), growth by mapping a larger region and copying
//   - Windows: VirtualAlloc, growth by copying (advice is a no-op)
//
// # Thread Safety
//
// A Region is not safe for concurrent use. Close is idempotent.
package mmap
