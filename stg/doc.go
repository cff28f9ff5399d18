// Package stg implements growable, element-typed arenas ("storage generic").
//
// An Arena is one contiguous buffer of fixed-size elements addressed by index.
// Index 0 is a reserved sentinel that always reads as zero, so a zero index
// can mean "none" in the records stored by callers. Logical content starts at
// index 1.
//
// # Allocation
//
// Reserve bump-allocates a run of zeroed elements and grows the buffer when
// needed. Growth at least doubles the capacity: the new size is
// 2*(Len()-1) elements. The arena never shrinks.
//
//	a := stg.New(16, 64, "args")
//	defer a.Destroy()
//
//	first := a.Reserve(3) // elements first, first+1, first+2 read as zero
//
// # Free List
//
// Release threads an element onto an intrusive free list. The link to the
// next free element is stored in the first IndexSize bytes of the freed
// element itself, so no side table is needed. AllocFree pops the most recently
// released element (LIFO) or falls back to Reserve(1). Both ends zero the
// element.
//
// # Sidecars
//
// A sidecar is a second arena holding another per-element attribute. It is
// kept at exactly the base arena's capacity and length: every Reserve, growth
// or SetAvail on the base is applied to all sidecars. A sidecar must never be
// resized on its own.
//
//	syms := stg.New(32, 128, "symtab")
//	types := syms.NewSidecar(4, "symtab.dtype")
//	i := syms.Reserve(1) // types.Len() == syms.Len()
//
// # Memory
//
// Buffers come from a Memory. HeapMemory (the default) uses Go slices.
// MmapMemory maps anonymous memory outside the Go heap. Arena memory is
// never scanned by the garbage collector, so elements must not hold Go
// pointers.
//
// # Invalidation
//
// Growth reallocates the buffer. Slices returned by Elem and Bytes, and
// pointers returned by At, are valid only until the next call that may grow
// the arena. Keep indices, not pointers. Epoch changes on every reallocation.
//
// # Misuse
//
// Invalid sizes, undersized free-list elements, unknown sidecars and similar
// contract violations are reported through the arena's logger (see
// (*stgkit.Logger).Fatal) and do not return.
package stg
