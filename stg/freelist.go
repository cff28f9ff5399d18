package stg

import (
	"encoding/binary"

	"github.com/hupe1980/stgkit"
	"github.com/hupe1980/stgkit/internal/conv"
)

// IndexSize is the number of bytes a free-list link occupies at the start of a
// freed element. Arenas with smaller elements cannot use the free list.
const IndexSize = 4

// AllocFree returns the most recently released element, or Reserve(1) when the
// free list is empty. The element reads as zero on the arena and on every
// sidecar.
func (a *Arena) AllocFree() int {
	const op = "stg.AllocFree"
	a.live(op)
	a.freeListOwner(op)
	a.linkable(op)

	r := a.free
	if r == 0 {
		a.stats.FreeMisses++
		r = a.Reserve(1)
	} else {
		a.stats.FreeHits++
		a.free = int(int32(binary.NativeEndian.Uint32(a.Elem(r))))
		if a.released != nil {
			a.released.Remove(uint32(r))
		}
	}

	// A popped element still carries its link, and sidecars keep whatever the
	// previous owner stored.
	for _, s := range a.family() {
		s.Clear(r, 1)
	}
	return r
}

// Release zeroes element i and pushes it on the free list.
// i must be in [1, Len()).
func (a *Arena) Release(i int) {
	const op = "stg.Release"
	a.live(op)
	a.freeListOwner(op)
	a.linkable(op)
	if i < 1 || i >= a.avail {
		a.fatal(stgkit.ErrIndexOutOfRange, op, "index %d, len %d", i, a.avail)
	}
	link, err := conv.IntToInt32(a.free)
	if err == nil {
		_, err = conv.IntToInt32(i)
	}
	if err != nil {
		a.fatal(stgkit.ErrIndexOutOfRange, op, "%v", err)
	}
	if a.released != nil {
		if a.released.Contains(uint32(i)) {
			a.fatal(stgkit.ErrDoubleRelease, op, "index %d is already on the free list", i)
		}
		a.released.Add(uint32(i))
	}

	a.Clear(i, 1)
	binary.NativeEndian.PutUint32(a.Elem(i), uint32(link))
	a.free = i
	a.stats.Releases++
}

// FreeHead returns the index at the head of the free list, 0 if it is empty.
func (a *Arena) FreeHead() int { return a.free }

// FreeList walks the free list from the head and returns its indices.
func (a *Arena) FreeList() []int {
	a.live("stg.FreeList")
	var out []int
	for r := a.free; r != 0 && len(out) < a.avail; {
		out = append(out, r)
		r = int(int32(binary.NativeEndian.Uint32(a.Elem(r))))
	}
	return out
}

func (a *Arena) linkable(op string) {
	if a.elemSize < IndexSize {
		a.fatal(stgkit.ErrTooSmallForFreelist, op,
			"structure %s too small for a freelist link, size=%d", a.name, a.elemSize)
	}
}

// freeListOwner rejects free-list use on a sidecar. AllocFree on the base
// clears the element on every sidecar, which would overwrite a link stored
// there.
func (a *Arena) freeListOwner(op string) {
	if a.parent != nil {
		a.fatal(stgkit.ErrSidecarFreeList, op,
			"sidecar of %s recycles elements only through its base", a.parent.name)
	}
}
