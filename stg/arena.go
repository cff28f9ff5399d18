package stg

import (
	"context"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/stgkit"
	"github.com/hupe1980/stgkit/internal/conv"
)

// Arena is a growable buffer of fixed-size elements.
//
// The zero value is not usable; create arenas with New or NewSidecar.
// An Arena is NOT goroutine-safe.
type Arena struct {
	base     []byte
	elemSize int
	size     int // capacity in elements
	avail    int // next unused element, the logical length
	cleared  int // length of the known-zero prefix
	free     int // free-list head, 0 if empty
	name     string

	parent   *Arena   // base arena, nil unless this is a sidecar
	sidecars []*Arena // kept at the same size and avail

	epoch   uint64
	charged int64

	opts     options
	logger   *stgkit.Logger
	released *roaring.Bitmap // indices on the free list, debug checks only
	stats    Stats
}

// New creates an arena of capacity elements of elemSize bytes each.
//
// Both sizes must be positive. Len() starts at 1: element 0 is reserved and
// reads as zero.
func New(elemSize, capacity int, name string, opts ...Option) *Arena {
	a := &Arena{}
	a.allocBase("stg.New", elemSize, capacity, name, applyOptions(options{}, opts))
	a.Clear(0, 1)
	return a
}

// allocBase sets up the control block and requests an uninitialized buffer.
func (a *Arena) allocBase(op string, elemSize, size int, name string, o options) {
	if elemSize <= 0 || size <= 0 {
		o.logger.Fatal(stgkit.ErrInvalidSize, op, name,
			"invalid datatype size (%d) or structure size (%d)", elemSize, size)
	}
	*a = Arena{
		elemSize: elemSize,
		avail:    1,
		name:     name,
		opts:     o,
		logger:   o.logger.WithComponent("stg").WithName(name),
	}
	if o.debug {
		a.released = roaring.New()
	}
	a.realloc(op, size)
}

// realloc resizes the buffer to n elements, charging the budget first.
func (a *Arena) realloc(op string, n int) {
	nbytes, err := conv.MulInt(n, a.elemSize)
	if err != nil {
		a.fatal(stgkit.ErrAllocationFailed, op, "%v", err)
	}

	delta := int64(nbytes) - a.charged
	if delta > 0 && a.opts.budget != nil && !a.opts.budget.TryAcquireMemory(delta) {
		a.fatal(stgkit.ErrMemoryLimitExceeded, op,
			"growing to %d elements needs %d more bytes", n, delta)
	}

	var buf []byte
	if a.base == nil {
		buf, err = a.opts.memory.Alloc(nbytes)
	} else {
		buf, err = a.opts.memory.Realloc(a.base, nbytes)
		a.epoch++
	}
	if err != nil {
		if delta > 0 && a.opts.budget != nil {
			a.opts.budget.ReleaseMemory(delta)
		}
		a.fatal(stgkit.ErrAllocationFailed, op, "%d bytes: %v", nbytes, err)
	}

	a.base = buf
	a.size = n
	a.charged += delta
	a.stats.BytesReserved = a.charged
}

// Destroy releases the buffer and resets the arena. A destroyed arena must
// not be used again. Destroy is idempotent.
//
// Destroying a sidecar unlinks it from its base. Destroying a base leaves its
// sidecars alive but detached; they must be destroyed separately.
func (a *Arena) Destroy() {
	if a.elemSize == 0 {
		return
	}
	if p := a.parent; p != nil {
		p.unlink(a)
	}
	for _, sc := range a.sidecars {
		sc.parent = nil
	}

	if a.base != nil {
		if err := a.opts.memory.Free(a.base); err != nil {
			a.logger.Warn("free failed", "error", err)
		}
	}
	if a.charged > 0 && a.opts.budget != nil {
		a.opts.budget.ReleaseMemory(a.charged)
	}
	a.logger.Debug("destroy", "size", a.size, "len", a.avail)

	*a = Arena{}
}

// Clear zeroes count elements starting at start and extends the known-zero
// prefix when the range continues it or covers it from index 0.
// Calls with start < 0 or count <= 0 do nothing.
func (a *Arena) Clear(start, count int) {
	if start < 0 || count <= 0 {
		return
	}
	a.live("stg.Clear")
	if count > a.size-start {
		a.fatal(stgkit.ErrIndexOutOfRange, "stg.Clear",
			"%d elements from %d exceed size %d", count, start, a.size)
	}

	clear(a.base[start*a.elemSize : (start+count)*a.elemSize])

	if start == a.cleared {
		a.cleared += count
	} else if start == 0 && count > a.cleared {
		a.cleared = count
	}
}

// ClearAll zeroes [0, Len()).
func (a *Arena) ClearAll() {
	a.Clear(0, a.avail)
}

// Reserve appends count zeroed elements and returns the index of the first.
//
// The arena and all of its sidecars grow as needed.
func (a *Arena) Reserve(count int) int {
	const op = "stg.Reserve"
	a.live(op)
	a.lengthOwner(op)
	if count < 0 {
		a.fatal(stgkit.ErrInvalidSize, op, "negative count %d", count)
	}

	r := a.avail
	if count > math.MaxInt-r {
		a.fatal(stgkit.ErrInvalidSize, op, "count %d overflows length %d", count, r)
	}
	// Space below r may have been recycled since it was last cleared.
	if a.cleared > r {
		a.cleared = r
	}
	a.stats.Reserves++
	a.need(op, r+count)
	return r
}

// SetAvail sets the logical length to n (n >= 1) and then runs Need.
//
// Lowering the length recycles the trailing elements: they are cleared again
// when a later Reserve hands them out. Elements on the free list must stay
// below n.
func (a *Arena) SetAvail(n int) {
	const op = "stg.SetAvail"
	a.live(op)
	a.lengthOwner(op)
	if n < 1 {
		a.fatal(stgkit.ErrIndexOutOfRange, op, "length %d hides the reserved element 0", n)
	}
	if a.released != nil && !a.released.IsEmpty() && int(a.released.Maximum()) >= n {
		a.fatal(stgkit.ErrIndexOutOfRange, op,
			"length %d drops released element %d", n, a.released.Maximum())
	}
	a.need(op, n)
}

// Need makes the buffer large enough for Len() elements and zeroes the
// elements between the known-zero prefix and Len(), on the arena and on every
// sidecar.
//
// Callers that only use Reserve and AllocFree never need to call it.
func (a *Arena) Need() {
	const op = "stg.Need"
	a.live(op)
	a.lengthOwner(op)
	a.need(op, a.avail)
}

// need grows the family for length n, then sets the length and zeroes past
// the known-zero prefix. A failed growth leaves the length unchanged.
func (a *Arena) need(op string, n int) {
	family := a.family()
	if n > a.size {
		oldSize := a.size
		// n > size >= 1, so this at least doubles the capacity.
		newSize, err := conv.MulInt(n-1, 2)
		if err != nil {
			a.fatal(stgkit.ErrAllocationFailed, op, "growing for length %d: %v", n, err)
		}
		for _, s := range family {
			s.realloc(op, newSize)
			s.stats.Grows++
		}
		a.logger.LogGrow(context.Background(), oldSize, newSize, n)
	}

	for _, s := range family {
		s.avail = n
		if s.cleared > n {
			s.cleared = n
		}
	}
	for _, s := range family {
		if s.avail > s.cleared {
			s.Clear(s.cleared, s.avail-s.cleared)
		}
	}
}

// family returns the arena followed by its sidecars.
func (a *Arena) family() []*Arena {
	f := make([]*Arena, 0, 1+len(a.sidecars))
	f = append(f, a)
	return append(f, a.sidecars...)
}

func (a *Arena) live(op string) {
	if a == nil || a.elemSize == 0 {
		stgkit.Fatal(stgkit.ErrDestroyed, op, "", "arena used before New or after Destroy")
	}
}

// fatal reports a contract violation on a through its configured logger.
func (a *Arena) fatal(kind error, op, format string, args ...any) {
	a.opts.logger.Fatal(kind, op, a.name, format, args...)
}

func (a *Arena) lengthOwner(op string) {
	if a.parent != nil {
		a.fatal(stgkit.ErrSidecarLength, op,
			"sidecar of %s is resized only through its base", a.parent.name)
	}
}

// Len returns the logical length (the next unused index).
func (a *Arena) Len() int { return a.avail }

// Size returns the capacity in elements.
func (a *Arena) Size() int { return a.size }

// Cleared returns the length of the known-zero prefix.
func (a *Arena) Cleared() int { return a.cleared }

// ElemSize returns the element size in bytes.
func (a *Arena) ElemSize() int { return a.elemSize }

// Name returns the diagnostic label.
func (a *Arena) Name() string { return a.name }

// Epoch returns a counter that changes whenever the buffer is reallocated.
func (a *Arena) Epoch() uint64 { return a.epoch }

// Elem returns the bytes of element i, for 0 <= i < Size().
// The slice is invalidated by growth.
func (a *Arena) Elem(i int) []byte {
	const op = "stg.Elem"
	a.live(op)
	if i < 0 || i >= a.size {
		a.fatal(stgkit.ErrIndexOutOfRange, op, "index %d, size %d", i, a.size)
	}
	lo, hi := i*a.elemSize, (i+1)*a.elemSize
	return a.base[lo:hi:hi]
}

// Bytes returns the bytes of elements [0, Len()).
// The slice is invalidated by growth.
func (a *Arena) Bytes() []byte {
	a.live("stg.Bytes")
	n := a.avail * a.elemSize
	return a.base[:n:n]
}
