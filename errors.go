package stgkit

import (
	"errors"
	"fmt"
)

// Fatal error kinds. Every kind describes a broken caller contract; none of
// them is a transient condition worth retrying.
var (
	// ErrInvalidSize is reported when an arena is created with a non-positive
	// element size or capacity.
	ErrInvalidSize = errors.New("invalid element size or capacity")
	// ErrTooSmallForFreelist is reported when a free-list operation runs on an
	// arena whose elements cannot hold a link index.
	ErrTooSmallForFreelist = errors.New("element too small for a freelist link")
	// ErrSidecarNotFound is reported when detaching a sidecar that is not
	// attached to the given base arena.
	ErrSidecarNotFound = errors.New("sidecar not found")
	// ErrSidecarLength is reported when the length of a sidecar is changed
	// directly instead of through its base arena.
	ErrSidecarLength = errors.New("sidecar length changed independently of its base")
	// ErrSidecarFreeList is reported when a free-list operation runs on a
	// sidecar. Elements of a family are recycled through the base only.
	ErrSidecarFreeList = errors.New("free list used on a sidecar")
	// ErrIndexOutOfRange is reported for element indices outside the arena.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDoubleRelease is reported (with debug checks enabled) when an index is
	// released to the free list twice.
	ErrDoubleRelease = errors.New("index released twice")
	// ErrAllocationFailed is reported when the raw memory source fails.
	ErrAllocationFailed = errors.New("allocation failed")
	// ErrMemoryLimitExceeded is reported when a memory budget refuses growth.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
	// ErrDestroyed is reported when a destroyed arena or freed table is used.
	ErrDestroyed = errors.New("use after destroy")
	// ErrDuplicateKey is reported (with table checks enabled) when Insert is
	// called with a key equal to one already present.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrInvalidFunctions is reported when a table is created without a hash
	// or equality function.
	ErrInvalidFunctions = errors.New("missing hash or equality function")
	// ErrMutationDuringIterate is reported when a table is modified from
	// inside its own iteration callback.
	ErrMutationDuringIterate = errors.New("table mutated during iteration")
)

// FatalError describes a contract violation reported through Fatal.
//
// The kind can be matched with errors.Is.
type FatalError struct {
	// Kind is one of the Err* sentinels of this package.
	Kind error
	// Op names the operation that detected the violation (e.g. "stg.New").
	Op string
	// Name is the diagnostic label of the arena or table involved, if any.
	Name string
	// Msg carries the formatted details.
	Msg string
}

func (e *FatalError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s: %v: %s", e.Op, e.Name, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e *FatalError) Unwrap() error { return e.Kind }
