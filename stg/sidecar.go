package stg

import (
	"slices"

	"github.com/hupe1980/stgkit"
)

// NewSidecar creates an arena of elemSize-byte elements that tracks a's
// capacity and length. Elements [0, a.Len()) of the sidecar start zeroed.
//
// The sidecar inherits a's options except WithDebugChecks; opts override them.
func (a *Arena) NewSidecar(elemSize int, name string, opts ...Option) *Arena {
	const op = "stg.NewSidecar"
	a.live(op)
	if a.parent != nil {
		a.fatal(stgkit.ErrSidecarLength, op,
			"%s is itself a sidecar of %s", a.name, a.parent.name)
	}

	// Sidecars have no free list, so release tracking is not inherited.
	inherited := a.opts
	inherited.debug = false

	sc := &Arena{}
	sc.allocBase(op, elemSize, a.size, name, applyOptions(inherited, opts))
	sc.avail = a.avail
	sc.Clear(0, sc.avail)

	sc.parent = a
	a.sidecars = append(a.sidecars, sc)
	a.logger.Debug("attach sidecar", "sidecar", name, "elem_size", elemSize)
	return sc
}

// DeleteSidecar detaches sc from a and destroys it.
// sc must be a sidecar of a.
func (a *Arena) DeleteSidecar(sc *Arena) {
	const op = "stg.DeleteSidecar"
	a.live(op)
	i := slices.Index(a.sidecars, sc)
	if i < 0 {
		scName := "<nil>"
		if sc != nil {
			scName = sc.name
		}
		a.fatal(stgkit.ErrSidecarNotFound, op,
			"sidecar %s to %s not found", scName, a.name)
	}
	a.sidecars = slices.Delete(a.sidecars, i, i+1)
	sc.parent = nil
	a.logger.Debug("detach sidecar", "sidecar", sc.name)
	sc.Destroy()
}

// Sidecars returns the sidecars currently attached to a.
func (a *Arena) Sidecars() []*Arena {
	return slices.Clone(a.sidecars)
}

// Parent returns the base arena of a sidecar, or nil.
func (a *Arena) Parent() *Arena {
	return a.parent
}

func (a *Arena) unlink(sc *Arena) {
	if i := slices.Index(a.sidecars, sc); i >= 0 {
		a.sidecars = slices.Delete(a.sidecars, i, i+1)
	}
}
