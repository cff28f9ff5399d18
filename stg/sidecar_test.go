package stg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stgkit"
	"github.com/hupe1980/stgkit/resource"
)

func requireLockstep(t *testing.T, base *Arena) {
	t.Helper()
	for _, sc := range base.Sidecars() {
		require.Equal(t, base.Size(), sc.Size(), "sidecar %s size", sc.Name())
		require.Equal(t, base.Len(), sc.Len(), "sidecar %s len", sc.Name())
		require.Same(t, base, sc.Parent())
	}
}

func TestSidecar_Scenario(t *testing.T) {
	base := New(8, 2, "symtab")
	defer base.Destroy()

	assert.Equal(t, 1, base.Reserve(3))
	assert.GreaterOrEqual(t, base.Size(), 4)

	sc := base.NewSidecar(4, "symtab.dtype")
	defer base.DeleteSidecar(sc)

	assert.Equal(t, base.Size(), sc.Size())
	assert.Equal(t, base.Len(), sc.Len())
	requireZero(t, sc.Bytes())

	base.Reserve(1)
	requireLockstep(t, base)

	base.Reserve(10)
	requireLockstep(t, base)
	assert.Equal(t, uint64(2), base.Stats().Grows)
	assert.Equal(t, uint64(1), sc.Stats().Grows, "grown together with its base")
	requireZero(t, sc.Bytes())
}

func TestSidecar_GrowPreservesContent(t *testing.T) {
	base := New(16, 2, "base")
	defer base.Destroy()
	sc := base.NewSidecar(4, "side")
	defer base.DeleteSidecar(sc)

	i := base.Reserve(1)
	copy(sc.Elem(i), []byte{9, 8, 7, 6})

	base.Reserve(50)
	requireLockstep(t, base)
	assert.Equal(t, []byte{9, 8, 7, 6}, sc.Elem(i))
}

func TestSidecar_MultipleAndSetAvail(t *testing.T) {
	base := New(8, 4, "base")
	defer base.Destroy()

	s1 := base.NewSidecar(4, "s1")
	s2 := base.NewSidecar(2, "s2")
	assert.Equal(t, []*Arena{s1, s2}, base.Sidecars())

	base.Reserve(3)
	fill(s1.Bytes(), 0x11)
	fill(s2.Bytes(), 0x22)

	base.SetAvail(2)
	requireLockstep(t, base)

	base.Reserve(5)
	requireLockstep(t, base)
	requireZero(t, s1.Bytes()[2*4:])
	requireZero(t, s2.Bytes()[2*2:])
	assert.Equal(t, []byte{0x11, 0x11, 0x11, 0x11}, s1.Elem(1))

	base.DeleteSidecar(s2)
	base.DeleteSidecar(s1)
	assert.Empty(t, base.Sidecars())
}

func TestSidecar_ResizedOnlyThroughBase(t *testing.T) {
	base := New(8, 4, "base")
	defer base.Destroy()
	sc := base.NewSidecar(4, "side")
	defer base.DeleteSidecar(sc)

	requireFatal(t, stgkit.ErrSidecarLength, func() { sc.Reserve(1) })
	requireFatal(t, stgkit.ErrSidecarLength, func() { sc.SetAvail(3) })
	requireFatal(t, stgkit.ErrSidecarLength, func() { sc.Need() })
	requireFatal(t, stgkit.ErrSidecarLength, func() { sc.NewSidecar(4, "nested") })
}

func TestSidecar_FreeListOnlyThroughBase(t *testing.T) {
	base := New(8, 4, "base")
	defer base.Destroy()
	sc := base.NewSidecar(4, "side")
	defer base.DeleteSidecar(sc)

	r := base.Reserve(2)
	copy(sc.Elem(r), []byte{1, 2, 3, 4})

	ferr := requireFatal(t, stgkit.ErrSidecarFreeList, func() { sc.Release(r) })
	assert.Equal(t, "side", ferr.Name)
	assert.Contains(t, ferr.Msg, "base")
	requireFatal(t, stgkit.ErrSidecarFreeList, func() { sc.AllocFree() })

	assert.Equal(t, 0, sc.FreeHead())
	assert.Equal(t, []byte{1, 2, 3, 4}, sc.Elem(r), "a refused release leaves the element alone")
	assert.Equal(t, 3, sc.Len())
}

func TestDeleteSidecar(t *testing.T) {
	base := New(8, 4, "base")
	defer base.Destroy()

	sc := base.NewSidecar(4, "side")
	base.DeleteSidecar(sc)

	assert.Empty(t, base.Sidecars())
	assert.Equal(t, 0, sc.ElemSize(), "deleted sidecar is destroyed")

	ferr := requireFatal(t, stgkit.ErrSidecarNotFound, func() { base.DeleteSidecar(sc) })
	assert.Contains(t, ferr.Msg, "to base not found")

	requireFatal(t, stgkit.ErrSidecarNotFound, func() { base.DeleteSidecar(nil) })

	other := New(8, 4, "other")
	defer other.Destroy()
	foreign := other.NewSidecar(4, "foreign")
	defer other.DeleteSidecar(foreign)

	ferr = requireFatal(t, stgkit.ErrSidecarNotFound, func() { base.DeleteSidecar(foreign) })
	assert.Equal(t, "sidecar foreign to base not found", ferr.Msg)
}

func TestSidecar_DestroyUnlinks(t *testing.T) {
	base := New(8, 4, "base")
	defer base.Destroy()

	sc := base.NewSidecar(4, "side")
	sc.Destroy()
	assert.Empty(t, base.Sidecars())

	base.Reserve(10) // must not touch the destroyed sidecar
	assert.Equal(t, 11, base.Len())
}

func TestSidecar_BaseDestroyOrphans(t *testing.T) {
	base := New(8, 4, "base")
	sc := base.NewSidecar(4, "side")

	base.Destroy()
	assert.Nil(t, sc.Parent())

	// An orphan owns its length again.
	r := sc.Reserve(1)
	assert.Equal(t, 1, r)
	sc.Destroy()
}

func TestSidecar_AllocFreeClearsSidecars(t *testing.T) {
	base := New(8, 4, "base")
	defer base.Destroy()
	sc := base.NewSidecar(4, "side")
	defer base.DeleteSidecar(sc)

	i := base.Reserve(1)
	fill(sc.Elem(i), 0xff)

	base.Release(i)
	j := base.AllocFree()
	require.Equal(t, i, j)
	requireZero(t, sc.Elem(j))
	requireZero(t, base.Elem(j))
}

func TestSidecar_InheritsOptions(t *testing.T) {
	ctrl := resource.NewController(resource.Config{})

	base := New(8, 4, "base", WithBudget(ctrl))
	sc := base.NewSidecar(4, "side")
	assert.Equal(t, int64(32+16), ctrl.MemoryUsage())

	base.Reserve(4) // size 8
	assert.Equal(t, int64(64+32), ctrl.MemoryUsage())

	base.DeleteSidecar(sc)
	assert.Equal(t, int64(64), ctrl.MemoryUsage())

	base.Destroy()
	assert.Equal(t, int64(0), ctrl.MemoryUsage())
}

func TestSidecar_NoReleaseTracking(t *testing.T) {
	base := New(8, 4, "base", WithDebugChecks())
	defer base.Destroy()
	sc := base.NewSidecar(4, "side")
	defer base.DeleteSidecar(sc)

	assert.NotNil(t, base.released)
	assert.Nil(t, sc.released)

	r := base.Reserve(1)
	base.Release(r)
	requireFatal(t, stgkit.ErrDoubleRelease, func() { base.Release(r) })
}

func TestSidecar_InvalidSize(t *testing.T) {
	base := New(8, 4, "base")
	defer base.Destroy()

	requireFatal(t, stgkit.ErrInvalidSize, func() { base.NewSidecar(0, "bad") })
	assert.Empty(t, base.Sidecars())
}
