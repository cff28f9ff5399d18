package stg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stgkit"
)

type symbol struct {
	Name  uint32
	Kind  uint16
	Flags uint16
	Next  int32
	Scope int32
}

func TestNewOf(t *testing.T) {
	syms := NewOf[symbol](4, "symbols")
	defer syms.Destroy()
	require.Equal(t, 16, syms.ElemSize())

	types := NewSidecarOf[int32](syms, "symbols.type")
	defer syms.DeleteSidecar(types)
	require.Equal(t, 4, types.ElemSize())

	i := syms.AllocFree()
	s := At[symbol](syms, i)
	assert.Equal(t, symbol{}, *s)

	s.Name = 42
	s.Kind = 3
	*At[int32](types, i) = -7

	syms.Reserve(20) // moves both buffers

	assert.Equal(t, symbol{Name: 42, Kind: 3}, *At[symbol](syms, i))
	assert.Equal(t, int32(-7), *At[int32](types, i))
	assert.Equal(t, symbol{}, *At[symbol](syms, 0), "sentinel stays zero")
}

func TestAt_SizeMismatch(t *testing.T) {
	a := New(8, 4, "words")
	defer a.Destroy()

	ferr := requireFatal(t, stgkit.ErrInvalidSize, func() { At[int32](a, 1) })
	assert.Equal(t, "stg.At", ferr.Op)

	requireFatal(t, stgkit.ErrIndexOutOfRange, func() { At[int64](a, 4) })
}

func TestAt_Destroyed(t *testing.T) {
	a := New(8, 4, "words")
	a.Destroy()

	requireFatal(t, stgkit.ErrDestroyed, func() { At[int64](a, 1) })
}
