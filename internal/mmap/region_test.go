//go:build unix || windows

package mmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegion_MapAnon(t *testing.T) {
	r, err := MapAnon(4096)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 4096, r.Len())
	for i, b := range r.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d not zero: %d", i, b)
		}
	}
}

func TestRegion_InvalidSize(t *testing.T) {
	_, err := MapAnon(0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = MapAnon(-1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestRegion_GrowPreservesPrefix(t *testing.T) {
	r, err := MapAnon(100)
	require.NoError(t, err)
	defer r.Close()

	buf := r.Bytes()
	for i := range buf {
		buf[i] = byte(i)
	}

	require.NoError(t, r.Grow(3*4096))
	assert.Equal(t, 3*4096, r.Len())

	buf = r.Bytes()
	for i := 0; i < 100; i++ {
		require.Equal(t, byte(i), buf[i], "byte %d", i)
	}

	// Shrinking is a no-op.
	require.NoError(t, r.Grow(10))
	assert.Equal(t, 3*4096, r.Len())
}

func TestRegion_Close(t *testing.T) {
	r, err := MapAnon(64)
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	assert.Nil(t, r.Bytes())
	assert.ErrorIs(t, r.Grow(128), ErrClosed)
	assert.ErrorIs(t, r.Advise(AccessRandom), ErrClosed)
}

func TestRegion_Advise(t *testing.T) {
	r, err := MapAnon(8192)
	require.NoError(t, err)
	defer r.Close()

	for _, p := range []AccessPattern{AccessDefault, AccessSequential, AccessRandom, AccessWillNeed} {
		assert.NoError(t, r.Advise(p))
	}
}
