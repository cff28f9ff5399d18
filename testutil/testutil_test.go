package testutil

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.Identifiers(10, 4, 8)

	rng.Reset()
	v2 := rng.Identifiers(10, 4, 8)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestIdentifiers(t *testing.T) {
	rng := NewRNG(42)

	ids := rng.Identifiers(500, 2, 6)
	require.Len(t, ids, 500)

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate identifier %q", id)
		seen[id] = true

		require.NotEmpty(t, id)
		first := rune(id[0])
		assert.True(t, first == '_' || unicode.IsLetter(first), "bad start %q", id)
		assert.GreaterOrEqual(t, len(id), 2)
	}
}

func TestIdentifierLengthBounds(t *testing.T) {
	rng := NewRNG(1)
	for range 200 {
		id := rng.Identifier(3, 5)
		assert.GreaterOrEqual(t, len(id), 3)
		assert.LessOrEqual(t, len(id), 5)
	}
}

func TestZipf(t *testing.T) {
	rng := NewRNG(42)
	n := 100
	counts := make([]int, n)
	for range 10000 {
		v := rng.Zipf(n, 1.5)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, n)
		counts[v]++
	}

	// The head of the distribution dominates the tail.
	assert.Greater(t, counts[0], counts[n-1])
	assert.Greater(t, counts[0], 10000/n)
}

func TestOps(t *testing.T) {
	rng := NewRNG(7)
	ops := rng.Ops(2000, 64, 0)
	require.Len(t, ops, 2000)

	kinds := make(map[OpKind]int)
	for _, op := range ops {
		assert.GreaterOrEqual(t, op.Key, 0)
		assert.Less(t, op.Key, 64)
		kinds[op.Kind]++
	}
	for _, k := range []OpKind{OpInsert, OpLookup, OpReplace, OpErase} {
		assert.Positive(t, kinds[k], "no %s ops", k)
	}
	assert.Greater(t, kinds[OpInsert], kinds[OpErase])
}

func TestOpsSkewed(t *testing.T) {
	rng := NewRNG(7)
	ops := rng.Ops(1000, 32, 1.2)
	for _, op := range ops {
		assert.GreaterOrEqual(t, op.Key, 0)
		assert.Less(t, op.Key, 32)
	}
	assert.Equal(t, "unknown", OpKind(99).String())
}
