package stg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/stgkit"
)

// requireFatal runs fn and asserts that it reported a fatal error of kind.
func requireFatal(t *testing.T, kind error, fn func()) *stgkit.FatalError {
	t.Helper()
	ferr := stgkit.Catch(fn)
	require.NotNil(t, ferr, "expected fatal %v", kind)
	require.ErrorIs(t, ferr, kind)
	return ferr
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

func requireZero(t *testing.T, b []byte) {
	t.Helper()
	for i, v := range b {
		require.Zerof(t, v, "byte %d is %#x", i, v)
	}
}
