package stgkit

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFatal_PanicsWithKind(t *testing.T) {
	ferr := Catch(func() {
		Fatal(ErrInvalidSize, "stg.New", "symtab", "dtsize=%d size=%d", 0, 4)
	})
	require.NotNil(t, ferr)

	assert.ErrorIs(t, ferr, ErrInvalidSize)
	assert.Equal(t, "stg.New", ferr.Op)
	assert.Equal(t, "symtab", ferr.Name)
	assert.Equal(t, "dtsize=0 size=4", ferr.Msg)
	assert.Contains(t, ferr.Error(), "symtab")
	assert.False(t, errors.Is(ferr, ErrSidecarNotFound))
}

func TestFatal_ErrorWithoutName(t *testing.T) {
	ferr := &FatalError{Kind: ErrDuplicateKey, Op: "hashtab.Insert", Msg: "key 5"}
	assert.Equal(t, "hashtab.Insert: duplicate key: key 5", ferr.Error())
}

func TestCatch(t *testing.T) {
	t.Run("no fatal", func(t *testing.T) {
		assert.Nil(t, Catch(func() {}))
	})

	t.Run("foreign panic propagates", func(t *testing.T) {
		assert.PanicsWithValue(t, "boom", func() {
			Catch(func() { panic("boom") })
		})
	})
}

func TestSetFatalHandler(t *testing.T) {
	var seen []*FatalError
	prev := SetFatalHandler(func(err *FatalError) {
		seen = append(seen, err)
		panic(err)
	})
	defer SetFatalHandler(prev)

	ferr := Catch(func() {
		Fatal(ErrSidecarNotFound, "stg.DeleteSidecar", "base", "sidecar %s", "types")
	})
	require.NotNil(t, ferr)
	require.Len(t, seen, 1)
	assert.Same(t, ferr, seen[0])
}

func TestSetFatalHandler_ReturningHandlerStillPanics(t *testing.T) {
	prev := SetFatalHandler(func(*FatalError) {})
	defer SetFatalHandler(prev)

	ferr := Catch(func() {
		Fatal(ErrTooSmallForFreelist, "stg.Release", "tiny", "size=1")
	})
	require.NotNil(t, ferr)
	assert.ErrorIs(t, ferr, ErrTooSmallForFreelist)
}

func TestFatal_Logs(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultLogger(NewLogger(slog.NewTextHandler(&buf, nil)))
	defer SetDefaultLogger(nil)

	Catch(func() {
		Fatal(ErrDestroyed, "stg.Reserve", "args", "arena destroyed")
	})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "op=stg.Reserve")
	assert.Contains(t, out, "name=args")
}

func TestLoggerFatal(t *testing.T) {
	var own, def bytes.Buffer
	SetDefaultLogger(NewLogger(slog.NewTextHandler(&def, nil)))
	defer SetDefaultLogger(nil)

	l := NewLogger(slog.NewTextHandler(&own, nil))
	ferr := Catch(func() {
		l.Fatal(ErrIndexOutOfRange, "stg.Elem", "symtab", "index %d, size %d", 9, 4)
	})
	require.NotNil(t, ferr)
	assert.ErrorIs(t, ferr, ErrIndexOutOfRange)
	assert.Equal(t, "index 9, size 4", ferr.Msg)

	assert.Contains(t, own.String(), "op=stg.Elem")
	assert.Empty(t, def.String())

	t.Run("nil logger uses the default", func(t *testing.T) {
		def.Reset()
		var nilLogger *Logger
		Catch(func() { nilLogger.Fatal(ErrDestroyed, "stg.Len", "", "destroyed") })
		assert.Contains(t, def.String(), "op=stg.Len")
	})
}
