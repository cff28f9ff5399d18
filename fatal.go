package stgkit

import (
	"fmt"
	"sync/atomic"
)

// FatalHandler receives every contract violation reported through Fatal.
//
// A handler must not return normally. Typical handlers panic (the default) or
// exit the process after flushing their own diagnostics.
type FatalHandler func(err *FatalError)

var fatalHandler atomic.Pointer[FatalHandler]

func panicHandler(err *FatalError) { panic(err) }

// SetFatalHandler installs h as the process-wide fatal handler and returns the
// previously installed one. Passing nil restores the default panicking handler.
func SetFatalHandler(h FatalHandler) FatalHandler {
	if h == nil {
		h = panicHandler
	}
	prev := fatalHandler.Swap(&h)
	if prev == nil {
		return panicHandler
	}
	return *prev
}

// Fatal reports a contract violation and does not return.
//
// The violation is logged at error level through the default logger and then
// handed to the installed FatalHandler.
func Fatal(kind error, op, name, format string, args ...any) {
	DefaultLogger().Fatal(kind, op, name, format, args...)
}

// Fatal is the package-level Fatal logging through l. Arenas and tables call
// it with the logger they were configured with. A nil l logs through the
// default logger.
func (l *Logger) Fatal(kind error, op, name, format string, args ...any) {
	if l == nil {
		l = DefaultLogger()
	}
	err := &FatalError{
		Kind: kind,
		Op:   op,
		Name: name,
		Msg:  fmt.Sprintf(format, args...),
	}
	l.LogFatal(err)

	h := panicHandler
	if p := fatalHandler.Load(); p != nil {
		h = *p
	}
	h(err)

	// Handlers are not allowed to return.
	panic(err)
}

// Catch runs fn and returns the *FatalError it raised, or nil if fn completed.
//
// Panics that do not carry a *FatalError are propagated unchanged.
func Catch(fn func()) (ferr *FatalError) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*FatalError)
			if !ok {
				panic(r)
			}
			ferr = fe
		}
	}()
	fn()
	return nil
}
