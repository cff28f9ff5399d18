// Package stgkit is the storage substrate of a compiler front end.
//
// It is split into two independent building blocks plus the diagnostics they
// share:
//
//   - package stg: growable element-typed arenas ("STG") with sidecar arrays
//     kept in lockstep and an intrusive free list threaded through freed slots
//   - package hashtab: open-addressing hash sets and maps over caller-supplied
//     identity functions, plus the Jenkins style hash accumulator used to build
//     those functions for composite keys
//
// # Quick Start
//
//	syms := stg.NewOf[Symbol](64, "symtab")
//	defer syms.Destroy()
//	types := syms.NewSidecar(4, "symtab.type")
//
//	idx := syms.Reserve(1)           // zeroed element, index >= 1
//	sym := stg.At[Symbol](syms, idx) // typed view, invalid after growth
//
//	names := hashtab.NewMap[string, int](hashtab.Strings())
//	names.Insert("main", idx)
//
// # Misuse
//
// Contract violations such as a zero element size, a free-list operation on
// undersized elements, or detaching an unknown sidecar are not recoverable
// errors. They are reported through Fatal, which logs the diagnostic and
// panics with a *FatalError. Use errors.Is with the Err* kinds of this package
// to classify a recovered value.
//
// # Thread Safety
//
// Arenas and tables are single-threaded. Callers that share one across
// goroutines must serialize access themselves.
package stgkit
