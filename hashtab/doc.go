// Package hashtab provides hash sets and hash maps with caller-defined key
// identity.
//
// A table is bound at creation to a pair of functions, a hash and an
// equality, so keys are compared by whatever notion of identity the caller
// chooses: string contents, integer values, pointer addresses, or fields of a
// composite record. Predefined pairs cover the common cases:
//
//	names := hashtab.NewMap[string, int](hashtab.Strings())
//	ids := hashtab.NewSet[int](hashtab.Direct[int]())
//
// Composite keys build their hash with an Accu:
//
//	type loc struct{ file, line int32 }
//	fns := hashtab.Functions[loc]{
//		Hash: func(k loc) uint32 {
//			return hashtab.NewAccu().Add(uint32(k.file)).Add(uint32(k.line)).Finish().Value()
//		},
//		Equals: func(a, b loc) bool { return a == b },
//	}
//
// # Semantics
//
// Insert assumes the key is not present; callers that are unsure call Lookup
// first. WithChecks turns a duplicate Insert into a fatal error. Replace
// inserts or swaps, returning what it displaced. Erase removes and returns
// the stored entry.
//
// Absent results are reported with a false ok value, never with a reserved
// key value, so every key of type K (including its zero value) can be stored.
//
// # Iteration
//
// Iterate and All visit entries in slot order, which depends on hash values
// and on the history of the table. Modifying the table from inside the
// callback is fatal (stgkit.ErrMutationDuringIterate).
//
// Tables are NOT goroutine-safe.
package hashtab
