// Package resource limits the memory and concurrency shared by arenas.
//
// A Controller is handed to every arena of a workload (see stg.WithBudget).
// Each arena charges its buffer sizes on creation and growth, and refunds them
// on destroy. When a hard limit is set, growth past it is refused and the
// arena reports a fatal ErrMemoryLimitExceeded.
package resource
