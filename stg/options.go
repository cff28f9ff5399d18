package stg

import (
	"github.com/hupe1980/stgkit"
)

// Budget is charged for the bytes of every arena buffer.
//
// *resource.Controller implements Budget.
type Budget interface {
	TryAcquireMemory(bytes int64) bool
	ReleaseMemory(bytes int64)
}

type options struct {
	memory Memory
	budget Budget
	logger *stgkit.Logger
	debug  bool
}

// Option configures an Arena.
type Option func(*options)

// WithMemory sets the raw memory source. Default: HeapMemory().
func WithMemory(m Memory) Option {
	return func(o *options) {
		if m != nil {
			o.memory = m
		}
	}
}

// WithBudget charges the arena's buffer sizes against b. Growth that b refuses
// is fatal (stgkit.ErrMemoryLimitExceeded).
func WithBudget(b Budget) Option {
	return func(o *options) {
		o.budget = b
	}
}

// WithLogger sets the logger for growth and lifecycle events.
// Default: stgkit.DefaultLogger() at creation time.
func WithLogger(l *stgkit.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDebugChecks tracks released indices so that releasing an element twice,
// or shrinking the arena below a released element, is reported instead of
// silently corrupting the free list.
func WithDebugChecks() Option {
	return func(o *options) {
		o.debug = true
	}
}

func applyOptions(base options, opts []Option) options {
	o := base
	for _, opt := range opts {
		opt(&o)
	}
	if o.memory == nil {
		o.memory = HeapMemory()
	}
	if o.logger == nil {
		o.logger = stgkit.DefaultLogger()
	}
	return o
}
