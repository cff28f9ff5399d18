package hashtab

import (
	"github.com/hupe1980/stgkit"
)

type options struct {
	capacity int
	checks   bool
	name     string
	logger   *stgkit.Logger
}

// Option configures a Set or a Map.
type Option func(*options)

// WithCapacity presizes the table so that n entries fit without a resize.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithChecks makes Insert verify that the key is not already present.
// A duplicate is then fatal (stgkit.ErrDuplicateKey) instead of being stored
// twice.
func WithChecks() Option {
	return func(o *options) {
		o.checks = true
	}
}

// WithName sets the diagnostic label used in logs and fatal errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger for resize events.
// Default: stgkit.DefaultLogger() at creation time.
func WithLogger(l *stgkit.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = stgkit.DefaultLogger()
	}
	return o
}
