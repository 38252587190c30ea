package nusc

import (
	"nuscenes-devkit/core/parallel"
	"nuscenes-devkit/core/storage"

	"go.uber.org/zap"
)

// Option configures Open.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	workers  int
	observer Observer
	client   storage.Client
	strict   bool
}

func newOptions(opts []Option) options {
	o := options{
		logger:   zap.NewNop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.workers = parallel.Workers(o.workers)
	return o
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWorkers bounds the number of goroutines used while building. Values <= 0 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithObserver reports stage timings, row counts and lookups.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithStorage sets the client used for s3:// dataroots.
func WithStorage(c storage.Client) Option {
	return func(o *options) { o.client = c }
}

// WithStrictDuplicates fails the build when any table repeats a token.
func WithStrictDuplicates(strict bool) Option {
	return func(o *options) { o.strict = strict }
}
