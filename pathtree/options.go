package pathtree

import (
	"log/slog"
	"runtime"
)

const (
	defaultSeparator = '/'
	defaultQueueSize = 256
)

type options struct {
	capacity  int
	maxNodes  uint64
	separator byte
	workers   int
	queueSize int
	logger    *slog.Logger
}

// Option configures a Tree and the helpers built on top of it (Serial, Build).
type Option func(*options)

func newOptions(opts ...Option) options {
	o := options{
		maxNodes:  uint64(noID),
		separator: defaultSeparator,
		workers:   runtime.GOMAXPROCS(0),
		queueSize: defaultQueueSize,
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithCapacity pre-allocates room for n nodes.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMaxNodes bounds the total number of nodes (root included). Inserts that
// would exceed it fail with ErrCapacity. Values outside [1, 2^32-1] are clamped.
func WithMaxNodes(n uint64) Option {
	return func(o *options) {
		switch {
		case n < 1:
			n = 1
		case n > uint64(noID):
			n = uint64(noID)
		}
		o.maxNodes = n
	}
}

// WithSeparator sets the separator InsertPath splits on. The default is '/'.
func WithSeparator(sep byte) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// WithWorkers bounds the number of shards Build populates concurrently.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithQueueSize sets the request buffer of a Serial inserter.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.queueSize = n
	}
}

// WithLogger sets the logger used by Serial and Build. If nil is passed,
// logging is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}
