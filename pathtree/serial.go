package pathtree

import (
	"context"
	"log/slog"
)

type insertRequest struct {
	segments []string
	reply    chan insertResult
}

type insertResult struct {
	id  ID
	err error
}

// Serial lets many goroutines populate one Tree by funnelling every insert
// through a single goroutine running Run. The Tree must not be touched
// directly while Run is active.
type Serial struct {
	tree   *Tree
	reqs   chan insertRequest
	done   chan struct{}
	logger *slog.Logger
}

// NewSerial returns a Serial front end of t. Only WithQueueSize and
// WithLogger apply.
func NewSerial(t *Tree, opts ...Option) *Serial {
	o := newOptions(opts...)

	return &Serial{
		tree:   t,
		reqs:   make(chan insertRequest, o.queueSize),
		done:   make(chan struct{}),
		logger: o.logger,
	}
}

// Run performs queued inserts until ctx is done. It must be called once.
func (s *Serial) Run(ctx context.Context) error {
	defer close(s.done)

	var inserted int

	s.logger.DebugContext(ctx, "insert loop started", "nodes", s.tree.Len())

	for {
		select {
		case <-ctx.Done():
			s.logger.DebugContext(ctx, "insert loop stopped",
				"requests", inserted,
				"nodes", s.tree.Len(),
				"terminals", s.tree.TerminalCount(),
			)
			return ctx.Err()

		case req := <-s.reqs:
			n, err := s.tree.Insert(req.segments...)
			if err != nil {
				s.logger.DebugContext(ctx, "insert rejected", "error", err)
			}
			inserted++
			req.reply <- insertResult{id: n.ID(), err: err}
		}
	}
}

// Insert queues a path and waits for its ID. It is safe for concurrent use.
// It fails with ctx's error, or ErrStopped once Run has returned. On any error
// the returned ID is RootID, which no inserted path ever gets.
func (s *Serial) Insert(ctx context.Context, segments ...string) (ID, error) {
	req := insertRequest{
		segments: segments,
		reply:    make(chan insertResult, 1),
	}

	select {
	case s.reqs <- req:
	case <-s.done:
		return RootID, ErrStopped
	case <-ctx.Done():
		return RootID, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res.id, res.err
	case <-s.done:
		// Run may have served the request just before stopping
		select {
		case res := <-req.reply:
			return res.id, res.err
		default:
			return RootID, ErrStopped
		}
	case <-ctx.Done():
		return RootID, ctx.Err()
	}
}
