package pathtree

import "errors"

var (
	// ErrInvalidPath is returned for an empty segment sequence or an empty segment.
	ErrInvalidPath = errors.New("invalid path")

	// ErrCapacity is returned when an insert would create more nodes than the
	// tree's configured maximum.
	ErrCapacity = errors.New("node capacity exceeded")

	// ErrUnknownNode is returned when an ID does not belong to the tree.
	ErrUnknownNode = errors.New("unknown node")

	// ErrStopped is returned by Serial.Insert once the insert loop has exited.
	ErrStopped = errors.New("insert loop stopped")
)
