// Package codec writes and replays a pathtree.Tree as a stream of records,
// each one saying "extend node P with segment S".
//
// Stream layout:
// -------------
//
//	header:   "PTRE" <version:1 byte> <flags:1 byte>      flags bit0 - zstd
//	records:  <tag:uvarint> ...
//
//	  node:   <parent+1:uvarint> <len:uvarint> <segment:len bytes> <terminal:1 byte>
//	  mark:   <0:uvarint> <id:uvarint>
//
// Node records come in ID order and the root is implicit, so replaying them
// into an empty tree reproduces the same IDs. A mark record flags a node that
// was written earlier and became terminal since.
//
// Everything after the header goes through zstd when compression is enabled.
package codec

import (
	"errors"

	"github.com/klauspost/compress/zstd"
)

const (
	magic   = "PTRE"
	version = 1

	flagZstd byte = 1 << 0

	tagMark = 0

	// longest segment a stream can carry
	maxSegmentLen = 1 << 16
)

var (
	// ErrCorrupt is returned when a stream is malformed or doesn't replay
	// onto the given tree.
	ErrCorrupt = errors.New("corrupt path stream")

	// ErrVersion is returned for a stream written by an unknown version.
	ErrVersion = errors.New("unsupported path stream version")

	// ErrSegmentTooLong is returned by Encode for a tree holding a segment
	// longer than a stream can carry (64 KiB). Nothing is written.
	ErrSegmentTooLong = errors.New("segment too long for path stream")

	// ErrTreeMismatch is returned when an Encoder is given a different tree
	// than the one it started encoding.
	ErrTreeMismatch = errors.New("encoder is bound to another tree")
)

type options struct {
	compress bool
	level    zstd.EncoderLevel
}

// Option configures an Encoder.
type Option func(*options)

// WithCompression enables zstd compression of the record stream.
func WithCompression(enabled bool) Option {
	return func(o *options) {
		o.compress = enabled
	}
}

// WithEncoderLevel sets the zstd level (1-22, as for the zstd tool) and
// enables compression.
func WithEncoderLevel(level int) Option {
	return func(o *options) {
		o.compress = true
		o.level = zstd.EncoderLevelFromZstd(level)
	}
}
