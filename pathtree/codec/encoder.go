package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/aglyzov/go-pathtree/pathtree"
)

// Encoder writes a tree incrementally: every Encode call appends the nodes
// created since the previous call, so a tree can be streamed out while it
// grows. An Encoder is bound to the first tree it encodes.
type Encoder struct {
	w    io.Writer
	bw   *bufio.Writer
	zw   *zstd.Encoder
	opts options

	tree    *pathtree.Tree
	next    int             // first node ID not written yet
	written pathtree.Bitmap // terminal flags already in the stream
	buf     []byte
	err     error // sticky write failure
}

// NewEncoder returns an Encoder writing to w. The header is written by the
// first Encode.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	o := options{
		level: zstd.SpeedDefault,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return &Encoder{
		w:    w,
		opts: o,
		next: int(pathtree.RootID) + 1,
	}
}

// Encode writes the records t gained since the last call and flushes them.
// Terminal flags set on already-written nodes are found by scanning them, so
// each call costs O(t.Len()).
//
// A segment longer than 64 KiB fails with ErrSegmentTooLong before anything
// is written. A write failure leaves the stream unusable: it is returned
// again by every later call.
func (e *Encoder) Encode(t *pathtree.Tree) error {
	if e.err != nil {
		return e.err
	}

	if e.tree != nil && e.tree != t {
		return ErrTreeMismatch
	}

	total := t.Len()

	for id := e.next; id < total; id++ {
		n, _ := t.Node(pathtree.ID(id))
		if size := len(n.Segment()); size > maxSegmentLen {
			return fmt.Errorf("%w: node %d: %d bytes", ErrSegmentTooLong, id, size)
		}
	}

	if err := e.write(t, total); err != nil {
		e.err = err
		return err
	}

	return nil
}

func (e *Encoder) write(t *pathtree.Tree, total int) error {
	if e.tree == nil {
		if err := e.start(); err != nil {
			return err
		}
		e.tree = t
	}

	// marks for nodes that became terminal after being written
	for id := int(pathtree.RootID) + 1; id < e.next; id++ {
		n, _ := t.Node(pathtree.ID(id))
		if !n.IsTerminal() || e.written.Has(pathtree.ID(id)) {
			continue
		}

		e.buf = binary.AppendUvarint(e.buf[:0], tagMark)
		e.buf = binary.AppendUvarint(e.buf, uint64(id))

		if _, err := e.bw.Write(e.buf); err != nil {
			return fmt.Errorf("writing mark %d: %w", id, err)
		}

		e.written.Set(pathtree.ID(id))
	}

	for ; e.next < total; e.next++ {
		n, _ := t.Node(pathtree.ID(e.next))
		parent, _ := n.Parent()
		segment := n.Segment()

		var terminal byte

		if n.IsTerminal() {
			terminal = 1
			e.written.Set(pathtree.ID(e.next))
		}

		e.buf = binary.AppendUvarint(e.buf[:0], uint64(parent.ID())+1)
		e.buf = binary.AppendUvarint(e.buf, uint64(len(segment)))
		e.buf = append(e.buf, segment...)
		e.buf = append(e.buf, terminal)

		if _, err := e.bw.Write(e.buf); err != nil {
			return fmt.Errorf("writing node %d: %w", e.next, err)
		}
	}

	return e.flush()
}

// Close flushes pending data and ends the zstd frame if any. It does not
// close the underlying writer.
func (e *Encoder) Close() error {
	if e.err != nil {
		return e.err
	}

	if e.bw == nil {
		return nil
	}

	if err := e.bw.Flush(); err != nil {
		return err
	}

	if e.zw != nil {
		return e.zw.Close()
	}

	return nil
}

func (e *Encoder) start() error {
	var flags byte
	if e.opts.compress {
		flags |= flagZstd
	}

	header := append([]byte(magic), version, flags)
	if _, err := e.w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if e.opts.compress {
		zw, err := zstd.NewWriter(e.w, zstd.WithEncoderLevel(e.opts.level))
		if err != nil {
			return fmt.Errorf("failed to create compressor: %w", err)
		}
		e.zw = zw
		e.bw = bufio.NewWriter(zw)
	} else {
		e.bw = bufio.NewWriter(e.w)
	}

	return nil
}

func (e *Encoder) flush() error {
	if err := e.bw.Flush(); err != nil {
		return err
	}

	if e.zw != nil {
		return e.zw.Flush()
	}

	return nil
}
