package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/aglyzov/go-pathtree/pathtree"
)

// Decoder replays a record stream into a tree.
type Decoder struct {
	r    io.Reader
	br   *bufio.Reader
	zr   *zstd.Decoder
	next int // ID the next node record must reproduce
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:    r,
		next: int(pathtree.RootID) + 1,
	}
}

// Decode applies every record up to the end of the stream to t, which must be
// empty or hold exactly the nodes replayed so far (as when decoding into a
// tree that was itself decoded from a prefix of the stream). A node record
// whose ID t would assign differently fails with ErrCorrupt.
func (d *Decoder) Decode(t *pathtree.Tree) error {
	if d.br == nil {
		if err := d.start(); err != nil {
			return err
		}
	}

	for {
		tag, err := binary.ReadUvarint(d.br)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: reading tag: %w", ErrCorrupt, err)
		}

		if tag == tagMark {
			if err := d.mark(t); err != nil {
				return err
			}
			continue
		}

		if tag-1 >= uint64(d.next) {
			return fmt.Errorf("%w: node %d refers to parent %d", ErrCorrupt, d.next, tag-1)
		}

		if err := d.node(t, pathtree.ID(tag-1)); err != nil {
			return err
		}
	}
}

// Close releases the zstd decoder if any.
func (d *Decoder) Close() {
	if d.zr != nil {
		d.zr.Close()
	}
}

func (d *Decoder) start() error {
	var header [len(magic) + 2]byte

	if _, err := io.ReadFull(d.r, header[:]); err != nil {
		return fmt.Errorf("%w: reading header: %w", ErrCorrupt, err)
	}

	if string(header[:len(magic)]) != magic {
		return fmt.Errorf("%w: bad magic %q", ErrCorrupt, header[:len(magic)])
	}

	if v := header[len(magic)]; v != version {
		return fmt.Errorf("%w: %d", ErrVersion, v)
	}

	if header[len(magic)+1]&flagZstd != 0 {
		zr, err := zstd.NewReader(d.r)
		if err != nil {
			return fmt.Errorf("failed to create decompressor: %w", err)
		}
		d.zr = zr
		d.br = bufio.NewReader(zr)
	} else {
		d.br = bufio.NewReader(d.r)
	}

	return nil
}

func (d *Decoder) mark(t *pathtree.Tree) error {
	id, err := binary.ReadUvarint(d.br)
	if err != nil {
		return fmt.Errorf("%w: reading mark: %w", ErrCorrupt, unexpected(err))
	}

	if id == 0 || id >= uint64(d.next) {
		return fmt.Errorf("%w: mark of unwritten node %d", ErrCorrupt, id)
	}

	if err := t.MarkTerminal(pathtree.ID(id)); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return nil
}

func (d *Decoder) node(t *pathtree.Tree, parent pathtree.ID) error {
	size, err := binary.ReadUvarint(d.br)
	if err != nil {
		return fmt.Errorf("%w: reading node %d: %w", ErrCorrupt, d.next, unexpected(err))
	}

	if size == 0 || size > maxSegmentLen {
		return fmt.Errorf("%w: node %d: segment length %d", ErrCorrupt, d.next, size)
	}

	// segment bytes followed by the terminal flag
	data := make([]byte, size+1)
	if _, err := io.ReadFull(d.br, data); err != nil {
		return fmt.Errorf("%w: reading node %d: %w", ErrCorrupt, d.next, unexpected(err))
	}

	n, err := t.Extend(parent, string(data[:size]))
	if err != nil {
		return fmt.Errorf("%w: node %d: %w", ErrCorrupt, d.next, err)
	}

	if int(n.ID()) != d.next {
		return fmt.Errorf("%w: node %d replayed as %d", ErrCorrupt, d.next, n.ID())
	}

	if data[size] != 0 {
		if err := t.MarkTerminal(n.ID()); err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}

	d.next++

	return nil
}

// unexpected turns a clean EOF in the middle of a record into ErrUnexpectedEOF.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
