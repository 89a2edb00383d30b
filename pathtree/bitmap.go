package pathtree

import (
	"github.com/hideo55/go-popcount"
)

// Bitmap is a packed set of node IDs, 64 per word. The zero value is an empty
// set ready to use.
type Bitmap []uint64

// Set adds id to the bitmap and reports whether it was absent.
func (b *Bitmap) Set(id ID) bool {
	var (
		off = int(id >> 6)
		bit = uint64(1) << (id & 0x3F) // 3F == 0011 1111
	)

	for off >= len(*b) {
		// extend bitmap
		*b = append(*b, 0)
	}

	if (*b)[off]&bit != 0 {
		return false
	}

	(*b)[off] |= bit

	return true
}

func (b Bitmap) Has(id ID) bool {
	off := int(id >> 6)
	if off >= len(b) {
		return false
	}
	return (b[off]>>(id&0x3F))&0x01 != 0
}

// Count returns the number of IDs in the bitmap.
func (b Bitmap) Count() int {
	var cnt uint64
	for _, word := range b {
		cnt += popcount.Count(word)
	}
	return int(cnt)
}
