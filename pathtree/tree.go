package pathtree

import (
	"fmt"
	"math"
)

// ID is a dense node identifier. IDs are assigned at creation in first-seen
// order and equal the node's position in the arena; the root is RootID.
type ID uint32

const (
	// RootID identifies the synthetic root node.
	RootID ID = 0

	noID ID = math.MaxUint32
)

// edge is the key of the child index: a parent and one of its segments.
type edge struct {
	parent  ID
	segment string
}

// Tree is a prefix tree of path segments. A zero Tree is not usable, use New.
//
// A Tree is not safe for concurrent use; see Serial and Build.
type Tree struct {
	pool     *nodePool
	children map[edge]ID
	terminal Bitmap
	opts     options
}

// New returns an empty Tree holding only the root node.
func New(opts ...Option) *Tree {
	o := newOptions(opts...)

	t := &Tree{
		pool:     newNodePool(o.capacity),
		children: make(map[edge]ID, o.capacity),
		opts:     o,
	}

	t.pool.get(noID, "", 0) // root

	return t
}

// Len returns the number of nodes in the tree, root included.
func (t *Tree) Len() int {
	return t.pool.len()
}

// TerminalCount returns the number of distinct paths inserted so far.
func (t *Tree) TerminalCount() int {
	return t.terminal.Count()
}

// Separator returns the separator used by InsertPath and Node.Path.
func (t *Tree) Separator() byte {
	return t.opts.separator
}

// Root returns the handle of the root node.
func (t *Tree) Root() Node {
	return Node{tree: t, id: RootID}
}

// Node returns the handle of the node with the given id.
func (t *Tree) Node(id ID) (Node, bool) {
	if int64(id) >= int64(t.pool.len()) {
		return Node{}, false
	}
	return Node{tree: t, id: id}, true
}

// Insert merges a path given as its segments (most significant first) into
// the tree and returns the handle of its terminal node, creating only the
// nodes missing on the matching prefix. Inserting the same path again returns
// the same node and creates nothing.
//
// Segments are compared as opaque strings. An empty sequence or an empty
// segment fails with ErrInvalidPath; exceeding the node limit fails with
// ErrCapacity. The tree is left unchanged on error.
func (t *Tree) Insert(segments ...string) (Node, error) {
	if err := validate(segments); err != nil {
		return Node{}, err
	}

	// walk along a common prefix
	var (
		cur = RootID
		idx int
	)

	for ; idx < len(segments); idx++ {
		next, ok := t.children[edge{cur, segments[idx]}]
		if !ok {
			break
		}
		cur = next
	}

	if missing := len(segments) - idx; missing > 0 {
		if err := t.reserve(missing); err != nil {
			return Node{}, err
		}

		// create the rest of the chain
		for ; idx < len(segments); idx++ {
			cur = t.addChild(cur, segments[idx])
		}
	}

	t.terminal.Set(cur)

	return Node{tree: t, id: cur}, nil
}

// InsertPath splits path on the tree's separator (see SplitPath) and inserts
// the result. A path made of the separator alone maps to the root node, which
// is returned without being marked terminal.
func (t *Tree) InsertPath(path string) (Node, error) {
	segments, err := SplitPath(path, t.opts.separator)
	if err != nil {
		return Node{}, err
	}

	if len(segments) == 0 {
		return t.Root(), nil
	}

	return t.Insert(segments...)
}

// Extend returns the child of parent named segment, creating it if needed.
// Unlike Insert it does not mark the node terminal: it is the "extend node P
// with segment S" step a record stream is replayed with.
func (t *Tree) Extend(parent ID, segment string) (Node, error) {
	if _, ok := t.Node(parent); !ok {
		return Node{}, fmt.Errorf("%w: %d", ErrUnknownNode, parent)
	}

	if segment == "" {
		return Node{}, fmt.Errorf("%w: empty segment", ErrInvalidPath)
	}

	if id, ok := t.children[edge{parent, segment}]; ok {
		return Node{tree: t, id: id}, nil
	}

	if err := t.reserve(1); err != nil {
		return Node{}, err
	}

	return Node{tree: t, id: t.addChild(parent, segment)}, nil
}

// MarkTerminal flags an existing node as the end of an inserted path.
func (t *Tree) MarkTerminal(id ID) error {
	if id == RootID {
		return fmt.Errorf("%w: root cannot be terminal", ErrInvalidPath)
	}

	if _, ok := t.Node(id); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}

	t.terminal.Set(id)

	return nil
}

// Lookup returns the node for the given segments without modifying the tree.
// No segments means the root.
func (t *Tree) Lookup(segments ...string) (Node, bool) {
	cur := RootID

	for _, seg := range segments {
		next, ok := t.children[edge{cur, seg}]
		if !ok {
			return Node{}, false
		}
		cur = next
	}

	return Node{tree: t, id: cur}, true
}

// Walk calls fn for every node in depth-first pre-order, starting with the
// root, siblings in creation order. It returns false if fn aborted the walk.
func (t *Tree) Walk(fn func(Node) bool) bool {
	// Walk the tree without function recursion nor a stack: parent and
	// sibling links are enough to find the next node.
	cur := RootID

	for {
		if !fn(Node{tree: t, id: cur}) {
			return false
		}

		n := t.pool.at(cur)

		if n.firstChild != noID {
			cur = n.firstChild
			continue
		}

		// climb until a node with a next sibling
		for cur != RootID && t.pool.at(cur).nextSibling == noID {
			cur = t.pool.at(cur).parent
		}

		if cur == RootID {
			return true
		}

		cur = t.pool.at(cur).nextSibling
	}
}

// reserve fails with ErrCapacity unless n more nodes fit.
func (t *Tree) reserve(n int) error {
	if have := uint64(t.pool.len()); have+uint64(n) > t.opts.maxNodes {
		return fmt.Errorf("%w: %d nodes + %d new > %d", ErrCapacity, have, n, t.opts.maxNodes)
	}
	return nil
}

func (t *Tree) addChild(parent ID, segment string) ID {
	id := t.pool.get(parent, segment, t.pool.at(parent).depth+1)

	// p is fetched after get, which may have moved the arena
	p := t.pool.at(parent)
	if p.lastChild == noID {
		p.firstChild = id
	} else {
		t.pool.at(p.lastChild).nextSibling = id
	}
	p.lastChild = id

	t.children[edge{parent, segment}] = id

	return id
}

func validate(segments []string) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: no segments", ErrInvalidPath)
	}

	for i, seg := range segments {
		if seg == "" {
			return fmt.Errorf("%w: empty segment at position %d", ErrInvalidPath, i)
		}
	}

	return nil
}
