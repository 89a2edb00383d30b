package pathtree

import (
	"fmt"
	"strings"
)

// Node is a handle of a tree node. It stays valid for the lifetime of its
// Tree; the zero Node is invalid.
type Node struct {
	tree *Tree
	id   ID
}

func (n Node) slot() *node {
	return n.tree.pool.at(n.id)
}

// Valid reports whether n refers to a node.
func (n Node) Valid() bool {
	return n.tree != nil
}

func (n Node) ID() ID {
	return n.id
}

// Segment returns the node's own path component ("" for the root).
func (n Node) Segment() string {
	return n.slot().segment
}

// Depth returns the number of segments between the root and n.
func (n Node) Depth() int {
	return int(n.slot().depth)
}

func (n Node) IsRoot() bool {
	return n.id == RootID
}

// IsTerminal reports whether n ends a path that was inserted as a whole.
func (n Node) IsTerminal() bool {
	return n.tree.terminal.Has(n.id)
}

// Parent returns the parent node, or false for the root.
func (n Node) Parent() (Node, bool) {
	parent := n.slot().parent
	if parent == noID {
		return Node{}, false
	}
	return Node{tree: n.tree, id: parent}, true
}

// ChildCount returns the number of direct children.
func (n Node) ChildCount() int {
	var cnt int
	for c := n.slot().firstChild; c != noID; c = n.tree.pool.at(c).nextSibling {
		cnt++
	}
	return cnt
}

// Children returns the direct children in creation order.
func (n Node) Children() []Node {
	var children []Node
	for c := n.slot().firstChild; c != noID; c = n.tree.pool.at(c).nextSibling {
		children = append(children, Node{tree: n.tree, id: c})
	}
	return children
}

// Child returns the direct child named segment.
func (n Node) Child(segment string) (Node, bool) {
	id, ok := n.tree.children[edge{n.id, segment}]
	if !ok {
		return Node{}, false
	}
	return Node{tree: n.tree, id: id}, true
}

// Segments returns the full path of n from the root, one element per segment.
func (n Node) Segments() []string {
	var (
		pool     = n.tree.pool
		cur      = pool.at(n.id)
		segments = make([]string, cur.depth)
	)

	for i := len(segments) - 1; i >= 0; i-- {
		segments[i] = cur.segment
		cur = pool.at(cur.parent)
	}

	return segments
}

// Path joins Segments with the tree's separator. The root yields "".
func (n Node) Path() string {
	return strings.Join(n.Segments(), string(n.tree.opts.separator))
}

func (n Node) String() string {
	if !n.Valid() {
		return "<pathtree|nil>"
	}
	return fmt.Sprintf("<pathtree|%d|%q>", n.id, n.Path())
}
