package pathtree

// node is an arena slot. All links are arena indices, never pointers: a parent
// link is only ever used for lookups and never owns a subtree.
type node struct {
	segment     string
	parent      ID
	depth       uint32
	firstChild  ID
	lastChild   ID
	nextSibling ID
}

// nodePool is an append-only arena of nodes; a node's ID is its index.
type nodePool struct {
	nodes []node
}

func newNodePool(preAlloc int) *nodePool {
	if preAlloc <= 0 {
		preAlloc = 256
	}
	return &nodePool{
		nodes: make([]node, 0, preAlloc),
	}
}

// get allocates a new node and returns its index in the .nodes slice
func (p *nodePool) get(parent ID, segment string, depth uint32) ID {
	p.nodes = append(p.nodes, node{
		segment:     segment,
		parent:      parent,
		depth:       depth,
		firstChild:  noID,
		lastChild:   noID,
		nextSibling: noID,
	})
	return ID(len(p.nodes) - 1)
}

// at returns a slot pointer. It is only valid until the next get.
func (p *nodePool) at(id ID) *node {
	return &p.nodes[id]
}

func (p *nodePool) len() int {
	return len(p.nodes)
}
