package pathtree

// Merge grafts every node of other into t, reusing the prefixes t already
// has. New nodes get IDs in other's ID order, terminal flags are carried
// over. Merge fails with ErrCapacity, leaving t unchanged, if the missing
// nodes don't fit. Returns nil for a nil or identical other.
func (t *Tree) Merge(other *Tree) error {
	if other == nil || other == t {
		return nil
	}

	var (
		total   = other.pool.len()
		mapping = make([]ID, total) // other's ID -> t's ID, noID if missing
		missing int
	)

	mapping[RootID] = RootID

	// find out what is missing: parents always precede their children
	for id := 1; id < total; id++ {
		var (
			n      = other.pool.at(ID(id))
			parent = mapping[n.parent]
		)

		mapping[id] = noID

		if parent == noID {
			missing++
			continue
		}

		if cur, ok := t.children[edge{parent, n.segment}]; ok {
			mapping[id] = cur
		} else {
			missing++
		}
	}

	if missing > 0 {
		if err := t.reserve(missing); err != nil {
			return err
		}
	}

	for id := 1; id < total; id++ {
		n := other.pool.at(ID(id))

		if mapping[id] == noID {
			mapping[id] = t.addChild(mapping[n.parent], n.segment)
		}

		if other.terminal.Has(ID(id)) {
			t.terminal.Set(mapping[id])
		}
	}

	return nil
}
