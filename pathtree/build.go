package pathtree

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Build populates a new Tree from paths in parallel. Paths are sharded by
// the first segment below the prefix all of them share, so a set of paths
// under a single directory like "tree" still splits into its sub-directories.
// Every shard is inserted into its own tree by one goroutine (at most
// WithWorkers at a time) and the shards are merged in the order their key
// segment first appears. Paths equal to the shared prefix are inserted before
// the merge.
//
// The result has the same shape and terminal paths as inserting paths one by
// one; only the ID numbering may differ. On error no tree is returned.
func Build(ctx context.Context, paths [][]string, opts ...Option) (*Tree, error) {
	o := newOptions(opts...)

	for i, path := range paths {
		if err := validate(path); err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
	}

	var (
		depth  = commonPrefix(paths)
		prefix []string // set when some path is the shared prefix itself
		order  []string
		shards = make(map[string][][]string)
	)

	for _, path := range paths {
		if len(path) == depth {
			prefix = path
			continue
		}

		key := path[depth]
		if _, ok := shards[key]; !ok {
			order = append(order, key)
		}
		shards[key] = append(shards[key], path)
	}

	o.logger.DebugContext(ctx, "building shards",
		"paths", len(paths),
		"depth", depth,
		"shards", len(order),
		"workers", o.workers,
	)

	var (
		trees   = make([]*Tree, len(order))
		g, gctx = errgroup.WithContext(ctx)
	)

	g.SetLimit(o.workers)

	for i, key := range order {
		g.Go(func() error {
			shard := New(WithMaxNodes(o.maxNodes), WithSeparator(o.separator))

			for j, path := range shards[key] {
				if j&0x3FF == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if _, err := shard.Insert(path...); err != nil {
					return fmt.Errorf("shard %q: %w", key, err)
				}
			}

			trees[i] = shard

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := New(opts...)

	if prefix != nil {
		if _, err := t.Insert(prefix...); err != nil {
			return nil, err
		}
	}

	for i, shard := range trees {
		if err := t.Merge(shard); err != nil {
			return nil, fmt.Errorf("merging shard %q: %w", order[i], err)
		}
		trees[i] = nil // let the shard go
	}

	o.logger.DebugContext(ctx, "shards merged",
		"nodes", t.Len(),
		"terminals", t.TerminalCount(),
	)

	return t, nil
}

// commonPrefix returns the number of leading segments shared by all paths.
func commonPrefix(paths [][]string) int {
	if len(paths) == 0 {
		return 0
	}

	var (
		first = paths[0]
		depth = len(first)
	)

	for _, path := range paths[1:] {
		depth = min(depth, len(path))

		for i := 0; i < depth; i++ {
			if path[i] != first[i] {
				depth = i
				break
			}
		}
	}

	return depth
}
