// Package pathtree defines a prefix tree of filesystem paths keyed by path
// segments, built to reference very large numbers of files compactly: paths
// sharing leading directories share the nodes of those directories.
//
// Nodes live in an append-only arena. A node's ID is its arena index, so IDs
// are dense and assigned in first-seen order, every node (intermediate ones
// included) has one from creation, and a parent's ID is always smaller than
// its children's. Children are found through one tree-wide hashed index keyed
// by (parent ID, segment); the parent link stored in a node is an index used
// for lookups only.
//
// Each node holds:
// ---------------
//
//   - segment     - the path component, unique among its siblings;
//   - parent      - ID of the parent (none for the root);
//   - depth       - number of segments from the root;
//   - firstChild, lastChild, nextSibling - IDs linking children in creation order.
//
// A separate bitmap flags terminal nodes: the ones inserted as whole paths.
//
// Example tree:
// ------------
//
//	                      ,-- [2:"build"]* -- [6:"out"]*
//	                      |
//	[0:""] -- [1:"tree"] -+-- [3:"sub_1"]* -- [4:"a.txt"]*
//	                      |
//	                      `-- [5:"sub_2"]*
//
// The tree above was built by inserting, in this order:
//
//   - "tree/build"            (creates 1 and 2)
//   - "tree/sub_1"            (creates 3, reuses 1)
//   - "tree/sub_1/a.txt"      (creates 4)
//   - "tree/sub_2"            (creates 5)
//   - "tree/build/out"        (creates 6, reuses 1 and 2)
//
// Terminal nodes are marked with *. Node 1 exists only as a shared prefix.
//
// Concurrency:
// -----------
//
// A Tree is not safe for concurrent use. Producers running on many goroutines
// either go through a Serial, which owns the tree and applies every insert on
// one goroutine, or use Build, which shards paths by the first segment below
// their shared prefix, fills one tree per shard in parallel and merges them.
package pathtree
