package pathtree

import (
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// syntheticPaths returns every directory of a generated tree rooted at "tree"
// where each directory above the last level has width "sub_<i>" children,
// walked in pre-order (the root directory included).
func syntheticPaths(depth, width int) [][]string {
	var (
		paths [][]string
		gen   func(prefix []string, depth int)
	)

	gen = func(prefix []string, depth int) {
		if depth == 0 {
			return
		}

		paths = append(paths, prefix)

		for i := 1; i <= width; i++ {
			child := make([]string, len(prefix)+1)
			copy(child, prefix)
			child[len(prefix)] = "sub_" + strconv.Itoa(i)

			gen(child, depth-1)
		}
	}

	gen([]string{"tree"}, depth)

	return paths
}

// syntheticCount is the number of directories syntheticPaths generates.
func syntheticCount(depth, width int) int {
	var total, level = 0, 1
	for i := 0; i < depth; i++ {
		total += level
		level *= width
	}
	return total
}

// getPaths returns fake paths of 1 to maxDepth segments drawn from a small
// vocabulary, so that many of them share prefixes.
func getPaths(total, maxDepth int) [][]string {
	const seed = 1234567890

	var (
		faker = gofakeit.New(seed)
		vocab = make([]string, 16)
		paths = make([][]string, total)
	)

	for i := range vocab {
		vocab[i] = faker.Word() + strconv.Itoa(i)
	}

	for i := range paths {
		path := make([]string, faker.Number(1, maxDepth))
		for j := range path {
			path[j] = vocab[faker.Number(0, len(vocab)-1)]
		}
		paths[i] = path
	}

	return paths
}

// shape maps the path of every node to its terminal flag; two trees have
// the same shape when these maps are equal, whatever their ID numbering.
func shape(t *Tree) map[string]bool {
	s := make(map[string]bool, t.Len())

	t.Walk(func(n Node) bool {
		s[strings.Join(n.Segments(), "\x00")] = n.IsTerminal()
		return true
	})

	return s
}
