package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aglyzov/go-pathtree/pathtree"
	"github.com/aglyzov/go-pathtree/pathtree/codec"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// every directory of a tree 7 levels deep with 7 sub-directories each
	paths := generate([]string{"tree"}, 7, 7, nil)

	start := time.Now()
	tr := pathtree.New()

	for _, path := range paths {
		if _, err := tr.Insert(path...); err != nil {
			logger.Error("insert failed", "path", path, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("serial insert",
		"paths", len(paths),
		"nodes", tr.Len(),
		"terminals", tr.TerminalCount(),
		"elapsed", time.Since(start),
	)

	start = time.Now()

	built, err := pathtree.Build(context.Background(), paths, pathtree.WithLogger(logger))
	if err != nil {
		logger.Error("build failed", "error", err)
		os.Exit(1)
	}

	logger.Info("sharded build",
		"nodes", built.Len(),
		"elapsed", time.Since(start),
	)

	n, ok := tr.Lookup("tree", "sub_3", "sub_1", "sub_7")
	if ok {
		parent, _ := n.Parent()
		fmt.Printf("%s: id=%d depth=%d parent=%d\n", n.Path(), n.ID(), n.Depth(), parent.ID())
	}

	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer

		enc := codec.NewEncoder(&buf, codec.WithCompression(compress))
		if err := enc.Encode(tr); err != nil {
			logger.Error("encode failed", "error", err)
			os.Exit(1)
		}
		if err := enc.Close(); err != nil {
			logger.Error("encode failed", "error", err)
			os.Exit(1)
		}

		logger.Info("encoded", "compressed", compress, "bytes", buf.Len())
	}
}

func generate(dir []string, depth, width int, paths [][]string) [][]string {
	if depth == 0 {
		return paths
	}

	paths = append(paths, dir)

	for i := 1; i <= width; i++ {
		sub := append(dir[:len(dir):len(dir)], "sub_"+strconv.Itoa(i))
		paths = generate(sub, depth-1, width, paths)
	}

	return paths
}
