package pathtree

import (
	"context"
	"strings"
	"testing"
)

// ~137k directories, ~800k segments
const (
	benchDepth = 7
	benchWidth = 7
)

func BenchmarkInsert_SyntheticTree(b *testing.B) {
	paths := syntheticPaths(benchDepth, benchWidth)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		tr := New()
		for _, path := range paths {
			if _, err := tr.Insert(path...); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkInsert_SyntheticTreePreAlloc(b *testing.B) {
	paths := syntheticPaths(benchDepth, benchWidth)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		tr := New(WithCapacity(len(paths) + 1))
		for _, path := range paths {
			if _, err := tr.Insert(path...); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkInsertPath_SyntheticTree(b *testing.B) {
	var (
		paths   = syntheticPaths(benchDepth, benchWidth)
		strPath = make([]string, len(paths))
	)

	for i, path := range paths {
		strPath[i] = "/" + strings.Join(path, "/")
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		tr := New()
		for _, path := range strPath {
			if _, err := tr.InsertPath(path); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkBuild_SyntheticTree(b *testing.B) {
	paths := syntheticPaths(benchDepth, benchWidth)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Build(context.Background(), paths); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkGoMap_SyntheticTree stores full path strings in a map, the layout
// the tree replaces.
func BenchmarkGoMap_SyntheticTree(b *testing.B) {
	paths := syntheticPaths(benchDepth, benchWidth)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m := make(map[string]int)
		for _, path := range paths {
			key := strings.Join(path, "/")
			if _, ok := m[key]; !ok {
				m[key] = len(m)
			}
		}
	}
}

func BenchmarkLookup(b *testing.B) {
	var (
		paths = getPaths(b.N, 8)
		tr    = New()
	)

	for _, path := range paths {
		_, _ = tr.Insert(path...)
	}

	b.ResetTimer()

	for _, path := range paths {
		_, _ = tr.Lookup(path...)
	}
}
