package pathtree

import (
	"fmt"
	"strings"
)

// SplitPath splits path on sep into segments, most significant first.
//
// A leading separator marks an absolute path and is dropped, so "/a/b" and
// "a/b" yield the same segments; a path made of the separator alone yields no
// segments (the root). A drive or volume prefix such as "C:" is kept as the
// first segment. Nothing else is normalized: "." and ".." are ordinary
// segments and case is preserved.
//
// An empty path and an empty segment ("a//b", "a/b/") are ErrInvalidPath.
func SplitPath(path string, sep byte) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if path[0] == sep {
		path = path[1:]
		if path == "" {
			return nil, nil // the root
		}
	}

	segments := strings.Split(path, string(sep))

	for i, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment at position %d in %q", ErrInvalidPath, i, path)
		}
	}

	return segments, nil
}
