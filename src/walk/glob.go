package walk

import (
	"path/filepath"
	"strings"
)

// MatchGlob matches a glob pattern supporting ** (zero or more path
// segments) against a forward-slash path. Patterns without ** delegate
// directly to filepath.Match.
func MatchGlob(pattern, path string) bool {
	if !strings.Contains(pattern, "**") {
		matched, _ := filepath.Match(pattern, path)
		return matched
	}

	idx := strings.Index(pattern, "**")
	prefix := pattern[:idx]
	suffix := strings.TrimLeft(pattern[idx+2:], "/")

	if prefix != "" {
		prefix = strings.TrimRight(prefix, "/")
		if !strings.HasPrefix(path, prefix) {
			return false
		}
		path = strings.TrimPrefix(path, prefix)
		path = strings.TrimLeft(path, "/")
	}

	// A trailing ** matches everything remaining.
	if suffix == "" {
		return true
	}

	// Try the suffix against every possible tail of the path.
	parts := strings.Split(path, "/")
	for i := 0; i <= len(parts); i++ {
		if MatchGlob(suffix, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}
