// Package walk enumerates the files of a project tree and, for
// changed-only runs, the files differing from a git baseline. It feeds
// (path, location) pairs to the analysis engine; reading and analyzing
// the content is the engine's business.
package walk

import (
	"os"
	"path/filepath"
	"strings"
)

// FileInfo identifies one file of the project.
type FileInfo struct {
	Path string // relative path from the project root
	Abs  string // absolute path on disk
	Size int64
}

// Collect walks the root directory and returns every regular file not
// matched by an exclude pattern. Hidden directories and .git are
// skipped.
func Collect(root string, exclude []string) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			base := filepath.Base(rel)
			if strings.HasPrefix(base, ".") && base != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if Excluded(rel, exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{
			Path: filepath.ToSlash(rel),
			Abs:  path,
			Size: info.Size(),
		})
		return nil
	})

	return files, err
}

// Excluded reports whether the path matches any exclude pattern.
// Patterns containing "/" or "**" match the full path; others match the
// base name only.
func Excluded(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	norm := normalizeSlashPath(path)
	base := filepath.Base(norm)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if strings.Contains(pattern, "/") || strings.Contains(pattern, "**") {
			if MatchGlob(pattern, norm) {
				return true
			}
		} else if MatchGlob(pattern, base) {
			return true
		}
	}
	return false
}

func normalizeSlashPath(p string) string {
	return strings.TrimPrefix(filepath.ToSlash(p), "./")
}

// FilterChanged keeps only the files present in changedSet. A nil set
// means no baseline was found and everything is kept.
func FilterChanged(files []FileInfo, changedSet map[string]bool) []FileInfo {
	if changedSet == nil {
		return files
	}
	filtered := make([]FileInfo, 0, len(changedSet))
	for _, f := range files {
		path := filepath.ToSlash(f.Path)
		if changedSet[path] || changedSet[strings.TrimPrefix(path, "./")] {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
