package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func paths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestCollectWalksTree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"analysis.R":      "x <- 1\n",
		"R/helpers.R":     "y <- 2\n",
		"README.md":       "# readme\n",
		".git/config":     "ignored\n",
		".hidden/file.R":  "ignored\n",
		"renv/activate.R": "z <- 3\n",
	})

	files, err := Collect(root, nil)
	require.NoError(t, err)

	got := paths(files)
	assert.ElementsMatch(t, []string{"analysis.R", "R/helpers.R", "README.md", "renv/activate.R"}, got)

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Abs), "Abs must be absolute: %s", f.Abs)
	}
}

func TestCollectAppliesExcludes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"analysis.R":      "x <- 1\n",
		"renv/activate.R": "z <- 3\n",
		"data/big.Rds":    "bin\n",
	})

	files, err := Collect(root, []string{"renv/**", "*.Rds"})
	require.NoError(t, err)
	assert.Equal(t, []string{"analysis.R"}, paths(files))
}

func TestExcludedBaseVsPathPatterns(t *testing.T) {
	// No slash and no **: matched against the base name.
	assert.True(t, Excluded("deep/dir/notes.md", []string{"*.md"}))
	assert.False(t, Excluded("deep/dir/notes.R", []string{"*.md"}))

	// With a slash: matched against the full path.
	assert.True(t, Excluded("renv/activate.R", []string{"renv/**"}))
	assert.False(t, Excluded("src/renv.R", []string{"renv/**"}))
}

func TestMatchGlob(t *testing.T) {
	cases := []struct {
		pattern, path string
		want          bool
	}{
		{"*.R", "a.R", true},
		{"*.R", "dir/a.R", false},
		{"**/*.R", "dir/sub/a.R", true},
		{"renv/**", "renv/lib/pkg/a.R", true},
		{"other/**", "renv/lib/a.R", false},
		{"**", "anything/at/all", true},
		{"src/**/testdata/*", "src/a/b/testdata/x.R", true},
		{"src/**/testdata/*", "src/a/b/other/x.R", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MatchGlob(c.pattern, c.path), "pattern %q path %q", c.pattern, c.path)
	}
}

func TestFilterChanged(t *testing.T) {
	files := []FileInfo{
		{Path: "a.R"},
		{Path: "b.R"},
		{Path: "c/d.R"},
	}

	// nil set means no baseline: keep everything.
	assert.Len(t, FilterChanged(files, nil), 3)

	got := FilterChanged(files, map[string]bool{"a.R": true, "c/d.R": true})
	assert.Equal(t, []string{"a.R", "c/d.R"}, paths(got))

	assert.Empty(t, FilterChanged(files, map[string]bool{}))
}
