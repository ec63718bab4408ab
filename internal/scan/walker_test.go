package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates the given slash-separated files (with placeholder
// content) under a fresh temporary directory and returns its path.
func writeTree(t *testing.T, files ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x\n"), 0o644))
	}
	return root
}

// TestFiles_SortedRelativePaths verifies the walker returns root-relative,
// slash-separated paths in sorted order.
func TestFiles_SortedRelativePaths(t *testing.T) {
	root := writeTree(t,
		"Components/MyWidget/MyWidget.js",
		"Components/Avatar.js",
		"index.js",
	)

	w, err := NewWalker()
	require.NoError(t, err)

	files, err := w.Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Components/Avatar.js",
		"Components/MyWidget/MyWidget.js",
		"index.js",
	}, files)
}

// TestFiles_DefaultSkipList verifies the test setup file and VCS/dependency
// directories are never listed.
func TestFiles_DefaultSkipList(t *testing.T) {
	root := writeTree(t,
		"setupTests.ts",
		"App.js",
		".git/HEAD",
		"node_modules/React/index.js",
	)

	w, err := NewWalker()
	require.NoError(t, err)

	files, err := w.Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"App.js"}, files)
}

// TestFiles_ExtraPatterns verifies base-name and path patterns supplied by
// configuration.
func TestFiles_ExtraPatterns(t *testing.T) {
	root := writeTree(t,
		"App.js",
		"App.snap",
		"Legacy/Old.js",
		"Legacy/Deep/Older.js",
	)

	w, err := NewWalker("*.snap", "Legacy/**")
	require.NoError(t, err)

	files, err := w.Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"App.js"}, files)
}

// TestNewWalker_InvalidPattern verifies a malformed glob is rejected.
func TestNewWalker_InvalidPattern(t *testing.T) {
	_, err := NewWalker("[unclosed")
	assert.Error(t, err)
}

// TestSkipped checks the matching rules directly.
func TestSkipped(t *testing.T) {
	w, err := NewWalker("**/__snapshots__/**")
	require.NoError(t, err)

	tests := []struct {
		rel  string
		want bool
	}{
		{"setupTests.js", true},
		{"src/setupTests.ts", true},
		{"setupTestsHelper.js", false},
		{"Components/__snapshots__/Avatar.snap", true},
		{"Components/Avatar.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Skipped(tt.rel))
		})
	}
	assert.Contains(t, w.Patterns(), "setupTests.*")
}

// TestFiles_MissingRoot verifies a walk error is reported.
func TestFiles_MissingRoot(t *testing.T) {
	w, err := NewWalker()
	require.NoError(t, err)

	_, err = w.Files(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
