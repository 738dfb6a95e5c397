package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/press/pkg/runner"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"book.press":        "# A\n",
		"parts/one.ms":      "# B\n",
		"parts/two.PRESS":   "# C\n",
		"notes.txt":         "x",
		".hidden.press":     "# D\n",
		".git/config.press": "# E\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"book.press", "parts/one.ms", "parts/two.PRESS"}, relPaths(t, dir, files))
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "", "b.press": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".txt"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, relPaths(t, dir, files))
}

func TestDiscover_Ignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"book.press":          "",
		"drafts/old.press":    "",
		"drafts/deep/x.press": "",
		"parts/wip.press":     "",
		"parts/final.press":   "",
		"parts/sub/wip.press": "",
	})

	tests := []struct {
		name   string
		ignore []string
		want   []string
	}{
		{
			name: "no patterns",
			want: []string{
				"book.press", "drafts/deep/x.press", "drafts/old.press",
				"parts/final.press", "parts/sub/wip.press", "parts/wip.press",
			},
		},
		{
			name:   "directory tree",
			ignore: []string{"drafts/**"},
			want:   []string{"book.press", "parts/final.press", "parts/sub/wip.press", "parts/wip.press"},
		},
		{
			name:   "base name anywhere",
			ignore: []string{"wip.press"},
			want:   []string{"book.press", "drafts/deep/x.press", "drafts/old.press", "parts/final.press"},
		},
		{
			name:   "single star stays in segment",
			ignore: []string{"parts/*.press"},
			want:   []string{"book.press", "drafts/deep/x.press", "drafts/old.press", "parts/sub/wip.press"},
		},
		{
			name:   "double star crosses segments",
			ignore: []string{"**/wip.press", "drafts"},
			want:   []string{"book.press", "parts/final.press"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir: dir,
				Ignore:     tt.ignore,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_InvalidIgnore(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Ignore:     []string{"[unclosed"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore pattern")
}

func TestDiscover_ExplicitFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"chapter.txt": "", "b.press": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"chapter.txt", "b.press", "./b.press", "."},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.press", "chapter.txt"}, relPaths(t, dir, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.press": ""})
	writeFiles(t, outside, map[string]string{"linked.press": ""})

	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
