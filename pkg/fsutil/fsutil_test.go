package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/press/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "chapter.ms")
	if err := os.WriteFile(path, []byte("# Title\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	content, info, err := fsutil.ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "# Title\n" {
		t.Errorf("content = %q", content)
	}
	if info.Size != int64(len(content)) || info.Path != path {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	if _, _, err := fsutil.ReadFile(ctx, filepath.Join(dir, "missing.ms")); !errors.Is(err, fsutil.ErrNotFound) {
		t.Errorf("missing file: err = %v, want ErrNotFound", err)
	}
	if _, _, err := fsutil.ReadFile(ctx, dir); !errors.Is(err, fsutil.ErrIsDirectory) {
		t.Errorf("directory: err = %v, want ErrIsDirectory", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, _, err := fsutil.ReadFile(cancelled, dir); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: err = %v", err)
	}
}

func TestReadFile_TooLarge(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "huge.ms")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	// Sparse; no data blocks are written.
	if err := os.Truncate(path, fsutil.MaxFileSize+1); err != nil {
		t.Skipf("sparse files unsupported: %v", err)
	}

	content, info, err := fsutil.ReadFile(context.Background(), path)
	if !errors.Is(err, fsutil.ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
	if content != nil || info != nil {
		t.Errorf("got content %d bytes, info %+v; want nil", len(content), info)
	}
}
