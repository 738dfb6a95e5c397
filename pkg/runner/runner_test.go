package runner_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/press/pkg/cache"
	"github.com/yaklabco/press/pkg/config"
	"github.com/yaklabco/press/pkg/manuscript"
	"github.com/yaklabco/press/pkg/runner"
)

const (
	goodManuscript = "# Title\n\nBody text.\n\n"
	badManuscript  = "# Title\n\nBody text. \n\n"
)

func openCache(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
	assert.NotEmpty(t, result.RunID)
}

func TestRunner_Run_MixedResults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.press": goodManuscript,
		"b.press": badManuscript,
		"c.press": "# One\n\nText.\n\n# Two\n\n",
	})

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	assert.Equal(t, []string{"a.press", "b.press", "c.press"}, relPaths(t, dir, []string{
		result.Files[0].Path, result.Files[1].Path, result.Files[2].Path,
	}))

	good := result.Files[0]
	assert.False(t, good.Failed())
	assert.Equal(t, manuscript.Sizing{Chapters: 1, Elements: 4}, good.Sizing)
	assert.Equal(t, 6, good.TokenCount)
	assert.Nil(t, good.Tokens)

	bad := result.Files[1]
	assert.True(t, bad.Failed())
	require.NotNil(t, bad.Diagnostic)
	assert.Equal(t, manuscript.ErrTrailingSpace, bad.Diagnostic.Kind)
	assert.Equal(t, 3, bad.Diagnostic.Line)

	assert.Equal(t, 3, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesFailed)
	assert.Equal(t, 1, result.Stats.DiagnosticsByKind["TrailingSpace"])
	assert.Equal(t, 3, result.Stats.Sizing.Chapters)
	assert.True(t, result.HasFailures())
	assert.False(t, result.HasErrors())
}

func TestRunner_Run_KeepTokens(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.press": goodManuscript})

	r := runner.New()
	r.KeepTokens = true
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NotNil(t, result.Files[0].Tokens)
	assert.Equal(t, manuscript.KindHeading1, result.Files[0].Tokens.At(0).Kind)
}

func TestRunner_Run_Cache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.press": goodManuscript,
		"b.press": badManuscript,
	})
	store := openCache(t)
	ctx := context.Background()

	first, err := runner.New().Run(ctx, runner.Options{WorkingDir: dir, Cache: store})
	require.NoError(t, err)
	assert.Zero(t, first.Stats.CacheHits)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	r := runner.New()
	r.KeepTokens = true
	runID := uuid.New()
	second, err := r.Run(ctx, runner.Options{WorkingDir: dir, Cache: store, RunID: runID})
	require.NoError(t, err)
	assert.Equal(t, runID.String(), second.RunID)
	assert.Equal(t, 2, second.Stats.CacheHits)

	for i := range first.Files {
		assert.True(t, second.Files[i].Cached)
		assert.Equal(t, first.Files[i].Sizing, second.Files[i].Sizing)
		assert.Equal(t, first.Files[i].TokenCount, second.Files[i].TokenCount)
		assert.Equal(t, first.Files[i].Diagnostic, second.Files[i].Diagnostic)
	}
	assert.NotNil(t, second.Files[0].Tokens)
	assert.Nil(t, second.Files[1].Tokens)
}

func TestRunner_Run_SerialVsParallel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{}
	for i := range 20 {
		name := filepath.Join("ch", string(rune('a'+i))+".press")
		if i%3 == 0 {
			files[name] = badManuscript
		} else {
			files[name] = goodManuscript
		}
	}
	writeFiles(t, dir, files)

	serial, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Diagnostic, parallel.Files[i].Diagnostic)
		assert.Equal(t, serial.Files[i].Sizing, parallel.Files[i].Sizing)
	}
	assert.Equal(t, serial.Stats.FilesFailed, parallel.Stats.FilesFailed)
	assert.Equal(t, 7, serial.Stats.FilesFailed)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.press": goodManuscript})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_RunFiles_ReadError(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "gone.press")
	result, err := runner.New().RunFiles(context.Background(), []string{missing}, runner.Options{})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.Error(t, result.Files[0].Error)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.True(t, result.HasErrors())
	assert.False(t, result.HasFailures())
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Jobs = 3
	cfg.Ignore = []string{"drafts/**"}

	opts := runner.OptionsFromConfig(cfg)
	assert.Equal(t, 3, opts.Jobs)
	assert.Equal(t, []string{"drafts/**"}, opts.Ignore)
	assert.Equal(t, cfg.Extensions, opts.Extensions)

	assert.Equal(t, config.DefaultExtensions(), runner.OptionsFromConfig(nil).Extensions)
}
