package compile_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/press/pkg/compile"
	"github.com/yaklabco/press/pkg/manuscript"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	src := compile.NewSource("intro.ms", []byte("# Title\n\nBody text.\n\n"))
	res, err := compile.Compile(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Sizing.Chapters)
	assert.Equal(t, 4, res.Sizing.Elements)
	assert.Zero(t, res.Sizing.References)
	assert.Equal(t, manuscript.KindEOF, res.Tokens.At(res.Tokens.Len()-1).Kind)
}

func TestCompileIsOneShot(t *testing.T) {
	t.Parallel()

	src := compile.NewSource("intro.ms", []byte("# Title\n"))
	_, err := compile.Compile(context.Background(), src)
	require.NoError(t, err)

	_, err = compile.Compile(context.Background(), src)
	require.ErrorIs(t, err, compile.ErrSourceConsumed)
}

func TestCompileOneShotUnderConcurrency(t *testing.T) {
	t.Parallel()

	src := compile.NewSource("intro.ms", []byte("# Title\n"))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := compile.Compile(context.Background(), src)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else {
				fail++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 7, fail)
}

func TestCompileReportsDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		kind manuscript.ErrorKind
	}{
		{"lexical", "# Title\n\nToo  many spaces.\n", manuscript.ErrExtraneousSpace},
		{"structural", "Body first.\n", manuscript.ErrMissingOpeningHeading},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := compile.Compile(context.Background(), compile.NewSource(tc.name, []byte(tc.src)))
			require.ErrorIs(t, err, tc.kind)

			diag, ok := compile.Diagnostic(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, diag.Kind)
		})
	}

	_, ok := compile.Diagnostic(compile.ErrSourceConsumed)
	assert.False(t, ok)
}

func TestCompileCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := compile.Compile(ctx, compile.NewSource("x", []byte("# Title\n")))
	require.ErrorIs(t, err, context.Canceled)
}

func BenchmarkCompile(b *testing.B) {
	chapter := "# Chapter\n\nBody text with **strong** words.\nMore body text.\n\n## Section\n\nClosing text.\n\n"
	content := []byte(strings.Repeat(chapter, 200))
	b.SetBytes(int64(len(content)))

	for b.Loop() {
		if _, err := compile.Compile(context.Background(), compile.NewSource("bench.ms", content)); err != nil {
			b.Fatal(err)
		}
	}
}
