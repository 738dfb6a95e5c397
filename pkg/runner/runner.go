package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/press/internal/logging"
	"github.com/yaklabco/press/pkg/cache"
	"github.com/yaklabco/press/pkg/compile"
	"github.com/yaklabco/press/pkg/fsutil"
)

// Runner compiles manuscripts concurrently.
type Runner struct {
	// KeepTokens keeps the refined stream on each outcome, decoding it from
	// the cache on a hit.
	KeepTokens bool
}

// New creates a Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers files under opts.Paths and compiles them with a worker pool.
// Outcomes are returned in path order whatever order workers finish in.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts)
}

// RunFiles compiles an already discovered list of absolute paths.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	started := time.Now()
	runID := opts.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	logger := logging.WithRunID(logging.FromContext(ctx), runID.String())

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
		RunID: runID.String(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		result.Stats.Duration = time.Since(started)
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}
	logger.Debug("starting workers", logging.FieldJobs, jobs, logging.FieldFiles, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	w := &worker{
		store:      opts.Cache,
		runID:      runID,
		logger:     logger,
		keepTokens: r.KeepTokens,
	}

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				if ctx.Err() != nil {
					return
				}
				outcome := w.process(ctx, path)
				select {
				case <-ctx.Done():
					return
				case outCh <- outcome:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(started)

	logger.Debug("run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldCacheHits, result.Stats.CacheHits,
		logging.FieldDuration, result.Stats.Duration,
	)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

type worker struct {
	store      *cache.Store
	runID      uuid.UUID
	logger     *log.Logger
	keepTokens bool
}

func (w *worker) process(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Content = content

	key := cache.Key(content)
	if w.store != nil && w.fromCache(ctx, key, &outcome) {
		return outcome
	}

	res, err := compile.Compile(ctx, compile.NewSource(path, content))
	if err != nil {
		diag, ok := compile.Diagnostic(err)
		if !ok {
			outcome.Error = err
			return outcome
		}
		outcome.Diagnostic = diag
		w.logger.Debug("manuscript failed",
			logging.FieldPath, path, logging.FieldKind, diag.Kind, logging.FieldLine, diag.Line)
	} else {
		outcome.Sizing = res.Sizing
		outcome.Tokens = res.Tokens
		outcome.TokenCount = res.Tokens.Len()
		w.logger.Debug("manuscript compiled",
			logging.FieldPath, path,
			logging.FieldTokens, outcome.TokenCount,
			logging.FieldChapters, res.Sizing.Chapters,
			logging.FieldElements, res.Sizing.Elements,
			logging.FieldReferences, res.Sizing.References,
		)
	}

	if w.store != nil {
		w.toCache(ctx, key, &outcome)
	}
	if !w.keepTokens {
		outcome.Tokens = nil
	}
	return outcome
}

// fromCache fills outcome from a cache hit. Cache failures are logged and
// treated as misses.
func (w *worker) fromCache(ctx context.Context, key string, outcome *FileOutcome) bool {
	entry, found, err := w.store.Get(ctx, key)
	if err != nil {
		w.logger.Warn("cache lookup failed", logging.FieldPath, outcome.Path, logging.FieldError, err)
		return false
	}
	if !found {
		return false
	}

	if entry.Diagnostic == nil {
		stream, err := cache.DecodeTokens(entry.Tokens)
		if err != nil {
			w.logger.Warn("cached tokens unreadable", logging.FieldPath, outcome.Path, logging.FieldError, err)
			return false
		}
		outcome.TokenCount = stream.Len()
		if w.keepTokens {
			outcome.Tokens = stream
		}
	}

	outcome.Sizing = entry.Sizing
	outcome.Diagnostic = entry.Diagnostic
	outcome.Cached = true
	w.logger.Debug("cache hit", logging.FieldPath, outcome.Path, logging.FieldHash, key)
	return true
}

func (w *worker) toCache(ctx context.Context, key string, outcome *FileOutcome) {
	entry := &cache.Entry{
		Key:        key,
		Path:       outcome.Path,
		RunID:      w.runID,
		Sizing:     outcome.Sizing,
		Diagnostic: outcome.Diagnostic,
	}
	if outcome.Tokens != nil {
		data, err := cache.EncodeTokens(outcome.Tokens)
		if err != nil {
			w.logger.Warn("encode tokens", logging.FieldPath, outcome.Path, logging.FieldError, err)
			return
		}
		entry.Tokens = data
	}
	if err := w.store.Put(ctx, entry); err != nil {
		w.logger.Warn("cache store failed", logging.FieldPath, outcome.Path, logging.FieldError, err)
	}
}
