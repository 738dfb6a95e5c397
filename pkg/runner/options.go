// Package runner discovers manuscripts and compiles them concurrently.
package runner

import (
	"github.com/google/uuid"

	"github.com/yaklabco/press/pkg/cache"
	"github.com/yaklabco/press/pkg/config"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to process. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths and is the base for ignore
	// patterns. Empty means the process working directory.
	WorkingDir string

	// Extensions selects manuscript files during directory walks. Files
	// named explicitly in Paths are always processed.
	Extensions []string

	// Ignore holds glob patterns, relative to WorkingDir, for files and
	// directories to skip.
	Ignore []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the worker count. 0 or negative means runtime.NumCPU().
	Jobs int

	// Cache, when set, is consulted before compiling and filled after.
	Cache *cache.Store

	// RunID tags cache entries and log records. A zero value is replaced
	// with a fresh random ID.
	RunID uuid.UUID
}

// OptionsFromConfig fills the discovery and concurrency fields from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Extensions: cfg.Extensions,
		Ignore:     cfg.Ignore,
		Jobs:       cfg.Jobs,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
