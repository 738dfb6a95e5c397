package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run fields.
	FieldRunID   = "run_id"
	FieldJobs    = "jobs"
	FieldHash    = "hash"
	FieldCache   = "cache"
	FieldRemoved = "removed"

	// Manuscript fields.
	FieldKind       = "kind"
	FieldLine       = "line"
	FieldTokens     = "tokens"
	FieldChapters   = "chapters"
	FieldElements   = "elements"
	FieldReferences = "references"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"
	FieldCacheHits       = "cache_hits"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
