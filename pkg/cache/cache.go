// Package cache stores compile outcomes keyed by the BLAKE3 digest of the
// manuscript bytes, so unchanged files are not recompiled.
package cache

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"

	"github.com/yaklabco/press/pkg/manuscript"
)

// formatVersion is mixed into every key. Bump it whenever the lexer or
// validator changes what they accept or produce.
const formatVersion = "press-cache-v1"

const schema = `
CREATE TABLE IF NOT EXISTS results (
    key TEXT PRIMARY KEY,
    path TEXT NOT NULL,
    run_id TEXT NOT NULL,
    checked_at INTEGER NOT NULL,
    chapters INTEGER NOT NULL DEFAULT 0,
    elements INTEGER NOT NULL DEFAULT 0,
    refs INTEGER NOT NULL DEFAULT 0,
    error_kind TEXT,
    error_line INTEGER,
    error_column INTEGER,
    error_message TEXT,
    tokens BLOB
);

CREATE INDEX IF NOT EXISTS idx_results_checked_at ON results(checked_at);
`

// Key returns the hex BLAKE3-256 digest identifying content.
func Key(content []byte) string {
	h := blake3.New()
	_, _ = h.Write([]byte(formatVersion))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// Entry is one cached compile outcome.
type Entry struct {
	Key       string
	Path      string
	RunID     uuid.UUID
	CheckedAt time.Time

	// Sizing is zero when Diagnostic is set.
	Sizing manuscript.Sizing

	// Diagnostic is the manuscript error, or nil if the file compiled.
	Diagnostic *manuscript.Error

	// Tokens is the refined token stream from EncodeTokens; nil on failure.
	Tokens []byte
}

// Store is a SQLite-backed cache. It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get looks up key. The boolean is false on a miss.
func (s *Store) Get(ctx context.Context, key string) (*Entry, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT path, run_id, checked_at, chapters, elements, refs,
		       error_kind, error_line, error_column, error_message, tokens
		FROM results WHERE key = ?`, key)

	var (
		entry     = &Entry{Key: key}
		runID     string
		checkedAt int64
		kind      sql.NullString
		line, col sql.NullInt64
		message   sql.NullString
	)
	err := row.Scan(&entry.Path, &runID, &checkedAt,
		&entry.Sizing.Chapters, &entry.Sizing.Elements, &entry.Sizing.References,
		&kind, &line, &col, &message, &entry.Tokens)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	if entry.RunID, err = uuid.Parse(runID); err != nil {
		return nil, false, fmt.Errorf("cache entry %s: run id: %w", key, err)
	}
	entry.CheckedAt = time.Unix(0, checkedAt)

	if kind.Valid {
		k, ok := manuscript.ParseErrorKind(kind.String)
		if !ok {
			// Written by a newer version; treat as a miss.
			return nil, false, nil
		}
		entry.Diagnostic = &manuscript.Error{
			Kind:    k,
			Line:    int(line.Int64),
			Column:  int(col.Int64),
			Message: message.String,
		}
	}

	return entry, true, nil
}

// Put inserts or replaces an entry. A zero CheckedAt is set to now.
func (s *Store) Put(ctx context.Context, entry *Entry) error {
	checkedAt := entry.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now()
	}

	var (
		kind, message sql.NullString
		line, col     sql.NullInt64
	)
	var tokens any
	if len(entry.Tokens) > 0 {
		tokens = entry.Tokens
	}
	if d := entry.Diagnostic; d != nil {
		kind = sql.NullString{String: d.Kind.String(), Valid: true}
		line = sql.NullInt64{Int64: int64(d.Line), Valid: true}
		col = sql.NullInt64{Int64: int64(d.Column), Valid: true}
		message = sql.NullString{String: d.Message, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO results
		    (key, path, run_id, checked_at, chapters, elements, refs,
		     error_kind, error_line, error_column, error_message, tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Key, entry.Path, entry.RunID.String(), checkedAt.UnixNano(),
		entry.Sizing.Chapters, entry.Sizing.Elements, entry.Sizing.References,
		kind, line, col, message, tokens)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Prune deletes entries last checked more than olderThan ago and returns how
// many were removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UnixNano()
	res, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE checked_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return n, nil
}

// Len returns the number of cached entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
