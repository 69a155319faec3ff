// Package journal provides a SQLite-backed journal of Discovery Engine
// operations started from this machine. Data store creation, engine creation,
// and document imports return long-running operation names; the journal keeps
// them locally so operators can list what was kicked off and when, across CLI
// invocations.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register "sqlite" driver
)

// Kind identifies the type of a journalled operation.
type Kind string

const (
	// KindDataStoreCreate is a data store creation operation.
	KindDataStoreCreate Kind = "datastore_create"
	// KindEngineCreate is an engine creation operation.
	KindEngineCreate Kind = "engine_create"
	// KindImport is a document import operation.
	KindImport Kind = "import"
)

// Entry is a single journalled operation.
type Entry struct {
	// Kind is the type of operation.
	Kind Kind
	// Resource is the data store or engine ID the operation targets.
	Resource string
	// OperationName is the long-running operation name returned by the
	// service, empty for operations that completed synchronously.
	OperationName string
	// CreatedAt is when the entry was persisted.
	CreatedAt time.Time
}

// OperationJournal persists and retrieves operation entries. Implementations
// must be safe for concurrent use.
type OperationJournal interface {
	// Record persists a single operation entry.
	Record(ctx context.Context, kind Kind, resource, operationName string) error
	// Recent returns the most recent n entries, newest-first.
	// If fewer than n entries exist, all are returned.
	Recent(ctx context.Context, n int) ([]Entry, error)
	// Ping verifies the journal's backing storage is reachable.
	Ping(ctx context.Context) error
	// Close releases any resources held by the journal.
	Close() error
}

// SQLiteJournal is an OperationJournal backed by a local SQLite database.
type SQLiteJournal struct {
	// db is the underlying database connection pool.
	db *sql.DB
}

// DefaultDBPath returns the default path for the operations journal database.
// It resolves to ~/.vsearch/journal.db, creating the directory if needed.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("journal: could not determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".vsearch")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("journal: could not create %s: %w", dir, err)
	}
	return filepath.Join(dir, "journal.db"), nil
}

// Open opens (or creates) a SQLiteJournal at the given path and runs the
// schema migration. Use ":memory:" for an in-memory database in tests.
func Open(path string) (*SQLiteJournal, error) {
	// WAL mode improves concurrent read performance and is safe for single-host use.
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	// Limit to a single writer connection to avoid SQLITE_BUSY under concurrent writes.
	db.SetMaxOpenConns(1)

	j := &SQLiteJournal{db: db}
	if err := j.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// migrate creates the schema if it does not already exist.
func (j *SQLiteJournal) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS operations (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    kind           TEXT    NOT NULL CHECK(kind IN ('datastore_create','engine_create','import')),
    resource       TEXT    NOT NULL,
    operation_name TEXT    NOT NULL DEFAULT '',
    created_at     INTEGER NOT NULL  -- Unix timestamp (seconds)
);
CREATE INDEX IF NOT EXISTS idx_operations_created
    ON operations (created_at);
`
	if _, err := j.db.Exec(ddl); err != nil {
		return fmt.Errorf("journal: migrate: %w", err)
	}
	return nil
}

// Record persists a single operation entry.
func (j *SQLiteJournal) Record(ctx context.Context, kind Kind, resource, operationName string) error {
	const q = `INSERT INTO operations (kind, resource, operation_name, created_at) VALUES (?, ?, ?, ?)`
	if _, err := j.db.ExecContext(ctx, q, string(kind), resource, operationName, time.Now().Unix()); err != nil {
		return fmt.Errorf("journal: record: %w", err)
	}
	return nil
}

// Recent returns the most recent n entries, newest-first.
func (j *SQLiteJournal) Recent(ctx context.Context, n int) ([]Entry, error) {
	const q = `
SELECT kind, resource, operation_name, created_at
FROM   operations
ORDER  BY created_at DESC, id DESC
LIMIT  ?`

	rows, err := j.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		var kind string
		if err := rows.Scan(&kind, &e.Resource, &e.OperationName, &ts); err != nil {
			return nil, fmt.Errorf("journal: recent scan: %w", err)
		}
		e.Kind = Kind(kind)
		e.CreatedAt = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: recent rows: %w", err)
	}
	return entries, nil
}

// Ping verifies the database file is reachable and writable enough to serve
// readiness checks.
func (j *SQLiteJournal) Ping(ctx context.Context) error {
	if err := j.db.PingContext(ctx); err != nil {
		return fmt.Errorf("journal: ping: %w", err)
	}
	return nil
}

// Close releases the database connection pool.
func (j *SQLiteJournal) Close() error {
	if err := j.db.Close(); err != nil {
		return fmt.Errorf("journal: close: %w", err)
	}
	return nil
}
