package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// timestampLayout matches the ISO-8601 strings the front end and the hosted
// database produce (UTC, microsecond precision, no zone suffix).
const timestampLayout = "2006-01-02T15:04:05.000000"

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

func timestamp() string {
	return now().Format(timestampLayout)
}

// DB represents a wrapper around the SQL database connection pool.
type DB struct {
	conn *sql.DB
	path string
}

// dsn enables WAL and foreign keys on every connection the pool opens.
// Pragmas issued with Exec would only reach a single pooled connection.
func dsn(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)"
}

// Open creates the database file if needed and ensures the schema is up to date.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: conn, path: path}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the file the database was opened from.
func (db *DB) Path() string {
	return db.path
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func (db *DB) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Table names accepted by Count.
const (
	TableDecks          = "decks"
	TableCards          = "cards"
	TableReviewStats    = "review_stats"
	TableIrregularVerbs = "irregular_verbs"
	TablePhrasalVerbs   = "verbs_governance"
)

// Count returns the number of rows in one of the known tables.
func (db *DB) Count(ctx context.Context, table string) (int, error) {
	switch table {
	case TableDecks, TableCards, TableReviewStats, TableIrregularVerbs, TablePhrasalVerbs:
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
