package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SchemaVersion is written to the meta table by Init.
const SchemaVersion = "1"

var (
	// ErrUnavailable means the database could not be opened or created.
	ErrUnavailable = errors.New("store unavailable")
	// ErrNotInitialized means the database file or its schema is missing.
	ErrNotInitialized = fmt.Errorf("%w: not initialized", ErrUnavailable)
	// ErrRead wraps failed queries.
	ErrRead = errors.New("store read failed")
	// ErrWrite wraps failed mutations.
	ErrWrite = errors.New("store write failed")
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Store runs the dir, last_searches and meta queries against either the
// database or a transaction opened by DB.Update.
type Store struct {
	q querier
}

// DB is an open jump database.
type DB struct {
	*Store
	conn *sql.DB
	path string
}

// Init creates the database at dbPath if needed and applies the schema.
// It is safe to call on an already initialized database.
func Init(dbPath string) (*DB, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %w", ErrUnavailable, err)
	}

	db, err := connect(dbPath)
	if err != nil {
		return nil, err
	}

	if err := createTables(db.conn); err != nil {
		db.Close()
		return nil, err
	}
	if err := db.SetMeta("schema_version", SchemaVersion); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Open opens a database previously created with Init.
func Open(dbPath string) (*DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotInitialized, dbPath)
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	db, err := connect(dbPath)
	if err != nil {
		return nil, err
	}

	version, err := db.Meta("schema_version")
	if err != nil || version == "" {
		db.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotInitialized, dbPath)
	}

	return db, nil
}

func connect(dbPath string) (*DB, error) {
	// _txlock=immediate makes Begin take the write lock up front, so a
	// read-then-write inside Update cannot interleave with another writer.
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_txlock=immediate"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %w", ErrUnavailable, err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: ping database: %w", ErrUnavailable, err)
	}

	return &DB{Store: &Store{q: conn}, conn: conn, path: dbPath}, nil
}

func createTables(db *sql.DB) error {
	// Column names match the databases written by earlier jump releases.
	queries := []string{
		`CREATE TABLE IF NOT EXISTS dir (
			id INTEGER PRIMARY KEY NOT NULL,
			dir TEXT NOT NULL,
			access_count INTEGER NOT NULL,
			last_accessed INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS last_searches (
			dir_id INTEGER NOT NULL,
			query TEXT NOT NULL,
			FOREIGN KEY(dir_id) REFERENCES dir(id)
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_dir_dir ON dir(dir);`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("%w: create table: %w", ErrUnavailable, err)
		}
	}

	return nil
}

// Path returns the database file location.
func (db *DB) Path() string {
	return db.path
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Update runs fn inside a single write transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
func (db *DB) Update(fn func(s *Store) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrWrite, err)
	}

	if err := fn(&Store{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrWrite, err)
	}
	return nil
}
