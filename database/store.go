package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SchemaVersion is stamped into exported data files.
const SchemaVersion = 1

// Collection names
const (
	CollectionTransactions = "transactions"
	CollectionCategories   = "categories"
	CollectionBudgets      = "budgets"
	CollectionSettings     = "settings"
	CollectionSyncQueue    = "sync_queue"
)

var collections = map[string]bool{
	CollectionTransactions: true,
	CollectionCategories:   true,
	CollectionBudgets:      true,
	CollectionSettings:     true,
	CollectionSyncQueue:    true,
}

// Store owns the lifecycle of the local SQLite database. Records are stored
// as JSON documents keyed by a string, one table per collection, with
// secondary indexes over extracted JSON fields.
//
// The store opens lazily: NewStore does not touch disk, and every record
// operation triggers Open on first use. Concurrent callers serialize on a
// single mutex so the schema is only ever created once.
type Store struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Open establishes the database handle, creating the file and schema on
// first open. It is idempotent: later calls return the cached handle. A
// failed open leaves the store closed so the next call retries.
func (s *Store) Open() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLocked()
}

func (s *Store) openLocked() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &StoreOpenError{Path: s.path, Err: err}
		}
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return nil, &StoreOpenError{Path: s.path, Err: err}
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, &StoreOpenError{Path: s.path, Err: err}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, &StoreOpenError{Path: s.path, Err: err}
	}

	s.db = db
	return db, nil
}

func migrate(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sync_queue (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)`,

		// Secondary indexes over extracted JSON fields
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (json_extract(data, '$.date'))`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions (json_extract(data, '$.type'))`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions (json_extract(data, '$.category'))`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions (json_extract(data, '$.timestamp'))`,
		`CREATE INDEX IF NOT EXISTS idx_categories_type ON categories (json_extract(data, '$.type'))`,
		`CREATE INDEX IF NOT EXISTS idx_categories_name ON categories (json_extract(data, '$.name'))`,
		`CREATE INDEX IF NOT EXISTS idx_budgets_amount ON budgets (json_extract(data, '$.amount'))`,
		`CREATE INDEX IF NOT EXISTS idx_sync_queue_timestamp ON sync_queue (json_extract(data, '$.timestamp'))`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
