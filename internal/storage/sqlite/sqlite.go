// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
//
// Collections are stored as one row per record, keyed by collection name and
// position, so a collection loads back in the exact order it was saved.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/avasquez/tally/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: the driver serializes writers and the store's
	// contract is single logical writer per collection anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns every record in the collection in saved order.
// A collection that has never been saved loads as an empty list.
func (s *SQLiteStore) Load(ctx context.Context, collection storage.Collection) ([]json.RawMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM records WHERE collection = ? ORDER BY position",
		string(collection),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	defer rows.Close()

	records := []json.RawMessage{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// Save replaces the full contents of the collection in one transaction, so
// a failed save leaves the previously persisted records untouched.
func (s *SQLiteStore) Save(ctx context.Context, collection storage.Collection, records []json.RawMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM records WHERE collection = ?",
		string(collection),
	); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}

	for i, rec := range records {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO records (collection, position, data) VALUES (?, ?, ?)",
			string(collection), i, []byte(rec),
		); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
