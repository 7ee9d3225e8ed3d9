// Package storage provides abstractions for persistent record storage.
//
// Persistence is a key/value surface over whole collections: a collection is
// an ordered list of JSON records, loaded and replaced as a unit with
// last-write-wins semantics. There is no transactionality across
// collections.
package storage

import (
	"context"
	"encoding/json"
)

// Collection identifies a named record collection. Collections are a fixed
// set of constants rather than bare strings so a typo cannot silently read
// or clobber the wrong data.
type Collection string

const (
	// CollectionGroups holds Group records.
	CollectionGroups Collection = "groups"

	// CollectionExpenses holds SharedExpense records.
	CollectionExpenses Collection = "shared-expenses"

	// CollectionUsers holds User records.
	CollectionUsers Collection = "users"
)

// Store defines the interface for collection storage backends.
// This abstraction allows swapping storage backends (SQLite, a remote
// key/value service, etc.) without changing the service layer.
type Store interface {
	// Load returns every record in the collection in storage order.
	// A collection that has never been written loads as an empty list,
	// not an error.
	Load(ctx context.Context, collection Collection) ([]json.RawMessage, error)

	// Save replaces the full contents of the collection. The replacement is
	// atomic per collection: a failed save leaves the previously persisted
	// records untouched.
	Save(ctx context.Context, collection Collection, records []json.RawMessage) error

	// Close releases any resources held by the store.
	Close() error
}
