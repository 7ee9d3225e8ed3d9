// Package service implements the operations of the shared-expense ledger:
// the group registry, the expense ledger, and authentication.
package service

import (
	"github.com/avasquez/tally/internal/models"
	"github.com/avasquez/tally/internal/storage"
)

// Repositories bundles the typed collection repositories. Services share one
// bundle so each collection has a single read-modify-write serialization
// point within the process.
type Repositories struct {
	Groups   *storage.Records[models.Group]
	Expenses *storage.Records[models.SharedExpense]
}

// NewRepositories creates the repository bundle over the given record store.
func NewRepositories(store storage.Store) *Repositories {
	return &Repositories{
		Groups:   storage.NewRecords[models.Group](store, storage.CollectionGroups),
		Expenses: storage.NewRecords[models.SharedExpense](store, storage.CollectionExpenses),
	}
}
