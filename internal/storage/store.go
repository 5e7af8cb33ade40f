// Package storage implements the ordered record store backing the ledger.
// The store is the single source of truth and the single point of
// serialization: every mutation is applied as an indivisible operation
// against it.
package storage

import (
	"context"

	"fjacquet/finanza/internal/models"

	"github.com/shopspring/decimal"
)

// Store is the record-store contract the ledger consumes. ListAll is the
// order authority: it must return transactions ascending by date.
type Store interface {
	// ListAll returns every transaction ordered ascending by date.
	ListAll(ctx context.Context) ([]models.Transaction, error)

	// Get returns the transaction with the given id.
	Get(ctx context.Context, id int64) (models.Transaction, error)

	// Insert stores a transaction, replacing on id conflict. An id of 0
	// means unassigned: the store assigns one and returns it.
	Insert(ctx context.Context, tx models.Transaction) (int64, error)

	// Update replaces the full record with the given id.
	Update(ctx context.Context, tx models.Transaction) error

	// Delete removes the transaction with the given id.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every transaction.
	DeleteAll(ctx context.Context) error

	// SumByType returns the sum of amounts over all transactions of the
	// given type.
	SumByType(ctx context.Context, txType models.TransactionType) (decimal.Decimal, error)

	// ReplaceAll atomically replaces the entire stored set. Incoming ids
	// are ignored; the store assigns fresh identity to every record.
	ReplaceAll(ctx context.Context, txs []models.Transaction) error

	// Close releases the underlying resources.
	Close() error
}
