// Package models defines the core domain types of the finanza ledger:
// transactions, transaction types, and the category taxonomy.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The exchange format carries amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType distinguishes money coming in from money going out.
// The sign of a transaction is carried by its type, never by its amount.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether the type is one of the two known values.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single ledger entry. ID is assigned by the record store
// on first insert; an ID of 0 means "unassigned". Date is an instant with
// millisecond precision, chosen by the user and not necessarily ordered
// relative to creation time.
type Transaction struct {
	ID       int64           `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Note     string          `json:"note"`
	Date     int64           `json:"date"`
	Type     TransactionType `json:"type"`
}

// Time returns the transaction date as a time.Time in the local calendar.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Date)
}

// SignedAmount returns the amount with the type's sign applied:
// positive for income, negative for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// WithoutID returns a copy of the transaction with its ID reset to
// unassigned, so the record store assigns a fresh identity on insert.
func (t Transaction) WithoutID() Transaction {
	t.ID = 0
	return t
}
