// Package ledger maintains the canonical read-model over the transaction
// set: the running balance sequence and the aggregate totals.
package ledger

import (
	"fjacquet/finanza/internal/models"

	"github.com/shopspring/decimal"
)

// EntryWithBalance pairs a transaction with the running balance immediately
// after applying it. Derived and ephemeral: never persisted, recomputed
// whenever the underlying set changes.
type EntryWithBalance struct {
	Transaction models.Transaction `json:"transaction"`
	Balance     decimal.Decimal    `json:"balance"`
}

// HomeState is an immutable snapshot of the ledger's derived state.
type HomeState struct {
	Entries      []EntryWithBalance `json:"entries"`
	TotalIncome  decimal.Decimal    `json:"total_income"`
	TotalExpense decimal.Decimal    `json:"total_expense"`
}

// Transactions returns the bare transactions of the snapshot, in ledger
// order.
func (s HomeState) Transactions() []models.Transaction {
	txs := make([]models.Transaction, len(s.Entries))
	for i, e := range s.Entries {
		txs[i] = e.Transaction
	}
	return txs
}

// Expenses returns the snapshot's EXPENSE transactions in ledger order.
func (s HomeState) Expenses() []models.Transaction {
	var txs []models.Transaction
	for _, e := range s.Entries {
		if e.Transaction.Type == models.TypeExpense {
			txs = append(txs, e.Transaction)
		}
	}
	return txs
}

// ComputeHomeState derives the running balance sequence and totals from a
// transaction sequence. The input order is authoritative: the store supplies
// transactions ascending by date and the balance is accumulated exactly in
// that order. Totals are independent sums over the whole set, not derived
// from the running balance. Pure: same input, same output.
func ComputeHomeState(txs []models.Transaction) HomeState {
	state := HomeState{
		Entries:      make([]EntryWithBalance, 0, len(txs)),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(tx.SignedAmount())
		state.Entries = append(state.Entries, EntryWithBalance{
			Transaction: tx,
			Balance:     balance,
		})

		if tx.Type == models.TypeIncome {
			state.TotalIncome = state.TotalIncome.Add(tx.Amount)
		} else {
			state.TotalExpense = state.TotalExpense.Add(tx.Amount)
		}
	}

	return state
}
