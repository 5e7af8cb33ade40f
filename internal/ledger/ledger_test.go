package ledger

import (
	"math/rand"
	"testing"

	"fjacquet/finanza/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mk(amount string, txType models.TransactionType, date int64) models.Transaction {
	return models.Transaction{
		Amount:   decimal.RequireFromString(amount),
		Category: "FOOD",
		Date:     date,
		Type:     txType,
	}
}

func TestComputeHomeStateEmpty(t *testing.T) {
	state := ComputeHomeState(nil)

	assert.Empty(t, state.Entries)
	assert.True(t, state.TotalIncome.IsZero())
	assert.True(t, state.TotalExpense.IsZero())
}

// Scenario from the original behavior: income 100 then expense 40 yields
// balances [100, 60], totals 100/40.
func TestComputeHomeStateScenario(t *testing.T) {
	state := ComputeHomeState([]models.Transaction{
		mk("100", models.TypeIncome, 1),
		mk("40", models.TypeExpense, 2),
	})

	require.Len(t, state.Entries, 2)
	assert.Equal(t, "100", state.Entries[0].Balance.String())
	assert.Equal(t, "60", state.Entries[1].Balance.String())
	assert.Equal(t, "100", state.TotalIncome.String())
	assert.Equal(t, "40", state.TotalExpense.String())
}

// Balance at index i equals the signed prefix sum through i; the final
// balance equals totalIncome - totalExpense.
func TestComputeHomeStatePrefixSumInvariant(t *testing.T) {
	txs := []models.Transaction{
		mk("10.50", models.TypeIncome, 1),
		mk("3.25", models.TypeExpense, 2),
		mk("7", models.TypeIncome, 3),
		mk("0.01", models.TypeExpense, 4),
		mk("100", models.TypeExpense, 5),
	}
	state := ComputeHomeState(txs)

	prefix := decimal.Zero
	for i, entry := range state.Entries {
		prefix = prefix.Add(txs[i].SignedAmount())
		assert.True(t, entry.Balance.Equal(prefix), "balance mismatch at index %d", i)
	}

	last := state.Entries[len(state.Entries)-1].Balance
	assert.True(t, last.Equal(state.TotalIncome.Sub(state.TotalExpense)))
}

// Totals are order-invariant pure sums; the balance sequence is not.
func TestComputeHomeStateTotalsOrderInvariant(t *testing.T) {
	txs := []models.Transaction{
		mk("5", models.TypeIncome, 1),
		mk("2", models.TypeExpense, 2),
		mk("9.99", models.TypeIncome, 3),
		mk("4.01", models.TypeExpense, 4),
	}
	base := ComputeHomeState(txs)

	shuffled := make([]models.Transaction, len(txs))
	copy(shuffled, txs)
	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	got := ComputeHomeState(shuffled)
	assert.True(t, got.TotalIncome.Equal(base.TotalIncome))
	assert.True(t, got.TotalExpense.Equal(base.TotalExpense))
}

func TestComputeHomeStateDeterministic(t *testing.T) {
	txs := []models.Transaction{
		mk("0.1", models.TypeIncome, 1),
		mk("0.2", models.TypeIncome, 2),
		mk("0.3", models.TypeExpense, 3),
	}

	a := ComputeHomeState(txs)
	b := ComputeHomeState(txs)
	require.Equal(t, len(a.Entries), len(b.Entries))
	for i := range a.Entries {
		assert.True(t, a.Entries[i].Balance.Equal(b.Entries[i].Balance))
	}
	// Decimal arithmetic: no drift, the final balance is exactly 0.
	assert.Equal(t, "0", a.Entries[2].Balance.String())
}

func TestHomeStateExpenses(t *testing.T) {
	state := ComputeHomeState([]models.Transaction{
		mk("1", models.TypeIncome, 1),
		mk("2", models.TypeExpense, 2),
		mk("3", models.TypeExpense, 3),
	})

	expenses := state.Expenses()
	require.Len(t, expenses, 2)
	for _, tx := range expenses {
		assert.Equal(t, models.TypeExpense, tx.Type)
	}

	assert.Len(t, state.Transactions(), 3)
}
