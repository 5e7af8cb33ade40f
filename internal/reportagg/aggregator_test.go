package reportagg

import (
	"fmt"
	"testing"
	"time"

	"fjacquet/finanza/internal/dateutils"
	"fjacquet/finanza/internal/ledger"
	"fjacquet/finanza/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(amount, category, note string, date time.Time) models.Transaction {
	return models.Transaction{
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Note:     note,
		Date:     date.UnixMilli(),
		Type:     models.TypeExpense,
	}
}

func entry(tx models.Transaction, balance string) ledger.EntryWithBalance {
	return ledger.EntryWithBalance{Transaction: tx, Balance: decimal.RequireFromString(balance)}
}

func TestGroupByDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.Local)
	older := time.Date(2025, 2, 20, 9, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)

	entries := []ledger.EntryWithBalance{
		entry(expense("1", "FOOD", "a", older), "1"),
		entry(expense("2", "FOOD", "b", yesterday), "2"),
		entry(expense("3", "FOOD", "c", now), "3"),
		entry(expense("4", "FOOD", "d", now.Add(time.Hour)), "4"),
	}

	groups := GroupByDay(entries, now)
	require.Len(t, groups, 3)

	assert.Equal(t, "20/02/2025", groups[0].Label)
	assert.Equal(t, dateutils.LabelYesterday, groups[1].Label)
	assert.Equal(t, dateutils.LabelToday, groups[2].Label)
	assert.Len(t, groups[2].Entries, 2)
}

// Non-Today/Yesterday groups must order by underlying date, not label text:
// "02/01/2025" sorts after "10/12/2024" even though the label string is
// lexically smaller.
func TestGroupByDayChronologicalNotLexical(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	dec10 := time.Date(2024, 12, 10, 8, 0, 0, 0, time.Local)
	jan2 := time.Date(2025, 1, 2, 8, 0, 0, 0, time.Local)

	entries := []ledger.EntryWithBalance{
		entry(expense("1", "FOOD", "", dec10), "1"),
		entry(expense("2", "FOOD", "", jan2), "2"),
	}

	groups := GroupByDay(entries, now)
	require.Len(t, groups, 2)
	assert.Equal(t, "10/12/2024", groups[0].Label)
	assert.Equal(t, "02/01/2025", groups[1].Label)
}

func TestGroupByDayEmpty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil, time.Now()))
}

func TestCategoryBreakdownTopFivePlusOther(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	var txs []models.Transaction
	// 7 distinct categories with descending amounts 70..10.
	for i, cat := range []string{"FOOD", "FUEL", "BILLS", "SHOPPING", "LOAN", "SAVINGS", "ENTERTAINMENT"} {
		txs = append(txs, expense(fmt.Sprintf("%d", 70-10*i), cat, "", day))
	}

	buckets := CategoryBreakdown(txs)
	require.Len(t, buckets, 6, "at most 5 + OTHER buckets")

	assert.Equal(t, "FOOD", buckets[0].Key)
	assert.Equal(t, "70", buckets[0].Amount.String())
	assert.Equal(t, OtherBucketKey, buckets[5].Key)
	// Remainder folds SAVINGS (20) + ENTERTAINMENT (10).
	assert.Equal(t, "30", buckets[5].Amount.String())
	assert.Equal(t, models.CategoryOther.Meta(), buckets[5].Meta)

	// Conservation: bucket sum equals input sum.
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Amount)
	}
	assert.Equal(t, "280", total.String())
}

func TestCategoryBreakdownFewCategories(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	txs := []models.Transaction{
		expense("10", "FOOD", "", day),
		expense("5", "FOOD", "", day),
		expense("20", "FUEL", "", day),
	}

	buckets := CategoryBreakdown(txs)
	require.Len(t, buckets, 2)
	assert.Equal(t, "FUEL", buckets[0].Key)
	assert.Equal(t, "20", buckets[0].Amount.String())
	assert.Equal(t, "FOOD", buckets[1].Key)
	assert.Equal(t, "15", buckets[1].Amount.String())
}

// The breakdown groups by the verbatim category string and resolves display
// metadata via classification; a stored category literally named "other"
// must not be confused with the synthetic remainder bucket.
func TestCategoryBreakdownVerbatimGrouping(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	txs := []models.Transaction{
		expense("10", "lunch money", "", day),
		expense("7", "other", "", day),
	}

	buckets := CategoryBreakdown(txs)
	require.Len(t, buckets, 2)
	assert.Equal(t, "lunch money", buckets[0].Key)
	// Unknown free text classifies to OTHER metadata for display.
	assert.Equal(t, models.CategoryOther.Meta(), buckets[0].Meta)
	assert.Equal(t, "other", buckets[1].Key)
}

func TestCategoryBreakdownIgnoresIncome(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	income := models.Transaction{
		Amount: decimal.NewFromInt(500), Category: "FOOD",
		Date: day.UnixMilli(), Type: models.TypeIncome,
	}

	assert.Nil(t, CategoryBreakdown([]models.Transaction{income}))
}

func TestDrillDown(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	txs := []models.Transaction{
		expense("10", "FOOD", "lunch", day),
		expense("15", "FOOD", "lunch", day),
		expense("3", "FOOD", "", day),
		expense("99", "FUEL", "petrol", day),
	}

	groups := DrillDown(txs, "FOOD")
	require.Len(t, groups, 2)

	assert.Equal(t, "lunch", groups[0].Note)
	assert.Equal(t, "25", groups[0].Amount.String())
	assert.Equal(t, 2, groups[0].Count)

	assert.Equal(t, "Uncategorized", groups[1].Note)
	assert.Equal(t, "3", groups[1].Amount.String())
	assert.Equal(t, 1, groups[1].Count)
}

// Drill-down on the synthetic OTHER key matches only literally-stored
// "OTHER" categories; it does not reconstruct the breakdown remainder.
func TestDrillDownOtherKeyLiteralEquality(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	txs := []models.Transaction{
		expense("10", "OTHER", "misc", day),
		expense("20", "SAVINGS", "folded into remainder elsewhere", day),
	}

	groups := DrillDown(txs, OtherBucketKey)
	require.Len(t, groups, 1)
	assert.Equal(t, "misc", groups[0].Note)
}

func TestMonthsReverseChronological(t *testing.T) {
	entries := []ledger.EntryWithBalance{
		entry(expense("1", "FOOD", "", time.Date(2025, 1, 5, 0, 0, 0, 0, time.Local)), "1"),
		entry(expense("2", "FOOD", "", time.Date(2025, 1, 20, 0, 0, 0, 0, time.Local)), "2"),
		entry(expense("3", "FOOD", "", time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)), "3"),
		entry(expense("4", "FOOD", "", time.Date(2025, 3, 9, 0, 0, 0, 0, time.Local)), "4"),
	}

	months := Months(entries)
	assert.Equal(t, []string{"March 2025", "February 2025", "January 2025"}, months)
}

func TestFilterMonthKeepsFullHistoryBalance(t *testing.T) {
	jan := time.Date(2025, 1, 5, 0, 0, 0, 0, time.Local)
	feb := time.Date(2025, 2, 5, 0, 0, 0, 0, time.Local)
	entries := []ledger.EntryWithBalance{
		entry(expense("10", "FOOD", "", jan), "-10"),
		entry(expense("5", "FOOD", "", feb), "-15"),
	}

	filtered := FilterMonth(entries, "February 2025")
	require.Len(t, filtered, 1)
	// Balance stays relative to the complete history.
	assert.Equal(t, "-15", filtered[0].Balance.String())
}
