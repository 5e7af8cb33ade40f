// Package reportagg derives the grouping structures consumed by
// presentation and export: day buckets, category breakdowns, note
// drill-downs, and monthly report documents. Every function here is pure
// over a ledger snapshot.
package reportagg

import (
	"sort"
	"time"

	"fjacquet/finanza/internal/categorizer"
	"fjacquet/finanza/internal/dateutils"
	"fjacquet/finanza/internal/ledger"
	"fjacquet/finanza/internal/models"

	"github.com/shopspring/decimal"
)

// OtherBucketKey is the synthetic key of the folded remainder bucket in a
// category breakdown.
const OtherBucketKey = "OTHER"

// DayGroup is a run of ledger entries sharing a calendar day, labelled
// "Today", "Yesterday", or dd/MM/yyyy.
type DayGroup struct {
	Label   string
	Date    time.Time // start of the underlying calendar day's first member
	Entries []ledger.EntryWithBalance
}

// GroupByDay buckets entries by calendar day relative to now. Groups are
// ordered ascending by the date of their first member, never by label text,
// so day groups stay in calendar order even though labels are strings.
func GroupByDay(entries []ledger.EntryWithBalance, now time.Time) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)

	for _, entry := range entries {
		ts := entry.Transaction.Time()
		label := dateutils.DayLabel(ts, now)
		if i, ok := index[label]; ok {
			groups[i].Entries = append(groups[i].Entries, entry)
			continue
		}
		index[label] = len(groups)
		groups = append(groups, DayGroup{
			Label:   label,
			Date:    ts,
			Entries: []ledger.EntryWithBalance{entry},
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.Before(groups[j].Date)
	})
	return groups
}

// BreakdownBucket is one displayed slice of the expense breakdown.
type BreakdownBucket struct {
	Key    string // verbatim category string, or OtherBucketKey
	Meta   models.CategoryMeta
	Amount decimal.Decimal
}

// CategoryBreakdown groups expense transactions by their verbatim category
// string, sums per group, and keeps the top five by amount; every remaining
// group is folded into a single synthetic OTHER bucket. Display metadata is
// resolved through classification, except the synthetic bucket which uses
// the OTHER metadata directly so it can never re-match a real category
// named "other".
func CategoryBreakdown(expenses []models.Transaction) []BreakdownBucket {
	sums := make(map[string]decimal.Decimal)
	var order []string
	for _, tx := range expenses {
		if tx.Type != models.TypeExpense {
			continue
		}
		if _, ok := sums[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]].GreaterThan(sums[order[j]])
	})

	top := order
	var rest []string
	if len(order) > 5 {
		top, rest = order[:5], order[5:]
	}

	buckets := make([]BreakdownBucket, 0, len(top)+1)
	for _, key := range top {
		buckets = append(buckets, BreakdownBucket{
			Key:    key,
			Meta:   categorizer.Classify(key).Meta(),
			Amount: sums[key],
		})
	}
	if len(rest) > 0 {
		remainder := decimal.Zero
		for _, key := range rest {
			remainder = remainder.Add(sums[key])
		}
		buckets = append(buckets, BreakdownBucket{
			Key:    OtherBucketKey,
			Meta:   models.CategoryOther.Meta(),
			Amount: remainder,
		})
	}
	return buckets
}

// NoteGroup aggregates the expenses of one note within a category.
type NoteGroup struct {
	Note   string
	Amount decimal.Decimal
	Count  int
}

// uncategorizedNote is the label blank notes normalize to in drill-downs.
const uncategorizedNote = "Uncategorized"

// DrillDown filters expense transactions whose verbatim category equals the
// given key, groups them by note (blank notes normalize to
// "Uncategorized"), and sorts descending by summed amount.
//
// When key is the synthetic breakdown bucket "OTHER", literal equality only
// matches transactions whose stored category is literally that string; the
// original top-5/remainder partition is not reconstructed because it is
// never persisted. This mirrors the source behavior deliberately.
func DrillDown(txs []models.Transaction, key string) []NoteGroup {
	sums := make(map[string]*NoteGroup)
	var order []string
	for _, tx := range txs {
		if tx.Type != models.TypeExpense || tx.Category != key {
			continue
		}
		note := tx.Note
		if note == "" {
			note = uncategorizedNote
		}
		group, ok := sums[note]
		if !ok {
			group = &NoteGroup{Note: note, Amount: decimal.Zero}
			sums[note] = group
			order = append(order, note)
		}
		group.Amount = group.Amount.Add(tx.Amount)
		group.Count++
	}

	groups := make([]NoteGroup, 0, len(order))
	for _, note := range order {
		groups = append(groups, *sums[note])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Amount.GreaterThan(groups[j].Amount)
	})
	return groups
}

// Months returns the distinct month labels ("January 2006") present in the
// entries, in reverse chronological order of first occurrence.
func Months(entries []ledger.EntryWithBalance) []string {
	seen := make(map[string]bool)
	var months []string
	for _, entry := range entries {
		label := dateutils.MonthLabel(entry.Transaction.Time())
		if !seen[label] {
			seen[label] = true
			months = append(months, label)
		}
	}
	for i, j := 0, len(months)-1; i < j; i, j = i+1, j-1 {
		months[i], months[j] = months[j], months[i]
	}
	return months
}

// FilterMonth returns the entries whose month label equals the given one,
// preserving ledger order and each entry's full-history running balance.
func FilterMonth(entries []ledger.EntryWithBalance, month string) []ledger.EntryWithBalance {
	var filtered []ledger.EntryWithBalance
	for _, entry := range entries {
		if dateutils.MonthLabel(entry.Transaction.Time()) == month {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
