package reportagg

import (
	"time"

	"fjacquet/finanza/internal/dateutils"
	"fjacquet/finanza/internal/ledger"
	"fjacquet/finanza/internal/models"

	"github.com/shopspring/decimal"
)

// Summary is the totals block of a monthly report.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income" xml:"TotalIncome" csv:"-"`
	TotalExpense decimal.Decimal `json:"total_expense" xml:"TotalExpense" csv:"-"`
	Net          decimal.Decimal `json:"net" xml:"Net" csv:"-"`
}

// Row is one transaction line of a monthly report, in ledger order.
type Row struct {
	Date     string          `json:"date" xml:"Date" csv:"date"`
	Category string          `json:"category" xml:"Category" csv:"category"`
	Note     string          `json:"note" xml:"Note" csv:"note"`
	Amount   string          `json:"amount" xml:"Amount" csv:"amount"`
	Balance  decimal.Decimal `json:"balance" xml:"Balance" csv:"balance"`
}

// Document is the monthly report handed to rendering collaborators.
type Document struct {
	Title       string  `json:"title" xml:"Title"`
	Month       string  `json:"month" xml:"Month"`
	GeneratedAt string  `json:"generated_at" xml:"GeneratedAt"`
	Summary     Summary `json:"summary" xml:"Summary"`
	Rows        []Row   `json:"rows" xml:"Rows>Row"`
}

// MonthlyReport builds the report document for one month out of the full
// balance-annotated sequence. Rows keep the ledger's ascending order and
// the running balance relative to the complete history, not just the month.
func MonthlyReport(entries []ledger.EntryWithBalance, month, title string, now time.Time) Document {
	filtered := FilterMonth(entries, month)

	income, expense := decimal.Zero, decimal.Zero
	rows := make([]Row, 0, len(filtered))
	for _, entry := range filtered {
		tx := entry.Transaction
		if tx.Type == models.TypeIncome {
			income = income.Add(tx.Amount)
		} else {
			expense = expense.Add(tx.Amount)
		}

		sign := "+"
		if tx.Type == models.TypeExpense {
			sign = "-"
		}
		rows = append(rows, Row{
			Date:     tx.Time().Format(dateutils.ShortDayLayout),
			Category: tx.Category,
			Note:     tx.Note,
			Amount:   sign + tx.Amount.String(),
			Balance:  entry.Balance,
		})
	}

	return Document{
		Title:       title,
		Month:       month,
		GeneratedAt: now.Format(dateutils.TimestampLayout),
		Summary: Summary{
			TotalIncome:  income,
			TotalExpense: expense,
			Net:          income.Sub(expense),
		},
		Rows: rows,
	}
}
