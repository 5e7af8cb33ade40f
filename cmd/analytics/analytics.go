// Package analytics contains the spending analysis commands
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/finanza/cmd/root"
	"fjacquet/finanza/internal/reportagg"
)

var categoryKey string

// Cmd represents the analytics command group
var Cmd = &cobra.Command{
	Use:   "analytics",
	Short: "Analyze spending by category and by day",
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Show the expense breakdown by category",
	Long: `Show expense totals per category, limited to the five largest
categories with the remainder folded into OTHER.`,
	Run: breakdownFunc,
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Show per-note totals inside one category",
	Run:   notesFunc,
}

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "Show entries grouped by calendar day",
	Run:   daysFunc,
}

func init() {
	notesCmd.Flags().StringVarP(&categoryKey, "category", "c", "", "Category tag to drill into (required)")
	_ = notesCmd.MarkFlagRequired("category")

	Cmd.AddCommand(breakdownCmd)
	Cmd.AddCommand(notesCmd)
	Cmd.AddCommand(daysCmd)
}

func breakdownFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	buckets := reportagg.CategoryBreakdown(app.Ledger.Current().Expenses())
	if len(buckets) == 0 {
		fmt.Println("No expenses recorded.")
		return
	}

	for _, b := range buckets {
		fmt.Printf("%-16s %12s\n", b.Meta.Display, b.Amount.StringFixed(2))
	}
}

func notesFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	groups := reportagg.DrillDown(app.Ledger.Current().Transactions(), categoryKey)
	if len(groups) == 0 {
		fmt.Printf("No expenses in category %s.\n", categoryKey)
		return
	}

	for _, g := range groups {
		fmt.Printf("%-30s %12s  (%d entries)\n", g.Note, g.Amount.StringFixed(2), g.Count)
	}
}

func daysFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	groups := reportagg.GroupByDay(app.Ledger.Current().Entries, time.Now())
	if len(groups) == 0 {
		fmt.Println("The ledger is empty.")
		return
	}

	for _, g := range groups {
		fmt.Printf("%s\n", g.Label)
		for _, e := range g.Entries {
			fmt.Printf("  %-16s %-30s %12s %12s\n",
				e.Transaction.Category,
				e.Transaction.Note,
				e.Transaction.SignedAmount().StringFixed(2),
				e.Balance.StringFixed(2),
			)
		}
	}
}
