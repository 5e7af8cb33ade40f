// Package tx contains the transaction entry commands
package tx

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/finanza/cmd/root"
	"fjacquet/finanza/internal/categorizer"
	"fjacquet/finanza/internal/dateutils"
	"fjacquet/finanza/internal/models"
	"fjacquet/finanza/internal/validation"
)

var (
	amount   string
	category string
	note     string
	txType   string
	date     string
	entryID  int64
	confirm  bool
)

// Cmd represents the tx command group
var Cmd = &cobra.Command{
	Use:   "tx",
	Short: "Record and manage ledger entries",
	Long:  `Add, list, edit and delete income and expense entries in the ledger.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new entry",
	Run:   addFunc,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all entries with running balances",
	Run:   listFunc,
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit an existing entry",
	Run:   editFunc,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an entry",
	Run:   deleteFunc,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every entry in the ledger",
	Run:   clearFunc,
}

func init() {
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVarP(&amount, "amount", "a", "", "Entry amount (required)")
		c.Flags().StringVarP(&category, "category", "c", "", "Category tag; classified from the note when omitted")
		c.Flags().StringVarP(&note, "note", "n", "", "Entry note (required)")
		c.Flags().StringVarP(&txType, "type", "t", string(models.TypeExpense), "Entry type: INCOME or EXPENSE")
		c.Flags().StringVarP(&date, "date", "d", "", "Entry date as dd/mm/yyyy hh:mm (default: now)")
		_ = c.MarkFlagRequired("amount")
		_ = c.MarkFlagRequired("note")
	}

	editCmd.Flags().Int64Var(&entryID, "id", 0, "Entry ID (required)")
	_ = editCmd.MarkFlagRequired("id")

	deleteCmd.Flags().Int64Var(&entryID, "id", 0, "Entry ID (required)")
	_ = deleteCmd.MarkFlagRequired("id")

	clearCmd.Flags().BoolVarP(&confirm, "yes", "y", false, "Skip the confirmation prompt")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(clearCmd)
}

func limits() validation.Limits {
	l := validation.DefaultLimits()
	if root.Cfg != nil {
		l.AmountCeiling = decimal.NewFromFloat(root.Cfg.Validation.AmountCeiling)
		l.NoteMaxLength = root.Cfg.Validation.NoteMaxLength
	}
	return l
}

// buildEntry validates the add/edit flags into a transaction.
func buildEntry() (models.Transaction, error) {
	typ := models.TransactionType(txType)
	amt, err := validation.ValidateEntry(amount, note, typ, limits())
	if err != nil {
		return models.Transaction{}, err
	}

	when := time.Now()
	if date != "" {
		when, err = time.ParseInLocation(dateutils.TimestampLayout, date, time.Local)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("invalid date %q, expected dd/mm/yyyy hh:mm", date)
		}
	}

	cat := category
	if cat == "" {
		cat = string(categorizer.ClassifyFreeText(note, note))
		root.Log.WithField("category", cat).Debug("Classified entry from its note")
	}

	return models.Transaction{
		Amount:   amt,
		Category: cat,
		Note:     note,
		Date:     when.UnixMilli(),
		Type:     typ,
	}, nil
}

func addFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	tx, err := buildEntry()
	if err != nil {
		root.Log.Fatalf("Invalid entry: %v", err)
	}

	id, err := app.Ledger.SaveTransaction(context.Background(), tx)
	if err != nil {
		root.Log.Fatalf("Failed to save entry: %v", err)
	}
	root.Log.Infof("Recorded entry %d: %s %s (%s)", id, tx.Type, tx.Amount.String(), tx.Category)
}

func listFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	state := app.Ledger.Current()
	if len(state.Entries) == 0 {
		fmt.Println("The ledger is empty.")
		return
	}

	fmt.Printf("%-6s %-17s %-16s %-30s %12s %12s\n", "ID", "DATE", "CATEGORY", "NOTE", "AMOUNT", "BALANCE")
	for _, e := range state.Entries {
		fmt.Printf("%-6d %-17s %-16s %-30s %12s %12s\n",
			e.Transaction.ID,
			e.Transaction.Time().Format(dateutils.TimestampLayout),
			e.Transaction.Category,
			e.Transaction.Note,
			e.Transaction.SignedAmount().StringFixed(2),
			e.Balance.StringFixed(2),
		)
	}
	fmt.Printf("\nTotal income:  %s\n", state.TotalIncome.StringFixed(2))
	fmt.Printf("Total expense: %s\n", state.TotalExpense.StringFixed(2))
	fmt.Printf("Balance:       %s\n", state.TotalIncome.Sub(state.TotalExpense).StringFixed(2))
}

func editFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	tx, err := buildEntry()
	if err != nil {
		root.Log.Fatalf("Invalid entry: %v", err)
	}
	tx.ID = entryID

	if err := app.Ledger.UpdateTransaction(context.Background(), tx); err != nil {
		root.Log.Fatalf("Failed to update entry %d: %v", entryID, err)
	}
	root.Log.Infof("Updated entry %d", entryID)
}

func deleteFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	if err := app.Ledger.DeleteTransaction(context.Background(), entryID); err != nil {
		root.Log.Fatalf("Failed to delete entry %d: %v", entryID, err)
	}
	root.Log.Infof("Deleted entry %d", entryID)
}

func clearFunc(cmd *cobra.Command, args []string) {
	if !confirm {
		root.Log.Fatal("Refusing to clear the ledger without --yes")
	}

	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	if err := app.Ledger.ClearAll(context.Background()); err != nil {
		root.Log.Fatalf("Failed to clear the ledger: %v", err)
	}
	root.Log.Info("Cleared every entry from the ledger")
}
