// Package backupcmd contains the backup exchange commands
package backupcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fjacquet/finanza/cmd/root"
	"fjacquet/finanza/internal/backup"
)

var (
	output string
	input  string
)

// Cmd represents the backup command group
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import the ledger as JSON",
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every entry to a JSON backup file",
	Run:   exportFunc,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the ledger with the entries from a JSON backup file",
	Long: `Replace the whole ledger with the entries from a JSON backup file.
The file is checked before anything is written; a rejected file leaves the
ledger untouched.`,
	Run: importFunc,
}

func init() {
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Output JSON file (required)")
	_ = exportCmd.MarkFlagRequired("output")

	importCmd.Flags().StringVarP(&input, "input", "i", "", "Input JSON file (required)")
	_ = importCmd.MarkFlagRequired("input")

	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(importCmd)
}

func exportFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	txs := app.Ledger.Current().Transactions()
	data, err := backup.Export(txs)
	if err != nil {
		root.Log.Fatalf("Failed to export ledger: %v", err)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		root.Log.Fatalf("Failed to write backup to %s: %v", output, err)
	}
	root.Log.Infof("Exported %d entries to %s", len(txs), output)
}

func importFunc(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(input)
	if err != nil {
		root.Log.Fatalf("Failed to read backup file %s: %v", input, err)
	}

	txs, err := backup.Import(data)
	if err != nil {
		root.Log.Fatalf("Backup file rejected: %v", err)
	}

	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	if err := app.Ledger.ImportReplace(context.Background(), txs); err != nil {
		root.Log.Fatalf("Failed to import backup: %v", err)
	}
	fmt.Printf("Imported %d entries from %s\n", len(txs), input)
}
