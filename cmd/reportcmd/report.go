// Package reportcmd contains the monthly report commands
package reportcmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/finanza/cmd/root"
	"fjacquet/finanza/internal/reportagg"
)

var (
	month  string
	format string
	output string
)

// Cmd represents the report command group
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate monthly transaction reports",
}

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List the months that have entries, most recent first",
	Run:   monthsFunc,
}

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Generate the report for one month",
	Long:  `Generate the transaction report for one month in JSON, XML or CSV format.`,
	Run:   monthlyFunc,
}

func init() {
	monthlyCmd.Flags().StringVarP(&month, "month", "m", "", `Month label, e.g. "March 2024" (required)`)
	monthlyCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, xml or csv")
	monthlyCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	_ = monthlyCmd.MarkFlagRequired("month")

	Cmd.AddCommand(monthsCmd)
	Cmd.AddCommand(monthlyCmd)
}

func monthsFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	months := reportagg.Months(app.Ledger.Current().Entries)
	if len(months) == 0 {
		fmt.Println("The ledger is empty.")
		return
	}
	for _, m := range months {
		fmt.Println(m)
	}
}

func monthlyFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	doc := reportagg.MonthlyReport(app.Ledger.Current().Entries, month, root.Cfg.Report.Title, time.Now())
	out, err := app.Reports.Generate(doc, format)
	if err != nil {
		root.Log.Fatalf("Failed to generate report: %v", err)
	}

	if output == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		root.Log.Fatalf("Failed to write report to %s: %v", output, err)
	}
	root.Log.Infof("Report for %s written to %s", month, output)
}
