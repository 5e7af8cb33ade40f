// Package main provides the entry point for the finanza CLI application.
package main

import (
	"os"

	"fjacquet/finanza/cmd/analytics"
	"fjacquet/finanza/cmd/backupcmd"
	"fjacquet/finanza/cmd/classify"
	"fjacquet/finanza/cmd/profilecmd"
	"fjacquet/finanza/cmd/reportcmd"
	"fjacquet/finanza/cmd/root"
	"fjacquet/finanza/cmd/serve"
	"fjacquet/finanza/cmd/tx"
)

func main() {
	root.Init()

	root.Cmd.AddCommand(tx.Cmd)
	root.Cmd.AddCommand(analytics.Cmd)
	root.Cmd.AddCommand(reportcmd.Cmd)
	root.Cmd.AddCommand(backupcmd.Cmd)
	root.Cmd.AddCommand(profilecmd.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(serve.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
