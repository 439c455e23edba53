// Package main provides the entry point for the txn-pipeline CLI.
package main

import (
	"os"

	"amifi/txn-pipeline/cmd/bulk"
	"amifi/txn-pipeline/cmd/export"
	"amifi/txn-pipeline/cmd/goals"
	"amifi/txn-pipeline/cmd/process"
	"amifi/txn-pipeline/cmd/root"
	"amifi/txn-pipeline/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(bulk.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(goals.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
