// Package bulk handles processing a file of notification messages, one
// per line.
package bulk

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"amifi/txn-pipeline/cmd/root"
	"amifi/txn-pipeline/internal/logging"
)

var inputFile string

// Cmd represents the bulk command.
var Cmd = &cobra.Command{
	Use:   "bulk",
	Short: "Process a file of notification messages",
	Long: `Process a newline-delimited file of raw notifications. Blank lines are
skipped; lines that match no known format are counted and reported
without aborting the run.`,
	RunE: bulkFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Messages file, one notification per line")
	_ = Cmd.MarkFlagRequired("input")
}

func bulkFunc(cmd *cobra.Command, args []string) error {
	c, err := root.BuildContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	summary, err := c.GetPipeline().ProcessFile(context.Background(), inputFile, root.SharedFlags.Channel)
	if err != nil {
		return err
	}

	root.Log.WithFields(
		logging.Field{Key: "total", Value: summary.Total},
		logging.Field{Key: "processed", Value: summary.Processed},
		logging.Field{Key: "duplicates", Value: summary.Duplicates},
		logging.Field{Key: "failed", Value: summary.Failed},
	).Info("Bulk run finished")

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
