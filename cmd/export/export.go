// Package export writes stored transactions to a CSV file.
package export

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"amifi/txn-pipeline/cmd/root"
	"amifi/txn-pipeline/internal/export"
)

var (
	outputFile string
	limit      int
)

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transactions to CSV",
	RunE:  exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "transactions.csv", "Output CSV file")
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of transactions to export (0 for default)")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	c, err := root.BuildContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	if c.GetStorage() == nil {
		return fmt.Errorf("export requires the database; remove --dry-run")
	}

	records, err := c.GetStorage().ListRecords(context.Background(), limit)
	if err != nil {
		return err
	}

	return export.WriteRecordsToCSV(records, outputFile, root.Log)
}
