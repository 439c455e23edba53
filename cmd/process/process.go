// Package process handles single-message processing from the command
// line.
package process

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"amifi/txn-pipeline/cmd/root"
	"amifi/txn-pipeline/internal/pipeline"
)

var (
	message string
	userID  string
)

// Cmd represents the process command.
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Process a single notification message",
	Long: `Process one raw SMS or email notification: extract the transaction,
classify it, and score its impact against your goals. The result is
printed as JSON.`,
	RunE: processFunc,
}

func init() {
	Cmd.Flags().StringVarP(&message, "message", "m", "", "Raw notification text")
	Cmd.Flags().StringVarP(&userID, "user", "u", "", "User id recorded with the transaction")
	_ = Cmd.MarkFlagRequired("message")
}

func processFunc(cmd *cobra.Command, args []string) error {
	c, err := root.BuildContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	result, err := c.GetPipeline().ProcessMessage(
		context.Background(), message, root.SharedFlags.Channel, pipeline.UserMeta(userID),
	)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnparseable) {
			return fmt.Errorf("message did not match any known notification format")
		}
		return err
	}

	out, err := json.MarshalIndent(result.Record, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))

	if result.Duplicate {
		root.Log.WithField("transaction_id", result.Record.ID).Warn("Message was already processed")
	}
	return nil
}
