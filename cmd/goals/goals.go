// Package goals reports progress on the configured goal registry.
package goals

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"amifi/txn-pipeline/cmd/root"
	"amifi/txn-pipeline/internal/currencyutils"
)

var asJSON bool

// Cmd represents the goals command.
var Cmd = &cobra.Command{
	Use:   "goals",
	Short: "Show goal registry progress",
	RunE:  goalsFunc,
}

func init() {
	Cmd.Flags().BoolVar(&asJSON, "json", false, "Print goal summaries as JSON")
}

func goalsFunc(cmd *cobra.Command, args []string) error {
	c, err := root.BuildContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	summaries := c.GetEngine().Summaries()

	if asJSON {
		out, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	}

	for _, s := range summaries {
		line := fmt.Sprintf("%-16s %-14s %6.1f%%  %s of %s",
			s.ID, s.Type, s.Progress*100,
			currencyutils.FormatINR(s.CurrentAmount), currencyutils.FormatINR(s.TargetAmount))
		if s.DaysRemaining != nil {
			line += fmt.Sprintf("  (%d days left)", *s.DaysRemaining)
		}
		cmd.Println(line)
	}
	return nil
}
