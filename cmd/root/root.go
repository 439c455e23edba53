// Package root contains the root command for the application.
package root

import (
	"github.com/spf13/cobra"

	"amifi/txn-pipeline/internal/config"
	"amifi/txn-pipeline/internal/container"
	"amifi/txn-pipeline/internal/logging"
)

// CommonFlags holds flags shared by multiple commands.
type CommonFlags struct {
	Channel string
	DryRun  bool
}

var (
	// Log is the shared logger instance for commands. It is replaced
	// with the configured logger in PersistentPreRun.
	Log logging.Logger = logging.GetLogger()

	// Cfg is the loaded application configuration, available to
	// subcommands after PersistentPreRun.
	Cfg *config.Config

	// SharedFlags are common flags accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "txn-pipeline",
		Short: "Extract, classify, and score bank notification messages.",
		Long: `txn-pipeline turns raw Indian bank SMS and email notifications into
structured transactions, classifies them into spending categories, and
scores their impact against your financial goals.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to txn-pipeline!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg

			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format, cfg.Log.MaskPII)
			logging.SetDefaultLogger(Log)
			return nil
		},
	}
)

// Init initializes the root command and all persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Channel, "channel", "c", "sms", "Message channel (sms or email)")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.DryRun, "dry-run", false, "Process without persisting to the database")
}

// BuildContainer wires the application dependencies for a subcommand.
// Dry-run invocations skip storage entirely.
func BuildContainer() (*container.Container, error) {
	return container.NewContainer(Cfg, container.Options{SkipStorage: SharedFlags.DryRun})
}
