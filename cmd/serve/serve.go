// Package serve runs the HTTP API server.
package serve

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"amifi/txn-pipeline/cmd/root"
	"amifi/txn-pipeline/internal/api"
)

var (
	host string
	port int
)

// Cmd represents the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve the processing pipeline over HTTP. Endpoints cover single and
bulk message processing, stored transactions, and goal progress.`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides configuration)")
	Cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c, err := root.BuildContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	cfg := c.GetConfig()
	listenHost := cfg.Server.Host
	if host != "" {
		listenHost = host
	}
	listenPort := cfg.Server.Port
	if port != 0 {
		listenPort = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(c.GetPipeline(), c.GetEngine(), c.GetStorage(), c.GetLogger())
	return server.Run(ctx, fmt.Sprintf("%s:%d", listenHost, listenPort))
}
