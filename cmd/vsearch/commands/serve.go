package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vertexkit/vsearch/internal/logging"
	"github.com/vertexkit/vsearch/internal/server"
)

// NewServeCmd constructs the `vsearch serve` command, which starts the HTTP
// search proxy.
func NewServeCmd() *cobra.Command {
	var host string
	var port int
	var readinessStore string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP search proxy",
		Long: `Start an HTTP server that proxies search requests to Discovery Engine.

The server exposes POST /api/search plus health, readiness, and Prometheus
metrics endpoints. Set VSEARCH_API_KEY to require bearer-token auth on the
search endpoint.

Examples:
  vsearch serve
  vsearch serve --port 9090 --readiness-store my-docs
  VSEARCH_API_KEY=secret vsearch serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logging.New()
			ctx = logging.WithLogger(ctx, log)

			log.Info("serve starting", slog.String("project", os.Getenv("GOOGLE_CLOUD_PROJECT")))

			client, err := dialClient(ctx)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer client.Close()

			var pingers []server.Pinger
			if readinessStore != "" {
				pingers = append(pingers, server.NewDiscoveryPinger(client, readinessStore))
			} else {
				log.Info("readiness: discovery probe disabled", slog.String("reason", "--readiness-store not set"))
			}

			j, closeJournal := openJournal(log)
			defer closeJournal()
			if j != nil {
				pingers = append(pingers, server.NewJournalPinger(j))
			}

			srv, err := server.New(client, &server.Config{
				Host:    host,
				Port:    port,
				Logger:  log,
				Pingers: pingers,
				APIKey:  os.Getenv("VSEARCH_API_KEY"),
			})
			if err != nil {
				return fmt.Errorf("serve: failed to create server: %w", err)
			}

			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Host address to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "TCP port to listen on")
	cmd.Flags().StringVar(&readinessStore, "readiness-store", "", "Data store ID probed by the readiness endpoint")

	return cmd
}
