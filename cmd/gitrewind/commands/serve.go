package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitrewind/internal/server"
	"github.com/Sumatoshi-tech/gitrewind/pkg/observability"
)

// NewServeCommand creates the HTTP service command.
func NewServeCommand(app *App) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP summary service",
		Long: `Run the HTTP summary service.

Routes:
  POST /v1/summary                    build and cache a summary from a payload
  POST /v1/compare                    compare inline or cached summaries
  GET  /v1/summary/{username}/{year}  fetch a cached summary
  GET  /healthz, /readyz, /metrics    probes and Prometheus scrape`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *app.Config

			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			err := cfg.Validate()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			obsCfg := app.observabilityConfig(observability.ModeServe)
			obsCfg.Prometheus = true

			providers, err := observability.Init(obsCfg)
			if err != nil {
				return fmt.Errorf("init observability: %w", err)
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			srv, err := server.New(cfg, providers)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")

	return cmd
}
