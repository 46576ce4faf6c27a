package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitrewind/pkg/mcp"
	"github.com/Sumatoshi-tech/gitrewind/pkg/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(app *App) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes the year-in-review engine as tools that AI agents
can discover and invoke:
  - rewind_summarize: Build a summary from one year payload
  - rewind_compare: Compare two years given as payloads or summaries`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			obsCfg := app.observabilityConfig(observability.ModeMCP)
			obsCfg.LogJSON = true

			if debug {
				obsCfg.LogLevel = slog.LevelDebug
				obsCfg.DebugTrace = true
			}

			providers, err := observability.Init(obsCfg)
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			red, err := observability.NewREDMetrics(providers.Meter)
			if err != nil {
				return err
			}

			rewind, err := observability.NewRewindMetrics(providers.Meter)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger:    providers.Logger,
				Metrics:   red,
				Rewind:    rewind,
				Tracer:    providers.Tracer,
				Assembler: app.assembler(0),
				Engine:    app.engine(),
			})

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	return cmd
}
