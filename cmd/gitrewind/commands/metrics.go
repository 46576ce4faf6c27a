package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitrewind/internal/render"
	"github.com/Sumatoshi-tech/gitrewind/pkg/compare"
	"github.com/Sumatoshi-tech/gitrewind/pkg/metrics"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

// NewMetricsCommand creates the metrics listing command.
func NewMetricsCommand(app *App) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "List the registered summary and comparison metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := metrics.NewRegistry()
			yearstats.RegisterMetrics(registry)
			metrics.Register(registry, compare.NewComparisonMetric(app.engine()))

			return out.write(cmd, func(w io.Writer, opts render.Options) error {
				return render.Metrics(w, registry.Describe(), opts)
			})
		},
	}

	out.register(cmd, render.FormatText)

	return cmd
}
