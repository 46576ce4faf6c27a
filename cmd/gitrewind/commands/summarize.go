package commands

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitrewind/internal/render"
	"github.com/Sumatoshi-tech/gitrewind/pkg/upstream"
)

// NewSummarizeCommand creates the summarize command.
func NewSummarizeCommand(app *App) *cobra.Command {
	var (
		out     outputFlags
		pageCap int
	)

	cmd := &cobra.Command{
		Use:   "summarize <payload.json|->",
		Short: "Build a year-in-review summary from a year payload",
		Long: `Build a year-in-review summary from one already-fetched year payload.

The payload is a JSON document {"year", "contributions", "supplementary"}
as written by the fetch layer.

Examples:
  gitrewind summarize payload_2024.json
  gitrewind summarize --format text - < payload_2024.json
  gitrewind summarize -o summary_2024.json payload_2024.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, label, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			payload, err := upstream.Decode(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("%s: %w", label, err)
			}

			summary := app.assembler(pageCap).Assemble(payload)

			app.Logger.DebugContext(cmd.Context(), "summary assembled",
				"year", summary.Year,
				"total", summary.TotalContributions,
				"truncated", summary.DataCompleteness.Truncation.Any(),
			)

			return out.write(cmd, func(w io.Writer, opts render.Options) error {
				return render.Summary(w, summary, opts)
			})
		},
	}

	out.register(cmd, render.FormatJSON)
	cmd.Flags().IntVar(&pageCap, "page-cap", 0, "repository listing page size used to flag truncation (default from config)")

	return cmd
}
