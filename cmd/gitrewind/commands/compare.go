package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitrewind/internal/render"
	"github.com/Sumatoshi-tech/gitrewind/internal/schema"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(app *App) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "compare <current> <previous>",
		Short: "Compare two years of the same user",
		Long: `Compare two years of the same user.

Each side is either a raw year payload or a summary document (JSON or YAML)
produced by summarize; summaries are validated against the schema first.
An unfinished current year is compared with the same number of days of the
previous year.

Examples:
  gitrewind compare payload_2024.json payload_2023.json
  gitrewind compare --format text summary_2024.yaml summary_2023.yaml`,
		Args: cobra.ExactArgs(2), //nolint:mnd // current and previous.
		RunE: func(cmd *cobra.Command, args []string) error {
			assembler := app.assembler(0)

			current, err := loadSummary(cmd, args[0], assembler)
			if err != nil {
				return fmt.Errorf("current: %w", err)
			}

			previous, err := loadSummary(cmd, args[1], assembler)
			if err != nil {
				return fmt.Errorf("previous: %w", err)
			}

			comparison := app.engine().Compare(current, previous)

			app.Logger.DebugContext(cmd.Context(), "years compared",
				"mode", comparison.Mode,
				"current_year", comparison.CurrentYear,
				"previous_year", comparison.PreviousYear,
				"insights", len(comparison.NarrativeInsights),
			)

			return out.write(cmd, func(w io.Writer, opts render.Options) error {
				return render.Comparison(w, comparison, opts)
			})
		},
	}

	out.register(cmd, render.FormatJSON)

	return cmd
}

func loadSummary(cmd *cobra.Command, path string, assembler *yearstats.Assembler) (yearstats.YearSummary, error) {
	data, label, err := readInput(cmd, path)
	if err != nil {
		return yearstats.YearSummary{}, err
	}

	summary, err := schema.Load(data, assembler)
	if err != nil {
		return yearstats.YearSummary{}, fmt.Errorf("%s: %w", label, err)
	}

	return summary, nil
}
