package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitrewind/internal/schema"
)

// Validate command errors. main maps ErrValidationFailed to exit code 2.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrMissingInput     = errors.New("validate needs a summary file or - for stdin")
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var printSchema, noColor bool

	cmd := &cobra.Command{
		Use:   "validate <summary.json|summary.yaml|->",
		Short: "Validate a stored summary against the summary schema",
		Long: `Validate a stored year summary (JSON or YAML) against the embedded
summary schema. The command exits with code 2 when the document is invalid.

Examples:
  gitrewind validate summary_2024.json
  gitrewind validate - < summary_2024.yaml
  gitrewind validate --print-schema`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if printSchema {
				_, err := cmd.OutOrStdout().Write(schema.Raw())
				if err != nil {
					return fmt.Errorf("write schema: %w", err)
				}

				return nil
			}

			if len(args) == 0 {
				return ErrMissingInput
			}

			return runValidate(cmd, args[0], noColor)
		},
	}

	cmd.Flags().BoolVar(&printSchema, "print-schema", false, "print the summary JSON schema and exit")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, noColor bool) error {
	data, label, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	good := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed, color.Bold)

	if noColor {
		good.DisableColor()
		bad.DisableColor()
	}

	w := cmd.OutOrStdout()

	summary, err := schema.Decode(data)
	if err == nil {
		fmt.Fprintf(w, "%s %s (%d, %d contributions)\n",
			good.Sprint("VALID:"), label, summary.Year, summary.TotalContributions)

		return nil
	}

	fmt.Fprintf(w, "%s %s\n", bad.Sprint("INVALID:"), label)
	printFieldErrors(w, err)

	return fmt.Errorf("%s: %w", label, ErrValidationFailed)
}

func printFieldErrors(w io.Writer, err error) {
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintf(w, "  - %v\n", err)

		return
	}

	for _, field := range verr.Fields {
		fmt.Fprintf(w, "  - %s: %s\n", field.Field, field.Description)
	}
}
