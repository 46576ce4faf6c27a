package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitrewind/internal/render"
)

// stdinPath selects standard input as the input file.
const stdinPath = "-"

// outputFilePerm is the permission of files written with --output.
const outputFilePerm = 0o644

// readInput reads path, or standard input for "-", and returns a label for
// error messages.
func readInput(cmd *cobra.Command, path string) (data []byte, label string, err error) {
	if path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "stdin", fmt.Errorf("read stdin: %w", err)
		}

		return data, "stdin", nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read input: %w", err)
	}

	return data, path, nil
}

// outputFlags are the rendering flags shared by summarize and compare.
type outputFlags struct {
	format  string
	output  string
	color   bool
	noColor bool
}

func (f *outputFlags) register(cmd *cobra.Command, defaultFormat render.Format) {
	cmd.Flags().StringVarP(&f.format, "format", "f", string(defaultFormat), "output format: json, yaml or text")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&f.color, "color", false, "force colored text output")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable colored text output")
}

func (f *outputFlags) options() (render.Options, error) {
	format, err := render.ParseFormat(f.format)
	if err != nil {
		return render.Options{}, err
	}

	useColor := !color.NoColor && f.output == ""
	if f.color {
		useColor = true
	}

	if f.noColor {
		useColor = false
	}

	return render.Options{Format: format, Color: useColor}, nil
}

// write renders into the --output file, or the command's stdout.
func (f *outputFlags) write(cmd *cobra.Command, fn func(io.Writer, render.Options) error) error {
	opts, err := f.options()
	if err != nil {
		return err
	}

	if f.output == "" {
		return fn(cmd.OutOrStdout(), opts)
	}

	file, err := os.OpenFile(f.output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePerm)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	renderErr := fn(file, opts)

	closeErr := file.Close()
	if renderErr != nil {
		return renderErr
	}

	if closeErr != nil {
		return fmt.Errorf("close output: %w", closeErr)
	}

	return nil
}
