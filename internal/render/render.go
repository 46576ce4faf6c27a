// Package render writes summaries, comparisons and metric listings as JSON,
// YAML or a terminal report.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/gitrewind/pkg/compare"
	"github.com/Sumatoshi-tech/gitrewind/pkg/metrics"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

// Format selects the output encoding.
type Format string

// Output formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

const (
	jsonIndent = "  "
	yamlIndent = 2
)

// ErrUnsupportedFormat is returned for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formats lists the accepted format names.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatText)}
}

// ParseFormat resolves a format name, case-insensitively. "yml" is accepted
// for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	case string(FormatText):
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, name, strings.Join(Formats(), ", "))
	}
}

// Options configures rendering.
type Options struct {
	Format Format
	// Color enables ANSI colors in text output.
	Color bool
}

// Summary writes a yearly summary.
func Summary(w io.Writer, summary yearstats.YearSummary, opts Options) error {
	return write(w, summary, opts, func(p *printer) { p.summary(summary) })
}

// Comparison writes a year-over-year comparison.
func Comparison(w io.Writer, comparison compare.YearComparison, opts Options) error {
	return write(w, comparison, opts, func(p *printer) { p.comparison(comparison) })
}

// Metrics writes the metric listing.
func Metrics(w io.Writer, infos []metrics.Info, opts Options) error {
	return write(w, infos, opts, func(p *printer) { p.metrics(infos) })
}

func write(w io.Writer, value any, opts Options, text func(*printer)) error {
	switch opts.Format {
	case FormatJSON, "":
		return writeJSON(w, value)
	case FormatYAML:
		return writeYAML(w, value)
	case FormatText:
		p := newPrinter(opts.Color)
		text(p)

		_, err := io.WriteString(w, p.String())
		if err != nil {
			return fmt.Errorf("write text report: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", jsonIndent)

	err := enc.Encode(value)
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)

	err := enc.Encode(value)
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("flush YAML: %w", err)
	}

	return nil
}
