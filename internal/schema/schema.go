// Package schema validates stored YearSummary documents against the
// embedded JSON schema before they are trusted as comparison input.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

// ErrInvalidSummary is returned when a document does not satisfy the
// summary schema.
var ErrInvalidSummary = errors.New("invalid year summary")

// ErrEmptyDocument is returned for blank input.
var ErrEmptyDocument = errors.New("empty document")

//go:embed year_summary.schema.json
var summarySchema []byte

// Raw returns the embedded schema document.
func Raw() []byte {
	return bytes.Clone(summarySchema)
}

// FieldError is one schema violation.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Description)
	}

	return fmt.Sprintf("%s: %s", ErrInvalidSummary, strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, ErrInvalidSummary) hold.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidSummary
}

var compiled = mustCompile()

func mustCompile() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(summarySchema))
	if err != nil {
		panic("schema: embedded summary schema does not compile: " + err.Error())
	}

	return s
}

// Validate checks a decoded document (maps, slices and scalars as produced
// by encoding/json or yaml.v3) against the summary schema.
func Validate(doc any) error {
	result, err := compiled.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate summary: %w", err)
	}

	if result.Valid() {
		return nil
	}

	fields := make([]FieldError, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		fields = append(fields, FieldError{Field: verr.Field(), Description: verr.Description()})
	}

	return &ValidationError{Fields: fields}
}

// Decode parses a JSON or YAML summary document, validates it and returns
// the typed summary. JSON is tried first; anything else is read as YAML.
func Decode(data []byte) (yearstats.YearSummary, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return yearstats.YearSummary{}, ErrEmptyDocument
	}

	doc, err := decodeGeneric(trimmed)
	if err != nil {
		return yearstats.YearSummary{}, err
	}

	err = Validate(doc)
	if err != nil {
		return yearstats.YearSummary{}, err
	}

	// Round-trip through JSON so YAML input reuses the JSON field mapping.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return yearstats.YearSummary{}, fmt.Errorf("normalize summary: %w", err)
	}

	var summary yearstats.YearSummary

	err = json.Unmarshal(normalized, &summary)
	if err != nil {
		return yearstats.YearSummary{}, fmt.Errorf("decode summary: %w", err)
	}

	return summary, nil
}

// IsJSON reports whether data looks like a JSON object.
func IsJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)

	return len(trimmed) > 0 && trimmed[0] == '{'
}

func decodeGeneric(data []byte) (any, error) {
	var doc any

	if IsJSON(data) {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()

		err := dec.Decode(&doc)
		if err != nil {
			return nil, fmt.Errorf("decode JSON summary: %w", err)
		}

		return doc, nil
	}

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("decode YAML summary: %w", err)
	}

	return doc, nil
}
