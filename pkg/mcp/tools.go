package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/gitrewind/internal/schema"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

// Tool name constants.
const (
	ToolNameSummarize = "rewind_summarize"
	ToolNameCompare   = "rewind_compare"
)

// MaxDocumentBytes is the maximum encoded size of one tool document (4 MB).
const MaxDocumentBytes = 4 << 20

// Sentinel errors for tool input validation.
var (
	// ErrEmptyPayload indicates the payload parameter is missing.
	ErrEmptyPayload = errors.New("payload parameter is required and must not be empty")
	// ErrEmptyCurrent indicates the current parameter is missing.
	ErrEmptyCurrent = errors.New("current parameter is required and must not be empty")
	// ErrEmptyPrevious indicates the previous parameter is missing.
	ErrEmptyPrevious = errors.New("previous parameter is required and must not be empty")
	// ErrDocumentTooLarge indicates a document exceeds the size limit.
	ErrDocumentTooLarge = errors.New("document exceeds maximum size")
	// ErrNotPayload indicates the summarize input is not a contributions payload.
	ErrNotPayload = errors.New("payload must carry a contributions member")
)

// Input types (auto-generate JSON schemas via struct tags).

// SummarizeInput is the input schema for the rewind_summarize tool.
type SummarizeInput struct {
	Payload map[string]any `json:"payload" jsonschema:"year payload with year, contributions and optional supplementary members"`
}

// CompareInput is the input schema for the rewind_compare tool.
type CompareInput struct {
	Current  map[string]any `json:"current"  jsonschema:"current year as a payload or a summary"`
	Previous map[string]any `json:"previous" jsonschema:"previous year as a payload or a summary"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

func (s *Server) handleSummarize(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input SummarizeInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := encodeDocument(input.Payload, ErrEmptyPayload)
	if err != nil {
		return errorResult(err)
	}

	if !schema.IsPayload(data) {
		return errorResult(ErrNotPayload)
	}

	summary, err := schema.Load(data, s.assembler)
	if err != nil {
		return errorResult(err)
	}

	s.rewind.RecordSummary(ctx, string(summary.ActivityLevel), summary.DataCompleteness.Truncation.Any())

	return jsonResult(summary)
}

func (s *Server) handleCompare(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input CompareInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	current, err := s.loadSide(input.Current, ErrEmptyCurrent)
	if err != nil {
		return errorResult(fmt.Errorf("current: %w", err))
	}

	previous, err := s.loadSide(input.Previous, ErrEmptyPrevious)
	if err != nil {
		return errorResult(fmt.Errorf("previous: %w", err))
	}

	comparison := s.engine.Compare(current, previous)
	s.rewind.RecordComparison(ctx, string(comparison.Mode), len(comparison.NarrativeInsights))

	return jsonResult(comparison)
}

func (s *Server) loadSide(doc map[string]any, missing error) (yearstats.YearSummary, error) {
	data, err := encodeDocument(doc, missing)
	if err != nil {
		return yearstats.YearSummary{}, err
	}

	return schema.Load(data, s.assembler)
}

func encodeDocument(doc map[string]any, missing error) ([]byte, error) {
	if len(doc) == 0 {
		return nil, missing
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	if len(data) > MaxDocumentBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLarge, len(data), MaxDocumentBytes)
	}

	return data, nil
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
