package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/gitrewind/pkg/observability"
)

const (
	testTraceID = "0af7651916cd43dd8448eb211c80319c"
	testSpanID  = "b7ad6b7169203331"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	return record
}

func TestTracingHandler_InjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := observability.NewTracingHandler(slog.NewJSONHandler(&buf, nil), observability.ServiceInfo{
		Name: "gitrewind",
		Mode: observability.ModeServe,
	})

	traceID, err := trace.TraceIDFromHex(testTraceID)
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex(testSpanID)
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	slog.New(handler).InfoContext(ctx, "summary assembled")

	record := decodeRecord(t, &buf)
	assert.Equal(t, testTraceID, record["trace_id"])
	assert.Equal(t, testSpanID, record["span_id"])
	assert.Equal(t, "gitrewind", record["service"])
	assert.Equal(t, "serve", record["mode"])
}

func TestTracingHandler_NoSpanNoTraceFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := observability.NewTracingHandler(slog.NewJSONHandler(&buf, nil), observability.ServiceInfo{Name: "gitrewind"})
	slog.New(handler).Info("no span")

	record := decodeRecord(t, &buf)
	assert.NotContains(t, record, "trace_id")
	assert.NotContains(t, record, "span_id")
}

func TestTracingHandler_OptionalServiceFields(t *testing.T) {
	t.Parallel()

	var bare, full bytes.Buffer

	slog.New(observability.NewTracingHandler(slog.NewJSONHandler(&bare, nil), observability.ServiceInfo{
		Name: "gitrewind",
	})).Info("bare")

	slog.New(observability.NewTracingHandler(slog.NewJSONHandler(&full, nil), observability.ServiceInfo{
		Name:        "gitrewind",
		Version:     "1.2.3",
		Environment: "staging",
	})).Info("full")

	bareRecord := decodeRecord(t, &bare)
	assert.NotContains(t, bareRecord, "version")
	assert.NotContains(t, bareRecord, "env")

	fullRecord := decodeRecord(t, &full)
	assert.Equal(t, "1.2.3", fullRecord["version"])
	assert.Equal(t, "staging", fullRecord["env"])
}

func TestTracingHandler_GroupKeepsServiceTopLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler := observability.NewTracingHandler(slog.NewJSONHandler(&buf, nil), observability.ServiceInfo{Name: "gitrewind"})
	slog.New(handler).WithGroup("request").Info("grouped", "year", 2024)

	record := decodeRecord(t, &buf)
	assert.Equal(t, "gitrewind", record["service"])

	group, ok := record["request"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 2024, group["year"], 0)
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.LogLevel = slog.LevelWarn

	logger := observability.NewLogger(&buf, cfg)
	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Equal(t, "shown", decodeRecord(t, &buf)["msg"])
}
