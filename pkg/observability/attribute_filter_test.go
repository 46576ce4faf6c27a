package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sumatoshi-tech/gitrewind/pkg/observability"
)

func newFilteredProvider(exporter *tracetest.InMemoryExporter, logger *slog.Logger) *sdktrace.TracerProvider {
	filter := observability.NewAttributeFilter(sdktrace.NewSimpleSpanProcessor(exporter), logger)

	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(filter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
}

func TestAttributeFilter_AllowsKnownKeys(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := newFilteredProvider(exporter, nil)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.SetAttributes(
		attribute.Int("rewind.year", 2024),
		attribute.String("error.type", "timeout"),
		attribute.String("mcp.tool", "rewind_summarize"),
		attribute.Bool("cache.hit", true),
	)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	attrs := spanAttrMap(spans[0])
	assert.Equal(t, int64(2024), attrs["rewind.year"])
	assert.Equal(t, "timeout", attrs["error.type"])
	assert.Equal(t, "rewind_summarize", attrs["mcp.tool"])
	assert.Equal(t, true, attrs["cache.hit"])
}

func TestAttributeFilter_BlocksIdentity(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := newFilteredProvider(exporter, nil)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.SetAttributes(
		attribute.String("username", "octocat"),
		attribute.String("rewind.user.login", "octocat"),
		attribute.String("user.name", "The Octocat"),
		attribute.String("email", "octocat@example.com"),
		attribute.String("request.body", `{"year":2024}`),
		attribute.String("rewind.mode", "same-period"),
	)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	attrs := spanAttrMap(spans[0])
	assert.NotContains(t, attrs, "username")
	assert.NotContains(t, attrs, "rewind.user.login")
	assert.NotContains(t, attrs, "user.name")
	assert.NotContains(t, attrs, "email")
	assert.NotContains(t, attrs, "request.body")
	assert.Equal(t, "same-period", attrs["rewind.mode"])
}

func TestAttributeFilter_DropsUnknownAndWarns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	exporter := tracetest.NewInMemoryExporter()
	tp := newFilteredProvider(exporter, logger)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.SetAttributes(attribute.String("random.key", "value"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.NotContains(t, spanAttrMap(spans[0]), "random.key")
	assert.Contains(t, buf.String(), "random.key")
}

func spanAttrMap(span tracetest.SpanStub) map[string]any {
	attrs := make(map[string]any, len(span.Attributes))

	for _, kv := range span.Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}

	return attrs
}
