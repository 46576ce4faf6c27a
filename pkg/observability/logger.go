package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrVersion = "version"
	attrEnv     = "env"
	attrAppMode = "mode"
)

// ServiceInfo is the static metadata stamped on every log record.
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
	Mode        AppMode
}

// TracingHandler is an [slog.Handler] that adds the OpenTelemetry trace_id
// and span_id of the record's context. Service metadata is attached once at
// construction so it stays at the top level even under WithGroup.
type TracingHandler struct {
	inner slog.Handler
}

// NewTracingHandler wraps inner with trace context injection and the given
// service metadata. Empty version and environment are omitted.
func NewTracingHandler(inner slog.Handler, info ServiceInfo) *TracingHandler {
	attrs := []slog.Attr{
		slog.String(attrService, info.Name),
		slog.String(attrAppMode, string(info.Mode)),
	}

	if info.Version != "" {
		attrs = append(attrs, slog.String(attrVersion, info.Version))
	}

	if info.Environment != "" {
		attrs = append(attrs, slog.String(attrEnv, info.Environment))
	}

	return &TracingHandler{inner: inner.WithAttrs(attrs)}
}

// Enabled delegates to the inner handler.
func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.inner.Enabled(ctx, level)
}

// Handle adds trace context attributes from the span context, then delegates.
func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	err := th.inner.Handle(ctx, record)
	if err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

// WithAttrs returns a new TracingHandler with additional attributes on the inner handler.
func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{inner: th.inner.WithAttrs(attrs)}
}

// WithGroup returns a new TracingHandler with a group prefix on the inner handler.
func (th *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{inner: th.inner.WithGroup(name)}
}
