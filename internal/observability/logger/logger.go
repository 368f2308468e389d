package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/billfold/billfold/pkg/reqctx"
)

// FromContext returns the global logger decorated with the request id and
// active trace/span ids when present.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}

	if requestID := reqctx.RequestIDFromContext(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}

	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		log = log.With(
			zap.String("trace_id", span.TraceID().String()),
			zap.String("span_id", span.SpanID().String()),
		)
	}

	return log
}
