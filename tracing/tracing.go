// Package tracing sets up OpenTelemetry span export for the store
// assistant. Spans go to a JSON writer so tool executions and chat turns
// can be inspected without external collector infrastructure.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Init configures a tracer provider exporting spans as JSON to the given
// writer (stdout when nil) and returns a tracer for the service plus a
// shutdown function that flushes pending spans. Call the shutdown function
// before the process exits.
func Init(ctx context.Context, serviceName string, w io.Writer) (trace.Tracer, func(context.Context) error, error) {
	if w == nil {
		w = os.Stdout
	}
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("creating span exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("building trace resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return provider.Tracer(serviceName), provider.Shutdown, nil
}

// Disabled returns a tracer that records nothing, for runs where span
// output is unwanted.
func Disabled() trace.Tracer {
	return noop.NewTracerProvider().Tracer("disabled")
}
