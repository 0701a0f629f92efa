// Package tracing wires up the OpenTelemetry spans SPEC_FULL.md §2.2 adds
// around Phase 1, each Phase 2 container solve, and each ALNS iteration.
package tracing

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// tracerName identifies this program's spans within whatever exporter
// backend is configured.
const tracerName = "github.com/cargostow/loadplan"

// Setup installs a trace provider writing newline-delimited JSON spans to
// w and returns a shutdown func the caller must defer. There is no
// collector endpoint in scope for a batch CLI (SPEC_FULL.md §2.2), so the
// stdout exporter is the concrete backend.
func Setup(w io.Writer) (shutdown func(context.Context) error, err error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithoutTimestamps())
	if err != nil {
		return nil, err
	}
	tp := trace.NewTracerProvider(trace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Tracer returns this program's named tracer.
func Tracer() oteltrace.Tracer {
	return otel.Tracer(tracerName)
}

// StartPhase1 starts the span covering one Assignment Model Builder +
// Solver Driver invocation.
func StartPhase1(ctx context.Context, runID string) (context.Context, oteltrace.Span) {
	return Tracer().Start(ctx, "phase1.assign", oteltrace.WithAttributes(
		runIDAttr(runID),
	))
}

// StartPhase2Container starts the span covering one container instance's
// Placement Model Builder + Solver Driver invocation.
func StartPhase2Container(ctx context.Context, runID string, instance int) (context.Context, oteltrace.Span) {
	return Tracer().Start(ctx, "phase2.place_container", oteltrace.WithAttributes(
		runIDAttr(runID),
		instanceAttr(instance),
	))
}

// StartALNSIteration starts the span covering one destroy/repair/evaluate/
// accept cycle.
func StartALNSIteration(ctx context.Context, runID string, iteration int) (context.Context, oteltrace.Span) {
	return Tracer().Start(ctx, "alns.iteration", oteltrace.WithAttributes(
		runIDAttr(runID),
		iterationAttr(iteration),
	))
}

func runIDAttr(runID string) attribute.KeyValue    { return attribute.String("run_id", runID) }
func instanceAttr(instance int) attribute.KeyValue  { return attribute.Int("instance", instance) }
func iterationAttr(iteration int) attribute.KeyValue { return attribute.Int("iteration", iteration) }
