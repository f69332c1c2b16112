package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of spans started by this module
const TracerName = "github.com/finapp2p/backend"

// Attribute keys shared by spans and metrics
var (
	AttrOperation  = attribute.Key("person.operation")
	AttrOutcome    = attribute.Key("outcome")
	AttrPersonID   = attribute.Key("person.id")
	AttrPersonType = attribute.Key("person.type")
	AttrDBOp       = attribute.Key("db.operation")
	AttrDBTable    = attribute.Key("db.table")
	AttrPoolState  = attribute.Key("db.pool.state")
)

// StartSpan starts an internal span on the global tracer provider.
// The caller must End the returned span.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return startSpan(ctx, otel.GetTracerProvider().Tracer(TracerName), name, attrs...)
}

func startSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	opts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindInternal)}
	if len(attrs) > 0 {
		opts = append(opts, trace.WithAttributes(attrs...))
	}
	return tracer.Start(ctx, name, opts...)
}

// EndSpan records err on span, or marks it OK, and ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
