package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
)

type contextValue string

type Code codes.Code

const (
	// Unset is the default status code
	Unset Code = Code(codes.Unset)

	// Error indicates the operation contains an error
	Error Code = Code(codes.Error)

	// Ok indicates operation has been validated by an Application developers
	Ok Code = Code(codes.Ok)
)

type Span interface {
	// SetAttribute set attribute (base type)
	SetAttribute(label string, value interface{})

	// SetStatus set status
	SetStatus(code Code, info string)

	// RecordError records err as an exception event and marks the span as failed.
	// A nil err is a no-op.
	RecordError(err error)

	// End ends the span
	End()

	// Context returns a context carrying this span, for child spans
	Context() context.Context
}

// Tracer provides a tracer
type Tracer interface {
	// Start starts a new root span
	Start(name string) Span

	// StartWithContext starts a new span with a parent from context
	StartWithContext(ctx context.Context, name string) Span
}

type TracerProvider interface {
	// NewTracer creates a new tracer
	NewTracer(namespace string) Tracer

	// Shutdown flushes and shuts down the tracer provider
	Shutdown(context.Context) error
}
