package telemetry

import (
	"context"
	"fmt"
	"os"

	"github.com/iankressin/eql-sub000/versioning"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/trace"

	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const (
	JaegerContextName contextValue = "jaeger"
)

// newJaegerProvider creates a new jaeger provider
func newJaegerProvider(url string, service string) (*tracesdk.TracerProvider, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(url)))
	if err != nil {
		return nil, err
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
			attribute.String("hostname", hostname),
			attribute.String("version", versioning.Version),
			attribute.String("commit", versioning.ShortCommit()),
		)),
		tracesdk.WithSampler(tracesdk.AlwaysSample()),
	)

	return tp, nil
}

type jaegerSpan struct {
	span trace.Span
	ctx  context.Context
}

func (s *jaegerSpan) SetAttribute(key string, value interface{}) {
	s.span.SetAttributes(attribute.KeyValue{
		Key:   attribute.Key(key),
		Value: convertTypeToAttribute(value),
	})
}

func (s *jaegerSpan) SetStatus(code Code, info string) {
	s.span.SetStatus(codes.Code(code), info)
}

func (s *jaegerSpan) RecordError(err error) {
	if err == nil {
		return
	}

	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

func (s *jaegerSpan) End() {
	s.span.End()
}

func (s *jaegerSpan) Context() context.Context {
	return s.ctx
}

type jaegerTracer struct {
	context context.Context
	tracer  trace.Tracer
}

// Start starts a new span
func (t *jaegerTracer) Start(name string) Span {
	return t.StartWithContext(t.context, name)
}

// StartWithContext starts a new span as a child of the span carried by ctx
func (t *jaegerTracer) StartWithContext(ctx context.Context, name string) Span {
	childContext, span := t.tracer.Start(ctx, name)

	return &jaegerSpan{
		span: span,
		ctx:  childContext,
	}
}

type jaegerTracerProvider struct {
	context  context.Context
	provider *tracesdk.TracerProvider
}

// NewTracer creates a new tracer
func (p *jaegerTracerProvider) NewTracer(namespace string) Tracer {
	return &jaegerTracer{
		context: p.context,
		tracer:  p.provider.Tracer(namespace),
	}
}

// Shutdown shuts down the tracer provider
func (p *jaegerTracerProvider) Shutdown(ctx context.Context) error {
	return p.provider.Shutdown(ctx)
}

// NewTracerProvider creates a jaeger backed trace provider reporting to url
func NewTracerProvider(ctx context.Context, url string, service string) (TracerProvider, error) {
	tp, err := newJaegerProvider(url, service)
	if err != nil {
		return nil, fmt.Errorf("jaeger exporter: %w", err)
	}

	otel.SetTracerProvider(tp)

	return &jaegerTracerProvider{
		context:  context.WithValue(ctx, JaegerContextName, JaegerContextName),
		provider: tp,
	}, nil
}

func convertTypeToAttribute(value interface{}) attribute.Value {
	switch v := value.(type) {
	case string:
		return attribute.StringValue(v)
	case int:
		return attribute.IntValue(v)
	case int64:
		return attribute.Int64Value(v)
	case uint64:
		return attribute.Int64Value(int64(v))
	case float64:
		return attribute.Float64Value(v)
	case bool:
		return attribute.BoolValue(v)
	case fmt.Stringer:
		return attribute.StringValue(v.String())
	default:
		return attribute.StringValue(fmt.Sprintf("%v", v))
	}
}
