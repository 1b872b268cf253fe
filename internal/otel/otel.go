package otel

import (
	"context"
	"sync"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/eventbus"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/events"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Setup configures OpenTelemetry and attaches eventbus subscribers.
// If endpoint is empty, no telemetry is configured.
func Setup(endpoint, service string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	exp, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(service),
		)),
	)
	otel.SetTracerProvider(tp)

	unsubscribe := Subscribe(tp.Tracer("gqlschema"))
	return func(ctx context.Context) error {
		unsubscribe()
		return tp.Shutdown(ctx)
	}, nil
}

// Subscribe turns build and field invocation events into spans of tracer.
// Resolved types are recorded as events on the build span.
func Subscribe(tracer trace.Tracer) (unsubscribe func()) {
	s := &subscriber{tracer: tracer}
	return s.register()
}

type fieldKey struct {
	id, typ, field string
}

type subscriber struct {
	tracer     trace.Tracer
	buildSpans sync.Map // build id -> trace.Span
	fieldSpans sync.Map // fieldKey -> trace.Span
}

func (s *subscriber) register() func() {
	unsubscribers := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.BuildStart) {
			_, span := s.tracer.Start(ctx, "schema.build")
			span.SetAttributes(
				attribute.String("schema.build.id", e.ID),
				attribute.StringSlice("schema.build.roots", e.Roots),
			)
			s.buildSpans.Store(e.ID, span)
		}),

		eventbus.Subscribe(func(_ context.Context, e events.TypeResolved) {
			v, ok := s.buildSpans.Load(e.BuildID)
			if !ok {
				return
			}
			v.(trace.Span).AddEvent("type.resolved", trace.WithAttributes(
				attribute.String("graphql.type.name", e.Name),
				attribute.String("graphql.type.kind", e.Kind),
				attribute.String("go.type", e.GoType),
				attribute.Bool("graphql.type.extension", e.Extension),
			))
		}),

		eventbus.Subscribe(func(_ context.Context, e events.BuildFinish) {
			v, ok := s.buildSpans.LoadAndDelete(e.ID)
			if !ok {
				return
			}
			span := v.(trace.Span)
			span.SetAttributes(attribute.Int("schema.build.types", e.Types))
			if e.Err != nil {
				span.RecordError(e.Err)
				span.SetStatus(codes.Error, e.Err.Error())
			}
			span.End()
		}),

		eventbus.Subscribe(func(ctx context.Context, e events.FieldInvokeStart) {
			_, span := s.tracer.Start(ctx, "graphql.field")
			span.SetAttributes(
				attribute.String("graphql.request.id", e.ID),
				attribute.String("graphql.field.type", e.Type),
				attribute.String("graphql.field.name", e.Field),
			)
			s.fieldSpans.Store(fieldKey{e.ID, e.Type, e.Field}, span)
		}),

		eventbus.Subscribe(func(_ context.Context, e events.FieldInvokeFinish) {
			v, ok := s.fieldSpans.LoadAndDelete(fieldKey{e.ID, e.Type, e.Field})
			if !ok {
				return
			}
			span := v.(trace.Span)
			if e.Err != nil {
				span.RecordError(e.Err)
				span.SetStatus(codes.Error, e.Err.Error())
			}
			span.End()
		}),
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}
