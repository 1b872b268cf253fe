package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zongwei007/graphql-schema-builder-sub000/internal/eventbus"
	"github.com/zongwei007/graphql-schema-builder-sub000/internal/events"
)

func TestSetupWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup("", "test")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSubscribeRecordsSpans(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	unsubscribe := Subscribe(tp.Tracer("test"))
	defer unsubscribe()

	ctx := context.Background()
	eventbus.Publish(ctx, events.BuildStart{ID: "b1", Roots: []string{"main.Query"}})
	eventbus.Publish(ctx, events.TypeResolved{BuildID: "b1", Name: "Query", Kind: "OBJECT", GoType: "main.Query"})
	eventbus.Publish(ctx, events.BuildFinish{ID: "b1", Types: 1})
	eventbus.Publish(ctx, events.FieldInvokeStart{ID: "r1", Type: "Query", Field: "hero"})
	eventbus.Publish(ctx, events.FieldInvokeFinish{ID: "r1", Type: "Query", Field: "hero", Err: errors.New("boom")})

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	build := spans[0]
	require.Equal(t, "schema.build", build.Name())
	require.Len(t, build.Events(), 1)
	require.Equal(t, "type.resolved", build.Events()[0].Name)

	field := spans[1]
	require.Equal(t, "graphql.field", field.Name())
	require.Equal(t, codes.Error, field.Status().Code)
}

func TestUnsubscribeStopsRecording(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	Subscribe(tp.Tracer("test"))()

	ctx := context.Background()
	eventbus.Publish(ctx, events.BuildStart{ID: "b1"})
	eventbus.Publish(ctx, events.BuildFinish{ID: "b1"})
	require.Empty(t, recorder.Ended())
}
