package otel_test

import (
	"context"
	"errors"
	"testing"

	"todos/infras/otel"
	"todos/infras/otel/mocks"
	"todos/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "service.Get")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"todo.id":   int64(7),
		"cache.hit": false,
		"title":     "milk",
	})
	scope.AddEvent("Todo retrieved")
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("boom"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	ended := spans[0]
	assert.Equal(t, "service.Get", ended.Name())
	assert.Equal(t, codes.Error, ended.Status().Code)
	assert.Equal(t, "boom", ended.Status().Description)
	assert.Contains(t, ended.Attributes(), attribute.Int64("todo.id", 7))
	assert.Contains(t, ended.Attributes(), attribute.Bool("cache.hit", false))
	assert.Contains(t, ended.Attributes(), attribute.String("title", "milk"))

	names := []string{}
	for _, event := range ended.Events() {
		names = append(names, event.Name)
	}

	assert.Contains(t, names, "Todo retrieved")
}

func TestScope_ClientFailureKeepsStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "service.Delete")
	scope := otel.NewScope(span)

	scope.SetAttribute("todo.id", int64(42))
	scope.TraceIfError(failure.NotFound("todo not found"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	ended := spans[0]
	assert.Equal(t, codes.Unset, ended.Status().Code)
	require.Len(t, ended.Events(), 1)
	assert.Equal(t, "client failure", ended.Events()[0].Name)
	assert.Contains(t, ended.Events()[0].Attributes, attribute.Int("failure.code", 404))
}

func TestMockOtel(t *testing.T) {
	ctx, scope := mocks.NewOtel().NewScope(context.Background(), "todo", "service.Get")

	assert.NotNil(t, ctx)
	assert.NotPanics(t, func() {
		scope.SetAttributes(map[string]any{"todo.id": int64(1)})
		scope.TraceIfError(errors.New("boom"))
		scope.End()
	})
	assert.NotPanics(t, func() { mocks.NewScope().End() })
	require.NoError(t, mocks.NewOtel().Shutdown(context.Background()))
}
