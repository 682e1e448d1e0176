package telemetry

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestToAttribute(t *testing.T) {
	id := uuid.MustParse("6f1c1d2e-3b4a-4c5d-8e9f-0a1b2c3d4e5f")

	tests := []struct {
		name  string
		value any
		want  attribute.KeyValue
	}{
		{"string", "pan", attribute.String("k", "pan")},
		{"bool", true, attribute.Bool("k", true)},
		{"int", 3, attribute.Int("k", 3)},
		{"int64", int64(5 << 20), attribute.Int64("k", 5<<20)},
		{"float", 1.5, attribute.Float64("k", 1.5)},
		{"stringer", id, attribute.String("k", id.String())},
		{"fallback", []int{1, 2}, attribute.String("k", "[1 2]")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toAttribute("k", tt.value))
		})
	}
}

func TestAddEvent(t *testing.T) {
	restoreGlobalTracer(t)
	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewTracerProvider(context.Background(), enabledConfig(), zap.NewNop(), WithSpanExporter(exporter))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := StartSpan(context.Background(), "document.upload")
	AddEvent(span, "stored", "key", "pan/abc.pdf", "size", 1024, 42, "ignored")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	ev := spans[0].Events[0]
	assert.Equal(t, "stored", ev.Name)
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("key", "pan/abc.pdf"),
		attribute.Int("size", 1024),
	}, ev.Attributes)
}

func TestRecordError_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(nil, assert.AnError)
		_, span := StartSpan(context.Background(), "noop")
		RecordError(span, nil)
		AddEvent(nil, "x")
		span.End()
	})
}
