package tracer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDetectOperation(t *testing.T) {
	tests := []struct {
		sql      string
		expected string
	}{
		{"SELECT * FROM users", "SELECT"},
		{"  select 1", "SELECT"},
		{"WITH cte AS (SELECT 1) SELECT * FROM cte", "SELECT"},
		{"INSERT INTO users (name) VALUES (?)", "INSERT"},
		{"UPDATE users SET name = ?", "UPDATE"},
		{"DELETE FROM users", "DELETE"},
		{"REPLACE INTO users (id) VALUES (?)", "REPLACE"},
		{"CREATE TABLE users (id INTEGER)", "UNKNOWN"},
		{"", "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected+"/"+tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectOperation(tt.sql))
		})
	}
}

func TestNoopTracer(t *testing.T) {
	tracer := &NoopTracer{}
	ctx := context.Background()

	gotCtx, span := tracer.StartSpan(ctx, "query.execute")

	assert.Equal(t, ctx, gotCtx)
	// Every span operation is a safe no-op.
	span.SetAttributes(attribute.String("k", "v"))
	span.RecordError(errors.New("ignored"))
	span.SetStatus(codes.Error, "ignored")
	span.End()
}

// newRecordingTracer wires the adapter to an in-memory span exporter.
func newRecordingTracer() (*OtelTracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewOtelTracer(provider.Tracer("test")), recorder
}

func TestOtelTracer_SuccessAttributes(t *testing.T) {
	tracer, recorder := newRecordingTracer()

	_, span := tracer.StartSpan(context.Background(), "query.execute")
	AddQueryAttributes(span, &QueryMetadata{
		SQL:          "SELECT * FROM users",
		Duration:     25 * time.Millisecond,
		RowsAffected: 3,
		Database:     "mysql",
		Operation:    "SELECT",
	})
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	got := spans[0]
	assert.Equal(t, "query.execute", got.Name())
	assert.Equal(t, codes.Ok, got.Status().Code)

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range got.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "mysql", attrs["db.system"].AsString())
	assert.Equal(t, "SELECT * FROM users", attrs["db.statement"].AsString())
	assert.Equal(t, "SELECT", attrs["db.operation"].AsString())
	assert.Equal(t, int64(3), attrs["db.rows_affected"].AsInt64())
	assert.Equal(t, int64(25), attrs["db.duration_ms"].AsInt64())
}

func TestOtelTracer_ErrorRecording(t *testing.T) {
	tracer, recorder := newRecordingTracer()
	queryErr := errors.New("syntax error")

	_, span := tracer.StartSpan(context.Background(), "query.execute")
	AddQueryAttributes(span, &QueryMetadata{
		SQL:       "SELEC *",
		Database:  "mysql",
		Operation: "UNKNOWN",
		Error:     queryErr,
	})
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	got := spans[0]
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "syntax error", got.Status().Description)
	require.Len(t, got.Events(), 1)
	assert.Equal(t, "exception", got.Events()[0].Name)
}
