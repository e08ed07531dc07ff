package httpapi

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "GetCareer")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.IsRecording() {
		t.Fatalf("expected a non-recording span for untraced requests")
	}
}

func TestMarkSpanError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		err        error
		wantStatus codes.Code
		wantEvents int
	}{
		{name: "server failure", status: http.StatusInternalServerError, err: errors.New("db down"), wantStatus: codes.Error, wantEvents: 1},
		{name: "dependency unavailable", status: http.StatusServiceUnavailable, err: errors.New("feed open"), wantStatus: codes.Error, wantEvents: 1},
		{name: "client error", status: http.StatusNotFound, err: errors.New("career not found"), wantStatus: codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
			ctx, span := tp.Tracer("test").Start(context.Background(), "GET /v1/careers/{playerKey}")

			markSpanError(ctx, tt.status, tt.err)
			span.End()

			ended := recorder.Ended()
			if len(ended) != 1 {
				t.Fatalf("expected one ended span, got %d", len(ended))
			}
			if got := ended[0].Status().Code; got != tt.wantStatus {
				t.Fatalf("span status=%v want=%v", got, tt.wantStatus)
			}
			if got := len(ended[0].Events()); got != tt.wantEvents {
				t.Fatalf("span events=%d want=%d", got, tt.wantEvents)
			}
		})
	}
}
