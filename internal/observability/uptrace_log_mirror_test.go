package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
)

func TestIsQuietAccessLog(t *testing.T) {
	tests := []struct {
		msg  string
		args []any
		want bool
	}{
		{msg: "http_request", args: []any{"http_method", "GET", "http_path", "/healthz"}, want: true},
		{msg: "http_request", args: []any{"http_path", "/metrics"}, want: true},
		{msg: "http_request", args: []any{"http_path", "/v1/potentials"}, want: false},
		{msg: "pipeline stage finished", args: []any{"http_path", "/healthz"}, want: false},
		{msg: "http_request", args: []any{"http_path"}, want: false},
	}
	for _, tt := range tests {
		if got := isQuietAccessLog(tt.msg, tt.args); got != tt.want {
			t.Fatalf("isQuietAccessLog(%q, %v)=%v want %v", tt.msg, tt.args, got, tt.want)
		}
	}
}

func TestLogArgsToOTel(t *testing.T) {
	attrs := logArgsToOTel([]any{"season", "2023/2024", 7, "unnamed", "rows", uint16(120), "candidate_id"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "season" || attrs[0].Value.AsString() != "2023/2024" {
		t.Fatalf("unexpected season attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "arg_1" || attrs[1].Value.AsString() != "unnamed" {
		t.Fatalf("non-string key should get a positional name: %+v", attrs[1])
	}
	if attrs[2].Key != "rows" || attrs[2].Value.AsInt64() != 120 {
		t.Fatalf("unexpected rows attribute: %+v", attrs[2])
	}
	if attrs[3].Key != "candidate_id" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("dangling key should be empty: %+v", attrs[3])
	}
}

func TestToOTelLogValue(t *testing.T) {
	score := 0.61
	tests := []struct {
		name  string
		value any
		kind  otellog.Kind
	}{
		{name: "float", value: 0.875, kind: otellog.KindFloat64},
		{name: "pointer", value: &score, kind: otellog.KindFloat64},
		{name: "bool", value: true, kind: otellog.KindBool},
		{name: "duration", value: 1500 * time.Millisecond, kind: otellog.KindString},
		{name: "error", value: errors.New("feed status=503"), kind: otellog.KindString},
		{name: "slice", value: []int64{3, 4}, kind: otellog.KindSlice},
		{name: "map", value: map[string]any{"points": 21, "eligible": true}, kind: otellog.KindMap},
		{name: "nil", value: nil, kind: otellog.KindEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toOTelLogValue(tt.value, 0).Kind(); got != tt.kind {
				t.Fatalf("kind=%s want %s", got, tt.kind)
			}
		})
	}
}
