package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestShouldTraceRequest(t *testing.T) {
	tests := map[string]bool{
		"/healthz":                      false,
		" /Healthz ":                    false,
		"/readyz":                       false,
		"/metrics":                      false,
		"/v1/potentials":                true,
		"/v1/candidates/4/validation":   true,
		"/v1/careers/PEREZ%20JUAN|2001": true,
	}
	for path, want := range tests {
		if got := shouldTraceRequest(path); got != want {
			t.Fatalf("shouldTraceRequest(%q)=%v want %v", path, got, want)
		}
	}
}

func TestWithRoute_NamesSpanByPattern(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	mux := http.NewServeMux()
	handle(mux, "GET /v1/profiles/{profileID}/potential", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/profiles/42/potential", nil)
	ctx, span := tp.Tracer("test").Start(req.Context(), "GET /v1/profiles/42/potential")
	mux.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected one span, got %d", len(ended))
	}
	if got := ended[0].Name(); got != "GET /v1/profiles/{profileID}/potential" {
		t.Fatalf("span name=%q", got)
	}
	want := attribute.String("http.route", "/v1/profiles/{profileID}/potential")
	found := false
	for _, kv := range ended[0].Attributes() {
		if kv == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing %v in %v", want, ended[0].Attributes())
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantVary   bool
	}{
		{name: "listed origin", allowed: []string{" https://scouting.example.com "}, method: http.MethodGet, origin: "https://scouting.example.com", wantStatus: http.StatusOK, wantOrigin: "https://scouting.example.com", wantVary: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://scouting.example.com", wantStatus: http.StatusNoContent, wantOrigin: "*"},
		{name: "unlisted origin", allowed: []string{"https://scouting.example.com"}, method: http.MethodPost, origin: "https://evil.example.com", wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/candidates", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status=%d want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin=%q want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Fatalf("Vary=%q", rec.Header().Get("Vary"))
			}
		})
	}
}
