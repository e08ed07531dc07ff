package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/hoops-scout/internal/config"
	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
)

func TestNewDebugMux(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hoops_pipeline_runs_total 1\n"))
	})

	tests := []struct {
		name    string
		metrics http.Handler
		path    string
		want    int
	}{
		{name: "pprof index", path: "/debug/pprof/", want: http.StatusOK},
		{name: "metrics mounted", metrics: metrics, path: "/metrics", want: http.StatusOK},
		{name: "metrics absent", path: "/metrics", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newDebugMux(tt.metrics).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Fatalf("GET %s status=%d want %d", tt.path, rec.Code, tt.want)
			}
		})
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop(), nil)
	if err != nil || srv != nil {
		t.Fatalf("expected no server, got srv=%v err=%v", srv, err)
	}
	if err := StopPprofServer(nil, nil, 0); err != nil {
		t.Fatalf("stop nil server: %v", err)
	}
}
