package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/hoops-scout/internal/config"
	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
)

type betterStackSink struct {
	mu      sync.Mutex
	auth    []string
	records []map[string]any
}

func (s *betterStackSink) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var batch []map[string]any
		if err := sonic.Unmarshal(body, &batch); err != nil {
			t.Errorf("batch is not a JSON array: %v (%s)", err, body)
		}
		s.mu.Lock()
		s.auth = append(s.auth, r.Header.Get("Authorization"))
		s.records = append(s.records, batch...)
		s.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}
}

func betterStackConfig(endpoint string) config.Config {
	return config.Config{
		BetterStackEnabled:  true,
		BetterStackEndpoint: endpoint,
		BetterStackToken:    "secret-token",
		BetterStackTimeout:  2 * time.Second,
		BetterStackMinLevel: logging.LevelWarn,
		LogLevel:            logging.LevelInfo,
		ServiceName:         "hoops-scout-pipeline",
		AppEnv:              config.EnvDev,
	}
}

func TestInitBetterStackLogger_ShipsBatchAboveMinLevel(t *testing.T) {
	t.Parallel()

	sink := &betterStackSink{}
	server := httptest.NewServer(sink.handler(t))
	defer server.Close()

	logger, shutdown, err := InitBetterStackLogger(betterStackConfig(server.URL), logging.NewNop())
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	ctx := context.Background()
	logger.InfoContext(ctx, "pipeline stage started", "stage", "potentials")
	logger.WarnContext(ctx, "game row rejected", "row", 3)
	logger.ErrorContext(ctx, "pipeline stage failed", "stage", "potentials")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.records) != 2 {
		t.Fatalf("expected warn and error records, got %v", sink.records)
	}
	for _, auth := range sink.auth {
		if auth != "Bearer secret-token" {
			t.Fatalf("unexpected authorization header: %q", auth)
		}
	}
	if sink.records[0]["msg"] != "game row rejected" || sink.records[1]["msg"] != "pipeline stage failed" {
		t.Fatalf("records out of order: %v", sink.records)
	}
	if sink.records[1]["service"] != "hoops-scout-pipeline" || sink.records[1]["environment"] != config.EnvDev {
		t.Fatalf("expected service identity on shipped record: %v", sink.records[1])
	}
}

func TestInitBetterStackLogger_DisabledReturnsBase(t *testing.T) {
	base := logging.NewNop()
	logger, shutdown, err := InitBetterStackLogger(config.Config{}, base)
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}
	if logger != base {
		t.Fatalf("expected base logger when shipping is disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNormalizeBetterStackEndpoint(t *testing.T) {
	tests := map[string]string{
		"":                                "",
		"  in.logs.betterstack.com ":      "https://in.logs.betterstack.com",
		"http://localhost:8080":           "http://localhost:8080",
		"https://in.logs.betterstack.com": "https://in.logs.betterstack.com",
	}
	for in, want := range tests {
		if got := normalizeBetterStackEndpoint(in); got != want {
			t.Fatalf("normalize(%q)=%q want %q", in, got, want)
		}
	}
}
