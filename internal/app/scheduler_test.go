package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
	"github.com/riskibarqy/hoops-scout/internal/usecase"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) Run(context.Context) (usecase.RunReport, error) {
	r.calls.Add(1)
	return usecase.RunReport{RunID: "run-1"}, r.err
}

func TestNewScheduler_RejectsBadSpec(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{"", "   ", "every tuesday"} {
		if _, err := NewScheduler(spec, &countingRunner{}, logging.NewNop()); !errors.Is(err, usecase.ErrInvalidInput) {
			t.Fatalf("spec %q: expected invalid input, got %v", spec, err)
		}
	}
}

func TestScheduler_TickRunsPipeline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "success"},
		{name: "conflict", err: usecase.ErrConflict},
		{name: "failure", err: errors.New("db down")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &countingRunner{err: tt.err}
			s, err := NewScheduler("@every 1h", runner, logging.NewNop())
			if err != nil {
				t.Fatalf("new scheduler: %v", err)
			}
			s.tick()
			s.Stop()
			if got := runner.calls.Load(); got != 1 {
				t.Fatalf("expected one run, got %d", got)
			}
		})
	}
}
