package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
	"github.com/riskibarqy/hoops-scout/internal/usecase"
	"github.com/robfig/cron/v3"
)

const schedulerStopTimeout = 30 * time.Second

type pipelineRunner interface {
	Run(ctx context.Context) (usecase.RunReport, error)
}

// Scheduler triggers pipeline runs on a cron spec. Overlapping ticks are
// skipped while a run is still in progress.
type Scheduler struct {
	cron   *cron.Cron
	runner pipelineRunner
	logger *logging.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler(spec string, runner pipelineRunner, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("%w: pipeline schedule is empty", usecase.ErrInvalidInput)
	}

	cronLogger := cronLogAdapter{logger: logger.With("component", "pipeline_scheduler")}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		runner: runner,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: pipeline schedule %q: %v", usecase.ErrInvalidInput, spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, entry := range s.cron.Entries() {
		s.logger.Info("pipeline scheduler started", "next_run", entry.Next.UTC().Format(time.RFC3339))
	}
}

// Stop waits for a running pipeline to finish, cancelling it after the stop
// timeout.
func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(schedulerStopTimeout):
		s.logger.Warn("pipeline scheduler stop timed out, cancelling run")
	}
	s.cancel()
}

func (s *Scheduler) tick() {
	report, err := s.runner.Run(s.ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrConflict) {
			s.logger.Warn("scheduled pipeline run skipped", "reason", err.Error())
			return
		}
		s.logger.Error("scheduled pipeline run failed", "run_id", report.RunID, "error", err)
		return
	}
	s.logger.Info("scheduled pipeline run finished",
		"run_id", report.RunID,
		"profiles", report.Profiles,
		"potentials", report.Potentials,
		"careers", report.Careers,
	)
}

type cronLogAdapter struct {
	logger *logging.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
