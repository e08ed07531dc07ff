package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/hoops-scout/internal/app"
	"github.com/riskibarqy/hoops-scout/internal/config"
	"github.com/riskibarqy/hoops-scout/internal/observability"
	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
	"github.com/riskibarqy/hoops-scout/internal/usecase"
)

func main() {
	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, shutdownLogs, err := observability.InitBetterStackLogger(cfg, logging.NewJSON(cfg.LogLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	logger = logger.With("command", cmd.name)

	os.Exit(execute(cfg, cmd, logger, shutdownLogs))
}

func execute(cfg config.Config, cmd command, logger *logging.Logger, shutdownLogs func(context.Context) error) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	stopProfiler, err := observability.InitPyroscope(cfg, "pipeline", logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}

	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}

	var metricsHandler = container.Metrics.Handler()
	if !cfg.MetricsEnabled {
		metricsHandler = nil
	}
	pprofSrv, err := observability.StartPprofServer(cfg, logger, metricsHandler)
	if err != nil {
		logger.Error("start pprof", "error", err)
		return 1
	}

	started := time.Now()
	code := 0
	if err := dispatch(ctx, container, cmd, os.Stdout); err != nil {
		logger.Error("command failed", "error", err, "duration_ms", time.Since(started).Milliseconds())
		code = exitCode(err)
	} else {
		logger.Info("command finished", "duration_ms", time.Since(started).Milliseconds())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := container.Close(); err != nil {
		logger.Error("close storage", "error", err)
	}
	if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
		logger.Error("stop pprof", "error", err)
	}
	if err := stopProfiler(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}
	_ = shutdownLogs(shutdownCtx)
	return code
}

func dispatch(ctx context.Context, c *app.Container, cmd command, out io.Writer) error {
	switch cmd.name {
	case cmdIngest:
		source, err := c.GameSource(cmd.paths)
		if err != nil {
			return err
		}
		report, err := c.Ingestion.Ingest(ctx, source)
		if err != nil {
			return err
		}
		return printJSON(out, report)
	case cmdRun:
		report, err := c.Pipeline.Run(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, report)
	case cmdCandidates:
		if cmd.generate {
			report, err := c.Identity.GenerateCandidates(ctx)
			if err != nil {
				return err
			}
			return printJSON(out, report)
		}
		items, err := c.Query.ListCandidates(ctx, usecase.CandidateQuery{
			Status:   cmd.status,
			MinScore: cmd.minScore,
			Limit:    cmd.limit,
		})
		if err != nil {
			return err
		}
		return printJSON(out, items)
	case cmdValidate:
		item, err := c.Identity.Validate(ctx, usecase.ValidateCandidateInput{
			CandidateID: cmd.id,
			Status:      cmd.status,
			By:          cmd.by,
			Notes:       cmd.notes,
		})
		if err != nil {
			return err
		}
		return printJSON(out, item)
	case cmdConsolidate:
		report, err := c.Identity.Consolidate(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, report)
	case cmdStats:
		stats, err := c.Query.CandidateStats(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, stats)
	case cmdPotential:
		if cmd.id > 0 {
			item, err := c.Query.GetProfilePotential(ctx, cmd.id, cmd.season)
			if err != nil {
				return err
			}
			return printJSON(out, item)
		}
		items, err := c.Query.ListByPotential(ctx, cmd.minScore, cmd.limit)
		if err != nil {
			return err
		}
		return printJSON(out, items)
	case cmdProfile:
		p, err := c.Query.GetProfile(ctx, cmd.id)
		if err != nil {
			return err
		}
		m, err := c.Query.GetProfileMetrics(ctx, cmd.id, cmd.season)
		if err != nil && !errors.Is(err, usecase.ErrNotFound) {
			return err
		}
		return printJSON(out, map[string]any{"profile": p, "metrics": m})
	case cmdCareer:
		if cmd.key != "" {
			item, err := c.Query.GetCareer(ctx, cmd.key)
			if err != nil {
				return err
			}
			return printJSON(out, item)
		}
		items, err := c.Query.ListCareers(ctx, cmd.minScore, cmd.limit)
		if err != nil {
			return err
		}
		return printJSON(out, items)
	default:
		return fmt.Errorf("%w: unknown command %q", usecase.ErrInvalidInput, cmd.name)
	}
}

func printJSON(out io.Writer, v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	raw = append(raw, '\n')
	_, err = out.Write(raw)
	return err
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return 2
	case errors.Is(err, usecase.ErrNotFound):
		return 3
	case errors.Is(err, usecase.ErrConflict):
		return 4
	default:
		return 1
	}
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <command> [flags]\n", name)
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  ingest [file ...]          load game rows from files, or from GAMEFEED_BASE_URL")
	fmt.Fprintln(w, "  run                        baselines, metrics, potentials, candidates, consolidation, careers")
	fmt.Fprintln(w, "  candidates [-generate]     list or regenerate identity candidates")
	fmt.Fprintln(w, "  validate -id N -status S   record a review decision")
	fmt.Fprintln(w, "  consolidate                merge confirmed candidates into player keys")
	fmt.Fprintln(w, "  stats                      candidate counts by status and confidence")
	fmt.Fprintln(w, "  potential [-id N]          one profile's potential, or the ranked list")
	fmt.Fprintln(w, "  profile -id N              profile with its season metrics")
	fmt.Fprintln(w, "  career [-key K]            one career, or the ranked list")
	fmt.Fprintln(w, "examples:")
	fmt.Fprintf(w, "  %s ingest data/games.jsonl\n", name)
	fmt.Fprintf(w, "  %s candidates -status pending -min-score 0.8 -limit 20\n", name)
	fmt.Fprintf(w, "  %s validate -id 42 -status confirmed -by analyst -notes \"same birth year\"\n", name)
}
