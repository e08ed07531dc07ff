package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-scout/external/gamefeed"
	"github.com/riskibarqy/hoops-scout/internal/config"
	"github.com/riskibarqy/hoops-scout/internal/domain/career"
	"github.com/riskibarqy/hoops-scout/internal/domain/cohort"
	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
	"github.com/riskibarqy/hoops-scout/internal/domain/metrics"
	"github.com/riskibarqy/hoops-scout/internal/domain/potential"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	cacherepo "github.com/riskibarqy/hoops-scout/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/hoops-scout/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hoops-scout/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/hoops-scout/internal/interfaces/httpapi"
	"github.com/riskibarqy/hoops-scout/internal/observability"
	basecache "github.com/riskibarqy/hoops-scout/internal/platform/cache"
	idgen "github.com/riskibarqy/hoops-scout/internal/platform/id"
	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
	"github.com/riskibarqy/hoops-scout/internal/platform/resilience"
	"github.com/riskibarqy/hoops-scout/internal/usecase"
)

// Repositories groups the storage ports shared by every service.
type Repositories struct {
	Profiles   profile.Repository
	Identity   identity.Repository
	Baselines  cohort.Repository
	Metrics    metrics.Repository
	Potentials potential.Repository
	Careers    career.Repository
}

// Container holds the wired services of one process.
type Container struct {
	Config  config.Config
	Logger  *logging.Logger
	Metrics *observability.Metrics
	Levels  *cohort.Levels
	Repos   Repositories

	Ingestion *usecase.IngestionService
	Identity  *usecase.IdentityService
	Pipeline  *usecase.PipelineService
	Query     *usecase.QueryService

	db *sqlx.DB
}

// Build opens storage according to STORAGE_DRIVER and wires the services.
func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	levels, err := cohort.LoadLevels(cfg.CompetitionLevelsFile)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewMetrics(),
		Levels:  levels,
	}

	switch cfg.StorageDriver {
	case config.StorageMemory:
		profiles := memory.NewProfileRepository()
		scoring := memory.NewScoringRepository()
		c.Repos = Repositories{
			Profiles:   profiles,
			Identity:   memory.NewIdentityRepository(),
			Baselines:  scoring,
			Metrics:    scoring,
			Potentials: scoring,
			Careers:    scoring,
		}
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.db = db
		scoring := postgres.NewScoringRepository(db)
		c.Repos = Repositories{
			Profiles:   postgres.NewProfileRepository(db),
			Identity:   postgres.NewIdentityRepository(db),
			Baselines:  scoring,
			Metrics:    scoring,
			Potentials: scoring,
			Careers:    scoring,
		}
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		c.Repos.Profiles = cacherepo.NewProfileRepository(c.Repos.Profiles, store)
		c.Repos.Identity = cacherepo.NewIdentityRepository(c.Repos.Identity, store)
		c.Repos.Metrics = cacherepo.NewMetricsRepository(c.Repos.Metrics, store)
		c.Repos.Potentials = cacherepo.NewPotentialRepository(c.Repos.Potentials, store)
		c.Repos.Careers = cacherepo.NewCareerRepository(c.Repos.Careers, store)
	}

	c.Ingestion = usecase.NewIngestionService(c.Repos.Profiles, levels, usecase.IngestionConfig{
		BatchSize: cfg.PipelineBatchSize,
	}, logger)
	c.Identity = usecase.NewIdentityService(c.Repos.Profiles, c.Repos.Identity, usecase.IdentityConfig{
		MinCandidateScore:      cfg.PipelineMinCandidateScore,
		ConsolidationThreshold: cfg.PipelineConsolidationMinScore,
		BlockPrefixLen:         cfg.PipelineBlockPrefixLen,
		Workers:                cfg.PipelineWorkers,
		BatchSize:              cfg.PipelineBatchSize,
	}, logger)
	c.Pipeline = usecase.NewPipelineService(
		c.Repos.Profiles,
		c.Repos.Baselines,
		c.Repos.Metrics,
		c.Repos.Potentials,
		c.Repos.Careers,
		c.Identity,
		c.Metrics,
		idgen.NewUUIDGenerator(),
		usecase.PipelineConfig{
			BatchSize:     cfg.PipelineBatchSize,
			Workers:       cfg.PipelineWorkers,
			ReferenceYear: cfg.PipelineReferenceYear,
		},
		logger,
	)
	c.Query = usecase.NewQueryService(c.Repos.Profiles, c.Repos.Metrics, c.Repos.Potentials, c.Repos.Careers, c.Repos.Identity)

	logger.Info("app container built",
		"storage_driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"competition_levels", len(levels.Rules()),
	)
	return c, nil
}

// GameSource returns a file source when paths are given and the HTTP feed
// otherwise.
func (c *Container) GameSource(paths []string) (usecase.GameSource, error) {
	if len(paths) > 0 {
		return gamefeed.NewFileSource(c.Logger, paths...), nil
	}
	if strings.TrimSpace(c.Config.GameFeedBaseURL) == "" {
		return nil, fmt.Errorf("%w: no input files and GAMEFEED_BASE_URL is empty", usecase.ErrInvalidInput)
	}
	return gamefeed.NewClient(gamefeed.ClientConfig{
		BaseURL:    c.Config.GameFeedBaseURL,
		Token:      c.Config.GameFeedToken,
		Seasons:    c.Config.GameFeedSeasons,
		Timeout:    c.Config.GameFeedTimeout,
		MaxRetries: c.Config.GameFeedMaxRetries,
		Logger:     c.Logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          c.Config.GameFeedCircuitEnabled,
			FailureThreshold: c.Config.GameFeedCircuitFailureCount,
			OpenTimeout:      c.Config.GameFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   c.Config.GameFeedCircuitHalfOpenMaxReq,
		},
	}), nil
}

func (c *Container) NewHTTPServer() (*http.Server, error) {
	if strings.TrimSpace(c.Config.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	opts := httpapi.RouterOptions{CORSAllowedOrigins: c.Config.CORSAllowedOrigins}
	if c.Config.MetricsEnabled {
		opts.Metrics = c.Metrics.Handler()
		opts.Observer = c.Metrics
	}
	handler := httpapi.NewHandler(c.Query, c.Identity, c.Logger)

	return &http.Server{
		Addr:         c.Config.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, c.Logger, opts),
		ReadTimeout:  c.Config.ReadTimeout,
		WriteTimeout: c.Config.WriteTimeout,
	}, nil
}

func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
