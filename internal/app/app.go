package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"stocknews/internal/config"
	"stocknews/internal/infrastructure/httpapi"
	"stocknews/internal/infrastructure/imagegen"
	"stocknews/internal/infrastructure/llm"
	"stocknews/internal/infrastructure/objectstore"
	"stocknews/internal/infrastructure/scheduler"
	"stocknews/internal/infrastructure/sources"
	"stocknews/internal/infrastructure/storage"
	"stocknews/internal/logging"
	"stocknews/internal/metrics"
	"stocknews/internal/ports"
	"stocknews/internal/sanitize"
	"stocknews/internal/scrape"
	"stocknews/internal/usecase"
)

// Application wires configuration into the pipeline, the scheduler and the
// HTTP surface, and owns their lifecycle.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	repo      *storage.PostgresRepository
	gemini    *llm.Client
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
	server    *httpapi.Server
}

// New builds a runnable application instance. The Gemini client and the S3
// uploader are optional: without credentials the pipeline degrades to its
// fallback paths instead of refusing to start.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	repo, err := storage.NewPostgresRepository(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := repo.InitSchema(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	source := buildSource(cfg, m, baseLogger)

	var gemini *llm.Client
	var content ports.ContentGenerator
	var oracle ports.SelectionOracle
	if cfg.Gemini.APIKey != "" {
		gemini, err = llm.NewClient(ctx, cfg.Gemini, baseLogger.With("component", "llm"))
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		content = gemini
		oracle = gemini
	} else {
		baseLogger.Warn("gemini api key is not set, content generation is disabled")
	}

	var images ports.ImageGenerator
	if cfg.Images.ImagenURL != "" || cfg.Images.PexelsAPIKey != "" {
		images = imagegen.NewService(cfg.Images, cfg.Gemini.APIKey, baseLogger.With("component", "imagegen"))
	}

	var uploader ports.ObjectUploader
	if cfg.S3.Bucket != "" {
		s3, err := objectstore.NewS3Uploader(ctx, cfg.S3)
		if err != nil {
			baseLogger.Warn("s3 uploader unavailable, using fallback image", "error", err)
		} else {
			uploader = s3
		}
	}

	selector := usecase.NewSelector(oracle, cfg.Selection.TopK, m, baseLogger.With("component", "selector"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:        source,
		Repository:    repo,
		Selector:      selector,
		Content:       content,
		Images:        images,
		Uploader:      uploader,
		Sanitizer:     sanitize.New(),
		Metrics:       m,
		Logger:        baseLogger.With("component", "pipeline"),
		Location:      cfg.Scheduler.Location(),
		FallbackImage: cfg.Images.FallbackImage,
	})

	cron := scheduler.New(cfg.Scheduler.CronExpression, cfg.Scheduler.Location())
	sched := usecase.NewScheduler(cron, pipeline, baseLogger.With("component", "scheduler"))

	handler := httpapi.NewHandler(repo, pipeline, baseLogger.With("component", "http"))
	server := httpapi.NewServer(cfg.Server.Addr, handler, registry, baseLogger.With("component", "http"))

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		repo:      repo,
		gemini:    gemini,
		pipeline:  pipeline,
		scheduler: sched,
		server:    server,
	}, nil
}

// buildSource registers every adapter and resolves the enabled subset in
// configuration order, which fixes the flattening order of candidates.
func buildSource(cfg config.Config, m *metrics.Metrics, baseLogger *slog.Logger) ports.ArticleSource {
	fetcher := sources.NewFetcher(
		&http.Client{Timeout: cfg.Scrape.Timeout},
		cfg.Scrape.UserAgent,
		baseLogger.With("component", "fetcher"),
	)

	registry := scrape.NewRegistry()
	limit := cfg.Scrape.PerSectionCap
	registry.Register(sources.NewMoneyControl(fetcher, limit))
	registry.Register(sources.NewEconomicTimes(fetcher, limit))
	registry.Register(sources.NewLiveMint(fetcher, limit))
	registry.Register(sources.NewBusinessStandard(fetcher, limit))
	registry.Register(sources.NewYahooFinance(fetcher, limit))
	registry.Register(sources.NewInvesting(fetcher, limit))
	registry.Register(sources.NewCNBC(fetcher, limit))
	registry.Register(sources.NewReuters(fetcher, limit))
	registry.Register(sources.NewETMarketsRSS(limit))

	var enabled []scrape.Source
	for _, name := range cfg.Scrape.EnabledSources {
		src, err := registry.Resolve(name)
		if err != nil {
			baseLogger.Warn("skipping unknown source", "source", name)
			continue
		}
		enabled = append(enabled, src)
	}

	return scrape.NewAggregator(enabled, m, baseLogger.With("component", "aggregator"))
}

// Start launches the scheduler and blocks serving HTTP until Shutdown.
func (a *Application) Start(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started",
		"cron", a.cfg.Scheduler.CronExpression,
		"timezone", a.cfg.Scheduler.Timezone)

	return a.server.Start()
}

// Shutdown tears down the scheduler, the HTTP server and shared clients.
func (a *Application) Shutdown(ctx context.Context) error {
	var firstErr error

	if err := a.scheduler.Stop(ctx); err != nil {
		firstErr = err
	}
	if err := a.server.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if a.gemini != nil {
		a.gemini.Close()
	}
	if err := a.repo.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
