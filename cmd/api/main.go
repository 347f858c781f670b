package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"docqa/docs"
	"docqa/internal/answer"
	"docqa/internal/config"
	"docqa/internal/database"
	"docqa/internal/database/migration"
	"docqa/internal/extract"
	handlers "docqa/internal/http/handler"
	"docqa/internal/http/middleware"
	"docqa/internal/logger"
	"docqa/internal/metrics"
	"docqa/internal/notify"
	"docqa/internal/otel"
	"docqa/internal/parser"
	"docqa/internal/progress"
	"docqa/internal/repository"
	"docqa/internal/repository/file"
	"docqa/internal/repository/memory"
	"docqa/internal/repository/postgres"
	"docqa/internal/service"
	"docqa/internal/state"
	"docqa/internal/storage"
)

// @title Document Q&A API
// @version 1.0
// @description Upload documents, extract their text and ask questions about them.
// @BasePath /
func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, otel.Config{
		ServiceName:    "docqa",
		ServiceVersion: docs.SwaggerInfo.Version,
		Environment:    cfg.Log.Env,
	}, zl)
	if err != nil {
		zl.Fatal("failed to initialize tracing", zap.Error(err))
	}

	repo, closeRepo, err := openStateRepository(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to open state backend", zap.String("backend", cfg.State.Backend), zap.Error(err))
	}
	defer closeRepo()

	ws := state.NewWorkspace(repo, zl)
	ws.Load(ctx)

	objStore, err := openObjectStorage(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize object storage", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics, err := metrics.New(reg)
	if err != nil {
		zl.Fatal("failed to register metrics", zap.Error(err))
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		zl.Fatal("failed to register http metrics", zap.Error(err))
	}

	extractor := extract.New(parser.NewLoader(parserFactory(cfg.Parser)), zl, appMetrics)

	tracker := progress.New(progress.Config{
		Interval:     cfg.Upload.Interval,
		Step:         cfg.Upload.Step,
		Ceiling:      cfg.Upload.Ceiling,
		SuccessGrace: cfg.Upload.SuccessGrace,
		ErrorGrace:   cfg.Upload.ErrorGrace,
	})
	defer tracker.Close()

	center := notify.New(notify.Durations{
		Default: cfg.Toast.Duration,
		Error:   cfg.Toast.ErrorDuration,
	}, zl)
	defer center.Close()

	answerCfg := answer.Config{
		URL:              cfg.OpenAI.URL,
		Model:            cfg.OpenAI.Model,
		MaxTokens:        cfg.OpenAI.MaxTokens,
		Temperature:      cfg.OpenAI.Temperature,
		MaxContentChars:  cfg.OpenAI.MaxContentChars,
		MaxContentTokens: cfg.OpenAI.MaxContentTokens,
		Timeout:          cfg.OpenAI.Timeout,
	}
	if answerCfg.MaxContentTokens > 0 {
		tok, err := answer.NewTiktoken(answerCfg.Model)
		if err != nil {
			zl.Warn("token budget disabled", zap.String("model", answerCfg.Model), zap.Error(err))
		} else {
			answerCfg.Tokenizer = tok
		}
	}
	remote := answer.NewClient(answerCfg, zl)

	docSvc := service.NewDocumentService(service.DocumentDeps{
		Workspace: ws,
		Storage:   objStore,
		Extractor: extractor,
		Tracker:   tracker,
		Notifier:  center,
		Metrics:   appMetrics,
		Logger:    zl,
	})
	qaSvc := service.NewQAService(service.QADeps{
		Workspace: ws,
		Answerer:  remote,
		Notifier:  center,
		Metrics:   appMetrics,
		Logger:    zl,
	})
	settingsSvc := service.NewSettingsService(service.SettingsDeps{
		Workspace: ws,
		Answerer:  remote,
		Notifier:  center,
		Logger:    zl,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyMB * 1024 * 1024,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(zl))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, handlers.Deps{
		Health:        ws,
		Documents:     docSvc,
		QA:            qaSvc,
		Settings:      settingsSvc,
		Notifications: center,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zl.Error("server shutdown", zap.Error(err))
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			zl.Error("tracing shutdown", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	zl.Info("listening", zap.String("addr", addr), zap.String("state_backend", cfg.State.Backend))
	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

// openStateRepository picks the workspace backend. The returned func releases it.
func openStateRepository(ctx context.Context, cfg *config.AppConfig, zl *zap.Logger) (repository.StateRepository, func(), error) {
	switch cfg.State.Backend {
	case "postgres":
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := migration.EnsureMigrated(ctx, db, zl, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewStatePostgres(db), func() { closeDB(db, zl) }, nil
	case "memory":
		return memory.NewStateMemory(), func() {}, nil
	case "file", "":
		repo, err := file.NewStateFile(cfg.State.Dir)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}

// openObjectStorage prefers MinIO. Without an endpoint, originals go to ObjectDir unless the
// whole workspace is in memory.
func openObjectStorage(ctx context.Context, cfg *config.AppConfig, zl *zap.Logger) (storage.Storage, error) {
	switch {
	case cfg.MinIO.Endpoint != "":
		return storage.NewMinIO(ctx, cfg.MinIO)
	case cfg.State.Backend == "memory":
		zl.Info("object storage endpoint not set, keeping originals in memory")
		return storage.NewMemory(), nil
	default:
		zl.Info("object storage endpoint not set, keeping originals on disk", zap.String("dir", cfg.State.ObjectDir))
		return storage.NewFile(cfg.State.ObjectDir)
	}
}

func closeDB(db *sql.DB, zl *zap.Logger) {
	if err := db.Close(); err != nil {
		zl.Warn("close database", zap.Error(err))
	}
}

func parserFactory(cfg config.ParserConfig) parser.Factory {
	if cfg.Backend == "docling" {
		client := &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
		return parser.NewDocling(cfg.DoclingURL, client)
	}
	return parser.NewNative
}
