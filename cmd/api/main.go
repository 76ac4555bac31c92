// Package main is the entrypoint for the Vitrine API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vitrine/vitrine/internal/analytics"
	"github.com/vitrine/vitrine/internal/cache"
	"github.com/vitrine/vitrine/internal/config"
	"github.com/vitrine/vitrine/internal/handler"
	"github.com/vitrine/vitrine/internal/metrics"
	"github.com/vitrine/vitrine/internal/middleware"
	"github.com/vitrine/vitrine/internal/repository"
	"github.com/vitrine/vitrine/internal/server"
	"github.com/vitrine/vitrine/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	metricsRecorder := metrics.NewInMemory()

	// Visit pipeline: publisher feeds the stream, worker drains it.
	visitRepo := repository.NewVisitRepository(repo)
	publisher := analytics.NewPublisher(cacheClient.Client(), logger, metricsRecorder)

	workerCtx, workerCancel := context.WithCancel(ctx)
	defer workerCancel()

	var worker *analytics.Worker
	if cfg.VisitWorkerEnabled {
		worker = analytics.NewWorker(cacheClient.Client(), visitRepo, logger, analytics.NewConsumerID(), metricsRecorder)
		worker.SetBatchSize(cfg.VisitWorkerBatchSize)
		go func() {
			if err := worker.Run(workerCtx); err != nil {
				logger.Error("visit worker stopped", "error", err)
			}
		}()
		logger.Info("visit worker started", "batch_size", cfg.VisitWorkerBatchSize)
	} else {
		logger.Warn("visit worker disabled; visit events will accumulate in the stream")
	}

	reportService := service.NewReportService(visitRepo, logger, metricsRecorder)
	statsService := service.NewStatsService(repo, logger)

	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)
	trackHandler := handler.NewTrackHandler(publisher, logger)
	analyticsHandler := handler.NewAnalyticsHandler(reportService, logger)
	statsHandler := handler.NewStatsHandler(statsService)
	singletonHandler := handler.NewSingletonHandler(repo, cacheClient, logger, metricsRecorder)
	contentHandler := handler.NewContentHandler(repo, logger, metricsRecorder)
	authHandler := handler.NewAuthHandler(cacheClient, cfg.OwnerEmail, cfg.OwnerPasswordHash, cfg.SessionTTL, logger)

	r := setupRouter(routerDeps{
		base:      h,
		health:    healthHandler,
		metrics:   metricsHandler,
		track:     trackHandler,
		analytics: analyticsHandler,
		stats:     statsHandler,
		singleton: singletonHandler,
		content:   contentHandler,
		auth:      authHandler,
		cache:     cacheClient,
		cfg:       cfg,
		logger:    logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Worker drains in-flight batches before the pool and Redis close.
	if worker != nil {
		srv.OnShutdown("visit_worker", func(ctx context.Context) error {
			workerCancel()
			return worker.Shutdown(ctx)
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base      *handler.Handler
	health    *handler.HealthHandler
	metrics   *handler.MetricsHandler
	track     *handler.TrackHandler
	analytics *handler.AnalyticsHandler
	stats     *handler.StatsHandler
	singleton *handler.SingletonHandler
	content   *handler.ContentHandler
	auth      *handler.AuthHandler
	cache     *cache.Cache
	cfg       *config.Config
	logger    *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      d.cfg.IsDevelopment(),
		MaxRequestBodySize: d.cfg.MaxRequestBodySize,
	}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Operational endpoints (no auth required)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metrics.Metrics)

	authCfg := middleware.AuthConfig{
		Logger: d.logger,
		Cache:  d.cache,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:     d.logger,
		Cache:      d.cache,
		LoginRPM:   d.cfg.LoginRateLimitRPM,
		LoginBurst: d.cfg.LoginRateLimitBurst,
	}

	r.Route("/api", func(r chi.Router) {
		// Visit tracking is public and must never fail the caller, so the
		// body-size cap stays off this route; the handler bounds its own read.
		r.Post("/analytics/track", d.track.Track)

		// Every other API route rejects oversized bodies up front.
		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))

			// Dashboard analytics (owner only)
			r.With(middleware.Auth(authCfg)).Get("/analytics", d.analytics.Report)
			r.With(middleware.Auth(authCfg)).Get("/dashboard/stats", d.stats.Stats)

			// Auth
			r.Route("/auth", func(r chi.Router) {
				r.With(middleware.RateLimitLogin(rateLimitCfg)).Post("/login", d.auth.Login)
				r.With(middleware.Auth(authCfg)).Post("/logout", d.auth.Logout)
				r.With(middleware.Auth(authCfg)).Get("/user", d.auth.User)
			})

			// Singleton content: public reads, owner-only writes
			r.Route("/personal-info", func(r chi.Router) {
				r.Get("/", d.singleton.GetPersonalInfo)
				r.With(middleware.Auth(authCfg)).Post("/", d.singleton.UpsertPersonalInfo)
			})
			r.Route("/contact-details", func(r chi.Router) {
				r.Get("/", d.singleton.GetContactDetails)
				r.With(middleware.Auth(authCfg)).Post("/", d.singleton.UpsertContactDetails)
			})

			// Collection content: public reads, owner-only mutations
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", d.content.ListProjects)
				r.Get("/{id}", d.content.GetProject)
				r.With(middleware.Auth(authCfg)).Post("/", d.content.CreateProject)
				r.With(middleware.Auth(authCfg)).Put("/{id}", d.content.UpdateProject)
				r.With(middleware.Auth(authCfg)).Delete("/{id}", d.content.DeleteProject)
			})
			r.Route("/education", func(r chi.Router) {
				r.Get("/", d.content.ListEducation)
				r.Get("/{id}", d.content.GetEducation)
				r.With(middleware.Auth(authCfg)).Post("/", d.content.CreateEducation)
				r.With(middleware.Auth(authCfg)).Put("/{id}", d.content.UpdateEducation)
				r.With(middleware.Auth(authCfg)).Delete("/{id}", d.content.DeleteEducation)
			})
			r.Route("/certificates", func(r chi.Router) {
				r.Get("/", d.content.ListCertificates)
				r.Get("/{id}", d.content.GetCertificate)
				r.With(middleware.Auth(authCfg)).Post("/", d.content.CreateCertificate)
				r.With(middleware.Auth(authCfg)).Put("/{id}", d.content.UpdateCertificate)
				r.With(middleware.Auth(authCfg)).Delete("/{id}", d.content.DeleteCertificate)
			})
			r.Route("/skills", func(r chi.Router) {
				r.Get("/", d.content.ListSkills)
				r.Get("/{id}", d.content.GetSkill)
				r.With(middleware.Auth(authCfg)).Post("/", d.content.CreateSkill)
				r.With(middleware.Auth(authCfg)).Put("/{id}", d.content.UpdateSkill)
				r.With(middleware.Auth(authCfg)).Delete("/{id}", d.content.DeleteSkill)
			})
		})
	})

	// 404 and 405 handlers
	r.NotFound(d.base.NotFound)
	r.MethodNotAllowed(d.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
