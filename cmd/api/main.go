// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/renankelm10/cursera/internal/admin"
	"github.com/renankelm10/cursera/internal/auth"
	"github.com/renankelm10/cursera/internal/banner"
	"github.com/renankelm10/cursera/internal/config"
	"github.com/renankelm10/cursera/internal/core"
	"github.com/renankelm10/cursera/internal/course"
	"github.com/renankelm10/cursera/internal/health"
	"github.com/renankelm10/cursera/internal/identity"
	"github.com/renankelm10/cursera/internal/lesson"
	"github.com/renankelm10/cursera/internal/middleware"
	"github.com/renankelm10/cursera/internal/platform"
	"github.com/renankelm10/cursera/internal/server"
	"github.com/renankelm10/cursera/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.Session)
	if err != nil {
		return err
	}
	logger.Info("session token manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(jwtManager, userSvc, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	resolver := identity.NewResolver(authSvc, userSvc)

	courseRepo := course.NewRepository(db.DB)
	lessonRepo := lesson.NewRepository(db.DB)

	lessonSvc := lesson.NewService(lessonRepo, courseRepo)
	courseSvc := course.NewService(courseRepo, lessonSvc)

	courseHandler := course.NewHandler(courseSvc)
	lessonHandler := lesson.NewHandler(lessonSvc)

	bannerSvc := banner.NewService(banner.NewRepository(db.DB))
	bannerHandler := banner.NewHandler(bannerSvc)

	platformSvc := platform.NewService(platform.NewRepository(db.DB))
	platformHandler := platform.NewHandler(platformSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Counters: admin.Counters{
			Users:       userSvc.CountUsers,
			Courses:     courseSvc.CountCourses,
			Lessons:     lessonSvc.CountLessons,
			Enrollments: courseSvc.CountEnrollments,
		},
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ResolveIdentity(resolver))

	audiences := make(
		map[string]middleware.AudienceConfig,
		len(middleware.DefaultAudiences),
	)
	for name, audienceCfg := range middleware.DefaultAudiences {
		audiences[name] = audienceCfg
	}
	if cfg.RateLimit.Requests > 0 {
		audiences["anonymous"] = middleware.AudienceConfig{
			RequestsPerMinute: cfg.RateLimit.Requests,
			BurstSize:         cfg.RateLimit.Burst,
		}
	}
	router.Use(middleware.AudienceRateLimiter(redis.Client, audiences))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	requireAuth := middleware.RequireAuth
	adminOnly := middleware.RequireAdmin

	// Login and register are the credential-stuffing target; they get a
	// tight per-IP budget on top of the audience limiter.
	credentialLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit:    middleware.PerMinute(10, 5),
			KeyFunc:  middleware.KeyByIP,
			FailOpen: true,
		},
	)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, requireAuth, credentialLimiter.Handler)

		courseHandler.RegisterRoutes(r, requireAuth)
		lessonHandler.RegisterRoutes(r, requireAuth)
		bannerHandler.RegisterRoutes(r)
		platformHandler.RegisterRoutes(r)

		userHandler.RegisterRoutes(r, requireAuth)
		userHandler.RegisterAdminRoutes(r, requireAuth, adminOnly)
		courseHandler.RegisterAdminRoutes(r, requireAuth, adminOnly)
		lessonHandler.RegisterAdminRoutes(r, requireAuth, adminOnly)
		bannerHandler.RegisterAdminRoutes(r, requireAuth, adminOnly)
		platformHandler.RegisterAdminRoutes(r, requireAuth, adminOnly)
		adminHandler.RegisterRoutes(r, requireAuth, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
