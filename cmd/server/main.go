package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fixflow/maintenance-system/internal/api"
	"github.com/fixflow/maintenance-system/internal/core/ports"
	"github.com/fixflow/maintenance-system/internal/core/service"
	"github.com/fixflow/maintenance-system/internal/infrastructure/db/memory"
	mongodb "github.com/fixflow/maintenance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fixflow/maintenance-system/internal/infrastructure/db/redis"
	"github.com/fixflow/maintenance-system/internal/infrastructure/queue"
	"github.com/fixflow/maintenance-system/internal/infrastructure/seed"
	"github.com/fixflow/maintenance-system/internal/infrastructure/storage"
	"github.com/fixflow/maintenance-system/internal/pkg/config"
	"github.com/fixflow/maintenance-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		if cfg.Env != "development" {
			log.Fatal().Msg("JWT_SECRET must be set outside development")
		}
		cfg.JWTSecret = "dev-only-secret"
		log.Warn().Msg("JWT_SECRET not set, using development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Seed data ---
	overrides, err := seed.ParsePasswordOverrides(cfg.SeedPasswords)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid SEED_PASSWORDS")
	}
	users, err := seed.Users(overrides)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build seed users")
	}
	userRepo := memory.NewUserRepository(users)

	// --- Storage backend ---
	var (
		reportRepo ports.ReportRepository
		auditRepo  ports.AuditRepository
		deps       api.Dependencies
	)
	switch cfg.StorageDriver {
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		repo := mongodb.NewReportRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo index bootstrap failed")
		}
		if err := repo.SeedIfEmpty(ctx, seed.Reports()); err != nil {
			log.Fatal().Err(err).Msg("mongo seeding failed")
		}
		reportRepo = repo
		auditRepo = mongodb.NewAuditRepository(db)
		deps.Mongo = db
	default:
		reportRepo = memory.NewReportRepository(seed.Reports())
		auditRepo = memory.NewAuditRepository()
	}

	// --- Optional Redis stats cache ---
	var statsCache service.StatsCache
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()

		statsCache = redisdb.NewStatsCache(rdb, log)
		deps.Redis = rdb
	}

	// --- Uploads ---
	uploads, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload store init failed")
	}

	// --- Audit trail dispatcher ---
	dispatcher := queue.NewDispatcher(0, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	reportService := service.NewReportService(reportRepo, userRepo, auditRepo, dispatcher, invalidator(statsCache), log)
	statsService := service.NewStatsService(reportRepo, statsCache, log)

	deps.AuthService = authService
	deps.ReportService = reportService
	deps.StatsService = statsService
	deps.Users = userRepo
	deps.Uploads = uploads
	deps.Logger = log

	e := api.NewRouter(deps)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("storage", cfg.StorageDriver).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	shutdown(e, log)
}

// invalidator adapts the optional stats cache into the service hook; a nil
// cache yields a nil hook so the service skips invalidation entirely.
func invalidator(cache service.StatsCache) service.StatsInvalidator {
	if cache == nil {
		return nil
	}
	if inv, ok := cache.(service.StatsInvalidator); ok {
		return inv
	}
	return nil
}

func shutdown(e *echo.Echo, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("server stopped cleanly")
}
