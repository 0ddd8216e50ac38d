package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/fixflow/maintenance-system/docs"
	"github.com/fixflow/maintenance-system/internal/api/handler"
	"github.com/fixflow/maintenance-system/internal/api/middleware"
	"github.com/fixflow/maintenance-system/internal/core/domain"
	"github.com/fixflow/maintenance-system/internal/core/ports"
	"github.com/fixflow/maintenance-system/internal/infrastructure/storage"
)

// maxUploadSize caps request bodies; it bounds report image uploads.
const maxUploadSize = "16M"

// Dependencies carries everything the router needs. Mongo and Redis are nil
// unless the corresponding backends are configured.
type Dependencies struct {
	AuthService   ports.AuthService
	ReportService ports.ReportService
	StatsService  ports.StatsService
	Users         ports.UserRepository
	Uploads       *storage.LocalStore
	Mongo         *mongo.Database
	Redis         *redis.Client
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(maxUploadSize))
	e.Use(echoprometheus.NewMiddleware("maintenance"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	reportHandler := handler.NewReportHandler(deps.ReportService, deps.Uploads, deps.Logger)
	taskHandler := handler.NewTaskHandler(deps.ReportService)
	adminHandler := handler.NewAdminHandler(deps.Users, deps.StatsService)
	uploadHandler := handler.NewUploadHandler(deps.Uploads)

	requireAuth := middleware.Auth(deps.AuthService)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	adminOrWorker := middleware.RBAC(domain.RoleAdmin, domain.RoleWorker)

	// --- API routes ---
	e.POST("/api/auth/login", authHandler.Login)

	e.GET("/api/reports", reportHandler.List, requireAuth)
	e.GET("/api/reports/public", reportHandler.ListPublic)
	e.GET("/api/reports/:id", reportHandler.Get, requireAuth)
	e.POST("/api/reports", reportHandler.Create, requireAuth)
	e.PUT("/api/reports/:id", reportHandler.Update, requireAuth)
	e.DELETE("/api/reports/:id", reportHandler.Delete, requireAuth, adminOnly)
	e.GET("/api/reports/:id/activity", reportHandler.Activity, requireAuth, adminOnly)

	e.PUT("/api/tasks/:id/status", taskHandler.SetStatus, requireAuth, adminOrWorker)

	e.GET("/api/workers", adminHandler.Workers, requireAuth, adminOnly)
	e.GET("/api/stats", adminHandler.Stats, requireAuth, adminOnly)

	e.GET("/api/uploads/:filename", uploadHandler.Serve)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
