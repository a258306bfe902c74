package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/welovit/lead-buddy-app/internal/allocation"
	"github.com/welovit/lead-buddy-app/internal/handler"
	"github.com/welovit/lead-buddy-app/internal/middleware"
	"github.com/welovit/lead-buddy-app/internal/session"
	"github.com/welovit/lead-buddy-app/pkg/config"
	"github.com/welovit/lead-buddy-app/pkg/database"
	"github.com/welovit/lead-buddy-app/pkg/logger"
	"github.com/welovit/lead-buddy-app/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting lead delivery service...", zap.String("environment", cfg.Server.Env))

	// Initialize database (connect, migrate, seed catalog)
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Wire the core: session manager and daily allocation engine
	sessions := session.NewManager(database.GetDB(), cfg.Session.TTL())
	engine := allocation.NewEngine(database.GetDB(), cfg.Leads.DailyLimit)
	handler.Init(database.GetDB(), sessions, engine)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)
	e.GET("/categories", handler.ListCategories)

	// Account routes
	e.POST("/register", handler.Register)
	e.POST("/login", handler.Login)

	// Authenticated routes - session token required
	auth := middleware.SessionAuth(sessions)
	e.GET("/leads/daily", handler.GetDailyLeads, auth)
	e.GET("/leads", handler.GetUserLeads, auth)
	e.POST("/lead_status", handler.UpdateLeadStatus, auth)
	e.POST("/notes", handler.AddLeadNote, auth)
	e.GET("/user/profile", handler.GetProfile, auth)
	e.PUT("/user/profile", handler.UpdateProfile, auth)
	// POST fallback for clients without PUT
	e.POST("/user/profile", handler.UpdateProfile, auth)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
