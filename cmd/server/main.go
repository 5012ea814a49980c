package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/talentops/attrition-insight/internal/auth"
	"github.com/talentops/attrition-insight/internal/config"
	"github.com/talentops/attrition-insight/internal/errors"
	"github.com/talentops/attrition-insight/internal/finance"
	"github.com/talentops/attrition-insight/internal/history"
	"github.com/talentops/attrition-insight/internal/inference"
	"github.com/talentops/attrition-insight/internal/monitoring"
	"github.com/talentops/attrition-insight/internal/ratelimit"
)

// newRouter assembles the middleware chain and routes.
func newRouter(srv *server, limiter *ratelimit.RateLimiter, appMetrics *monitoring.Metrics, appLogger *monitoring.Logger) *gin.Engine {
	r := gin.New()

	r.Use(monitoring.Middleware(appMetrics, appLogger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(limiter.Middleware())

	r.GET("/health", srv.handleHealth)
	r.GET("/metrics", srv.handleMetrics)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.POST("/login", srv.handleLogin)

	authed := api.Group("")
	authed.Use(auth.RequireAuth(srv.authSvc))
	{
		assess := authed.Group("")
		assess.Use(auth.RequirePermission(auth.PermissionAssessment))
		assess.POST("/assess", srv.handleAssess)
		assess.POST("/assess/profile/:name", srv.handleAssessProfile)
		assess.GET("/profiles", srv.handleProfiles)

		financial := authed.Group("/financial")
		financial.Use(auth.RequirePermission(auth.PermissionFinancial))
		financial.POST("/cost", srv.handleCost)
		financial.POST("/savings", srv.handleSavings)
		financial.GET("/reference", srv.handleReference)

		dashboard := authed.Group("")
		dashboard.Use(auth.RequirePermission(auth.PermissionDashboard))
		dashboard.GET("/dashboard", srv.handleDashboard)
	}

	return r
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	engine := inference.NewEngine(cfg.ArtifactsDir)
	slog.Info("Inference engine ready", "mode", engine.Mode(), "model_type", engine.Metadata().ModelType)

	calculator := finance.NewCalculatorWithRates(cfg.ExchangeRates)
	authSvc := auth.NewService(cfg.Accounts, cfg.JWTSecret)

	store, err := history.NewStore(cfg.DataDir)
	if err != nil {
		slog.Error("Failed to initialize assessment store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	redisClient, err := ratelimit.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		// In-memory fallback keeps serving.
		slog.Warn("Redis unavailable", "error", err)
	}
	defer redisClient.Close()
	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.DefaultConfig(), appMetrics)

	srv := &server{
		engine:     engine,
		calculator: calculator,
		authSvc:    authSvc,
		store:      store,
		metrics:    appMetrics,
		logger:     appLogger,
	}

	r := newRouter(srv, limiter, appMetrics, appLogger)

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
