package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stretford-end/fpl-optimizer/internal/api/handlers"
	"github.com/stretford-end/fpl-optimizer/internal/api/middleware"
	"github.com/stretford-end/fpl-optimizer/internal/engine"
	"github.com/stretford-end/fpl-optimizer/internal/fpl"
	"github.com/stretford-end/fpl-optimizer/internal/models"
	"github.com/stretford-end/fpl-optimizer/internal/providers"
	fplsync "github.com/stretford-end/fpl-optimizer/internal/sync"
	"github.com/stretford-end/fpl-optimizer/pkg/cache"
	"github.com/stretford-end/fpl-optimizer/pkg/config"
	"github.com/stretford-end/fpl-optimizer/pkg/database"
	"github.com/stretford-end/fpl-optimizer/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger("", cfg.IsDevelopment())
	logger.WithService("fpl-optimizer").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting FPL Optimizer")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logger.WithService("fpl-optimizer").Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.Player{},
		&models.Club{},
		&models.Gameweek{},
		&models.Fixture{},
		&models.SyncMetadata{},
	); err != nil {
		logger.WithService("fpl-optimizer").Fatalf("Failed to migrate database: %v", err)
	}

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithService("fpl-optimizer").Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.WithService("fpl-optimizer").Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	cacheService := cache.NewRecommendationCacheService(redisClient, structuredLogger)

	// FPL API client and data sync
	fplClient := fpl.NewClient(cfg.FPLBaseURL, cfg.FPLTimeout, structuredLogger)
	syncService := fplsync.NewService(db, fplClient, structuredLogger)

	// Engine and its data providers
	eng := engine.New(engine.Options{
		Rules: engine.DefaultRules(),
		Weights: engine.Weights{
			Form:               cfg.FormWeight,
			Value:              cfg.ValueWeight,
			Fixture:            cfg.FixtureWeight,
			DoubtfulPenalty:    cfg.DoubtfulPenalty,
			UnavailablePenalty: cfg.UnavailablePenalty,
		},
		HitPenalty:      cfg.HitPenalty,
		MaxTransfers:    cfg.MaxTransfers,
		MaxCombinations: cfg.MaxCombinations,
		TopN:            cfg.TopRecommendations,
	}, structuredLogger)

	snapshotProvider := providers.NewDBSnapshotProvider(db, cfg.FixtureHorizon, structuredLogger)
	squadProvider := providers.NewAPISquadProvider(fplClient, db, structuredLogger)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(structuredLogger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Initialize handlers
	optimizationHandler := handlers.NewOptimizationHandler(
		eng,
		snapshotProvider,
		squadProvider,
		cacheService,
		syncService,
		cfg,
		structuredLogger,
	)
	teamHandler := handlers.NewTeamHandler(squadProvider, structuredLogger)
	syncHandler := handlers.NewSyncHandler(syncService, cacheService, structuredLogger)
	healthHandler := handlers.NewHealthHandler(db, redisClient, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/optimize", optimizationHandler.Optimize)
		apiV1.GET("/team/:id", teamHandler.GetTeam)
		apiV1.POST("/sync", syncHandler.TriggerSync)
	}

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("fpl-optimizer").WithField("port", cfg.Port).Info("FPL Optimizer started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("fpl-optimizer").Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("fpl-optimizer").Info("Shutting down FPL Optimizer...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("fpl-optimizer").Fatalf("Server forced to shutdown: %v", err)
	}

	logger.WithService("fpl-optimizer").Info("FPL Optimizer exited")
}
